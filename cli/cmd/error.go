package cmd

import "github.com/sblanco/sigwave/pkg"

var (
	ErrReadSource  = pkg.NewError("read source file")
	ErrWriteOutput = pkg.NewError("write output file")
)
