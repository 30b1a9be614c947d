package cmd

import (
	"context"
	"fmt"

	"github.com/sblanco/sigwave/tcl"
)

// Emit writes the three generated TCL streams to stdout, in the order they
// would be spliced into a session script.
type Emit struct {
	Config string `help:"YAML configuration file" name:"config" required:"" short:"c" type:"existingfile"`
}

// Run executes the emit command.
func (e *Emit) Run(ctx context.Context) error {
	settings, forest, err := buildForest(ctx, e.Config)
	if err != nil {
		return err
	}

	streams := tcl.Emit(settings, forest)

	_, err = fmt.Fprintf(stdout(ctx), "%s\n%s\n%s",
		streams.Groups, streams.View, streams.Collapse)

	return err
}
