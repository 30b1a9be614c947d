package config

import "github.com/sblanco/sigwave/pkg"

var (
	// ErrSyntax indicates the source is not well-formed YAML.
	ErrSyntax = pkg.NewError("invalid YAML syntax")

	// ErrDocument indicates a YAML construct the configuration model does
	// not support, such as a non-scalar mapping key.
	ErrDocument = pkg.NewError("unsupported document construct")

	// ErrSettings indicates a missing or malformed settings value.
	ErrSettings = pkg.NewError("invalid settings")

	// ErrDefaults indicates a malformed defaults block.
	ErrDefaults = pkg.NewError("invalid defaults")

	// ErrEnv indicates a malformed env block.
	ErrEnv = pkg.NewError("invalid env")

	// ErrGroups indicates a missing or malformed groups block.
	ErrGroups = pkg.NewError("invalid groups")
)
