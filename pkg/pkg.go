//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the sigwave module embedded at build
// time. It is printed by the CLI when users pass the --version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and log output.
	Name = "sigwave"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Waveform signal-group generator for DVE session scripts"
)
