package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sblanco/sigwave/log"
	"github.com/sblanco/sigwave/tcl"
)

// Patch generates signal-group TCL from a configuration and splices it into
// a session script.
type Patch struct {
	Config string `help:"YAML configuration file"                  name:"config" required:"" short:"c" type:"existingfile"`
	Source string `help:"Session script to use as patch source"    name:"source" required:"" short:"s" type:"existingfile"`
	Output string `help:"Output file (default: patched_<source>)"  name:"output"             short:"o"`
}

// Run executes the patch command.
func (p *Patch) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	settings, forest, err := buildForest(ctx, p.Config)
	if err != nil {
		return err
	}

	streams := tcl.Emit(settings, forest)

	source, err := os.ReadFile(p.Source)
	if err != nil {
		return ErrReadSource.Wrap(err).
			With(slog.String("source", p.Source))
	}

	patched, err := tcl.Patch(settings, string(source), streams)
	if err != nil {
		return err
	}

	output := p.Output
	if output == "" {
		dir, file := filepath.Split(p.Source)
		output = filepath.Join(dir, "patched_"+file)
	}

	if err := os.WriteFile(output, []byte(patched), 0o644); err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("output", output))
	}

	log.InfoContext(ctx, "session script patched",
		slog.String("config", p.Config),
		slog.String("source", p.Source),
		slog.String("output", output),
	)

	return nil
}
