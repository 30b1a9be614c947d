package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sblanco/sigwave/log"
)

// Check validates a configuration and reports what it would expand to,
// without generating any output.
type Check struct {
	Config string `help:"YAML configuration file" name:"config" required:"" short:"c" type:"existingfile"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	settings, forest, err := buildForest(ctx, c.Config)
	if err != nil {
		return err
	}

	groups, signals, dividers := tally(forest)

	log.InfoContext(ctx, "configuration is valid",
		slog.String("config", c.Config),
		slog.String("wave", settings.WaveName),
		slog.Int("groups", groups),
		slog.Int("signals", signals),
		slog.Int("dividers", dividers),
	)

	_, err = fmt.Fprintf(stdout(ctx),
		"%s: %d groups, %d signals, %d dividers\n",
		c.Config, groups, signals, dividers)

	return err
}
