package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sblanco/sigwave/config"
	"github.com/sblanco/sigwave/log"
	"github.com/sblanco/sigwave/wave"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print to: the kong context's stdout
// when running under the CLI, or os.Stdout otherwise.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// buildForest runs the pipeline from a configuration file to a resolved,
// linked, and numbered group forest.
func buildForest(
	ctx context.Context,
	configFile string,
) (config.Settings, []*wave.Group, error) {
	doc, err := config.Load(configFile)
	if err != nil {
		return config.Settings{}, nil, err
	}

	env, err := wave.ExpandEnv(doc.Env)
	if err != nil {
		return config.Settings{}, nil, err
	}

	templates, err := wave.ParseGroups(doc.Settings, doc.Groups)
	if err != nil {
		return config.Settings{}, nil, err
	}

	forest, err := wave.ExpandAll(templates, wave.Environment(env))
	if err != nil {
		return config.Settings{}, nil, err
	}

	wave.FixParents(forest)

	next := wave.AssignIDs(forest, doc.Settings.StartingID)

	log.DebugContext(ctx, "forest expanded",
		slog.String("config", configFile),
		slog.Int("templates", len(templates)),
		slog.Int("roots", len(forest)),
		slog.Int("groups", next-doc.Settings.StartingID),
	)

	return doc.Settings, forest, nil
}

// tally counts groups, signals, and dividers across the forest.
func tally(forest []*wave.Group) (groups, signals, dividers int) {
	for _, g := range forest {
		groups++

		for _, c := range g.Children {
			switch c.(type) {
			case wave.Signal:
				signals++
			case wave.Divider:
				dividers++
			case wave.SignalGroup:
				// Flattened away during parsing.
			}
		}

		sg, ss, sd := tally(g.Subgroups)
		groups, signals, dividers = groups+sg, signals+ss, dividers+sd
	}

	return groups, signals, dividers
}
