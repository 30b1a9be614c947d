package config

import (
	"log/slog"
	"os"

	"github.com/goccy/go-yaml/parser"
)

// Default values applied when the optional settings and defaults keys are
// absent from the document.
const (
	DefaultStartingID  = 1
	DefaultLineLimit   = 3000
	DefaultDividerName = "Divider"
	DefaultCollapse    = true
)

// Settings holds the validated scalar knobs of a configuration document,
// merged from the settings and defaults blocks.
type Settings struct {
	AllowedRadices []string
	WaveName       string
	StartingID     int
	LineLimit      int
	DividerName    string
	Collapse       bool
}

// Document is a loaded sigwave configuration.
//
// Env is the raw (unexpanded) substitution environment; callers run the
// fixed-point expansion themselves. Groups are the raw group specification
// nodes in declaration order.
type Document struct {
	Name     string
	Settings Settings
	Env      map[string]string
	Groups   []*Node
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrSyntax.Wrap(err).With(slog.String("file", path))
	}

	return Parse(path, data)
}

// Parse parses a configuration document from data. The name is used in
// positions attached to errors and is typically the source file path.
func Parse(name string, data []byte) (*Document, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, ErrSyntax.Wrap(err).With(slog.String("file", name))
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, ErrGroups.With(slog.String("file", name))
	}

	root, err := fromAST(name, file.Docs[0].Body)
	if err != nil {
		return nil, err
	}

	if root.Kind != KindMapping {
		return nil, ErrDocument.With(root.LogAttrs()...)
	}

	doc := &Document{Name: name}

	if err := doc.parseSettings(root); err != nil {
		return nil, err
	}

	if err := doc.parseDefaults(root); err != nil {
		return nil, err
	}

	if err := doc.parseEnv(root); err != nil {
		return nil, err
	}

	if err := doc.parseGroups(root); err != nil {
		return nil, err
	}

	return doc, nil
}

func (d *Document) parseSettings(root *Node) error {
	d.Settings = Settings{
		StartingID:  DefaultStartingID,
		LineLimit:   DefaultLineLimit,
		DividerName: DefaultDividerName,
		Collapse:    DefaultCollapse,
	}

	settings, ok := root.Get("settings")
	if !ok {
		return ErrSettings.With(
			slog.String("file", d.Name),
			slog.String("missing", "settings"),
		)
	}

	if settings.Kind != KindMapping {
		return ErrSettings.With(settings.LogAttrs()...)
	}

	radices, ok := settings.Get("allowed_radices")
	if !ok || radices.Kind != KindSequence || len(radices.Items) == 0 {
		return ErrSettings.
			With(slog.String("missing", "allowed_radices")).
			With(settings.LogAttrs()...)
	}

	for _, item := range radices.Items {
		radix, ok := item.StringValue()
		if !ok || radix == "" {
			return ErrSettings.
				With(slog.String("key", "allowed_radices")).
				With(item.LogAttrs()...)
		}

		d.Settings.AllowedRadices = append(d.Settings.AllowedRadices, radix)
	}

	// The DVE default view is named Wave.1, but we refuse to guess.
	wave, ok := settings.Get("wave_name")
	if !ok {
		return ErrSettings.
			With(slog.String("missing", "wave_name")).
			With(settings.LogAttrs()...)
	}

	name, ok := wave.StringValue()
	if !ok || name == "" {
		return ErrSettings.
			With(slog.String("key", "wave_name")).
			With(wave.LogAttrs()...)
	}

	d.Settings.WaveName = name

	if node, ok := settings.Get("starting_id"); ok {
		id, ok := node.IntValue()
		if !ok {
			return ErrSettings.
				With(slog.String("key", "starting_id")).
				With(node.LogAttrs()...)
		}

		d.Settings.StartingID = id
	}

	if node, ok := settings.Get("line_limit"); ok {
		limit, ok := node.IntValue()
		if !ok || limit <= 0 {
			return ErrSettings.
				With(slog.String("key", "line_limit")).
				With(node.LogAttrs()...)
		}

		d.Settings.LineLimit = limit
	}

	return nil
}

func (d *Document) parseDefaults(root *Node) error {
	defaults, ok := root.Get("defaults")
	if !ok {
		return nil
	}

	if defaults.Kind != KindMapping {
		return ErrDefaults.With(defaults.LogAttrs()...)
	}

	if node, ok := defaults.Get("divider_name"); ok {
		name, ok := node.StringValue()
		if !ok || name == "" {
			return ErrDefaults.
				With(slog.String("key", "divider_name")).
				With(node.LogAttrs()...)
		}

		d.Settings.DividerName = name
	}

	if node, ok := defaults.Get("collapse"); ok {
		collapse, ok := node.BoolValue()
		if !ok {
			return ErrDefaults.
				With(slog.String("key", "collapse")).
				With(node.LogAttrs()...)
		}

		d.Settings.Collapse = collapse
	}

	return nil
}

func (d *Document) parseEnv(root *Node) error {
	d.Env = map[string]string{}

	env, ok := root.Get("env")
	if !ok {
		return nil
	}

	if env.Kind != KindMapping {
		return ErrEnv.With(env.LogAttrs()...)
	}

	for _, e := range env.Entries {
		value, ok := e.Value.StringValue()
		if !ok {
			return ErrEnv.
				With(slog.String("key", e.Key)).
				With(e.Value.LogAttrs()...)
		}

		d.Env[e.Key] = value
	}

	return nil
}

func (d *Document) parseGroups(root *Node) error {
	groups, ok := root.Get("groups")
	if !ok {
		return ErrGroups.With(
			slog.String("file", d.Name),
			slog.String("missing", "groups"),
		)
	}

	if groups.Kind != KindSequence {
		return ErrGroups.With(groups.LogAttrs()...)
	}

	d.Groups = groups.Items

	return nil
}
