package wave

import (
	"log/slog"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/sahilm/fuzzy"

	"github.com/sblanco/sigwave/config"
)

// ParseGroups parses the raw group specification nodes of a document into
// group templates, validating every entity against settings. SignalGroup
// structure is flattened here, so template children contain only Signal and
// Divider entities.
func ParseGroups(settings config.Settings, nodes []*config.Node) ([]*Group, error) {
	groups := make([]*Group, 0, len(nodes))

	for _, node := range nodes {
		group, err := parseGroup(settings, node, nil)
		if err != nil {
			return nil, err
		}

		groups = append(groups, group)
	}

	return groups, nil
}

func parseGroup(settings config.Settings, node *config.Node, parent *Group) (*Group, error) {
	if node.Kind != config.KindMapping {
		return nil, ErrStructural.
			With(slog.String("expected", "group mapping")).
			With(node.LogAttrs()...)
	}

	name, err := requiredString(node, "name")
	if err != nil {
		return nil, err
	}

	base, err := requiredString(node, "base")
	if err != nil {
		return nil, err
	}

	group := &Group{
		Name:     name,
		Base:     base,
		Collapse: settings.Collapse,
		Parent:   parent,
		Pos:      node.Pos,
	}

	if collapse, ok := node.Get("collapse"); ok {
		value, ok := collapse.BoolValue()
		if !ok {
			return nil, ErrStructural.
				With(slog.String("key", "collapse")).
				With(collapse.LogAttrs()...)
		}

		group.Collapse = value
	}

	if group.Iterators, err = parseIterators(node); err != nil {
		return nil, err
	}

	if group.Exprs, err = parseExprs(node); err != nil {
		return nil, err
	}

	if children, ok := node.Get("children"); ok {
		parsed, err := parseChildren(settings, children)
		if err != nil {
			return nil, err
		}

		group.Children = flatten(parsed, "")
	}

	if subgroups, ok := node.Get("subgroups"); ok {
		if subgroups.Kind != config.KindSequence {
			return nil, ErrStructural.
				With(slog.String("key", "subgroups")).
				With(subgroups.LogAttrs()...)
		}

		for _, sub := range subgroups.Items {
			child, err := parseGroup(settings, sub, group)
			if err != nil {
				return nil, err
			}

			group.Subgroups = append(group.Subgroups, child)
		}
	}

	return group, nil
}

func requiredString(node *config.Node, key string) (string, error) {
	field, ok := node.Get(key)
	if !ok {
		return "", ErrStructural.
			With(slog.String("missing", key)).
			With(node.LogAttrs()...)
	}

	value, ok := field.StringValue()
	if !ok {
		return "", ErrStructural.
			With(slog.String("key", key)).
			With(field.LogAttrs()...)
	}

	return value, nil
}

func parseIterators(node *config.Node) ([]Iterator, error) {
	raw, ok := node.Get("iterators")
	if !ok {
		return nil, nil
	}

	if raw.Kind != config.KindMapping {
		return nil, ErrIterator.With(raw.LogAttrs()...)
	}

	iterators := make([]Iterator, 0, len(raw.Entries))

	for _, e := range raw.Entries {
		count, ok := e.Value.IntValue()
		if !ok || count < 0 {
			return nil, ErrIterator.
				With(slog.String("iterator", e.Key)).
				With(e.Value.LogAttrs()...)
		}

		iterators = append(iterators, Iterator{Name: e.Key, Count: count})
	}

	return iterators, nil
}

func parseExprs(node *config.Node) ([]Expr, error) {
	raw, ok := node.Get("expr")
	if !ok {
		return nil, nil
	}

	if raw.Kind != config.KindMapping {
		return nil, ErrExprCompile.With(raw.LogAttrs()...)
	}

	exprs := make([]Expr, 0, len(raw.Entries))

	for _, e := range raw.Entries {
		src, isString := "", false
		if e.Value != nil && e.Value.Kind == config.KindScalar {
			src, isString = e.Value.Value.(string)
		}

		if !isString {
			return nil, ErrExprCompile.
				With(slog.String("expr", e.Key)).
				With(e.Value.LogAttrs()...)
		}

		// Compiled against an empty environment: expressions may only
		// reference iterator values and earlier expression results, never
		// process state.
		program, err := expr.Compile(src,
			expr.Env(map[string]any{}),
			expr.AllowUndefinedVariables(),
		)
		if err != nil {
			return nil, ErrExprCompile.
				Wrap(err).
				With(
					slog.String("expr", e.Key),
					slog.String("source", src),
				).
				With(e.Value.LogAttrs()...)
		}

		exprs = append(exprs, Expr{Name: e.Key, Source: src, program: program})
	}

	return exprs, nil
}

func parseChildren(settings config.Settings, node *config.Node) ([]Child, error) {
	if node.Kind != config.KindSequence {
		return nil, ErrStructural.
			With(slog.String("expected", "children sequence")).
			With(node.LogAttrs()...)
	}

	children := make([]Child, 0, len(node.Items))

	for _, item := range node.Items {
		child, err := parseChild(settings, item)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	return children, nil
}

// parseChild dispatches on a child node's shape: a divider key makes a
// Divider, a non-empty path makes a Signal, a children key makes a
// SignalGroup. Anything else is a structural error.
func parseChild(settings config.Settings, node *config.Node) (Child, error) {
	if node.Kind != config.KindMapping {
		return nil, ErrStructural.
			With(slog.String("expected", "child mapping")).
			With(node.LogAttrs()...)
	}

	switch {
	case node.Has("divider"):
		return parseDivider(settings, node)

	case hasSignalPath(node):
		return parseSignal(settings, node)

	case node.Has("children"):
		return parseSignalGroup(settings, node)

	default:
		return nil, ErrStructural.
			With(slog.String("expected", "divider, signal, or signal group")).
			With(node.LogAttrs()...)
	}
}

func hasSignalPath(node *config.Node) bool {
	path, ok := node.Get("path")
	if !ok {
		return false
	}

	s, ok := path.StringValue()

	return ok && s != ""
}

func parseDivider(settings config.Settings, node *config.Node) (Child, error) {
	if extra := node.ExtraKeys("divider"); len(extra) > 0 {
		return nil, ErrConstraint.
			With(
				slog.String("entity", "divider"),
				slog.Any("extra", extra),
			).
			With(node.LogAttrs()...)
	}

	value, _ := node.Get("divider")

	name, _ := value.StringValue()
	if name == "" {
		name = settings.DividerName
	}

	return Divider{Name: name}, nil
}

func parseSignal(settings config.Settings, node *config.Node) (Child, error) {
	if extra := node.ExtraKeys("path", "radix"); len(extra) > 0 {
		return nil, ErrConstraint.
			With(
				slog.String("entity", "signal"),
				slog.Any("extra", extra),
			).
			With(node.LogAttrs()...)
	}

	path, _ := node.Get("path")
	pathValue, _ := path.StringValue()

	signal := Signal{Path: pathValue}

	if radix, ok := node.Get("radix"); ok {
		value, ok := radix.StringValue()
		if !ok {
			return nil, ErrConstraint.
				With(slog.String("key", "radix")).
				With(radix.LogAttrs()...)
		}

		if value != "" && !allowedRadix(settings, value) {
			err := ErrConstraint.With(
				slog.String("radix", value),
				slog.String("signal", pathValue),
				slog.Any("allowed", settings.AllowedRadices),
			)

			if match := fuzzy.Find(value, settings.AllowedRadices); len(match) > 0 {
				err = err.With(slog.String("closest", match[0].Str))
			}

			return nil, err.With(node.LogAttrs()...)
		}

		signal.Radix = value
	}

	return signal, nil
}

func parseSignalGroup(settings config.Settings, node *config.Node) (Child, error) {
	if extra := node.ExtraKeys("base", "children"); len(extra) > 0 {
		return nil, ErrConstraint.
			With(
				slog.String("entity", "signal group"),
				slog.Any("extra", extra),
			).
			With(node.LogAttrs()...)
	}

	var base string

	if field, ok := node.Get("base"); ok {
		value, ok := field.StringValue()
		if !ok {
			return nil, ErrStructural.
				With(slog.String("key", "base")).
				With(field.LogAttrs()...)
		}

		base = value
	}

	children, _ := node.Get("children")

	parsed, err := parseChildren(settings, children)
	if err != nil {
		return nil, err
	}

	return SignalGroup{Base: base, Children: parsed}, nil
}

func allowedRadix(settings config.Settings, radix string) bool {
	return slices.Contains(settings.AllowedRadices, radix)
}
