package wave

import (
	"log/slog"

	"github.com/expr-lang/expr/vm"
)

// ExpandAll expands every template in declaration order and returns the
// concatenated resolved forest.
func ExpandAll(groups []*Group, env Env) ([]*Group, error) {
	var forest []*Group

	for _, g := range groups {
		expanded, err := g.Expand(env)
		if err != nil {
			return nil, err
		}

		forest = append(forest, expanded...)
	}

	return forest, nil
}

// Expand resolves the template against env without mutating it.
//
// A template with iterators produces one resolved group per combination of
// iterator values, enumerated as a cartesian product in declaration order
// with the last iterator varying fastest. Each combination extends a copy
// of env with its iterator values, then with each expression result in
// declaration order, and resolves an iterator-free view of the template
// against that environment.
//
// A template without iterators resolves to exactly one group: name and base
// substituted, children resolved in order, subgroups expanded recursively
// against the same environment.
func (g *Group) Expand(env Env) ([]*Group, error) {
	if len(g.Iterators) > 0 {
		return g.expandIterators(env)
	}

	resolved := &Group{
		Name:     SubstituteString(g.Name, env),
		Base:     SubstituteString(g.Base, env),
		Collapse: g.Collapse,
		Children: resolveChildren(g.Children, env),
		Parent:   g.Parent,
		Pos:      g.Pos,
	}

	for _, sg := range g.Subgroups {
		expanded, err := sg.Expand(env)
		if err != nil {
			return nil, err
		}

		resolved.Subgroups = append(resolved.Subgroups, expanded...)
	}

	return []*Group{resolved}, nil
}

func (g *Group) expandIterators(env Env) ([]*Group, error) {
	branch := *g
	branch.Iterators = nil
	branch.Exprs = nil

	// Odometer over iterator counts; the rightmost digit turns fastest.
	// Any zero count means zero combinations.
	values := make([]int, len(g.Iterators))

	for _, it := range g.Iterators {
		if it.Count == 0 {
			return nil, nil
		}
	}

	var expanded []*Group

	for {
		iterEnv := env.clone()
		if iterEnv == nil {
			iterEnv = Env{}
		}

		for i, it := range g.Iterators {
			iterEnv[it.Name] = values[i]
		}

		for _, e := range g.Exprs {
			result, err := vm.Run(e.program, map[string]any(iterEnv))
			if err != nil {
				return nil, ErrExprEval.
					Wrap(err).
					With(
						slog.String("group", g.Name),
						slog.String("expr", e.Name),
						slog.String("source", e.Source),
						g.Pos.LogAttr(),
					)
			}

			iterEnv[e.Name] = result
		}

		branches, err := branch.Expand(iterEnv)
		if err != nil {
			return nil, err
		}

		expanded = append(expanded, branches...)

		carry := len(values) - 1
		for carry >= 0 {
			values[carry]++
			if values[carry] < g.Iterators[carry].Count {
				break
			}

			values[carry] = 0
			carry--
		}

		if carry < 0 {
			return expanded, nil
		}
	}
}

// resolveChildren substitutes env into each child. SignalGroup children
// cannot occur in parsed templates, but constructed ones are flattened here
// with the same rules parsing applies.
func resolveChildren(children []Child, env Env) []Child {
	if len(children) == 0 {
		return nil
	}

	out := make([]Child, 0, len(children))

	for _, c := range children {
		switch c := c.(type) {
		case Signal:
			out = append(out, Signal{
				Path:  SubstituteString(c.Path, env),
				Radix: c.Radix,
			})

		case Divider:
			out = append(out, c)

		case SignalGroup:
			out = append(out, resolveChildren(flatten(c.Children, c.Base), env)...)
		}
	}

	return out
}
