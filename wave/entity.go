package wave

import (
	"github.com/expr-lang/expr/vm"

	"github.com/sblanco/sigwave/config"
)

// Child is the sealed set of entities a group may contain. The concrete
// kinds are [Signal], [Divider], and [SignalGroup]; a type switch over a
// Child is exhaustive once it covers those three.
type Child interface {
	child()
}

// Signal is a leaf entity: a signal path with an optional display radix.
// The path may contain substitution variables until the owning group is
// expanded.
type Signal struct {
	Path  string
	Radix string
}

func (Signal) child() {}

// Divider is a labeled rendering boundary. It carries no path, is never
// assigned an id, and forces a chunk break during emission.
type Divider struct {
	Name string
}

func (Divider) child() {}

// SignalGroup is a structural prefix over an ordered child list. It never
// appears in a resolved forest: parsing flattens it into its children with
// its base prepended to every descendant signal path. Dividers inside a
// SignalGroup are preserved as flattening boundaries.
type SignalGroup struct {
	Base     string
	Children []Child
}

func (SignalGroup) child() {}

// Iterator is a named iteration bound. Expansion enumerates values
// 0..Count-1; a zero count produces no branches.
type Iterator struct {
	Name  string
	Count int
}

// Expr is a named derived value, compiled once at parse time and evaluated
// during expansion against the running iteration environment.
type Expr struct {
	Name    string
	Source  string
	program *vm.Program
}

// Group is the identity-bearing entity of the model. Before expansion it is
// a template whose Iterators and Exprs parameterize its subtree; after
// expansion those are empty and every string is fully resolved.
//
// Parent is a back-reference, not ownership: the forest is owned through
// Subgroups. IDs are assigned by [AssignIDs] after expansion.
type Group struct {
	Name      string
	Base      string
	Collapse  bool
	Children  []Child
	Subgroups []*Group
	Iterators []Iterator
	Exprs     []Expr
	Parent    *Group
	ID        int

	Pos config.Position
}

// FullName derives the group's qualified name from its parent chain. It is
// computed on demand so parent rewrites can never leave it stale.
func (g *Group) FullName() string {
	if g.Parent != nil {
		return g.Parent.FullName() + "|" + g.Name
	}

	return g.Name
}

// flatten resolves SignalGroup structure into a flat child list, prepending
// prefix (and each nested base) onto every signal path. Dividers survive as
// boundaries at their flattened position.
func flatten(children []Child, prefix string) []Child {
	out := make([]Child, 0, len(children))

	for _, c := range children {
		switch c := c.(type) {
		case Signal:
			out = append(out, Signal{Path: prefix + c.Path, Radix: c.Radix})

		case Divider:
			out = append(out, c)

		case SignalGroup:
			out = append(out, flatten(c.Children, prefix+c.Base)...)
		}
	}

	return out
}
