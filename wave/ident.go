package wave

// FixParents rewrites every subgroup's parent reference to its expanded
// parent and prepends the parent's resolved base onto the subgroup's base,
// so descendant signal paths inherit the full prefix chain at emission.
// Must run exactly once, on a freshly expanded forest.
func FixParents(groups []*Group) {
	for _, g := range groups {
		for _, sg := range g.Subgroups {
			sg.Parent = g
			sg.Base = g.Base + sg.Base
		}

		FixParents(g.Subgroups)
	}
}

// AssignIDs numbers the forest pre-order (each group before its subgroups)
// starting at start, and returns the next unused id.
func AssignIDs(groups []*Group, start int) int {
	id := start

	for _, g := range groups {
		g.ID = id
		id++

		id = AssignIDs(g.Subgroups, id)
	}

	return id
}
