// Package wave implements the signal-group expansion engine.
//
// A configuration document declares a forest of group templates whose names,
// base prefixes, and signal paths may reference substitution variables and
// whose structure may be parameterized by iterators and derived expressions.
// The engine turns those templates into a fully resolved group forest:
//
//	groups, err := wave.ParseGroups(settings, doc.Groups)
//	env, err := wave.ExpandEnv(doc.Env)
//	forest, err := wave.ExpandAll(groups, wave.Environment(env))
//	wave.FixParents(forest)
//	wave.AssignIDs(forest, settings.StartingID)
//
// Expansion is a pure function of the template and its environment; all
// defaults are resolved at parse time from an explicit settings value, and
// resolved groups are freshly constructed rather than mutated in place.
package wave
