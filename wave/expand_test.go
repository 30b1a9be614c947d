package wave

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func ignoreLinkage() cmp.Option {
	return cmpopts.IgnoreFields(Group{}, "Parent", "Pos")
}

func TestExpandResolvesStrings(t *testing.T) {
	g := &Group{
		Name: "Core $core",
		Base: "$core.",
		Children: []Child{
			Signal{Path: "$core.valid"},
			Divider{Name: "D"},
			Signal{Path: "${core}.pc", Radix: "hex"},
		},
	}

	got, err := g.Expand(Env{"core": "top"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := []*Group{{
		Name: "Core top",
		Base: "top.",
		Children: []Child{
			Signal{Path: "top.valid"},
			Divider{Name: "D"},
			Signal{Path: "top.pc", Radix: "hex"},
		},
	}}

	if diff := cmp.Diff(want, got, ignoreLinkage()); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandChildOrderPreserved(t *testing.T) {
	g := &Group{
		Name: "G",
		Children: []Child{
			Signal{Path: "$x.a"},
			Divider{Name: "D"},
			Signal{Path: "$x.b"},
		},
	}

	got, err := g.Expand(Env{"x": "top"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := []Child{
		Signal{Path: "top.a"},
		Divider{Name: "D"},
		Signal{Path: "top.b"},
	}

	if diff := cmp.Diff(want, got[0].Children); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandIteratorProduct(t *testing.T) {
	g := &Group{
		Name:      "G $i$j",
		Iterators: []Iterator{{Name: "i", Count: 2}, {Name: "j", Count: 3}},
	}

	got, err := g.Expand(nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	// Last iterator varies fastest.
	want := []string{"G 00", "G 01", "G 02", "G 10", "G 11", "G 12"}

	if len(got) != len(want) {
		t.Fatalf("len(Expand) = %d, want %d", len(got), len(want))
	}

	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("Expand[%d].Name = %q, want %q", i, got[i].Name, w)
		}
	}
}

func TestExpandZeroIterator(t *testing.T) {
	g := &Group{
		Name:      "G $i",
		Iterators: []Iterator{{Name: "i", Count: 0}},
	}

	got, err := g.Expand(nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("len(Expand) = %d, want 0", len(got))
	}
}

func TestExpandExpressions(t *testing.T) {
	g := mustTemplate(t, "G $i -> $j / $k", []Iterator{{Name: "i", Count: 3}},
		[2]string{"j", "i * 2"},
		[2]string{"k", "j + 1"},
	)

	got, err := g.Expand(nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := []string{"G 0 -> 0 / 1", "G 1 -> 2 / 3", "G 2 -> 4 / 5"}

	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("Expand[%d].Name = %q, want %q", i, got[i].Name, w)
		}
	}
}

func TestExpandExpressionEnvShadowing(t *testing.T) {
	g := mustTemplate(t, "$core", []Iterator{{Name: "i", Count: 1}},
		[2]string{"core", `"shadowed"`},
	)

	got, err := g.Expand(Env{"core": "outer"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if got[0].Name != "shadowed" {
		t.Errorf("Name = %q, want %q", got[0].Name, "shadowed")
	}
}

func TestExpandDoesNotMutateEnv(t *testing.T) {
	g := mustTemplate(t, "G $i", []Iterator{{Name: "i", Count: 2}},
		[2]string{"j", "i + 1"},
	)

	env := Env{"core": "top"}

	if _, err := g.Expand(env); err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(env) != 1 || env["core"] != "top" {
		t.Errorf("Expand mutated env: %v", env)
	}
}

func TestExpandSubgroupsMultiply(t *testing.T) {
	g := &Group{
		Name: "Parent",
		Subgroups: []*Group{
			mustTemplate(t, "Child $i", []Iterator{{Name: "i", Count: 2}}),
		},
	}

	got, err := g.Expand(nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("len(Expand) = %d, want 1", len(got))
	}

	subs := got[0].Subgroups
	if len(subs) != 2 || subs[0].Name != "Child 0" || subs[1].Name != "Child 1" {
		t.Errorf("subgroups = %v, want [Child 0, Child 1]", names(subs))
	}
}

func TestExpandTemplateUnchanged(t *testing.T) {
	g := mustTemplate(t, "G $i", []Iterator{{Name: "i", Count: 2}})

	if _, err := g.Expand(nil); err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if g.Name != "G $i" || len(g.Iterators) != 1 {
		t.Errorf("Expand mutated its template: %+v", g)
	}
}

func TestExpandEvalError(t *testing.T) {
	g := mustTemplate(t, "G", []Iterator{{Name: "i", Count: 1}},
		[2]string{"j", "i / k"},
	)

	_, err := g.Expand(nil)
	if !errors.Is(err, ErrExprEval) {
		t.Fatalf("Expand: error = %v, want %v", err, ErrExprEval)
	}
}

func TestExpandAllConcatenates(t *testing.T) {
	groups := []*Group{
		mustTemplate(t, "A $i", []Iterator{{Name: "i", Count: 2}}),
		{Name: "B"},
	}

	got, err := ExpandAll(groups, nil)
	if err != nil {
		t.Fatalf("ExpandAll: %v", err)
	}

	want := []string{"A 0", "A 1", "B"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("ExpandAll mismatch (-want +got):\n%s", diff)
	}
}

// mustTemplate builds a template with compiled expressions through the
// parser, so tests exercise the same programs production code runs.
func mustTemplate(t *testing.T, name string, iterators []Iterator, exprs ...[2]string) *Group {
	t.Helper()

	src := "groups:\n  - name: G\n    base: b.\n"

	if len(exprs) > 0 {
		src += "    expr:\n"
		for _, e := range exprs {
			src += "      " + e[0] + ": '" + e[1] + "'\n"
		}
	}

	parsed, err := ParseGroups(testSettings(), parseGroupNodes(t, src))
	if err != nil {
		t.Fatalf("ParseGroups: %v", err)
	}

	g := parsed[0]
	g.Name = name
	g.Iterators = iterators

	return g
}

func names(groups []*Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}

	return out
}
