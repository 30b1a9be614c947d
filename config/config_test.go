package config

import (
	"errors"
	"testing"
)

const minimalDoc = `
settings:
  allowed_radices: [hex, decimal, binary]
  wave_name: Wave.1
groups:
  - name: Core
    base: top.core.
`

func TestParseMinimal(t *testing.T) {
	doc, err := Parse("test.yaml", []byte(minimalDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, want := doc.Settings.WaveName, "Wave.1"; got != want {
		t.Errorf("WaveName = %q, want %q", got, want)
	}

	if got, want := len(doc.Settings.AllowedRadices), 3; got != want {
		t.Errorf("len(AllowedRadices) = %d, want %d", got, want)
	}

	if got, want := doc.Settings.StartingID, DefaultStartingID; got != want {
		t.Errorf("StartingID = %d, want default %d", got, want)
	}

	if got, want := doc.Settings.LineLimit, DefaultLineLimit; got != want {
		t.Errorf("LineLimit = %d, want default %d", got, want)
	}

	if got, want := doc.Settings.DividerName, DefaultDividerName; got != want {
		t.Errorf("DividerName = %q, want default %q", got, want)
	}

	if !doc.Settings.Collapse {
		t.Error("Collapse = false, want default true")
	}

	if got, want := len(doc.Groups), 1; got != want {
		t.Fatalf("len(Groups) = %d, want %d", got, want)
	}
}

func TestParseOverrides(t *testing.T) {
	src := `
settings:
  allowed_radices: [hex]
  wave_name: Wave.2
  starting_id: 100
  line_limit: 80
defaults:
  divider_name: "----"
  collapse: false
env:
  core: top.core
groups:
  - name: G
    base: $core.
`

	doc, err := Parse("test.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, want := doc.Settings.StartingID, 100; got != want {
		t.Errorf("StartingID = %d, want %d", got, want)
	}

	if got, want := doc.Settings.LineLimit, 80; got != want {
		t.Errorf("LineLimit = %d, want %d", got, want)
	}

	if got, want := doc.Settings.DividerName, "----"; got != want {
		t.Errorf("DividerName = %q, want %q", got, want)
	}

	if doc.Settings.Collapse {
		t.Error("Collapse = true, want false")
	}

	if got, want := doc.Env["core"], "top.core"; got != want {
		t.Errorf(`Env["core"] = %q, want %q`, got, want)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "syntax",
			src:  "settings: [unclosed",
			want: ErrSyntax,
		},
		{
			name: "missing settings",
			src:  "groups: []",
			want: ErrSettings,
		},
		{
			name: "missing allowed_radices",
			src:  "settings: {wave_name: Wave.1}\ngroups: []",
			want: ErrSettings,
		},
		{
			name: "empty allowed_radices",
			src:  "settings: {allowed_radices: [], wave_name: Wave.1}\ngroups: []",
			want: ErrSettings,
		},
		{
			name: "missing wave_name",
			src:  "settings: {allowed_radices: [hex]}\ngroups: []",
			want: ErrSettings,
		},
		{
			name: "bad starting_id",
			src:  "settings: {allowed_radices: [hex], wave_name: W, starting_id: soon}\ngroups: []",
			want: ErrSettings,
		},
		{
			name: "bad line_limit",
			src:  "settings: {allowed_radices: [hex], wave_name: W, line_limit: 0}\ngroups: []",
			want: ErrSettings,
		},
		{
			name: "bad defaults collapse",
			src:  "settings: {allowed_radices: [hex], wave_name: W}\ndefaults: {collapse: 3}\ngroups: []",
			want: ErrDefaults,
		},
		{
			name: "missing groups",
			src:  "settings: {allowed_radices: [hex], wave_name: W}",
			want: ErrGroups,
		},
		{
			name: "groups not a sequence",
			src:  "settings: {allowed_radices: [hex], wave_name: W}\ngroups: {name: G}",
			want: ErrGroups,
		},
		{
			name: "env not a mapping",
			src:  "settings: {allowed_radices: [hex], wave_name: W}\nenv: [a, b]\ngroups: []",
			want: ErrEnv,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse("test.yaml", []byte(c.src))
			if err == nil {
				t.Fatal("Parse: expected error, got nil")
			}

			if !errors.Is(err, c.want) {
				t.Errorf("Parse: error = %v, want %v", err, c.want)
			}
		})
	}
}

func TestNodeOrderPreserved(t *testing.T) {
	src := `
settings:
  allowed_radices: [hex]
  wave_name: W
groups:
  - name: G
    base: b.
    iterators: {z: 1, a: 2, m: 3}
`

	doc, err := Parse("test.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	iters, ok := doc.Groups[0].Get("iterators")
	if !ok {
		t.Fatal("iterators key not found")
	}

	want := []string{"z", "a", "m"}
	got := iters.Keys()

	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNodePositions(t *testing.T) {
	src := "settings:\n  allowed_radices: [hex]\n  wave_name: W\ngroups:\n  - name: G\n    base: b.\n"

	doc, err := Parse("test.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	pos := doc.Groups[0].Pos
	if pos.File != "test.yaml" {
		t.Errorf("Pos.File = %q, want %q", pos.File, "test.yaml")
	}

	if pos.Line != 5 {
		t.Errorf("Pos.Line = %d, want 5", pos.Line)
	}
}

func TestNodeSnapshot(t *testing.T) {
	src := "settings:\n  allowed_radices: [hex]\n  wave_name: W\ngroups:\n  - name: G\n    base: b.\n    collapse: true\n"

	doc, err := Parse("test.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := `{name: "G", base: "b.", collapse: true}`
	if got := doc.Groups[0].String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
