package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sblanco/sigwave/config"
	"github.com/sblanco/sigwave/tcl"
	"github.com/sblanco/sigwave/wave"
)

const testConfig = `
settings:
  allowed_radices: [hex, binary]
  wave_name: Wave.1
env:
  core: top.core
groups:
  - name: ROB $i
    base: $core.rob.
    collapse: true
    iterators: {i: 2}
    children:
      - divider: Control
      - path: entry_${i}_valid
        radix: binary
      - base: entry_${i}_uop_
        children:
          - path: pc
            radix: hex
`

const testHost = `# Session file
# Global: Signal Groups
gui_wv_zoom_timerange -id ${Wave.1} -begin 0 -end 1000
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestBuildForest(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "groups.yaml", testConfig)

	settings, forest, err := buildForest(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildForest: %v", err)
	}

	if settings.WaveName != "Wave.1" {
		t.Errorf("WaveName = %q, want %q", settings.WaveName, "Wave.1")
	}

	if len(forest) != 2 {
		t.Fatalf("len(forest) = %d, want 2 iterator branches", len(forest))
	}

	if got, want := forest[0].Name, "ROB 0"; got != want {
		t.Errorf("forest[0].Name = %q, want %q", got, want)
	}

	if got, want := forest[1].Name, "ROB 1"; got != want {
		t.Errorf("forest[1].Name = %q, want %q", got, want)
	}

	if got, want := forest[0].Base, "top.core.rob."; got != want {
		t.Errorf("forest[0].Base = %q, want %q", got, want)
	}

	if got, want := forest[1].ID, 2; got != want {
		t.Errorf("forest[1].ID = %d, want %d", got, want)
	}

	wantChildren := []wave.Child{
		wave.Divider{Name: "Control"},
		wave.Signal{Path: "entry_1_valid", Radix: "binary"},
		wave.Signal{Path: "entry_1_uop_pc", Radix: "hex"},
	}

	for i, want := range wantChildren {
		if got := forest[1].Children[i]; got != want {
			t.Errorf("forest[1].Children[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestBuildForestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "groups.yaml", "settings: {wave_name: W}\ngroups: []\n")

	_, _, err := buildForest(context.Background(), cfg)
	if !errors.Is(err, config.ErrSettings) {
		t.Fatalf("buildForest: error = %v, want %v", err, config.ErrSettings)
	}
}

func TestPatchCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "groups.yaml", testConfig)
	src := writeFile(t, dir, "session.tcl", testHost)
	out := filepath.Join(dir, "patched.tcl")

	patch := &Patch{Config: cfg, Source: src, Output: out}
	if err := patch.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	patched := string(data)

	for _, want := range []string{
		"### Top level group: ROB 0",
		"### Top level group: ROB 1",
		`gui_sg_addsignal -group "$_session_group_1" { top.core.rob.entry_0_valid `,
		"gui_list_add_group -id ${Wave.1} -after {New Group} {{ROB 0}}",
		"gui_list_add_group -id ${Wave.1} -after {ROB 0} {{ROB 1}}",
		"gui_list_collapse -id ${Wave.1} {ROB 0}",
		"gui_wv_zoom_outfull -id ${Wave.1}",
	} {
		if !strings.Contains(patched, want) {
			t.Errorf("patched output missing %q", want)
		}
	}

	if strings.Contains(patched, "gui_wv_zoom_timerange") {
		t.Error("patched output still contains the zoom timerange command")
	}
}

func TestPatchCommandDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "groups.yaml", testConfig)
	src := writeFile(t, dir, "session.tcl", testHost)

	patch := &Patch{Config: cfg, Source: src}
	if err := patch.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "patched_session.tcl")); err != nil {
		t.Errorf("default output file not written: %v", err)
	}
}

func TestPatchCommandMissingMarker(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "groups.yaml", testConfig)
	src := writeFile(t, dir, "session.tcl", "# no markers here\n")

	patch := &Patch{Config: cfg, Source: src}

	err := patch.Run(context.Background())
	if !errors.Is(err, tcl.ErrMarkerNotFound) {
		t.Fatalf("Run: error = %v, want %v", err, tcl.ErrMarkerNotFound)
	}
}

func TestTally(t *testing.T) {
	forest := []*wave.Group{{
		Name: "A",
		Children: []wave.Child{
			wave.Signal{Path: "a"},
			wave.Divider{Name: "D"},
		},
		Subgroups: []*wave.Group{{
			Name:     "A1",
			Children: []wave.Child{wave.Signal{Path: "b"}},
		}},
	}}

	groups, signals, dividers := tally(forest)
	if groups != 2 || signals != 2 || dividers != 1 {
		t.Errorf("tally = (%d, %d, %d), want (2, 2, 1)", groups, signals, dividers)
	}
}
