package tcl

import (
	"fmt"
	"strings"

	"github.com/sblanco/sigwave/config"
	"github.com/sblanco/sigwave/wave"
)

// Cursor is the view-insertion anchor used for the first emitted group.
// DVE creates this placeholder group when a session has no groups yet.
const Cursor = "New Group"

// Streams holds the three ordered TCL command streams rendered from a
// resolved forest.
type Streams struct {
	// Groups creates every group and fills it with signal, divider, and
	// radix commands. Inserted after the "# Global: Signal Groups" marker.
	Groups string

	// View inserts the created groups into the wave view, each after its
	// predecessor.
	View string

	// Collapse folds every collapse-flagged group.
	Collapse string
}

// Emit renders the forest. The forest must already be expanded, linked, and
// id-assigned; emission is pure text generation.
func Emit(settings config.Settings, forest []*wave.Group) Streams {
	var groups, view, collapse strings.Builder

	groups.WriteString("# Creating groups and adding signals\n")
	view.WriteString("# Adding groups to the view\n")
	collapse.WriteString("# Collapsing groups\n")

	prev := Cursor

	for _, g := range forest {
		writeGroup(&groups, settings, g)
		writeView(&view, settings.WaveName, g, prev)
		writeCollapse(&collapse, settings.WaveName, g)

		prev = g.FullName()
	}

	return Streams{
		Groups:   groups.String(),
		View:     view.String(),
		Collapse: collapse.String(),
	}
}

func writeGroup(sb *strings.Builder, settings config.Settings, g *wave.Group) {
	if g.Parent == nil {
		fmt.Fprintf(sb, "\n### Top level group: %s\n", g.Name)
		fmt.Fprintf(sb, "set _session_group_%d {%s}\n", g.ID, g.Name)
		fmt.Fprintf(sb, "gui_sg_create \"$_session_group_%d\"\n", g.ID)
		fmt.Fprintf(sb, "set {%s} \"$_session_group_%d\"\n\n", g.Name, g.ID)
	} else {
		fmt.Fprintf(sb, "# Subgroup: %s\n", g.FullName())
		fmt.Fprintf(sb, "set _session_group_%d $_session_group_%d|\n", g.ID, g.Parent.ID)
		fmt.Fprintf(sb, "append _session_group_%d {%s}\n", g.ID, g.Name)
		fmt.Fprintf(sb, "gui_sg_create \"$_session_group_%d\"\n", g.ID)
		fmt.Fprintf(sb, "set {%s} \"$_session_group_%d\"\n\n", g.FullName(), g.ID)
	}

	if len(g.Children) > 0 {
		writeChunks(sb, chunkSpec{
			command:  fmt.Sprintf("gui_sg_addsignal -group \"$_session_group_%d\" { ", g.ID),
			base:     g.Base,
			closing:  "}\n",
			sep:      " ",
			limit:    settings.LineLimit,
			groupID:  g.ID,
			dividers: true,
		}, g.Children)

		sb.WriteString("\n")

		for _, radix := range radixOrder(g.Children) {
			writeChunks(sb, chunkSpec{
				command: fmt.Sprintf("gui_set_radix -radix {%s} -signals { ", radix),
				base:    g.Base,
				closing: "}\n",
				sep:     " ",
				limit:   settings.LineLimit,
			}, radixSignals(g.Children, radix))
		}
	}

	for _, sg := range g.Subgroups {
		sb.WriteString("\n")
		writeGroup(sb, settings, sg)
	}
}

func writeView(sb *strings.Builder, waveName string, g *wave.Group, prev string) {
	fmt.Fprintf(sb, "gui_list_add_group -id ${%s} -after {%s} {{%s}}\n",
		waveName, prev, g.FullName())

	prev = g.FullName()

	for _, sg := range g.Subgroups {
		writeView(sb, waveName, sg, prev)

		prev = sg.FullName()
	}
}

func writeCollapse(sb *strings.Builder, waveName string, g *wave.Group) {
	if g.Collapse {
		fmt.Fprintf(sb, "gui_list_collapse -id ${%s} {%s}\n", waveName, g.FullName())
	}

	for _, sg := range g.Subgroups {
		writeCollapse(sb, waveName, sg)
	}
}

type chunkSpec struct {
	command  string
	base     string
	closing  string
	sep      string
	limit    int
	groupID  int
	dividers bool
}

// writeChunks renders signals into command chunks no longer than the limit.
// A chunk is closed before an entry that would push it past the limit, so a
// chunk only ever exceeds the limit when its sole entry already does.
// Dividers close the current chunk and emit their own line; a chunk holding
// no signals is never emitted.
func writeChunks(sb *strings.Builder, spec chunkSpec, children []wave.Child) {
	line := spec.command
	count := 0

	flush := func() {
		if count > 0 {
			sb.WriteString(line)
			sb.WriteString(spec.closing)
		}

		line = spec.command
		count = 0
	}

	for _, c := range children {
		switch c := c.(type) {
		case wave.Divider:
			if !spec.dividers {
				continue
			}

			flush()
			fmt.Fprintf(sb, "gui_sg_addsignal -group \"$_session_group_%d\" { %s } -divider\n",
				spec.groupID, c.Name)

		case wave.Signal:
			entry := spec.base + c.Path + spec.sep

			if spec.limit > 0 && count > 0 &&
				len(line)+len(entry)+len(spec.closing) > spec.limit {
				flush()
			}

			line += entry
			count++

		case wave.SignalGroup:
			// Flattened away before emission.
		}
	}

	flush()
}

// radixOrder returns the distinct radices of the signals in first-seen
// order.
func radixOrder(children []wave.Child) []string {
	var order []string

	seen := map[string]bool{}

	for _, c := range children {
		s, ok := c.(wave.Signal)
		if !ok || s.Radix == "" || seen[s.Radix] {
			continue
		}

		seen[s.Radix] = true

		order = append(order, s.Radix)
	}

	return order
}

func radixSignals(children []wave.Child, radix string) []wave.Child {
	var out []wave.Child

	for _, c := range children {
		if s, ok := c.(wave.Signal); ok && s.Radix == radix {
			out = append(out, s)
		}
	}

	return out
}
