package tcl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sblanco/sigwave/config"
	"github.com/sblanco/sigwave/pkg"
)

// ErrMarkerNotFound indicates the host session script is missing one of the
// two insertion markers.
var ErrMarkerNotFound = pkg.NewError("marker not found in source")

// groupsMarker is the line (after trimming) that the Groups stream is
// inserted after.
const groupsMarker = "# Global: Signal Groups"

// Patch splices the streams into the host session script text.
//
// The Groups stream is inserted after the "# Global: Signal Groups" line.
// The zoom command for the configured wave view is replaced by a full
// zoom-out, and the View and Collapse streams are inserted after it, so the
// groups exist before the view references them. Both markers must be
// present.
func Patch(settings config.Settings, source string, streams Streams) (string, error) {
	zoomMarker := fmt.Sprintf("gui_wv_zoom_timerange -id ${%s}", settings.WaveName)

	var (
		out        strings.Builder
		foundGroup bool
		foundZoom  bool
	)

	for _, line := range strings.SplitAfter(source, "\n") {
		if strings.Contains(line, zoomMarker) {
			fmt.Fprintf(&out, "# Zooming out\ngui_wv_zoom_outfull -id ${%s}\n", settings.WaveName)
			out.WriteString(streams.View)
			out.WriteString(streams.Collapse)
			out.WriteString("\n")

			foundZoom = true

			continue
		}

		out.WriteString(line)

		if strings.TrimSpace(line) == groupsMarker {
			out.WriteString("\n")
			out.WriteString(streams.Groups)

			foundGroup = true
		}
	}

	if !foundGroup {
		return "", ErrMarkerNotFound.With(slog.String("marker", groupsMarker))
	}

	if !foundZoom {
		return "", ErrMarkerNotFound.With(slog.String("marker", zoomMarker))
	}

	return out.String(), nil
}
