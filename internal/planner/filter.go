package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// evenDimensionsFilter forces H.264-safe even dimensions; yuv420p cannot
// represent odd widths or heights.
const evenDimensionsFilter = "scale=trunc(iw/2)*2:trunc(ih/2)*2"

// BuildVideoFilter constructs the comma-joined -vf chain: optional
// timestamp scaling for speed, the even-dimensions safety scale, and the
// constant-frame-rate conversion. The chain is never empty.
func BuildVideoFilter(speed float64) string {
	var filters []string

	// setpts=PTS/speed: faster playback divides timestamps, slower
	// multiplies.
	if !nearlyOne(speed) {
		filters = append(filters, "setpts=PTS/"+formatRatio(speed))
	}

	filters = append(filters, evenDimensionsFilter)
	filters = append(filters, fmt.Sprintf("fps=%d", FrameRate))
	return strings.Join(filters, ",")
}

// nearlyOne reports whether the speed factor is close enough to 1.0 that
// no speed filters are needed.
func nearlyOne(speed float64) bool {
	return speed > 0.9995 && speed < 1.0005
}

// formatRatio renders a filter ratio without trailing zeros ("2", "1.25").
func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
