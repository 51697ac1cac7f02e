package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// Truncate cuts s to at most width cells, ending in an ellipsis when
// anything was dropped. Escape sequences do not count toward the width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

// TruncateLeft keeps the tail of s so the end of a long path stays
// readable, e.g. "…nlogs/runs".
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= width {
		return s
	}
	if width == 1 {
		return ellipsis
	}
	return ellipsis + ansi.TruncateLeft(s, w-width+1, "")
}

// PadRight fills s with spaces up to width cells. Wider strings are
// returned as is.
func PadRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// Fit truncates or pads s to exactly width cells.
func Fit(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}
