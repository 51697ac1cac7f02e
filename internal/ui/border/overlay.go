package border

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// OverlayBottom draws overlay right-aligned over the last line of content.
// Content lines are assumed to be at most width cells wide. An empty
// overlay returns content unchanged.
func OverlayBottom(content, overlay string, width int) string {
	if overlay == "" || width <= 0 {
		return content
	}
	ow := ansi.StringWidth(overlay)
	if ow > width {
		overlay = ansi.Truncate(overlay, width, "…")
		ow = ansi.StringWidth(overlay)
	}

	lines := strings.Split(content, "\n")
	last := lines[len(lines)-1]
	keep := width - ow
	base := ansi.Truncate(last, keep, "")
	if pad := keep - ansi.StringWidth(base); pad > 0 {
		base += strings.Repeat(" ", pad)
	}
	lines[len(lines)-1] = base + overlay
	return strings.Join(lines, "\n")
}
