package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
)

const keybindGap = "  "

var (
	keyStyle   = lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(styles.KeybindLabel)
)

// Keybind is a hint on a panel's bottom edge, drawn as [f]ollow.
type Keybind struct {
	Key   string
	Label string
}

func (k Keybind) String() string {
	return keyStyle.Render("["+k.Key+"]") + labelStyle.Render(k.Label)
}

// Width is the cell width of the rendered hint.
func (k Keybind) Width() int {
	return 2 + ansi.StringWidth(k.Key) + ansi.StringWidth(k.Label)
}

// joinKeybinds renders as many hints as fit in limit cells, in order. The
// first hint that does not fit ends the row.
func joinKeybinds(kbs []Keybind, limit int) string {
	var parts []string
	used := 0
	for _, kb := range kbs {
		w := kb.Width()
		if len(parts) > 0 {
			w += len(keybindGap)
		}
		if used+w > limit {
			break
		}
		parts = append(parts, kb.String())
		used += w
	}
	return strings.Join(parts, keybindGap)
}
