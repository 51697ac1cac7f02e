package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/runlogs/internal/ui/border"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
)

type helpEntry struct{ key, desc string }

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"j/k", "Move or scroll"},
		{"G/gg", "Jump to bottom/top"},
		{"h/l", "Focus runs/logs"},
		{"Tab", "Cycle panel focus"},
		{"↵", "Open logs for run"},
	}},
	{"Logs", []helpEntry{
		{"/", "Filter lines"},
		{"k/ctrl+u", "Load older lines at top"},
		{"j/ctrl+d", "Load newer lines at bottom"},
		{"f", "Follow new lines"},
		{"t", "Concise/full lines"},
		{"y", "Copy visible lines"},
		{"v", "Select lines to copy"},
	}},
	{"Global", []helpEntry{
		{"r", "Refresh runs"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
		{"Esc", "Close or cancel"},
	}},
}

const helpKeyWidth = 9

var (
	helpKeyStyle  = lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	helpDescStyle = styles.TextPrimaryStyle
)

// HelpOverlay is the keybind reference. It sizes itself to its content.
type HelpOverlay struct {
	body   string
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	var rows []string
	for i, sec := range helpSections {
		if i > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, styles.TitleStyle.Render(sec.title))
		for _, e := range sec.entries {
			rows = append(rows, " "+helpKeyStyle.Render(text.PadRight(e.key, helpKeyWidth))+" "+helpDescStyle.Render(e.desc))
		}
	}

	widest := 0
	for _, r := range rows {
		widest = max(widest, ansi.StringWidth(r))
	}
	return &HelpOverlay{
		body:   strings.Join(rows, "\n"),
		width:  widest + 4,
		height: len(rows) + 2,
	}
}

// Size is the overlay's outer width and height.
func (h HelpOverlay) Size() (int, int) { return h.width, h.height }

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	panel := border.Panel{
		Title:    "Keybinds",
		Keybinds: []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}},
		Focused:  true,
	}
	return panel.Render(" "+strings.ReplaceAll(h.body, "\n", "\n "), h.width, h.height)
}
