package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

// Panel is a rounded frame. The title sits at the left of the top edge and
// the badge at its right; keybinds are shown on the bottom edge only while
// the panel is focused.
type Panel struct {
	Title    string
	Badge    string
	Keybinds []Keybind
	Focused  bool
}

// Render frames content in a width x height box. Content is cropped or
// padded to fill the inside exactly.
func (p Panel) Render(content string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	inner := width - 2
	bar := lipgloss.NewStyle().Foreground(p.borderColor())

	var hints string
	if p.Focused && len(p.Keybinds) > 0 {
		hints = joinKeybinds(p.Keybinds, inner-3)
	}

	rows := make([]string, 0, height)
	rows = append(rows, edge(bar, cornerTL, cornerTR, p.titleText(), p.badgeText(), inner))
	for _, line := range fit(content, inner, height-2) {
		rows = append(rows, bar.Render(vertBar)+line+bar.Render(vertBar))
	}
	rows = append(rows, edge(bar, cornerBL, cornerBR, hints, "", inner))
	return strings.Join(rows, "\n")
}

func (p Panel) borderColor() lipgloss.AdaptiveColor {
	if p.Focused {
		return styles.BorderFocused
	}
	return styles.BorderUnfocused
}

func (p Panel) titleText() string {
	if p.Title == "" {
		return ""
	}
	if p.Focused {
		return styles.TitleStyle.Render(p.Title)
	}
	return styles.TextSecondaryStyle.Bold(true).Render(p.Title)
}

func (p Panel) badgeText() string {
	if p.Badge == "" {
		return ""
	}
	return styles.TextSecondaryStyle.Render(p.Badge)
}

// edge draws one horizontal edge, ╭─ left ───── right ─╮, in exactly
// inner+2 cells. The right label is dropped first when space runs out,
// then the left one is truncated.
func edge(bar lipgloss.Style, lc, rc, left, right string, inner int) string {
	lw, rw := ansi.StringWidth(left), ansi.StringWidth(right)
	if left != "" {
		lw += 3 // "─ " before, " " after
	}
	if right != "" {
		rw += 3 // " " before, " ─" after
	}
	if lw+rw > inner {
		right, rw = "", 0
	}
	if lw > inner {
		left = ansi.Truncate(left, max(inner-3, 0), "…")
		lw = ansi.StringWidth(left) + 3
		if inner < 3 {
			left, lw = "", 0
		}
	}

	var b strings.Builder
	b.WriteString(bar.Render(lc))
	if left != "" {
		b.WriteString(bar.Render(horizBar+" ") + left + bar.Render(" "))
	}
	b.WriteString(bar.Render(strings.Repeat(horizBar, inner-lw-rw)))
	if right != "" {
		b.WriteString(bar.Render(" ") + right + bar.Render(" "+horizBar))
	}
	b.WriteString(bar.Render(rc))
	return b.String()
}

// fit returns exactly height lines of exactly width cells.
func fit(content string, width, height int) []string {
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[i] = line
	}
	return lines
}
