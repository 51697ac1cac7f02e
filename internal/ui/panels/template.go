package panels

import (
	"fmt"
	"strings"

	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
	"github.com/muesli/reflow/wordwrap"
)

// LineTemplate turns one log line into one or more rendered rows no wider
// than width. Matches of filter are highlighted.
type LineTemplate interface {
	Name() string
	Render(line logsource.Line, filter string, width int) string
}

// ConciseLineTemplate renders the message only, one row per line.
type ConciseLineTemplate struct{}

func (ConciseLineTemplate) Name() string { return "concise" }

func (ConciseLineTemplate) Render(line logsource.Line, filter string, width int) string {
	msg := expandTabs(line.Text)
	return highlightMatches(text.Truncate(msg, width), filter)
}

// FullLineTemplate renders a line-number gutter, coloured by the line's
// severity, and wraps long messages under it.
type FullLineTemplate struct {
	// GutterWidth is the digit count reserved for line numbers.
	GutterWidth int
}

func (FullLineTemplate) Name() string { return "full" }

func (t FullLineTemplate) Render(line logsource.Line, filter string, width int) string {
	digits := t.GutterWidth
	if digits <= 0 {
		digits = 6
	}
	gutter := fmt.Sprintf("%*d ", digits, line.Number)
	indent := strings.Repeat(" ", len(gutter))

	bodyWidth := width - len(gutter)
	if bodyWidth < 8 {
		return ConciseLineTemplate{}.Render(line, filter, width)
	}

	wrapped := wordwrap.String(expandTabs(line.Text), bodyWidth)
	rows := strings.Split(wrapped, "\n")
	for i, row := range rows {
		// wordwrap leaves words longer than the limit intact
		row = highlightMatches(text.Truncate(row, bodyWidth), filter)
		if i == 0 {
			rows[i] = styles.LevelStyle(styles.LogLevel(line.Text)).Render(gutter) + row
		} else {
			rows[i] = indent + row
		}
	}
	return strings.Join(rows, "\n")
}

// TemplateByName maps a config value to a template, defaulting to concise.
func TemplateByName(name string) LineTemplate {
	if name == "full" {
		return FullLineTemplate{}
	}
	return ConciseLineTemplate{}
}

func toggleTemplate(t LineTemplate) LineTemplate {
	if t.Name() == "full" {
		return ConciseLineTemplate{}
	}
	return FullLineTemplate{}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// highlightMatches wraps each occurrence of filter with the highlight
// style. Matching is case-sensitive, the same rule the log sources filter
// with.
func highlightMatches(line, filter string) string {
	if filter == "" || !strings.Contains(line, filter) {
		return line
	}
	var b strings.Builder
	rest := line
	for {
		idx := strings.Index(rest, filter)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx])
		b.WriteString(styles.SearchHighlightStyle.Render(filter))
		rest = rest[idx+len(filter):]
	}
	return b.String()
}
