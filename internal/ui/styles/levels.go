package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// levelScanFields bounds how far into a line LogLevel looks; levels come
// after a timestamp and maybe a logger name.
const levelScanFields = 4

var (
	levelErrorStyle = lipgloss.NewStyle().Foreground(StatusError)
	levelWarnStyle  = lipgloss.NewStyle().Foreground(StatusWarning)
)

// LogLevel returns the severity word near the start of line, upper-cased,
// or "" if there is none.
func LogLevel(line string) string {
	fields := strings.Fields(line)
	if len(fields) > levelScanFields {
		fields = fields[:levelScanFields]
	}
	for _, f := range fields {
		f = strings.ToUpper(strings.Trim(f, "[]:"))
		switch f {
		case "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "CRITICAL", "FATAL":
			return f
		}
	}
	return ""
}

// LevelStyle is the gutter style for a line of the given severity.
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR", "CRITICAL", "FATAL":
		return levelErrorStyle
	case "WARN", "WARNING":
		return levelWarnStyle
	case "DEBUG":
		return TextDimStyle
	default:
		return LineNumberStyle
	}
}
