package layout

// Layout holds the computed cell dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	RunListWidth  int
	RunListHeight int
	LogsWidth     int
	LogsHeight    int

	StatusBarWidth int
}

const (
	MinWidth  = 60
	MinHeight = 12

	LeftColWeight = 0.32
	// The run list never grows past this; wide terminals go to the logs.
	MaxRunListWidth = 56
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row for the status bar before splitting.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1 // status bar

	runListWidth := int(float64(termWidth) * LeftColWeight)
	if runListWidth > MaxRunListWidth {
		runListWidth = MaxRunListWidth
	}

	l.RunListWidth = runListWidth
	l.RunListHeight = usableHeight
	l.LogsWidth = termWidth - runListWidth
	l.LogsHeight = usableHeight
	l.StatusBarWidth = termWidth

	return l
}
