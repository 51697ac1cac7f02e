package panels

import "github.com/justinpbarnett/runlogs/internal/logsource"

// RunStoreUpdatedMsg is sent when any run in the store changes.
type RunStoreUpdatedMsg struct{}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// LoadingChangedMsg is sent when the loading tracker flips between idle
// and busy.
type LoadingChangedMsg struct{}

// YankMsg asks the app to copy Text to the clipboard.
type YankMsg struct {
	Text  string
	Lines int
}

// FetchDirection says which way a log page request moves.
type FetchDirection int

const (
	FetchLatest FetchDirection = iota
	FetchOlder
	FetchNewer
)

func (d FetchDirection) String() string {
	switch d {
	case FetchOlder:
		return "older"
	case FetchNewer:
		return "newer"
	default:
		return "latest"
	}
}

// LogPageMsg carries the result of a log page fetch back to the LogView
// instance identified by Epoch.
type LogPageMsg struct {
	Epoch     uint64
	Direction FetchDirection
	Page      logsource.Page
	Err       error
}

// LogFollowTickMsg wakes a following LogView to poll for new lines.
type LogFollowTickMsg struct {
	Epoch uint64
	Seq   int
}

// epochMsg is implemented by messages addressed to one LogView mount.
type epochMsg interface {
	MsgEpoch() uint64
}

func (m LogPageMsg) MsgEpoch() uint64       { return m.Epoch }
func (m LogFollowTickMsg) MsgEpoch() uint64 { return m.Epoch }
