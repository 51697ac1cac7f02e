package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const doubleTapWindow = 300 * time.Millisecond

// Panels that own a DoubleTap. Expiry messages are routed by these ids.
const (
	gTapIDLogView = iota + 1
	gTapIDRunList
)

// GTimerExpiredMsg closes the window opened by a first "g" press. Seq ties
// it to that press so an old timer cannot cancel a newer one.
type GTimerExpiredMsg struct {
	ID  int
	Seq int
}

// DoubleTap recognises "gg".
type DoubleTap struct {
	id      int
	seq     int
	pending bool
}

func NewDoubleTap(id int) DoubleTap {
	return DoubleTap{id: id}
}

func (dt *DoubleTap) Pending() bool { return dt.pending }

// Check records a "g" press. The second press inside the window reports
// fired; the first returns the timer that closes the window.
func (dt *DoubleTap) Check() (fired bool, cmd tea.Cmd) {
	if dt.pending {
		dt.pending = false
		return true, nil
	}
	dt.pending = true
	dt.seq++
	msg := GTimerExpiredMsg{ID: dt.id, Seq: dt.seq}
	return false, tea.Tick(doubleTapWindow, func(time.Time) tea.Msg { return msg })
}

// Reset forgets a first press, e.g. when another key arrives in between.
func (dt *DoubleTap) Reset() {
	dt.pending = false
}

// HandleExpiry closes the window if msg belongs to the latest press.
func (dt *DoubleTap) HandleExpiry(msg GTimerExpiredMsg) bool {
	if msg.ID != dt.id {
		return false
	}
	if msg.Seq == dt.seq {
		dt.pending = false
	}
	return true
}
