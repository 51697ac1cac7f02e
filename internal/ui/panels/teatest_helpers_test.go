package panels

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/runlogs/internal/logsource"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	init     func() tea.Cmd
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd {
	if a.init == nil {
		return nil
	}
	return a.init()
}
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapRunList creates a tea.Model adapter around a RunList for teatest use.
func wrapRunList(rl *RunList) tea.Model {
	return panelAdapter{
		view: func() string { return rl.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newRL, cmd := rl.Update(msg)
			*rl = newRL
			return cmd
		},
	}
}

// wrapLogsPane creates a tea.Model adapter around a LogsPane. init runs
// once the program starts, typically to select a run.
func wrapLogsPane(p *LogsPane, init func() tea.Cmd) tea.Model {
	return panelAdapter{
		init: init,
		view: func() string { return p.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newP, cmd := p.Update(msg)
			*p = newP
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view: func() string { return sb.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newSB, cmd := sb.Update(msg)
			*sb = newSB
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

// cmdTimeout bounds how long execCmd waits on a single command. Fetches
// against in-memory sources return at once; timers and cursor blinks are
// dropped.
const cmdTimeout = 200 * time.Millisecond

// execCmd runs cmd and any batched children, returning the messages that
// arrive within cmdTimeout.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdTimeout):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds the messages produced by cmd back into update until no
// further page or tick messages are produced.
func pump(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	for i := 0; i < 20 && cmd != nil; i++ {
		var next []tea.Cmd
		for _, msg := range execCmd(cmd) {
			switch msg.(type) {
			case LogPageMsg, LogFollowTickMsg:
				next = append(next, update(msg))
			}
		}
		cmd = tea.Batch(next...)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// errSource fails every request with err.
type errSource struct{ err error }

func (s errSource) Lines(context.Context, logsource.Query) (logsource.Page, error) {
	return logsource.Page{}, s.err
}

// blockingSource never answers until its context is cancelled.
type blockingSource struct{}

func (blockingSource) Lines(ctx context.Context, _ logsource.Query) (logsource.Page, error) {
	<-ctx.Done()
	return logsource.Page{}, ctx.Err()
}
