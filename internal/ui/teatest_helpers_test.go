package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/runlogs/internal/config"
	"github.com/justinpbarnett/runlogs/internal/loading"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui/panels"
)

const waitDuration = 3 * time.Second

type testEnv struct {
	store   *run.Store
	src     *logsource.MemorySource
	tracker *loading.Tracker
	poller  *run.Poller
}

// newTestEnv builds a store with three runs, newest first: a CREATED run,
// a SCHEDULED run with logs and a RESOLVED run with logs.
func newTestEnv() testEnv {
	now := time.Now()
	store := run.NewStore()
	src := logsource.NewMemorySource()

	store.Add(&run.Run{ID: "done01", Name: "nightly-etl", FutureState: run.StateResolved, CreatedAt: now.Add(-time.Hour), StartedAt: now.Add(-time.Hour), ResolvedAt: now.Add(-50 * time.Minute)})
	src.Append("done01", "INFO extract", "INFO load", "INFO finished")
	store.Add(&run.Run{ID: "active", Name: "train-model", FutureState: run.StateScheduled, CreatedAt: now.Add(-10 * time.Minute), StartedAt: now.Add(-9 * time.Minute)})
	src.Append("active", "INFO epoch 1", "ERROR nan loss", "INFO epoch 2")
	store.Add(&run.Run{ID: "new001", Name: "backfill", FutureState: run.StateCreated, CreatedAt: now})

	return testEnv{
		store:   store,
		src:     src,
		tracker: loading.NewTracker(),
		poller:  run.NewPoller(staticCatalog{store: store}, store, time.Minute),
	}
}

func (e testEnv) app() App {
	cfg := config.DefaultConfig()
	return NewApp(&cfg, Deps{
		Store:       e.store,
		Source:      e.src,
		Tracker:     e.tracker,
		Poller:      e.poller,
		SourceLabel: "test",
	})
}

// staticCatalog lists whatever the store already holds.
type staticCatalog struct{ store *run.Store }

func (c staticCatalog) Runs(context.Context) ([]run.Run, error) { return c.store.List(), nil }

// appAdapter wraps the App so teatest never blocks on Init side effects
// such as the store change listener.
type appAdapter struct {
	app App
}

func (a *appAdapter) Init() tea.Cmd {
	return a.app.startup
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

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

// settle feeds the log pages, yank and refresh results produced by cmd
// back into the app until none are left.
func settle(a App, cmd tea.Cmd) App {
	for i := 0; i < 10 && cmd != nil; i++ {
		var next []tea.Cmd
		for _, msg := range execCmd(cmd) {
			switch msg.(type) {
			case panels.LogPageMsg, YankMsg, YankDoneMsg, RefreshDoneMsg:
				m, c := a.Update(msg)
				a = m.(App)
				next = append(next, c)
			}
		}
		cmd = tea.Batch(next...)
	}
	return a
}

func update(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
