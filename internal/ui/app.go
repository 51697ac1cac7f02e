package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/justinpbarnett/runlogs/internal/config"
	"github.com/justinpbarnett/runlogs/internal/loading"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui/clipboard"
	"github.com/justinpbarnett/runlogs/internal/ui/layout"
	"github.com/justinpbarnett/runlogs/internal/ui/panels"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
)

const (
	panelRunList = 0
	panelLogs    = 1
	numPanels    = 2
)

const animInterval = 150 * time.Millisecond

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.Write

// Deps are the collaborators the App is built on.
type Deps struct {
	Store   *run.Store
	Source  logsource.Source
	Tracker *loading.Tracker
	// Poller backs manual refresh. It may be nil.
	Poller *run.Poller
	// SourceLabel is shown in the status bar.
	SourceLabel string
}

type App struct {
	config       *config.Config
	store        *run.Store
	selection    *run.Selection
	poller       *run.Poller
	tracker      *loading.Tracker
	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	runList      panels.RunList
	logsPane     panels.LogsPane
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	keys         KeyMap
	loadingCh    chan struct{}
	ready        bool
	startup      tea.Cmd
}

func NewApp(cfg *config.Config, d Deps) App {
	if d.Store == nil {
		d.Store = run.NewStore()
	}
	if d.Tracker == nil {
		d.Tracker = loading.NewTracker()
	}

	rl := panels.NewRunList(d.Store)
	rl.SetFocused(true)

	pane := panels.NewLogsPane(panels.LogsPaneParams{
		Source:   d.Source,
		Tracker:  d.Tracker,
		Template: panels.TemplateByName(cfg.Logs.Template),
		Options:  logViewOptions(cfg),
	})

	// transitions are coalesced; the status bar re-reads the tracker
	loadingCh := make(chan struct{}, 1)
	d.Tracker.OnChange(func(bool) {
		select {
		case loadingCh <- struct{}{}:
		default:
		}
	})

	sb := panels.NewStatusBar(d.Store, d.Tracker)
	sb.SetSource(d.SourceLabel)

	a := App{
		config:    cfg,
		store:     d.Store,
		selection: run.NewSelection(d.Store),
		poller:    d.Poller,
		tracker:   d.Tracker,
		runList:   rl,
		logsPane:  pane,
		statusBar: sb,
		keys:      DefaultKeyMap(),
		loadingCh: loadingCh,
	}
	a.startup = a.syncSelection()
	return a
}

func logViewOptions(cfg *config.Config) panels.LogViewOptions {
	return panels.LogViewOptions{
		PageSize:       cfg.Logs.PageSize,
		FollowInterval: time.Duration(cfg.Logs.FollowInterval) * time.Millisecond,
		Follow:         cfg.Logs.Follow != nil && *cfg.Logs.Follow,
		ScrollSpeed:    cfg.UI.LogScrollSpeed,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.startup,
		listenForChanges(a.store.Changes()),
		listenForLoading(a.loadingCh),
		a.statusBar.Init(),
		animTick(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case RunStoreUpdatedMsg:
		var cmd tea.Cmd
		a.runList, cmd = a.runList.Update(msg)
		return a, tea.Batch(cmd, a.syncSelection(), listenForChanges(a.store.Changes()))

	case panels.AnimTickMsg:
		a.runList, _ = a.runList.Update(msg)
		return a, animTick()

	case LoadingChangedMsg:
		log.Debug("loading changed", "loading", a.tracker.IsLoading(), "owners", a.tracker.Owners())
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, tea.Batch(cmd, listenForLoading(a.loadingCh))

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd

	case panels.GTimerExpiredMsg:
		var cmd1, cmd2 tea.Cmd
		a.runList, cmd1 = a.runList.Update(msg)
		a.logsPane, cmd2 = a.logsPane.Update(msg)
		return a, tea.Batch(cmd1, cmd2)

	case YankMsg:
		text, lines := msg.Text, msg.Lines
		return a, func() tea.Msg {
			return YankDoneMsg{Lines: lines, Err: writeClipboard(text)}
		}

	case YankDoneMsg:
		switch {
		case msg.Err != nil:
			log.Error("copying to clipboard", "err", msg.Err)
			a.statusBar.SetFlashWithLevel("Copy failed: "+msg.Err.Error(), panels.FlashError)
		case msg.Lines == 1:
			a.statusBar.SetFlashWithLevel("Copied 1 line", panels.FlashSuccess)
		case msg.Lines > 1:
			a.statusBar.SetFlashWithLevel(fmt.Sprintf("Copied %d lines", msg.Lines), panels.FlashSuccess)
		default:
			a.statusBar.SetFlashWithLevel("Copied run ID", panels.FlashSuccess)
		}
		return a, clearFlashAfter()

	case RefreshDoneMsg:
		if msg.Err != nil {
			log.Error("refreshing runs", "err", msg.Err)
			a.statusBar.SetFlashWithLevel("Refresh failed: "+msg.Err.Error(), panels.FlashError)
		} else {
			a.statusBar.SetFlashWithLevel(fmt.Sprintf("Refreshed %d runs", msg.Runs), panels.FlashInfo)
		}
		return a, clearFlashAfter()

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// log pages, follow ticks and cursor blinks belong to the pane
	var cmd tea.Cmd
	a.logsPane, cmd = a.logsPane.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a.quit()
	}

	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	// typed text goes to whichever input is open
	if a.inputActive() {
		return a.routeKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.FocusNext):
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Left):
		if a.focusedPanel == panelLogs {
			a.focusedPanel = panelRunList
			a.updateFocusState()
		}
		return a, nil
	case key.Matches(msg, a.keys.Right):
		if a.focusedPanel == panelRunList {
			a.focusedPanel = panelLogs
			a.updateFocusState()
		}
		return a, nil
	case key.Matches(msg, a.keys.Open):
		if a.focusedPanel == panelRunList {
			a.focusedPanel = panelLogs
			a.updateFocusState()
			return a, nil
		}
	case key.Matches(msg, a.keys.Help):
		if a.helpOverlay == nil {
			a.helpOverlay = panels.NewHelpOverlay()
		} else {
			a.helpOverlay = nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Refresh):
		if a.poller != nil {
			return a, a.refresh()
		}
		return a, nil
	}

	return a.routeKey(msg)
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, a.runList.View(), a.logsPane.View())
	fullLayout := lipgloss.JoinVertical(lipgloss.Left, topRow, a.statusBar.View())

	if a.helpOverlay != nil {
		fullLayout = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.helpOverlay.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return fullLayout
}

// LogsPane exposes the logs pane for tests and the CLI.
func (a App) LogsPane() panels.LogsPane { return a.logsPane }

// Selection returns the shared run selection.
func (a App) Selection() *run.Selection { return a.selection }

func (a App) inputActive() bool {
	switch a.focusedPanel {
	case panelRunList:
		return a.runList.FilterActive()
	case panelLogs:
		return a.logsPane.ConsumesKeys()
	}
	return false
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.focusedPanel {
	case panelRunList:
		var cmd tea.Cmd
		a.runList, cmd = a.runList.Update(msg)
		return a, tea.Batch(cmd, a.syncSelection())
	case panelLogs:
		var cmd tea.Cmd
		a.logsPane, cmd = a.logsPane.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.logsPane.Close()
	return a, tea.Quit
}

func (a App) refresh() tea.Cmd {
	p, store := a.poller, a.store
	timeout := time.Duration(a.config.Source.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := p.Refresh(ctx)
		return RefreshDoneMsg{Runs: store.Count(), Err: err}
	}
}

// syncSelection points the shared selection and the logs pane at the run
// under the run list cursor.
func (a *App) syncSelection() tea.Cmd {
	var id string
	if sel := a.runList.SelectedRun(); sel != nil {
		id = sel.ID
	}
	if id != a.selection.ID() {
		log.Debug("selected run", "run", id)
	}
	a.selection.Select(id)
	return a.logsPane.SetRun(a.selection.SelectedRun())
}

func (a *App) propagateSizes() {
	l := a.layout
	a.runList.SetSize(l.RunListWidth, l.RunListHeight)
	a.logsPane.SetSize(l.LogsWidth, l.LogsHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.runList.SetFocused(a.focusedPanel == panelRunList)
	a.logsPane.SetFocused(a.focusedPanel == panelLogs)
}

func listenForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return RunStoreUpdatedMsg{}
	}
}

func listenForLoading(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return LoadingChangedMsg{}
	}
}

func animTick() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return panels.AnimTickMsg{}
	})
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}
