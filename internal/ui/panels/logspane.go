package panels

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/justinpbarnett/runlogs/internal/loading"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui/border"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
)

// NotStartedNotice is shown instead of logs for runs still in CREATED.
const NotStartedNotice = "Run has not started. There are no logs yet."

// mountEpochs hands out LogView epochs. It is process-wide so epochs from
// different panes never collide.
var mountEpochs atomic.Uint64

type LogsPaneParams struct {
	Source   logsource.Source
	Tracker  *loading.Tracker
	Template LineTemplate
	Options  LogViewOptions
}

// LogsPane shows the selected run's log: a filter input above a scroll
// region driven by a LogView, with the view's footer floating at the
// bottom of the region. The LogView is remounted whenever the run id or
// the filter changes.
type LogsPane struct {
	params   LogsPaneParams
	run      *run.Run
	filter   string
	input    textinput.Model
	scroll   *ScrollRegion
	footer   *FooterSlot
	loading  *loading.Handle
	logView  *LogView
	template LineTemplate
	width    int
	height   int
	focused  bool
	closed   bool
}

func NewLogsPane(p LogsPaneParams) LogsPane {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Filter logs…"
	ti.CharLimit = 0

	tmpl := p.Template
	if tmpl == nil {
		tmpl = ConciseLineTemplate{}
	}

	var handle *loading.Handle
	if p.Tracker != nil {
		handle = p.Tracker.Handle("logs-pane")
	}

	return LogsPane{
		params:   p,
		input:    ti,
		scroll:   NewScrollRegion(),
		footer:   &FooterSlot{},
		loading:  handle,
		template: tmpl,
	}
}

func (p LogsPane) Update(msg tea.Msg) (LogsPane, tea.Cmd) {
	switch msg := msg.(type) {
	case epochMsg:
		if p.logView == nil || p.logView.Closed() || msg.MsgEpoch() != p.logView.Epoch() {
			return p, nil
		}
		return p, p.logView.Update(msg)
	case GTimerExpiredMsg:
		if p.logView != nil {
			return p, p.logView.Update(msg)
		}
		return p, nil
	case tea.KeyMsg:
		if !p.interactive() {
			return p, nil
		}
		if p.input.Focused() {
			return p.updateInput(msg)
		}
		if msg.String() == "/" {
			p.input.Focus()
			return p, textinput.Blink
		}
		if p.logView != nil {
			return p, p.logView.Update(msg)
		}
		return p, nil
	}
	if p.input.Focused() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *LogsPane) updateInput(msg tea.KeyMsg) (LogsPane, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		p.input.Blur()
		return *p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if v := p.input.Value(); v != p.filter {
		p.filter = v
		return *p, tea.Batch(cmd, p.remount())
	}
	return *p, cmd
}

// SetRun points the pane at r. A different run id remounts the LogView;
// a run that has not started unmounts it.
func (p *LogsPane) SetRun(r *run.Run) tea.Cmd {
	if p.closed {
		return nil
	}
	if r == nil {
		p.run = nil
		p.unmount()
		p.input.Blur()
		return nil
	}

	rc := *r
	p.run = &rc
	if !rc.HasStarted() {
		p.unmount()
		p.input.Blur()
		return nil
	}
	if p.logView == nil || p.logView.LogSource() != rc.ID {
		return p.remount()
	}
	return nil
}

// SetFilter replaces the filter as if it had been typed.
func (p *LogsPane) SetFilter(filter string) tea.Cmd {
	p.input.SetValue(filter)
	if filter == p.filter {
		return nil
	}
	p.filter = filter
	if !p.interactive() {
		return nil
	}
	return p.remount()
}

func (p *LogsPane) remount() tea.Cmd {
	p.unmount()

	epoch := mountEpochs.Add(1)
	p.footer.Reset(epoch)
	p.logView = NewLogView(LogViewParams{
		Source:    p.params.Source,
		LogSource: p.run.ID,
		Filter:    p.filter,
		Scroll:    p.scroll,
		Footer:    p.footer,
		Loading:   p.loading,
		Template:  p.template,
		Epoch:     epoch,
		Options:   p.params.Options,
	})
	log.Debug("mounted log view", "key", p.logView.Key(), "epoch", epoch)
	return p.logView.Init()
}

func (p *LogsPane) unmount() {
	if p.logView == nil {
		return
	}
	p.template = p.logView.Template()
	p.logView.Close()
	p.logView = nil
	p.footer.Clear()
}

// Close tears down the mounted LogView and withdraws this pane's
// loading contribution, whatever its state.
func (p *LogsPane) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.unmount()
	p.loading.Release()
}

func (p LogsPane) interactive() bool {
	return !p.closed && p.run != nil && p.run.HasStarted()
}

func (p LogsPane) View() string {
	title := "[2] Logs"
	if p.run != nil {
		name := p.run.Name
		if name == "" {
			name = text.ShortID(p.run.ID)
		}
		title = "[2] Logs: " + name
	}

	innerW := p.width - 2
	if innerW < 0 {
		innerW = 0
	}

	var content string
	var keybinds []border.Keybind
	switch {
	case p.run == nil:
	case !p.run.HasStarted():
		content = styles.NoticeStyle.Render(NotStartedNotice)
	default:
		region := p.scroll.View()
		if p.footer.HasProvider() {
			region = border.OverlayBottom(region, p.footer.Render(innerW), innerW)
		}
		content = p.input.View() + "\n" + region
		if p.focused && p.logView != nil {
			keybinds = p.logView.Keybinds()
		}
	}

	panel := border.Panel{Title: title, Keybinds: keybinds, Focused: p.focused}
	if p.run != nil {
		panel.Badge = p.badge()
	}
	return panel.Render(content, p.width, p.height)
}

// badge prefixes the run state with the log view's mode.
func (p LogsPane) badge() string {
	state := string(p.run.FutureState)
	switch {
	case p.logView == nil:
	case p.logView.Copying():
		return "COPY · " + state
	case p.logView.Following():
		return "FOLLOW · " + state
	}
	return state
}

func (p *LogsPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	innerW := w - 2
	innerH := h - 2
	p.input.Width = innerW - 4
	p.scroll.SetSize(innerW, innerH-1) // filter row
	if p.logView != nil {
		p.logView.Relayout()
	}
}

func (p *LogsPane) SetFocused(focused bool) {
	p.focused = focused
	if !focused {
		p.input.Blur()
	}
}

// ConsumesKeys reports whether typed keys belong to the filter input.
func (p LogsPane) ConsumesKeys() bool {
	return p.input.Focused()
}

func (p LogsPane) Filter() string           { return p.filter }
func (p LogsPane) LogView() *LogView        { return p.logView }
func (p LogsPane) Footer() *FooterSlot      { return p.footer }
func (p LogsPane) Loading() *loading.Handle { return p.loading }
func (p LogsPane) Scroll() *ScrollRegion    { return p.scroll }
