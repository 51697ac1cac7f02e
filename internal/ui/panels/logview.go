package panels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/runlogs/internal/loading"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/ui/border"
	"github.com/justinpbarnett/runlogs/internal/ui/selection"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultFollowInterval = time.Second
	defaultScrollSpeed    = 3
)

// LogViewOptions tune paging and display of a LogView.
type LogViewOptions struct {
	PageSize       int
	FollowInterval time.Duration
	Follow         bool
	ScrollSpeed    int
}

// LogViewParams is everything a LogView mount needs from its pane.
type LogViewParams struct {
	Source    logsource.Source
	LogSource string // run id
	Filter    string
	Scroll    *ScrollRegion
	Footer    *FooterSlot
	Loading   *loading.Handle
	Template  LineTemplate
	Epoch     uint64
	Options   LogViewOptions
}

// MountKey identifies a LogView mount. Two mounts with the same key show
// the same lines.
func MountKey(runID, filter string) string {
	return runID + "---" + filter
}

// LogView pages through one run's log for one filter. It is created for a
// single mount and discarded on the next one: Close cancels its fetches
// and any result that still arrives carries a stale epoch.
type LogView struct {
	params LogViewParams
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	lines         []logsource.Line
	rows          []string
	forwardCursor string
	reverseCursor string
	canForward    bool
	canBackward   bool
	info          string
	err           error
	loaded        bool
	fetching      bool

	follow      bool
	followSeq   int
	tickPending bool

	template LineTemplate
	gtap     DoubleTap
	copy     selection.CopyMode
}

func NewLogView(p LogViewParams) *LogView {
	if p.Template == nil {
		p.Template = ConciseLineTemplate{}
	}
	if p.Scroll == nil {
		p.Scroll = NewScrollRegion()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &LogView{
		params:   p,
		ctx:      ctx,
		cancel:   cancel,
		follow:   p.Options.Follow,
		template: p.Template,
		gtap:     NewDoubleTap(gTapIDLogView),
	}
	l.render()
	return l
}

// Init starts loading the newest page.
func (l *LogView) Init() tea.Cmd {
	return l.fetch(FetchLatest)
}

func (l *LogView) Key() string            { return MountKey(l.params.LogSource, l.params.Filter) }
func (l *LogView) LogSource() string      { return l.params.LogSource }
func (l *LogView) Filter() string         { return l.params.Filter }
func (l *LogView) Epoch() uint64          { return l.params.Epoch }
func (l *LogView) Following() bool        { return l.follow }
func (l *LogView) Closed() bool           { return l.closed }
func (l *LogView) Err() error             { return l.err }
func (l *LogView) Template() LineTemplate { return l.template }
func (l *LogView) Copying() bool          { return l.copy.Active() }

// Lines returns the lines loaded so far, oldest first.
func (l *LogView) Lines() []logsource.Line {
	out := make([]logsource.Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close cancels in-flight fetches, stops following and withdraws this
// mount's footer and loading contribution. It is safe to call twice.
func (l *LogView) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	l.followSeq++
	l.tickPending = false
	l.fetching = false
	l.params.Loading.Set(false)
	l.params.Footer.Set(l.params.Epoch, nil)
}

func (l *LogView) Update(msg tea.Msg) tea.Cmd {
	if l.closed {
		return nil
	}
	switch msg := msg.(type) {
	case LogPageMsg:
		if msg.Epoch != l.params.Epoch {
			return nil
		}
		return l.handlePage(msg)
	case LogFollowTickMsg:
		if msg.Epoch != l.params.Epoch || msg.Seq != l.followSeq {
			return nil
		}
		l.tickPending = false
		if !l.follow {
			return nil
		}
		if l.fetching {
			return l.scheduleFollow()
		}
		return l.fetch(FetchNewer)
	case GTimerExpiredMsg:
		l.gtap.HandleExpiry(msg)
		return nil
	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return nil
}

func (l *LogView) handleKey(msg tea.KeyMsg) tea.Cmd {
	scroll := l.params.Scroll
	step := l.params.Options.ScrollSpeed
	if step <= 0 {
		step = defaultScrollSpeed
	}

	if msg.String() != "g" {
		l.gtap.Reset()
	}
	if l.copy.Active() {
		return l.handleCopyKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		if scroll.AtBottom() {
			if l.canForward && !l.fetching {
				return l.fetch(FetchNewer)
			}
			return nil
		}
		scroll.ScrollBy(step)
	case "k", "up":
		l.stopFollow()
		if scroll.AtTop() {
			if l.canBackward && !l.fetching {
				return l.fetch(FetchOlder)
			}
			return nil
		}
		scroll.ScrollBy(-step)
	case "ctrl+u":
		if l.canBackward && !l.fetching {
			return l.fetch(FetchOlder)
		}
	case "ctrl+d":
		if l.canForward && !l.fetching {
			return l.fetch(FetchNewer)
		}
	case "G":
		scroll.GotoBottom()
	case "g":
		fired, cmd := l.gtap.Check()
		if fired {
			l.stopFollow()
			scroll.GotoTop()
		}
		return cmd
	case "f":
		if l.follow {
			l.stopFollow()
			return nil
		}
		l.follow = true
		scroll.GotoBottom()
		return l.scheduleFollow()
	case "t":
		atBottom := scroll.AtBottom()
		l.template = toggleTemplate(l.template)
		l.render()
		if atBottom {
			scroll.GotoBottom()
		}
	case "y":
		return l.yank()
	case "v":
		l.stopFollow()
		l.copy.Enter(len(l.rows), scroll)
		l.refreshContent()
	}
	return nil
}

func (l *LogView) handleCopyKey(msg tea.KeyMsg) tea.Cmd {
	scroll := l.params.Scroll
	n := len(l.rows)
	var cmd tea.Cmd
	switch msg.String() {
	case "esc", "v":
		l.copy.Reset()
	case "y":
		txt := l.copy.Yank(l.plainRows())
		l.copy.Reset()
		if txt != "" {
			count := strings.Count(txt, "\n") + 1
			cmd = func() tea.Msg { return YankMsg{Text: txt, Lines: count} }
		}
	case "j", "down":
		l.copy.Move(1, n, scroll)
	case "k", "up":
		l.copy.Move(-1, n, scroll)
	case "ctrl+d":
		l.copy.Move(scroll.Height()/2, n, scroll)
	case "ctrl+u":
		l.copy.Move(-scroll.Height()/2, n, scroll)
	case "G":
		l.copy.Bottom(n, scroll)
	case "g":
		var fired bool
		fired, cmd = l.gtap.Check()
		if fired {
			l.copy.Top(n, scroll)
		}
	}
	l.refreshContent()
	return cmd
}

func (l *LogView) stopFollow() {
	if !l.follow {
		return
	}
	l.follow = false
	l.followSeq++
	l.tickPending = false
}

func (l *LogView) scheduleFollow() tea.Cmd {
	if l.tickPending || l.closed {
		return nil
	}
	l.tickPending = true
	interval := l.params.Options.FollowInterval
	if interval <= 0 {
		interval = defaultFollowInterval
	}
	epoch, seq := l.params.Epoch, l.followSeq
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return LogFollowTickMsg{Epoch: epoch, Seq: seq}
	})
}

func (l *LogView) fetch(dir FetchDirection) tea.Cmd {
	if l.closed || l.params.Source == nil {
		return nil
	}
	q := logsource.Query{
		RunID:    l.params.LogSource,
		MaxLines: l.params.Options.PageSize,
		Filter:   l.params.Filter,
	}
	switch dir {
	case FetchOlder:
		if l.reverseCursor == "" {
			return nil
		}
		q.ReverseCursor = l.reverseCursor
	case FetchNewer:
		if l.forwardCursor == "" {
			dir = FetchLatest
		} else {
			q.ForwardCursor = l.forwardCursor
		}
	}

	l.fetching = true
	l.params.Loading.Set(true)
	log.Debug("fetching logs", "run", q.RunID, "direction", dir, "filter", q.Filter, "epoch", l.params.Epoch)

	ctx, src, epoch := l.ctx, l.params.Source, l.params.Epoch
	return func() tea.Msg {
		page, err := src.Lines(ctx, q)
		return LogPageMsg{Epoch: epoch, Direction: dir, Page: page, Err: err}
	}
}

func (l *LogView) handlePage(msg LogPageMsg) tea.Cmd {
	scroll := l.params.Scroll
	l.fetching = false
	l.params.Loading.Set(false)

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		l.err = msg.Err
		l.loaded = true
		log.Error("fetching logs", "run", l.params.LogSource, "direction", msg.Direction, "err", msg.Err)
		atBottom := scroll.AtBottom()
		l.render()
		if atBottom {
			scroll.GotoBottom()
		}
		l.publishFooter()
		if l.follow {
			return l.scheduleFollow()
		}
		return nil
	}

	l.err = nil
	page := msg.Page
	l.info = page.InfoMessage

	switch msg.Direction {
	case FetchLatest:
		l.lines = page.Lines
		l.forwardCursor = page.ForwardCursor
		l.reverseCursor = page.ReverseCursor
		l.canForward = page.CanContinueForward
		l.canBackward = page.CanContinueBackward
		l.render()
		scroll.GotoBottom()
	case FetchOlder:
		hadLines := len(l.lines) > 0
		before := scroll.LineCount()
		offset := scroll.YOffset()
		l.lines = append(append([]logsource.Line{}, page.Lines...), l.lines...)
		l.reverseCursor = page.ReverseCursor
		l.canBackward = page.CanContinueBackward
		l.render()
		if hadLines {
			// keep the line that was on top where it was
			scroll.SetYOffset(offset + scroll.LineCount() - before)
		}
	case FetchNewer:
		atBottom := scroll.AtBottom()
		l.lines = append(l.lines, page.Lines...)
		if page.ForwardCursor != "" {
			l.forwardCursor = page.ForwardCursor
		}
		l.canForward = page.CanContinueForward
		l.render()
		if atBottom || l.follow {
			scroll.GotoBottom()
		}
	}

	l.loaded = true
	l.publishFooter()
	log.Debug("log page loaded", "run", l.params.LogSource, "direction", msg.Direction, "lines", len(page.Lines))

	if l.follow {
		return l.scheduleFollow()
	}
	return nil
}

func (l *LogView) publishFooter() {
	l.params.Footer.Set(l.params.Epoch, l)
}

// Relayout re-renders at the scroll region's current width.
func (l *LogView) Relayout() {
	atBottom := l.params.Scroll.AtBottom()
	l.render()
	if atBottom {
		l.params.Scroll.GotoBottom()
	}
}

func (l *LogView) render() {
	l.rows = l.renderRows(l.params.Scroll.Width())
	if l.copy.Active() && l.copy.Cursor() >= len(l.rows) {
		l.copy.Reset()
	}
	l.refreshContent()
}

// refreshContent pushes the rendered rows to the scroll region, marking
// the copy selection.
func (l *LogView) refreshContent() {
	if !l.copy.Active() {
		l.params.Scroll.SetContent(strings.Join(l.rows, "\n"))
		return
	}
	width := l.params.Scroll.Width()
	out := make([]string, len(l.rows))
	for i, row := range l.rows {
		if l.copy.Contains(i) {
			row = styles.SelectedRowStyle.Width(width).Render(ansi.Strip(row))
		}
		out[i] = row
	}
	l.params.Scroll.SetContent(strings.Join(out, "\n"))
}

func (l *LogView) plainRows() []string {
	out := make([]string, len(l.rows))
	for i, row := range l.rows {
		out[i] = strings.TrimRight(ansi.Strip(row), " ")
	}
	return out
}

func (l *LogView) renderRows(width int) []string {
	if width <= 0 {
		width = 80
	}
	var rows []string
	for _, line := range l.lines {
		rows = append(rows, strings.Split(l.template.Render(line, l.params.Filter, width), "\n")...)
	}

	if len(l.lines) == 0 && l.err == nil {
		switch {
		case !l.loaded:
			rows = append(rows, styles.TextDimStyle.Render("Loading logs…"))
		case l.info != "":
			rows = append(rows, styles.NoticeStyle.Render(text.Truncate(l.info, width)))
		case l.params.Filter != "":
			rows = append(rows, styles.NoticeStyle.Render(text.Truncate(fmt.Sprintf("No lines match %q.", l.params.Filter), width)))
		default:
			rows = append(rows, styles.NoticeStyle.Render("No log lines for this run yet."))
		}
	}

	if l.err != nil {
		msg := wordwrap.String("Failed to load logs: "+l.err.Error(), width)
		for _, row := range strings.Split(msg, "\n") {
			rows = append(rows, styles.ErrorStyle.Render(text.Truncate(row, width)))
		}
	}
	return rows
}

// RenderFooter implements FooterProvider.
func (l *LogView) RenderFooter(width int) string {
	var s string
	count := text.FormatLines(len(l.lines))
	switch {
	case l.copy.Active():
		start, end := l.copy.Range()
		s = fmt.Sprintf("copy · %d rows (y to yank)", end-start+1)
	case l.fetching:
		s = "⟳ loading…"
	case l.err != nil:
		s = "✗ fetch failed"
	case l.follow:
		s = "● following · " + count
	case l.canForward:
		s = "▼ newer lines (j)"
	case l.canBackward && l.params.Scroll.AtTop():
		s = "▲ older lines (k)"
	case len(l.lines) == 0:
		return ""
	default:
		s = "end of log · " + count
	}
	return styles.FooterStyle.Render(text.Truncate(" "+s+" ", width))
}

// Keybinds lists the hints shown on the pane's bottom border.
func (l *LogView) Keybinds() []border.Keybind {
	if l.copy.Active() {
		return []border.Keybind{
			{Key: "y", Label: "ank"},
			{Key: "Esc", Label: " cancel"},
		}
	}
	follow := border.Keybind{Key: "f", Label: "ollow"}
	if l.follow {
		follow = border.Keybind{Key: "f", Label: " unfollow"}
	}
	return []border.Keybind{
		{Key: "/", Label: "filter"},
		follow,
		{Key: "t", Label: "emplate"},
		{Key: "y", Label: "ank"},
		{Key: "v", Label: " copy"},
	}
}

// yank copies the rows currently on screen as plain text.
func (l *LogView) yank() tea.Cmd {
	start, end := l.params.Scroll.VisibleRange()
	if start >= end || end > len(l.rows) || len(l.lines) == 0 {
		return nil
	}
	visible := l.plainRows()[start:end]
	txt := strings.Join(visible, "\n")
	n := len(visible)
	return func() tea.Msg { return YankMsg{Text: txt, Lines: n} }
}
