package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui/border"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
)

// Fixed column widths. Every column after the icon starts with a space.
const (
	colIconW  = 2
	colIDW    = 7
	colStateW = 14
	colTimeW  = 8
	minNameW  = 6
)

var runSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// AnimTickMsg advances the run list spinners and refreshes elapsed times.
type AnimTickMsg struct{}

// RunList is the left panel: runs newest first, with a filter.
type RunList struct {
	store        *run.Store
	filtered     []run.Run
	table        table.Model
	width        int
	height       int
	gtap         DoubleTap
	filterActive bool
	filterText   string
	filterInput  textinput.Model
	focused      bool
	tickStep     int
}

func NewRunList(store *run.Store) RunList {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Filter..."
	ti.CharLimit = 64

	tbl := table.New(table.WithFocused(true))
	st := table.DefaultStyles()
	st.Header = styles.TextSecondaryStyle
	st.Cell = lipgloss.NewStyle()
	st.Selected = styles.SelectedRowStyle
	tbl.SetStyles(st)

	rl := RunList{
		store:       store,
		table:       tbl,
		filterInput: ti,
		gtap:        NewDoubleTap(gTapIDRunList),
	}
	rl.applyFilter()
	return rl
}

func (r RunList) Update(msg tea.Msg) (RunList, tea.Cmd) {
	switch msg := msg.(type) {
	case RunStoreUpdatedMsg:
		var keep string
		if sel := r.SelectedRun(); sel != nil {
			keep = sel.ID
		}
		r.applyFilter()
		if keep != "" {
			r.SelectByID(keep)
		}
		return r, nil
	case AnimTickMsg:
		r.tickStep++
		r.refreshRows()
		return r, nil
	case GTimerExpiredMsg:
		r.gtap.HandleExpiry(msg)
		return r, nil
	case tea.KeyMsg:
		if r.filterActive {
			return r.updateFilter(msg)
		}
		return r.handleKey(msg)
	}
	return r, nil
}

func (r RunList) handleKey(msg tea.KeyMsg) (RunList, tea.Cmd) {
	if msg.String() != "g" {
		r.gtap.Reset()
	}

	switch msg.String() {
	case "/":
		r.filterActive = true
		r.filterInput.Focus()
		r.layoutTable()
		return r, textinput.Blink
	case "j", "down":
		r.table.MoveDown(1)
	case "k", "up":
		r.table.MoveUp(1)
	case "G":
		r.table.GotoBottom()
	case "g":
		fired, cmd := r.gtap.Check()
		if fired {
			r.table.GotoTop()
		}
		return r, cmd
	case "y":
		if sel := r.SelectedRun(); sel != nil {
			id := sel.ID
			return r, func() tea.Msg { return YankMsg{Text: id} }
		}
	}
	return r, nil
}

func (r RunList) updateFilter(msg tea.KeyMsg) (RunList, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		r.filterInput.SetValue("")
		fallthrough
	case tea.KeyEnter:
		r.filterActive = false
		r.filterInput.Blur()
		r.filterText = r.filterInput.Value()
		r.applyFilter()
		r.layoutTable()
		return r, nil
	}

	var cmd tea.Cmd
	r.filterInput, cmd = r.filterInput.Update(msg)
	if v := r.filterInput.Value(); v != r.filterText {
		r.filterText = v
		r.applyFilter()
		r.table.GotoTop()
	}
	return r, cmd
}

func (r RunList) View() string {
	inner := max(r.width-2, 0)

	active := 0
	for _, rn := range r.filtered {
		if rn.HasStarted() && !rn.IsTerminal() {
			active++
		}
	}

	var b strings.Builder
	if r.filterActive {
		b.WriteString(text.Truncate(r.filterInput.View(), inner))
		b.WriteString("\n")
	}
	switch {
	case len(r.filtered) > 0:
		b.WriteString(r.table.View())
	case r.filterText != "":
		b.WriteString(styles.NoticeStyle.Render("No runs match the filter."))
	default:
		b.WriteString(styles.NoticeStyle.Render("No runs yet."))
	}

	panel := border.Panel{
		Title:   fmt.Sprintf("[1] Runs (%d active)", active),
		Focused: r.focused,
	}
	if n := len(r.filtered); n > 0 {
		panel.Badge = fmt.Sprintf("%d/%d", r.table.Cursor()+1, n)
	}
	if r.focused {
		panel.Keybinds = []border.Keybind{
			{Key: "↵", Label: " logs"},
			{Key: "y", Label: "ank ID"},
			{Key: "/", Label: "filter"},
		}
	}
	return panel.Render(b.String(), r.width, r.height)
}

func (r *RunList) SetSize(w, h int) {
	r.width = w
	r.height = h
	r.filterInput.Width = max(w-6, 1)
	r.layoutTable()
}

func (r *RunList) SetFocused(focused bool) {
	r.focused = focused
}

// Cursor is the index of the selected row among the filtered runs.
func (r RunList) Cursor() int { return r.table.Cursor() }

func (r RunList) SelectedRun() *run.Run {
	i := r.table.Cursor()
	if i < 0 || i >= len(r.filtered) {
		return nil
	}
	rn := r.filtered[i]
	return &rn
}

// FilterActive reports whether the filter input has focus.
func (r RunList) FilterActive() bool {
	return r.filterActive
}

// SelectByID moves the cursor to the run with the given id, reporting
// whether it is in the filtered list.
func (r *RunList) SelectByID(id string) bool {
	for i, rn := range r.filtered {
		if rn.ID == id {
			r.table.SetCursor(i)
			return true
		}
	}
	return false
}

// layoutTable sizes the columns and rows to the panel.
func (r *RunList) layoutTable() {
	inner := max(r.width-2, 0)
	rows := max(r.height-2, 1)
	if r.filterActive {
		rows = max(rows-1, 1)
	}

	nameW := max(inner-colIconW-colIDW-colStateW-colTimeW, minNameW)
	r.table.SetColumns([]table.Column{
		{Title: "", Width: colIconW},
		{Title: " ID", Width: colIDW},
		{Title: " NAME", Width: nameW},
		{Title: " STATE", Width: colStateW},
		{Title: fmt.Sprintf("%*s", colTimeW, "TIME"), Width: colTimeW},
	})
	r.table.SetWidth(inner)
	r.table.SetHeight(rows)
	r.refreshRows()
}

func (r *RunList) applyFilter() {
	all := r.store.List()
	if r.filterText == "" {
		r.filtered = all
	} else {
		query := strings.ToLower(r.filterText)
		r.filtered = make([]run.Run, 0, len(all))
		for _, rn := range all {
			if runMatches(rn, query) {
				r.filtered = append(r.filtered, rn)
			}
		}
	}
	r.refreshRows()
}

// refreshRows rebuilds the table rows from the filtered runs, keeping the
// cursor in range.
func (r *RunList) refreshRows() {
	rows := make([]table.Row, len(r.filtered))
	for i, rn := range r.filtered {
		rows[i] = r.row(rn)
	}
	cursor := r.table.Cursor()
	r.table.SetRows(rows)
	r.table.SetCursor(min(max(cursor, 0), max(len(rows)-1, 0)))
}

func (r RunList) row(rn run.Run) table.Row {
	icon := rn.StatusIcon()
	elapsed := "-"
	if rn.HasStarted() {
		elapsed = text.FormatElapsed(rn.Elapsed())
		if !rn.IsTerminal() {
			icon = runSpinnerFrames[r.tickStep%len(runSpinnerFrames)]
		}
	}
	return table.Row{
		icon,
		" " + text.ShortID(rn.ID),
		" " + runName(rn),
		" " + string(rn.FutureState),
		fmt.Sprintf("%*s", colTimeW, elapsed),
	}
}

func runMatches(rn run.Run, query string) bool {
	for _, field := range []string{rn.ID, rn.Name, rn.FunctionPath, string(rn.FutureState)} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func runName(rn run.Run) string {
	if rn.Name != "" {
		return rn.Name
	}
	return rn.FunctionPath
}
