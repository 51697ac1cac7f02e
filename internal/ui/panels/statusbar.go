package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/runlogs/internal/loading"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui/styles"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

// maxSourceWidth caps the source label so long run directories keep their tail.
const maxSourceWidth = 32

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	store      *run.Store
	tracker    *loading.Tracker
	spinner    spinner.Model
	spinning   bool
	source     string
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
}

func NewStatusBar(store *run.Store, tracker *loading.Tracker) StatusBar {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.StatusRunning)
	return StatusBar{store: store, tracker: tracker, spinner: sp}
}

// Init starts the spinner if something is already loading.
func (s StatusBar) Init() tea.Cmd {
	if s.loading() {
		return s.spinner.Tick
	}
	return nil
}

// Update runs the spinner only while the tracker is busy: a
// LoadingChangedMsg starts it and the first tick after going idle stops it.
func (s StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadingChangedMsg:
		if s.loading() && !s.spinning {
			s.spinning = true
			return s, s.spinner.Tick
		}
	case spinner.TickMsg:
		if !s.loading() {
			s.spinning = false
			return s, nil
		}
		s.spinning = true
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Spinning reports whether spinner ticks are scheduled.
func (s StatusBar) Spinning() bool { return s.spinning }

func (s StatusBar) loading() bool {
	return s.tracker != nil && s.tracker.IsLoading()
}

func (s StatusBar) View() string {
	c := s.store.Counts()

	sep := styles.TextDimStyle.Render(" │ ")

	appName := "runlogs " + Version
	if s.loading() {
		appName = s.spinner.View() + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	counts := fmt.Sprintf("%s %s %s",
		lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(fmt.Sprintf("%d active", c.Active)),
		lipgloss.NewStyle().Foreground(styles.StatusPending).Render(fmt.Sprintf("%d pending", c.Pending)),
		lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render(fmt.Sprintf("%d done", c.Done)),
	)

	left := " " + version + sep + counts
	if s.source != "" {
		left += sep + styles.TextSecondaryStyle.Render(text.TruncateLeft(s.source, maxSourceWidth))
	}

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := s.width - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	return text.Truncate(left+strings.Repeat(" ", gap)+right, max(s.width, 1))
}

// SetSource sets the short description of where runs come from.
func (s *StatusBar) SetSource(label string) {
	s.source = label
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}
