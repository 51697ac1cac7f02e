package text

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"", 10, ""},
		{"nightly-etl", 20, "nightly-etl"},
		{"nightly-etl", 11, "nightly-etl"},
		{"nightly-etl", 8, "nightly…"},
		{"nightly-etl", 1, "…"},
		{"nightly-etl", 0, ""},
		{"nightly-etl", -3, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestTruncateKeepsEscapes(t *testing.T) {
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("ERROR boom")
	got := Truncate(styled, 6)
	if w := ansi.StringWidth(got); w > 6 {
		t.Errorf("width %d exceeds 6", w)
	}
	if ansi.Strip(got) != "ERROR…" {
		t.Errorf("got %q", ansi.Strip(got))
	}
}

func TestTruncateLeft(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"/runs", 10, "/runs"},
		{"/var/lib/runlogs/runs", 11, "…nlogs/runs"},
		{"/var/lib/runlogs/runs", 1, "…"},
		{"/var/lib/runlogs/runs", 0, ""},
	}
	for _, tc := range cases {
		got := TruncateLeft(tc.in, tc.width)
		if got != tc.want {
			t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
		if w := ansi.StringWidth(got); w > tc.width && tc.width > 0 {
			t.Errorf("TruncateLeft(%q, %d) is %d cells wide", tc.in, tc.width, w)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("r1", 5); got != "r1   " {
		t.Errorf("got %q", got)
	}
	if got := PadRight("already-wide", 4); got != "already-wide" {
		t.Errorf("wide string changed: %q", got)
	}
	styled := lipgloss.NewStyle().Bold(true).Render("ok")
	if w := ansi.StringWidth(PadRight(styled, 6)); w != 6 {
		t.Errorf("styled pad width %d, want 6", w)
	}
}

func TestFit(t *testing.T) {
	for _, width := range []int{1, 4, 11, 20} {
		if w := ansi.StringWidth(Fit("nightly-etl", width)); w != width {
			t.Errorf("Fit width %d: got %d cells", width, w)
		}
	}
}
