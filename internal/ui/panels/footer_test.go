package panels

import "testing"

type footerFunc func(width int) string

func (f footerFunc) RenderFooter(width int) string { return f(width) }

func TestFooterSlotRejectsStaleEpoch(t *testing.T) {
	var s FooterSlot
	s.Reset(2)

	if s.Set(1, footerFunc(func(int) string { return "old" })) {
		t.Fatal("stale epoch accepted")
	}
	if s.HasProvider() {
		t.Fatal("expected empty slot")
	}
	if !s.Set(2, footerFunc(func(int) string { return "new" })) {
		t.Fatal("current epoch rejected")
	}
	if got := s.Render(10); got != "new" {
		t.Errorf("Render = %q, want %q", got, "new")
	}
}

func TestFooterSlotResetDropsProvider(t *testing.T) {
	var s FooterSlot
	s.Reset(1)
	s.Set(1, footerFunc(func(int) string { return "x" }))
	s.Reset(2)
	if s.HasProvider() {
		t.Error("provider survived Reset")
	}
	if got := s.Render(10); got != "" {
		t.Errorf("Render = %q, want empty", got)
	}
	if s.Epoch() != 2 {
		t.Errorf("Epoch = %d, want 2", s.Epoch())
	}
}

func TestFooterSlotPassesWidth(t *testing.T) {
	var s FooterSlot
	var seen int
	s.Set(0, footerFunc(func(w int) string { seen = w; return "" }))
	s.Render(42)
	if seen != 42 {
		t.Errorf("provider saw width %d, want 42", seen)
	}
}

func TestFooterSlotNilSafe(t *testing.T) {
	var s *FooterSlot
	if s.Set(0, nil) || s.HasProvider() || s.Render(5) != "" {
		t.Error("nil slot should be inert")
	}
	s.Clear()
}
