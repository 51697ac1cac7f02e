package panels

// FooterProvider renders the floating footer at the bottom of the logs
// pane's scroll region.
type FooterProvider interface {
	RenderFooter(width int) string
}

// FooterSlot is the pane-owned place a LogView renders into. Only the
// mount whose epoch matches the slot may set the provider, so a torn-down
// LogView can never draw into its successor's footer.
type FooterSlot struct {
	epoch    uint64
	provider FooterProvider
}

// Set installs p if epoch is current and reports whether it was accepted.
// A nil p clears the slot.
func (s *FooterSlot) Set(epoch uint64, p FooterProvider) bool {
	if s == nil || epoch != s.epoch {
		return false
	}
	s.provider = p
	return true
}

func (s *FooterSlot) Clear() {
	if s != nil {
		s.provider = nil
	}
}

// Reset starts a new mount: the provider is dropped and only epoch may
// set the next one.
func (s *FooterSlot) Reset(epoch uint64) {
	s.epoch = epoch
	s.provider = nil
}

func (s *FooterSlot) Epoch() uint64 { return s.epoch }

func (s *FooterSlot) HasProvider() bool { return s != nil && s.provider != nil }

// Render calls the provider, or returns "" when none is set.
func (s *FooterSlot) Render(width int) string {
	if s == nil || s.provider == nil {
		return ""
	}
	return s.provider.RenderFooter(width)
}
