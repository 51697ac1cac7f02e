package ui

import "github.com/justinpbarnett/runlogs/internal/ui/panels"

// Type aliases to panels message types — single source of truth.

// RunStoreUpdatedMsg is sent when any run in the store changes.
type RunStoreUpdatedMsg = panels.RunStoreUpdatedMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// LoadingChangedMsg is sent when the loading tracker flips.
type LoadingChangedMsg = panels.LoadingChangedMsg

// YankMsg asks the app to copy text to the clipboard.
type YankMsg = panels.YankMsg

// YankDoneMsg reports the clipboard write for a YankMsg.
type YankDoneMsg struct {
	Lines int
	Err   error
}

// RefreshDoneMsg reports a manual catalog refresh.
type RefreshDoneMsg struct {
	Runs int
	Err  error
}
