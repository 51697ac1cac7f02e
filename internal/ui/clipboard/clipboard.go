package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// osc52Out receives the OSC 52 fallback sequence. The TUI renders on
// stdout, so the sequence goes to stderr, which shares the terminal.
var osc52Out io.Writer = os.Stderr

// nativeWrite is the platform clipboard (wl-copy, xclip, pbcopy, etc.).
var nativeWrite = clipboard.WriteAll

// Write copies text to the system clipboard. It tries the native
// clipboard first, then falls back to OSC52 for SSH/tmux sessions.
func Write(text string) error {
	if err := nativeWrite(text); err == nil {
		return nil
	}
	return writeOSC52(osc52Out, text)
}

// writeOSC52 writes text to the clipboard using the OSC 52 escape sequence.
func writeOSC52(w io.Writer, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}
