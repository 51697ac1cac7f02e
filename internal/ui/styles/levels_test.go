package styles

import "testing"

func TestLogLevel(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2024-05-01T10:00:00Z INFO step 1 done", "INFO"},
		{"2024-05-01T10:00:00Z WARNING disk at 91%", "WARNING"},
		{"[ERROR] boom", "ERROR"},
		{"12:00:01 worker.pool: debug: retry", "DEBUG"},
		{"plain output with no level", ""},
		{"a b c d ERROR too far in", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LogLevel(tt.line); got != tt.want {
			t.Errorf("LogLevel(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLevelStyle(t *testing.T) {
	if LevelStyle("ERROR").GetForeground() != StatusError {
		t.Error("ERROR should use the error color")
	}
	if LevelStyle("FATAL").GetForeground() != StatusError {
		t.Error("FATAL should use the error color")
	}
	if LevelStyle("WARN").GetForeground() != StatusWarning {
		t.Error("WARN should use the warning color")
	}
	if LevelStyle("").GetForeground() != LineNumberStyle.GetForeground() {
		t.Error("unknown level should fall back to the line number style")
	}
}
