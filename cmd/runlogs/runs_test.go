package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/justinpbarnett/runlogs/internal/run"
)

func TestPrintRuns(t *testing.T) {
	now := time.Now()
	runs := []run.Run{
		{ID: "b2", Name: "train", FutureState: run.StateScheduled, CreatedAt: now},
		{ID: "a1", Name: "etl", FutureState: run.StateResolved, CreatedAt: now.Add(-time.Hour)},
	}

	var out bytes.Buffer
	printRuns(&out, runs, false)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("expected header first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "train") || !strings.Contains(lines[1], "SCHEDULED") {
		t.Errorf("unexpected first row %q", lines[1])
	}

	out.Reset()
	printRuns(&out, runs, true)
	if strings.Contains(out.String(), "etl") {
		t.Errorf("terminal run listed with --active: %q", out.String())
	}
}
