package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "runlogs.log")
	closer, err := Setup(path, "debug")
	require.NoError(t, err)

	log.Debug("fetched page", "run", "r1", "lines", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "fetched page")
	require.Contains(t, string(data), "run=r1")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(filepath.Join(t.TempDir(), "x.log"), "chatty")
	require.Error(t, err)
}

func TestSetupEmptyPathDiscards(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	closer, err := Setup("", "info")
	require.NoError(t, err)
	require.NoError(t, closer.Close())
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel)

	l.Info("hidden")
	l.Warn("shown", "err", "boom")

	out := buf.String()
	require.False(t, strings.Contains(out, "hidden"))
	require.Contains(t, out, "shown")
	require.Contains(t, out, "err=boom")
}
