package logsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpcloud/tail"
)

const (
	// LogFileName is the log file inside a run directory.
	LogFileName = "run.log"

	// NoLinesMessage is reported when a run exists but has produced no log.
	NoLinesMessage = "No log lines for this run yet."

	maxLineBytes = 1024 * 1024
)

// FileSource serves logs from <dir>/<run-id>/run.log.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) runDir(runID string) string {
	return filepath.Join(s.dir, runID)
}

// LogPath returns the log file path for runID.
func (s *FileSource) LogPath(runID string) string {
	return filepath.Join(s.runDir(runID), LogFileName)
}

func (s *FileSource) Lines(ctx context.Context, q Query) (Page, error) {
	if _, err := os.Stat(s.runDir(q.RunID)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Page{}, fmt.Errorf("%s: %w", q.RunID, ErrRunNotFound)
		}
		return Page{}, fmt.Errorf("stat run dir: %w", err)
	}

	lines, err := readLines(ctx, s.LogPath(q.RunID))
	if err != nil {
		return Page{}, err
	}
	if len(lines) == 0 {
		return Page{
			ForwardCursor: encodeCursor(0),
			ReverseCursor: encodeCursor(0),
			InfoMessage:   NoLinesMessage,
		}, nil
	}
	return paginate(lines, q)
}

func readLines(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Follow streams lines appended to the run's log, starting after the
// position given by q.ForwardCursor (or the beginning when empty), until
// ctx is cancelled. Lines not matching q.Filter are skipped.
func (s *FileSource) Follow(ctx context.Context, q Query, emit func(Line)) error {
	skip := 0
	if q.ForwardCursor != "" {
		n, err := decodeCursor(q.ForwardCursor)
		if err != nil {
			return err
		}
		skip = n
	}

	t, err := tail.TailFile(s.LogPath(q.RunID), tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("tail log: %w", err)
	}
	defer t.Cleanup()
	defer t.Stop()

	number := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return fmt.Errorf("tail log: %w", line.Err)
			}
			number++
			if number <= skip || !Matches(line.Text, q.Filter) {
				continue
			}
			emit(Line{Number: number, Text: line.Text})
		}
	}
}
