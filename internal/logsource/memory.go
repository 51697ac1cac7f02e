package logsource

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource keeps logs in memory. It backs demo mode and tests.
type MemorySource struct {
	mu   sync.RWMutex
	logs map[string][]string
}

func NewMemorySource() *MemorySource {
	return &MemorySource{logs: make(map[string][]string)}
}

// Append adds lines to runID's log, creating it if needed.
func (m *MemorySource) Append(runID string, lines ...string) {
	m.mu.Lock()
	m.logs[runID] = append(m.logs[runID], lines...)
	m.mu.Unlock()
}

func (m *MemorySource) Lines(ctx context.Context, q Query) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	m.mu.RLock()
	lines, ok := m.logs[q.RunID]
	snapshot := make([]string, len(lines))
	copy(snapshot, lines)
	m.mu.RUnlock()

	if !ok {
		return Page{}, fmt.Errorf("%s: %w", q.RunID, ErrRunNotFound)
	}
	if len(snapshot) == 0 {
		return Page{
			ForwardCursor: encodeCursor(0),
			ReverseCursor: encodeCursor(0),
			InfoMessage:   NoLinesMessage,
		}, nil
	}
	return paginate(snapshot, q)
}
