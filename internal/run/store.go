package run

import (
	"slices"
	"sync"
)

// Store holds the known runs, newest first. Readers always get copies.
// Every mutation bumps Version and signals Changes.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]*Run
	order   []string
	version uint64
	changes chan struct{}
}

func NewStore() *Store {
	return &Store{
		runs:    make(map[string]*Run),
		changes: make(chan struct{}, 1),
	}
}

// Counts tallies runs by phase.
type Counts struct {
	Pending int
	Active  int
	Done    int
}

// Add inserts r at the front, replacing any run with the same id.
func (s *Store) Add(r *Run) string {
	s.mu.Lock()
	if _, ok := s.runs[r.ID]; ok {
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == r.ID })
	}
	s.runs[r.ID] = r
	s.order = slices.Insert(s.order, 0, r.ID)
	s.version++
	s.mu.Unlock()

	s.signal()
	return r.ID
}

// Replace swaps the contents for runs, ordered by CreatedAt newest first.
// Nothing is signalled when the result equals what was already held.
func (s *Store) Replace(runs []Run) {
	sorted := slices.Clone(runs)
	slices.SortStableFunc(sorted, func(a, b Run) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	s.mu.Lock()
	same := len(sorted) == len(s.order)
	next := make(map[string]*Run, len(sorted))
	order := make([]string, len(sorted))
	for i := range sorted {
		r := sorted[i]
		if same {
			prev, ok := s.runs[r.ID]
			same = ok && s.order[i] == r.ID && prev.Equal(r)
		}
		next[r.ID] = &r
		order[i] = r.ID
	}
	s.runs, s.order = next, order
	if !same {
		s.version++
	}
	s.mu.Unlock()

	if !same {
		s.signal()
	}
}

// Update applies fn to the stored run with the given id and reports
// whether it exists.
func (s *Store) Update(id string, fn func(*Run)) bool {
	s.mu.Lock()
	r, ok := s.runs[id]
	if ok {
		fn(r)
		s.version++
	}
	s.mu.Unlock()

	if ok {
		s.signal()
	}
	return ok
}

func (s *Store) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.runs[id]; ok {
		return *r, true
	}
	return Run{}, false
}

func (s *Store) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Run, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.runs[id])
	}
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c Counts
	for _, r := range s.runs {
		switch {
		case !r.HasStarted():
			c.Pending++
		case r.IsTerminal():
			c.Done++
		default:
			c.Active++
		}
	}
	return c
}

// Version increases with every change to the contents.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Changes receives a value after one or more mutations. Bursts coalesce
// into a single pending signal.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) signal() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
