package run

import "sync"

// Selection tracks which run the user is inspecting. It resolves the id
// against the store on every read so callers always see the latest state.
type Selection struct {
	mu    sync.RWMutex
	store *Store
	id    string
}

func NewSelection(store *Store) *Selection {
	return &Selection{store: store}
}

func (s *Selection) Select(id string) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

func (s *Selection) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// SelectedRun returns the selected run, or nil when nothing is selected
// or the run is no longer in the store.
func (s *Selection) SelectedRun() *Run {
	id := s.ID()
	if id == "" || s.store == nil {
		return nil
	}
	r, ok := s.store.Get(id)
	if !ok {
		return nil
	}
	return &r
}
