package loading

import "sync"

// Tracker reports loading while at least one Handle is set. Releasing one
// handle never clears another component's state.
type Tracker struct {
	mu     sync.Mutex
	active map[uint64]string
	nextID uint64
	onSet  func(bool)

	// notify state, guarded by mu
	notified   bool
	delivering bool
	pending    bool
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[uint64]string)}
}

// OnChange registers fn to be called whenever IsLoading flips. Calls are
// serialised and fn always receives the state current at delivery. fn may
// use the tracker and its handles.
func (t *Tracker) OnChange(fn func(loading bool)) {
	t.mu.Lock()
	t.onSet = fn
	t.notified = len(t.active) > 0
	t.mu.Unlock()
}

// Handle returns a new handle owned by owner. owner is only used for
// diagnostics.
func (t *Tracker) Handle(owner string) *Handle {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.mu.Unlock()
	return &Handle{tracker: t, id: id, owner: owner}
}

func (t *Tracker) IsLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active) > 0
}

// Owners returns the owners currently loading.
func (t *Tracker) Owners() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	owners := make([]string, 0, len(t.active))
	for _, o := range t.active {
		owners = append(owners, o)
	}
	return owners
}

func (t *Tracker) set(id uint64, owner string, loading bool) {
	t.mu.Lock()
	if loading {
		t.active[id] = owner
	} else {
		delete(t.active, id)
	}
	t.mu.Unlock()
}

// notify delivers state transitions to onSet. Only one goroutine delivers
// at a time; callers arriving meanwhile leave a pending mark and the
// deliverer re-reads the state before returning.
func (t *Tracker) notify() {
	t.mu.Lock()
	if t.delivering {
		t.pending = true
		t.mu.Unlock()
		return
	}
	t.delivering = true
	for {
		t.pending = false
		now := len(t.active) > 0
		changed := now != t.notified
		t.notified = now
		fn := t.onSet
		t.mu.Unlock()

		if fn != nil && changed {
			fn(now)
		}

		t.mu.Lock()
		if !t.pending {
			break
		}
	}
	t.delivering = false
	t.mu.Unlock()
}

// Handle is one component's contribution to the loading state.
type Handle struct {
	tracker  *Tracker
	id       uint64
	owner    string
	mu       sync.Mutex
	released bool
}

// Set marks this handle as loading or idle. It is a no-op after Release.
func (h *Handle) Set(loading bool) {
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.tracker.set(h.id, h.owner, loading)
	h.mu.Unlock()
	h.tracker.notify()
}

// Release clears this handle and makes further Set calls no-ops.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.tracker.set(h.id, h.owner, false)
	h.mu.Unlock()
	h.tracker.notify()
}

func (h *Handle) Owner() string {
	if h == nil {
		return ""
	}
	return h.owner
}
