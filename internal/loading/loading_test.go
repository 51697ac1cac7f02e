package loading

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSetAndClear(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	h := tr.Handle("logs")

	require.False(t, tr.IsLoading())
	h.Set(true)
	require.True(t, tr.IsLoading())
	require.Equal(t, []string{"logs"}, tr.Owners())
	h.Set(false)
	require.False(t, tr.IsLoading())
}

func TestReleaseOnlyClearsOwnContribution(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	old := tr.Handle("pane-1")
	newer := tr.Handle("pane-2")

	old.Set(true)
	newer.Set(true)
	old.Release()

	require.True(t, tr.IsLoading(), "releasing one handle must not clear another's loading state")
	require.Equal(t, []string{"pane-2"}, tr.Owners())

	newer.Release()
	require.False(t, tr.IsLoading())
}

func TestReleaseForcesFalseRegardlessOfPriorValue(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	h := tr.Handle("logs")
	h.Set(true)
	h.Release()
	require.False(t, tr.IsLoading())

	idle := tr.Handle("idle")
	idle.Release()
	require.False(t, tr.IsLoading())
}

func TestSetAfterReleaseIsIgnored(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	h := tr.Handle("logs")
	h.Release()
	h.Set(true)
	require.False(t, tr.IsLoading())
}

func TestNilHandleIsSafe(t *testing.T) {
	t.Parallel()
	var h *Handle
	h.Set(true)
	h.Release()
	require.Empty(t, h.Owner())
}

func TestOnChangeFiresOnTransitionsOnly(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	var got []bool
	tr.OnChange(func(b bool) { got = append(got, b) })

	a := tr.Handle("a")
	b := tr.Handle("b")
	a.Set(true)
	b.Set(true)
	a.Set(false)
	b.Release()

	require.Equal(t, []bool{true, false}, got)
}

func TestOnChangeCallbackMayUseHandles(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	h := tr.Handle("pane")
	var got []bool
	tr.OnChange(func(b bool) {
		got = append(got, b)
		if b {
			h.Release()
		}
	})

	done := make(chan struct{})
	go func() {
		h.Set(true)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback touching its own handle deadlocked")
	}

	require.Equal(t, []bool{true, false}, got)
	require.False(t, tr.IsLoading())
}

func TestOnChangeLastDeliveryMatchesState(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	var mu sync.Mutex
	var last bool
	var calls int
	tr.OnChange(func(b bool) {
		mu.Lock()
		defer mu.Unlock()
		assert.NotEqual(t, last, b, "deliveries must alternate")
		last = b
		calls++
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		poller := tr.Handle("catalog")
		pane := tr.Handle("logs-pane")
		go func() {
			defer wg.Done()
			poller.Set(true)
			poller.Set(false)
		}()
		go func() {
			defer wg.Done()
			pane.Set(true)
			pane.Release()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.False(t, tr.IsLoading())
	require.False(t, last, "final delivery must report idle")
	require.NotZero(t, calls)
}

func TestOnChangeStartsFromCurrentState(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	h := tr.Handle("catalog")
	h.Set(true)

	var got []bool
	tr.OnChange(func(b bool) { got = append(got, b) })
	tr.Handle("pane").Set(true)
	h.Release()

	require.Empty(t, got, "still loading, nothing flipped")
}

func TestConcurrentHandles(t *testing.T) {
	t.Parallel()
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := tr.Handle("worker")
			h.Set(true)
			_ = tr.IsLoading()
			h.Release()
		}()
	}
	wg.Wait()
	require.False(t, tr.IsLoading())
}
