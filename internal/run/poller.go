package run

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/justinpbarnett/runlogs/internal/loading"
)

// DefaultRefreshInterval is used when a Poller is given no interval.
const DefaultRefreshInterval = 5 * time.Second

// Poller keeps a Store in step with a Catalog.
type Poller struct {
	catalog  Catalog
	store    *Store
	interval time.Duration
	loading  *loading.Handle

	mu sync.Mutex // one refresh at a time
}

func NewPoller(catalog Catalog, store *Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Poller{catalog: catalog, store: store, interval: interval}
}

// SetLoading makes refreshes show up on h.
func (p *Poller) SetLoading(h *loading.Handle) {
	p.loading = h
}

func (p *Poller) Interval() time.Duration { return p.interval }

// Refresh lists the catalog once and replaces the store contents.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loading.Set(true)
	defer p.loading.Set(false)

	start := time.Now()
	if err := Sync(ctx, p.catalog, p.store); err != nil {
		return err
	}
	log.Debug("refreshed runs", "count", p.store.Count(), "took", time.Since(start))
	return nil
}

// Run refreshes immediately and then every interval until ctx is done.
// Failed refreshes are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer p.loading.Release()

	for {
		if err := p.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("refreshing runs", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
