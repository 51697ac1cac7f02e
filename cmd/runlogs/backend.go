package main

import (
	"context"
	"fmt"
	"time"

	"github.com/justinpbarnett/runlogs/internal/api"
	"github.com/justinpbarnett/runlogs/internal/config"
	"github.com/justinpbarnett/runlogs/internal/demo"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
)

const demoInterval = 700 * time.Millisecond

// backend is the catalog and log source selected by config.
type backend struct {
	catalog run.Catalog
	source  logsource.Source
	label   string
	// start launches background producers. Only demo mode has any.
	start func(ctx context.Context)
}

// follower is implemented by sources that can stream appended lines.
type follower interface {
	Follow(ctx context.Context, q logsource.Query, emit func(logsource.Line)) error
}

func openBackend(cfg *config.Config, store *run.Store) (*backend, error) {
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		client, err := api.NewClient(cfg.Source.URL, api.Options{
			Timeout:  time.Duration(cfg.Source.Timeout) * time.Second,
			RetryMax: cfg.Source.RetryMax,
		})
		if err != nil {
			return nil, err
		}
		return &backend{catalog: client, source: client, label: cfg.Source.URL}, nil

	case config.SourceDemo:
		src := logsource.NewMemorySource()
		demo.Seed(store, src)
		return &backend{
			catalog: demo.NewCatalog(store),
			source:  src,
			label:   "demo",
			start: func(ctx context.Context) {
				go demo.Simulate(ctx, store, src, demoInterval)
			},
		}, nil

	case config.SourceFile:
		return &backend{
			catalog: run.NewFileCatalog(cfg.Source.Dir),
			source:  logsource.NewFileSource(cfg.Source.Dir),
			label:   cfg.Source.Dir,
		}, nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source.Kind)
}

func (b *backend) run(ctx context.Context) {
	if b.start != nil {
		b.start(ctx)
	}
}
