package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/justinpbarnett/runlogs/internal/loading"
	"github.com/justinpbarnett/runlogs/internal/logging"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	store := run.NewStore()
	b, err := openBackend(cfg, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	tracker := loading.NewTracker()
	poller := run.NewPoller(b.catalog, store, time.Duration(cfg.Catalog.RefreshInterval)*time.Second)
	poller.SetLoading(tracker.Handle("catalog"))

	b.run(ctx)
	go poller.Run(ctx)

	log.Info("starting", "source", cfg.Source.Kind, "location", b.label)

	app := ui.NewApp(cfg, ui.Deps{
		Store:       store,
		Source:      b.source,
		Tracker:     tracker,
		Poller:      poller,
		SourceLabel: b.label,
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen == nil || *cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(app, append(opts, tea.WithContext(ctx))...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
