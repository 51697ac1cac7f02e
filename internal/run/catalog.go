package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestName is the per-run metadata file inside a run directory.
	ManifestName = "run.yaml"

	manifestLoadLimit = 8
)

// Catalog lists the runs available for inspection.
type Catalog interface {
	Runs(ctx context.Context) ([]Run, error)
}

// FileCatalog reads run manifests from <dir>/<run-id>/run.yaml.
type FileCatalog struct {
	dir string
}

func NewFileCatalog(dir string) *FileCatalog {
	return &FileCatalog{dir: dir}
}

func (c *FileCatalog) Dir() string { return c.dir }

func (c *FileCatalog) Runs(ctx context.Context) ([]Run, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs dir: %w", err)
	}

	var (
		mu   sync.Mutex
		runs = make([]Run, 0, len(entries))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(manifestLoadLimit)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, entry.Name(), ManifestName)
		dirName := entry.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := ReadManifest(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return nil
				}
				log.Warn("skipping run manifest", "path", path, "err", err)
				return nil
			}
			if r.ID == "" {
				r.ID = dirName
			}
			mu.Lock()
			runs = append(runs, r)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// ReadManifest parses a single run manifest.
func ReadManifest(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, err
	}
	var r Run
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Run{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return r, nil
}

// Sync refreshes store from catalog.
func Sync(ctx context.Context, catalog Catalog, store *Store) error {
	runs, err := catalog.Runs(ctx)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	store.Replace(runs)
	return nil
}
