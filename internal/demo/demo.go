package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
)

// Catalog serves the demo store as a run.Catalog.
type Catalog struct {
	store *run.Store
}

func NewCatalog(store *run.Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) Runs(ctx context.Context) ([]run.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.store.List(), nil
}

// Seed adds sample runs to store and their logs to src.
func Seed(store *run.Store, src *logsource.MemorySource) {
	now := time.Now()

	store.Add(&run.Run{
		ID:           "f3a91c20",
		Name:         "nightly-etl",
		FunctionPath: "pipelines.etl.nightly",
		FutureState:  run.StateResolved,
		CreatedAt:    now.Add(-3 * time.Hour),
		StartedAt:    now.Add(-3 * time.Hour),
		ResolvedAt:   now.Add(-150 * time.Minute),
	})
	src.Append("f3a91c20", stepLog("pipelines.etl.nightly", 240, false)...)

	store.Add(&run.Run{
		ID:           "b71e04d9",
		Name:         "evaluate-model",
		FunctionPath: "pipelines.eval.evaluate",
		FutureState:  run.StateFailed,
		CreatedAt:    now.Add(-70 * time.Minute),
		StartedAt:    now.Add(-68 * time.Minute),
		ResolvedAt:   now.Add(-61 * time.Minute),
	})
	src.Append("b71e04d9", stepLog("pipelines.eval.evaluate", 80, true)...)

	store.Add(&run.Run{
		ID:           "5c2d8e77",
		Name:         "train-model",
		FunctionPath: "pipelines.train.main",
		FutureState:  run.StateScheduled,
		CreatedAt:    now.Add(-20 * time.Minute),
		StartedAt:    now.Add(-18 * time.Minute),
	})
	src.Append("5c2d8e77", stepLog("pipelines.train.main", 60, false)...)

	store.Add(&run.Run{
		ID:           "0a4be613",
		Name:         "feature-backfill",
		FunctionPath: "pipelines.features.backfill",
		FutureState:  run.StateCreated,
		CreatedAt:    now.Add(-2 * time.Minute),
	})
}

// startAfterSteps is how many ticks a CREATED demo run waits before it
// starts.
const startAfterSteps = 8

// Simulate appends a line to every active run each interval until ctx is
// done, so follow mode has something to show. Runs still in CREATED start
// after a few ticks.
func Simulate(ctx context.Context, store *run.Store, src *logsource.MemorySource, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	step := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		step++
		for _, r := range store.List() {
			if !r.HasStarted() && step >= startAfterSteps {
				store.Update(r.ID, func(started *run.Run) {
					started.FutureState = run.StateScheduled
					started.StartedAt = time.Now()
				})
				continue
			}
			if r.HasStarted() && !r.IsTerminal() {
				src.Append(r.ID, logLine(r.FunctionPath, step, time.Now()))
			}
		}
	}
}

func stepLog(fn string, n int, fail bool) []string {
	start := time.Now().Add(-time.Duration(n) * time.Second)
	lines := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		lines = append(lines, logLine(fn, i, start.Add(time.Duration(i)*time.Second)))
	}
	if fail {
		lines = append(lines, fmt.Sprintf("%s ERROR %s: step %d raised ValueError: metric threshold not met",
			start.Add(time.Duration(n)*time.Second).Format(time.RFC3339), fn, n))
	}
	return lines
}

var demoMessages = []string{
	"loading inputs from artifact store",
	"resolved %d upstream artifacts",
	"processing batch %d",
	"wrote checkpoint %d",
	"cache hit for step %d",
	"retrying transient storage error (attempt %d)",
}

func logLine(fn string, i int, at time.Time) string {
	level := "INFO"
	msg := demoMessages[i%len(demoMessages)]
	if i%len(demoMessages) == 5 {
		level = "WARNING"
	}
	if i%len(demoMessages) != 0 {
		msg = fmt.Sprintf(msg, i+rand.Intn(3))
	}
	return fmt.Sprintf("%s %s %s: %s", at.Format(time.RFC3339), level, fn, msg)
}
