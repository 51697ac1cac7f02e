package run

import "time"

// FutureState is the lifecycle state of a run as reported by the server.
type FutureState string

const (
	StateCreated      FutureState = "CREATED"
	StateScheduled    FutureState = "SCHEDULED"
	StateRan          FutureState = "RAN"
	StateRetrying     FutureState = "RETRYING"
	StateResolved     FutureState = "RESOLVED"
	StateFailed       FutureState = "FAILED"
	StateNestedFailed FutureState = "NESTED_FAILED"
	StateCanceled     FutureState = "CANCELED"
)

type Run struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	FunctionPath string      `yaml:"function_path" json:"function_path"`
	FutureState  FutureState `yaml:"future_state" json:"future_state"`
	CreatedAt    time.Time   `yaml:"created_at" json:"created_at"`
	StartedAt    time.Time   `yaml:"started_at,omitempty" json:"started_at,omitempty"`
	ResolvedAt   time.Time   `yaml:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// Equal reports whether r and o describe the same run. Times are compared
// as instants so decoding the same timestamp twice still matches.
func (r Run) Equal(o Run) bool {
	return r.ID == o.ID &&
		r.Name == o.Name &&
		r.FunctionPath == o.FunctionPath &&
		r.FutureState == o.FutureState &&
		r.CreatedAt.Equal(o.CreatedAt) &&
		r.StartedAt.Equal(o.StartedAt) &&
		r.ResolvedAt.Equal(o.ResolvedAt)
}

// HasStarted reports whether the run has progressed past CREATED. Runs
// that have not started have no logs.
func (r Run) HasStarted() bool {
	return r.FutureState != StateCreated
}

func (r Run) IsTerminal() bool {
	switch r.FutureState {
	case StateResolved, StateFailed, StateNestedFailed, StateCanceled:
		return true
	}
	return false
}

// Elapsed returns how long the run has been executing, or its total
// duration once resolved.
func (r Run) Elapsed() time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	if !r.ResolvedAt.IsZero() {
		return r.ResolvedAt.Sub(r.StartedAt)
	}
	return time.Since(r.StartedAt)
}

// StatusIcon returns a single-character indicator for the run state.
func (r Run) StatusIcon() string {
	switch r.FutureState {
	case StateCreated:
		return "○"
	case StateScheduled, StateRan, StateRetrying:
		return "●"
	case StateResolved:
		return "✓"
	case StateFailed, StateNestedFailed:
		return "✗"
	case StateCanceled:
		return "⊘"
	default:
		return "?"
	}
}
