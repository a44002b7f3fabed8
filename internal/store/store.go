// Package store persists run history: every classification or wind-load
// invocation is recorded with its outcome summary for later review.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNotFound marks a lookup for a run id that does not exist.
var ErrNotFound = eris.New("store: not found")

// RunKind identifies which pipeline a run executed.
type RunKind string

const (
	RunKindClassify RunKind = "classify"
	RunKindWind     RunKind = "wind"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded pipeline invocation. Summary holds a kind-specific
// JSON document (group counts, plan row counts, flags).
type Run struct {
	ID        string          `json:"id"`
	Kind      RunKind         `json:"kind"`
	Status    RunStatus       `json:"status"`
	Summary   json.RawMessage `json:"summary,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Kind   RunKind
	Status RunStatus
	Limit  int
	Offset int
}

// Store defines the run-history persistence interface.
type Store interface {
	CreateRun(ctx context.Context, kind RunKind) (*Run, error)
	CompleteRun(ctx context.Context, runID string, summary any) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
