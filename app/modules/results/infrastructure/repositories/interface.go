package resultsdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for dataset persistence.
type Repository interface {
	// CreateRun inserts a run row.
	CreateRun(ctx context.Context, db bun.IDB, run *IngestionRun) error

	// InsertResults bulk inserts the rows of a run.
	InsertResults(ctx context.Context, db bun.IDB, results []PuzzleResult) error

	// GetLatestRun returns the most recently created run.
	GetLatestRun(ctx context.Context, db bun.IDB) (*IngestionRun, error)

	// ListResults returns the rows of a run in dataset order.
	ListResults(ctx context.Context, db bun.IDB, runUUID uuid.UUID) ([]PuzzleResult, error)
}
