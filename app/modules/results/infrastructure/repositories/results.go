package resultsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no ingestion run exists.
var ErrNotFound = errors.New("ingestion run not found")

// insertBatchSize bounds the rows per INSERT statement.
const insertBatchSize = 500

// Impl implements Repository using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new results repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateRun(ctx context.Context, db bun.IDB, run *IngestionRun) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(run).Returning("created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create ingestion run: %w", err)
	}
	return nil
}

func (r *Impl) InsertResults(ctx context.Context, db bun.IDB, results []PuzzleResult) error {
	db = r.resolveDB(db)
	for start := 0; start < len(results); start += insertBatchSize {
		end := min(start+insertBatchSize, len(results))
		batch := results[start:end]
		if _, err := db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert puzzle results: %w", err)
		}
	}
	return nil
}

func (r *Impl) GetLatestRun(ctx context.Context, db bun.IDB) (*IngestionRun, error) {
	db = r.resolveDB(db)
	run := new(IngestionRun)
	err := db.NewSelect().
		Model(run).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest ingestion run: %w", err)
	}
	return run, nil
}

func (r *Impl) ListResults(ctx context.Context, db bun.IDB, runUUID uuid.UUID) ([]PuzzleResult, error) {
	db = r.resolveDB(db)
	var results []PuzzleResult
	err := db.NewSelect().
		Model(&results).
		Where("run_uuid = ?", runUUID).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzle results: %w", err)
	}
	return results, nil
}
