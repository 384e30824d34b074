package resultsservice

import (
	"context"

	puzzleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/application"
	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultsdb "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Results Repo
// ------------------------

type FakeResultsRepo struct {
	trace []string

	CreateRunFunc     func(ctx context.Context, db bun.IDB, run *resultsdb.IngestionRun) error
	InsertResultsFunc func(ctx context.Context, db bun.IDB, results []resultsdb.PuzzleResult) error
	GetLatestRunFunc  func(ctx context.Context, db bun.IDB) (*resultsdb.IngestionRun, error)
	ListResultsFunc   func(ctx context.Context, db bun.IDB, runUUID uuid.UUID) ([]resultsdb.PuzzleResult, error)
}

func NewFakeResultsRepo() *FakeResultsRepo {
	return &FakeResultsRepo{
		trace: []string{},
	}
}

func (f *FakeResultsRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeResultsRepo) CreateRun(ctx context.Context, db bun.IDB, run *resultsdb.IngestionRun) error {
	f.record("CreateRun")
	if f.CreateRunFunc != nil {
		return f.CreateRunFunc(ctx, db, run)
	}
	return nil
}

func (f *FakeResultsRepo) InsertResults(ctx context.Context, db bun.IDB, results []resultsdb.PuzzleResult) error {
	f.record("InsertResults")
	if f.InsertResultsFunc != nil {
		return f.InsertResultsFunc(ctx, db, results)
	}
	return nil
}

func (f *FakeResultsRepo) GetLatestRun(ctx context.Context, db bun.IDB) (*resultsdb.IngestionRun, error) {
	f.record("GetLatestRun")
	if f.GetLatestRunFunc != nil {
		return f.GetLatestRunFunc(ctx, db)
	}
	return nil, resultsdb.ErrNotFound
}

func (f *FakeResultsRepo) ListResults(ctx context.Context, db bun.IDB, runUUID uuid.UUID) ([]resultsdb.PuzzleResult, error) {
	f.record("ListResults")
	if f.ListResultsFunc != nil {
		return f.ListResultsFunc(ctx, db, runUUID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeResultsRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ resultsdb.Repository = (*FakeResultsRepo)(nil)

// ------------------------
// Fake Puzzle Service
// ------------------------

type FakePuzzleService struct {
	LoadMetadataFunc func(ctx context.Context, path string) ([]puzzletypes.PuzzleMetadata, puzzleservice.LoadReport, error)
}

func (f *FakePuzzleService) LoadMetadata(ctx context.Context, path string) ([]puzzletypes.PuzzleMetadata, puzzleservice.LoadReport, error) {
	if f.LoadMetadataFunc != nil {
		return f.LoadMetadataFunc(ctx, path)
	}
	return nil, puzzleservice.LoadReport{}, nil
}

var _ puzzleservice.Service = (*FakePuzzleService)(nil)
