package resultsmigrations

import (
	"context"
	"fmt"

	resultsdb "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating ingestion_runs and puzzle_results tables...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.NewCreateTable().Model((*resultsdb.IngestionRun)(nil)).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create ingestion_runs table: %w", err)
				}
				if _, err := tx.NewCreateTable().
					Model((*resultsdb.PuzzleResult)(nil)).
					IfNotExists().
					ForeignKey(`(run_uuid) REFERENCES ingestion_runs (uuid) ON DELETE CASCADE`).
					Exec(ctx); err != nil {
					return fmt.Errorf("failed to create puzzle_results table: %w", err)
				}
				if _, err := tx.NewCreateIndex().
					Model((*resultsdb.PuzzleResult)(nil)).
					Index("idx_puzzle_results_run_position").
					Column("run_uuid", "position").
					IfNotExists().
					Exec(ctx); err != nil {
					return fmt.Errorf("failed to create puzzle_results index: %w", err)
				}
				return nil
			})
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping puzzle_results and ingestion_runs tables...")
			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				if _, err := tx.NewDropTable().Model((*resultsdb.PuzzleResult)(nil)).IfExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop puzzle_results table: %w", err)
				}
				if _, err := tx.NewDropTable().Model((*resultsdb.IngestionRun)(nil)).IfExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop ingestion_runs table: %w", err)
				}
				return nil
			})
		},
	)
}
