package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	puzzleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/application"
	resultsservice "github.com/Black-And-White-Club/wordle-bot/app/modules/results/application"
	resultsmetrics "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/metrics"
	resultsdb "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

// application carries the state shared by every command.
type application struct {
	cfg      *config.Config
	logger   *slog.Logger
	tracing  *observability.Tracing
	registry *prometheus.Registry
	db       *bun.DB
}

func (a *application) setup(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	a.logger = observability.NewLogger(observability.LogConfig{
		Level:  cfg.Observability.LogLevel,
		Format: cfg.Observability.LogFormat,
	}, os.Stderr)
	slog.SetDefault(a.logger)

	a.tracing, err = observability.NewTracing(c.Context, observability.TraceConfig{
		ServiceName:  cfg.Observability.ServiceName,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		Insecure:     cfg.Observability.OTLPInsecure,
		SampleRate:   cfg.Observability.TraceSampleRate,
	})
	if err != nil {
		return err
	}

	a.registry = observability.NewRegistry()
	return nil
}

func (a *application) teardown(c *cli.Context) error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.tracing != nil {
		errs = append(errs, a.tracing.Shutdown(c.Context))
	}
	return errors.Join(errs...)
}

// database opens the Postgres connection on first use.
func (a *application) database() (*bun.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.cfg.Postgres.DSN == "" {
		return nil, errors.New("postgres.dsn (or DATABASE_URL) is required for this command")
	}
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(a.cfg.Postgres.DSN)))
	a.db = bun.NewDB(pgdb, pgdialect.New())
	return a.db, nil
}

// resultsService wires the pipeline. db may be nil for file-only builds.
func (a *application) resultsService(db *bun.DB) (*resultsservice.ResultsService, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}

	var metrics resultsmetrics.ResultsMetrics = resultsmetrics.NewNoop()
	if a.cfg.Observability.MetricsEnabled {
		m, err := resultsmetrics.NewPrometheus(a.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics = m
	}

	var repo resultsdb.Repository
	if db != nil {
		repo = resultsdb.NewRepository(db)
	}

	puzzles := puzzleservice.NewPuzzleService(nil, nil, a.logger)
	return resultsservice.NewResultsService(
		resultsservice.Options{
			GameLabel:        a.cfg.Ingest.GameLabel,
			KeywordSuffix:    a.cfg.Ingest.KeywordSuffix,
			TimestampLayouts: a.cfg.Ingest.TimestampLayouts,
			Location:         loc,
		},
		puzzles,
		repo,
		a.logger,
		metrics,
		a.tracing.Tracer("results"),
		db,
	)
}
