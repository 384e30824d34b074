package resultsservice

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	puzzleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/application"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/results/application/parsers"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	resultsexport "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/export"
	resultsmetrics "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/metrics"
	resultsdb "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// maxLineBytes caps a single chat log line.
const maxLineBytes = 1 << 20

// Options tune how chat lines are recognized and parsed. Zero values select the
// defaults.
type Options struct {
	GameLabel        string
	KeywordSuffix    string
	Template         parsers.Template
	TimestampLayouts []string
	Location         *time.Location
}

// BuildRequest names the inputs and outputs of one dataset build.
type BuildRequest struct {
	LogPath     string
	AnswersPath string
	OutputPath  string
	// XLSXPath, when set, also writes the dataset as a workbook.
	XLSXPath string
	Aliases  map[string]string
}

// BuildResult is a finished dataset and the counts that produced it.
type BuildResult struct {
	Rows   []resultstypes.FinalRow
	Report resultstypes.RunReport
}

// StoredDataset is a dataset read back from the database.
type StoredDataset struct {
	Run  *resultsdb.IngestionRun
	Rows []resultstypes.FinalRow
}

// Service builds the results dataset and persists it.
type Service interface {
	BuildDataset(ctx context.Context, req BuildRequest) (*BuildResult, error)
	PersistDataset(ctx context.Context, result *BuildResult, sourcePath string) error
	LatestDataset(ctx context.Context) (*StoredDataset, error)
}

// ResultsService implements the Service interface.
type ResultsService struct {
	classifier *parsers.Classifier
	normalizer *Normalizer
	puzzles    puzzleservice.Service
	repo       resultsdb.Repository
	logger     *slog.Logger
	metrics    resultsmetrics.ResultsMetrics
	tracer     trace.Tracer
	db         *bun.DB
}

// NewResultsService creates a new ResultsService. repo and db may be nil when
// the dataset is only written to files.
func NewResultsService(
	opts Options,
	puzzles puzzleservice.Service,
	repo resultsdb.Repository,
	logger *slog.Logger,
	metrics resultsmetrics.ResultsMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) (*ResultsService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = resultsmetrics.NewNoop()
	}
	if puzzles == nil {
		puzzles = puzzleservice.NewPuzzleService(nil, nil, logger)
	}

	template := opts.Template
	if template == (parsers.Template{}) {
		template = parsers.DefaultTemplate
	}
	classifier, err := parsers.NewClassifier(opts.KeywordSuffix, template)
	if err != nil {
		return nil, err
	}

	return &ResultsService{
		classifier: classifier,
		normalizer: NewNormalizer(opts.GameLabel, opts.TimestampLayouts, opts.Location),
		puzzles:    puzzles,
		repo:       repo,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
	}, nil
}

// BuildDataset runs the whole pipeline: it reads the chat log, keeps the valid
// results, joins them with the answers table and writes the dataset. Fatal
// errors leave any existing output untouched.
func (s *ResultsService) BuildDataset(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	return withTelemetry(s, ctx, "BuildDataset", req.LogPath, func(ctx context.Context) (*BuildResult, error) {
		return s.buildDatasetLogic(ctx, req)
	})
}

func (s *ResultsService) buildDatasetLogic(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	report := resultstypes.RunReport{RunID: uuid.New()}

	records, err := s.readLog(req.LogPath, &report)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLines(ctx, report.LinesRead, report.LinesSkipped)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, normReport := s.normalizer.Normalize(records)
	report.Normalize = normReport
	s.metrics.RecordKept(ctx, normReport.Kept)
	for _, reason := range resultstypes.DropReasons {
		if n := normReport.Dropped[reason]; n > 0 {
			s.metrics.RecordDropped(ctx, string(reason), n)
		}
	}

	normalized = ApplyAliases(normalized, req.Aliases)

	metadata, loadReport, err := s.puzzles.LoadMetadata(ctx, req.AnswersPath)
	if err != nil {
		return nil, err
	}
	report.MetadataRows = loadReport.Rows
	report.MetadataSkips = loadReport.Skipped + loadReport.Unscorable

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, joinReport := Join(normalized, metadata)
	report.Join = joinReport

	if err := resultsexport.WriteDataset(req.OutputPath, req.XLSXPath, rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}

	s.logger.InfoContext(ctx, "Dataset built",
		slog.String("run_id", report.RunID.String()),
		slog.Int("lines_read", report.LinesRead),
		slog.Int("lines_skipped", report.LinesSkipped),
		slog.Int("fallback_lines", report.FallbackLines),
		slog.Int("kept", normReport.Kept),
		slog.Int("dropped", normReport.TotalDropped()),
		slog.Int("matched", joinReport.Matched),
		slog.Int("unmatched", joinReport.Unmatched),
		slog.String("output", req.OutputPath),
	)

	return &BuildResult{Rows: rows, Report: report}, nil
}

// readLog scans the chat log and extracts every line that carries a result.
func (s *ResultsService) readLog(path string, report *resultstypes.RunReport) ([]resultstypes.ExtractedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogUnreadable, err)
	}
	defer f.Close()

	var records []resultstypes.ExtractedRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		report.LinesRead++
		classified, ok := s.classifier.Classify(report.LinesRead, scanner.Text())
		if !ok {
			report.LinesSkipped++
			continue
		}
		report.Classified++
		if classified.Fallbacks != 0 {
			report.FallbackLines++
		}
		records = append(records, parsers.Extract(classified))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLogUnreadable, path, err)
	}
	return records, nil
}

// PersistDataset stores a built dataset as one ingestion run.
func (s *ResultsService) PersistDataset(ctx context.Context, result *BuildResult, sourcePath string) error {
	if s.repo == nil {
		return ErrPersistenceUnavailable
	}
	_, err := withTelemetry(s, ctx, "PersistDataset", result.Report.RunID.String(), func(ctx context.Context) (struct{}, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			if err := s.repo.CreateRun(ctx, db, resultsdb.NewRun(result.Report, sourcePath)); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, s.repo.InsertResults(ctx, db, resultsdb.NewPuzzleResults(result.Report.RunID, result.Rows))
		})
	})
	return err
}

// LatestDataset returns the most recently persisted run and its rows.
func (s *ResultsService) LatestDataset(ctx context.Context) (*StoredDataset, error) {
	if s.repo == nil {
		return nil, ErrPersistenceUnavailable
	}
	return withTelemetry(s, ctx, "LatestDataset", "latest", func(ctx context.Context) (*StoredDataset, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*StoredDataset, error) {
			run, err := s.repo.GetLatestRun(ctx, db)
			if err != nil {
				return nil, err
			}
			stored, err := s.repo.ListResults(ctx, db, run.UUID)
			if err != nil {
				return nil, err
			}
			rows := make([]resultstypes.FinalRow, len(stored))
			for i, r := range stored {
				rows[i] = r.FinalRow(s.normalizer.location)
			}
			return &StoredDataset{Run: run, Rows: rows}, nil
		})
	})
}
