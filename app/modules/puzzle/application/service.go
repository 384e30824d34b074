package puzzleservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/application/parsers"
	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
)

// ErrMetadataUnreadable wraps any failure to open or parse the answers table.
var ErrMetadataUnreadable = errors.New("puzzle metadata unreadable")

// LoadReport counts answers-table rows that did not become metadata.
type LoadReport struct {
	Rows       int
	Skipped    int
	Unscorable int
}

// Service loads and scores the answers table.
type Service interface {
	LoadMetadata(ctx context.Context, path string) ([]puzzletypes.PuzzleMetadata, LoadReport, error)
}

// PuzzleService implements the Service interface.
type PuzzleService struct {
	parsers parsers.ParserFactory
	scorer  *Scorer
	logger  *slog.Logger
}

// NewPuzzleService creates a new PuzzleService.
func NewPuzzleService(factory parsers.ParserFactory, scorer *Scorer, logger *slog.Logger) *PuzzleService {
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		factory = parsers.NewFactory()
	}
	if scorer == nil {
		scorer = NewScorer(StandardLetters())
	}
	return &PuzzleService{
		parsers: factory,
		scorer:  scorer,
		logger:  logger,
	}
}

// LoadMetadata reads the answers file at path and derives points and
// difficulty for every row. A missing or unparseable file is fatal; rows that
// cannot be scored are skipped and counted.
func (s *PuzzleService) LoadMetadata(ctx context.Context, path string) ([]puzzletypes.PuzzleMetadata, LoadReport, error) {
	var report LoadReport

	parser, err := s.parsers.GetParser(path)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %w", ErrMetadataUnreadable, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %w", ErrMetadataUnreadable, err)
	}

	table, err := parser.Parse(data)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %w", ErrMetadataUnreadable, path, err)
	}
	report.Skipped = table.Skipped

	metadata := make([]puzzletypes.PuzzleMetadata, 0, len(table.Rows))
	for _, row := range table.Rows {
		points, err := s.scorer.Points(row.Answer)
		if err != nil {
			report.Unscorable++
			s.logger.WarnContext(ctx, "Skipping unscorable answer",
				slog.Int("puzzle_number", row.PuzzleNumber),
				slog.String("answer", row.Answer),
				slog.String("error", err.Error()),
			)
			continue
		}
		metadata = append(metadata, puzzletypes.PuzzleMetadata{
			PuzzleNumber:   row.PuzzleNumber,
			AnswerWord:     row.Answer,
			ScrabblePoints: points,
			Difficulty:     Classify(points),
			Extra:          row.Extra,
		})
	}
	report.Rows = len(metadata)

	s.logger.InfoContext(ctx, "Loaded puzzle metadata",
		slog.String("path", path),
		slog.Int("rows", report.Rows),
		slog.Int("skipped", report.Skipped),
		slog.Int("unscorable", report.Unscorable),
	)

	return metadata, report, nil
}
