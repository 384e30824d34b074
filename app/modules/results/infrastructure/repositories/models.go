package resultsdb

import (
	"time"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// IngestionRun is one persisted build of the dataset.
type IngestionRun struct {
	bun.BaseModel `bun:"table:ingestion_runs,alias:ir"`

	UUID         uuid.UUID      `bun:"uuid,pk,type:uuid"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	SourcePath   string         `bun:"source_path,notnull"`
	LinesRead    int            `bun:"lines_read,notnull"`
	LinesSkipped int            `bun:"lines_skipped,notnull"`
	Kept         int            `bun:"kept,notnull"`
	Matched      int            `bun:"matched,notnull"`
	Unmatched    int            `bun:"unmatched,notnull"`
	Dropped      map[string]int `bun:"dropped,type:jsonb"`
}

// PuzzleResult is one dataset row tied to the run that produced it.
type PuzzleResult struct {
	bun.BaseModel `bun:"table:puzzle_results,alias:pr"`

	ID             int64     `bun:"id,pk,autoincrement"`
	RunUUID        uuid.UUID `bun:"run_uuid,notnull,type:uuid"`
	Position       int       `bun:"position,notnull"`
	PlayedAt       time.Time `bun:"played_at,notnull"`
	Author         string    `bun:"author,notnull"`
	GameLabel      string    `bun:"game_label,notnull"`
	PuzzleNumber   int       `bun:"puzzle_number,notnull"`
	FinalScore     int       `bun:"final_score,notnull"`
	Fails          int       `bun:"fails,notnull"`
	AnswerWord     *string   `bun:"answer_word"`
	ScrabblePoints *int      `bun:"scrabble_points"`
	Difficulty     *string   `bun:"difficulty_label"`
}

// NewRun builds the run row from a build report.
func NewRun(report resultstypes.RunReport, sourcePath string) *IngestionRun {
	dropped := make(map[string]int, len(report.Normalize.Dropped))
	for reason, n := range report.Normalize.Dropped {
		dropped[string(reason)] = n
	}
	return &IngestionRun{
		UUID:         report.RunID,
		SourcePath:   sourcePath,
		LinesRead:    report.LinesRead,
		LinesSkipped: report.LinesSkipped,
		Kept:         report.Normalize.Kept,
		Matched:      report.Join.Matched,
		Unmatched:    report.Join.Unmatched,
		Dropped:      dropped,
	}
}

// NewPuzzleResults maps dataset rows to models, preserving row order.
func NewPuzzleResults(runUUID uuid.UUID, rows []resultstypes.FinalRow) []PuzzleResult {
	out := make([]PuzzleResult, len(rows))
	for i, row := range rows {
		out[i] = PuzzleResult{
			RunUUID:      runUUID,
			Position:     i,
			PlayedAt:     row.Timestamp,
			Author:       row.Author,
			GameLabel:    row.GameLabel,
			PuzzleNumber: row.PuzzleNumber,
			FinalScore:   row.FinalScore,
			Fails:        row.Fails,
		}
		if row.Puzzle != nil {
			word := row.Puzzle.AnswerWord
			points := row.Puzzle.ScrabblePoints
			difficulty := string(row.Puzzle.Difficulty)
			out[i].AnswerWord = &word
			out[i].ScrabblePoints = &points
			out[i].Difficulty = &difficulty
		}
	}
	return out
}

// FinalRow converts the model back into a dataset row, with the timestamp in
// loc. Postgres returns timestamptz values in UTC; a nil loc keeps them so.
func (r PuzzleResult) FinalRow(loc *time.Location) resultstypes.FinalRow {
	playedAt := r.PlayedAt
	if loc != nil {
		playedAt = playedAt.In(loc)
	}
	row := resultstypes.FinalRow{
		NormalizedResult: resultstypes.NormalizedResult{
			Timestamp:    playedAt,
			Author:       r.Author,
			GameLabel:    r.GameLabel,
			PuzzleNumber: r.PuzzleNumber,
			FinalScore:   r.FinalScore,
			Fails:        r.Fails,
		},
	}
	if r.AnswerWord != nil {
		meta := &puzzletypes.PuzzleMetadata{
			PuzzleNumber: r.PuzzleNumber,
			AnswerWord:   *r.AnswerWord,
		}
		if r.ScrabblePoints != nil {
			meta.ScrabblePoints = *r.ScrabblePoints
		}
		if r.Difficulty != nil {
			meta.Difficulty = puzzletypes.Difficulty(*r.Difficulty)
		}
		row.Puzzle = meta
	}
	return row
}
