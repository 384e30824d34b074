package resultsexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// ReadCSV decodes a dataset produced by Write. The header must equal Columns.
func ReadCSV(r io.Reader) ([]resultstypes.FinalRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty dataset", ErrSchemaMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	for i, c := range Columns {
		if header[i] != c {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i+1, header[i], c)
		}
	}

	var rows []resultstypes.FinalRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("dataset line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile opens path and decodes it with ReadCSV.
func ReadFile(path string) ([]resultstypes.FinalRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseRecord(rec []string) (resultstypes.FinalRow, error) {
	var row resultstypes.FinalRow
	var err error

	if row.Timestamp, err = time.Parse(TimestampLayout, rec[0]); err != nil {
		return row, fmt.Errorf("invalid timestamp %q", rec[0])
	}
	row.Author = rec[1]
	row.GameLabel = rec[2]
	if row.PuzzleNumber, err = strconv.Atoi(rec[3]); err != nil {
		return row, fmt.Errorf("invalid puzzle_number %q", rec[3])
	}
	if row.FinalScore, err = strconv.Atoi(rec[4]); err != nil {
		return row, fmt.Errorf("invalid final_score %q", rec[4])
	}
	if row.Fails, err = strconv.Atoi(rec[5]); err != nil {
		return row, fmt.Errorf("invalid fails %q", rec[5])
	}

	if rec[6] == "" && rec[7] == "" && rec[8] == "" {
		return row, nil
	}

	points, err := strconv.Atoi(rec[7])
	if err != nil {
		return row, fmt.Errorf("invalid scrabble_points %q", rec[7])
	}
	difficulty, ok := puzzletypes.ParseDifficulty(rec[8])
	if !ok {
		return row, fmt.Errorf("invalid difficulty_label %q", rec[8])
	}
	row.Puzzle = &puzzletypes.PuzzleMetadata{
		PuzzleNumber:   row.PuzzleNumber,
		AnswerWord:     rec[6],
		ScrabblePoints: points,
		Difficulty:     difficulty,
	}
	return row, nil
}
