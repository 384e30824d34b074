package resultsexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// TimestampLayout is how result timestamps are rendered in exported datasets.
const TimestampLayout = "2006-01-02T15:04:05"

// Columns is the fixed dataset header, in order.
var Columns = []string{
	"timestamp",
	"author",
	"game_label",
	"puzzle_number",
	"final_score",
	"fails",
	"answer_word",
	"scrabble_points",
	"difficulty_label",
}

// ErrSchemaMismatch is returned when a dataset header differs from Columns.
var ErrSchemaMismatch = errors.New("dataset schema mismatch")

// record renders a row in Columns order. Missing metadata becomes empty cells.
func record(row resultstypes.FinalRow) []string {
	out := []string{
		row.Timestamp.Format(TimestampLayout),
		row.Author,
		row.GameLabel,
		strconv.Itoa(row.PuzzleNumber),
		strconv.Itoa(row.FinalScore),
		strconv.Itoa(row.Fails),
		"", "", "",
	}
	if row.Puzzle != nil {
		out[6] = row.Puzzle.AnswerWord
		out[7] = strconv.Itoa(row.Puzzle.ScrabblePoints)
		out[8] = string(row.Puzzle.Difficulty)
	}
	return out
}

// Write encodes rows as CSV with the Columns header.
func Write(w io.Writer, rows []resultstypes.FinalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV dataset to path. The file is replaced only once the
// whole dataset has been written.
func WriteFile(path string, rows []resultstypes.FinalRow) error {
	return WriteDataset(path, "", rows)
}

// WriteDataset writes the CSV dataset to csvPath and, when xlsxPath is set, the
// workbook to xlsxPath. Neither target is touched unless both files were
// written in full.
func WriteDataset(csvPath, xlsxPath string, rows []resultstypes.FinalRow) error {
	pending := make([]*pendingFile, 0, 2)
	defer func() {
		for _, p := range pending {
			p.discard()
		}
	}()

	csvFile, err := prepare(csvPath, func(w io.Writer) error { return Write(w, rows) })
	if err != nil {
		return err
	}
	pending = append(pending, csvFile)

	if xlsxPath != "" {
		xlsxFile, err := prepare(xlsxPath, func(w io.Writer) error { return WriteXLSX(w, rows) })
		if err != nil {
			return err
		}
		pending = append(pending, xlsxFile)
	}

	for len(pending) > 0 {
		if err := pending[0].commit(); err != nil {
			return err
		}
		pending = pending[1:]
	}
	return nil
}

// fileMode is the permission of every written dataset file.
const fileMode = 0o644

// pendingFile is a fully written temporary file waiting to replace path.
type pendingFile struct {
	tmp  string
	path string
}

// prepare writes to a temporary file beside path.
func prepare(path string, write func(io.Writer) error) (_ *pendingFile, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return nil, err
	}
	if err = tmp.Chmod(fileMode); err != nil {
		return nil, fmt.Errorf("failed to set permissions on %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	return &pendingFile{tmp: tmp.Name(), path: path}, nil
}

// commit renames the temporary file into place.
func (p *pendingFile) commit() error {
	if err := os.Rename(p.tmp, p.path); err != nil {
		return fmt.Errorf("failed to move dataset into %s: %w", p.path, err)
	}
	return nil
}

// discard removes the temporary file if it was never committed.
func (p *pendingFile) discard() {
	os.Remove(p.tmp)
}
