package resultsexport

import (
	"fmt"
	"io"

	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds an exported dataset.
const SheetName = "Dataset"

// WriteXLSX encodes rows as a one-sheet workbook with the Columns header.
// Numeric columns are written as numbers; missing metadata leaves cells blank.
func WriteXLSX(w io.Writer, rows []resultstypes.FinalRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Timestamp.Format(TimestampLayout),
			row.Author,
			row.GameLabel,
			row.PuzzleNumber,
			row.FinalScore,
			row.Fails,
		}
		if row.Puzzle != nil {
			values = append(values, row.Puzzle.AnswerWord, row.Puzzle.ScrabblePoints, string(row.Puzzle.Difficulty))
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

// WriteXLSXFile writes the workbook to path, replacing it only on success.
func WriteXLSXFile(path string, rows []resultstypes.FinalRow) error {
	p, err := prepare(path, func(w io.Writer) error { return WriteXLSX(w, rows) })
	if err != nil {
		return err
	}
	if err := p.commit(); err != nil {
		p.discard()
		return err
	}
	return nil
}
