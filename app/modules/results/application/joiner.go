package resultsservice

import (
	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// Join attaches puzzle metadata to each result by puzzle number. Results drive
// the output: every result appears once, in input order, and metadata without
// a result is ignored. When the metadata repeats a puzzle number the first
// entry wins.
func Join(results []resultstypes.NormalizedResult, metadata []puzzletypes.PuzzleMetadata) ([]resultstypes.FinalRow, resultstypes.JoinReport) {
	var report resultstypes.JoinReport

	index := make(map[int]*puzzletypes.PuzzleMetadata, len(metadata))
	for i := range metadata {
		if _, exists := index[metadata[i].PuzzleNumber]; exists {
			report.DuplicateMetadata++
			continue
		}
		index[metadata[i].PuzzleNumber] = &metadata[i]
	}

	rows := make([]resultstypes.FinalRow, 0, len(results))
	for _, r := range results {
		row := resultstypes.FinalRow{NormalizedResult: r}
		if meta, ok := index[r.PuzzleNumber]; ok {
			m := *meta
			row.Puzzle = &m
			report.Matched++
		} else {
			report.Unmatched++
		}
		rows = append(rows, row)
	}

	return rows, report
}
