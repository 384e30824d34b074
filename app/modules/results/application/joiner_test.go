package resultsservice

import (
	"testing"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	results := []resultstypes.NormalizedResult{
		{Author: "A", PuzzleNumber: 412},
		{Author: "B", PuzzleNumber: 999},
		{Author: "C", PuzzleNumber: 412},
	}
	metadata := []puzzletypes.PuzzleMetadata{
		{PuzzleNumber: 412, AnswerWord: "crane", ScrabblePoints: 7, Difficulty: puzzletypes.DifficultyEasy},
		{PuzzleNumber: 500, AnswerWord: "jazzy", ScrabblePoints: 33, Difficulty: puzzletypes.DifficultyHard},
		{PuzzleNumber: 412, AnswerWord: "slate", ScrabblePoints: 5, Difficulty: puzzletypes.DifficultyEasy},
	}

	rows, report := Join(results, metadata)

	require.Len(t, rows, len(results))
	require.Equal(t, resultstypes.JoinReport{Matched: 2, Unmatched: 1, DuplicateMetadata: 1}, report)

	for i, row := range rows {
		require.Equal(t, results[i], row.NormalizedResult)
	}
	require.NotNil(t, rows[0].Puzzle)
	require.Equal(t, "crane", rows[0].Puzzle.AnswerWord)
	require.Nil(t, rows[1].Puzzle)
	require.Equal(t, "crane", rows[2].Puzzle.AnswerWord)

	rows[0].Puzzle.AnswerWord = "changed"
	require.Equal(t, "crane", rows[2].Puzzle.AnswerWord)
	require.Equal(t, "crane", metadata[0].AnswerWord)
}

func TestJoin_NoMetadata(t *testing.T) {
	rows, report := Join([]resultstypes.NormalizedResult{{PuzzleNumber: 1}}, nil)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].Puzzle)
	require.Equal(t, 1, report.Unmatched)
}
