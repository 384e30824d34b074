package resultsdb

import (
	"testing"
	"time"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewPuzzleResults(t *testing.T) {
	runID := uuid.New()
	rows := []resultstypes.FinalRow{
		{
			NormalizedResult: resultstypes.NormalizedResult{
				Timestamp:    time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
				Author:       "Player1",
				GameLabel:    "Wordle",
				PuzzleNumber: 412,
				FinalScore:   4,
				Fails:        3,
			},
			Puzzle: &puzzletypes.PuzzleMetadata{PuzzleNumber: 412, AnswerWord: "crane", ScrabblePoints: 7, Difficulty: puzzletypes.DifficultyEasy},
		},
		{
			NormalizedResult: resultstypes.NormalizedResult{Author: "Bob", GameLabel: "Wordle", PuzzleNumber: 999, FinalScore: 6, Fails: 5},
		},
	}

	models := NewPuzzleResults(runID, rows)
	require.Len(t, models, 2)

	require.Equal(t, runID, models[0].RunUUID)
	require.Equal(t, 0, models[0].Position)
	require.Equal(t, "crane", *models[0].AnswerWord)
	require.Equal(t, 7, *models[0].ScrabblePoints)
	require.Equal(t, "Easy", *models[0].Difficulty)

	require.Equal(t, 1, models[1].Position)
	require.Nil(t, models[1].AnswerWord)
	require.Nil(t, models[1].ScrabblePoints)
	require.Nil(t, models[1].Difficulty)

	require.Equal(t, rows[0], models[0].FinalRow(nil))
	require.Equal(t, rows[1], models[1].FinalRow(nil))
}

func TestPuzzleResult_FinalRowLocation(t *testing.T) {
	chicago := time.FixedZone("CST", -6*60*60)
	stored := PuzzleResult{PlayedAt: time.Date(2024, 1, 2, 16, 30, 0, 0, time.UTC)}

	got := stored.FinalRow(chicago).Timestamp
	require.Equal(t, chicago, got.Location())
	require.Equal(t, "2024-01-02T10:30:00", got.Format("2006-01-02T15:04:05"))
	require.True(t, got.Equal(stored.PlayedAt))
}

func TestNewRun(t *testing.T) {
	report := resultstypes.RunReport{
		RunID:        uuid.New(),
		LinesRead:    10,
		LinesSkipped: 6,
		Normalize: resultstypes.NormalizeReport{
			Kept: 3,
			Dropped: map[resultstypes.DropReason]int{
				resultstypes.DropGameLabel: 1,
			},
		},
		Join: resultstypes.JoinReport{Matched: 2, Unmatched: 1},
	}

	run := NewRun(report, "chat.txt")
	require.Equal(t, report.RunID, run.UUID)
	require.Equal(t, "chat.txt", run.SourcePath)
	require.Equal(t, 10, run.LinesRead)
	require.Equal(t, 6, run.LinesSkipped)
	require.Equal(t, 3, run.Kept)
	require.Equal(t, 2, run.Matched)
	require.Equal(t, 1, run.Unmatched)
	require.Equal(t, map[string]int{"game_label": 1}, run.Dropped)
}
