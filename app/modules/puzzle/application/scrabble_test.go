package puzzleservice

import (
	"testing"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	"github.com/stretchr/testify/require"
)

func TestScorer_Points(t *testing.T) {
	scorer := NewScorer(StandardLetters())

	tests := []struct {
		name    string
		word    string
		want    int
		wantErr bool
	}{
		{name: "lower case", word: "crane", want: 7},
		{name: "upper case", word: "CRANE", want: 7},
		{name: "heavy letters", word: "jazzy", want: 33},
		{name: "empty word", word: "", want: 0},
		{name: "digit", word: "cr4ne", wantErr: true},
		{name: "accented letter", word: "café", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Points(tt.word)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnscorableLetter)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewScorer_CopiesTable(t *testing.T) {
	table := StandardLetters()
	scorer := NewScorer(table)
	table['a'] = 100

	got, err := scorer.Points("a")
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestClassify(t *testing.T) {
	require.Equal(t, puzzletypes.DifficultyEasy, Classify(0))
	require.Equal(t, puzzletypes.DifficultyEasy, Classify(11))
	require.Equal(t, puzzletypes.DifficultyHard, Classify(12))
	require.Equal(t, puzzletypes.DifficultyHard, Classify(40))

	for points := -5; points < 100; points++ {
		require.NotEqual(t, puzzletypes.DifficultyUndefined, Classify(points), "points=%d", points)
	}
}
