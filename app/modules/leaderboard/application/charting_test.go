package leaderboardservice

import (
	"bytes"
	"testing"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestGenerateRankingChart(t *testing.T) {
	tests := []struct {
		name      string
		standings Standings
	}{
		{
			name: "ranked players",
			standings: Standings{Players: []PlayerStats{
				{Player: "Carol", Rank: 1, TotalFails: 3},
				{Player: "Alice", Rank: 2, TotalFails: 5},
			}},
		},
		{
			name:      "all zero fails",
			standings: Standings{Players: []PlayerStats{{Player: "Alice", Rank: 1}}},
		},
		{name: "no players", standings: Standings{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := GenerateRankingChart(tt.standings, DefaultPalette)
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(png, pngMagic))
		})
	}
}

func TestGenerateFailsChart(t *testing.T) {
	tests := []struct {
		name  string
		stats PlayerStats
	}{
		{
			name: "both difficulties",
			stats: PlayerStats{
				Player: "Alice",
				Distribution: map[puzzletypes.Difficulty][]int{
					puzzletypes.DifficultyEasy: {0, 1, 4, 2, 0, 0},
					puzzletypes.DifficultyHard: {0, 0, 1, 3, 1, 2},
				},
			},
		},
		{
			name: "single difficulty",
			stats: PlayerStats{
				Player:       "Bob",
				Distribution: map[puzzletypes.Difficulty][]int{puzzletypes.DifficultyEasy: {1, 0, 0, 0, 0, 0}},
			},
		},
		{name: "no rated results", stats: PlayerStats{Player: "Carol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := GenerateFailsChart(tt.stats, DefaultPalette)
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(png, pngMagic))
		})
	}
}
