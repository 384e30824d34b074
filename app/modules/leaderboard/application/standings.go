package leaderboardservice

import (
	"slices"
	"sort"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// maxFails is the highest fails value a result can carry.
const maxFails = 5

// Filter selects the results the dashboard summarizes.
type Filter struct {
	// MaxPuzzle excludes puzzle numbers at or above it. Zero disables the bound.
	MaxPuzzle      int      `yaml:"max_puzzle" json:"max_puzzle,omitempty"`
	ExcludePuzzles []int    `yaml:"exclude_puzzles" json:"exclude_puzzles,omitempty"`
	Players        []string `yaml:"players" json:"players,omitempty"`
	// RequireFullSlate keeps only puzzles played by every player in Players.
	RequireFullSlate bool `yaml:"require_full_slate" json:"require_full_slate,omitempty"`
}

// PlayerStats summarizes one player's results.
type PlayerStats struct {
	Player     string `json:"player"`
	Rank       int    `json:"rank"`
	TotalFails int    `json:"total_fails"`
	Games      int    `json:"games"`
	// AverageFails and Distribution only count rows with puzzle metadata.
	AverageFails map[puzzletypes.Difficulty]float64 `json:"average_fails"`
	// Distribution holds, per difficulty, the number of results with 0..5 fails.
	Distribution map[puzzletypes.Difficulty][]int `json:"distribution"`
}

// Standings is the ranked summary of a dataset.
type Standings struct {
	Puzzles int           `json:"puzzles"`
	Rows    int           `json:"rows"`
	Players []PlayerStats `json:"players"`
}

// Player returns the stats for name.
func (s Standings) Player(name string) (PlayerStats, bool) {
	for _, p := range s.Players {
		if p.Player == name {
			return p, true
		}
	}
	return PlayerStats{}, false
}

// Compute filters rows and ranks players by total fails, fewest first. Ties
// share a rank and are listed by name.
func Compute(rows []resultstypes.FinalRow, f Filter) Standings {
	rows = Apply(rows, f)

	type accumulator struct {
		stats   PlayerStats
		puzzles map[int]struct{}
		sums    map[puzzletypes.Difficulty]int
		counts  map[puzzletypes.Difficulty]int
	}

	byPlayer := make(map[string]*accumulator)
	puzzles := make(map[int]struct{})
	for _, row := range rows {
		acc, ok := byPlayer[row.Author]
		if !ok {
			acc = &accumulator{
				stats: PlayerStats{
					Player:       row.Author,
					AverageFails: make(map[puzzletypes.Difficulty]float64),
					Distribution: make(map[puzzletypes.Difficulty][]int),
				},
				puzzles: make(map[int]struct{}),
				sums:    make(map[puzzletypes.Difficulty]int),
				counts:  make(map[puzzletypes.Difficulty]int),
			}
			byPlayer[row.Author] = acc
		}

		puzzles[row.PuzzleNumber] = struct{}{}
		acc.puzzles[row.PuzzleNumber] = struct{}{}
		acc.stats.TotalFails += row.Fails

		if row.Puzzle == nil {
			continue
		}
		d := row.Puzzle.Difficulty
		acc.sums[d] += row.Fails
		acc.counts[d]++
		dist, ok := acc.stats.Distribution[d]
		if !ok {
			dist = make([]int, maxFails+1)
			acc.stats.Distribution[d] = dist
		}
		if row.Fails >= 0 && row.Fails <= maxFails {
			dist[row.Fails]++
		}
	}

	players := make([]PlayerStats, 0, len(byPlayer))
	for _, acc := range byPlayer {
		acc.stats.Games = len(acc.puzzles)
		for d, n := range acc.counts {
			acc.stats.AverageFails[d] = float64(acc.sums[d]) / float64(n)
		}
		players = append(players, acc.stats)
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].TotalFails != players[j].TotalFails {
			return players[i].TotalFails < players[j].TotalFails
		}
		return players[i].Player < players[j].Player
	})
	for i := range players {
		if i > 0 && players[i].TotalFails == players[i-1].TotalFails {
			players[i].Rank = players[i-1].Rank
		} else {
			players[i].Rank = i + 1
		}
	}

	return Standings{
		Puzzles: len(puzzles),
		Rows:    len(rows),
		Players: players,
	}
}

// Apply returns the rows that pass f, in their original order. Rows without
// puzzle metadata are kept; rows rated Undefined are not.
func Apply(rows []resultstypes.FinalRow, f Filter) []resultstypes.FinalRow {
	out := make([]resultstypes.FinalRow, 0, len(rows))
	for _, row := range rows {
		if f.MaxPuzzle > 0 && row.PuzzleNumber >= f.MaxPuzzle {
			continue
		}
		if slices.Contains(f.ExcludePuzzles, row.PuzzleNumber) {
			continue
		}
		if row.Puzzle != nil && row.Puzzle.Difficulty == puzzletypes.DifficultyUndefined {
			continue
		}
		if len(f.Players) > 0 && !slices.Contains(f.Players, row.Author) {
			continue
		}
		out = append(out, row)
	}

	if f.RequireFullSlate && len(f.Players) > 0 {
		distinct := make(map[string]struct{}, len(f.Players))
		for _, p := range f.Players {
			distinct[p] = struct{}{}
		}
		out = fullSlate(out, len(distinct))
	}
	return out
}

// fullSlate keeps the rows of puzzles played by want distinct players.
func fullSlate(rows []resultstypes.FinalRow, want int) []resultstypes.FinalRow {
	players := make(map[int]map[string]struct{})
	for _, row := range rows {
		set, ok := players[row.PuzzleNumber]
		if !ok {
			set = make(map[string]struct{})
			players[row.PuzzleNumber] = set
		}
		set[row.Author] = struct{}{}
	}

	out := rows[:0]
	for _, row := range rows {
		if len(players[row.PuzzleNumber]) == want {
			out = append(out, row)
		}
	}
	return out
}
