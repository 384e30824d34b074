package puzzletypes

// Difficulty classifies a puzzle's answer word by its cumulative letter points.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyHard      Difficulty = "Hard"
	DifficultyUndefined Difficulty = "Undefined"
)

// ParseDifficulty maps a label read back from a dataset to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyHard, DifficultyUndefined:
		return Difficulty(s), true
	}
	return "", false
}

// AnswerRow is one row of the answers table before scoring.
type AnswerRow struct {
	PuzzleNumber int
	Answer       string
	// Extra holds pass-through columns keyed by their header.
	Extra map[string]string
}

// AnswerTable is the parsed answers file.
type AnswerTable struct {
	Header []string
	Rows   []AnswerRow
	// Skipped counts data rows whose puzzle number could not be parsed.
	Skipped int
}

// PuzzleMetadata is the per-puzzle enrichment joined onto results.
type PuzzleMetadata struct {
	PuzzleNumber   int
	AnswerWord     string
	ScrabblePoints int
	Difficulty     Difficulty
	Extra          map[string]string
}
