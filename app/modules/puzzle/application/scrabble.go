package puzzleservice

import (
	"errors"
	"fmt"
	"unicode"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
)

// ErrUnscorableLetter is returned when a word contains a rune the letter table
// does not score.
var ErrUnscorableLetter = errors.New("letter has no point value")

// Difficulty thresholds. Points below EasyBelow are Easy and points above
// HardAbove are Hard; with integer points nothing falls between them, so
// Undefined is currently unreachable.
const (
	EasyBelow = 12
	HardAbove = 11
)

// LetterTable maps lower-case letters to their point value.
type LetterTable map[rune]int

// StandardLetters returns a fresh copy of the English Scrabble letter values.
func StandardLetters() LetterTable {
	return LetterTable{
		'a': 1, 'b': 3, 'c': 3, 'd': 2, 'e': 1, 'f': 4, 'g': 2,
		'h': 4, 'i': 1, 'j': 8, 'k': 5, 'l': 1, 'm': 3, 'n': 1,
		'o': 1, 'p': 3, 'q': 10, 'r': 1, 's': 1, 't': 1, 'u': 1,
		'v': 4, 'w': 4, 'x': 8, 'y': 4, 'z': 10,
	}
}

// Scorer sums letter values over answer words.
type Scorer struct {
	letters LetterTable
}

// NewScorer copies table so later changes by the caller have no effect.
func NewScorer(table LetterTable) *Scorer {
	letters := make(LetterTable, len(table))
	for r, v := range table {
		letters[unicode.ToLower(r)] = v
	}
	return &Scorer{letters: letters}
}

// Points returns the case-folded letter sum of word.
func (s *Scorer) Points(word string) (int, error) {
	total := 0
	for _, r := range word {
		v, ok := s.letters[unicode.ToLower(r)]
		if !ok {
			return 0, fmt.Errorf("%w: %q in %q", ErrUnscorableLetter, r, word)
		}
		total += v
	}
	return total, nil
}

// Classify labels a point total.
func Classify(points int) puzzletypes.Difficulty {
	switch {
	case points < EasyBelow:
		return puzzletypes.DifficultyEasy
	case points > HardAbove:
		return puzzletypes.DifficultyHard
	default:
		return puzzletypes.DifficultyUndefined
	}
}
