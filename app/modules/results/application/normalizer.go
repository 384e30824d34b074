package resultsservice

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// DefaultGameLabel is the first content token every kept result must carry.
const DefaultGameLabel = "Wordle"

const (
	expectedTokenCount = 3
	failureSentinel    = 'X'
	failureScore       = 7
	maxScore           = 6
)

// DefaultTimestampLayouts are tried in order against "<date> <time>".
// Chat exports are month-first.
var DefaultTimestampLayouts = []string{
	"1/2/06 3:04 PM",
	"1/2/06 3:04:05 PM",
	"1/2/06 15:04",
	"1/2/06 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// variantScorePrefixes mark garbled or variant score tokens.
var variantScorePrefixes = map[rune]bool{'g': true, 'h': true}

// Normalizer validates extracted records and coerces them into results.
type Normalizer struct {
	gameLabel string
	layouts   []string
	location  *time.Location
}

// NewNormalizer creates a Normalizer. Empty arguments select the defaults.
func NewNormalizer(gameLabel string, layouts []string, location *time.Location) *Normalizer {
	if gameLabel == "" {
		gameLabel = DefaultGameLabel
	}
	if len(layouts) == 0 {
		layouts = DefaultTimestampLayouts
	}
	if location == nil {
		location = time.UTC
	}
	return &Normalizer{
		gameLabel: gameLabel,
		layouts:   layouts,
		location:  location,
	}
}

// Normalize filters a batch of records. Each record either becomes a
// NormalizedResult or is counted under a DropReason; nothing here fails.
func (n *Normalizer) Normalize(records []resultstypes.ExtractedRecord) ([]resultstypes.NormalizedResult, resultstypes.NormalizeReport) {
	report := resultstypes.NormalizeReport{Dropped: make(map[resultstypes.DropReason]int)}
	out := make([]resultstypes.NormalizedResult, 0, len(records))

	for _, rec := range records {
		result, reason, ok := n.normalizeOne(rec)
		if !ok {
			report.Dropped[reason]++
			continue
		}
		out = append(out, result)
	}

	report.Kept = len(out)
	return out, report
}

func (n *Normalizer) normalizeOne(rec resultstypes.ExtractedRecord) (resultstypes.NormalizedResult, resultstypes.DropReason, bool) {
	if len(rec.ContentTokens) != expectedTokenCount {
		return resultstypes.NormalizedResult{}, resultstypes.DropTokenCount, false
	}

	game, puzzleToken, scoreToken := rec.ContentTokens[0], rec.ContentTokens[1], rec.ContentTokens[2]
	if game != n.gameLabel {
		return resultstypes.NormalizedResult{}, resultstypes.DropGameLabel, false
	}

	scoreChar, _ := utf8.DecodeRuneInString(scoreToken)
	if variantScorePrefixes[scoreChar] {
		return resultstypes.NormalizedResult{}, resultstypes.DropVariantScore, false
	}

	score, ok := parseScore(scoreChar)
	if !ok {
		return resultstypes.NormalizedResult{}, resultstypes.DropInvalidScore, false
	}

	// A failed puzzle scores as six guesses: five fails.
	if score == failureScore {
		score = maxScore
	}
	fails := score - 1

	puzzle, ok := parsePuzzleNumber(puzzleToken)
	if !ok {
		return resultstypes.NormalizedResult{}, resultstypes.DropInvalidPuzzle, false
	}

	ts, ok := n.parseTimestamp(rec.Date, rec.Time)
	if !ok {
		return resultstypes.NormalizedResult{}, resultstypes.DropInvalidTime, false
	}

	return resultstypes.NormalizedResult{
		LineNumber:   rec.LineNumber,
		Timestamp:    ts,
		Author:       rec.Author,
		GameLabel:    game,
		PuzzleNumber: puzzle,
		FinalScore:   score,
		Fails:        fails,
	}, "", true
}

// parseScore maps the first character of a score token to a pre-clamp score.
func parseScore(c rune) (int, bool) {
	if c == failureSentinel {
		return failureScore, true
	}
	if c < '1' || c > '0'+maxScore {
		return 0, false
	}
	return int(c - '0'), true
}

// parsePuzzleNumber accepts plain digits and comma-grouped digits ("1,234").
func parsePuzzleNumber(token string) (int, bool) {
	token = strings.ReplaceAll(token, ",", "")
	if token == "" || token[0] == '+' || token[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (n *Normalizer) parseTimestamp(date, clock string) (time.Time, bool) {
	raw := normalizeSpaces(strings.TrimSpace(date) + " " + strings.ToUpper(strings.TrimSpace(clock)))
	for _, layout := range n.layouts {
		if ts, err := time.ParseInLocation(layout, raw, n.location); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizeSpaces folds the no-break spaces some exports put before AM/PM.
func normalizeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u202f', '\u00a0':
			return ' '
		}
		return r
	}, s)
}
