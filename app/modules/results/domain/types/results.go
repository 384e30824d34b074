package resultstypes

import (
	"time"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	"github.com/google/uuid"
)

// Fallback records which segments of a classified line were taken from the
// default template instead of the line itself.
type Fallback uint8

const (
	FallbackDate Fallback = 1 << iota
	FallbackTime
	FallbackAuthor
	FallbackContent
)

// Has reports whether f includes flag.
func (f Fallback) Has(flag Fallback) bool {
	return f&flag != 0
}

// ClassifiedLine is a raw line that matched the game keyword, split into its
// segments.
type ClassifiedLine struct {
	LineNumber     int
	IsResult       bool
	Keyword        string
	DateSegment    string
	TimeSegment    string
	AuthorSegment  string
	ContentSegment string
	Fallbacks      Fallback
}

// ExtractedRecord is the structural decomposition of a classified line.
type ExtractedRecord struct {
	LineNumber    int
	Date          string
	Time          string
	Author        string
	ContentTokens []string
	Fallbacks     Fallback
}

// NormalizedResult is one validated game result.
type NormalizedResult struct {
	LineNumber   int
	Timestamp    time.Time
	Author       string
	GameLabel    string
	PuzzleNumber int
	FinalScore   int
	Fails        int
}

// FinalRow is a normalized result with its puzzle metadata. Puzzle is nil when
// the answers table has no entry for the puzzle number.
type FinalRow struct {
	NormalizedResult
	Puzzle *puzzletypes.PuzzleMetadata
}

// DropReason names why the normalizer excluded a record.
type DropReason string

const (
	DropTokenCount    DropReason = "token_count"
	DropGameLabel     DropReason = "game_label"
	DropVariantScore  DropReason = "variant_score"
	DropInvalidScore  DropReason = "invalid_score"
	DropInvalidPuzzle DropReason = "invalid_puzzle_number"
	DropInvalidTime   DropReason = "invalid_timestamp"
)

// DropReasons lists every reason in pipeline order.
var DropReasons = []DropReason{
	DropTokenCount,
	DropGameLabel,
	DropVariantScore,
	DropInvalidScore,
	DropInvalidPuzzle,
	DropInvalidTime,
}

// NormalizeReport counts the outcome of a normalize pass.
type NormalizeReport struct {
	Kept    int
	Dropped map[DropReason]int
}

// TotalDropped sums dropped rows across reasons.
func (r NormalizeReport) TotalDropped() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// JoinReport counts how results matched the metadata table.
type JoinReport struct {
	Matched           int
	Unmatched         int
	DuplicateMetadata int
}

// RunReport summarizes one ingestion run.
type RunReport struct {
	RunID         uuid.UUID
	LinesRead     int
	LinesSkipped  int
	Classified    int
	FallbackLines int
	Normalize     NormalizeReport
	Join          JoinReport
	MetadataRows  int
	MetadataSkips int
}
