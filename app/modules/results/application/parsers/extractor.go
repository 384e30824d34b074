package parsers

import (
	"strings"

	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// Extract splits the content segment of a classified line into tokens. It does
// not validate; the normalizer decides which records survive.
func Extract(c resultstypes.ClassifiedLine) resultstypes.ExtractedRecord {
	return resultstypes.ExtractedRecord{
		LineNumber:    c.LineNumber,
		Date:          c.DateSegment,
		Time:          c.TimeSegment,
		Author:        c.AuthorSegment,
		ContentTokens: strings.Fields(c.ContentSegment),
		Fallbacks:     c.Fallbacks,
	}
}
