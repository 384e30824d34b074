package resultsservice

import (
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// ApplyAliases returns a copy of rows with each author replaced by its entry in
// aliases. Every entry of the table is honored; authors without an entry keep
// their chat name.
func ApplyAliases(rows []resultstypes.NormalizedResult, aliases map[string]string) []resultstypes.NormalizedResult {
	out := make([]resultstypes.NormalizedResult, len(rows))
	copy(out, rows)
	if len(aliases) == 0 {
		return out
	}
	for i := range out {
		if canonical, ok := aliases[out[i].Author]; ok {
			out[i].Author = canonical
		}
	}
	return out
}
