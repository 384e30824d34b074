package parsers

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
)

var (
	puzzleColumnNames = []string{"PuzzleNum", "puzzle_number", "puzzle", "number"}
	answerColumnNames = []string{"Answer", "answer_word", "word", "solution"}
)

// buildTable turns raw rows (header first) into an AnswerTable. Rows whose
// puzzle number cannot be parsed or whose answer is blank are counted as
// skipped rather than failing the file.
func buildTable(rows [][]string) (*puzzletypes.AnswerTable, error) {
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("answers table is empty")
	}

	header := trimAll(rows[0])
	puzzleCol := findColumn(header, puzzleColumnNames)
	if puzzleCol < 0 {
		return nil, fmt.Errorf("answers table has no puzzle number column (want one of %v)", puzzleColumnNames)
	}
	answerCol := findColumn(header, answerColumnNames)
	if answerCol < 0 {
		return nil, fmt.Errorf("answers table has no answer column (want one of %v)", answerColumnNames)
	}

	table := &puzzletypes.AnswerTable{Header: header}
	for _, row := range rows[1:] {
		puzzle, ok := parsePuzzleCell(cell(row, puzzleCol))
		answer := cell(row, answerCol)
		if !ok || answer == "" {
			table.Skipped++
			continue
		}

		var extra map[string]string
		for i, name := range header {
			if i == puzzleCol || i == answerCol || name == "" {
				continue
			}
			if extra == nil {
				extra = make(map[string]string)
			}
			extra[name] = cell(row, i)
		}

		table.Rows = append(table.Rows, puzzletypes.AnswerRow{
			PuzzleNumber: puzzle,
			Answer:       answer,
			Extra:        extra,
		})
	}

	return table, nil
}

// findColumn searches for a column by multiple possible names (case-insensitive)
// Removes spaces, underscores, and hyphens for normalization
func findColumn(header []string, possibleNames []string) int {
	for _, name := range possibleNames {
		nameNorm := normalizeHeader(name)
		for i, col := range header {
			if normalizeHeader(col) == nameNorm {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// parsePuzzleCell accepts "412", "1,234" and spreadsheet floats such as "412.0".
func parsePuzzleCell(val string) (int, bool) {
	val = strings.ReplaceAll(strings.TrimSpace(val), ",", "")
	if val == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		empty := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// preprocessCSVData cleans CSV data and auto-detects delimiter
// Returns: cleaned string, delimiter rune, error
func preprocessCSVData(data []byte) (string, rune, error) {
	if len(data) == 0 {
		return "", ',', fmt.Errorf("empty CSV data")
	}

	// Strip UTF-8 BOM if present (0xEF, 0xBB, 0xBF)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cleaned := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	cleanedStr := string(cleaned)

	// Auto-detect delimiter: count commas vs tabs in first 5 lines
	lines := strings.SplitN(cleanedStr, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}

	commaCount := 0
	tabCount := 0
	for _, line := range lines {
		commaCount += strings.Count(line, ",")
		tabCount += strings.Count(line, "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}

	return cleanedStr, delimiter, nil
}
