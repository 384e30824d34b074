package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
)

// CSVParser parses comma or tab separated answers files
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data and returns an AnswerTable
func (p *CSVParser) Parse(data []byte) (*puzzletypes.AnswerTable, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}

	return buildTable(records)
}
