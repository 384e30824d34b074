package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
)

// Parser defines the interface for answers-table parsers
type Parser interface {
	Parse(data []byte) (*puzzletypes.AnswerTable, error)
}

// ParserFactory defines the interface for creating parsers
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension
type Factory struct{}

// NewFactory creates a new parser factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the appropriate parser for the given filename
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv", ".tsv", ".txt":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported answers file type: %q", ext)
	}
}
