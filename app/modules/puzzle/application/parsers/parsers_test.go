package parsers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "answers.csv", want: "csv"},
		{name: "upper case extension", filename: "ANSWERS.CSV", want: "csv"},
		{name: "tsv file", filename: "answers.tsv", want: "csv"},
		{name: "xlsx file", filename: "answers.xlsx", want: "xlsx"},
		{name: "unsupported file", filename: "answers.json", wantErr: true},
		{name: "no extension", filename: "answers", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name        string
		data        string
		wantErr     bool
		wantRows    int
		wantSkipped int
		wantFirst   string
	}{
		{
			name:      "standard header",
			data:      "PuzzleNum,Answer,Date\n412,CRANE,2022-08-05\n413,slate,2022-08-06\n",
			wantRows:  2,
			wantFirst: "CRANE",
		},
		{
			name:      "bom and crlf",
			data:      "\xEF\xBB\xBFPuzzleNum,Answer\r\n1,cigar\r\n",
			wantRows:  1,
			wantFirst: "cigar",
		},
		{
			name:      "tab separated with alias headers",
			data:      "puzzle number\tword\n7\tpanic\n",
			wantRows:  1,
			wantFirst: "panic",
		},
		{
			name:        "bad rows are skipped",
			data:        "PuzzleNum,Answer\nabc,crane\n5,\n6,TIGHT\n",
			wantRows:    1,
			wantSkipped: 2,
			wantFirst:   "TIGHT",
		},
		{
			name:    "missing answer column",
			data:    "PuzzleNum,Date\n1,2022-01-01\n",
			wantErr: true,
		},
		{
			name:    "missing puzzle column",
			data:    "Answer\ncrane\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parser.Parse([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, table.Rows, tt.wantRows)
			require.Equal(t, tt.wantSkipped, table.Skipped)
			require.Equal(t, tt.wantFirst, table.Rows[0].Answer)
		})
	}
}

func TestCSVParser_PassThroughColumns(t *testing.T) {
	table, err := NewCSVParser().Parse([]byte("PuzzleNum,Answer,Date\n412,CRANE,2022-08-05\n"))
	require.NoError(t, err)

	require.Equal(t, []string{"PuzzleNum", "Answer", "Date"}, table.Header)
	require.Equal(t, 412, table.Rows[0].PuzzleNumber)
	require.Equal(t, map[string]string{"Date": "2022-08-05"}, table.Rows[0].Extra)
}

func TestXLSXParser_Parse(t *testing.T) {
	parser := NewXLSXParser()
	tests := []struct {
		name       string
		rows       [][]string
		wantErr    bool
		wantRows   int
		wantPuzzle int
	}{
		{
			name: "normal sheet",
			rows: [][]string{
				{"PuzzleNum", "Answer"},
				{"412", "crane"},
				{"413", "slate"},
			},
			wantRows:   2,
			wantPuzzle: 412,
		},
		{
			name: "float puzzle numbers",
			rows: [][]string{
				{"Answer", "PuzzleNum"},
				{"crane", "412.0"},
			},
			wantRows:   1,
			wantPuzzle: 412,
		},
		{
			name: "leading blank rows",
			rows: [][]string{
				{"", ""},
				{"PuzzleNum", "Answer"},
				{"9", "other"},
			},
			wantRows:   1,
			wantPuzzle: 9,
		},
		{
			name:    "empty sheet",
			rows:    [][]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parser.Parse(buildXLSX(t, tt.rows))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, table.Rows, tt.wantRows)
			require.Equal(t, tt.wantPuzzle, table.Rows[0].PuzzleNumber)
		})
	}
}

func TestXLSXParser_RejectsCSVBytes(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("PuzzleNum,Answer\n1,cigar\n"))
	require.Error(t, err)
}

func Test_parsePuzzleCell(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "412", want: 412, wantOK: true},
		{in: " 7 ", want: 7, wantOK: true},
		{in: "1,234", want: 1234, wantOK: true},
		{in: "12.0", want: 12, wantOK: true},
		{in: "12.5"},
		{in: "-1"},
		{in: ""},
		{in: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parsePuzzleCell(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		require.NoError(t, f.SetSheetRow(sheet, axis, &cells))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}
