package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	enc "github.com/MrJamesThe3rd/tablero/internal/encoding"
)

// Row is one cost line read from a spreadsheet.
type Row struct {
	Name      string
	AmountARS decimal.Decimal
	Type      cost.Type
	Note      string
}

// Parser reads semicolon-separated cost exports. The header row may be preceded by
// title rows; it is found by matching the known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", apperr.ErrValidation, err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, fmt.Errorf("%w: no cost header found: expected %s",
			apperr.ErrValidation, strings.Join(profiles[0].requiredCols(), ";"))
	}

	return parseRows(profile, cols, records[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

func detectProfile(records [][]string) (*Profile, colIndex, int) {
	for rowIdx, record := range records {
		cols := make(colIndex)

		for i, cell := range record {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips blank lines and total rows (no type); any other malformed row is an error.
func parseRows(p *Profile, cols colIndex, records [][]string, headerRowNum int) ([]Row, error) {
	noteIdx, hasNote := cols[p.NoteCol]
	if !hasNote {
		noteIdx = -1
	}

	var rows []Row

	for i, record := range records {
		rowNum := headerRowNum + i + 1

		name := cellValue(record, cols[p.NameCol])
		rawAmount := cellValue(record, cols[p.AmountCol])
		rawType := cellValue(record, cols[p.TypeCol])

		if name == "" && rawAmount == "" {
			continue
		}

		if rawType == "" {
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("%w: row %d: missing name", apperr.ErrValidation, rowNum)
		}

		amount, err := parseARSAmount(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid amount %q", apperr.ErrValidation, rowNum, rawAmount)
		}

		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: row %d: negative amount %q", apperr.ErrValidation, rowNum, rawAmount)
		}

		typ, ok := parseType(rawType)
		if !ok {
			return nil, fmt.Errorf("%w: row %d: unknown type %q", apperr.ErrValidation, rowNum, rawType)
		}

		rows = append(rows, Row{
			Name:      name,
			AmountARS: amount,
			Type:      typ,
			Note:      cellValue(record, noteIdx),
		})
	}

	return rows, nil
}

func parseType(s string) (cost.Type, bool) {
	switch strings.ToLower(s) {
	case "fijo", "fija", "fixed":
		return cost.TypeFixed, true
	case "variable":
		return cost.TypeVariable, true
	}

	return "", false
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
