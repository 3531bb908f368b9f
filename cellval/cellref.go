package cellval

import (
	"fmt"
	"strings"
)

// CellRef identifies a single cell within a sheet.
type CellRef struct {
	Sheet string // sheet name (empty = current sheet)
	Row   int    // 0-based row index
	Col   int    // 0-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5", or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}

	cellPart = strings.ReplaceAll(cellPart, "$", "")
	if cellPart == "" {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	i := 0
	for i < len(cellPart) && isAlpha(cellPart[i]) {
		i++
	}
	if i == 0 || i == len(cellPart) {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, err := ColIndex(cellPart[:i])
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	rowNum := 0
	for _, ch := range cellPart[i:] {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("invalid row in cell reference: %q", s)
		}
		rowNum = rowNum*10 + int(ch-'0')
	}
	if rowNum < 1 {
		return CellRef{}, fmt.Errorf("invalid row number in cell reference: %q", s)
	}

	return CellRef{Sheet: sheet, Row: rowNum - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the CellRef as "Sheet1!A1", or "A1" if no sheet is set.
func (c CellRef) String() string {
	name := c.CellName()
	if c.Sheet != "" {
		return c.Sheet + "!" + name
	}
	return name
}

// CellName returns just the cell part like "A1" without the sheet name.
func (c CellRef) CellName() string {
	return ColName(c.Col) + fmt.Sprintf("%d", c.Row+1)
}

// ColName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA"
func ColName(col int) string {
	result := ""
	col++ // 1-based for the algorithm
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// ColIndex converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func ColIndex(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// ParseRangeRef parses a range reference like "A1:C5" or "Sheet1!A1:C5"
// into its two corner cells. The second corner inherits the sheet of the
// first when it names none.
func ParseRangeRef(s string) (first, last CellRef, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return CellRef{}, CellRef{}, fmt.Errorf("invalid range reference (missing ':'): %q", s)
	}
	first, err = ParseCellRef(parts[0])
	if err != nil {
		return CellRef{}, CellRef{}, fmt.Errorf("invalid range reference %q: %w", s, err)
	}
	last, err = ParseCellRef(parts[1])
	if err != nil {
		return CellRef{}, CellRef{}, fmt.Errorf("invalid range reference %q: %w", s, err)
	}
	if last.Sheet == "" && first.Sheet != "" {
		last.Sheet = first.Sheet
	}
	return first, last, nil
}
