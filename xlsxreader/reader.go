// Package xlsxreader adapts xlsx workbooks to the gridnorm raw-sheet
// boundary: a raw cell grid with display formats and type tags, plus the
// sheet's merge-range list. It is a thin reader adapter, not a general
// spreadsheet library.
package xlsxreader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/javajack/gridnorm"
	"github.com/javajack/gridnorm/cellval"
	"github.com/javajack/gridnorm/merge"
)

// builtinFormats maps the common builtin number-format IDs to their
// format strings, for cells styled without a custom format.
var builtinFormats = map[int]string{
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	14: "m/d/yyyy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	22: "m/d/yyyy h:mm",
}

// Load opens an xlsx file and converts every sheet into a RawSheet.
// hasHeaderRow marks the first row of each sheet as column headers.
func Load(path string, hasHeaderRow bool) ([]*gridnorm.RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()
	return fromFile(f, hasHeaderRow)
}

// LoadReader converts a workbook from an io.Reader.
func LoadReader(r io.Reader, hasHeaderRow bool) ([]*gridnorm.RawSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook reader: %w", err)
	}
	defer f.Close()
	return fromFile(f, hasHeaderRow)
}

func fromFile(f *excelize.File, hasHeaderRow bool) ([]*gridnorm.RawSheet, error) {
	var sheets []*gridnorm.RawSheet
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name, hasHeaderRow)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// readSheet converts one worksheet. excelize resolves shared strings while
// reading, so the raw sheet carries no shared-string table and no
// shared-string tags.
func readSheet(f *excelize.File, name string, hasHeaderRow bool) (*gridnorm.RawSheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	cells := make([][]cellval.RawCell, len(rows))
	for i, row := range rows {
		cells[i] = make([]cellval.RawCell, len(row))
		for j, text := range row {
			axis := cellval.NewCellRef("", i, j).CellName()
			cells[i][j] = cellval.RawCell{
				Text:        text,
				Tag:         cellTag(f, name, axis),
				SharedIndex: -1,
				Format:      cellFormat(f, name, axis),
			}
		}
	}

	merges, err := mergeRanges(f, name)
	if err != nil {
		return nil, err
	}

	return &gridnorm.RawSheet{
		Name:         name,
		Cells:        cells,
		Merges:       merges,
		HasHeaderRow: hasHeaderRow,
	}, nil
}

// cellTag maps the worksheet cell type to a reader type tag.
func cellTag(f *excelize.File, sheet, axis string) cellval.TypeTag {
	ct, err := f.GetCellType(sheet, axis)
	if err != nil {
		return cellval.TagNone
	}
	switch ct {
	case excelize.CellTypeBool:
		return cellval.TagBoolean
	case excelize.CellTypeDate:
		return cellval.TagDate
	case excelize.CellTypeError:
		return cellval.TagError
	case excelize.CellTypeInlineString:
		return cellval.TagInlineString
	case excelize.CellTypeSharedString:
		return cellval.TagString
	case excelize.CellTypeNumber:
		return cellval.TagNumber
	default:
		return cellval.TagNone
	}
}

// cellFormat returns the cell's display format string: the custom format
// when one is set, otherwise the builtin format for its numeric format ID.
func cellFormat(f *excelize.File, sheet, axis string) string {
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil || styleID == 0 {
		return ""
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return ""
	}
	if style.CustomNumFmt != nil && *style.CustomNumFmt != "" {
		return *style.CustomNumFmt
	}
	return builtinFormats[style.NumFmt]
}

// mergeRanges converts the sheet's merged-cell list.
func mergeRanges(f *excelize.File, sheet string) ([]merge.Range, error) {
	mcs, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("get merge cells: %w", err)
	}

	ranges := make([]merge.Range, 0, len(mcs))
	for _, mc := range mcs {
		first, err := cellval.ParseCellRef(mc.GetStartAxis())
		if err != nil {
			return nil, fmt.Errorf("merge range start: %w", err)
		}
		last, err := cellval.ParseCellRef(mc.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("merge range end: %w", err)
		}
		ranges = append(ranges, merge.Range{
			TopRow:    first.Row,
			BottomRow: last.Row,
			LeftCol:   first.Col,
			RightCol:  last.Col,
		})
	}
	return ranges, nil
}
