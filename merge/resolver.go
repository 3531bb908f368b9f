// Package merge resolves merged-cell ranges into per-cell effective values
// under a configurable strategy, and measures how much of a sheet the
// merges cover.
package merge

import (
	"fmt"

	"github.com/javajack/gridnorm/cellval"
)

// Strategy controls how covered cells receive values. It is a closed set:
// anything outside it is rejected at construction.
type Strategy int

const (
	// ExpandValue propagates the anchor value to every covered cell.
	ExpandValue Strategy = iota
	// AnchorOnly keeps the value at the top-left cell; other covered
	// cells become empty.
	AnchorOnly
	// Blank clears every covered cell; the anchor value is preserved
	// separately on the Resolution.
	Blank
)

// String returns a human-readable name for the Strategy.
func (s Strategy) String() string {
	switch s {
	case ExpandValue:
		return "ExpandValue"
	case AnchorOnly:
		return "AnchorOnly"
	case Blank:
		return "Blank"
	default:
		return "Invalid"
	}
}

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "expand", "expand_value", "ExpandValue":
		return ExpandValue, nil
	case "anchor", "anchor_only", "AnchorOnly":
		return AnchorOnly, nil
	case "blank", "Blank":
		return Blank, nil
	default:
		return 0, fmt.Errorf("unknown merge strategy %q", s)
	}
}

// DefaultCoverageWarnThreshold is the merge coverage ratio above which a
// sheet is flagged.
const DefaultCoverageWarnThreshold = 0.30

// Range is one merged region, 0-based and inclusive on all sides.
type Range struct {
	TopRow    int
	BottomRow int
	LeftCol   int
	RightCol  int
}

// Contains reports whether the cell at (row, col) falls inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.TopRow && row <= r.BottomRow && col >= r.LeftCol && col <= r.RightCol
}

// IsAnchor reports whether (row, col) is the range's top-left cell.
func (r Range) IsAnchor(row, col int) bool {
	return row == r.TopRow && col == r.LeftCol
}

// CellCount returns the number of cells the range covers.
func (r Range) CellCount() int {
	return (r.BottomRow - r.TopRow + 1) * (r.RightCol - r.LeftCol + 1)
}

// Anchor returns the top-left cell of the range.
func (r Range) Anchor() cellval.CellRef {
	return cellval.NewCellRef("", r.TopRow, r.LeftCol)
}

// String formats the range as "A1:C3".
func (r Range) String() string {
	return r.Anchor().CellName() + ":" + cellval.NewCellRef("", r.BottomRow, r.RightCol).CellName()
}

// Resolution is the outcome of resolving a sheet's merge list: the
// effective grid overlay, the coverage ratio, the preserved anchor values,
// and whether coverage crossed the warning threshold.
type Resolution struct {
	Effective [][]cellval.Value
	Coverage  float64
	Anchors   map[cellval.CellRef]cellval.Value
	Excessive bool
}

// Resolver applies one strategy and one coverage threshold to sheets.
type Resolver struct {
	strategy  Strategy
	threshold float64
}

// NewResolver creates a Resolver. The threshold must lie in [0,1]; a
// strategy outside the closed set is a construction error.
func NewResolver(strategy Strategy, threshold float64) (*Resolver, error) {
	if strategy < ExpandValue || strategy > Blank {
		return nil, fmt.Errorf("invalid merge strategy %d", strategy)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("coverage threshold %v outside [0,1]", threshold)
	}
	return &Resolver{strategy: strategy, threshold: threshold}, nil
}

// Strategy returns the resolver's strategy.
func (r *Resolver) Strategy() Strategy { return r.strategy }

// Resolve produces the effective value for every cell of the grid. Cells
// outside any merge range keep their raw value. Ranges reaching outside
// the grid are clamped; coverage counts only in-grid cells.
func (r *Resolver) Resolve(grid [][]cellval.Value, ranges []Range) *Resolution {
	res := &Resolution{
		Effective: make([][]cellval.Value, len(grid)),
		Anchors:   make(map[cellval.CellRef]cellval.Value, len(ranges)),
	}

	total := 0
	for i, row := range grid {
		res.Effective[i] = make([]cellval.Value, len(row))
		copy(res.Effective[i], row)
		total += len(row)
	}

	covered := 0
	for _, rg := range ranges {
		anchorVal := cellAt(grid, rg.TopRow, rg.LeftCol)
		res.Anchors[rg.Anchor()] = anchorVal

		for row := rg.TopRow; row <= rg.BottomRow; row++ {
			if row < 0 || row >= len(res.Effective) {
				continue
			}
			for col := rg.LeftCol; col <= rg.RightCol; col++ {
				if col < 0 || col >= len(res.Effective[row]) {
					continue
				}
				covered++
				switch r.strategy {
				case ExpandValue:
					res.Effective[row][col] = anchorVal
				case AnchorOnly:
					if !rg.IsAnchor(row, col) {
						res.Effective[row][col] = cellval.Empty()
					}
				case Blank:
					res.Effective[row][col] = cellval.Empty()
				}
			}
		}
	}

	if total > 0 {
		res.Coverage = float64(covered) / float64(total)
	}
	res.Excessive = res.Coverage > r.threshold
	return res
}

func cellAt(grid [][]cellval.Value, row, col int) cellval.Value {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return cellval.Empty()
	}
	return grid[row][col]
}
