package layout

import (
	"fmt"

	"docrender/document"
)

// Default slide geometry, fractions of slide size.
const (
	DefaultMargin = 0.05
	DefaultGap    = 0.02
)

// Box is a cell position relative to slide size.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// PickGrid selects slide grid for n items.
func PickGrid(n int) document.GridSize {
	switch {
	case n <= 1:
		return document.GridSize{Rows: 1, Cols: 1}
	case n == 2:
		return document.GridSize{Rows: 1, Cols: 2}
	case n <= 4:
		return document.GridSize{Rows: 2, Cols: 2}
	case n <= 6:
		return document.GridSize{Rows: 2, Cols: 3}
	default:
		return document.GridSize{Rows: 3, Cols: 3}
	}
}

// Boxes splits slide into rows x cols cells, row by row, leaving margin
// around and gap between cells.
func Boxes(grid document.GridSize, margin, gap float64) ([]Box, error) {
	if grid.Rows < 1 || grid.Cols < 1 {
		return nil, fmt.Errorf("grid %dx%d must have at least one row and column", grid.Rows, grid.Cols)
	}
	if margin < 0 || gap < 0 {
		return nil, fmt.Errorf("margin (%g) and gap (%g) must not be negative", margin, gap)
	}

	cellW := (1 - margin*2 - gap*float64(grid.Cols-1)) / float64(grid.Cols)
	cellH := (1 - margin*2 - gap*float64(grid.Rows-1)) / float64(grid.Rows)
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("grid %dx%d does not fit with margin %g and gap %g", grid.Rows, grid.Cols, margin, gap)
	}

	boxes := make([]Box, 0, grid.Rows*grid.Cols)
	for r := range grid.Rows {
		for c := range grid.Cols {
			boxes = append(boxes, Box{
				X: margin + float64(c)*(cellW+gap),
				Y: margin + float64(r)*(cellH+gap),
				W: cellW,
				H: cellH,
			})
		}
	}
	return boxes, nil
}
