package input

import (
	"math"

	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/gesture"
)

// CellCenter converts a terminal cell to logical pixels at its center
// Cells are taller than wide, so angles measured in cells would be skewed
func CellCenter(x, y int) gesture.Point {
	return gesture.Point{
		X: (float64(x) + 0.5) * constants.CellWidthPx,
		Y: (float64(y) + 0.5) * constants.CellHeightPx,
	}
}

// PointCell is the inverse of CellCenter
func PointCell(p gesture.Point) (x, y int) {
	return int(math.Floor(p.X / constants.CellWidthPx)), int(math.Floor(p.Y / constants.CellHeightPx))
}
