package grid

import "math"

// PaddingRatio is the share of a cell's side left empty on each edge.
const PaddingRatio = 0.1

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Geometry places the 4x4 grid in a surface of the given size. Cells are
// square with side min(width, height)/4.
type Geometry struct {
	CellSize float64
	Padding  float64
}

func NewGeometry(width, height float64) Geometry {
	size := math.Min(width, height) / Rows
	return Geometry{CellSize: size, Padding: size * PaddingRatio}
}

// Bounds is the full square of the cell, used for the text anchor.
func (g Geometry) Bounds(c Cell) Rect {
	return Rect{
		X: float64(c.Col) * g.CellSize,
		Y: float64(c.Row) * g.CellSize,
		W: g.CellSize,
		H: g.CellSize,
	}
}

// Fill is the padded rectangle painted with the cell color.
func (g Geometry) Fill(c Cell) Rect {
	b := g.Bounds(c)
	return Rect{
		X: b.X + g.Padding,
		Y: b.Y + g.Padding,
		W: g.CellSize - 2*g.Padding,
		H: g.CellSize - 2*g.Padding,
	}
}
