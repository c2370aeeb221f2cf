package grid

import (
	"math"
	"strconv"
)

const (
	NumChannels = 8
	Rows        = 4
	Cols        = 4
	NumCells    = Rows * Cols

	// CellScale multiplies every grid value before it is mapped and labelled.
	CellScale = 5.0
)

// SensorFrame is buffer 0 of the upstream source: one raw reading per channel.
type SensorFrame []float64

// CalibrationVector is buffer 1 of the upstream source, index-aligned with SensorFrame.
type CalibrationVector []float64

type NormalizedVector [NumChannels]float64

type GridValues [NumCells]float64

// Cell addresses one position of the 4x4 layout.
type Cell struct {
	Row, Col int
}

// SkippedCell is never computed, drawn or labelled.
var SkippedCell = Cell{Row: 0, Col: 3}

func (c Cell) Index() int {
	return c.Row*Cols + c.Col
}

func (c Cell) Skipped() bool {
	return c == SkippedCell
}

func (c Cell) Valid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Color is an RGB fill with channels in [0, 255]. Channels keep the float
// result of the mapping so non-finite values survive until conversion.
type Color struct {
	R, G, B float64
}

// RGB8 converts the color to bytes. NaN channels become 0.
func (c Color) RGB8() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// CellOutput is what a sink receives for one rendered cell.
type CellOutput struct {
	Cell  Cell
	Value float64
	Color Color
	Label string
}

// Frame is the result of one pass through the pipeline.
type Frame struct {
	Normalized    NormalizedVector
	Values        GridValues
	Amplification float64
	Cells         []CellOutput
}

// Cell returns the output for c, or false for the skipped cell.
func (f *Frame) Cell(c Cell) (CellOutput, bool) {
	for _, out := range f.Cells {
		if out.Cell == c {
			return out, true
		}
	}
	return CellOutput{}, false
}

// NonFinite counts rendered cells whose value is NaN or infinite.
func (f *Frame) NonFinite() int {
	n := 0
	for _, c := range f.Cells {
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			n++
		}
	}
	return n
}

// FormatValue renders a cell value with two decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
