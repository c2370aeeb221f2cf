package grid

// Pair names the two normalized channels multiplied into one grid value.
type Pair struct {
	RowSource int
	ColSource int
}

// Combinations maps each linear grid index to its channel pair. Row sources
// run 7..4 and column sources 3..0, so index 0 is channel 7 x channel 3 and
// index 15 is channel 4 x channel 0.
var Combinations = [NumCells]Pair{
	{7, 3}, {7, 2}, {7, 1}, {7, 0},
	{6, 3}, {6, 2}, {6, 1}, {6, 0},
	{5, 3}, {5, 2}, {5, 1}, {5, 0},
	{4, 3}, {4, 2}, {4, 1}, {4, 0},
}

// Compose builds the 16 pairwise products.
func Compose(n NormalizedVector) GridValues {
	var g GridValues
	for i, p := range Combinations {
		g[i] = n[p.RowSource] * n[p.ColSource]
	}
	return g
}

// Scaled returns the display value of c. The skipped cell reports false.
func (g GridValues) Scaled(c Cell) (float64, bool) {
	if c.Skipped() || !c.Valid() {
		return 0, false
	}
	return g[c.Index()] * CellScale, true
}

// Layout lists the rendered cells in row-major order.
func Layout() []Cell {
	cells := make([]Cell, 0, NumCells-1)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := Cell{Row: row, Col: col}
			if c.Skipped() {
				continue
			}
			cells = append(cells, c)
		}
	}
	return cells
}
