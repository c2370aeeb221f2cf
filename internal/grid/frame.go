package grid

// Process runs one frame through the pipeline. On ErrInsufficientData the
// returned frame is nil and nothing should be drawn.
func Process(raw SensorFrame, cal CalibrationVector, amp float64) (*Frame, error) {
	n, err := Normalize(raw, cal)
	if err != nil {
		return nil, err
	}
	values := Compose(n)

	f := &Frame{
		Normalized:    n,
		Values:        values,
		Amplification: amp,
		Cells:         make([]CellOutput, 0, NumCells-1),
	}
	for _, c := range Layout() {
		v, _ := values.Scaled(c)
		f.Cells = append(f.Cells, CellOutput{
			Cell:  c,
			Value: v,
			Color: MapColor(v, amp),
			Label: FormatValue(v),
		})
	}
	return f, nil
}
