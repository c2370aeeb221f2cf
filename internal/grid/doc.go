// Package grid implements the per-frame touch grid pipeline.
//
// A frame flows through three pure stages:
//
//   - [Normalize]: divides 8 raw readings by their calibration factors
//   - [Compose]: multiplies row-source channels (4..7) with column-source
//     channels (0..3) following the [Combinations] table
//   - [MapColor]: converts a scaled cell value into an RGB fill
//
// [Process] runs all three and lays the result out on a 4x4 grid,
// leaving [SkippedCell] empty.
//
// # Example
//
//	frame, err := grid.Process(raw, cal, 5)
//	if errors.Is(err, grid.ErrInsufficientData) {
//		return // keep the previous frame on screen
//	}
//	for _, c := range frame.Cells {
//		draw(c.Cell, c.Color, c.Label)
//	}
//
// # Calibration
//
// Calibration factors are used as divisors without validation. A zero or
// negative factor produces +Inf, -Inf or NaN which flows through to the
// labels and colors unchanged.
package grid
