// Package viz renders the live touch grid in the terminal with Bubble Tea.
//
// Each tick the [Model] reads the latest buffers from a [source.Store], runs
// them through [grid.Process] and draws the 15 cells as colored blocks. A tick
// whose buffers are too short leaves the previous grid on screen.
//
// # Key Bindings
//
//	Up/K/+    - Increase amplification by one step
//	Down/J/-  - Decrease amplification by one step
//	R         - Reset amplification
//	Space     - Pause/Resume
//	T         - Cycle color themes
//	?         - Show help overlay
//	Q         - Quit
package viz
