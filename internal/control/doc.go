// Package control provides the user-adjustable inputs of the grid view.
//
// [Amplification] models the slider that sets the upper bound of the blue
// intensity ramp:
//
//	amp := control.NewAmplification(control.DefaultRange())
//	amp.Increase()            // 5.0 -> 5.5
//	frame, _ := grid.Process(raw, cal, amp.Value())
//
// Values always sit on the step grid and inside [Min, Max].
package control
