// Package source delivers sensor buffers to the render loop.
//
// Every [Source] yields [Buffers]: buffer 0 holds the raw channel readings,
// buffer 1 the calibration factors. Sources that only receive raw readings
// derive calibration with a [Tracker], a per-channel rolling maximum seeded
// with the initial calibration.
//
// Render loops never read a source directly. [Pump] copies buffers into a
// [Store] from its own goroutine and the loop loads the latest value once
// per tick:
//
//	store := source.NewStore()
//	go source.Pump(ctx, src, store, log)
//	for range ticker.C {
//		frame, err := store.Frame(amp.Value())
//		...
//	}
package source
