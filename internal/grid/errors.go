package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData indicates a buffer with fewer than NumChannels entries.
	// The frame must be skipped as a whole.
	ErrInsufficientData = errors.New("grid: insufficient data")
)

const (
	BufferRaw         = "raw"
	BufferCalibration = "calibration"
)

// FrameError wraps an error with the buffer that caused it.
type FrameError struct {
	Buffer  string
	Len     int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%v: %s buffer has %d of %d channels", e.Wrapped, e.Buffer, e.Len, NumChannels)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

func checkLen(buffer string, n int) error {
	if n < NumChannels {
		return &FrameError{Buffer: buffer, Len: n, Wrapped: ErrInsufficientData}
	}
	return nil
}
