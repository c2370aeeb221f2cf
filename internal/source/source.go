package source

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMalformed marks a single unreadable record. The stream stays usable.
	ErrMalformed = errors.New("source: malformed record")

	ErrUnknownKind = errors.New("source: unknown kind")
)

// Buffers is one upstream delivery.
type Buffers struct {
	Raw         []float64
	Calibration []float64
}

func (b Buffers) Clone() Buffers {
	return Buffers{Raw: cloneFloats(b.Raw), Calibration: cloneFloats(b.Calibration)}
}

type Source interface {
	// Read blocks until the next delivery. io.EOF ends the stream.
	Read(ctx context.Context) (Buffers, error)
	Close() error
}

func cloneFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
