package source

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/touchgrid/internal/grid"
)

const (
	channels  = grid.NumChannels
	idleNoise = 0.002
)

// Synthetic emulates a touch sensor: low noise on every channel plus touches
// that press one row channel and one column channel at a time, or follow a
// Script when one is set.
type Synthetic struct {
	period  time.Duration
	rng     *rand.Rand
	tracker *Tracker
	script  *Script

	current   Touch
	remaining int
	step      int
}

func NewSynthetic(period time.Duration, seed int64, tracker *Tracker, script *Script) *Synthetic {
	return &Synthetic{
		period:  period,
		rng:     rand.New(rand.NewSource(seed)),
		tracker: tracker,
		script:  script,
	}
}

func (s *Synthetic) Read(ctx context.Context) (Buffers, error) {
	if err := sleep(ctx, s.period); err != nil {
		return Buffers{}, err
	}
	raw := s.sample()
	s.tracker.Push(raw)
	return Buffers{Raw: raw, Calibration: s.tracker.Calibration()}, nil
}

func (s *Synthetic) Close() error { return nil }

func (s *Synthetic) sample() []float64 {
	if s.remaining <= 0 {
		s.current, s.remaining = s.nextTouch()
	}
	s.remaining--

	raw := make([]float64, channels)
	for i := range raw {
		raw[i] = math.Abs(s.rng.NormFloat64()) * idleNoise
	}
	for _, ch := range s.current.Channels {
		raw[ch] += s.current.Pressure * (0.9 + 0.2*s.rng.Float64())
	}
	return raw
}

func (s *Synthetic) nextTouch() (Touch, int) {
	if s.script != nil {
		t := s.script.Touches[s.step%len(s.script.Touches)]
		s.step++
		return t, s.frames(t.Hold)
	}
	frames := 5 + s.rng.Intn(20)
	if s.rng.Float64() < 0.3 {
		return Touch{}, frames
	}
	return Touch{
		Channels: []int{4 + s.rng.Intn(4), s.rng.Intn(4)},
		Pressure: 0.02 + 0.06*s.rng.Float64(),
	}, frames
}

func (s *Synthetic) frames(hold time.Duration) int {
	if s.period <= 0 {
		return 1
	}
	n := int(hold / s.period)
	if n < 1 {
		n = 1
	}
	return n
}
