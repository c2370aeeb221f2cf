package metrics

import (
	"errors"

	"github.com/san-kum/touchgrid/internal/grid"
)

// Outcome is the result of running one tick of the pipeline.
type Outcome struct {
	Frame *grid.Frame
	Err   error
}

func (o Outcome) Skipped() bool {
	return errors.Is(o.Err, grid.ErrInsufficientData)
}

type Metric interface {
	Name() string
	Observe(o Outcome)
	Value() float64
	Reset()
}

// Rendered counts frames that produced a grid.
type Rendered struct {
	name  string
	count int
}

func NewRendered() *Rendered {
	return &Rendered{name: "rendered"}
}

func (r *Rendered) Name() string { return r.name }

func (r *Rendered) Observe(o Outcome) {
	if o.Err == nil && o.Frame != nil {
		r.count++
	}
}

func (r *Rendered) Value() float64 { return float64(r.count) }

func (r *Rendered) Reset() { r.count = 0 }

// SkipRate is the fraction of ticks discarded for insufficient data.
type SkipRate struct {
	name    string
	skipped int
	samples int
}

func NewSkipRate() *SkipRate {
	return &SkipRate{name: "skip_rate"}
}

func (s *SkipRate) Name() string { return s.name }

func (s *SkipRate) Observe(o Outcome) {
	if o.Skipped() {
		s.skipped++
	}
	s.samples++
}

func (s *SkipRate) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.skipped) / float64(s.samples)
}

func (s *SkipRate) Skipped() int { return s.skipped }

func (s *SkipRate) Reset() {
	s.skipped = 0
	s.samples = 0
}

// NonFinite reports how many cells of the latest rendered frame hold NaN or
// Inf. Skipped ticks leave the value unchanged.
type NonFinite struct {
	name  string
	cells int
}

func NewNonFinite() *NonFinite {
	return &NonFinite{name: "non_finite"}
}

func (n *NonFinite) Name() string { return n.name }

func (n *NonFinite) Observe(o Outcome) {
	if o.Err != nil || o.Frame == nil {
		return
	}
	n.cells = o.Frame.NonFinite()
}

func (n *NonFinite) Value() float64 { return float64(n.cells) }

func (n *NonFinite) Reset() { n.cells = 0 }

// Set fans an outcome out to every metric it holds.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the counters every sink shows.
func Default() *Set {
	return NewSet(NewRendered(), NewSkipRate(), NewNonFinite())
}

func (s *Set) Observe(o Outcome) {
	for _, m := range s.metrics {
		m.Observe(o)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Metrics() []Metric { return s.metrics }

func (s *Set) Value(name string) (float64, bool) {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m.Value(), true
		}
	}
	return 0, false
}

func (s *Set) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
