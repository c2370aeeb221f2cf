package control

import "math"

const (
	DefaultMin     = 1.0
	DefaultMax     = 15.0
	DefaultStep    = 0.5
	DefaultInitial = 5.0
)

// Range describes the slider bounds.
type Range struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
	Default float64 `yaml:"default"`
}

func DefaultRange() Range {
	return Range{Min: DefaultMin, Max: DefaultMax, Step: DefaultStep, Default: DefaultInitial}
}

// Amplification holds the current slider value. It is owned by the UI layer;
// the pipeline only reads Value.
type Amplification struct {
	rng   Range
	value float64
}

func NewAmplification(r Range) *Amplification {
	a := &Amplification{rng: r}
	a.Set(r.Default)
	return a
}

func (a *Amplification) Value() float64 { return a.value }
func (a *Amplification) Range() Range   { return a.rng }

// Set snaps v to the nearest step counted from Min and clamps it to the range.
// NaN is ignored.
func (a *Amplification) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	if a.rng.Step > 0 {
		v = a.rng.Min + math.Round((v-a.rng.Min)/a.rng.Step)*a.rng.Step
	}
	a.value = math.Max(a.rng.Min, math.Min(a.rng.Max, v))
}

func (a *Amplification) Increase() { a.Set(a.value + a.rng.Step) }
func (a *Amplification) Decrease() { a.Set(a.value - a.rng.Step) }
func (a *Amplification) Reset()    { a.Set(a.rng.Default) }

// Fraction is the slider position in [0, 1].
func (a *Amplification) Fraction() float64 {
	span := a.rng.Max - a.rng.Min
	if span <= 0 {
		return 0
	}
	return (a.value - a.rng.Min) / span
}
