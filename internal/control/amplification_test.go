package control

import "testing"

func TestAmplificationDefaults(t *testing.T) {
	a := NewAmplification(DefaultRange())
	if a.Value() != 5 {
		t.Errorf("expected default 5, got %f", a.Value())
	}
	if a.Fraction() != 4.0/14.0 {
		t.Errorf("expected fraction %f, got %f", 4.0/14.0, a.Fraction())
	}
}

func TestAmplificationStep(t *testing.T) {
	a := NewAmplification(DefaultRange())

	a.Increase()
	if a.Value() != 5.5 {
		t.Errorf("expected 5.5, got %f", a.Value())
	}
	a.Decrease()
	a.Decrease()
	if a.Value() != 4.5 {
		t.Errorf("expected 4.5, got %f", a.Value())
	}
	a.Reset()
	if a.Value() != 5 {
		t.Errorf("expected reset to 5, got %f", a.Value())
	}
}

func TestAmplificationClamp(t *testing.T) {
	a := NewAmplification(DefaultRange())

	for i := 0; i < 100; i++ {
		a.Increase()
	}
	if a.Value() != 15 {
		t.Errorf("expected max 15, got %f", a.Value())
	}
	if a.Fraction() != 1 {
		t.Errorf("expected fraction 1, got %f", a.Fraction())
	}

	for i := 0; i < 100; i++ {
		a.Decrease()
	}
	if a.Value() != 1 {
		t.Errorf("expected min 1, got %f", a.Value())
	}
}

func TestAmplificationSet(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{7.2, 7.0},
		{7.3, 7.5},
		{0, 1},
		{42, 15},
		{-3, 1},
	}

	for _, tt := range tests {
		a := NewAmplification(DefaultRange())
		a.Set(tt.in)
		if a.Value() != tt.want {
			t.Errorf("set %f: expected %f, got %f", tt.in, tt.want, a.Value())
		}
	}
}
