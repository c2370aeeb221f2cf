package grid

import (
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	raw := SensorFrame{0.02, 0.04, 0.05, 0.03, 0.07, 0.12, 0.01, 0.09}
	cal := CalibrationVector{0.04, 0.04, 0.05, 0.06, 0.07, 0.06, 0.05, 0.06}

	n, err := Normalize(raw, cal)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	for i := range n {
		expected := raw[i] / cal[i]
		if math.Abs(n[i]-expected) > 1e-12 {
			t.Errorf("channel %d: expected %f, got %f", i, expected, n[i])
		}
	}
}

func TestNormalize_IgnoresExtraChannels(t *testing.T) {
	raw := SensorFrame{1, 1, 1, 1, 1, 1, 1, 1, 99, 99}
	cal := CalibrationVector{1, 1, 1, 1, 1, 1, 1, 1, 0}

	n, err := Normalize(raw, cal)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	for i, v := range n {
		if v != 1 {
			t.Errorf("channel %d: expected 1, got %f", i, v)
		}
	}
}

func TestNormalize_ShortBuffers(t *testing.T) {
	full := []float64{1, 1, 1, 1, 1, 1, 1, 1}

	tests := []struct {
		name   string
		raw    SensorFrame
		cal    CalibrationVector
		buffer string
		length int
	}{
		{"short raw", SensorFrame{1, 2, 3, 4, 5}, full, BufferRaw, 5},
		{"missing raw", nil, full, BufferRaw, 0},
		{"short calibration", full, CalibrationVector{1, 1, 1}, BufferCalibration, 3},
		{"missing calibration", full, nil, BufferCalibration, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw, tt.cal)
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
			var fe *FrameError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FrameError, got %T", err)
			}
			if fe.Buffer != tt.buffer || fe.Len != tt.length {
				t.Errorf("expected %s/%d, got %s/%d", tt.buffer, tt.length, fe.Buffer, fe.Len)
			}
		})
	}
}

func TestNormalize_DegenerateCalibration(t *testing.T) {
	raw := SensorFrame{1, -1, 0, 1, 1, 1, 1, 1}
	cal := CalibrationVector{0, 0, 0, -2, 1, 1, 1, 1}

	n, err := Normalize(raw, cal)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !math.IsInf(n[0], 1) {
		t.Errorf("expected +Inf, got %f", n[0])
	}
	if !math.IsInf(n[1], -1) {
		t.Errorf("expected -Inf, got %f", n[1])
	}
	if !math.IsNaN(n[2]) {
		t.Errorf("expected NaN, got %f", n[2])
	}
	if n[3] != -0.5 {
		t.Errorf("expected -0.5, got %f", n[3])
	}
}
