package metrics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/touchgrid/internal/grid"
)

func ones() grid.SensorFrame {
	return grid.SensorFrame{1, 1, 1, 1, 1, 1, 1, 1}
}

func process(t *testing.T, raw grid.SensorFrame, cal grid.CalibrationVector) Outcome {
	t.Helper()
	f, err := grid.Process(raw, cal, 5)
	return Outcome{Frame: f, Err: err}
}

func TestSkipRate(t *testing.T) {
	s := NewSkipRate()
	if s.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %f", s.Value())
	}

	s.Observe(process(t, ones(), grid.CalibrationVector(ones())))
	s.Observe(process(t, grid.SensorFrame{1, 2, 3, 4, 5}, grid.CalibrationVector(ones())))
	s.Observe(process(t, ones(), nil))
	s.Observe(process(t, ones(), grid.CalibrationVector(ones())))

	if s.Value() != 0.5 {
		t.Errorf("expected skip rate 0.5, got %f", s.Value())
	}
	if s.Skipped() != 2 {
		t.Errorf("expected 2 skipped, got %d", s.Skipped())
	}

	s.Reset()
	if s.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", s.Value())
	}
}

func TestNonFinite(t *testing.T) {
	n := NewNonFinite()
	cal := grid.CalibrationVector{1, 1, 1, 0, 1, 1, 1, 1}

	n.Observe(process(t, ones(), cal))
	// channel 3 feeds column 0 of every row
	if n.Value() != 4 {
		t.Errorf("expected 4 non-finite cells, got %f", n.Value())
	}

	n.Observe(process(t, grid.SensorFrame{1}, cal))
	if n.Value() != 4 {
		t.Errorf("skipped frame changed value to %f", n.Value())
	}

	n.Observe(process(t, ones(), grid.CalibrationVector(ones())))
	if n.Value() != 0 {
		t.Errorf("expected 0 after clean frame, got %f", n.Value())
	}
	if math.IsNaN(n.Value()) {
		t.Error("value is NaN")
	}
}

func TestSet(t *testing.T) {
	s := Default()
	s.Observe(process(t, ones(), grid.CalibrationVector(ones())))
	s.Observe(process(t, nil, nil))

	want := map[string]float64{
		"rendered":   1,
		"skip_rate":  0.5,
		"non_finite": 0,
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	if _, ok := s.Value("energy"); ok {
		t.Error("expected unknown metric to be absent")
	}

	s.Reset()
	if v, _ := s.Value("rendered"); v != 0 {
		t.Errorf("expected rendered reset, got %f", v)
	}
}
