package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/touchgrid/internal/grid"
	"github.com/san-kum/touchgrid/internal/metrics"
	"github.com/san-kum/touchgrid/internal/source"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func onesFrame(t *testing.T) *grid.Frame {
	t.Helper()
	ones := grid.SensorFrame{1, 1, 1, 1, 1, 1, 1, 1}
	f, err := grid.Process(ones, grid.CalibrationVector(ones), 5)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLiveRendererOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0, false)

	if !r.OnFrame(onesFrame(t), metrics.Default()) {
		t.Fatal("expected first frame to render")
	}
	out := buf.String()

	if got := strings.Count(out, "5.00"); got != 15 {
		t.Errorf("expected 15 labels, got %d:\n%s", got, out)
	}
	if strings.Contains(out, clearScreen) {
		t.Error("clear disabled but escape written")
	}
	if !strings.Contains(out, "amp=5.0") {
		t.Errorf("expected amplification header:\n%s", out)
	}
	if !strings.Contains(out, "skip_rate=0") {
		t.Errorf("expected counters line:\n%s", out)
	}
}

func TestLiveRendererThrottle(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10, true)
	clock := time.Unix(0, 0)
	r.now = func() time.Time { return clock }

	f := onesFrame(t)
	if !r.OnFrame(f, nil) {
		t.Fatal("first frame throttled")
	}
	clock = clock.Add(50 * time.Millisecond)
	if r.OnFrame(f, nil) {
		t.Error("expected frame inside 100ms to be dropped")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !r.OnFrame(f, nil) {
		t.Error("expected frame after 110ms to render")
	}
	if got := strings.Count(buf.String(), clearScreen); got != 2 {
		t.Errorf("expected 2 clears, got %d", got)
	}
}

func TestShadeFor(t *testing.T) {
	tests := []struct {
		green float64
		want  rune
	}{
		{0, ' '},
		{170, '█'},
		{85, '▒'},
	}
	for _, tt := range tests {
		if got := shadeFor(grid.Color{G: tt.green}); got != tt.want {
			t.Errorf("shadeFor(%f) = %q, want %q", tt.green, got, tt.want)
		}
	}
}

func TestWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := source.NewStore()
	ones := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	store.Update(source.Buffers{Raw: ones, Calibration: ones})

	var buf bytes.Buffer
	counters, err := Watch(context.Background(), store, NewLiveRenderer(&buf, 0, false), WatchOptions{
		Amplification: 5,
		Interval:      time.Millisecond,
		Frames:        3,
		Logger:        zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if v, _ := counters.Value("rendered"); v != 3 {
		t.Errorf("expected 3 rendered frames, got %f", v)
	}
	if got := strings.Count(buf.String(), "touchgrid"); got != 3 {
		t.Errorf("expected 3 frames written, got %d", got)
	}
}

func TestWatchThrottledCountsWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := source.NewStore()
	ones := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	store.Update(source.Buffers{Raw: ones, Calibration: ones})

	var buf bytes.Buffer
	counters, err := Watch(context.Background(), store, NewLiveRenderer(&buf, 10, false), WatchOptions{
		Amplification: 5,
		Interval:      time.Millisecond,
		Frames:        3,
		Logger:        zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	written := strings.Count(buf.String(), "touchgrid")
	if written != 3 {
		t.Errorf("expected 3 frames written, got %d", written)
	}
	if v, _ := counters.Value("rendered"); v != float64(written) {
		t.Errorf("rendered counter %f does not match %d frames written", v, written)
	}
}

func TestCenter(t *testing.T) {
	if got := center("5.00", cellWidth); got != "  5.00   " {
		t.Errorf("center(5.00) = %q", got)
	}
	got := center("1234567.89", cellWidth)
	if !strings.HasSuffix(got, "…") || got == "1234567.8" {
		t.Errorf("expected truncation marker, got %q", got)
	}
	if got != "12345678…" {
		t.Errorf("center(1234567.89) = %q", got)
	}
	if got := center("123456789", cellWidth); got != "123456789" {
		t.Errorf("exact width label changed: %q", got)
	}
}

func TestWatchCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	counters, err := Watch(ctx, source.NewStore(), NewLiveRenderer(&buf, 0, false), WatchOptions{
		Amplification: 5,
		Interval:      time.Millisecond,
	})
	if err == nil {
		t.Error("expected deadline error")
	}
	if v, _ := counters.Value("rendered"); v != 0 {
		t.Errorf("expected nothing rendered from empty store, got %f", v)
	}
	if v, _ := counters.Value("skip_rate"); v != 1 {
		t.Errorf("expected every tick skipped, got %f", v)
	}
}
