package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/touchgrid/internal/grid"
	"github.com/san-kum/touchgrid/internal/metrics"
	"github.com/san-kum/touchgrid/internal/source"
	"go.uber.org/zap"
)

const (
	cellWidth   = 9
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// shades index by green intensity, darkest first.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// LiveRenderer prints frames as plain text, at most frameRate per second.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	clear     bool
	lastFrame time.Time
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, frameRate int, clear bool) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		clear:     clear,
		now:       time.Now,
	}
}

// OnFrame draws f unless the previous draw was too recent. It reports
// whether anything was written.
func (r *LiveRenderer) OnFrame(f *grid.Frame, counters *metrics.Set) bool {
	if !r.Due() {
		return false
	}
	r.lastFrame = r.now()
	r.render(f, counters)
	return true
}

// Due reports whether the next OnFrame would draw.
func (r *LiveRenderer) Due() bool {
	if r.frameRate <= 0 || r.lastFrame.IsZero() {
		return true
	}
	return r.now().Sub(r.lastFrame) >= time.Second/time.Duration(r.frameRate)
}

func (r *LiveRenderer) render(f *grid.Frame, counters *metrics.Set) {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(fmt.Sprintf("  touchgrid  amp=%.1f\n", f.Amplification))
	rule := "  +" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", grid.Cols) + "\n"
	b.WriteString(rule)

	for row := 0; row < grid.Rows; row++ {
		shade := "  |"
		label := "  |"
		for col := 0; col < grid.Cols; col++ {
			out, ok := f.Cell(grid.Cell{Row: row, Col: col})
			if !ok {
				shade += strings.Repeat(" ", cellWidth) + "|"
				label += strings.Repeat(" ", cellWidth) + "|"
				continue
			}
			shade += strings.Repeat(string(shadeFor(out.Color)), cellWidth) + "|"
			label += center(out.Label, cellWidth) + "|"
		}
		b.WriteString(shade + "\n" + label + "\n")
		b.WriteString(rule)
	}

	if counters != nil {
		b.WriteString(" ")
		for _, m := range counters.Metrics() {
			b.WriteString(fmt.Sprintf(" %s=%g", m.Name(), m.Value()))
		}
		b.WriteString("\n")
	}

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() {
	if r.clear {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.clear {
		fmt.Fprint(r.out, showCursor)
	}
}

func shadeFor(c grid.Color) rune {
	_, g, _ := c.RGB8()
	idx := int(math.Round(float64(g) / float64(grid.GreenHigh) * float64(len(shades)-1)))
	if idx >= len(shades) {
		idx = len(shades) - 1
	}
	return shades[idx]
}

// center pads s to w columns. Longer labels are cut and end in "…" so a
// truncated number is never mistaken for a real one.
func center(s string, w int) string {
	if len(s) > w {
		return s[:w-1] + "…"
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}

// WatchOptions configures Watch.
type WatchOptions struct {
	Amplification float64
	Interval      time.Duration
	// Frames stops the watch after that many rendered frames; 0 runs until ctx ends.
	Frames int
	Logger *zap.Logger
}

// Watch polls store every Interval and prints each frame through r.
// Ticks with insufficient data are skipped and counted.
func Watch(ctx context.Context, store *source.Store, r *LiveRenderer, opts WatchOptions) (*metrics.Set, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	counters := metrics.Default()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	r.Start()
	defer r.Stop()

	rendered := 0
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return counters, nil
			}
			return counters, ctx.Err()
		case <-ticker.C:
		}

		f, err := store.Frame(opts.Amplification)
		if err != nil {
			counters.Observe(metrics.Outcome{Err: err})
			log.Debug("frame skipped", zap.Error(err))
			continue
		}
		// throttled frames never reach the screen and are not counted
		if !r.Due() {
			continue
		}
		counters.Observe(metrics.Outcome{Frame: f})
		r.OnFrame(f, counters)
		rendered++
		if opts.Frames > 0 && rendered >= opts.Frames {
			return counters, nil
		}
	}
}
