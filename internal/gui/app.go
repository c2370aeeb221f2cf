package gui

import (
	"context"
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/touchgrid/internal/control"
	"github.com/san-kum/touchgrid/internal/grid"
	"github.com/san-kum/touchgrid/internal/metrics"
	"github.com/san-kum/touchgrid/internal/source"
	"go.uber.org/zap"
)

const (
	panelWidth = 260
	fontPath   = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(20, 20, 20, 255)
)

type Options struct {
	Width, Height int
	FPS           int
	Amplification control.Range
	Logger        *zap.Logger
}

type App struct {
	store    *source.Store
	amp      *control.Amplification
	counters *metrics.Set
	log      *zap.Logger

	width, height int32
	geom          grid.Geometry
	slider        rl.Rectangle
	font          rl.Font
	ownsFont      bool

	frame    *grid.Frame
	skipped  bool
	running  bool
	showHelp bool
	quit     bool
}

func initWindow(width, height int32, fps int) {
	rl.InitWindow(width+panelWidth, height, "touchgrid")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to the raylib default.
// owned reports whether the caller must unload the font.
func loadFont() (font rl.Font, owned bool) {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault(), false
	}
	font = rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font, true
}

func NewApp(store *source.Store, opts Options) *App {
	rng := opts.Amplification
	if rng.Step <= 0 {
		rng = control.DefaultRange()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	w, h := int32(opts.Width), int32(opts.Height)
	font, owned := loadFont()
	return &App{
		store:    store,
		amp:      control.NewAmplification(rng),
		counters: metrics.Default(),
		log:      log,
		width:    w,
		height:   h,
		geom:     grid.NewGeometry(float64(w), float64(h)),
		slider:   rl.NewRectangle(float32(w+20), 110, panelWidth-40, 14),
		font:     font,
		ownsFont: owned,
		running:  true,
	}
}

// Run opens the window and blocks until it is closed, Q is pressed or ctx ends.
func Run(ctx context.Context, store *source.Store, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("gui: invalid window size %dx%d", opts.Width, opts.Height)
	}
	initWindow(int32(opts.Width), int32(opts.Height), opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(store, opts)
	defer app.Close()
	app.RunLoop(ctx)
	return nil
}

// Close releases the font loaded from disk. It must run before the window
// closes and is safe to call twice.
func (a *App) Close() {
	if !a.ownsFont {
		return
	}
	rl.UnloadFont(a.font)
	a.ownsFont = false
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && !a.quit && ctx.Err() == nil {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) || rl.IsKeyPressed(rl.KeyEqual) {
		a.amp.Increase()
		a.log.Debug("amplification changed", zap.Float64("value", a.amp.Value()))
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) || rl.IsKeyPressed(rl.KeyMinus) {
		a.amp.Decrease()
		a.log.Debug("amplification changed", zap.Float64("value", a.amp.Value()))
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.amp.Reset()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeySlash) || rl.IsKeyPressed(rl.KeyH) {
		a.showHelp = !a.showHelp
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		if rl.CheckCollisionPointRec(mouse, a.slider) {
			r := a.amp.Range()
			frac := float64((mouse.X - a.slider.X) / a.slider.Width)
			a.amp.Set(r.Min + frac*(r.Max-r.Min))
		}
	}

	if a.running {
		a.step()
	}
}

func (a *App) step() {
	f, err := a.store.Frame(a.amp.Value())
	a.counters.Observe(metrics.Outcome{Frame: f, Err: err})
	a.skipped = err != nil
	if err != nil {
		var fe *grid.FrameError
		if errors.As(err, &fe) {
			a.log.Debug("frame skipped", zap.String("buffer", fe.Buffer), zap.Int("len", fe.Len))
		}
		return
	}
	a.frame = f
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.frame != nil {
		a.drawGrid()
	} else {
		a.drawText("waiting for sensor data", 30, int(a.height/2), 20, ColTextDim)
	}
	a.drawPanel()

	rl.EndDrawing()
}

func (a *App) drawGrid() {
	size := float32(a.geom.CellSize / 6)
	for _, out := range a.frame.Cells {
		r := a.geom.Fill(out.Cell)
		rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), toColor(out.Color))

		cx, cy := r.Center()
		m := rl.MeasureTextEx(a.font, out.Label, size, 1)
		pos := rl.NewVector2(float32(cx)-m.X/2, float32(cy)-m.Y/2)
		rl.DrawTextEx(a.font, out.Label, pos, size, 1, ColSelect)
	}
}

func (a *App) drawPanel() {
	x := int(a.width)
	rl.DrawRectangle(a.width, 0, panelWidth, a.height, ColPanel)

	a.drawText("touchgrid", x+20, 30, 24, ColSelect)
	status, col := "LIVE", ColSelect
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, x+20, 60, 16, col)

	a.drawText(fmt.Sprintf("AMPLIFY %.1f", a.amp.Value()), x+20, 88, 16, ColText)
	rl.DrawRectangleRec(a.slider, ColTextDim)
	filled := a.slider
	filled.Width *= float32(a.amp.Fraction())
	rl.DrawRectangleRec(filled, ColAccent)

	y := 150
	for _, m := range a.counters.Metrics() {
		a.drawText(fmt.Sprintf("%-10s %g", m.Name(), m.Value()), x+20, y, 14, ColText)
		y += 22
	}
	if a.skipped {
		a.drawText("short frame, holding", x+20, y, 14, rl.Orange)
	}

	if a.showHelp {
		help := []string{"UP/K/+  amplify", "DOWN/J/- attenuate", "R  reset", "SPACE pause", "Q  quit"}
		hy := int(a.height) - 40 - 20*len(help)
		for _, line := range help {
			a.drawText(line, x+20, hy, 14, ColAccent)
			hy += 20
		}
	}
	a.drawText(fmt.Sprintf("%d FPS  [?] HELP", int32(rl.GetFPS())), x+20, int(a.height)-30, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func toColor(c grid.Color) rl.Color {
	r, g, b := c.RGB8()
	return rl.NewColor(r, g, b, 255)
}
