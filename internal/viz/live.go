package viz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/touchgrid/internal/control"
	"github.com/san-kum/touchgrid/internal/grid"
	"github.com/san-kum/touchgrid/internal/metrics"
	"github.com/san-kum/touchgrid/internal/source"
	"go.uber.org/zap"
)

const defaultFPS = 30

type TickMsg time.Time

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	Amplification control.Range
	FPS           int
	Theme         string
	Logger        *zap.Logger
}

// Model holds the sink state: the last rendered frame and the UI controls.
// The pipeline itself keeps nothing between ticks.
type Model struct {
	store    *source.Store
	amp      *control.Amplification
	counters *metrics.Set
	log      *zap.Logger

	frame    *grid.Frame
	lastErr  error
	interval time.Duration
	theme    Theme
	running  bool
	help     help.Model
}

func NewModel(store *source.Store, opts Options) Model {
	rng := opts.Amplification
	if rng.Step <= 0 {
		rng = control.DefaultRange()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	theme, ok := LookupTheme(opts.Theme)
	if !ok && opts.Theme != "" {
		log.Warn("unknown theme", zap.String("theme", opts.Theme), zap.Strings("available", ThemeNames()))
	}
	return Model{
		store:    store,
		amp:      control.NewAmplification(rng),
		counters: metrics.Default(),
		log:      log,
		interval: time.Second / time.Duration(fps),
		theme:    theme,
		running:  true,
		help:     help.New(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.running = !m.running
		case key.Matches(msg, keys.Up):
			m.amp.Increase()
			m.log.Debug("amplification changed", zap.Float64("value", m.amp.Value()))
		case key.Matches(msg, keys.Down):
			m.amp.Decrease()
			m.log.Debug("amplification changed", zap.Float64("value", m.amp.Value()))
		case key.Matches(msg, keys.Reset):
			m.amp.Reset()
		case key.Matches(msg, keys.Theme):
			m.theme = NextTheme(m.theme.Name)
			m.log.Debug("theme changed", zap.String("theme", m.theme.Name))
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step renders one frame. A skipped frame keeps the previous one on screen.
func (m *Model) step() {
	f, err := m.store.Frame(m.amp.Value())
	m.counters.Observe(metrics.Outcome{Frame: f, Err: err})
	m.lastErr = err

	if err != nil {
		var fe *grid.FrameError
		if errors.As(err, &fe) {
			m.log.Debug("frame skipped", zap.String("buffer", fe.Buffer), zap.Int("len", fe.Len))
		} else {
			m.log.Warn("frame failed", zap.Error(err))
		}
		return
	}
	if n := f.NonFinite(); n > 0 {
		m.log.Debug("non-finite cells", zap.Int("count", n))
	}
	m.frame = f
}

func (m Model) Frame() *grid.Frame { return m.frame }

func (m Model) Amplification() float64 { return m.amp.Value() }

func (m Model) Counters() *metrics.Set { return m.counters }

func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("TOUCHGRID")

	var gridView string
	if m.frame == nil {
		gridView = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("waiting for sensor data...")
	} else {
		gridView = RenderGrid(m.frame)
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	var s strings.Builder
	status := StatusRunning.Render("LIVE")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	amp := m.amp.Value()
	s.WriteString(MetricLabel.Render("Amplify") + MetricValue.Render(fmt.Sprintf("%.1f", amp)) + "\n")
	s.WriteString(ProgressBar(m.amp.Fraction(), 20) + "\n\n")

	for _, mt := range m.counters.Metrics() {
		s.WriteString(MetricLabel.Render(mt.Name()) + MetricValue.Render(formatMetric(mt)) + "\n")
	}
	if errors.Is(m.lastErr, grid.ErrInsufficientData) {
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Warning).Render("short frame, holding") + "\n")
	}

	if m.frame != nil {
		s.WriteString("\n" + ChannelPlot(m.frame.Normalized) + "\n")
	}

	body := lipgloss.NewStyle().Foreground(m.theme.Text).Render(s.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, panel.Render(gridView), panel.Render(body))
	return title + "\n" + main + "\n" + m.help.View(keys)
}

func formatMetric(m metrics.Metric) string {
	if m.Name() == "skip_rate" {
		return fmt.Sprintf("%.1f%%", m.Value()*100)
	}
	return fmt.Sprintf("%.0f", m.Value())
}

// RenderGrid lays the frame out as four rows of colored cells.
func RenderGrid(f *grid.Frame) string {
	rows := make([]string, grid.Rows)
	for row := 0; row < grid.Rows; row++ {
		cells := make([]string, grid.Cols)
		for col := 0; col < grid.Cols; col++ {
			out, ok := f.Cell(grid.Cell{Row: row, Col: col})
			if !ok {
				cells[col] = blankCell()
				continue
			}
			cells[col] = CellView(out)
		}
		rows[row] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ChannelPlot draws the eight normalized channels. Non-finite readings are
// plotted as zero.
func ChannelPlot(n grid.NormalizedVector) string {
	data := make([]float64, len(n))
	for i, v := range n {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		data[i] = v
	}
	return asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Width(24),
		asciigraph.Precision(2),
		asciigraph.Caption("channels 0-7"))
}

// Run drives the model until the user quits or ctx is canceled.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
