package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/san-kum/touchgrid/internal/config"
	"github.com/san-kum/touchgrid/internal/export"
	"github.com/san-kum/touchgrid/internal/grid"
	"github.com/san-kum/touchgrid/internal/gui"
	"github.com/san-kum/touchgrid/internal/source"
	"github.com/san-kum/touchgrid/internal/tui"
	"github.com/san-kum/touchgrid/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const interactive = "interactive"

var (
	configFile string
	preset     string
	verbose    bool
	sourceKind string
	sourcePath string
	follow     bool

	// watch
	frames  int
	noClear bool

	// frame
	calFlag  string
	ampFlag  float64
	jsonOut  bool
	svgPath  string
	forceCfg bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "touchgrid",
		Short: "live 4x4 touch grid for an 8-channel capacitive sensor",
		Annotations: map[string]string{
			interactive: "true",
		},
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE:          runLive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "initial calibration preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", fmt.Sprintf("sensor source (%s)", strings.Join(source.Kinds(), ", ")))
	rootCmd.PersistentFlags().StringVar(&sourcePath, "path", "", "input file for jsonl and csv sources")
	rootCmd.PersistentFlags().BoolVar(&follow, "follow", false, "keep reading the input file as it grows")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal grid",
		Annotations: map[string]string{
			interactive: "true",
		},
		RunE: runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "grid in a desktop window",
		RunE:  runGUI,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "stream frames as plain text",
		RunE:  runWatch,
	}
	watchCmd.Flags().IntVarP(&frames, "frames", "n", 0, "stop after n rendered frames (0 = until interrupted)")
	watchCmd.Flags().BoolVar(&noClear, "no-clear", false, "append frames instead of redrawing the screen")

	frameCmd := &cobra.Command{
		Use:   "frame r0 r1 r2 r3 r4 r5 r6 r7",
		Short: "run one frame through the pipeline and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFrame,
	}
	frameCmd.Flags().StringVar(&calFlag, "cal", "", "comma separated calibration factors (default from config)")
	frameCmd.Flags().Float64Var(&ampFlag, "amp", 0, "amplification (default from config)")
	frameCmd.Flags().BoolVar(&jsonOut, "json", false, "print the frame as json")
	frameCmd.Flags().StringVar(&svgPath, "svg", "", "also write the grid to an svg file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list calibration presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVarP(&forceCfg, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, guiCmd, watchCmd, frameCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves the configuration (flags, --preset included > file > defaults) and
// builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg = config.DefaultConfig()
	if configFile != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if preset != "" {
		cal := config.GetPreset(preset)
		if cal == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(names, ", "))
		}
		cfg.Calibration = cal
	}
	if cmd.Flags().Changed("source") {
		cfg.Source.Kind = sourceKind
	}
	if cmd.Flags().Changed("path") {
		cfg.Source.Path = sourcePath
	}
	if cmd.Flags().Changed("follow") {
		cfg.Source.Follow = follow
	}

	logger, err = newLogger(cfg.Log, cmd.Annotations[interactive] == "true")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	// runs may share one log file
	logger = logger.With(zap.String("session", uuid.NewString()[:8]), zap.String("cmd", cmd.Name()))
	return nil
}

// newLogger writes to stderr, except for full-screen commands which log to
// the configured file or nowhere.
func newLogger(lc config.LogConfig, fullscreen bool) (*zap.Logger, error) {
	if fullscreen && lc.File == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

// startSource opens the configured source and pumps it into a store until
// ctx ends. The returned channel yields the pump's result once.
func startSource(ctx context.Context) (*source.Store, <-chan error, error) {
	src, err := source.Open(source.Options{
		Kind:        cfg.Source.Kind,
		Path:        cfg.Source.Path,
		Period:      cfg.Source.Period,
		Seed:        cfg.Source.Seed,
		Script:      cfg.Source.Script,
		Calibration: cfg.Calibration,
		Window:      cfg.CalibrationWindow,
		Follow:      cfg.Source.Follow,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source: %w", err)
	}
	logger.Info("source opened", zap.String("kind", cfg.Source.Kind), zap.String("path", cfg.Source.Path))

	store := source.NewStore()
	done := make(chan error, 1)
	go func() {
		err := source.Pump(ctx, src, store, logger)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		done <- multierr.Append(err, src.Close())
		logger.Info("source closed", zap.String("kind", cfg.Source.Kind))
	}()
	return store, done, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runLive(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	store, done, err := startSource(ctx)
	if err != nil {
		return err
	}
	m := viz.NewModel(store, viz.Options{
		Amplification: cfg.Amplification,
		FPS:           cfg.Display.FPS,
		Theme:         cfg.Display.Theme,
		Logger:        logger,
	})
	err = viz.Run(ctx, m)
	cancel()
	return multierr.Append(err, <-done)
}

func runGUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	store, done, err := startSource(ctx)
	if err != nil {
		return err
	}
	err = gui.Run(ctx, store, gui.Options{
		Width:         cfg.Display.Width,
		Height:        cfg.Display.Height,
		FPS:           cfg.Display.FPS,
		Amplification: cfg.Amplification,
		Logger:        logger,
	})
	cancel()
	return multierr.Append(err, <-done)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	store, done, err := startSource(ctx)
	if err != nil {
		return err
	}
	r := tui.NewLiveRenderer(cmd.OutOrStdout(), cfg.Display.FPS, !noClear)
	counters, err := tui.Watch(ctx, store, r, tui.WatchOptions{
		Amplification: cfg.Amplification.Default,
		Interval:      cfg.Source.Period,
		Frames:        frames,
		Logger:        logger,
	})
	cancel()
	err = multierr.Append(err, <-done)

	fields := make([]zap.Field, 0, 3)
	for name, v := range counters.Snapshot() {
		fields = append(fields, zap.Float64(name, v))
	}
	logger.Info("watch finished", fields...)
	return err
}

func parseFloats(values []string) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid reading %q: %w", v, err)
		}
		out = append(out, f)
	}
	return out, nil
}

type cellJSON struct {
	Row   int      `json:"row"`
	Col   int      `json:"col"`
	Value *float64 `json:"value,omitempty"`
	Label string   `json:"label"`
	Fill  string   `json:"fill"`
}

type frameJSON struct {
	Amplification float64    `json:"amplification"`
	Normalized    []string   `json:"normalized"`
	Cells         []cellJSON `json:"cells"`
}

func runFrame(cmd *cobra.Command, args []string) error {
	raw, err := parseFloats(args)
	if err != nil {
		return err
	}
	cal := cfg.Calibration
	if calFlag != "" {
		if cal, err = parseFloats(strings.Split(calFlag, ",")); err != nil {
			return err
		}
	}
	amp := cfg.Amplification.Default
	if cmd.Flags().Changed("amp") {
		amp = ampFlag
	}

	f, err := grid.Process(grid.SensorFrame(raw), grid.CalibrationVector(cal), amp)
	if err != nil {
		return err
	}
	if n := f.NonFinite(); n > 0 {
		logger.Warn("frame has non-finite cells", zap.Int("count", n))
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toJSON(f)); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, viz.RenderGrid(f))
		fmt.Fprintln(out, viz.ChannelPlot(f.Normalized))
	}

	if svgPath != "" {
		if err := export.WriteFrameSVG(svgPath, f, cfg.Display.Width, cfg.Display.Height); err != nil {
			return err
		}
		logger.Info("svg written", zap.String("path", svgPath))
	}
	return nil
}

// toJSON keeps non-finite values out of numeric fields, which json cannot encode.
func toJSON(f *grid.Frame) frameJSON {
	fj := frameJSON{
		Amplification: f.Amplification,
		Normalized:    make([]string, len(f.Normalized)),
		Cells:         make([]cellJSON, 0, len(f.Cells)),
	}
	for i, v := range f.Normalized {
		fj.Normalized[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	for _, c := range f.Cells {
		cj := cellJSON{Row: c.Cell.Row, Col: c.Cell.Col, Label: c.Label, Fill: viz.Hex(c.Color)}
		if !math.IsNaN(c.Value) && !math.IsInf(c.Value, 0) {
			v := c.Value
			cj.Value = &v
		}
		fj.Cells = append(fj.Cells, cj)
	}
	return fj
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCALIBRATION")
	for _, name := range names {
		cal := config.GetPreset(name)
		parts := make([]string, len(cal))
		for i, c := range cal {
			parts[i] = strconv.FormatFloat(c, 'f', -1, 64)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(parts, " "))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "touchgrid.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !forceCfg {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
