package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/touchgrid/internal/control"
	"github.com/san-kum/touchgrid/internal/grid"
)

const (
	DefaultWindow = 500
	DefaultPeriod = 100 * time.Millisecond
	DefaultFPS    = 30
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultTheme  = "ocean"
	DefaultSource = "synthetic"
	DefaultLevel  = "info"
)

// DefaultCalibration is the per-channel starting point of the rolling maximum.
var DefaultCalibration = []float64{0.04, 0.04, 0.05, 0.06, 0.07, 0.06, 0.05, 0.06}

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Amplification     control.Range `yaml:"amplification"`
	Calibration       []float64     `yaml:"calibration"`
	CalibrationWindow int           `yaml:"calibration_window"`
	Source            SourceConfig  `yaml:"source"`
	Display           DisplayConfig `yaml:"display"`
	Log               LogConfig     `yaml:"log"`
}

type SourceConfig struct {
	Kind   string        `yaml:"kind"`
	Path   string        `yaml:"path"`
	Period time.Duration `yaml:"period"`
	Seed   int64         `yaml:"seed"`
	Script string        `yaml:"script"`
	Follow bool          `yaml:"follow"`
}

type DisplayConfig struct {
	FPS    int    `yaml:"fps"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	cal := make([]float64, len(DefaultCalibration))
	copy(cal, DefaultCalibration)
	return &Config{
		Amplification:     control.DefaultRange(),
		Calibration:       cal,
		CalibrationWindow: DefaultWindow,
		Source: SourceConfig{
			Kind:   DefaultSource,
			Period: DefaultPeriod,
			Seed:   1,
		},
		Display: DisplayConfig{
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Theme:  DefaultTheme,
		},
		Log: LogConfig{Level: DefaultLevel},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the pipeline and sinks rely on. Calibration
// factors themselves are not checked; zero or negative factors are allowed.
func (c *Config) Validate() error {
	a := c.Amplification
	if a.Step <= 0 || a.Min > a.Max {
		return fmt.Errorf("%w: amplification range [%g, %g] step %g", ErrInvalid, a.Min, a.Max, a.Step)
	}
	if a.Default < a.Min || a.Default > a.Max {
		return fmt.Errorf("%w: amplification default %g outside [%g, %g]", ErrInvalid, a.Default, a.Min, a.Max)
	}
	if len(c.Calibration) < grid.NumChannels {
		return fmt.Errorf("%w: calibration has %d of %d channels", ErrInvalid, len(c.Calibration), grid.NumChannels)
	}
	if c.CalibrationWindow <= 0 {
		return fmt.Errorf("%w: calibration_window %d", ErrInvalid, c.CalibrationWindow)
	}
	if c.Source.Period <= 0 {
		return fmt.Errorf("%w: source period %v", ErrInvalid, c.Source.Period)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Display.FPS)
	}
	return nil
}
