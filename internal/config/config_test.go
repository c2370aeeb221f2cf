package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Amplification.Default != 5 {
		t.Errorf("expected amplification 5, got %f", cfg.Amplification.Default)
	}
	if cfg.Amplification.Min != 1 || cfg.Amplification.Max != 15 || cfg.Amplification.Step != 0.5 {
		t.Errorf("unexpected amplification range %+v", cfg.Amplification)
	}
	if len(cfg.Calibration) != 8 {
		t.Errorf("expected 8 calibration factors, got %d", len(cfg.Calibration))
	}
	if cfg.CalibrationWindow != 500 {
		t.Errorf("expected window 500, got %d", cfg.CalibrationWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg.Calibration[0] = 9
	if DefaultCalibration[0] != 0.04 {
		t.Error("default config shares calibration slice")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchgrid.yaml")
	data := []byte(`
amplification:
  default: 7.5
source:
  kind: csv
  path: data.csv
  period: 250ms
display:
  theme: retro
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Amplification.Default != 7.5 {
		t.Errorf("expected 7.5, got %f", cfg.Amplification.Default)
	}
	if cfg.Amplification.Max != 15 {
		t.Errorf("expected default max kept, got %f", cfg.Amplification.Max)
	}
	if cfg.Source.Kind != "csv" || cfg.Source.Path != "data.csv" {
		t.Errorf("unexpected source %+v", cfg.Source)
	}
	if cfg.Source.Period != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Source.Period)
	}
	if cfg.Display.FPS != DefaultFPS {
		t.Errorf("expected default fps kept, got %d", cfg.Display.FPS)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"short calibration", "calibration: [1, 2, 3]\n"},
		{"zero step", "amplification: {step: 0}\n"},
		{"default out of range", "amplification: {default: 20}\n"},
		{"zero fps", "display: {fps: 0}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Display.Theme = "sunset"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Display.Theme != "sunset" {
		t.Errorf("expected sunset, got %s", loaded.Display.Theme)
	}
}

func TestGetPreset(t *testing.T) {
	cal := GetPreset("craft")
	if cal == nil {
		t.Fatal("expected preset, got nil")
	}
	if cal[4] != 0.07 {
		t.Errorf("expected 0.07, got %f", cal[4])
	}

	cal[0] = 123
	if Presets["craft"][0] == 123 {
		t.Error("preset returned shared slice")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cal := GetPreset("nonexistent"); cal != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets()) != len(Presets) {
		t.Error("expected every preset listed")
	}
}
