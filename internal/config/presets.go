package config

// Presets are named initial calibration vectors.
var Presets = map[string][]float64{
	"craft": {0.04, 0.04, 0.05, 0.06, 0.07, 0.06, 0.05, 0.06},
	"flat":  {0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05},
	"unity": {1, 1, 1, 1, 1, 1, 1, 1},
}

func GetPreset(name string) []float64 {
	cal, ok := Presets[name]
	if !ok {
		return nil
	}
	out := make([]float64, len(cal))
	copy(out, cal)
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
