package source

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrScript = errors.New("source: invalid touch script")

// Script is a looping sequence of scripted touches for the synthetic source.
type Script struct {
	Name    string  `yaml:"name"`
	Touches []Touch `yaml:"touches"`
}

// Touch presses Channels with Pressure for Hold. An empty channel list is a
// release.
type Touch struct {
	Channels []int         `yaml:"channels"`
	Pressure float64       `yaml:"pressure"`
	Hold     time.Duration `yaml:"hold"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if len(s.Touches) == 0 {
		return fmt.Errorf("%w: no touches", ErrScript)
	}
	for i, t := range s.Touches {
		if t.Hold <= 0 {
			return fmt.Errorf("%w: touch %d: hold must be positive", ErrScript, i+1)
		}
		for _, ch := range t.Channels {
			if ch < 0 || ch >= channels {
				return fmt.Errorf("%w: touch %d: channel %d out of range", ErrScript, i+1, ch)
			}
		}
	}
	return nil
}
