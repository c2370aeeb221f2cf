package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Options configure Open.
type Options struct {
	Kind        string
	Path        string
	Period      time.Duration
	Seed        int64
	Script      string
	Calibration []float64
	Window      int
	Stdin       io.Reader

	// Follow keeps file sources open at EOF and waits for appended data.
	Follow bool
}

type factory func(opts Options, tracker *Tracker) (Source, error)

var kinds = map[string]factory{
	"synthetic": func(opts Options, tracker *Tracker) (Source, error) {
		var script *Script
		if opts.Script != "" {
			s, err := LoadScript(opts.Script)
			if err != nil {
				return nil, err
			}
			script = s
		}
		return NewSynthetic(opts.Period, opts.Seed, tracker, script), nil
	},
	"stdin": func(opts Options, tracker *Tracker) (Source, error) {
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		return NewJSONLines(io.NopCloser(r), tracker), nil
	},
	"jsonl": func(opts Options, tracker *Tracker) (Source, error) {
		f, err := os.Open(opts.Path)
		if err != nil {
			return nil, err
		}
		j := NewJSONLines(f, tracker)
		if !opts.Follow {
			return j, nil
		}
		j.follow = true
		return follow(j, opts.Path)
	},
	"csv": func(opts Options, tracker *Tracker) (Source, error) {
		f, err := os.Open(opts.Path)
		if err != nil {
			return nil, err
		}
		c := NewCSVReplay(f, opts.Period, tracker)
		if !opts.Follow {
			return c, nil
		}
		return follow(c, opts.Path)
	},
}

func follow(src Source, path string) (Source, error) {
	f, err := NewFollow(src, path)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return f, nil
}

// Open builds the source named by opts.Kind with a fresh calibration tracker.
func Open(opts Options) (Source, error) {
	fn, ok := kinds[opts.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownKind, opts.Kind, Kinds())
	}
	tracker := NewTracker(channels, opts.Window, opts.Calibration)
	return fn(opts, tracker)
}

func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
