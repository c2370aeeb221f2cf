package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// message is the sensor board's wire format, one object per line.
type message struct {
	Touch       []float64 `json:"touch-sensors"`
	Calibration []float64 `json:"calibration,omitempty"`
}

// JSONLines reads messages from a line-oriented stream. Lines without a
// calibration array get the tracker's rolling maximum.
//
// A blocked read is not interrupted by ctx; cancellation is observed before
// each line.
type JSONLines struct {
	r       *bufio.Reader
	closer  io.Closer
	tracker *Tracker
	line    int

	// partial holds an unterminated line while following a growing file.
	partial []byte
	follow  bool
}

func NewJSONLines(r io.Reader, tracker *Tracker) *JSONLines {
	j := &JSONLines{r: bufio.NewReader(r), tracker: tracker}
	if c, ok := r.(io.Closer); ok {
		j.closer = c
	}
	return j
}

func (j *JSONLines) Read(ctx context.Context) (Buffers, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Buffers{}, err
		}
		chunk, err := j.r.ReadBytes('\n')
		switch {
		case errors.Is(err, io.EOF):
			j.partial = append(j.partial, chunk...)
			if j.follow || len(bytes.TrimSpace(j.partial)) == 0 {
				if !j.follow {
					j.partial = nil
				}
				return Buffers{}, io.EOF
			}
			chunk, j.partial = j.partial, nil
		case err != nil:
			return Buffers{}, err
		case len(j.partial) > 0:
			chunk = append(j.partial, chunk...)
			j.partial = nil
		}

		j.line++
		line := bytes.TrimSpace(chunk)
		if len(line) == 0 {
			continue
		}

		var msg message
		if err := json.Unmarshal(line, &msg); err != nil {
			return Buffers{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, j.line, err)
		}

		j.tracker.Push(msg.Touch)
		cal := msg.Calibration
		if cal == nil {
			cal = j.tracker.Calibration()
		}
		return Buffers{Raw: msg.Touch, Calibration: cal}, nil
	}
}

func (j *JSONLines) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
