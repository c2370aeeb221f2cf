package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVReplay replays a sensor log: one row per sample, each row starting with
// an empty field followed by the channel readings.
type CSVReplay struct {
	r       *csv.Reader
	closer  io.Closer
	period  time.Duration
	tracker *Tracker
	row     int
}

func NewCSVReplay(r io.Reader, period time.Duration, tracker *Tracker) *CSVReplay {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	c := &CSVReplay{r: cr, period: period, tracker: tracker}
	if closer, ok := r.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

func (c *CSVReplay) Read(ctx context.Context) (Buffers, error) {
	if err := sleep(ctx, c.period); err != nil {
		return Buffers{}, err
	}
	record, err := c.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Buffers{}, io.EOF
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return Buffers{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Buffers{}, err
	}
	c.row++

	// the logger starts every row with an empty field
	if len(record) > 0 && strings.TrimSpace(record[0]) == "" {
		record = record[1:]
	}
	raw := make([]float64, 0, len(record))
	for i, field := range record {
		field = strings.TrimSpace(field)
		if field == "" {
			return Buffers{}, fmt.Errorf("%w: row %d: channel %d is empty", ErrMalformed, c.row, i)
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Buffers{}, fmt.Errorf("%w: row %d: %v", ErrMalformed, c.row, err)
		}
		raw = append(raw, v)
	}

	c.tracker.Push(raw)
	return Buffers{Raw: raw, Calibration: c.tracker.Calibration()}, nil
}

func (c *CSVReplay) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
