package source

import (
	"sync"

	"github.com/san-kum/touchgrid/internal/grid"
)

// Store holds the most recent delivery. Writers replace it wholesale.
type Store struct {
	mu  sync.Mutex
	buf Buffers
	seq uint64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Update(b Buffers) {
	b = b.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = b
	s.seq++
}

// Load returns a copy of the latest delivery and its sequence number.
// Sequence 0 means nothing has arrived yet.
func (s *Store) Load() (Buffers, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Clone(), s.seq
}

// Frame runs the latest delivery through the grid pipeline.
func (s *Store) Frame(amp float64) (*grid.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return grid.Process(grid.SensorFrame(s.buf.Raw), grid.CalibrationVector(s.buf.Calibration), amp)
}
