package source

// Tracker keeps the maximum of the last window samples of every channel.
type Tracker struct {
	channels []*maxWindow
}

func NewTracker(channels, window int, initial []float64) *Tracker {
	if window < 1 {
		window = 1
	}
	t := &Tracker{channels: make([]*maxWindow, channels)}
	for i := range t.channels {
		t.channels[i] = newMaxWindow(window)
	}
	if len(initial) > 0 {
		t.Push(initial)
	}
	return t
}

// Push adds one sample per channel. Missing channels are left untouched and
// extra values are ignored.
func (t *Tracker) Push(sample []float64) {
	for i, v := range sample {
		if i >= len(t.channels) {
			break
		}
		t.channels[i].push(v)
	}
}

// Calibration returns the current per-channel maxima. Channels that have
// not seen a sample report 0.
func (t *Tracker) Calibration() []float64 {
	out := make([]float64, len(t.channels))
	for i, w := range t.channels {
		out[i] = w.max()
	}
	return out
}

// maxWindow is a ring of the last len(buf) values plus a deque of sample
// numbers whose values decrease from front to back.
type maxWindow struct {
	buf   []float64
	n     int
	deque []int
}

func newMaxWindow(size int) *maxWindow {
	return &maxWindow{buf: make([]float64, size), deque: make([]int, 0, size)}
}

func (w *maxWindow) push(v float64) {
	seq := w.n
	w.n++

	// evict before the ring slot is reused
	if len(w.deque) > 0 && w.deque[0] <= seq-len(w.buf) {
		w.deque = w.deque[1:]
	}
	w.buf[seq%len(w.buf)] = v

	for len(w.deque) > 0 && w.value(w.deque[len(w.deque)-1]) <= v {
		w.deque = w.deque[:len(w.deque)-1]
	}
	w.deque = append(w.deque, seq)
}

func (w *maxWindow) value(seq int) float64 {
	return w.buf[seq%len(w.buf)]
}

func (w *maxWindow) max() float64 {
	if len(w.deque) == 0 {
		return 0
	}
	return w.value(w.deque[0])
}
