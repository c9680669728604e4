package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelMeter wraps a beep.Streamer and keeps the last N samples in a ring
// buffer so the renderer can pulse with whatever is currently playing.
type levelMeter struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newLevelMeter(src beep.Streamer, ringSize int) *levelMeter {
	return &levelMeter{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (m *levelMeter) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.Source.Stream(samples)
	if n > 0 {
		m.mu.Lock()
		for i := 0; i < n; i++ {
			m.buffer[m.nextIndex] = samples[i]
			m.nextIndex++
			if m.nextIndex >= len(m.buffer) {
				m.nextIndex = 0
			}
		}
		m.filled = min(m.filled+n, len(m.buffer))
		m.mu.Unlock()
	}
	return n, ok
}

func (m *levelMeter) Err() error { return m.Source.Err() }

// level returns a compressed RMS of the buffered samples in [0, 1].
func (m *levelMeter) level() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.filled == 0 {
		return 0
	}
	var sumSquares float64
	for i := 0; i < m.filled; i++ {
		s := m.buffer[i]
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(m.filled))
	return math.Min(1, math.Pow(rms, 0.3))
}

// reset forgets buffered samples, e.g. after a pause or rewind.
func (m *levelMeter) reset() {
	m.mu.Lock()
	m.nextIndex = 0
	m.filled = 0
	m.mu.Unlock()
}
