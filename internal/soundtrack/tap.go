package soundtrack

import (
	"sync"

	"github.com/faiface/beep"
)

// positionTap wraps a looping streamer and counts the samples handed to the
// speaker, so the current position inside the track can be reported.
type positionTap struct {
	Source beep.Streamer
	length int
	played int
	mu     sync.RWMutex
}

func newPositionTap(src beep.Streamer, length int) *positionTap {
	return &positionTap{Source: src, length: length}
}

func (t *positionTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		t.played += n
		if t.length > 0 {
			t.played %= t.length
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *positionTap) Err() error { return t.Source.Err() }

// offset returns the sample offset into the current loop.
func (t *positionTap) offset() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.played
}
