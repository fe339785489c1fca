package particles

import (
	"time"

	"golang.org/x/exp/rand"
)

// Source supplies uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a time-seeded generator.
func NewSource() Source {
	return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
}

// between maps a uniform draw onto [lo, hi).
func between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
