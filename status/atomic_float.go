package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as its bit pattern
// The zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Store sets the gauge
func (f *AtomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Load reads the gauge
func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth folds sample into an exponential moving average with the given weight
// The first sample on a zero gauge is taken as is
func (f *AtomicFloat) Smooth(sample, weight float64) float64 {
	for {
		old := f.bits.Load()
		next := sample
		if old != 0 {
			prev := math.Float64frombits(old)
			next = prev + weight*(sample-prev)
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
