package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as raw bits in an atomic uint64.
// The zero value reads as 0.0 and needs no initialization. Writers are
// the hot-path owners (scheduler frame time, emitter burst average);
// readers are stat dumps and the HUD
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set overwrites the gauge
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get reads the gauge
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add shifts the gauge by delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(newVal)) {
			return newVal
		}
	}
}
