package event

import "sync"

// BurstRequestPayload carries the emission origin in surface pixel coordinates
type BurstRequestPayload struct {
	X, Y float64
}

var burstRequestPool = sync.Pool{
	New: func() any {
		return &BurstRequestPayload{}
	},
}

// AcquireBurstRequest returns a pooled payload
func AcquireBurstRequest(x, y float64) *BurstRequestPayload {
	p := burstRequestPool.Get().(*BurstRequestPayload)
	p.X = x
	p.Y = y
	return p
}

// ReleaseBurstRequest returns a payload to the pool.
// The consumer releases after the burst is processed
func ReleaseBurstRequest(p *BurstRequestPayload) {
	if p == nil {
		return
	}
	p.X = 0
	p.Y = 0
	burstRequestPool.Put(p)
}
