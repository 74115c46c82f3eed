package constant

import "time"

// Scheduler cadence. Physics is frame-based; these intervals pace the
// wall-clock rate, they never change the per-frame step
const (
	// SimUpdateInterval is the simulation tick interval (~60 fps)
	SimUpdateInterval = 16 * time.Millisecond

	// RenderUpdateInterval paces terminal composition and flushing
	RenderUpdateInterval = 16 * time.Millisecond
)
