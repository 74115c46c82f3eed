package constant

// Per-frame physics constants. One frame is one time unit; the scheduler
// interval controls cadence only, never step size.
const (
	// Gravity is added to vy each frame, before drag
	Gravity = 0.2

	// AirResistance multiplies both velocity components each frame, after
	// gravity. The gravity-then-drag order shapes the trajectory; do not swap
	AirResistance = 0.98
)
