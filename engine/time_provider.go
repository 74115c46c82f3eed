package engine

import "time"

// TimeProvider abstracts wall-clock access for the trigger cooldown,
// allowing deterministic tests
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
