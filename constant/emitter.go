package constant

import "time"

// Emitter tuning
const (
	// BatchSize is the number of particles spawned per accepted trigger
	BatchSize = 120

	// MaxParticles caps the live population; the oldest particles are
	// evicted when a burst would exceed it
	MaxParticles = 700

	// TriggerCooldown is the minimum interval between accepted triggers.
	// Triggers inside the window are dropped, not queued
	TriggerCooldown = 400 * time.Millisecond

	// AngleJitter is the max angular deviation from the even slot angle (radians)
	AngleJitter = 0.25

	// SpeedMin/SpeedMax bound the initial burst speed (px/frame)
	SpeedMin = 3.0
	SpeedMax = 9.0

	// RotationSpeedMax bounds per-frame spin, drawn from [-max, max] (radians/frame)
	RotationSpeedMax = 0.12
)

// Kind distribution
const (
	// EmojiChance is the probability of the emoji kind (unweighted coin flip)
	EmojiChance = 0.5

	// WideRectChance is the probability of the wide sub-shape within the
	// shape kind (biased coin flip)
	WideRectChance = 0.7
)

// Size ranges (px)
const (
	RectWidthMin  = 10.0
	RectWidthMax  = 20.0
	RectHeightMin = 5.0
	RectHeightMax = 10.0

	SquareSideMin = 6.0
	SquareSideMax = 12.0

	EmojiSizeMin = 16.0
	EmojiSizeMax = 28.0
)

// Lifespan ranges (frames); shapes outlive emoji
const (
	ShapeLifespanMin = 90
	ShapeLifespanMax = 150

	EmojiLifespanMin = 60
	EmojiLifespanMax = 100
)
