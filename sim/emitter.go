package sim

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/engine"
	"github.com/lixenwraith/confetti/particle"
	"github.com/lixenwraith/confetti/status"
	"github.com/lixenwraith/confetti/vmath"
)

// Emitter converts trigger gestures into particle batches. It owns the
// cooldown state and id allocation; the live collection stays with the Loop,
// the emitter only appends and evicts
type Emitter struct {
	rng   vmath.Source
	clock engine.TimeProvider

	lastAccepted time.Time
	hasAccepted  bool

	nextID uint64

	statBursts    *atomic.Int64
	statSpawned   *atomic.Int64
	statRejected  *atomic.Int64
	statEvicted   *atomic.Int64
	statMeanSpeed *status.AtomicFloat
}

func NewEmitter(rng vmath.Source, clock engine.TimeProvider, reg *status.Registry) *Emitter {
	return &Emitter{
		rng:           rng,
		clock:         clock,
		statBursts:    reg.Ints.Get("emitter.bursts"),
		statSpawned:   reg.Ints.Get("emitter.spawned"),
		statRejected:  reg.Ints.Get("emitter.rejected"),
		statEvicted:   reg.Ints.Get("emitter.evicted"),
		statMeanSpeed: reg.Floats.Get("emitter.mean_speed"),
	}
}

// Burst spawns one batch at the given origin into the loop's live set.
// Returns the number of particles spawned; 0 means the trigger was dropped
// (cooldown window or non-finite origin). Dropped triggers are not queued
func (e *Emitter) Burst(l *Loop, originX, originY float64) int {
	if !isFinite(originX) || !isFinite(originY) {
		e.statRejected.Add(1)
		return 0
	}

	now := e.clock.Now()
	if e.hasAccepted && now.Sub(e.lastAccepted) < constant.TriggerCooldown {
		e.statRejected.Add(1)
		return 0
	}
	e.hasAccepted = true
	e.lastAccepted = now

	// Never exceed the cap: evict oldest surplus first, truncate the rest
	batch := constant.BatchSize
	if batch > constant.MaxParticles {
		batch = constant.MaxParticles
	}
	if overflow := len(l.particles) + batch - constant.MaxParticles; overflow > 0 {
		l.evictOldest(overflow)
		e.statEvicted.Add(int64(overflow))
	}

	speedSum := 0.0
	for i := 0; i < batch; i++ {
		p := e.spawn(batch, i, originX, originY)
		if l.binder != nil {
			p.Handle = l.binder.Acquire(&p)
		}
		speedSum += math.Hypot(p.VelX, p.VelY)
		l.particles = append(l.particles, p)
	}

	e.statBursts.Add(1)
	e.statSpawned.Add(int64(batch))
	e.statMeanSpeed.Set(speedSum / float64(batch))
	return batch
}

// Reset re-arms the cooldown so the next trigger is accepted immediately
func (e *Emitter) Reset() {
	e.hasAccepted = false
}

// spawn draws one batch member. Emission angles are evenly slotted around
// the full circle with jitter, so the burst is isotropic rather than
// clustered
func (e *Emitter) spawn(batch, slot int, originX, originY float64) particle.Particle {
	angle := 2 * math.Pi * float64(slot) / float64(batch)
	angle += vmath.Range(e.rng, -constant.AngleJitter, constant.AngleJitter)
	speed := vmath.Range(e.rng, constant.SpeedMin, constant.SpeedMax)

	e.nextID++
	p := particle.Particle{
		ID:            e.nextID,
		X:             originX,
		Y:             originY,
		VelX:          math.Cos(angle) * speed,
		VelY:          math.Sin(angle) * speed,
		Rotation:      vmath.Range(e.rng, 0, 2*math.Pi),
		RotationSpeed: vmath.Range(e.rng, -constant.RotationSpeedMax, constant.RotationSpeedMax),
	}

	if e.rng.Float64() < constant.EmojiChance {
		p.Kind = particle.KindEmoji
		p.Glyph = constant.EmojiGlyphs[e.rng.Intn(len(constant.EmojiGlyphs))]
		size := vmath.Range(e.rng, constant.EmojiSizeMin, constant.EmojiSizeMax)
		p.Width = size
		p.Height = size
		p.Lifespan = vmath.RangeInt(e.rng, constant.EmojiLifespanMin, constant.EmojiLifespanMax)
		return p
	}

	p.Kind = particle.KindShape
	p.Color = particle.Color(e.rng.Intn(constant.PaletteSize))
	if e.rng.Float64() < constant.WideRectChance {
		p.Shape = particle.ShapeWideRect
		p.Width = vmath.Range(e.rng, constant.RectWidthMin, constant.RectWidthMax)
		p.Height = vmath.Range(e.rng, constant.RectHeightMin, constant.RectHeightMax)
	} else {
		p.Shape = particle.ShapeSquare
		side := vmath.Range(e.rng, constant.SquareSideMin, constant.SquareSideMax)
		p.Width = side
		p.Height = side
	}
	p.Lifespan = vmath.RangeInt(e.rng, constant.ShapeLifespanMin, constant.ShapeLifespanMax)
	return p
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
