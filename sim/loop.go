package sim

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/engine"
	"github.com/lixenwraith/confetti/event"
	"github.com/lixenwraith/confetti/particle"
	"github.com/lixenwraith/confetti/status"
)

// ChangeFunc is invoked after a tick whose membership changed (spawn or
// retirement), with the new live count. In-place mutation of surviving
// particles never fires it; this keeps any observer layer out of the hot
// per-frame path
type ChangeFunc func(live int)

// Loop owns the live particle collection and advances it one step per
// frame. All mutation happens inside Tick on the scheduler goroutine;
// producers reach the loop only through the event queue
type Loop struct {
	particles []particle.Particle
	emitter   *Emitter
	queue     *event.Queue
	binder    particle.Binder
	onChange  ChangeFunc

	scheduler *engine.FrameScheduler
	frame     atomic.Uint64

	statActive  *atomic.Int64
	statRetired *atomic.Int64
	statTicks   *atomic.Int64
}

// NewLoop wires the loop to its collaborators. binder and onChange may be
// nil: a nil binder exercises the display-less path (physics only), a nil
// onChange disables membership notifications
func NewLoop(emitter *Emitter, queue *event.Queue, binder particle.Binder, onChange ChangeFunc, reg *status.Registry) *Loop {
	return &Loop{
		particles:   make([]particle.Particle, 0, constant.MaxParticles),
		emitter:     emitter,
		queue:       queue,
		binder:      binder,
		onChange:    onChange,
		statActive:  reg.Ints.Get("sim.active"),
		statRetired: reg.Ints.Get("sim.retired"),
		statTicks:   reg.Ints.Get("sim.ticks"),
	}
}

// Start binds the loop to a frame scheduler at the given interval and
// begins ticking. Idle until called; running until Stop
func (l *Loop) Start(interval time.Duration, reg *status.Registry) {
	if l.scheduler != nil {
		return
	}
	l.scheduler = engine.NewFrameScheduler(interval, l.Tick, reg)
	l.scheduler.Start()
}

// Stop cancels the scheduler synchronously; no tick fires after it returns
func (l *Loop) Stop() {
	if l.scheduler != nil {
		l.scheduler.Stop()
	}
}

// Live returns the current live particle count. Only meaningful from the
// tick goroutine or while the loop is stopped; concurrent observers should
// read the sim.active stat instead
func (l *Loop) Live() int {
	return len(l.particles)
}

// Particles exposes the live set for tests and the bench
func (l *Loop) Particles() []particle.Particle {
	return l.particles
}

// Frame returns the number of completed ticks
func (l *Loop) Frame() uint64 {
	return l.frame.Load()
}

// Tick advances every live particle by one frame, retires expired ones,
// then consumes queued trigger events so a processed burst is observable
// at age 0. Runs even when the live set is empty; the loop never stops
// polling for new emissions
func (l *Loop) Tick() {
	retired := l.step()
	spawned, cleared := l.consumeEvents()

	l.frame.Add(1)
	l.statTicks.Add(1)
	l.statActive.Store(int64(len(l.particles)))

	if (retired > 0 || spawned > 0 || cleared > 0) && l.onChange != nil {
		l.onChange(len(l.particles))
	}
}

// step performs the per-frame sweep in insertion order with write-index
// compaction, preserving FIFO order for the eviction policy
func (l *Loop) step() int {
	write := 0
	retired := 0

	for i := range l.particles {
		p := &l.particles[i]

		// Euler integration, one frame = one time unit
		p.X += p.VelX
		p.Y += p.VelY
		p.Rotation += p.RotationSpeed

		// Gravity before drag; drag applies to the post-gravity velocity
		p.VelY = (p.VelY + constant.Gravity) * constant.AirResistance
		p.VelX = p.VelX * constant.AirResistance

		p.Age++

		if p.Alive() {
			if p.Handle != nil {
				p.Handle.SetTransform(p.X, p.Y, p.Rotation)
				p.Handle.SetOpacity(p.Opacity())
			}
			if write != i {
				l.particles[write] = *p
			}
			write++
			continue
		}

		// Expired: release the visual element and drop permanently
		if p.Handle != nil {
			p.Handle.Detach()
			p.Handle = nil
		}
		retired++
	}

	l.particles = l.particles[:write]
	if retired > 0 {
		l.statRetired.Add(int64(retired))
	}
	return retired
}

// consumeEvents drains the trigger queue; returns particles spawned and
// particles cleared by reset requests
func (l *Loop) consumeEvents() (spawned, cleared int) {
	for _, ev := range l.queue.Consume() {
		switch ev.Type {
		case event.TypeBurstRequest:
			if p, ok := ev.Payload.(*event.BurstRequestPayload); ok {
				spawned += l.emitter.Burst(l, p.X, p.Y)
				event.ReleaseBurstRequest(p)
			}

		case event.TypeReset:
			cleared += l.reset()
		}
	}
	return spawned, cleared
}

// evictOldest force-retires the n oldest live particles (insertion order)
// to make room under the population cap
func (l *Loop) evictOldest(n int) {
	if n > len(l.particles) {
		n = len(l.particles)
	}
	for i := 0; i < n; i++ {
		if h := l.particles[i].Handle; h != nil {
			h.Detach()
			l.particles[i].Handle = nil
		}
	}
	l.particles = append(l.particles[:0], l.particles[n:]...)
	l.statRetired.Add(int64(n))
}

// reset clears the live set and re-arms the emitter cooldown; returns the
// number of particles cleared
func (l *Loop) reset() int {
	cleared := len(l.particles)
	l.evictOldest(cleared)
	l.emitter.Reset()
	return cleared
}
