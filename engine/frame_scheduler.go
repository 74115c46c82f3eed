package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/confetti/core"
	"github.com/lixenwraith/confetti/status"
)

// FrameScheduler invokes a tick callback once per display frame interval.
// It is the requestAnimationFrame analog: self-sustaining while running,
// drift-corrected, and cancelled synchronously on Stop so no callback can
// fire against a torn-down display surface
type FrameScheduler struct {
	tick     func()
	interval time.Duration

	nextTickDeadline time.Time

	frameCount atomic.Uint64
	mu         sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	stopped  atomic.Bool

	statFrames  *atomic.Int64
	statFrameMs *status.AtomicFloat
}

// NewFrameScheduler creates a scheduler driving tick at the given interval
func NewFrameScheduler(interval time.Duration, tick func(), reg *status.Registry) *FrameScheduler {
	return &FrameScheduler{
		tick:        tick,
		interval:    interval,
		stopChan:    make(chan struct{}),
		statFrames:  reg.Ints.Get("engine.frames"),
		statFrameMs: reg.Floats.Get("engine.frame_ms"),
	}
}

// Start begins the frame loop; no-op when already running or after Stop.
// The lifecycle is one-shot: a stopped scheduler is terminal for this
// mount instance
func (fs *FrameScheduler) Start() {
	if !fs.running.CompareAndSwap(false, true) {
		return
	}
	// Re-check after winning the CAS: a concurrent Stop can consume
	// stopOnce while running is still false, and would then never close
	// stopChan for the goroutine launched below
	if fs.stopped.Load() {
		fs.running.Store(false)
		return
	}
	fs.wg.Add(1)
	// Use core.Go for safe execution with centralized crash handling
	core.Go(fs.loop)
}

// Stop halts the loop and waits for the in-flight frame to finish.
// After Stop returns, the tick callback is guaranteed not to fire again
func (fs *FrameScheduler) Stop() {
	fs.stopOnce.Do(func() {
		fs.stopped.Store(true)
		if fs.running.CompareAndSwap(true, false) {
			close(fs.stopChan)
			fs.wg.Wait()
		}
	})
}

// Running reports the scheduler state: false = idle, true = running
func (fs *FrameScheduler) Running() bool {
	return fs.running.Load()
}

// FrameCount returns frames executed since Start
func (fs *FrameScheduler) FrameCount() uint64 {
	return fs.frameCount.Load()
}

func (fs *FrameScheduler) loop() {
	defer fs.wg.Done()

	fs.mu.Lock()
	fs.nextTickDeadline = time.Now().Add(fs.interval)
	fs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-fs.stopChan:
			return
		default:
		}

		now := time.Now()

		fs.mu.Lock()
		deadline := fs.nextTickDeadline
		fs.mu.Unlock()

		var sleepDuration time.Duration

		if !now.Before(deadline) {
			tickStart := time.Now()
			fs.tick()
			fs.statFrameMs.Set(float64(time.Since(tickStart).Nanoseconds()) / 1e6)

			fs.mu.Lock()
			fs.nextTickDeadline = fs.nextTickDeadline.Add(fs.interval)

			// Resynchronize when too far behind instead of burst-ticking
			maxBehind := fs.interval * 2
			if now.Sub(fs.nextTickDeadline) > maxBehind {
				fs.nextTickDeadline = now.Add(fs.interval)
			}
			deadline = fs.nextTickDeadline
			fs.mu.Unlock()

			fs.frameCount.Add(1)
			fs.statFrames.Add(1)

			sleepDuration = time.Until(deadline)
			if sleepDuration < 0 {
				sleepDuration = 0
			}
		} else {
			sleepDuration = deadline.Sub(now)
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-fs.stopChan:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				return
			}
		}
	}
}
