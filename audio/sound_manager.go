package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	popDuration = 180 * time.Millisecond
)

// SoundManager owns the speaker and mixes short celebration cues. All
// methods are safe to call before Initialize or after a failed
// Initialize; they simply do nothing
type SoundManager struct {
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
}

// NewSoundManager creates a sound manager; call Initialize before playing
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system. Failure is non-fatal for the
// caller: the simulation runs fine silent
func (sm *SoundManager) Initialize() error {
	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences and drops all active streamers
func (sm *SoundManager) Cleanup() {
	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	return muted
}

// Muted reports whether playback is suppressed
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// PlayPop fires the burst cue: a bright noise pop with a falling thump.
// Each call adds an independent streamer, so rapid bursts overlap
func (sm *SoundManager) PlayPop() {
	if !sm.initialized || sm.muted.Load() {
		return
	}

	streamer := beep.Take(sampleRate.N(popDuration), NewPopGenerator(sampleRate))
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// PopGenerator synthesizes the confetti pop: filtered noise under a fast
// exponential envelope, plus a pitch-dropping sine body
type PopGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
	prev float64
}

// NewPopGenerator creates a pop sound generator
func NewPopGenerator(sr beep.SampleRate) *PopGenerator {
	return &PopGenerator{
		sr:   sr,
		seed: time.Now().UnixNano() | 1,
	}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Sharp attack, ~40ms decay
		envelope := math.Exp(-t * 25)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// One-pole low-pass keeps the noise from hissing
		g.prev += 0.35 * (noise - g.prev)

		// Thump sweeping 400Hz down to ~150Hz
		freq := 150 + 250*math.Exp(-t*30)
		thump := 0.35 * math.Sin(2*math.Pi*freq*t)

		sample := envelope * (0.4*g.prev + thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}
