package audio

import (
	"math"
	"testing"
)

func TestPopGeneratorProducesBoundedSamples(t *testing.T) {
	g := NewPopGenerator(sampleRate)

	buf := make([][2]float64, 4096)
	n, ok := g.Stream(buf)
	if !ok || n != len(buf) {
		t.Fatalf("Stream = (%d, %v), want full buffer", n, ok)
	}

	peak := 0.0
	for _, s := range buf {
		if s[0] != s[1] {
			t.Fatal("pop must be mono across both channels")
		}
		if a := math.Abs(s[0]); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		t.Error("pop produced silence")
	}
	if peak > 1.0 {
		t.Errorf("pop peak %v clips", peak)
	}
}

func TestPopGeneratorDecays(t *testing.T) {
	g := NewPopGenerator(sampleRate)

	early := make([][2]float64, 1024)
	g.Stream(early)

	// Skip well past the envelope
	skip := make([][2]float64, int(sampleRate))
	g.Stream(skip)

	late := make([][2]float64, 1024)
	g.Stream(late)

	if rms(late) >= rms(early) {
		t.Errorf("late rms %v not below early rms %v", rms(late), rms(early))
	}
}

func TestPopGeneratorNeverErrors(t *testing.T) {
	g := NewPopGenerator(sampleRate)
	if g.Err() != nil {
		t.Errorf("Err = %v", g.Err())
	}
}

func TestMuteToggle(t *testing.T) {
	sm := NewSoundManager()

	if sm.Muted() {
		t.Fatal("new manager must start unmuted")
	}
	if !sm.ToggleMute() || !sm.Muted() {
		t.Error("first toggle must mute")
	}
	if sm.ToggleMute() || sm.Muted() {
		t.Error("second toggle must unmute")
	}
}

func TestPlayBeforeInitializeIsNoop(t *testing.T) {
	sm := NewSoundManager()
	sm.PlayPop() // Must not panic without speaker init
	sm.Cleanup()
}

func rms(buf [][2]float64) float64 {
	sum := 0.0
	for _, s := range buf {
		sum += s[0] * s[0]
	}
	return math.Sqrt(sum / float64(len(buf)))
}
