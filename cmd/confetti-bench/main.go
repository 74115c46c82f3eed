package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/engine"
	"github.com/lixenwraith/confetti/event"
	"github.com/lixenwraith/confetti/sim"
	"github.com/lixenwraith/confetti/status"
	"github.com/lixenwraith/confetti/vmath"
)

var (
	frames   = flag.Int("frames", 10000, "Frames to simulate")
	seed     = flag.Uint64("seed", 1, "RNG seed")
	triggers = flag.Int("triggers", 25, "Frames between trigger attempts")
)

// Headless throughput bench: drives the loop tick-by-tick with no display
// binder and a mock clock, so every trigger attempt outside the cooldown
// is accepted deterministically
func main() {
	flag.Parse()

	reg := status.NewRegistry()
	queue := event.NewQueue()
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	emitter := sim.NewEmitter(vmath.NewFastRand(*seed), clock, reg)
	loop := sim.NewLoop(emitter, queue, nil, nil, reg)

	start := time.Now()
	for f := 0; f < *frames; f++ {
		if *triggers > 0 && f%*triggers == 0 {
			event.EmitBurst(queue, 400, 300, loop.Frame())
		}
		loop.Tick()
		clock.Advance(constant.SimUpdateInterval)
	}
	elapsed := time.Since(start)

	fmt.Printf("frames:     %d\n", *frames)
	fmt.Printf("elapsed:    %v\n", elapsed)
	fmt.Printf("per frame:  %v\n", elapsed/time.Duration(*frames))
	fmt.Printf("frames/sec: %.0f\n", float64(*frames)/elapsed.Seconds())
	fmt.Println()

	for _, key := range reg.Ints.Keys() {
		fmt.Printf("%-18s %d\n", key, reg.Ints.Get(key).Load())
	}
	for _, key := range reg.Floats.Keys() {
		fmt.Printf("%-18s %f\n", key, reg.Floats.Get(key).Get())
	}
}
