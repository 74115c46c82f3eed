package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/confetti/audio"
	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/core"
	"github.com/lixenwraith/confetti/engine"
	"github.com/lixenwraith/confetti/event"
	"github.com/lixenwraith/confetti/render"
	"github.com/lixenwraith/confetti/sim"
	"github.com/lixenwraith/confetti/status"
	"github.com/lixenwraith/confetti/vmath"
)

var (
	seedFlag  = flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	hudFlag   = flag.Bool("hud", true, "Show the stats HUD")
	soundFlag = flag.Bool("sound", true, "Enable the burst pop sound")
)

var background = render.RGB{R: 16, G: 16, B: 24}

func main() {
	// Panic recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// Crash path for engine goroutines: reset the terminal first so the
	// stack trace lands on a sane screen
	core.SetCleanup(func() {
		screen.Fini()
	})

	reg := status.NewRegistry()
	width, height := screen.Size()
	surface := render.NewSurface(width, height, background, reg)

	sounds := audio.NewSoundManager()
	if *soundFlag {
		// Non-fatal: PlayPop is a no-op without a speaker
		_ = sounds.Initialize()
	} else {
		sounds.ToggleMute()
	}
	defer sounds.Cleanup()

	queue := event.NewQueue()
	clock := engine.RealTimeProvider{}
	emitter := sim.NewEmitter(vmath.NewFastRand(seed), clock, reg)

	// Membership changes cue the pop; spawn raises the live count above
	// what retirement alone can reach, so growth means a burst landed
	lastLive := 0
	loop := sim.NewLoop(emitter, queue, surface, func(live int) {
		if live > lastLive {
			sounds.PlayPop()
		}
		lastLive = live
	}, reg)

	loop.Start(constant.SimUpdateInterval, reg)
	defer loop.Stop()

	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	statLive := reg.Ints.Get("sim.active")
	statBursts := reg.Ints.Get("emitter.bursts")
	statRejected := reg.Ints.Get("emitter.rejected")

	renderTicker := time.NewTicker(constant.RenderUpdateInterval)
	defer renderTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
					ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
					sounds.ToggleMute()
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
					event.EmitReset(queue, loop.Frame())
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
					w, h := surface.PixelSize()
					event.EmitBurst(queue, w/2, h/2, loop.Frame())
				}

			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 != 0 {
					cx, cy := ev.Position()
					event.EmitBurst(queue,
						float64(cx)*constant.CellWidthPx,
						float64(cy)*constant.CellHeightPx,
						loop.Frame())
				}

			case *tcell.EventResize:
				w, h := ev.Size()
				surface.Resize(w, h)
				screen.Sync()
			}

		case <-renderTicker.C:
			surface.Compose()
			if *hudFlag {
				hud := fmt.Sprintf(" live %d  bursts %d  dropped %d  frame %d  [click/c burst, r reset, m mute, q quit] ",
					statLive.Load(), statBursts.Load(), statRejected.Load(), loop.Frame())
				surface.DrawText(0, 0, hud, render.RGB{R: 160, G: 160, B: 180})
			}
			surface.Flush(screen)
		}
	}
}
