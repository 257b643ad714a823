package main

import (
	"errors"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cants/audio"
	"github.com/lixenwraith/cants/core"
	"github.com/lixenwraith/cants/engine"
	"github.com/lixenwraith/cants/input"
	"github.com/lixenwraith/cants/render"
	"github.com/lixenwraith/cants/status"
)

type screenMode int

// frameSmoothing is the weight of the newest sample in the frame time average
const frameSmoothing = 0.2

const (
	modeChooser screenMode = iota
	modePlaying
)

// app is the main loop state: one simulation, its renderer and the map chooser
// Every method runs on the main loop goroutine
type app struct {
	screen   tcell.Screen
	sim      *engine.Simulation
	renderer *render.Renderer
	keys     *input.Keys
	chooser  *chooser
	sound    *audio.SoundManager
	clock    core.Clock
	mode     screenMode
	frameMs  *status.AtomicFloat
}

func newApp(screen tcell.Screen, sim *engine.Simulation, sound *audio.SoundManager, clock core.Clock, mapsDir string, debug bool) *app {
	var metrics *status.Registry
	if debug {
		metrics = sim.Metrics()
	}
	a := &app{
		screen:   screen,
		sim:      sim,
		renderer: render.NewRenderer(screen, metrics),
		keys:     input.NewKeys(clock, debug),
		chooser:  newChooser(mapsDir),
		sound:    sound,
		clock:    clock,
		frameMs:  sim.Metrics().Floats.Get(status.KeyFrameMs),
	}
	if err := a.chooser.refresh(); err != nil {
		a.chooser.status = err.Error()
	}
	return a
}

// loadMap replaces the running map; on failure the previous map, if any, keeps running
func (a *app) loadMap(path string) error {
	if err := a.sim.LoadMapFile(path); err != nil {
		log.Printf("app: %v", err)
		return err
	}
	if err := a.sim.Start(); err != nil {
		return err
	}
	a.keys.Reset()
	a.mode = modePlaying
	a.chooser.status = ""
	return nil
}

// handleEvent reacts to one terminal event and reports whether the program should quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if a.mode == modeChooser {
			return a.handleChooserKey(ev)
		}
		return a.handleGameKey(ev)
	}
	return false
}

func (a *app) handleChooserKey(ev *tcell.EventKey) bool {
	switch a.chooser.handleKey(ev) {
	case choiceQuit:
		return true
	case choiceBack:
		if _, ok := a.sim.View(); ok {
			a.mode = modePlaying
		}
	case choiceLoad:
		path, _ := a.chooser.selection()
		if err := a.loadMap(path); err != nil {
			a.chooser.status = err.Error()
		}
	}
	return false
}

func (a *app) handleGameKey(ev *tcell.EventKey) bool {
	switch a.keys.HandleKey(ev, a.sim) {
	case input.ActionQuit:
		return true
	case input.ActionMenu:
		a.sim.Player().ReleaseAll()
		a.keys.Reset()
		a.mode = modeChooser
		if err := a.chooser.refresh(); err != nil {
			a.chooser.status = err.Error()
		}
	case input.ActionUpgrade:
		if _, err := a.sim.Upgrade(); err != nil {
			log.Printf("app: upgrade rejected: %v", err)
			if !errors.Is(err, engine.ErrGameWon) {
				a.sound.Play(audio.CueDenied)
			}
		}
	case input.ActionToggleMute:
		muted := !a.sound.Muted()
		a.sound.SetMuted(muted)
		if !muted {
			if err := a.sound.Initialize(); err != nil {
				log.Printf("app: audio: %v", err)
			}
		}
	case input.ActionSpawnNpc:
		if err := a.sim.DebugSpawnNpc(); err != nil {
			log.Printf("app: debug spawn: %v", err)
		}
	case input.ActionAddFood:
		a.sim.DebugAddFood()
	}
	return false
}

// frame drains events, expires held keys and draws the current screen
// Events are drained behind the chooser too
func (a *app) frame() {
	start := a.clock.Now()
	if a.mode == modeChooser {
		a.sim.Frame()
		a.chooser.draw(a.screen)
		return
	}

	a.keys.Expire(a.sim)
	a.sim.Frame()
	vp := a.renderer.Draw(a.sim)
	a.sim.SetViewport(vp)
	elapsed := a.clock.Now().Sub(start)
	a.frameMs.Smooth(float64(elapsed)/float64(time.Millisecond), frameSmoothing)
}
