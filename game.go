package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"sightline/internal/sightline"
)

// Game adapts a sightline.Simulation to ebiten: Update runs one tick, Draw
// renders what that tick produced.
type Game struct {
	sim    *sightline.Simulation
	walls  []sightline.Wall
	width  int
	height int
	debug  bool

	lastTick         sightline.TickResult
	lastTickDuration time.Duration

	autoWalk           bool
	autoWalkDeadline   time.Time
	autoWalkRand       *rand.Rand
	autoWalkCmds       sightline.Commands
	autoWalkFrameCount int
	autoWalkDone       func()
}

// newGame wraps sim for a width×height window.
func newGame(sim *sightline.Simulation, width, height int) *Game {
	return &Game{
		sim:      sim,
		walls:    sim.ListWalls(),
		width:    width,
		height:   height,
		debug:    *debugFlag,
		lastTick: sightline.TickResult{AllowMove: sim.AllowMove(), Segments: sim.CurrentSegments()},
	}
}

// Update advances the simulation by one tick.
func (g *Game) Update() error {
	g.handleDebugControls()
	cmds := g.commands()

	start := time.Now()
	g.lastTick = g.sim.Tick(cmds)
	g.lastTickDuration = time.Since(start)

	if g.lastTick.Quit {
		log.Printf("Quit after %d ticks", g.sim.Ticks())
		return ebiten.Termination
	}
	return nil
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }
