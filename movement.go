package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sightline/internal/sightline"
)

// enableAutoWalk schedules scripted movement for a limited duration. done is
// called once when the walk ends.
func (g *Game) enableAutoWalk(duration time.Duration, done func()) {
	g.autoWalk = true
	g.autoWalkDeadline = time.Now().Add(duration)
	if g.autoWalkRand == nil {
		g.autoWalkRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	g.autoWalkFrameCount = 0
	g.autoWalkDone = done
}

// commands selects either keyboard or scripted commands for this tick.
func (g *Game) commands() sightline.Commands {
	if g.autoWalk {
		if time.Now().After(g.autoWalkDeadline) {
			g.stopAutoWalk()
			return g.manualCommands()
		}
		return g.autoWalkCommands()
	}
	return g.manualCommands()
}

// manualCommands maps W/S to moves, A/D to rotation and Escape to quit.
func (g *Game) manualCommands() sightline.Commands {
	var cmds sightline.Commands
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		cmds = cmds.With(sightline.MoveBackward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		cmds = cmds.With(sightline.MoveForward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		cmds = cmds.With(sightline.RotateRight)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		cmds = cmds.With(sightline.RotateLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		cmds = cmds.With(sightline.Quit)
	}
	return cmds
}

// autoWalkCommands holds a random command burst for a random number of
// frames, and picks a new one early when the source is blocked.
func (g *Game) autoWalkCommands() sightline.Commands {
	if g.autoWalkFrameCount <= 0 || !g.lastTick.AllowMove {
		g.randomizeAutoWalk()
	}
	g.autoWalkFrameCount--
	return g.autoWalkCmds
}

// randomizeAutoWalk chooses a new command burst.
func (g *Game) randomizeAutoWalk() {
	cmds := sightline.Commands(0).With(sightline.MoveForward)
	switch g.autoWalkRand.Intn(3) {
	case 0:
		cmds = cmds.With(sightline.RotateLeft)
	case 1:
		cmds = cmds.With(sightline.RotateRight)
	}
	if g.autoWalkRand.Intn(8) == 0 {
		cmds = sightline.Commands(0).With(sightline.MoveBackward)
	}
	g.autoWalkCmds = cmds
	g.autoWalkFrameCount = autoWalkMinFrames + g.autoWalkRand.Intn(autoWalkFrameRange)
}

func (g *Game) stopAutoWalk() {
	g.autoWalk = false
	log.Printf("Auto walk finished after %d ticks", g.sim.Ticks())
	if g.autoWalkDone != nil {
		g.autoWalkDone()
		g.autoWalkDone = nil
	}
}

// handleDebugControls processes debug overlay hotkeys.
func (g *Game) handleDebugControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
}
