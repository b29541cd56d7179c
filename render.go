package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw renders the walls, the ray fan, the source marker and the optional
// debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if *showWallsFlag {
		for _, w := range g.walls {
			clr := wallColor
			if w.Boundary {
				clr = boundaryColor
			}
			vector.DrawFilledRect(screen,
				float32(w.XMin), float32(w.YMin),
				float32(w.XMax-w.XMin), float32(w.YMax-w.YMin),
				clr, false)
		}
	}

	for _, seg := range g.lastTick.Segments {
		vector.StrokeLine(screen,
			float32(seg.Origin.X), float32(seg.Origin.Y),
			float32(seg.End.X), float32(seg.End.Y),
			rayStrokeWidth, rayColor, true)
	}

	pos := g.sim.Position()
	marker := sourceColor
	if !g.lastTick.AllowMove {
		marker = blockedColor
	}
	vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), sourceRadius, marker, true)

	if g.debug {
		rays := g.sim.Rays()
		center := rays[len(rays)/2]
		debugMsg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nTick %d: %.2f ms\nPos: %.1f, %.1f  Heading: %.3f rad\nCenter ray: %.1f px  Allow move: %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.sim.Ticks(), g.lastTickDuration.Seconds()*1000,
			pos.X, pos.Y, g.sim.Heading(),
			center.Length(), g.lastTick.AllowMove)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}
