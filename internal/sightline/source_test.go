package sightline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(start Point, heading float64) (*Controller, *RayField) {
	cfg := openConfig()
	f := NewRayField(cfg.Rays, cfg.RayStep, cfg.RaySpeed, cfg.BaseMagnify, heading)
	return NewController(cfg, start, heading, f), f
}

func only(c Command) Commands { return Commands(0).With(c) }

func TestControllerMoves(t *testing.T) {
	c, _ := newTestController(Point{X: 300, Y: 300}, 0)

	c.Apply(only(MoveForward), true)
	assert.Equal(t, Point{X: 300.25, Y: 300}, c.Position())

	c.Apply(only(MoveBackward), true)
	assert.Equal(t, Point{X: 300, Y: 300}, c.Position())

	c.Apply(only(MoveBackward).With(MoveForward), true)
	assert.Equal(t, Point{X: 300, Y: 300}, c.Position())
}

func TestControllerBouncesBackWhenBlocked(t *testing.T) {
	c, _ := newTestController(Point{X: 300, Y: 300}, 0)
	c.Apply(only(MoveForward), false)
	assert.Equal(t, Point{X: 295, Y: 300}, c.Position())

	c.Apply(only(MoveBackward), false)
	assert.Equal(t, Point{X: 300, Y: 300}, c.Position())
}

func TestControllerStaysInsideBorder(t *testing.T) {
	c, _ := newTestController(Point{X: 594.9, Y: 300}, 0)
	c.Apply(only(MoveForward), true)
	assert.Equal(t, Point{X: 594.9, Y: 300}, c.Position())
	c.Apply(only(MoveForward), false)
	assert.Equal(t, Point{X: 594.9, Y: 300}, c.Position(), "no bounce when the projection leaves the border")

	c, _ = newTestController(Point{X: 300, Y: 5.1}, 3*math.Pi/2)
	c.Apply(only(MoveForward), true)
	assert.Equal(t, 5.1, c.Position().Y)
}

func TestControllerRotation(t *testing.T) {
	c, f := newTestController(Point{X: 300, Y: 300}, 0)

	c.Apply(only(RotateRight), true)
	assert.InDelta(t, 0.01, c.Heading(), 1e-12)
	assert.Equal(t, c.Heading(), f.Center().Angle)

	c.Apply(only(RotateLeft).With(RotateLeft), true)
	assert.InDelta(t, 0.0, c.Heading(), 1e-12, "a command set holds each command once")

	c.Apply(only(RotateLeft), true)
	assert.InDelta(t, 2*math.Pi-0.01, c.Heading(), 1e-12)
	assert.InDelta(t, 5*math.Cos(c.Heading()), c.Direction().X, 1e-12)
	for _, r := range f.Rays() {
		assert.Equal(t, 1.5, r.Magnify)
	}
}

func TestControllerMovesBeforeRotating(t *testing.T) {
	c, _ := newTestController(Point{X: 300, Y: 300}, 0)
	c.Apply(only(RotateRight).With(MoveForward), true)
	assert.Equal(t, Point{X: 300.25, Y: 300}, c.Position())
	assert.InDelta(t, 0.01, c.Heading(), 1e-12)
}

func TestControllerQuit(t *testing.T) {
	c, _ := newTestController(Point{X: 300, Y: 300}, 0)
	require.False(t, c.Quit())
	c.Apply(only(Quit), true)
	assert.True(t, c.Quit())
	assert.Equal(t, Point{X: 300, Y: 300}, c.Position())
}

func TestAllowMoveMatchesGridQuery(t *testing.T) {
	cfg := openConfig()
	grid := NewGrid(600, 600, []Wall{{XMin: 100, XMax: 140, YMin: 100, YMax: 140}})
	for _, start := range []Point{{X: 90, Y: 120}, {X: 88.7, Y: 120}, {X: 300, Y: 300}, {X: 120, Y: 120}} {
		c, _ := newTestController(start, 0)
		assert.Equal(t, grid.CheckClear(start, cfg.MoveFactor*cfg.AllowMovePrecision), c.AllowMove(grid), "start %+v", start)
	}
}
