package sightline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// Point is a position or displacement in screen coordinates (y grows down).
type Point struct {
	X float64
	Y float64
}

func (p Point) vec() mgl64.Vec2 { return mgl64.Vec2{p.X, p.Y} }

func pointOf(v mgl64.Vec2) Point { return Point{X: v.X(), Y: v.Y()} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return pointOf(p.vec().Add(q.vec())) }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return pointOf(p.vec().Sub(q.vec())) }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return pointOf(p.vec().Mul(s)) }

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 { return p.vec().Len() }

// Equal reports exact coordinate equality.
func (p Point) Equal(q Point) bool { return p.X == q.X && p.Y == q.Y }

// Less orders points by X, then Y.
func (p Point) Less(q Point) bool {
	return p.X < q.X || (p.X == q.X && p.Y < q.Y)
}

// Wall is an axis-aligned obstacle rectangle.
type Wall struct {
	XMin, XMax float64
	YMin, YMax float64
	// Boundary marks walls of the outer ring of the grid.
	Boundary bool
}

// Overlaps reports whether the rectangle [xMin,xMax]×[yMin,yMax] touches the
// wall. Bounds are inclusive on both axes.
func (w Wall) Overlaps(xMin, xMax, yMin, yMax float64) bool {
	return xMax >= w.XMin && xMin <= w.XMax && yMax >= w.YMin && yMin <= w.YMax
}

// Contains reports whether p lies strictly inside the wall.
func (w Wall) Contains(p Point) bool {
	return p.X > w.XMin && p.X < w.XMax && p.Y > w.YMin && p.Y < w.YMax
}

// Segment is a single rendered ray from the source to its resolved endpoint.
type Segment struct {
	Origin Point
	End    Point
}

// Bounds is the inclusive rectangle rays and the source are confined to.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// ScreenBounds insets a width×height screen by margin on every side.
func ScreenBounds(width, height, margin float64) Bounds {
	return Bounds{MinX: margin, MinY: margin, MaxX: width - margin, MaxY: height - margin}
}

// Contains reports whether p is inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	// a+2π can round up to exactly 2π for tiny negative inputs.
	if a >= twoPi {
		a = 0
	}
	return a
}

// unitDirection returns (cos a, sin a) scaled by speed.
func unitDirection(a, speed float64) Point {
	s, c := math.Sincos(a)
	return pointOf(mgl64.Vec2{c, s}.Mul(speed))
}
