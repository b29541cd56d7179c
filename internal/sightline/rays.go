package sightline

import "math"

// Obstacles answers point-clearance queries. *Grid implements it.
type Obstacles interface {
	CheckClear(p Point, clearance float64) bool
}

// SearchParams tunes the per-ray length sweep.
type SearchParams struct {
	// BaseMagnify is the length factor every sweep starts from.
	BaseMagnify float64
	// PrecisionStep is added per clear probe and removed once on exit.
	PrecisionStep float64
	// Clearance is the half-width of the probe square.
	Clearance float64
}

// Ray is one member of the fan.
type Ray struct {
	// Offset is the fixed angle relative to the source heading.
	Offset float64
	// Angle is the absolute angle in [0, 2π).
	Angle float64
	// Direction is the unit direction scaled by the ray speed.
	Direction Point
	// Magnify is the resolved length factor; the endpoint is
	// origin + Direction*Magnify.
	Magnify float64
}

// End returns the ray endpoint for the given origin.
func (r Ray) End(origin Point) Point {
	return origin.Add(r.Direction.Scale(r.Magnify))
}

// Length returns the distance from origin to the endpoint.
func (r Ray) Length() float64 {
	return r.Direction.Len() * r.Magnify
}

// RayField is a fixed arena of rays fanned symmetrically around a heading.
// Index Len()/2 is the heading ray; lower indices sweep towards smaller
// angles, higher ones towards larger angles.
type RayField struct {
	rays  []Ray
	step  float64
	speed float64
	base  float64
}

// NewRayField allocates n rays spaced step radians apart, each with a
// direction of length speed, and aims them at heading.
func NewRayField(n int, step, speed, baseMagnify, heading float64) *RayField {
	if n < 1 {
		n = 1
	}
	f := &RayField{
		rays:  make([]Ray, n),
		step:  step,
		speed: speed,
		base:  baseMagnify,
	}
	half := n / 2
	for i := range f.rays {
		switch {
		case i < half:
			f.rays[i].Offset = -float64(i+1) * step
		case i > half:
			f.rays[i].Offset = float64(i-half) * step
		}
	}
	f.Aim(heading)
	return f
}

// Aim regenerates every ray direction from heading and resets each ray to the
// base magnify.
func (f *RayField) Aim(heading float64) {
	for i := range f.rays {
		r := &f.rays[i]
		r.Angle = NormalizeAngle(heading + r.Offset)
		r.Direction = unitDirection(r.Angle, f.speed)
		r.Magnify = f.base
	}
}

// Resolve sweeps every ray from origin with the CPU search.
func (f *RayField) Resolve(origin Point, grid Obstacles, bounds Bounds, p SearchParams) {
	for i := range f.rays {
		f.rays[i].Magnify = ResolveLength(origin, f.rays[i].Direction, grid, bounds, p)
	}
}

// Segments returns one segment per ray, in fan order.
func (f *RayField) Segments(origin Point) []Segment {
	out := make([]Segment, len(f.rays))
	for i, r := range f.rays {
		out[i] = Segment{Origin: origin, End: r.End(origin)}
	}
	return out
}

// Rays returns a copy of the fan.
func (f *RayField) Rays() []Ray { return append([]Ray(nil), f.rays...) }

// Ray returns the ray at index i.
func (f *RayField) Ray(i int) Ray { return f.rays[i] }

// Center returns the heading ray.
func (f *RayField) Center() Ray { return f.rays[len(f.rays)/2] }

// Len returns the fan width.
func (f *RayField) Len() int { return len(f.rays) }

// ResolveLength marches from origin along dir, one PrecisionStep of magnify
// at a time, until the probe leaves bounds or touches an obstacle, then backs
// off one step. The result never drops below zero and is within one step of
// the first blocked magnify, on its free side.
func ResolveLength(origin, dir Point, grid Obstacles, bounds Bounds, p SearchParams) float64 {
	limit := sweepLimit(origin, dir, bounds, p.PrecisionStep)
	magnify := p.BaseMagnify
	for k := 0; k < limit; k++ {
		magnify = p.BaseMagnify + float64(k)*p.PrecisionStep
		probe := origin.Add(dir.Scale(magnify))
		if !bounds.Contains(probe) || !grid.CheckClear(probe, p.Clearance) {
			break
		}
		magnify += p.PrecisionStep
	}
	return math.Max(magnify-p.PrecisionStep, 0)
}

// sweepLimit bounds the number of probes: past the farthest bounds corner
// every probe is out of bounds.
func sweepLimit(origin, dir Point, bounds Bounds, step float64) int {
	stride := dir.Len() * step
	if stride <= 0 || math.IsNaN(stride) || math.IsInf(stride, 0) {
		return 1
	}
	reach := 0.0
	for _, c := range [...]Point{
		{X: bounds.MinX, Y: bounds.MinY},
		{X: bounds.MaxX, Y: bounds.MinY},
		{X: bounds.MinX, Y: bounds.MaxY},
		{X: bounds.MaxX, Y: bounds.MaxY},
	} {
		reach = math.Max(reach, c.Sub(origin).Len())
	}
	n := math.Ceil(reach/stride) + 2
	if math.IsNaN(n) || n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
