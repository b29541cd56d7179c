package sightline

import (
	"fmt"
	"log"
)

// Resolver computes the magnify of every ray in place.
type Resolver interface {
	ResolveAll(origin Point, rays []Ray, grid *Grid, bounds Bounds, p SearchParams) error
}

// CPUResolver runs ResolveLength for each ray on the calling goroutine.
type CPUResolver struct{}

// ResolveAll implements Resolver.
func (CPUResolver) ResolveAll(origin Point, rays []Ray, grid *Grid, bounds Bounds, p SearchParams) error {
	for i := range rays {
		rays[i].Magnify = ResolveLength(origin, rays[i].Direction, grid, bounds, p)
	}
	return nil
}

// TickResult is what one tick hands to the renderer.
type TickResult struct {
	AllowMove bool
	Segments  []Segment
	Quit      bool
}

// Simulation owns the grid, the source and the ray fan, and advances them
// one tick at a time. It is not safe for concurrent use.
type Simulation struct {
	cfg    Config
	grid   *Grid
	field  *RayField
	ctrl   *Controller
	bounds Bounds
	search SearchParams

	resolver  Resolver
	segments  []Segment
	allowMove bool
	ticks     uint64
}

// NewSimulation validates cfg, generates the obstacle grid from draws and
// spawns the source at the screen center facing heading 0.
func NewSimulation(cfg Config, draws Drawer) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}
	grid := Generate(cfg.Width, cfg.Height, cfg.CellSize, draws, WithSolidBoundary(cfg.SolidBoundary))
	start := Point{X: float64(cfg.Width / 2), Y: float64(cfg.Height / 2)}
	return NewSimulationWithGrid(cfg, grid, start, 0)
}

// NewSimulationWithGrid runs over an existing grid from an explicit start.
func NewSimulationWithGrid(cfg Config, grid *Grid, start Point, heading float64) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}
	field := NewRayField(cfg.Rays, cfg.RayStep, cfg.RaySpeed, cfg.BaseMagnify, heading)
	s := &Simulation{
		cfg:      cfg,
		grid:     grid,
		field:    field,
		ctrl:     NewController(cfg, start, heading, field),
		bounds:   cfg.Bounds(),
		search:   cfg.Search(),
		resolver: CPUResolver{},
	}
	s.allowMove = s.ctrl.AllowMove(grid)
	s.resolve()
	return s, nil
}

// SetResolver replaces the ray resolver. A nil resolver restores the CPU one.
func (s *Simulation) SetResolver(r Resolver) {
	if r == nil {
		r = CPUResolver{}
	}
	s.resolver = r
}

// Tick samples allow-move, applies cmds, resolves every ray and returns the
// fan for drawing.
func (s *Simulation) Tick(cmds Commands) TickResult {
	s.ticks++
	s.allowMove = s.ctrl.AllowMove(s.grid)
	s.ctrl.Apply(cmds, s.allowMove)
	s.resolve()
	return TickResult{
		AllowMove: s.allowMove,
		Segments:  s.segments,
		Quit:      s.ctrl.Quit(),
	}
}

func (s *Simulation) resolve() {
	origin := s.ctrl.Position()
	if err := s.resolver.ResolveAll(origin, s.field.rays, s.grid, s.bounds, s.search); err != nil {
		log.Printf("ray resolver failed, falling back to CPU: %v", err)
		s.resolver = CPUResolver{}
		s.field.Resolve(origin, s.grid, s.bounds, s.search)
	}
	s.segments = s.field.Segments(origin)
}

// ListWalls returns every wall for drawing.
func (s *Simulation) ListWalls() []Wall { return s.grid.ListWalls() }

// CurrentSegments returns the fan resolved by the last tick.
func (s *Simulation) CurrentSegments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// Position returns the source position.
func (s *Simulation) Position() Point { return s.ctrl.Position() }

// Heading returns the source heading.
func (s *Simulation) Heading() float64 { return s.ctrl.Heading() }

// AllowMove returns the allow-move flag sampled by the last tick.
func (s *Simulation) AllowMove() bool { return s.allowMove }

// Quit reports whether a quit command has been applied.
func (s *Simulation) Quit() bool { return s.ctrl.Quit() }

// Ticks returns the number of ticks run.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Grid returns the obstacle grid.
func (s *Simulation) Grid() *Grid { return s.grid }

// Rays returns a copy of the current fan.
func (s *Simulation) Rays() []Ray { return s.field.Rays() }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }
