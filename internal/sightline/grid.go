package sightline

import "math"

// Drawer yields non-negative pseudo-random integers. *math/rand.Rand
// satisfies it.
type Drawer interface {
	Int() int
}

// Grid owns the wall rectangles of the playfield and answers clearance
// queries against them. It is immutable after construction.
type Grid struct {
	width, height float64
	cellSize      int
	rows, cols    int

	walls []Wall
	cells []bool

	solidBoundary bool
	colliders     []int
	bucketSize    float64
	buckets       map[bucketKey][]int
	// oversize holds colliders too large to bucket; always scanned.
	oversize []int
}

type bucketKey struct{ bx, by int }

// GridOption customizes grid construction.
type GridOption func(*Grid)

// WithSolidBoundary makes the boundary ring take part in collision queries.
// By default the ring is drawn only and the border margin confines movement.
func WithSolidBoundary(solid bool) GridOption {
	return func(g *Grid) { g.solidBoundary = solid }
}

// WithBucketSize overrides the spatial index bucket edge length.
func WithBucketSize(size float64) GridOption {
	return func(g *Grid) { g.bucketSize = size }
}

// Generate partitions a width×height screen into cellSize cells and emits
// walls for the boundary ring plus a pseudo-random subset of interior cells.
//
// Every interior cell consumes exactly two draws a and b, and becomes a wall
// when a%row == 3 && b%2 == 0. The row-dependent modulus thins walls out near
// the top of the screen; rows 1..3 can never hold one. The cell containing the
// screen center still consumes its draws but is never a wall.
func Generate(width, height, cellSize int, draws Drawer, opts ...GridOption) *Grid {
	g := &Grid{
		width:    float64(width),
		height:   float64(height),
		cellSize: cellSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if cellSize <= 0 || width <= 0 || height <= 0 {
		g.index()
		return g
	}
	g.rows = height / cellSize
	g.cols = width / cellSize
	g.cells = make([]bool, g.rows*g.cols)
	centerRow := (height / 2) / cellSize
	centerCol := (width / 2) / cellSize

	size := float64(cellSize)
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			boundary := i == 0 || j == 0 || i == g.rows-1 || j == g.cols-1
			if !boundary {
				a, b := draws.Int(), draws.Int()
				if a%i != 3 || b%2 != 0 {
					continue
				}
				if i == centerRow && j == centerCol {
					continue
				}
			}
			x, y := float64(j)*size, float64(i)*size
			g.walls = append(g.walls, Wall{XMin: x, XMax: x + size, YMin: y, YMax: y + size, Boundary: boundary})
			g.cells[i*g.cols+j] = true
		}
	}
	g.index()
	return g
}

// NewGrid builds a grid over a width×height screen from an explicit wall
// list. It carries no cell layout, so IsWallCell always reports false.
func NewGrid(width, height float64, walls []Wall, opts ...GridOption) *Grid {
	g := &Grid{width: width, height: height}
	for _, opt := range opts {
		opt(g)
	}
	g.walls = append([]Wall(nil), walls...)
	g.index()
	return g
}

// index builds the collider list and the bucket map used by CheckClear.
func (g *Grid) index() {
	if g.bucketSize <= 0 {
		g.bucketSize = float64(g.cellSize)
		if g.bucketSize <= 0 {
			g.bucketSize = 32
		}
	}
	g.colliders = g.colliders[:0]
	g.oversize = g.oversize[:0]
	g.buckets = make(map[bucketKey][]int)
	for idx, wall := range g.walls {
		if wall.Boundary && !g.solidBoundary {
			continue
		}
		g.colliders = append(g.colliders, idx)
		if !g.bucketable(wall) {
			g.oversize = append(g.oversize, idx)
			continue
		}
		bx0, by0 := g.bucketOf(wall.XMin, wall.YMin)
		bx1, by1 := g.bucketOf(wall.XMax, wall.YMax)
		for by := by0; by <= by1; by++ {
			for bx := bx0; bx <= bx1; bx++ {
				key := bucketKey{bx: bx, by: by}
				g.buckets[key] = append(g.buckets[key], idx)
			}
		}
	}
}

func (g *Grid) bucketable(w Wall) bool {
	const maxBuckets = 4096
	if !g.finiteQuery(w.XMin, w.XMax, w.YMin, w.YMax) || w.XMax < w.XMin || w.YMax < w.YMin {
		return false
	}
	spanX := math.Floor(w.XMax/g.bucketSize) - math.Floor(w.XMin/g.bucketSize) + 1
	spanY := math.Floor(w.YMax/g.bucketSize) - math.Floor(w.YMin/g.bucketSize) + 1
	return spanX*spanY <= maxBuckets
}

func (g *Grid) finiteQuery(xMin, xMax, yMin, yMax float64) bool {
	const maxCoord = 1 << 40
	for _, v := range [...]float64{xMin, xMax, yMin, yMax} {
		if math.IsNaN(v) || math.Abs(v) > maxCoord {
			return false
		}
	}
	return true
}

func (g *Grid) bucketOf(x, y float64) (int, int) {
	return int(math.Floor(x / g.bucketSize)), int(math.Floor(y / g.bucketSize))
}

// CheckClear inflates p into a square of half-width clearance and reports
// whether that square stays clear of every colliding wall. An empty grid is
// always clear.
func (g *Grid) CheckClear(p Point, clearance float64) bool {
	if len(g.colliders) == 0 {
		return true
	}
	xMin, xMax := p.X-clearance, p.X+clearance
	yMin, yMax := p.Y-clearance, p.Y+clearance
	if !g.indexable(xMin, xMax, yMin, yMax) {
		return g.checkClearLinear(p, clearance)
	}
	for _, idx := range g.oversize {
		if g.walls[idx].Overlaps(xMin, xMax, yMin, yMax) {
			return false
		}
	}
	bx0, by0 := g.bucketOf(xMin, yMin)
	bx1, by1 := g.bucketOf(xMax, yMax)
	for by := by0; by <= by1; by++ {
		for bx := bx0; bx <= bx1; bx++ {
			for _, idx := range g.buckets[bucketKey{bx: bx, by: by}] {
				if g.walls[idx].Overlaps(xMin, xMax, yMin, yMax) {
					return false
				}
			}
		}
	}
	return true
}

// indexable reports whether a query rectangle is cheaper to answer through the
// buckets than by scanning every collider.
func (g *Grid) indexable(xMin, xMax, yMin, yMax float64) bool {
	if !g.finiteQuery(xMin, xMax, yMin, yMax) {
		return false
	}
	spanX := math.Floor(xMax/g.bucketSize) - math.Floor(xMin/g.bucketSize) + 1
	spanY := math.Floor(yMax/g.bucketSize) - math.Floor(yMin/g.bucketSize) + 1
	return spanX > 0 && spanY > 0 && spanX*spanY <= float64(len(g.colliders))
}

// checkClearLinear is the O(walls) reference for CheckClear.
func (g *Grid) checkClearLinear(p Point, clearance float64) bool {
	xMin, xMax := p.X-clearance, p.X+clearance
	yMin, yMax := p.Y-clearance, p.Y+clearance
	for _, idx := range g.colliders {
		if g.walls[idx].Overlaps(xMin, xMax, yMin, yMax) {
			return false
		}
	}
	return true
}

// ListWalls returns every wall, boundary ring included, in generation order.
func (g *Grid) ListWalls() []Wall {
	return append([]Wall(nil), g.walls...)
}

// Colliders returns the walls that take part in clearance queries.
func (g *Grid) Colliders() []Wall {
	out := make([]Wall, len(g.colliders))
	for i, idx := range g.colliders {
		out[i] = g.walls[idx]
	}
	return out
}

// IsWallCell reports whether the generated cell at row, col holds a wall.
func (g *Grid) IsWallCell(row, col int) bool {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || len(g.cells) == 0 {
		return false
	}
	return g.cells[row*g.cols+col]
}

// Rows returns the number of generated cell rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of generated cell columns.
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the generation cell edge length.
func (g *Grid) CellSize() int { return g.cellSize }

// Size returns the screen dimensions the grid covers.
func (g *Grid) Size() (float64, float64) { return g.width, g.height }

// SolidBoundary reports whether boundary walls collide.
func (g *Grid) SolidBoundary() bool { return g.solidBoundary }
