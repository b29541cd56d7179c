package sightline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDrawer replays vals cyclically and counts draws.
type scriptedDrawer struct {
	vals  []int
	draws int
}

func (d *scriptedDrawer) Int() int {
	v := d.vals[d.draws%len(d.vals)]
	d.draws++
	return v
}

// alwaysWall passes both stages for every row above 3.
func alwaysWall() *scriptedDrawer { return &scriptedDrawer{vals: []int{3, 0}} }

// neverWall fails the first stage for every row.
func neverWall() *scriptedDrawer { return &scriptedDrawer{vals: []int{0}} }

func TestGenerateBoundaryRing(t *testing.T) {
	sizes := []struct{ w, h, cell int }{
		{600, 600, 20},
		{1280, 720, 20},
		{610, 455, 20},
		{200, 100, 10},
	}
	for _, sz := range sizes {
		for seed := int64(1); seed <= 5; seed++ {
			g := Generate(sz.w, sz.h, sz.cell, rand.New(rand.NewSource(seed)))
			require.Equal(t, sz.h/sz.cell, g.Rows())
			require.Equal(t, sz.w/sz.cell, g.Cols())
			for i := 0; i < g.Rows(); i++ {
				for j := 0; j < g.Cols(); j++ {
					if i == 0 || j == 0 || i == g.Rows()-1 || j == g.Cols()-1 {
						assert.True(t, g.IsWallCell(i, j), "boundary cell %d,%d of %dx%d", i, j, sz.w, sz.h)
					}
				}
			}
		}
	}
}

func TestGenerateCenterAlwaysFree(t *testing.T) {
	g := Generate(600, 600, 20, alwaysWall())
	assert.False(t, g.IsWallCell(15, 15))
	assert.True(t, g.IsWallCell(15, 14))
	assert.True(t, g.IsWallCell(14, 15))
	assert.True(t, g.CheckClear(Point{X: 310, Y: 310}, 0))

	for seed := int64(0); seed < 20; seed++ {
		g := Generate(1280, 720, 20, rand.New(rand.NewSource(seed)))
		assert.False(t, g.IsWallCell(360/20, 640/20), "seed %d", seed)
	}
}

func TestGenerateRowDensityQuirk(t *testing.T) {
	g := Generate(600, 600, 20, alwaysWall())
	for i := 1; i <= 3; i++ {
		for j := 1; j < g.Cols()-1; j++ {
			assert.False(t, g.IsWallCell(i, j), "row %d can never satisfy draw%%row == 3", i)
		}
	}
	assert.True(t, g.IsWallCell(4, 1))
}

func TestGenerateConsumesTwoDrawsPerInteriorCell(t *testing.T) {
	d := &scriptedDrawer{vals: []int{7, 1, 3, 4, 11}}
	g := Generate(600, 400, 20, d)
	assert.Equal(t, 2*(g.Rows()-2)*(g.Cols()-2), d.draws)

	d = neverWall()
	Generate(40, 40, 20, d)
	assert.Zero(t, d.draws)
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(1280, 720, 20, rand.New(rand.NewSource(42)))
	b := Generate(1280, 720, 20, rand.New(rand.NewSource(42)))
	assert.Equal(t, a.ListWalls(), b.ListWalls())

	c := Generate(1280, 720, 20, rand.New(rand.NewSource(43)))
	assert.NotEqual(t, a.ListWalls(), c.ListWalls())
}

func TestGenerateTruncatesPartialCells(t *testing.T) {
	g := Generate(610, 455, 20, neverWall())
	require.Equal(t, 30, g.Cols())
	require.Equal(t, 22, g.Rows())
	walls := g.ListWalls()
	require.Len(t, walls, 2*30+2*20)
	last := walls[len(walls)-1]
	assert.Equal(t, Wall{XMin: 580, XMax: 600, YMin: 420, YMax: 440, Boundary: true}, last)
}

func TestGenerateDegenerateCellSize(t *testing.T) {
	g := Generate(600, 600, 0, neverWall())
	assert.Empty(t, g.ListWalls())
	assert.True(t, g.CheckClear(Point{X: 1, Y: 1}, 100))
}

func TestCheckClearEmptyGrid(t *testing.T) {
	g := NewGrid(600, 600, nil)
	assert.True(t, g.CheckClear(Point{X: 300, Y: 300}, 1e9))
	assert.True(t, g.CheckClear(Point{X: -5, Y: 1e12}, 0))
}

func TestCheckClearInclusiveBounds(t *testing.T) {
	g := NewGrid(600, 600, []Wall{{XMin: 100, XMax: 140, YMin: 100, YMax: 140}})

	assert.False(t, g.CheckClear(Point{X: 98.5, Y: 120}, 1.5), "touching the left edge")
	assert.True(t, g.CheckClear(Point{X: 98.4, Y: 120}, 1.5))
	assert.False(t, g.CheckClear(Point{X: 141.5, Y: 141.5}, 1.5), "touching the corner")
	assert.False(t, g.CheckClear(Point{X: 120, Y: 120}, 0), "inside")
	assert.True(t, g.CheckClear(Point{X: 120, Y: 150}, 5))
}

func TestCheckClearBoundarySolidity(t *testing.T) {
	p := Point{X: 10, Y: 300}

	g := Generate(600, 600, 20, neverWall())
	assert.True(t, g.CheckClear(p, 1.5), "boundary ring is drawn only by default")
	assert.Empty(t, g.Colliders())

	g = Generate(600, 600, 20, neverWall(), WithSolidBoundary(true))
	assert.True(t, g.SolidBoundary())
	assert.False(t, g.CheckClear(p, 1.5))
	assert.Len(t, g.Colliders(), len(g.ListWalls()))
}

func TestCheckClearMonotonicInClearance(t *testing.T) {
	g := Generate(1280, 720, 20, rand.New(rand.NewSource(7)))
	r := rand.New(rand.NewSource(99))
	for n := 0; n < 2000; n++ {
		p := Point{X: r.Float64() * 1280, Y: r.Float64() * 720}
		c1 := r.Float64() * 30
		c2 := c1 + r.Float64()*30
		if !g.CheckClear(p, c1) {
			assert.False(t, g.CheckClear(p, c2), "point %+v clearance %g then %g", p, c1, c2)
		}
	}
}

func TestCheckClearIndexMatchesLinearScan(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	grids := []*Grid{
		Generate(1280, 720, 20, rand.New(rand.NewSource(1))),
		Generate(1280, 720, 20, rand.New(rand.NewSource(2)), WithSolidBoundary(true)),
		Generate(600, 600, 20, alwaysWall(), WithBucketSize(7)),
		NewGrid(600, 600, []Wall{
			{XMin: 100, XMax: 140, YMin: 100, YMax: 140},
			{XMin: -1e13, XMax: 1e13, YMin: 500, YMax: 501},
			{XMin: 330, XMax: 320, YMin: 0, YMax: 10},
		}),
	}
	for gi, g := range grids {
		for n := 0; n < 3000; n++ {
			p := Point{X: r.Float64()*700 - 50, Y: r.Float64()*800 - 50}
			c := r.Float64() * 40
			if n%50 == 0 {
				c = r.Float64() * 2000
			}
			assert.Equal(t, g.checkClearLinear(p, c), g.CheckClear(p, c), "grid %d point %+v clearance %g", gi, p, c)
		}
	}
}

func TestListWallsIsACopy(t *testing.T) {
	g := NewGrid(600, 600, []Wall{{XMin: 1, XMax: 2, YMin: 1, YMax: 2}})
	walls := g.ListWalls()
	walls[0].XMin = 500
	assert.Equal(t, 1.0, g.ListWalls()[0].XMin)
	assert.False(t, g.IsWallCell(0, 0))
}
