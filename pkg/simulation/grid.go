package simulation

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// maxCellSteps is the Manhattan distance, in cells, beyond which a candidate cannot be in sight.
// A sighted neighbor is at most one cell away on each axis when the cell size equals the sight radius.
const maxCellSteps = 2

type gridKey struct {
	x, y int
}

// manhattan returns the Manhattan distance between two cells.
func (k gridKey) manhattan(o gridKey) int {
	return absInt(k.x-o.x) + absInt(k.y-o.y)
}

// grid is a uniform spatial hash over the birds of one query view.
// Cells are computed once per tick and kept in sync when a bird moves during a sequential step.
type grid struct {
	cellSize float64
	valid    bool
	builtAt  uint64 // world tick the cells were computed for
	cells    []gridKey
	buckets  map[gridKey][]int
}

func newGrid(cellSize float64) *grid {
	return &grid{
		cellSize: cellSize,
		buckets:  make(map[gridKey][]int),
	}
}

func (g *grid) cellOf(p geometry.Point) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// fresh reports whether the cached cells still describe view at tick.
func (g *grid) fresh(tick uint64, n int) bool {
	return g.valid && g.builtAt == tick && len(g.cells) == n
}

func (g *grid) invalidate() {
	g.valid = false
}

// rebuild recomputes every cell. Buckets are truncated rather than cleared so their
// backing arrays are reused from one tick to the next.
func (g *grid) rebuild(view []*Bird, tick uint64) {
	for k := range g.buckets {
		g.buckets[k] = g.buckets[k][:0]
	}
	g.cells = g.cells[:0]
	for i, b := range view {
		key := g.cellOf(b.Position)
		g.cells = append(g.cells, key)
		g.buckets[key] = append(g.buckets[key], i)
	}
	g.builtAt = tick
	g.valid = true
}

// relocate moves view index i to the cell of p if it changed.
func (g *grid) relocate(i int, p geometry.Point) {
	if !g.valid || i < 0 || i >= len(g.cells) {
		return
	}
	key := g.cellOf(p)
	old := g.cells[i]
	if key == old {
		return
	}
	bucket := g.buckets[old]
	for j, idx := range bucket {
		if idx == i {
			bucket[j] = bucket[len(bucket)-1]
			g.buckets[old] = bucket[:len(bucket)-1]
			break
		}
	}
	g.buckets[key] = append(g.buckets[key], i)
	g.cells[i] = key
}

// candidates returns, in view order, the indices of every bird whose cell is within
// maxCellSteps of the cell containing p.
func (g *grid) candidates(p geometry.Point) []int {
	center := g.cellOf(p)
	var out []int
	for dx := -maxCellSteps; dx <= maxCellSteps; dx++ {
		span := maxCellSteps - absInt(dx)
		for dy := -span; dy <= span; dy++ {
			key := gridKey{x: center.x + dx, y: center.y + dy}
			out = append(out, g.buckets[key]...)
		}
	}
	slices.Sort(out)
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
