package grid

import "fmt"

// Cell is an immutable position on the grid. Identity is the integer pair
// (X, Y); Cell itself carries no mutable state so it is safe to use as a map
// key or to copy freely between Paths.
type Cell struct {
	X, Y int
}

// String renders a Cell as "x,y", useful for log lines and map keys that
// need a textual form.
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ChebyshevDistance returns max(|dx|, |dy|) between two cells, the metric
// used by the warehouse-exclusion 3x3 box (§4.3).
func (c Cell) ChebyshevDistance(o Cell) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// cellState is the mutable, per-cell payload stored inside a Grid. Kept
// separate from Cell so Cell stays a plain comparable value type.
type cellState struct {
	walkable      bool
	traversalCost int
}

// GridOption configures a Grid at construction time.
type GridOption func(*Grid)

// WithWarehouseAnchors marks the given cells as warehouse anchors; their
// 3x3 Chebyshev neighbourhood is subject to exclusive docking reservation
// per §4.3/§4.5.
func WithWarehouseAnchors(anchors ...Cell) GridOption {
	return func(g *Grid) {
		for _, a := range anchors {
			g.warehouseAnchors[a] = struct{}{}
		}
	}
}

// WithAllBlocked starts every cell as non-walkable; callers then call
// SetWalkable to carve out the walkable layout. Default is all-walkable.
func WithAllBlocked() GridOption {
	return func(g *Grid) {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				g.states[y][x].walkable = false
			}
		}
	}
}
