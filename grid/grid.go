package grid

import "sync"

// neighbourOffsets lists the 4-connected neighbour deltas in the fixed
// North, East, South, West order, mirroring gridgraph's precomputed offset
// table so Neighbours() returns a stable, reproducible order every call.
var neighbourOffsets = [4][2]int{
	{0, -1}, // North
	{1, 0},  // East
	{0, 1},  // South
	{-1, 0}, // West
}

// DefaultTraversalCost is the per-step cost assigned to a cell unless
// overridden by SetTraversalCost.
const DefaultTraversalCost = 1

// Grid is a W x H rectangular cell grid. It is built once via NewGrid and
// then mutated in place as walkability/cost change; cell identity never
// changes after construction.
//
// Safe for concurrent readers and a single mutating driver, guarded by mu.
type Grid struct {
	mu     sync.RWMutex
	width  int
	height int
	states [][]cellState // states[y][x]

	warehouseAnchors map[Cell]struct{}
}

// NewGrid constructs a width x height Grid. Every cell starts walkable with
// DefaultTraversalCost unless WithAllBlocked is supplied. Returns
// ErrEmptyGrid if width or height is less than 1.
func NewGrid(width, height int, opts ...GridOption) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyGrid
	}

	states := make([][]cellState, height)
	for y := range states {
		row := make([]cellState, width)
		for x := range row {
			row[x] = cellState{walkable: true, traversalCost: DefaultTraversalCost}
		}
		states[y] = row
	}

	g := &Grid{
		width:            width,
		height:           height,
		states:           states,
		warehouseAnchors: make(map[Cell]struct{}),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Width returns the grid's cell width.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid's cell height.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether c lies within [0,Width) x [0,Height).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// CellAt clamps the continuous coordinate (x, y) into the nearest in-bounds
// Cell. It never fails: coordinates outside the grid are clamped to the
// nearest edge, per §4.1.
func (g *Grid) CellAt(x, y float64) Cell {
	cx := int(x)
	cy := int(y)

	if cx < 0 {
		cx = 0
	} else if cx >= g.width {
		cx = g.width - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.height {
		cy = g.height - 1
	}

	return Cell{X: cx, Y: cy}
}

// Neighbours returns the in-bounds 4-connected neighbours of c in the fixed
// North, East, South, West order. Out-of-bounds neighbours are omitted, not
// substituted, so the returned slice may have fewer than 4 elements.
func (g *Grid) Neighbours(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range neighbourOffsets {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Walkable reports whether c can be entered by an agent. Cells outside the
// grid are always reported non-walkable.
func (g *Grid) Walkable(c Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.InBounds(c) {
		return false
	}
	return g.states[c.Y][c.X].walkable
}

// SetWalkable sets whether c can be entered. A no-op if c is out of bounds.
func (g *Grid) SetWalkable(c Cell, walkable bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.InBounds(c) {
		return
	}
	g.states[c.Y][c.X].walkable = walkable
}

// TraversalCost returns the per-step cost of entering c. Cells outside the
// grid report DefaultTraversalCost.
func (g *Grid) TraversalCost(c Cell) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.InBounds(c) {
		return DefaultTraversalCost
	}
	return g.states[c.Y][c.X].traversalCost
}

// SetTraversalCost sets the per-step cost of entering c. A no-op if c is out
// of bounds or cost is less than 1.
func (g *Grid) SetTraversalCost(c Cell, cost int) {
	if cost < 1 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.InBounds(c) {
		return
	}
	g.states[c.Y][c.X].traversalCost = cost
}

// WithTemporaryBlocks marks blocks non-walkable, runs fn, then restores each
// block's prior walkability regardless of fn's outcome — including blocks
// that were already non-walkable, so nested or overlapping callers never
// leave a cell in the wrong state. Restoration order is the reverse of
// blocks so a cell listed twice ends up with its original, pre-call value.
func (g *Grid) WithTemporaryBlocks(blocks []Cell, fn func() error) error {
	prior := make([]bool, len(blocks))
	for i, c := range blocks {
		prior[i] = g.Walkable(c)
		g.SetWalkable(c, false)
	}

	defer func() {
		for i := len(blocks) - 1; i >= 0; i-- {
			g.SetWalkable(blocks[i], prior[i])
		}
	}()

	return fn()
}

// IsWarehouseAnchor reports whether c was registered as a warehouse anchor
// via WithWarehouseAnchors.
func (g *Grid) IsWarehouseAnchor(c Cell) bool {
	_, ok := g.warehouseAnchors[c]
	return ok
}

// WarehouseBox returns the walkable cells within Chebyshev distance 1 of
// anchor (its 3x3 neighbourhood, clipped to grid bounds), the exclusion
// zone used by conflict.Kind WarehouseExclusion per §4.3. anchor itself is
// included. Returns nil if anchor is not a registered warehouse anchor.
func (g *Grid) WarehouseBox(anchor Cell) []Cell {
	if !g.IsWarehouseAnchor(anchor) {
		return nil
	}

	var box []Cell
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c := Cell{X: anchor.X + dx, Y: anchor.Y + dy}
			if g.InBounds(c) && g.Walkable(c) {
				box = append(box, c)
			}
		}
	}
	return box
}
