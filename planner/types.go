package planner

import (
	"github.com/edaniels/golog"

	"github.com/augv-fleet/coordinator/grid"
)

// axisStepCost is the cost of moving one cell along a single grid axis.
const axisStepCost = 10

// DefaultMaxExpansions bounds how many nodes FindPath will pop from the open
// set before giving up with ErrSearchExhausted.
const DefaultMaxExpansions = 10000

// Options configures a single FindPath call.
type Options struct {
	MaxExpansions int
	Logger        golog.Logger
	Tracer        bool
}

// Option is a functional option for FindPath.
type Option func(*Options)

// WithMaxExpansions caps the number of nodes popped from the open set.
// Non-positive values are ignored (the default is kept).
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxExpansions = n
		}
	}
}

// WithLogger attaches a logger used for Warn-level ErrSearchExhausted
// reporting. A nil logger disables logging.
func WithLogger(l golog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithTracer wraps the search loop in an opencensus span named
// "planner.FindPath".
func WithTracer() Option {
	return func(o *Options) {
		o.Tracer = true
	}
}

// DefaultOptions returns the Options FindPath uses absent overrides.
func DefaultOptions() Options {
	return Options{
		MaxExpansions: DefaultMaxExpansions,
	}
}

// node is one entry in the A* open set.
type node struct {
	cell  grid.Cell
	g     int // cost from start to this cell
	f     int // g + heuristic
	h     int // heuristic to goal
	seq   int // insertion order, for deterministic tie-break
	index int // heap index, maintained by container/heap
}

// openPQ implements heap.Interface over *node, ordered by (F, H, seq) so
// that ties resolve deterministically by heuristic then insertion order,
// mirroring edgePQ's shape in prim_kruskal.
type openPQ []*node

func (pq openPQ) Len() int { return len(pq) }

func (pq openPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].seq < pq[j].seq
}

func (pq openPQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *openPQ) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *openPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// manhattanHeuristic returns the admissible A* heuristic between a and b: the
// Manhattan distance scaled by axisStepCost, matching the actual per-step
// cost of a 4-connected grid exactly (never an overestimate).
func manhattanHeuristic(a, b grid.Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return axisStepCost * (dx + dy)
}
