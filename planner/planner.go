package planner

import (
	"container/heap"
	"context"

	"go.opencensus.io/trace"

	"github.com/augv-fleet/coordinator/grid"
)

// FindPath returns the least-cost 4-connected route from start to goal on g,
// treating every cell in blocked as impassable in addition to g's own
// walkability. The returned path includes both start and goal. g itself is
// never mutated.
//
// Returns ErrStartBlocked / ErrGoalBlocked if either endpoint is unusable,
// ErrNoPathFound if no route exists, or ErrSearchExhausted if the search
// exceeds its expansion budget (WithMaxExpansions, default
// DefaultMaxExpansions) first.
func FindPath(g *grid.Grid, start, goal grid.Cell, blocked map[grid.Cell]struct{}, opts ...Option) ([]grid.Cell, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.Tracer {
		_, span := trace.StartSpan(context.Background(), "planner.FindPath")
		defer span.End()
	}

	if !passable(g, blocked, start) {
		return nil, ErrStartBlocked
	}
	if !passable(g, blocked, goal) {
		return nil, ErrGoalBlocked
	}

	if start == goal {
		return []grid.Cell{start}, nil
	}

	open := &openPQ{}
	heap.Init(open)

	gScore := map[grid.Cell]int{start: 0}
	parent := map[grid.Cell]grid.Cell{}
	closed := map[grid.Cell]bool{}

	seq := 0
	push := func(c grid.Cell, gCost int) {
		h := manhattanHeuristic(c, goal)
		heap.Push(open, &node{cell: c, g: gCost, f: gCost + h, h: h, seq: seq})
		seq++
	}
	push(start, 0)

	expansions := 0
	for open.Len() > 0 {
		if expansions >= o.MaxExpansions {
			if o.Logger != nil {
				o.Logger.Warnw("planner: search exhausted",
					"start", start, "goal", goal, "maxExpansions", o.MaxExpansions)
			}
			return nil, ErrSearchExhausted
		}
		expansions++

		current := heap.Pop(open).(*node)
		if closed[current.cell] {
			continue
		}
		if current.cell == goal {
			return retrace(parent, start, goal), nil
		}
		closed[current.cell] = true

		for _, n := range g.Neighbours(current.cell) {
			if closed[n] {
				continue
			}
			if !passable(g, blocked, n) {
				continue
			}

			tentativeG := current.g + axisStepCost*g.TraversalCost(n)
			if best, ok := gScore[n]; ok && tentativeG >= best {
				continue
			}

			gScore[n] = tentativeG
			parent[n] = current.cell
			push(n, tentativeG)
		}
	}

	return nil, ErrNoPathFound
}

// passable reports whether c can be entered: in bounds, walkable on g, and
// not present in the caller's blocked overlay.
func passable(g *grid.Grid, blocked map[grid.Cell]struct{}, c grid.Cell) bool {
	if !g.Walkable(c) {
		return false
	}
	if _, ok := blocked[c]; ok {
		return false
	}
	return true
}

// retrace walks the parent-pointer map from goal back to start and reverses
// the result into a start->goal ordered path.
func retrace(parent map[grid.Cell]grid.Cell, start, goal grid.Cell) []grid.Cell {
	path := []grid.Cell{goal}
	cur := goal
	for cur != start {
		cur = parent[cur]
		path = append(path, cur)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
