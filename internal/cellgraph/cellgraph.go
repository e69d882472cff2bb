// Package cellgraph provides breadth-first reachability over a *grid.Grid,
// used by mapdef to validate that all warehouse anchors sit on one
// connected walkable region. Adapted from bfs.go's
// walker/queueItem shape, but walking grid.Grid.Neighbours directly instead
// of a core.Graph's adjacency.
package cellgraph

import "github.com/augv-fleet/coordinator/grid"

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	cell  grid.Cell
	depth int
}

// walker encapsulates mutable BFS state over a Grid.
type walker struct {
	g       *grid.Grid
	queue   []queueItem
	visited map[grid.Cell]bool
}

// Reachable returns the set of walkable cells reachable from start via
// 4-connected walkable moves, including start itself if it is walkable.
func Reachable(g *grid.Grid, start grid.Cell) map[grid.Cell]bool {
	w := &walker{
		g:       g,
		queue:   make([]queueItem, 0),
		visited: make(map[grid.Cell]bool),
	}

	if !g.Walkable(start) {
		return w.visited
	}

	w.enqueue(start, 0)
	w.loop()
	return w.visited
}

func (w *walker) enqueue(c grid.Cell, depth int) {
	w.visited[c] = true
	w.queue = append(w.queue, queueItem{cell: c, depth: depth})
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		for _, n := range w.g.Neighbours(item.cell) {
			if w.visited[n] || !w.g.Walkable(n) {
				continue
			}
			w.enqueue(n, item.depth+1)
		}
	}
}
