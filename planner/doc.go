// Package planner computes a single-agent shortest path across a *grid.Grid
// using A*, the standard 4-connected grid cost model (10 per axis step,
// Manhattan-distance heuristic scaled the same way), and a caller-supplied
// overlay of additionally blocked cells.
//
// FindPath never mutates the Grid it is given: the blocked set is consulted
// purely as a neighbour filter, so concurrent callers can plan against the
// same Grid with different overlays without interfering with each other.
package planner
