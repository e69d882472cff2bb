// Package grid provides the rectangular cell grid that every AGV moves on:
// per-cell walkability and traversal cost, 4-connected neighbour lookup, and
// a scoped "temporary blocks" helper for callers that still mutate the live
// grid during planning instead of passing an overlay.
//
// A Grid is built once from a map definition and lives for the lifetime of
// the process; only its walkability/cost state ever changes afterwards, via
// SetWalkable / SetTraversalCost or dynamic-obstacle ingestion.
//
// Concurrency: Grid is safe for concurrent readers and a single mutating
// driver, guarded by one sync.RWMutex. Cell identity ((X,Y) pairs) never
// changes after construction; only the per-cell state referenced by that
// identity does.
package grid
