// Package conflict detects collisions between committed agent paths on a
// shared *grid.Grid: two agents occupying the same cell at the same step
// (Vertex), two agents swapping cells across one step (Swap), and an agent
// crossing another agent's warehouse docking exclusion zone
// (WarehouseExclusion).
//
// Detect is a pure function of its inputs: it never mutates assignments or
// the Grid, and its output order is fully determined by its input so two
// calls with identical assignments always produce identical conflict lists.
package conflict
