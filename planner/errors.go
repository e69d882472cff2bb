package planner

import "errors"

// Sentinel errors returned by FindPath.
var (
	// ErrNoPathFound indicates the open set was exhausted with goal unreached:
	// no walkable, unblocked route connects start to goal.
	ErrNoPathFound = errors.New("planner: no path found")

	// ErrSearchExhausted indicates the search exceeded WithMaxExpansions
	// before either finding the goal or exhausting the open set.
	ErrSearchExhausted = errors.New("planner: search exhausted expansion budget")

	// ErrStartBlocked indicates start itself is not walkable or is in the
	// blocked overlay.
	ErrStartBlocked = errors.New("planner: start cell is blocked")

	// ErrGoalBlocked indicates goal itself is not walkable or is in the
	// blocked overlay.
	ErrGoalBlocked = errors.New("planner: goal cell is blocked")
)
