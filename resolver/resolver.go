package resolver

import (
	"context"
	"sort"

	"github.com/augv-fleet/coordinator/conflict"
	"github.com/augv-fleet/coordinator/grid"
)

// Resolve repairs assignments so that conflict.Detect(result, g) is empty,
// or returns the best assignments found wrapped in *ExhaustedError once
// WithMaxDepth recursive repair passes are exhausted with conflicts still
// residual. conflicts is the caller's already-computed starting conflict
// list (e.g. from conflict.Detect); Resolve recomputes the conflict list
// itself after every repair pass.
//
// Running Resolve on an already conflict-free assignments is a no-op: it
// returns an equal copy with a nil error (R1).
func Resolve(ctx context.Context, g *grid.Grid, assignments map[string][]grid.Cell, conflicts []conflict.Conflict, opts ...Option) (map[string][]grid.Cell, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	current := copyAssignments(assignments)
	cs := conflicts

	for depth := 0; depth < o.MaxDepth; depth++ {
		if len(cs) == 0 {
			return current, nil
		}
		if err := ctx.Err(); err != nil {
			return current, err
		}

		pending := copyAssignments(current)

		for _, c := range cs {
			budget := o.ScenarioSafetyBound
			scenarios := candidateScenarios(g, pending, c, o, &budget)
			if len(scenarios) == 0 {
				if o.Logger != nil {
					o.Logger.Warnw("resolver: conflict has no valid scenario, leaving unresolved this pass",
						"cell", c.Cell, "step", c.Step, "kind", c.Kind.String(), "involved", c.Involved)
				}
				continue
			}

			best := pickBest(scenarios, pending, c, g)
			applyScenario(pending, best)
		}

		current = pending
		cs = conflict.Detect(current, g)
	}

	if o.Logger != nil {
		o.Logger.Warnw("resolver: resolution exhausted at depth cap",
			"maxDepth", o.MaxDepth, "residualConflicts", len(cs))
	}

	return current, &ExhaustedError{Assignments: current, Residual: cs}
}

// pickBest scores every scenario by (hasConflict, totalPathLength,
// serialize) and returns the lexicographically smallest, i.e. conflict-free
// beats conflicted, then shortest aggregate, then deterministic tie-break.
func pickBest(scenarios []scenario, pending map[string][]grid.Cell, c conflict.Conflict, g *grid.Grid) scenario {
	type scored struct {
		s           scenario
		hasConflict bool
		totalLen    int
		serial      string
	}

	results := make([]scored, len(scenarios))
	for i, s := range scenarios {
		effective := copyAssignments(pending)
		applyScenario(effective, s)

		hasConflict := len(conflict.Detect(effective, g)) > 0
		totalLen := 0
		for _, a := range c.Involved {
			totalLen += len(effective[a])
		}

		results[i] = scored{s: s, hasConflict: hasConflict, totalLen: totalLen, serial: s.serialize()}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.hasConflict != b.hasConflict {
			return !a.hasConflict // false (no conflict) sorts first
		}
		if a.totalLen != b.totalLen {
			return a.totalLen < b.totalLen
		}
		return a.serial < b.serial
	})

	return results[0].s
}

// applyScenario overwrites pending's entries for every agent in s.
func applyScenario(pending map[string][]grid.Cell, s scenario) {
	for a, path := range s {
		pending[a] = path
	}
}

// copyAssignments returns a shallow copy of the assignments map (path
// slices themselves are treated as immutable once planned, so they are not
// deep-copied).
func copyAssignments(assignments map[string][]grid.Cell) map[string][]grid.Cell {
	out := make(map[string][]grid.Cell, len(assignments))
	for k, v := range assignments {
		out[k] = v
	}
	return out
}
