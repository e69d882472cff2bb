package resolver

import (
	"fmt"

	"github.com/augv-fleet/coordinator/conflict"
	"github.com/augv-fleet/coordinator/grid"
)

// ExhaustedError is returned when Resolve hits its recursion-depth cap with
// conflicts still unresolved. Unlike planner/conflict's plain sentinel
// errors, ExhaustedError carries the best assignments found so far: the
// spec's degrade-to-"unchanged assignments + flag" contract means the
// caller still needs usable data, not just a failure signal.
type ExhaustedError struct {
	// Assignments is the best assignment set found before the depth cap
	// was hit. Callers should use this, not discard it.
	Assignments map[string][]grid.Cell
	// Residual lists the conflicts still present in Assignments.
	Residual []conflict.Conflict
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("resolver: resolution exhausted at depth cap with %d residual conflict(s)", len(e.Residual))
}
