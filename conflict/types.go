package conflict

import (
	"math"

	"github.com/augv-fleet/coordinator/grid"
)

// Kind identifies the class of a Conflict. The numeric ordering is the
// tie-break order used when two conflicts share (Step, Cell): Vertex before
// Swap before WarehouseExclusion.
type Kind int

const (
	// Vertex is two or more agents occupying the same cell at the same step.
	Vertex Kind = iota
	// Swap is two agents exchanging cells across a single step.
	Swap
	// WarehouseExclusion is an agent's path crossing another agent's
	// docking exclusion zone.
	WarehouseExclusion
)

// String renders a Kind for logging.
func (k Kind) String() string {
	switch k {
	case Vertex:
		return "Vertex"
	case Swap:
		return "Swap"
	case WarehouseExclusion:
		return "WarehouseExclusion"
	default:
		return "Unknown"
	}
}

// WarehouseStep is the sentinel step value used for WarehouseExclusion
// conflicts, which are not tied to any one step of the docking agent's path.
const WarehouseStep = math.MaxInt

// Conflict describes a single collision between two or more agents'
// committed paths.
type Conflict struct {
	Cell     grid.Cell
	Step     int
	Involved []string
	Kind     Kind
}
