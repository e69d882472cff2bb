package supervisor

import (
	"context"
	"time"

	"github.com/augv-fleet/coordinator/grid"
)

// AgentState is the lifecycle state of one agent within a tick.
type AgentState int

const (
	// Idle means the agent has no assigned Path and is waiting for a
	// waypoint.
	Idle AgentState = iota
	// WaitingForStep means the agent has a Path but the lockstep gate
	// has not yet opened this tick.
	WaitingForStep
	// Moving means the agent's AdvanceOneCell call is in flight.
	Moving
	// WaitingAtTarget means the agent reached its current waypoint and is
	// holding before the next waypoint is popped.
	WaitingAtTarget
	// Blocked means StopAll was called: the agent is excluded from
	// advancing until, after Resume, a new plan is assigned to it.
	// Unresolved conflicts do not put an agent in this state.
	Blocked
)

// String renders an AgentState for logging.
func (s AgentState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case WaitingForStep:
		return "WaitingForStep"
	case Moving:
		return "Moving"
	case WaitingAtTarget:
		return "WaitingAtTarget"
	case Blocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// AgentHandle is the contract the Supervisor consumes to move a vehicle one
// cell at a time. vehicle.KinematicAgent is the one concrete implementation
// shipped with this module.
type AgentHandle interface {
	// AdvanceOneCell blocks until the vehicle has physically transited one
	// grid cell, or ctx is done first.
	AdvanceOneCell(ctx context.Context) error
}

// Agent is one AGV under the Supervisor's control.
type Agent struct {
	ID       string
	Position grid.Cell
	Waypoints []grid.Cell // FIFO queue of remaining targets
	Path     []grid.Cell
	State    AgentState

	handle AgentHandle
}

// LockstepPhase identifies where the fleet sits in one tick's gate.
type LockstepPhase int

const (
	// CollectingReady means the Supervisor is waiting for agents to
	// reach WaitingForStep before advancing.
	CollectingReady LockstepPhase = iota
	// AllReadyAdvance means every ready agent may advance this tick.
	AllReadyAdvance
)

// RouteBatch is one ingested route assignment: for each agent ID, the
// ordered waypoints to append to its queue.
type RouteBatch struct {
	Targets map[string][]grid.Cell
}

// ObstacleReport is one ingested dynamic-obstacle observation.
type ObstacleReport struct {
	Cell    grid.Cell
	Blocked bool
}

// Config holds the tunables a deployment loads via viper (see
// LoadConfig).
type Config struct {
	PlannerMaxExpansions        int           `mapstructure:"planner_max_expansions"`
	ResolverMaxDepth            int           `mapstructure:"resolver_max_depth"`
	ResolverScenarioSafetyBound int           `mapstructure:"resolver_scenario_safety_bound"`
	ObstacleDebounce            time.Duration `mapstructure:"obstacle_debounce"`
	WaypointHoldTime            time.Duration `mapstructure:"waypoint_hold_time"`
}

// DefaultConfig returns the Config used absent an on-disk override.
func DefaultConfig() Config {
	return Config{
		PlannerMaxExpansions:        10000,
		ResolverMaxDepth:            30,
		ResolverScenarioSafetyBound: 4096,
		ObstacleDebounce:            500 * time.Millisecond,
		WaypointHoldTime:            0,
	}
}
