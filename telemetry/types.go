package telemetry

import (
	"time"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/supervisor"
)

// DefaultPublishInterval is how often the websocket feed pushes a fresh
// snapshot to a connected client.
const DefaultPublishInterval = 250 * time.Millisecond

// StateSnapshot is the wire shape served at GET /state and pushed over
// GET /ws. It mirrors supervisor.Snapshot/ActivePaths/GlobalStep verbatim
// so the two endpoints never disagree.
type StateSnapshot struct {
	GlobalStep  int64                      `json:"global_step"`
	Agents      []supervisor.AgentSnapshot `json:"agents"`
	ActivePaths map[string][]grid.Cell     `json:"active_paths"`
}

// collect reads the current fleet state off sup into a StateSnapshot.
func collect(sup *supervisor.Supervisor) StateSnapshot {
	return StateSnapshot{
		GlobalStep:  sup.GlobalStep(),
		Agents:      sup.Snapshot(),
		ActivePaths: sup.ActivePaths(),
	}
}
