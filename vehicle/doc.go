// Package vehicle provides KinematicAgent, the one concrete implementation
// of supervisor.AgentHandle shipped with this module: a simulated AGV that
// spends a configurable duration transiting one grid cell, as a cancellable
// background task, and reports completion back to the caller.
//
// A real deployment would replace KinematicAgent with a handle bound to
// motor controllers and odometry; KinematicAgent exists so the Supervisor
// can be driven and tested without real hardware.
package vehicle
