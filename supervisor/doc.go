// Package supervisor is the orchestration core: it owns agents, their
// waypoint queues, the committed ActivePaths, and the lockstep tick phase.
// Tick drains ingestion inboxes, assigns paths to idle agents, resolves
// conflicts, and advances every ready agent by one cell concurrently,
// dropping the cell each advanced agent has left from the front of its
// Path — driving the whole fleet forward one synchronized step at a time.
//
// Concurrency model: single-threaded cooperative. One caller drives Tick;
// everything inside one Tick call runs on that caller's goroutine except
// the per-agent AdvanceOneCell fan-out, which runs concurrently via
// errgroup and is joined before Tick returns. External inputs arrive only
// through RouteInbox/ObstacleInbox, never by direct field mutation.
package supervisor
