// Package ingest receives fleet inputs from the outside world over plain
// TCP, newline-delimited JSON connections, and forwards them into a
// supervisor.Supervisor's inboxes. RouteServer accepts per-agent waypoint
// batches; ObstacleServer accepts dynamic-obstacle reports. RouteServer
// skips malformed individual entries (an empty agent ID or an empty target
// list), logging a warning, and forwards the rest of the batch, mirroring
// the original socket-based route loader's skip-and-log behavior. On both
// servers, a message that does not decode as JSON ends its connection.
package ingest
