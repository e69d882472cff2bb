// Package telemetry exposes read-only fleet state over HTTP and websocket:
// a point-in-time JSON snapshot at GET /state, and a push feed of the same
// shape at GET /ws for dashboards that want live updates without polling.
package telemetry
