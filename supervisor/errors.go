package supervisor

import "errors"

// Sentinel errors of the supervisor package. RegisterAgent returns
// ErrDuplicateAgent; no Supervisor method returns ErrUnknownAgent or
// ErrStopped (unknown agents in a route batch are logged and skipped, and
// Tick after StopAll returns nil without doing anything).
var (
	// ErrUnknownAgent indicates an operation named an agent ID the
	// Supervisor has no record of.
	ErrUnknownAgent = errors.New("supervisor: unknown agent")

	// ErrDuplicateAgent indicates RegisterAgent was called twice for the
	// same ID.
	ErrDuplicateAgent = errors.New("supervisor: agent already registered")

	// ErrStopped names the condition of a fleet stopped by StopAll and not
	// yet resumed.
	ErrStopped = errors.New("supervisor: fleet is stopped")
)
