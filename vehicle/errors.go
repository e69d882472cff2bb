package vehicle

import "errors"

// ErrClosed is returned by AdvanceOneCell once the KinematicAgent has been
// closed.
var ErrClosed = errors.New("vehicle: agent is closed")
