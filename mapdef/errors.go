package mapdef

import "errors"

// Sentinel errors returned by FromASCII.
var (
	// ErrNoRows indicates an empty row list was supplied.
	ErrNoRows = errors.New("mapdef: at least one row is required")

	// ErrRaggedRows indicates the supplied rows are not all the same width.
	ErrRaggedRows = errors.New("mapdef: all rows must have equal width")

	// ErrUnknownSymbol indicates a rune in a row has no legend entry.
	ErrUnknownSymbol = errors.New("mapdef: symbol not present in legend")

	// ErrDisconnectedAnchor indicates a warehouse anchor cell is not
	// reachable from the map's first warehouse anchor.
	ErrDisconnectedAnchor = errors.New("mapdef: warehouse anchor is disconnected from the walkable area")
)
