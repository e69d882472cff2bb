package grid

import "errors"

// Sentinel errors for grid construction and lookup.
var (
	// ErrEmptyGrid indicates a grid was constructed with zero width or height.
	ErrEmptyGrid = errors.New("grid: width and height must both be at least 1")

	// ErrCellOutOfBounds indicates a cell coordinate lies outside [0,W)x[0,H).
	ErrCellOutOfBounds = errors.New("grid: cell out of bounds")
)
