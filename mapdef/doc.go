// Package mapdef turns a static map description into a *grid.Grid ready for
// the Supervisor to plan against. FromASCII is the primary entry point: it
// reads one rune per cell from a list of equal-length rows using a legend
// (default: '.' walkable, '#' blocked, 'W' walkable warehouse anchor).
//
// mapdef is intentionally thin — the spec treats map-layout generation as an
// external collaborator, not core logic — but it still validates its input
// deterministically and in the teacher's row-major, sentinel-error idiom.
package mapdef
