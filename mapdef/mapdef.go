package mapdef

import (
	"fmt"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/internal/cellgraph"
)

// Symbol classifies one legend rune.
type Symbol int

const (
	// SymbolWalkable marks a plain walkable cell.
	SymbolWalkable Symbol = iota
	// SymbolBlocked marks a non-walkable cell.
	SymbolBlocked
	// SymbolWarehouseAnchor marks a walkable cell that is also a warehouse
	// docking anchor.
	SymbolWarehouseAnchor
)

// DefaultLegend is the legend FromASCII uses absent WithLegend: '.' is
// walkable, '#' is blocked, 'W' is a walkable warehouse anchor.
func DefaultLegend() map[rune]Symbol {
	return map[rune]Symbol{
		'.': SymbolWalkable,
		'#': SymbolBlocked,
		'W': SymbolWarehouseAnchor,
	}
}

// Options configures FromASCII.
type Options struct {
	legend                map[rune]Symbol
	skipConnectivityCheck bool
}

// Option is a functional option for FromASCII.
type Option func(*Options)

// WithLegend overrides DefaultLegend.
func WithLegend(legend map[rune]Symbol) Option {
	return func(o *Options) {
		o.legend = legend
	}
}

// WithoutConnectivityCheck disables the warehouse-anchor reachability
// validation FromASCII otherwise performs.
func WithoutConnectivityCheck() Option {
	return func(o *Options) {
		o.skipConnectivityCheck = true
	}
}

// FromASCII builds a *grid.Grid from rows of equal-length legend symbols.
// Row 0 is Y=0; column 0 is X=0. Every warehouse-anchor cell must be
// reachable, via 4-connected walkable moves, from the first anchor in
// row-major order, so all anchors share one connected walkable region.
// Walkable cells without an anchor are not checked: they may lie in a
// separate region. Disable with WithoutConnectivityCheck for maps assembled
// incrementally (e.g. before dynamic obstacles are known).
func FromASCII(rows []string, opts ...Option) (*grid.Grid, error) {
	o := &Options{legend: DefaultLegend()}
	for _, opt := range opts {
		opt(o)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	width := len(rows[0])
	if width == 0 {
		return nil, ErrNoRows
	}
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedRows
		}
	}
	height := len(rows)

	var anchors []grid.Cell
	symbols := make([][]Symbol, height)
	for y, row := range rows {
		symbols[y] = make([]Symbol, width)
		for x, r := range row {
			sym, ok := o.legend[r]
			if !ok {
				return nil, fmt.Errorf("mapdef: row %d col %d (%q): %w", y, x, r, ErrUnknownSymbol)
			}
			symbols[y][x] = sym
			if sym == SymbolWarehouseAnchor {
				anchors = append(anchors, grid.Cell{X: x, Y: y})
			}
		}
	}

	g, err := grid.NewGrid(width, height, grid.WithWarehouseAnchors(anchors...))
	if err != nil {
		return nil, err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if symbols[y][x] == SymbolBlocked {
				g.SetWalkable(grid.Cell{X: x, Y: y}, false)
			}
		}
	}

	if !o.skipConnectivityCheck && len(anchors) > 0 {
		reachable := cellgraph.Reachable(g, anchors[0])
		for _, a := range anchors[1:] {
			if !reachable[a] {
				return nil, ErrDisconnectedAnchor
			}
		}
	}

	return g, nil
}
