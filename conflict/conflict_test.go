package conflict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augv-fleet/coordinator/conflict"
	"github.com/augv-fleet/coordinator/grid"
)

func mustGrid(t *testing.T, w, h int, opts ...grid.GridOption) *grid.Grid {
	t.Helper()
	g, err := grid.NewGrid(w, h, opts...)
	require.NoError(t, err)
	return g
}

func TestDetect_VertexConflict(t *testing.T) {
	g := mustGrid(t, 5, 5)
	assignments := map[string][]grid.Cell{
		"A": {{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
		"B": {{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	}

	conflicts := conflict.Detect(assignments, g)
	require.Len(t, conflicts, 1)
	assert.Equal(t, conflict.Vertex, conflicts[0].Kind)
	assert.Equal(t, grid.Cell{X: 2, Y: 2}, conflicts[0].Cell)
	assert.Equal(t, 2, conflicts[0].Step)
	assert.Equal(t, []string{"A", "B"}, conflicts[0].Involved)
}

func TestDetect_SwapConflict(t *testing.T) {
	g := mustGrid(t, 3, 1)
	assignments := map[string][]grid.Cell{
		"A": {{X: 1, Y: 0}, {X: 2, Y: 0}},
		"B": {{X: 2, Y: 0}, {X: 1, Y: 0}},
	}

	conflicts := conflict.Detect(assignments, g)
	require.Len(t, conflicts, 2)
	for _, c := range conflicts {
		assert.Equal(t, conflict.Swap, c.Kind)
		assert.Equal(t, 1, c.Step)
		assert.Equal(t, []string{"A", "B"}, c.Involved)
	}
}

func TestDetect_WarehouseExclusion(t *testing.T) {
	anchor := grid.Cell{X: 2, Y: 2}
	g := mustGrid(t, 5, 5, grid.WithWarehouseAnchors(anchor))

	assignments := map[string][]grid.Cell{
		"dock":  {{X: 1, Y: 2}, {X: 2, Y: 2}},
		"other": {{X: 2, Y: 3}, {X: 3, Y: 3}},
	}

	conflicts := conflict.Detect(assignments, g)
	require.Len(t, conflicts, 1)
	assert.Equal(t, conflict.WarehouseExclusion, conflicts[0].Kind)
	assert.Equal(t, conflict.WarehouseStep, conflicts[0].Step)
	assert.Equal(t, []string{"dock", "other"}, conflicts[0].Involved)
	assert.Equal(t, grid.Cell{X: 2, Y: 3}, conflicts[0].Cell)
}

func TestDetect_NoConflictWhenPathsDisjoint(t *testing.T) {
	g := mustGrid(t, 5, 5)
	assignments := map[string][]grid.Cell{
		"A": {{X: 0, Y: 0}, {X: 1, Y: 0}},
		"B": {{X: 0, Y: 4}, {X: 1, Y: 4}},
	}

	assert.Empty(t, conflict.Detect(assignments, g))
}

func TestDetect_DeterministicOrdering(t *testing.T) {
	anchor := grid.Cell{X: 4, Y: 4}
	g := mustGrid(t, 5, 5, grid.WithWarehouseAnchors(anchor))

	assignments := map[string][]grid.Cell{
		"A": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		"B": {{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
		"C": {{X: 3, Y: 4}, {X: 4, Y: 4}},
	}

	first := conflict.Detect(assignments, g)
	for i := 0; i < 5; i++ {
		again := conflict.Detect(assignments, g)
		assert.Equal(t, first, again)
	}

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		lessOrEqual := prev.Step < cur.Step ||
			(prev.Step == cur.Step && prev.Cell.X < cur.Cell.X) ||
			(prev.Step == cur.Step && prev.Cell.X == cur.Cell.X && prev.Cell.Y <= cur.Cell.Y)
		assert.True(t, lessOrEqual, "conflicts must be sorted by (Step, Cell.X, Cell.Y, Kind)")
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Vertex", conflict.Vertex.String())
	assert.Equal(t, "Swap", conflict.Swap.String())
	assert.Equal(t, "WarehouseExclusion", conflict.WarehouseExclusion.String())
}
