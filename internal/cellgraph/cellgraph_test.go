package cellgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/internal/cellgraph"
)

func TestReachable_ExcludesBlockedIslands(t *testing.T) {
	g, err := grid.NewGrid(3, 1)
	require.NoError(t, err)
	g.SetWalkable(grid.Cell{X: 1, Y: 0}, false)

	reachable := cellgraph.Reachable(g, grid.Cell{X: 0, Y: 0})
	assert.True(t, reachable[grid.Cell{X: 0, Y: 0}])
	assert.False(t, reachable[grid.Cell{X: 2, Y: 0}])
}

func TestReachable_StartNotWalkableIsEmpty(t *testing.T) {
	g, err := grid.NewGrid(2, 2)
	require.NoError(t, err)
	start := grid.Cell{X: 0, Y: 0}
	g.SetWalkable(start, false)

	assert.Empty(t, cellgraph.Reachable(g, start))
}
