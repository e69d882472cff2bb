package grid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augv-fleet/coordinator/grid"
)

func TestNewGrid_RejectsEmptyDimensions(t *testing.T) {
	_, err := grid.NewGrid(0, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grid.ErrEmptyGrid))

	_, err = grid.NewGrid(5, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grid.ErrEmptyGrid))
}

func TestNewGrid_DefaultsWalkableWithDefaultCost(t *testing.T) {
	g, err := grid.NewGrid(3, 3)
	require.NoError(t, err)

	c := grid.Cell{X: 1, Y: 1}
	assert.True(t, g.Walkable(c))
	assert.Equal(t, grid.DefaultTraversalCost, g.TraversalCost(c))
}

func TestNewGrid_WithAllBlocked(t *testing.T) {
	g, err := grid.NewGrid(2, 2, grid.WithAllBlocked())
	require.NoError(t, err)

	assert.False(t, g.Walkable(grid.Cell{X: 0, Y: 0}))
	assert.False(t, g.Walkable(grid.Cell{X: 1, Y: 1}))
}

func TestCellAt_ClampsOutOfBounds(t *testing.T) {
	g, err := grid.NewGrid(4, 4)
	require.NoError(t, err)

	assert.Equal(t, grid.Cell{X: 0, Y: 0}, g.CellAt(-5, -5))
	assert.Equal(t, grid.Cell{X: 3, Y: 3}, g.CellAt(100, 100))
	assert.Equal(t, grid.Cell{X: 2, Y: 1}, g.CellAt(2.9, 1.4))
}

func TestNeighbours_FixedOrderAndClipped(t *testing.T) {
	g, err := grid.NewGrid(3, 3)
	require.NoError(t, err)

	// Interior cell: all 4 neighbours, North-East-South-West order.
	got := g.Neighbours(grid.Cell{X: 1, Y: 1})
	require.Len(t, got, 4)
	assert.Equal(t, []grid.Cell{
		{X: 1, Y: 0}, // North
		{X: 2, Y: 1}, // East
		{X: 1, Y: 2}, // South
		{X: 0, Y: 1}, // West
	}, got)

	// Corner cell: only in-bounds neighbours survive.
	corner := g.Neighbours(grid.Cell{X: 0, Y: 0})
	assert.Equal(t, []grid.Cell{
		{X: 1, Y: 0}, // East
		{X: 0, Y: 1}, // South
	}, corner)
}

func TestSetWalkable_OutOfBoundsIsNoop(t *testing.T) {
	g, err := grid.NewGrid(2, 2)
	require.NoError(t, err)

	g.SetWalkable(grid.Cell{X: 10, Y: 10}, false)
	assert.False(t, g.InBounds(grid.Cell{X: 10, Y: 10}))
}

func TestSetTraversalCost_RejectsNonPositive(t *testing.T) {
	g, err := grid.NewGrid(2, 2)
	require.NoError(t, err)

	c := grid.Cell{X: 0, Y: 0}
	g.SetTraversalCost(c, 5)
	assert.Equal(t, 5, g.TraversalCost(c))

	g.SetTraversalCost(c, 0)
	assert.Equal(t, 5, g.TraversalCost(c), "non-positive cost must be rejected")
}

func TestWithTemporaryBlocks_RestoresPriorState(t *testing.T) {
	g, err := grid.NewGrid(3, 3)
	require.NoError(t, err)

	blockedBefore := grid.Cell{X: 0, Y: 0}
	g.SetWalkable(blockedBefore, false)
	walkableBefore := grid.Cell{X: 1, Y: 1}

	var sawBlocked, sawWalkable bool
	err = g.WithTemporaryBlocks([]grid.Cell{blockedBefore, walkableBefore}, func() error {
		sawBlocked = !g.Walkable(blockedBefore)
		sawWalkable = !g.Walkable(walkableBefore)
		return nil
	})
	require.NoError(t, err)

	assert.True(t, sawBlocked, "already-blocked cell must stay blocked during fn")
	assert.True(t, sawWalkable, "temporarily blocked cell must be blocked during fn")

	assert.False(t, g.Walkable(blockedBefore), "prior non-walkable state must be restored")
	assert.True(t, g.Walkable(walkableBefore), "prior walkable state must be restored")
}

func TestWithTemporaryBlocks_RestoresOnError(t *testing.T) {
	g, err := grid.NewGrid(2, 2)
	require.NoError(t, err)

	c := grid.Cell{X: 0, Y: 0}
	boom := errors.New("boom")

	err = g.WithTemporaryBlocks([]grid.Cell{c}, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, g.Walkable(c), "restoration must happen even when fn errors")
}

func TestWarehouseBox_ChebyshevNeighbourhoodClippedAndWalkableOnly(t *testing.T) {
	anchor := grid.Cell{X: 0, Y: 0}
	g, err := grid.NewGrid(3, 3, grid.WithWarehouseAnchors(anchor))
	require.NoError(t, err)

	assert.True(t, g.IsWarehouseAnchor(anchor))
	assert.False(t, g.IsWarehouseAnchor(grid.Cell{X: 2, Y: 2}))

	g.SetWalkable(grid.Cell{X: 1, Y: 1}, false)

	box := g.WarehouseBox(anchor)
	for _, c := range box {
		assert.LessOrEqual(t, anchor.ChebyshevDistance(c), 1)
	}
	assert.NotContains(t, box, grid.Cell{X: 1, Y: 1}, "non-walkable cells must be excluded")
	assert.Contains(t, box, anchor)
}

func TestWarehouseBox_NonAnchorReturnsNil(t *testing.T) {
	g, err := grid.NewGrid(3, 3)
	require.NoError(t, err)

	assert.Nil(t, g.WarehouseBox(grid.Cell{X: 1, Y: 1}))
}
