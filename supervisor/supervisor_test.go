package supervisor_test

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/supervisor"
)

// instantHandle satisfies supervisor.AgentHandle by completing immediately.
type instantHandle struct{}

func (instantHandle) AdvanceOneCell(ctx context.Context) error { return nil }

func mustGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.NewGrid(w, h)
	require.NoError(t, err)
	return g
}

func TestSupervisor_SingleAgentReachesWaypoint(t *testing.T) {
	g := mustGrid(t, 5, 1)
	sup := supervisor.New(g, supervisor.DefaultConfig(), golog.NewTestLogger(t))

	require.NoError(t, sup.RegisterAgent("A", grid.Cell{X: 0, Y: 0}, instantHandle{}))
	sup.RouteInbox <- supervisor.RouteBatch{
		Targets: map[string][]grid.Cell{"A": {{X: 4, Y: 0}}},
	}

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, sup.Tick(ctx))
	}

	snap := sup.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, grid.Cell{X: 4, Y: 0}, snap[0].Position)
	assert.Equal(t, supervisor.WaitingAtTarget, snap[0].State)
}

func TestSupervisor_RegisterAgent_RejectsDuplicate(t *testing.T) {
	g := mustGrid(t, 3, 3)
	sup := supervisor.New(g, supervisor.DefaultConfig(), nil)

	require.NoError(t, sup.RegisterAgent("A", grid.Cell{X: 0, Y: 0}, instantHandle{}))
	err := sup.RegisterAgent("A", grid.Cell{X: 1, Y: 1}, instantHandle{})
	assert.ErrorIs(t, err, supervisor.ErrDuplicateAgent)
}

func TestSupervisor_UnknownAgentInRouteBatchIsSkipped(t *testing.T) {
	g := mustGrid(t, 3, 3)
	sup := supervisor.New(g, supervisor.DefaultConfig(), golog.NewTestLogger(t))

	require.NoError(t, sup.RegisterAgent("A", grid.Cell{X: 0, Y: 0}, instantHandle{}))
	sup.RouteInbox <- supervisor.RouteBatch{
		Targets: map[string][]grid.Cell{"ghost": {{X: 2, Y: 2}}},
	}

	assert.NotPanics(t, func() {
		require.NoError(t, sup.Tick(context.Background()))
	})
}

func TestSupervisor_StopAllBlocksAgents(t *testing.T) {
	g := mustGrid(t, 5, 1)
	sup := supervisor.New(g, supervisor.DefaultConfig(), nil)
	require.NoError(t, sup.RegisterAgent("A", grid.Cell{X: 0, Y: 0}, instantHandle{}))

	sup.RouteInbox <- supervisor.RouteBatch{
		Targets: map[string][]grid.Cell{"A": {{X: 4, Y: 0}}},
	}
	require.NoError(t, sup.Tick(context.Background()))

	sup.StopAll()
	before := sup.GlobalStep()
	require.NoError(t, sup.Tick(context.Background()))
	assert.Equal(t, before, sup.GlobalStep(), "ticks after StopAll must no-op")

	snap := sup.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, supervisor.Blocked, snap[0].State)
}

func TestSupervisor_TwoAgentsResolveVertexConflict(t *testing.T) {
	g := mustGrid(t, 5, 5)
	sup := supervisor.New(g, supervisor.DefaultConfig(), golog.NewTestLogger(t))

	require.NoError(t, sup.RegisterAgent("A", grid.Cell{X: 0, Y: 2}, instantHandle{}))
	require.NoError(t, sup.RegisterAgent("B", grid.Cell{X: 2, Y: 0}, instantHandle{}))

	sup.RouteInbox <- supervisor.RouteBatch{
		Targets: map[string][]grid.Cell{
			"A": {{X: 4, Y: 2}},
			"B": {{X: 2, Y: 4}},
		},
	}

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		require.NoError(t, sup.Tick(ctx))
	}

	snap := sup.Snapshot()
	require.Len(t, snap, 2)
	for _, s := range snap {
		assert.Equal(t, supervisor.WaitingAtTarget, s.State)
	}
}
