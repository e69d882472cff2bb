package ingest_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/ingest"
	"github.com/augv-fleet/coordinator/supervisor"
)

func TestRouteServer_ForwardsWellFormedBatch(t *testing.T) {
	inbox := make(chan supervisor.RouteBatch, 1)
	srv, err := ingest.NewRouteServer("127.0.0.1:0", inbox, nil)
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	payload := map[string][]grid.Cell{"A": {{X: 1, Y: 2}, {X: 3, Y: 4}}}
	require.NoError(t, json.NewEncoder(conn).Encode(payload))

	select {
	case batch := <-inbox:
		assert.Equal(t, []grid.Cell{{X: 1, Y: 2}, {X: 3, Y: 4}}, batch.Targets["A"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for route batch")
	}
}

func TestRouteServer_SkipsMalformedEntry(t *testing.T) {
	inbox := make(chan supervisor.RouteBatch, 1)
	srv, err := ingest.NewRouteServer("127.0.0.1:0", inbox, nil)
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	payload := map[string][]grid.Cell{
		"A": {{X: 1, Y: 2}},
		"B": {}, // empty target list: malformed, must be skipped
	}
	require.NoError(t, json.NewEncoder(conn).Encode(payload))

	select {
	case batch := <-inbox:
		_, hasB := batch.Targets["B"]
		assert.False(t, hasB)
		assert.Contains(t, batch.Targets, "A")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for route batch")
	}
}

func TestObstacleServer_ForwardsReport(t *testing.T) {
	inbox := make(chan supervisor.ObstacleReport, 1)
	srv, err := ingest.NewObstacleServer("127.0.0.1:0", inbox, nil)
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, json.NewEncoder(conn).Encode(map[string]interface{}{
		"cell":    map[string]int{"X": 2, "Y": 3},
		"blocked": true,
	}))

	select {
	case report := <-inbox:
		assert.Equal(t, grid.Cell{X: 2, Y: 3}, report.Cell)
		assert.True(t, report.Blocked)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for obstacle report")
	}
}
