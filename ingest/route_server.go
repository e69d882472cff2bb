package ingest

import (
	"context"
	"encoding/json"
	"net"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/supervisor"
)

// routeMessage is the wire shape accepted by RouteServer: agent ID to an
// ordered list of target cells.
type routeMessage map[string][]grid.Cell

// RouteServer accepts newline-delimited JSON route batches over TCP and
// forwards each to inbox as a supervisor.RouteBatch.
type RouteServer struct {
	listener net.Listener
	inbox    chan<- supervisor.RouteBatch
	logger   golog.Logger
}

// NewRouteServer binds addr and returns a RouteServer ready to Serve.
func NewRouteServer(addr string, inbox chan<- supervisor.RouteBatch, logger golog.Logger) (*RouteServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "ingest: listen for route server")
	}
	return &RouteServer{listener: listener, inbox: inbox, logger: logger}, nil
}

// Addr returns the server's bound address.
func (s *RouteServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until ctx is done or Close is called.
func (s *RouteServer) Serve(ctx context.Context) error {
	return acceptLoop(ctx, s.listener, s.logger, s.handleConn)
}

// Close stops accepting new connections.
func (s *RouteServer) Close() error {
	return s.listener.Close()
}

func (s *RouteServer) handleConn(ctx context.Context, conn net.Conn, requestID string) {
	dec := json.NewDecoder(conn)
	for {
		var msg routeMessage
		if err := dec.Decode(&msg); err != nil {
			if s.logger != nil {
				s.logger.Debugw("ingest: route connection closed", "requestID", requestID, "reason", err)
			}
			return
		}

		batch := supervisor.RouteBatch{Targets: map[string][]grid.Cell{}}
		for agentID, targets := range msg {
			if agentID == "" || len(targets) == 0 {
				if s.logger != nil {
					s.logger.Warnw("ingest: skipping malformed route entry", "requestID", requestID, "agentID", agentID)
				}
				continue
			}
			batch.Targets[agentID] = targets
		}

		select {
		case s.inbox <- batch:
		case <-ctx.Done():
			return
		}
	}
}
