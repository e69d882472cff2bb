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

// obstacleMessage is the wire shape accepted by ObstacleServer: one
// dynamic-obstacle observation.
type obstacleMessage struct {
	Cell    grid.Cell `json:"cell"`
	Blocked bool      `json:"blocked"`
}

// ObstacleServer accepts newline-delimited JSON obstacle reports over TCP
// and forwards each to inbox as a supervisor.ObstacleReport.
type ObstacleServer struct {
	listener net.Listener
	inbox    chan<- supervisor.ObstacleReport
	logger   golog.Logger
}

// NewObstacleServer binds addr and returns an ObstacleServer ready to Serve.
func NewObstacleServer(addr string, inbox chan<- supervisor.ObstacleReport, logger golog.Logger) (*ObstacleServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "ingest: listen for obstacle server")
	}
	return &ObstacleServer{listener: listener, inbox: inbox, logger: logger}, nil
}

// Addr returns the server's bound address.
func (s *ObstacleServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until ctx is done or Close is called.
func (s *ObstacleServer) Serve(ctx context.Context) error {
	return acceptLoop(ctx, s.listener, s.logger, s.handleConn)
}

// Close stops accepting new connections.
func (s *ObstacleServer) Close() error {
	return s.listener.Close()
}

func (s *ObstacleServer) handleConn(ctx context.Context, conn net.Conn, requestID string) {
	dec := json.NewDecoder(conn)
	for {
		var msg obstacleMessage
		if err := dec.Decode(&msg); err != nil {
			if s.logger != nil {
				s.logger.Debugw("ingest: obstacle connection closed", "requestID", requestID, "reason", err)
			}
			return
		}

		select {
		case s.inbox <- supervisor.ObstacleReport{Cell: msg.Cell, Blocked: msg.Blocked}:
		case <-ctx.Done():
			return
		}
	}
}
