package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// pongWait is the time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient publishes a single consumer's worth of StateSnapshot updates to
// one connected websocket peer. One client is created per accepted
// connection; fan-out to multiple dashboards is one client per connection,
// each polling the same supervisor independently.
type wsClient struct {
	conn     *websocket.Conn
	interval time.Duration
	logger   golog.Logger
}

func newWSClient(conn *websocket.Conn, logger golog.Logger, interval time.Duration) *wsClient {
	return &wsClient{conn: conn, interval: interval, logger: logger}
}

// run drives the read pump (liveness only, discards payloads), the ping
// ticker, and the snapshot publisher concurrently. It returns when the peer
// disconnects, the context is cancelled, or a write fails.
func (c *wsClient) run(ctx context.Context, fetch func() StateSnapshot) error {
	group, groupCtx := errgroup.WithContext(ctx)

	pong := make(chan struct{}, 1)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	group.Go(func() error {
		return c.readPump(groupCtx)
	})
	group.Go(func() error {
		return c.pingPump(groupCtx, pong)
	})
	group.Go(func() error {
		return c.publishPump(groupCtx, fetch)
	})

	err := group.Wait()
	_ = c.conn.Close()
	return err
}

// readPump discharges the gorilla/websocket requirement that Read methods
// must be called in a loop for control frames (pong) to be dispatched. The
// protocol is push-only, so any payload received is ignored.
func (c *wsClient) readPump(ctx context.Context) error {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (c *wsClient) pingPump(ctx context.Context, pong <-chan struct{}) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pong:
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("telemetry: ping failed: %w", err)
			}
		}
	}
}

func (c *wsClient) publishPump(ctx context.Context, fetch func() StateSnapshot) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("telemetry: set write deadline: %w", err)
			}
			if err := c.conn.WriteJSON(fetch()); err != nil {
				if isUnexpectedClose(err) {
					if c.logger != nil {
						c.logger.Warnw("telemetry: websocket write failed", "error", err)
					}
				}
				return err
			}
		}
	}
}

func isUnexpectedClose(err error) bool {
	return websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
