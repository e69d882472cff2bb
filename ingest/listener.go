package ingest

import (
	"context"
	"net"

	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// acceptLoop runs the standard accept-and-dispatch pattern shared by
// RouteServer and ObstacleServer: accept connections until the listener is
// closed, spawn one panic-capturing goroutine per connection tagged with a
// uuid for log correlation, and invoke handle for each.
func acceptLoop(ctx context.Context, listener net.Listener, logger golog.Logger, handle func(ctx context.Context, conn net.Conn, requestID string)) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return ErrServerClosed
			default:
			}
			if isClosedError(err) {
				return ErrServerClosed
			}
			return errors.Wrap(err, "ingest: accept failed")
		}

		requestID := uuid.NewString()
		utils.PanicCapturingGo(func() {
			defer conn.Close()
			handle(ctx, conn, requestID)
		})
	}
}

func isClosedError(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
