package ingest

import "github.com/pkg/errors"

// ErrServerClosed is returned by Serve after Close has been called.
var ErrServerClosed = errors.New("ingest: server closed")
