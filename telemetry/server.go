package telemetry

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/edaniels/golog"
	"github.com/gorilla/mux"

	"github.com/augv-fleet/coordinator/supervisor"
)

// Options configures a Server.
type Options struct {
	Logger          golog.Logger
	PublishInterval time.Duration
}

// Option configures telemetry Server construction.
type Option func(*Options)

// WithLogger sets the logger used for connection and write-failure events.
func WithLogger(l golog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithPublishInterval overrides how often GET /ws pushes a fresh snapshot.
func WithPublishInterval(d time.Duration) Option {
	return func(o *Options) { o.PublishInterval = d }
}

// DefaultOptions returns the zero-value-safe defaults applied by NewServer.
func DefaultOptions() Options {
	return Options{PublishInterval: DefaultPublishInterval}
}

// Server exposes a supervisor's state read-only over HTTP and websocket.
// It holds no fleet state of its own; every request reads through to the
// live supervisor.
type Server struct {
	sup    *supervisor.Supervisor
	opts   Options
	router *mux.Router
}

// NewServer wires a mux.Router with GET /state and GET /ws backed by sup.
func NewServer(sup *supervisor.Supervisor, opts ...Option) *Server {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{sup: sup, opts: o, router: mux.NewRouter()}
	s.router.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)
	return s
}

// Router returns the http.Handler to mount, e.g. via http.ListenAndServe.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(collect(s.sup)); err != nil {
		if s.opts.Logger != nil {
			s.opts.Logger.Warnw("telemetry: failed to encode state response", "error", err)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.opts.Logger != nil {
			s.opts.Logger.Warnw("telemetry: websocket upgrade failed", "error", err)
		}
		return
	}

	client := newWSClient(conn, s.opts.Logger, s.opts.PublishInterval)
	fetch := func() StateSnapshot { return collect(s.sup) }
	if err := client.run(r.Context(), fetch); err != nil && s.opts.Logger != nil {
		s.opts.Logger.Debugw("telemetry: websocket client disconnected", "reason", err)
	}
}
