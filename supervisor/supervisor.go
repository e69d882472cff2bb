package supervisor

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"

	"github.com/augv-fleet/coordinator/conflict"
	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/planner"
	"github.com/augv-fleet/coordinator/resolver"
)

// Supervisor owns the authoritative fleet state: agents, their committed
// ActivePaths, the lockstep phase, and dynamic-obstacle bookkeeping. All
// mutation happens on the goroutine calling Tick; external inputs cross
// into that goroutine only through RouteInbox and ObstacleInbox.
type Supervisor struct {
	g      *grid.Grid
	cfg    Config
	logger golog.Logger

	mu          sync.RWMutex
	agents      map[string]*Agent
	activePaths map[string][]grid.Cell
	phase       LockstepPhase
	stopped     bool

	globalStep int64

	lastObstacleReport map[grid.Cell]time.Time

	RouteInbox    chan RouteBatch
	ObstacleInbox chan ObstacleReport
}

// New constructs a Supervisor driving agents over g.
func New(g *grid.Grid, cfg Config, logger golog.Logger) *Supervisor {
	return &Supervisor{
		g:                  g,
		cfg:                cfg,
		logger:             logger,
		agents:             make(map[string]*Agent),
		activePaths:        make(map[string][]grid.Cell),
		lastObstacleReport: make(map[grid.Cell]time.Time),
		RouteInbox:         make(chan RouteBatch, 64),
		ObstacleInbox:      make(chan ObstacleReport, 256),
	}
}

// RegisterAgent adds a new agent at start, with no assigned Path. Returns
// ErrDuplicateAgent if id is already registered.
func (s *Supervisor) RegisterAgent(id string, start grid.Cell, handle AgentHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[id]; ok {
		return ErrDuplicateAgent
	}
	s.agents[id] = &Agent{ID: id, Position: start, State: Idle, handle: handle}
	return nil
}

// GlobalStep returns the current tick counter. Safe for concurrent callers
// (e.g. telemetry).
func (s *Supervisor) GlobalStep() int64 {
	return atomic.LoadInt64(&s.globalStep)
}

// ActivePaths returns a snapshot copy of the committed plan.
func (s *Supervisor) ActivePaths() map[string][]grid.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]grid.Cell, len(s.activePaths))
	for id, path := range s.activePaths {
		out[id] = append([]grid.Cell(nil), path...)
	}
	return out
}

// AgentSnapshot describes one agent's state for telemetry consumption.
type AgentSnapshot struct {
	ID       string
	Position grid.Cell
	State    AgentState
	Path     []grid.Cell
}

// Snapshot returns the current state of every agent, sorted by ID for
// reproducible output.
func (s *Supervisor) Snapshot() []AgentSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.agents))
	for id := range s.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]AgentSnapshot, 0, len(s.agents))
	for _, id := range ids {
		a := s.agents[id]
		out = append(out, AgentSnapshot{
			ID:       a.ID,
			Position: a.Position,
			State:    a.State,
			Path:     append([]grid.Cell(nil), a.Path...),
		})
	}
	return out
}

// StopAll transitions every agent to Blocked and marks the fleet stopped;
// subsequent Tick calls no-op until Resume.
func (s *Supervisor) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for _, a := range s.agents {
		a.State = Blocked
	}
}

// Resume clears StopAll's stopped flag. Agents remain Blocked until their
// next successful (re)plan.
func (s *Supervisor) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = false
}

// Tick runs one lockstep iteration: drain inboxes, assign idle agents,
// resolve conflicts, and advance ready agents concurrently, dropping each
// advanced agent's consumed first Path cell. There is no separate
// lockstep-phase gate, no nearest-cell trimming against the agent's
// position, and no waypoint hold: LockstepPhase and
// Config.WaypointHoldTime are not consulted. Returns early (no-op) if
// StopAll is in effect.
func (s *Supervisor) Tick(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "supervisor.Tick")
	defer span.End()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.drainRouteInbox()
	s.drainObstacleInbox()

	s.assignIdleAgents()

	if err := s.resolveConflicts(ctx); err != nil {
		if s.logger != nil {
			s.logger.Warnw("supervisor: conflict resolution did not fully converge this tick", "error", err)
		}
	}

	if err := s.advanceReadyAgents(ctx); err != nil {
		return err
	}

	atomic.AddInt64(&s.globalStep, 1)
	return nil
}

// drainRouteInbox appends every queued RouteBatch's targets onto the named
// agents' waypoint queues. Targets naming an unknown agent are skipped and
// logged, not fatal (mirrors the skip-unknown-and-log ingestion contract).
func (s *Supervisor) drainRouteInbox() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case batch := <-s.RouteInbox:
			for id, targets := range batch.Targets {
				a, ok := s.agents[id]
				if !ok {
					if s.logger != nil {
						s.logger.Warnw("supervisor: route batch names unknown agent, skipping", "agentID", id)
					}
					continue
				}
				a.Waypoints = append(a.Waypoints, targets...)
			}
		default:
			return
		}
	}
}

// drainObstacleInbox applies every queued ObstacleReport to the Grid,
// subject to a sticky debounce: a report for a cell reported within
// ObstacleDebounce of the last accepted report for that same cell is
// dropped, not merely delayed.
func (s *Supervisor) drainObstacleInbox() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case report := <-s.ObstacleInbox:
			now := time.Now()
			if last, seen := s.lastObstacleReport[report.Cell]; seen && now.Sub(last) < s.cfg.ObstacleDebounce {
				continue
			}
			s.lastObstacleReport[report.Cell] = now
			s.g.SetWalkable(report.Cell, !report.Blocked)
		default:
			return
		}
	}
}

// assignIdleAgents plans a Path for every Idle agent with a pending
// waypoint, treating every other agent's current cell as blocked; exact
// conflict elimination is left to resolveConflicts.
func (s *Supervisor) assignIdleAgents() {
	s.mu.Lock()
	defer s.mu.Unlock()

	plannerOpts := []planner.Option{planner.WithMaxExpansions(s.cfg.PlannerMaxExpansions)}
	if s.logger != nil {
		plannerOpts = append(plannerOpts, planner.WithLogger(s.logger))
	}

	for _, a := range s.agents {
		// WaitingAtTarget agents with a further waypoint queued are
		// eligible too: holding at a reached target is only meaningful
		// while there is nowhere further to go. Blocked agents are eligible
		// once Resume has run, so a successful plan takes them out of Blocked.
		if (a.State != Idle && a.State != WaitingAtTarget && a.State != Blocked) || len(a.Waypoints) == 0 {
			continue
		}

		occupied := make(map[grid.Cell]struct{}, len(s.agents))
		for _, other := range s.agents {
			if other.ID != a.ID {
				occupied[other.Position] = struct{}{}
			}
		}

		goal := a.Waypoints[0]
		path, err := planner.FindPath(s.g, a.Position, goal, occupied, plannerOpts...)
		if err != nil {
			if s.logger != nil {
				s.logger.Warnw("supervisor: planning failed for idle agent", "agentID", a.ID, "error", err)
			}
			continue
		}

		a.Waypoints = a.Waypoints[1:]
		a.Path = path
		s.activePaths[a.ID] = path

		if len(path) == 1 {
			// Already at goal (e.g. a waypoint equal to current position):
			// nothing to advance toward, so skip the lockstep gate entirely.
			a.State = WaitingAtTarget
		} else {
			a.State = WaitingForStep
		}
	}
}

// resolveConflicts recomputes conflicts over the committed ActivePaths and,
// if any exist, runs resolver.Resolve to repair them, writing the outcome
// back into both ActivePaths and each affected agent's Path.
func (s *Supervisor) resolveConflicts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := conflict.Detect(s.activePaths, s.g)
	if len(cs) == 0 {
		return nil
	}

	resolverOpts := []resolver.Option{
		resolver.WithMaxDepth(s.cfg.ResolverMaxDepth),
		resolver.WithScenarioSafetyBound(s.cfg.ResolverScenarioSafetyBound),
		resolver.WithPlannerOptions(planner.WithMaxExpansions(s.cfg.PlannerMaxExpansions)),
	}
	if s.logger != nil {
		resolverOpts = append(resolverOpts, resolver.WithLogger(s.logger))
	}

	resolved, err := resolver.Resolve(ctx, s.g, s.activePaths, cs, resolverOpts...)
	s.activePaths = resolved
	for id, path := range resolved {
		if a, ok := s.agents[id]; ok {
			a.Path = path
		}
	}
	return err
}

// advanceReadyAgents fans out one AdvanceOneCell call per ready agent
// (WaitingForStep with at least one more cell ahead) via an errgroup, waits
// for all to complete, then updates position/path state and waypoint
// completion for each.
func (s *Supervisor) advanceReadyAgents(ctx context.Context) error {
	s.mu.Lock()
	type readyAgent struct {
		id   string
		path []grid.Cell
	}
	var ready []readyAgent
	for id, a := range s.agents {
		if a.State == WaitingForStep && len(a.Path) > 1 {
			ready = append(ready, readyAgent{id: id, path: a.Path})
			a.State = Moving
		}
	}
	s.mu.Unlock()

	if len(ready) == 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, r := range ready {
		r := r
		handle := s.agentHandle(r.id)
		group.Go(func() error {
			if handle == nil {
				return nil
			}
			return handle.AdvanceOneCell(groupCtx)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range ready {
		a, ok := s.agents[r.id]
		if !ok {
			continue
		}
		a.Position = a.Path[1]
		a.Path = a.Path[1:]
		s.activePaths[a.ID] = a.Path

		if len(a.Path) == 1 {
			if len(a.Waypoints) > 0 {
				a.State = Idle
			} else {
				a.State = WaitingAtTarget
			}
		} else {
			a.State = WaitingForStep
		}
	}

	return nil
}

func (s *Supervisor) agentHandle(id string) AgentHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.agents[id]; ok {
		return a.handle
	}
	return nil
}
