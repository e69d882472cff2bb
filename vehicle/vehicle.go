package vehicle

import (
	"context"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/utils"
)

// DefaultStepDuration is how long AdvanceOneCell takes to simulate a single
// cell transit absent an override.
const DefaultStepDuration = 250 * time.Millisecond

// KinematicAgent simulates one AGV's single-cell transits as cancellable
// background work, in the shutdown idiom of go.viam.com/utils.ManagedGo:
// a CancelCtx/cancelFunc pair and a WaitGroup tracking outstanding workers,
// joined on Close.
type KinematicAgent struct {
	ID string

	logger       golog.Logger
	stepDuration time.Duration

	cancelCtx               context.Context
	cancelFunc              func()
	activeBackgroundWorkers sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewKinematicAgent constructs a KinematicAgent with the given per-cell
// transit duration. A zero duration uses DefaultStepDuration.
func NewKinematicAgent(id string, stepDuration time.Duration, logger golog.Logger) *KinematicAgent {
	if stepDuration <= 0 {
		stepDuration = DefaultStepDuration
	}

	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	return &KinematicAgent{
		ID:           id,
		logger:       logger,
		stepDuration: stepDuration,
		cancelCtx:    cancelCtx,
		cancelFunc:   cancelFunc,
	}
}

// AdvanceOneCell blocks until the agent has simulated transiting one grid
// cell, or ctx (or the agent's own cancellation) is done first. It
// satisfies supervisor.AgentHandle.
func (k *KinematicAgent) AdvanceOneCell(ctx context.Context) error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrClosed
	}
	k.activeBackgroundWorkers.Add(1)
	k.mu.Unlock()

	done := make(chan struct{})
	utils.PanicCapturingGo(func() {
		defer k.activeBackgroundWorkers.Done()
		timer := time.NewTimer(k.stepDuration)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-k.cancelCtx.Done():
		case <-ctx.Done():
		}
		close(done)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-k.cancelCtx.Done():
		return k.cancelCtx.Err()
	}
}

// Close cancels any in-flight transit and waits for background workers to
// exit. Subsequent AdvanceOneCell calls return ErrClosed.
func (k *KinematicAgent) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	k.mu.Unlock()

	if k.logger != nil {
		k.logger.Debugw("closing kinematic agent", "id", k.ID)
	}
	k.cancelFunc()
	k.activeBackgroundWorkers.Wait()
	return nil
}
