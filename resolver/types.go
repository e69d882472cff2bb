package resolver

import (
	"github.com/edaniels/golog"

	"github.com/augv-fleet/coordinator/planner"
)

// DefaultMaxDepth bounds the number of recursive repair passes Resolve will
// attempt before giving up with *ExhaustedError.
const DefaultMaxDepth = 30

// DefaultScenarioSafetyBound caps the number of candidate scenarios Resolve
// will generate for a single conflict before it stops enumerating further
// wait-permutation subset sizes for that conflict. Already-generated
// scenarios are still scored; the bound never drops a conflict silently —
// hitting it is logged at Warn.
const DefaultScenarioSafetyBound = 4096

// Options configures a single Resolve call.
type Options struct {
	MaxDepth            int
	ScenarioSafetyBound int
	Logger              golog.Logger
	PlannerOptions      []planner.Option
}

// Option is a functional option for Resolve.
type Option func(*Options)

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d > 0 {
			o.MaxDepth = d
		}
	}
}

// WithScenarioSafetyBound overrides DefaultScenarioSafetyBound. Non-positive
// values are ignored.
func WithScenarioSafetyBound(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.ScenarioSafetyBound = n
		}
	}
}

// WithLogger attaches a logger used for Warn-level reporting of unresolved
// conflicts, scenario-bound hits, and ResolutionExhausted. A nil logger
// disables logging.
func WithLogger(l golog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithPlannerOptions forwards options to every planner.FindPath call made
// while building scenarios (e.g. planner.WithMaxExpansions).
func WithPlannerOptions(opts ...planner.Option) Option {
	return func(o *Options) {
		o.PlannerOptions = opts
	}
}

// DefaultOptions returns the Options Resolve uses absent overrides.
func DefaultOptions() Options {
	return Options{
		MaxDepth:            DefaultMaxDepth,
		ScenarioSafetyBound: DefaultScenarioSafetyBound,
	}
}
