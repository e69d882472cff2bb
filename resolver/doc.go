// Package resolver repairs conflicting agent assignments produced by
// conflict.Detect into a conflict-free set, or gives up after a bounded
// number of recursive repair passes and returns the best assignments found
// so far wrapped in an *ExhaustedError.
//
// For each conflict, Resolve enumerates candidate scenarios — all-avoid,
// one-allowed, and wait-permutation — scores each by replaying
// conflict.Detect against a tentative assignment set, and commits the
// lexicographically best one before moving to the next conflict. Scenario
// enumeration is lazy and bounded by WithScenarioSafetyBound so a
// pathological conflict (many agents, a distant step) cannot blow up a
// single tick.
package resolver
