// Package localsearch drives the outer optimisation loop over a
// solution.Solution: each round scans the operator catalog for the
// best legal move per vehicle pair, applies moves in descending gain
// order until none remain positive, then falls back to ruin-and-recreate
// perturbation when a round makes no progress.
//
// The engine owns the Solution, its SolutionState, and a seeded PRNG; it
// never shares mutable state across goroutines (RunParallel clones the
// starting point per worker and keeps each run single-threaded, matching
// the one-route-vector-per-thread concurrency model the catalog itself
// assumes).
package localsearch
