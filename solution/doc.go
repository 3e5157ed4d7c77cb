// Package solution implements Solution and SolutionState (§3, §6.2): the
// current assignment of jobs to vehicle routes, and the derived,
// per-vehicle caches that make operator evaluation cheap.
//
// Solution owns one route.TWRoute per vehicle plus the set of unassigned
// job indices. SolutionState is a separate, engine-owned cache layer
// keyed by vehicle rank: route totals, the Eval saved by removing a
// single node or a consecutive node pair, and — for jobs not currently on
// a given vehicle's route — the nearest existing stop and a plausible
// insertion-rank window. Every cache entry is invalidated and recomputed
// only for the vehicles an operator actually touched (Rebuild), never by
// a blanket rebuild of the whole state, so the cost of a move is
// proportional to its addition/update candidate set, not to fleet size.
package solution
