// Package operator implements the neighbourhood move catalog the local
// search engine scans each round: each Move names a source route/rank,
// optionally a target route/rank, and reports a memoised gain, a full
// feasibility check, and an apply step that mutates the owning Solution.
//
// There is one Go type per named move, not the two-layer (Raw/TW
// inheritance) hierarchy the catalog historically used: every route here
// is already a route.TWRoute, so time-window awareness is just another
// feasibility check a Move's IsValid performs, not a second class. A
// Move never holds a route reference directly — only the (vehicle,
// rank) indices into a *solution.Solution, borrowed for the duration of
// Apply — so two Moves scanned in the same round never alias each
// other's mutable state.
package operator
