// Package route implements RawRoute and TWRoute (§4.1–4.2): the ordered
// per-vehicle job sequence, its incremental capacity caches, and — for
// TWRoute — its time-window state.
//
// A route is exclusively owned by one Solution (§3 "Ownership and
// lifecycle"): it carries no internal locking, because nothing in this
// module's concurrency model (§5) ever shares a route across goroutines.
// Operators borrow a route mutably only for the synchronous duration of
// Apply(); the Solution is what outlives them.
//
// Capacity bookkeeping (RawRoute):
//
// Each route caches, per boundary k in [0, len(route)], the pointwise
// load aboard the vehicle at that boundary:
//
//	load[k] = bwdDeliveries[k] + fwdPickups[k]
//
// where fwdPickups[k] is the Pickup total of the first k jobs (amounts
// collected so far) and bwdDeliveries[k] is the Delivery total of the
// remaining jobs from k onward (amounts loaded at the depot, not yet
// dropped off). Replacing a contiguous range [at, upto) with new content
// shifts every load value in the untouched prefix and untouched suffix
// by a *constant* Amount — so checking pointwise-capacity feasibility of
// a replacement is an O(1) lookup against two cached extrema
// (SubRouteMaxLoadBefore/After) plus an O(range length) walk through the
// new content itself; see rawroute.go for the derivation.
package route
