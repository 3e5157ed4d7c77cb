package route

import (
	"math"

	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
)

// noDeadline stands in for "no time-window upper bound"; kept well below
// math.MaxInt64 so that subtracting a travel/service duration from it
// never overflows.
const noDeadline = math.MaxInt64 / 2

// TWRoute extends RawRoute with per-task time-window feasibility. It
// caches, for every job in the route, the earliest and latest instant at
// which service may begin without violating any job's time windows, the
// vehicle's own availability window, or the feasibility of everything
// that follows.
//
// earliest[i] is computed by forward propagation from the vehicle's
// start: each job's earliest start is the soonest open window at or
// after finishing travel+service from the previous task. latest[i] is
// computed by backward propagation from the vehicle's end: each job's
// latest start is bounded by its own chosen window's End and by the
// latest start of the following task, minus the travel and service time
// between them. A route is time-window feasible iff earliest[i] <=
// latest[i] for every task.
//
// This implementation resolves each task's chosen time window once,
// during the forward pass, and bounds latest[i] by that window's End
// rather than re-optimizing the window choice during backward
// propagation — a conservative (never infeasibility-hiding) but simpler
// rule than full VROOM-style window reconsideration.
//
// The vehicle's own Breaks are placed by the same forward pass: each
// break is slotted, in declared order, at the earliest point along the
// timeline (before the route's first task, between two tasks, or after
// its last) at which the break's own time windows are still open. A
// window that opens later still counts as open (the break waits for it),
// so in practice every break is placed before the first task (rank 0),
// or the route is infeasible. A break never carries a location, so placing one only advances the
// cumulative clock by its Service duration; it never touches travel
// time. breakStart and breakRank record where each of the vehicle's
// Breaks ultimately landed.
type TWRoute struct {
	*RawRoute

	earliest []int64
	latest   []int64
	twIndex  []int

	// breakStart[k] is the chosen service start for vehicle.Breaks[k];
	// breakRank[k] is the task index it was placed before (len(jobs) if
	// it falls after the last task). Both are nil when the vehicle has
	// no Breaks.
	breakStart []int64
	breakRank  []int
}

// NewTWRoute returns an empty time-window-tracked route for the given
// vehicle.
func NewTWRoute(prob *problem.Problem, vehicleIndex int) *TWRoute {
	r := &TWRoute{RawRoute: NewRawRoute(prob, vehicleIndex)}
	r.recomputeTW()

	return r
}

func (r *TWRoute) location(i int) int {
	return r.prob.Jobs[r.jobs[i]].Location
}

func (r *TWRoute) travel(fromLoc, toLoc int) int64 {
	v := r.vehicleModel()
	e, err := r.prob.Eval(v.Profile, fromLoc, toLoc)
	if err != nil {
		return noDeadline
	}

	return e.Duration
}

// vehicleWindowBounds returns the start and end of the earliest of the
// vehicle's (possibly several, disjoint) availability windows still open
// at or after from, defaulting to [from, noDeadline) when the vehicle
// declares none. ok is false if every window has already closed by from.
//
// Like a job's chosen time window, the vehicle's window is resolved once
// (at departure) and its End reused as the route's deadline in the
// backward pass, rather than re-optimizing which window to depart in —
// this picks the earliest window rather than the prior implementation's
// outer hull of TimeWindows[0].Start..TimeWindows[last].End, which wrongly
// accepted a departure time falling in a gap between two declared windows.
func (r *TWRoute) vehicleWindowBounds(from int64) (start, end int64, ok bool) {
	v := r.vehicleModel()
	if len(v.TimeWindows) == 0 {
		return from, noDeadline, true
	}

	start, idx, ok := model.EarliestOpenAfter(v.TimeWindows, from)
	if !ok {
		return 0, 0, false
	}

	return start, v.TimeWindows[idx].End, true
}

// recomputeTW rebuilds earliest/latest from scratch in O(n). Like
// RawRoute.recompute, this runs after every accepted mutation; candidate
// feasibility is checked via IsValidAdditionForTW before a mutation is
// committed, which runs this same full O(n) pass over the candidate
// route.
func (r *TWRoute) recomputeTW() bool {
	n := len(r.jobs)
	r.earliest = make([]int64, n)
	r.latest = make([]int64, n)
	r.twIndex = make([]int, n)

	v := r.vehicleModel()
	breaks := v.Breaks
	r.breakStart = make([]int64, len(breaks))
	r.breakRank = make([]int, len(breaks))

	vehStart, vehWindowEnd, ok := r.vehicleWindowBounds(0)
	if !ok {
		return false
	}

	// placeBreaks slots every vehicle Break whose turn has come (in
	// declared order) at rank, as long as one of its time windows is
	// still open at or after cursor, waiting for that window to open if
	// needed (§4.2 step 4's greedy rule: place each break at the earliest
	// step its window is still open). Breaks have
	// no location, so placing one only advances cursor by its Service;
	// it never touches rank's travel leg. It returns false if a break
	// to place has no window left open after cursor.
	bi := 0
	placeBreaks := func(rank int, cursor int64) (int64, bool) {
		for bi < len(breaks) {
			b := breaks[bi]
			start, _, open := model.EarliestOpenAfter(b.TimeWindows, cursor)
			if !open {
				return cursor, false
			}
			r.breakStart[bi] = start
			r.breakRank[bi] = rank
			cursor = start + b.Service
			bi++
		}

		return cursor, true
	}

	// An unused vehicle (no tasks) never departs, so it never needs to
	// take its declared breaks.
	if n == 0 {
		return true
	}

	// Forward pass, breaks interleaved at each rank boundary.
	cursor := vehStart
	for i := 0; i <= n; i++ {
		var feasible bool
		cursor, feasible = placeBreaks(i, cursor)
		if !feasible {
			return false
		}
		if i == n {
			break
		}

		var arrival int64
		if i == 0 {
			arrival = cursor
			if v.HasStart() {
				arrival += r.travel(*v.Start, r.location(0))
			}
		} else {
			arrival = cursor + r.travel(r.location(i-1), r.location(i))
		}
		j := r.prob.Jobs[r.jobs[i]]
		start, twIdx, open := j.EarliestStartAfter(arrival)
		if !open {
			return false
		}
		r.earliest[i] = start
		r.twIndex[i] = twIdx
		cursor = start + j.Setup + j.Service
	}
	if bi < len(breaks) {
		return false
	}

	// Backward pass.
	for i := n - 1; i >= 0; i-- {
		j := r.prob.Jobs[r.jobs[i]]
		windowEnd := int64(noDeadline)
		if len(j.TimeWindows) > 0 {
			windowEnd = j.TimeWindows[r.twIndex[i]].End
		}

		var bound int64
		if i == n-1 {
			bound = vehWindowEnd
			if v.HasEnd() {
				bound -= r.travel(r.location(i), *v.End)
			}
			bound -= j.Setup + j.Service
		} else {
			bound = r.latest[i+1] - j.Setup - j.Service - r.travel(r.location(i), r.location(i+1))
		}

		latest := windowEnd
		if bound < latest {
			latest = bound
		}
		r.latest[i] = latest

		if r.earliest[i] > r.latest[i] {
			return false
		}
	}

	return true
}

// BreakStart returns the chosen service start for vehicle.Breaks[k] and
// the task index it precedes (len(Jobs()) if it falls after the route's
// last task).
func (r *TWRoute) BreakStart(k int) (start int64, rank int, err error) {
	if k < 0 || k >= len(r.breakStart) {
		return 0, 0, ErrIndexOutOfRange
	}

	return r.breakStart[k], r.breakRank[k], nil
}

// Feasible reports whether the route's current time-window state is
// valid (every task has earliest <= latest).
func (r *TWRoute) Feasible() bool {
	for i := range r.earliest {
		if r.earliest[i] > r.latest[i] {
			return false
		}
	}

	return true
}

// EarliestStart returns the earliest feasible service start time for the
// task at position i.
func (r *TWRoute) EarliestStart(i int) (int64, error) {
	if i < 0 || i >= len(r.earliest) {
		return 0, ErrIndexOutOfRange
	}

	return r.earliest[i], nil
}

// LatestStart returns the latest feasible service start time for the
// task at position i.
func (r *TWRoute) LatestStart(i int) (int64, error) {
	if i < 0 || i >= len(r.latest) {
		return 0, ErrIndexOutOfRange
	}

	return r.latest[i], nil
}

// IsValidAdditionForTW reports whether replacing Jobs()[at:upto] with
// rangeJobs keeps the whole route time-window feasible. Unlike the
// capacity check, a time-window shift at one task can in principle
// ripple through every later task's chosen window, so there is no cheap
// O(1) combination rule here: this builds the candidate route and
// re-propagates earliest/latest over it in full (O(n)). Callers on a hot
// path (e.g. an operator's AdditionCandidates scan) should prefer
// cheaper necessary-condition pre-filters — such as comparing the
// range's own duration against SubRouteMaxLoadAfter's capacity slack —
// before falling back to this exact check.
func (r *TWRoute) IsValidAdditionForTW(rangeJobs []int, at, upto int) (bool, error) {
	if at < 0 || upto < at || upto > len(r.jobs) {
		return false, ErrInvalidRange
	}

	next := make([]int, 0, len(r.jobs)-(upto-at)+len(rangeJobs))
	next = append(next, r.jobs[:at]...)
	next = append(next, rangeJobs...)
	next = append(next, r.jobs[upto:]...)

	candidate := &TWRoute{RawRoute: &RawRoute{prob: r.prob, vehicle: r.vehicle, jobs: next}}
	candidate.RawRoute.recompute()
	ok := candidate.recomputeTW()

	return ok, nil
}

// Replace substitutes Jobs()[at:upto] with rangeJobs, validating
// capacity, skills, MaxTasks, and time-window feasibility before
// mutating. On rejection the route is left unchanged.
func (r *TWRoute) Replace(rangeJobs []int, at, upto int) error {
	twOK, err := r.IsValidAdditionForTW(rangeJobs, at, upto)
	if err != nil {
		return err
	}
	if !twOK {
		return ErrTimeWindowInfeasible
	}
	if err := r.RawRoute.Replace(rangeJobs, at, upto); err != nil {
		return err
	}
	r.recomputeTW()

	return nil
}

// Insert is a convenience for Replace(rangeJobs, at, at).
func (r *TWRoute) Insert(rangeJobs []int, at int) error {
	return r.Replace(rangeJobs, at, at)
}

// Remove is a convenience for Replace(nil, at, at+count).
func (r *TWRoute) Remove(at, count int) error {
	return r.Replace(nil, at, at+count)
}
