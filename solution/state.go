package solution

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
)

// insertionWindowRadius bounds how many ranks on either side of a job's
// single nearest route stop are considered "plausible" for insertion.
// This is a deliberate simplification of a fuller insertion-rank scan:
// see DESIGN.md.
const insertionWindowRadius = 1

// SolutionState holds, per vehicle, the derived caches that make
// operator evaluation cheap (§6.2): route totals, the Eval saved by
// excising a single node or a consecutive node pair, and — for jobs not
// on that vehicle's route — the nearest existing stop and a plausible
// insertion-rank window. Every slice here is indexed by vehicle rank;
// every map is indexed by job index. SolutionState is owned by the
// search engine, not by Solution itself, and is rebuilt only for
// vehicles an operator's addition/update candidates name.
type SolutionState struct {
	prob *problem.Problem

	RouteEvals []model.Eval

	EdgeEvalsAroundNode [][]model.Eval
	NodeGains           [][]model.Eval
	EdgeGains           [][]model.Eval

	InsertionRanksBegin        []map[int]int
	InsertionRanksEnd          []map[int]int
	NearestJobRankInRoutesFrom []map[int]int
	NearestJobRankInRoutesTo   []map[int]int
}

// NewSolutionState allocates an empty state for sol and immediately
// rebuilds every vehicle's caches.
func NewSolutionState(sol *Solution) *SolutionState {
	nv := len(sol.Routes)
	s := &SolutionState{
		prob:                       sol.Problem,
		RouteEvals:                 make([]model.Eval, nv),
		EdgeEvalsAroundNode:        make([][]model.Eval, nv),
		NodeGains:                  make([][]model.Eval, nv),
		EdgeGains:                  make([][]model.Eval, nv),
		InsertionRanksBegin:        make([]map[int]int, nv),
		InsertionRanksEnd:          make([]map[int]int, nv),
		NearestJobRankInRoutesFrom: make([]map[int]int, nv),
		NearestJobRankInRoutesTo:   make([]map[int]int, nv),
	}
	s.RebuildAll(sol)

	return s
}

// RebuildAll recomputes every vehicle's caches from scratch.
func (s *SolutionState) RebuildAll(sol *Solution) error {
	for v := range sol.Routes {
		if err := s.Rebuild(sol, v); err != nil {
			return err
		}
	}

	return nil
}

// locationSequence returns the ordered stop locations for vehicle v's
// route: its start location (if any), each job's location in route
// order, then its end location (if any). startOffset is 1 if the
// sequence begins with a vehicle start location, else 0.
func (s *SolutionState) locationSequence(sol *Solution, v int) (locs []int, startOffset int) {
	vehicle := s.prob.Vehicles[v]
	r := sol.Routes[v]
	jobs := r.Jobs()

	locs = make([]int, 0, len(jobs)+2)
	if vehicle.HasStart() {
		locs = append(locs, *vehicle.Start)
		startOffset = 1
	}
	for _, j := range jobs {
		locs = append(locs, s.prob.Jobs[j].Location)
	}
	if vehicle.HasEnd() {
		locs = append(locs, *vehicle.End)
	}

	return locs, startOffset
}

// pairEval returns Problem.Eval(profile, locs[i], locs[j]), or the zero
// Eval if either index is out of range (meaning: no such edge exists,
// e.g. there is no predecessor before the first stop of a vehicle with
// no fixed start).
func (s *SolutionState) pairEval(profile string, locs []int, i, j int) model.Eval {
	if i < 0 || j < 0 || i >= len(locs) || j >= len(locs) {
		return model.Eval{}
	}
	e, err := s.prob.Eval(profile, locs[i], locs[j])
	if err != nil {
		return model.Eval{}
	}

	return e
}

// edgeEval returns pairEval(profile, locs, i, i+1) — the travel Eval
// between adjacent stops.
func (s *SolutionState) edgeEval(profile string, locs []int, i int) model.Eval {
	return s.pairEval(profile, locs, i, i+1)
}

// Rebuild recomputes every cache entry for vehicle v from its current
// route contents.
func (s *SolutionState) Rebuild(sol *Solution, v int) error {
	if v < 0 || v >= len(sol.Routes) {
		return ErrVehicleIndexOutOfRange
	}
	vehicle := s.prob.Vehicles[v]
	r := sol.Routes[v]
	jobs := r.Jobs()
	n := len(jobs)

	locs, startOffset := s.locationSequence(sol, v)

	var routeEval model.Eval
	for i := 0; i+1 < len(locs); i++ {
		routeEval = routeEval.Add(s.edgeEval(vehicle.Profile, locs, i))
	}
	if n > 0 {
		routeEval.Cost += vehicle.Cost.Cost(routeEval.Duration, 0)
	}
	s.RouteEvals[v] = routeEval

	edgeAround := make([]model.Eval, n)
	nodeGain := make([]model.Eval, n)
	edgeGain := make([]model.Eval, max0(n-1))

	for i := 0; i < n; i++ {
		li := i + startOffset
		predEval := s.edgeEval(vehicle.Profile, locs, li-1)
		succEval := s.edgeEval(vehicle.Profile, locs, li)
		edgeAround[i] = predEval.Add(succEval)

		directEval := s.pairEval(vehicle.Profile, locs, li-1, li+1)
		nodeGain[i] = edgeAround[i].Sub(directEval)
	}
	for i := 0; i+1 < n; i++ {
		li := i + startOffset
		predEval := s.edgeEval(vehicle.Profile, locs, li-1)
		internalEval := s.edgeEval(vehicle.Profile, locs, li)
		succEval := s.edgeEval(vehicle.Profile, locs, li+1)
		directEval := s.pairEval(vehicle.Profile, locs, li-1, li+2)
		edgeGain[i] = predEval.Add(internalEval).Add(succEval).Sub(directEval)
	}
	s.EdgeEvalsAroundNode[v] = edgeAround
	s.NodeGains[v] = nodeGain
	s.EdgeGains[v] = edgeGain

	s.rebuildInsertionCaches(sol, v)

	return nil
}

// max0 returns n if positive, else 0.
func max0(n int) int {
	if n < 0 {
		return 0
	}

	return n
}
