package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// SwapStar swaps the job at sRank of sVehicle's route with the job at
// tRank of a different vehicle's route, each re-inserted at its own best
// rank in the opposite route rather than swapping in place (§4.3, §4.4).
// Candidate re-insertion ranks come from SolutionState's cached
// insertion window around each job's nearest route stop, a
// radius-bounded stand-in for the "three cheapest insertion ranks"
// cache the catalog describes — see DESIGN.md.
type SwapStar struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState

	insertJAt int
	insertIAt int
}

func NewSwapStar(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *SwapStar {
	return &SwapStar{
		base:  base{name: OpSwapStar, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func without(jobs []int, rank int) []int {
	return append(append([]int{}, jobs[:rank]...), jobs[rank+1:]...)
}

func withInsertedAt(jobs []int, job, at int) []int {
	out := make([]int, 0, len(jobs)+1)
	out = append(out, jobs[:at]...)
	out = append(out, job)
	out = append(out, jobs[at:]...)

	return out
}

// bestInsertionRank returns the rank within [0, len(jobs)] that minimises
// candidateRouteEval(vehicle, withInsertedAt(jobs, job, rank)), searching
// only the cached insertion window for job on vehicle v (or every rank
// if no window was cached).
func bestInsertionRank(prob *problem.Problem, state *solution.SolutionState, v int, vehicle model.Vehicle, jobs []int, job int) (int, model.Eval) {
	lo, hi := 0, len(jobs)+1
	if begin, ok := state.InsertionRanksBegin[v][job]; ok {
		lo = begin
	}
	if end, ok := state.InsertionRanksEnd[v][job]; ok {
		hi = end + 1
	}
	if hi > len(jobs)+1 {
		hi = len(jobs) + 1
	}
	if lo > len(jobs) {
		lo = len(jobs)
	}
	if lo >= hi {
		lo, hi = 0, len(jobs)+1
	}

	bestRank := lo
	bestEval := candidateRouteEval(prob, vehicle, withInsertedAt(jobs, job, lo))
	for r := lo + 1; r < hi; r++ {
		e := candidateRouteEval(prob, vehicle, withInsertedAt(jobs, job, r))
		if e.Cost < bestEval.Cost {
			bestEval, bestRank = e, r
		}
	}

	return bestRank, bestEval
}

func (m *SwapStar) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	if m.sRank < 0 || m.sRank >= len(sJobs) || m.tRank < 0 || m.tRank >= len(tJobs) {
		return m.storedGain
	}

	i, j := sJobs[m.sRank], tJobs[m.tRank]
	reducedS := without(sJobs, m.sRank)
	reducedT := without(tJobs, m.tRank)

	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]
	insertJAt, newSEval := bestInsertionRank(m.prob, m.state, m.sVehicle, sVeh, reducedS, j)
	insertIAt, newTEval := bestInsertionRank(m.prob, m.state, m.tVehicle, tVeh, reducedT, i)

	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	gain := oldTotal.Sub(newSEval).Sub(newTEval)
	if gain.Positive() {
		m.storedGain = gain
		m.insertJAt = insertJAt
		m.insertIAt = insertIAt
	}

	return m.storedGain
}

func (m *SwapStar) sequences() (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	i, j := sJobs[m.sRank], tJobs[m.tRank]

	newS = withInsertedAt(without(sJobs, m.sRank), j, m.insertJAt)
	newT = withInsertedAt(without(tJobs, m.tRank), i, m.insertIAt)

	return newS, newT
}

func (m *SwapStar) IsValid() (bool, error) {
	newS, newT := m.sequences()
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]
	sRoute, tRoute := m.sol.Routes[m.sVehicle], m.sol.Routes[m.tVehicle]

	if ok, err := validAddition(m.prob, sVeh, sRoute, newS, 0, sRoute.Len()); err != nil || !ok {
		return false, err
	}
	if ok, err := validAddition(m.prob, tVeh, tRoute, newT, 0, tRoute.Len()); err != nil || !ok {
		return false, err
	}
	if !shipmentPrecedenceOK(m.prob, newS) || !shipmentPrecedenceOK(m.prob, newT) {
		return false, nil
	}
	if !withinRangeBounds(sVeh, candidateRouteEval(m.prob, sVeh, newS)) ||
		!withinRangeBounds(tVeh, candidateRouteEval(m.prob, tVeh, newT)) {
		return false, nil
	}

	return true, nil
}

func (m *SwapStar) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences()

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}
