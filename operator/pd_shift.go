package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// PDShift moves a pickup and its paired delivery together from
// sVehicle's route to a different vehicle's route, each re-inserted at
// its own best rank subject to the pickup landing before the delivery
// (§4.3, §6's shipment-precedence rule). sRank holds the pickup's rank,
// sDRank the delivery's rank (sRank < sDRank); tRank is unused.
type PDShift struct {
	base
	prob   *problem.Problem
	sol    *solution.Solution
	state  *solution.SolutionState
	sDRank int

	insertPAt int
	insertDAt int
}

func NewPDShift(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sPRank, sDRank, tVehicle int) *PDShift {
	return &PDShift{
		base:   base{name: OpPDShift, sVehicle: sVehicle, sRank: sPRank, tVehicle: tVehicle},
		prob:   prob,
		sol:    sol,
		state:  state,
		sDRank: sDRank,
	}
}

// bestInsertionRankFrom is bestInsertionRank restricted to ranks >= minRank.
func bestInsertionRankFrom(prob *problem.Problem, state *solution.SolutionState, v int, vehicle model.Vehicle, jobs []int, job, minRank int) (int, model.Eval) {
	rank, eval := bestInsertionRank(prob, state, v, vehicle, jobs, job)
	if rank >= minRank {
		return rank, eval
	}

	bestRank := minRank
	bestEval := candidateRouteEval(prob, vehicle, withInsertedAt(jobs, job, minRank))
	for r := minRank + 1; r <= len(jobs); r++ {
		e := candidateRouteEval(prob, vehicle, withInsertedAt(jobs, job, r))
		if e.Cost < bestEval.Cost {
			bestEval, bestRank = e, r
		}
	}

	return bestRank, bestEval
}

func (m *PDShift) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	if m.sRank < 0 || m.sDRank >= len(sJobs) || m.sRank >= m.sDRank {
		return m.storedGain
	}

	p, d := sJobs[m.sRank], sJobs[m.sDRank]
	newS := without(without(sJobs, m.sDRank), m.sRank)

	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	tVeh := m.prob.Vehicles[m.tVehicle]
	pAt, _ := bestInsertionRank(m.prob, m.state, m.tVehicle, tVeh, tJobs, p)
	tWithP := withInsertedAt(tJobs, p, pAt)
	dAt, newTEval := bestInsertionRankFrom(m.prob, m.state, m.tVehicle, tVeh, tWithP, d, pAt+1)

	sVeh := m.prob.Vehicles[m.sVehicle]
	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	newSEval := candidateRouteEval(m.prob, sVeh, newS)
	gain := oldTotal.Sub(newSEval).Sub(newTEval)
	if gain.Positive() {
		m.storedGain = gain
		m.insertPAt = pAt
		m.insertDAt = dAt
	}

	return m.storedGain
}

func (m *PDShift) sequences() (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	p, d := sJobs[m.sRank], sJobs[m.sDRank]
	newS = without(without(sJobs, m.sDRank), m.sRank)

	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	tWithP := withInsertedAt(tJobs, p, m.insertPAt)
	newT = withInsertedAt(tWithP, d, m.insertDAt)

	return newS, newT
}

func (m *PDShift) IsValid() (bool, error) {
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

func (m *PDShift) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences()

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}
