package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// UnassignedExchange evicts the job at rank sRank of vehicle's route and
// inserts unassigned job u at rank tRank of the resulting sequence
// (§4.3). It is the only move besides PriorityReplace that requires a
// specific job to already be unassigned.
type UnassignedExchange struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
	u     int
}

func NewUnassignedExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank, u int) *UnassignedExchange {
	return &UnassignedExchange{
		base:  base{name: OpUnassignedExchange, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
		u:     u,
	}
}

func (m *UnassignedExchange) RequiredUnassigned() []int { return []int{m.u} }

func (m *UnassignedExchange) sequence() []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	rest := without(jobs, m.sRank)

	return withInsertedAt(rest, m.u, m.tRank)
}

func (m *UnassignedExchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	n := m.sol.Routes[m.sVehicle].Len()
	if m.sRank < 0 || m.sRank >= n || m.tRank < 0 || m.tRank > n-1 {
		return m.storedGain
	}

	newSeq := m.sequence()
	oldEval := m.state.RouteEvals[m.sVehicle]
	newEval := candidateRouteEval(m.prob, m.prob.Vehicles[m.sVehicle], newSeq)
	gain := oldEval.Sub(newEval)
	if gain.Positive() {
		m.storedGain = gain
	}

	return m.storedGain
}

func (m *UnassignedExchange) IsValid() (bool, error) {
	newSeq := m.sequence()
	vehicle := m.prob.Vehicles[m.sVehicle]
	r := m.sol.Routes[m.sVehicle]

	if ok, err := validAddition(m.prob, vehicle, r, newSeq, 0, r.Len()); err != nil || !ok {
		return false, err
	}
	if !shipmentPrecedenceOK(m.prob, newSeq) {
		return false, nil
	}
	if !withinRangeBounds(vehicle, candidateRouteEval(m.prob, vehicle, newSeq)) {
		return false, nil
	}

	return true, nil
}

func (m *UnassignedExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence())
}
