package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// RouteExchange swaps the entire routes of sVehicle and tVehicle: every
// job on sVehicle's route moves to tVehicle's and vice versa (§4.3).
// sRank/tRank are unused; the move operates on whole routes.
type RouteExchange struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewRouteExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, tVehicle int) *RouteExchange {
	return &RouteExchange{
		base:  base{name: OpRouteExchange, sVehicle: sVehicle, tVehicle: tVehicle},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *RouteExchange) Gain() model.Eval {
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
	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	newTotal := candidateRouteEval(m.prob, m.prob.Vehicles[m.sVehicle], tJobs).
		Add(candidateRouteEval(m.prob, m.prob.Vehicles[m.tVehicle], sJobs))
	gain := oldTotal.Sub(newTotal)
	if gain.Positive() {
		m.storedGain = gain
	}

	return m.storedGain
}

func (m *RouteExchange) IsValid() (bool, error) {
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]
	sRoute, tRoute := m.sol.Routes[m.sVehicle], m.sol.Routes[m.tVehicle]
	sJobs, tJobs := sRoute.Jobs(), tRoute.Jobs()

	if ok, err := validAddition(m.prob, sVeh, sRoute, tJobs, 0, sRoute.Len()); err != nil || !ok {
		return false, err
	}
	if ok, err := validAddition(m.prob, tVeh, tRoute, sJobs, 0, tRoute.Len()); err != nil || !ok {
		return false, err
	}
	if !withinRangeBounds(sVeh, candidateRouteEval(m.prob, sVeh, tJobs)) ||
		!withinRangeBounds(tVeh, candidateRouteEval(m.prob, tVeh, sJobs)) {
		return false, nil
	}

	return true, nil
}

func (m *RouteExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	return rebuildBothRoutes(m.sol, m.sVehicle, tJobs, m.tVehicle, sJobs)
}
