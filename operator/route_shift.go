package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// RouteShift moves the whole of sVehicle's route onto the start or end
// of tVehicle's route, emptying sVehicle (§4.3). sRank/tRank are unused.
type RouteShift struct {
	base
	prob    *problem.Problem
	sol     *solution.Solution
	state   *solution.SolutionState
	toStart bool
}

func NewRouteShift(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, tVehicle int) *RouteShift {
	return &RouteShift{
		base:  base{name: OpRouteShift, sVehicle: sVehicle, tVehicle: tVehicle},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *RouteShift) target(toStart bool) []int {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	if toStart {
		return append(append([]int{}, sJobs...), tJobs...)
	}

	return append(append([]int{}, tJobs...), sJobs...)
}

func (m *RouteShift) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	if m.sol.Routes[m.sVehicle].Len() == 0 {
		return m.storedGain
	}

	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	tVeh := m.prob.Vehicles[m.tVehicle]

	gainStart := oldTotal.Sub(candidateRouteEval(m.prob, tVeh, m.target(true)))
	gainEnd := oldTotal.Sub(candidateRouteEval(m.prob, tVeh, m.target(false)))

	gain, toStart := gainStart, true
	if gainEnd.Cost > gainStart.Cost {
		gain, toStart = gainEnd, false
	}
	if gain.Positive() {
		m.storedGain = gain
		m.toStart = toStart
	}

	return m.storedGain
}

func (m *RouteShift) IsValid() (bool, error) {
	newT := m.target(m.toStart)
	tVeh := m.prob.Vehicles[m.tVehicle]
	tRoute := m.sol.Routes[m.tVehicle]

	if ok, err := validAddition(m.prob, tVeh, tRoute, newT, 0, tRoute.Len()); err != nil || !ok {
		return false, err
	}
	if !shipmentPrecedenceOK(m.prob, newT) {
		return false, nil
	}
	if !withinRangeBounds(tVeh, candidateRouteEval(m.prob, tVeh, newT)) {
		return false, nil
	}

	return true, nil
}

func (m *RouteShift) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildBothRoutes(m.sol, m.sVehicle, nil, m.tVehicle, m.target(m.toStart))
}
