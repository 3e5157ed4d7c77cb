package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// Exchange swaps the job at rank sRank of sVehicle's route with the job
// at rank tRank of a different vehicle's route (§4.3).
type Exchange struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *Exchange {
	return &Exchange{
		base:  base{name: OpExchange, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *Exchange) sequences() (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	newS = append([]int{}, sJobs...)
	newS[m.sRank] = tJobs[m.tRank]
	newT = append([]int{}, tJobs...)
	newT[m.tRank] = sJobs[m.sRank]

	return newS, newT
}

func (m *Exchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}

	newS, newT := m.sequences()
	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	newTotal := candidateRouteEval(m.prob, m.prob.Vehicles[m.sVehicle], newS).
		Add(candidateRouteEval(m.prob, m.prob.Vehicles[m.tVehicle], newT))
	gain := oldTotal.Sub(newTotal)
	if gain.Positive() {
		m.storedGain = gain
	}

	return m.storedGain
}

func (m *Exchange) IsValid() (bool, error) {
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

func (m *Exchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences()

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// IntraExchange swaps the jobs at ranks sRank and tRank of the same
// route.
type IntraExchange struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewIntraExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) *IntraExchange {
	return &IntraExchange{
		base:  base{name: OpIntraExchange, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *IntraExchange) sequence() []int {
	jobs := append([]int{}, m.sol.Routes[m.sVehicle].Jobs()...)
	jobs[m.sRank], jobs[m.tRank] = jobs[m.tRank], jobs[m.sRank]

	return jobs
}

func (m *IntraExchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sRank == m.tRank {
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

func (m *IntraExchange) IsValid() (bool, error) {
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

func (m *IntraExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence())
}
