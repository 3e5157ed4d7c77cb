package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// MixedExchange swaps the single job at rank sRank of sVehicle's route
// against the two-job edge at tRank/tRank+1 of a different vehicle's
// route, with the edge optionally reversed when it lands on sVehicle's
// route (§4.3).
type MixedExchange struct {
	base
	prob    *problem.Problem
	sol     *solution.Solution
	state   *solution.SolutionState
	reverse bool
}

func NewMixedExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *MixedExchange {
	return &MixedExchange{
		base:  base{name: OpMixedExchange, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *MixedExchange) sequences(edge []int) (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	job := sJobs[m.sRank]

	newS = make([]int, 0, len(sJobs)+1)
	newS = append(newS, sJobs[:m.sRank]...)
	newS = append(newS, edge...)
	newS = append(newS, sJobs[m.sRank+1:]...)

	newT = make([]int, 0, len(tJobs)-1)
	newT = append(newT, tJobs[:m.tRank]...)
	newT = append(newT, job)
	newT = append(newT, tJobs[m.tRank+2:]...)

	return newS, newT
}

func (m *MixedExchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	if m.sRank < 0 || m.sRank >= m.sol.Routes[m.sVehicle].Len() {
		return m.storedGain
	}
	if m.tRank < 0 || m.tRank+2 > m.sol.Routes[m.tVehicle].Len() {
		return m.storedGain
	}

	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	edge := append([]int{}, tJobs[m.tRank:m.tRank+2]...)

	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]

	newSN, newTN := m.sequences(edge)
	gainNormal := oldTotal.Sub(candidateRouteEval(m.prob, sVeh, newSN)).Sub(candidateRouteEval(m.prob, tVeh, newTN))

	newSR, newTR := m.sequences(reversed(edge))
	gainReverse := oldTotal.Sub(candidateRouteEval(m.prob, sVeh, newSR)).Sub(candidateRouteEval(m.prob, tVeh, newTR))

	gain, useReverse := gainNormal, false
	if gainReverse.Cost > gainNormal.Cost {
		gain, useReverse = gainReverse, true
	}
	if gain.Positive() {
		m.storedGain = gain
		m.reverse = useReverse
	}

	return m.storedGain
}

func (m *MixedExchange) chosenEdge() []int {
	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	edge := append([]int{}, tJobs[m.tRank:m.tRank+2]...)
	if m.reverse {
		return reversed(edge)
	}

	return edge
}

func (m *MixedExchange) IsValid() (bool, error) {
	newS, newT := m.sequences(m.chosenEdge())
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

func (m *MixedExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences(m.chosenEdge())

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// IntraMixedExchange swaps the single job at sRank against the two-job
// edge at tRank/tRank+1 within the same route, with the edge optionally
// reversed.
type IntraMixedExchange struct {
	base
	prob    *problem.Problem
	sol     *solution.Solution
	state   *solution.SolutionState
	reverse bool
}

func NewIntraMixedExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) *IntraMixedExchange {
	return &IntraMixedExchange{
		base:  base{name: OpIntraMixedExchange, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *IntraMixedExchange) sequence(edge []int) []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	job := jobs[m.sRank]

	out := make([]int, 0, len(jobs))
	if m.sRank < m.tRank {
		out = append(out, jobs[:m.sRank]...)
		out = append(out, edge...)
		out = append(out, jobs[m.sRank+1:m.tRank]...)
		out = append(out, job)
		out = append(out, jobs[m.tRank+2:]...)

		return out
	}

	out = append(out, jobs[:m.tRank]...)
	out = append(out, job)
	out = append(out, jobs[m.tRank+2:m.sRank]...)
	out = append(out, edge...)
	out = append(out, jobs[m.sRank+1:]...)

	return out
}

func (m *IntraMixedExchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	n := m.sol.Routes[m.sVehicle].Len()
	if m.sRank < 0 || m.sRank >= n || m.tRank < 0 || m.tRank+2 > n {
		return m.storedGain
	}
	if m.tRank <= m.sRank && m.sRank <= m.tRank+1 {
		return m.storedGain
	}

	jobs := m.sol.Routes[m.sVehicle].Jobs()
	edge := append([]int{}, jobs[m.tRank:m.tRank+2]...)
	vehicle := m.prob.Vehicles[m.sVehicle]
	oldEval := m.state.RouteEvals[m.sVehicle]

	gainNormal := oldEval.Sub(candidateRouteEval(m.prob, vehicle, m.sequence(edge)))
	gainReverse := oldEval.Sub(candidateRouteEval(m.prob, vehicle, m.sequence(reversed(edge))))

	gain, useReverse := gainNormal, false
	if gainReverse.Cost > gainNormal.Cost {
		gain, useReverse = gainReverse, true
	}
	if gain.Positive() {
		m.storedGain = gain
		m.reverse = useReverse
	}

	return m.storedGain
}

func (m *IntraMixedExchange) chosenEdge() []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	edge := append([]int{}, jobs[m.tRank:m.tRank+2]...)
	if m.reverse {
		return reversed(edge)
	}

	return edge
}

func (m *IntraMixedExchange) IsValid() (bool, error) {
	newSeq := m.sequence(m.chosenEdge())
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

func (m *IntraMixedExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence(m.chosenEdge()))
}
