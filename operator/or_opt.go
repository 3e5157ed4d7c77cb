package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// OrOpt moves the two-job edge at sRank/sRank+1 of sVehicle's route to
// rank tRank of a different vehicle's route, optionally reversed (§4.3).
// Both orientations are compared by raw gain in Gain(); the cheaper one
// is the one IsValid/Apply act on. This is a documented simplification
// of the fuller "try the other orientation if the cheaper one turns out
// infeasible" rule: see DESIGN.md.
type OrOpt struct {
	base
	prob    *problem.Problem
	sol     *solution.Solution
	state   *solution.SolutionState
	reverse bool
}

func NewOrOpt(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *OrOpt {
	return &OrOpt{
		base:  base{name: OpOrOpt, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *OrOpt) edge() []int {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	return append([]int{}, sJobs[m.sRank:m.sRank+2]...)
}

func (m *OrOpt) sequences(edge []int) (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	newS = append(append([]int{}, sJobs[:m.sRank]...), sJobs[m.sRank+2:]...)
	newT = make([]int, 0, len(tJobs)+2)
	newT = append(newT, tJobs[:m.tRank]...)
	newT = append(newT, edge...)
	newT = append(newT, tJobs[m.tRank:]...)

	return newS, newT
}

func (m *OrOpt) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	if m.sRank < 0 || m.sRank+2 > m.sol.Routes[m.sVehicle].Len() {
		return m.storedGain
	}

	edge := m.edge()
	normal := edge
	reverse := reversed(edge)

	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]

	newSN, newTN := m.sequences(normal)
	gainNormal := oldTotal.Sub(candidateRouteEval(m.prob, sVeh, newSN)).Sub(candidateRouteEval(m.prob, tVeh, newTN))

	newSR, newTR := m.sequences(reverse)
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

func (m *OrOpt) chosenEdge() []int {
	edge := m.edge()
	if m.reverse {
		return reversed(edge)
	}

	return edge
}

func (m *OrOpt) IsValid() (bool, error) {
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

func (m *OrOpt) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences(m.chosenEdge())

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// IntraOrOpt relocates the two-job edge at sRank/sRank+1 to rank tRank
// within the same route, optionally reversed.
type IntraOrOpt struct {
	base
	prob    *problem.Problem
	sol     *solution.Solution
	state   *solution.SolutionState
	reverse bool
}

func NewIntraOrOpt(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) *IntraOrOpt {
	return &IntraOrOpt{
		base:  base{name: OpIntraOrOpt, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *IntraOrOpt) sequence(edge []int) []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	rest := append(append([]int{}, jobs[:m.sRank]...), jobs[m.sRank+2:]...)

	at := m.tRank
	if m.tRank > m.sRank {
		at -= 2
	}
	out := make([]int, 0, len(jobs))
	out = append(out, rest[:at]...)
	out = append(out, edge...)
	out = append(out, rest[at:]...)

	return out
}

func (m *IntraOrOpt) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sRank < 0 || m.sRank+2 > m.sol.Routes[m.sVehicle].Len() {
		return m.storedGain
	}
	if m.tRank >= m.sRank && m.tRank <= m.sRank+2 {
		return m.storedGain
	}

	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	edge := append([]int{}, sJobs[m.sRank:m.sRank+2]...)
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

func (m *IntraOrOpt) chosenEdge() []int {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	edge := append([]int{}, sJobs[m.sRank:m.sRank+2]...)
	if m.reverse {
		return reversed(edge)
	}

	return edge
}

func (m *IntraOrOpt) IsValid() (bool, error) {
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

func (m *IntraOrOpt) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence(m.chosenEdge()))
}
