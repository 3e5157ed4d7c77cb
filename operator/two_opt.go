package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

func reversed(jobs []int) []int {
	out := make([]int, len(jobs))
	for i, j := range jobs {
		out[len(jobs)-1-i] = j
	}

	return out
}

// TwoOpt splices the tail of sVehicle's route after sRank onto the tail
// of tVehicle's route after tRank, without reversing either tail (§4.3).
type TwoOpt struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewTwoOpt(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *TwoOpt {
	return &TwoOpt{
		base:  base{name: OpTwoOpt, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *TwoOpt) sequences() (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	newS = append(append([]int{}, sJobs[:m.sRank+1]...), tJobs[m.tRank+1:]...)
	newT = append(append([]int{}, tJobs[:m.tRank+1]...), sJobs[m.sRank+1:]...)

	return newS, newT
}

func (m *TwoOpt) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	if m.sRank < 0 || m.sRank >= m.sol.Routes[m.sVehicle].Len() || m.tRank < 0 || m.tRank >= m.sol.Routes[m.tVehicle].Len() {
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

func (m *TwoOpt) IsValid() (bool, error) {
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

func (m *TwoOpt) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences()

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// ReverseTwoOpt splices the tail of sVehicle's route after sRank onto
// the *reversed* prefix of tVehicle's route up to tRank, and vice versa
// (§4.3): unlike TwoOpt, both donated segments are reversed in place.
type ReverseTwoOpt struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewReverseTwoOpt(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *ReverseTwoOpt {
	return &ReverseTwoOpt{
		base:  base{name: OpReverseTwoOpt, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *ReverseTwoOpt) sequences() (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	newS = append(append([]int{}, sJobs[:m.sRank+1]...), reversed(tJobs[:m.tRank+1])...)
	newT = append(reversed(sJobs[m.sRank+1:]), tJobs[m.tRank+1:]...)

	return newS, newT
}

func (m *ReverseTwoOpt) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	if m.sRank < 0 || m.sRank >= m.sol.Routes[m.sVehicle].Len() || m.tRank < 0 || m.tRank >= m.sol.Routes[m.tVehicle].Len() {
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

func (m *ReverseTwoOpt) IsValid() (bool, error) {
	newS, newT := m.sequences()
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]
	sRoute, tRoute := m.sol.Routes[m.sVehicle], m.sol.Routes[m.tVehicle]

	if ok, err := validAddition(m.prob, sVeh, sRoute, newS, 0, sRoute.Len()); err != nil || !ok {
		return false, err
	}
	if ok, err := validAddition(m.prob, tVeh, tRoute, newT, 0, tRoute.Len()); err != nil || !ok {
		return false, err
	}
	// Reversal can split a shipment from its sibling across routes or
	// invert their relative order: check both resulting sequences.
	if !shipmentPrecedenceOK(m.prob, newS) || !shipmentPrecedenceOK(m.prob, newT) {
		return false, nil
	}
	if !withinRangeBounds(sVeh, candidateRouteEval(m.prob, sVeh, newS)) ||
		!withinRangeBounds(tVeh, candidateRouteEval(m.prob, tVeh, newT)) {
		return false, nil
	}

	return true, nil
}

func (m *ReverseTwoOpt) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences()

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// IntraTwoOpt reverses the segment (sRank, tRank] of a single route
// (sRank < tRank); §8 requires this be NO_GAIN on a single-job route,
// which falls out naturally since no (sRank, tRank) pair exists.
type IntraTwoOpt struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewIntraTwoOpt(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) *IntraTwoOpt {
	return &IntraTwoOpt{
		base:  base{name: OpIntraTwoOpt, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *IntraTwoOpt) sequence() []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	out := make([]int, 0, len(jobs))
	out = append(out, jobs[:m.sRank+1]...)
	out = append(out, reversed(jobs[m.sRank+1:m.tRank+1])...)
	out = append(out, jobs[m.tRank+1:]...)

	return out
}

func (m *IntraTwoOpt) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sRank >= m.tRank {
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

func (m *IntraTwoOpt) IsValid() (bool, error) {
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

func (m *IntraTwoOpt) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence())
}
