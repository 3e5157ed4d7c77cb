package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// Relocate moves a single job from rank sRank of sVehicle's route to
// rank tRank of a different vehicle's route (§4.3).
type Relocate struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

// NewRelocate returns a Relocate candidate; sVehicle must differ from
// tVehicle (use NewIntraRelocate for a same-route move).
func NewRelocate(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *Relocate {
	return &Relocate{
		base:  base{name: OpRelocate, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *Relocate) sequences() (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()
	job := sJobs[m.sRank]

	newS = append(append([]int{}, sJobs[:m.sRank]...), sJobs[m.sRank+1:]...)
	newT = make([]int, 0, len(tJobs)+1)
	newT = append(newT, tJobs[:m.tRank]...)
	newT = append(newT, job)
	newT = append(newT, tJobs[m.tRank:]...)

	return newS, newT
}

func (m *Relocate) Gain() model.Eval {
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

func (m *Relocate) IsValid() (bool, error) {
	newS, newT := m.sequences()
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]
	sRoute, tRoute := m.sol.Routes[m.sVehicle], m.sol.Routes[m.tVehicle]

	if ok, err := validAddition(m.prob, sVeh, sRoute, newS, 0, sRoute.Len()); err != nil || !ok {
		return false, err
	}
	if ok, err := validAddition(m.prob, tVeh, tRoute, newT, 0, tRoute.Len()); err != nil || !ok {
		return false, err
	}
	if !shipmentPrecedenceOK(m.prob, newT) {
		return false, nil
	}
	if !withinRangeBounds(sVeh, candidateRouteEval(m.prob, sVeh, newS)) ||
		!withinRangeBounds(tVeh, candidateRouteEval(m.prob, tVeh, newT)) {
		return false, nil
	}

	return true, nil
}

func (m *Relocate) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	newS, newT := m.sequences()

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// IntraRelocate moves a single job from sRank to tRank within the same
// route. tRank is given in the route's original (pre-move) numbering.
type IntraRelocate struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
}

func NewIntraRelocate(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) *IntraRelocate {
	return &IntraRelocate{
		base:  base{name: OpIntraRelocate, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *IntraRelocate) sequence() []int {
	jobs := append([]int{}, m.sol.Routes[m.sVehicle].Jobs()...)
	job := jobs[m.sRank]
	rest := append(append([]int{}, jobs[:m.sRank]...), jobs[m.sRank+1:]...)

	at := m.tRank
	if m.tRank > m.sRank {
		at--
	}
	out := make([]int, 0, len(jobs))
	out = append(out, rest[:at]...)
	out = append(out, job)
	out = append(out, rest[at:]...)

	return out
}

func (m *IntraRelocate) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sRank == m.tRank || m.sRank+1 == m.tRank {
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

func (m *IntraRelocate) IsValid() (bool, error) {
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

func (m *IntraRelocate) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence())
}
