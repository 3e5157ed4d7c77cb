package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// TSPFix re-solves vehicle's whole route as a travelling-salesman repair
// pass and replaces it if cheaper (§4.3). sRank/tRank are unused.
//
// tsp.TwoOpt (the teacher's TSP solver) operates on closed cycles over a
// float64 matrix.Matrix, built for symmetric/asymmetric tours that start
// and end at the same vertex. A vehicle route here is an open path with
// independent, possibly distinct start/end locations and model.Eval
// (int64 cost+duration) costs, so that solver's cycle/float64 contract
// doesn't fit directly — see DESIGN.md. TSPFix instead runs the same
// first-improvement 2-opt idiom directly over job ranks, scored by
// candidateRouteEval.
type TSPFix struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
	fixed []int
}

func NewTSPFix(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle int) *TSPFix {
	return &TSPFix{
		base:  base{name: OpTSPFix, sVehicle: vehicle, tVehicle: vehicle},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

// twoOptRepair runs segment-reversal first-improvement 2-opt over seq
// until no reversal lowers candidateRouteEval's Cost, returning the
// locally-optimal sequence found.
func twoOptRepair(prob *problem.Problem, vehicle model.Vehicle, seq []int) []int {
	best := append([]int{}, seq...)
	bestEval := candidateRouteEval(prob, vehicle, best)

	for improved := true; improved; {
		improved = false
		n := len(best)
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				candidate := make([]int, 0, n)
				candidate = append(candidate, best[:i]...)
				candidate = append(candidate, reversed(best[i:j+1])...)
				candidate = append(candidate, best[j+1:]...)

				eval := candidateRouteEval(prob, vehicle, candidate)
				if eval.Cost < bestEval.Cost {
					best, bestEval = candidate, eval
					improved = true
				}
			}
		}
	}

	return best
}

func (m *TSPFix) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	seq := m.sol.Routes[m.sVehicle].Jobs()
	if len(seq) < 2 {
		return m.storedGain
	}

	vehicle := m.prob.Vehicles[m.sVehicle]
	fixed := twoOptRepair(m.prob, vehicle, seq)
	gain := m.state.RouteEvals[m.sVehicle].Sub(candidateRouteEval(m.prob, vehicle, fixed))
	if gain.Positive() {
		m.storedGain = gain
		m.fixed = fixed
	}

	return m.storedGain
}

func (m *TSPFix) IsValid() (bool, error) {
	vehicle := m.prob.Vehicles[m.sVehicle]
	r := m.sol.Routes[m.sVehicle]

	if ok, err := validAddition(m.prob, vehicle, r, m.fixed, 0, r.Len()); err != nil || !ok {
		return false, err
	}
	if !shipmentPrecedenceOK(m.prob, m.fixed) {
		return false, nil
	}
	if !withinRangeBounds(vehicle, candidateRouteEval(m.prob, vehicle, m.fixed)) {
		return false, nil
	}

	return true, nil
}

func (m *TSPFix) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.fixed)
}
