package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// RouteSplit splits vehicle's route at some rank into two halves, each
// reassigned to a distinct currently-empty vehicle, if that is cheaper
// than keeping one vehicle serve it all (§4.3, §4.5). sRank/tRank are
// unused; the split point and target vehicles are search outputs of
// Gain.
type RouteSplit struct {
	base
	prob          *problem.Problem
	sol           *solution.Solution
	state         *solution.SolutionState
	emptyVehicles []int

	splitRank    int
	vBegin, vEnd int
}

// NewRouteSplit returns a RouteSplit candidate for vehicle's route,
// searching emptyVehicles (vehicles with no jobs assigned) for the
// cheapest feasible two-way split. Requires at least two empty vehicles.
func NewRouteSplit(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle int, emptyVehicles []int) (*RouteSplit, error) {
	if len(emptyVehicles) < 2 {
		return nil, ErrInsufficientEmptyVehicles
	}

	return &RouteSplit{
		base:          base{name: OpRouteSplit, sVehicle: vehicle, tVehicle: vehicle},
		prob:          prob,
		sol:           sol,
		state:         state,
		emptyVehicles: emptyVehicles,
	}, nil
}

func (m *RouteSplit) halves(splitRank int) (first, second []int) {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	return append([]int{}, jobs[:splitRank]...), append([]int{}, jobs[splitRank:]...)
}

func (m *RouteSplit) feasible(vehicleIdx int, jobs []int) bool {
	if len(jobs) == 0 {
		return true
	}
	vehicle := m.prob.Vehicles[vehicleIdx]
	r := m.sol.Routes[vehicleIdx]
	ok, err := validAddition(m.prob, vehicle, r, jobs, 0, r.Len())
	if err != nil || !ok {
		return false
	}

	return shipmentPrecedenceOK(m.prob, jobs) && withinRangeBounds(vehicle, candidateRouteEval(m.prob, vehicle, jobs))
}

func (m *RouteSplit) InvalidatedBy(vehicle int) bool {
	return vehicle == m.sVehicle || vehicle == m.vBegin || vehicle == m.vEnd
}

func (m *RouteSplit) AdditionCandidates() []int { return []int{m.sVehicle, m.vBegin, m.vEnd} }
func (m *RouteSplit) UpdateCandidates() []int   { return []int{m.sVehicle, m.vBegin, m.vEnd} }

func (m *RouteSplit) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	n := m.sol.Routes[m.sVehicle].Len()
	if n < 2 {
		return m.storedGain
	}

	oldEval := m.state.RouteEvals[m.sVehicle]
	best := model.NoGain
	bestSplit, bestBegin, bestEnd := 0, 0, 0

	for splitRank := 1; splitRank < n; splitRank++ {
		first, second := m.halves(splitRank)

		for i := 0; i < len(m.emptyVehicles); i++ {
			for j := 0; j < len(m.emptyVehicles); j++ {
				if i == j {
					continue
				}
				v1, v2 := m.emptyVehicles[i], m.emptyVehicles[j]
				if !m.feasible(v1, first) || !m.feasible(v2, second) {
					continue
				}
				newTotal := candidateRouteEval(m.prob, m.prob.Vehicles[v1], first).
					Add(candidateRouteEval(m.prob, m.prob.Vehicles[v2], second))
				gain := oldEval.Sub(newTotal)
				if gain.Positive() && (best.IsNoGain() || gain.Cost > best.Cost) {
					best, bestSplit, bestBegin, bestEnd = gain, splitRank, v1, v2
				}
			}
		}
	}

	if best.Positive() {
		m.storedGain = best
		m.splitRank, m.vBegin, m.vEnd = bestSplit, bestBegin, bestEnd
	}

	return m.storedGain
}

func (m *RouteSplit) IsValid() (bool, error) {
	if !m.storedGain.Positive() {
		return false, nil
	}
	first, second := m.halves(m.splitRank)
	if m.sol.Routes[m.vBegin].Len() != 0 || m.sol.Routes[m.vEnd].Len() != 0 {
		return false, nil
	}

	return m.feasible(m.vBegin, first) && m.feasible(m.vEnd, second), nil
}

func (m *RouteSplit) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	first, second := m.halves(m.splitRank)

	if _, err := m.sol.RemoveJobs(m.sVehicle, 0, m.sol.Routes[m.sVehicle].Len()); err != nil {
		return err
	}
	if err := m.sol.InsertJobs(m.vBegin, first, 0); err != nil {
		return err
	}

	return m.sol.InsertJobs(m.vEnd, second, 0)
}
