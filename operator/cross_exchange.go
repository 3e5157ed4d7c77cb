package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// CrossExchange swaps the two-job edge at sRank/sRank+1 of sVehicle's
// route with the two-job edge at tRank/tRank+1 of a different vehicle's
// route, with either edge optionally reversed in place (§4.3). All four
// orientation combinations are compared by raw gain; the best is what
// IsValid/Apply act on (same documented simplification as OrOpt: no
// fallback to a worse-but-feasible orientation).
type CrossExchange struct {
	base
	prob               *problem.Problem
	sol                *solution.Solution
	state              *solution.SolutionState
	reverseS, reverseT bool
}

func NewCrossExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, sVehicle, sRank, tVehicle, tRank int) *CrossExchange {
	return &CrossExchange{
		base:  base{name: OpCrossExchange, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *CrossExchange) edges() (sEdge, tEdge []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	return append([]int{}, sJobs[m.sRank:m.sRank+2]...), append([]int{}, tJobs[m.tRank:m.tRank+2]...)
}

func (m *CrossExchange) sequences(sEdge, tEdge []int) (newS, newT []int) {
	sJobs := m.sol.Routes[m.sVehicle].Jobs()
	tJobs := m.sol.Routes[m.tVehicle].Jobs()

	newS = make([]int, 0, len(sJobs))
	newS = append(newS, sJobs[:m.sRank]...)
	newS = append(newS, tEdge...)
	newS = append(newS, sJobs[m.sRank+2:]...)

	newT = make([]int, 0, len(tJobs))
	newT = append(newT, tJobs[:m.tRank]...)
	newT = append(newT, sEdge...)
	newT = append(newT, tJobs[m.tRank+2:]...)

	return newS, newT
}

func (m *CrossExchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	if m.sVehicle == m.tVehicle {
		return m.storedGain
	}
	sLen, tLen := m.sol.Routes[m.sVehicle].Len(), m.sol.Routes[m.tVehicle].Len()
	if m.sRank+2 > sLen || m.tRank+2 > tLen {
		return m.storedGain
	}

	sEdge, tEdge := m.edges()
	sVeh, tVeh := m.prob.Vehicles[m.sVehicle], m.prob.Vehicles[m.tVehicle]
	oldTotal := m.state.RouteEvals[m.sVehicle].Add(m.state.RouteEvals[m.tVehicle])

	best := model.NoGain
	var bestRS, bestRT bool
	for _, rs := range []bool{false, true} {
		for _, rt := range []bool{false, true} {
			se, te := sEdge, tEdge
			if rs {
				se = reversed(sEdge)
			}
			if rt {
				te = reversed(tEdge)
			}
			newS, newT := m.sequences(se, te)
			gain := oldTotal.Sub(candidateRouteEval(m.prob, sVeh, newS)).Sub(candidateRouteEval(m.prob, tVeh, newT))
			if best.IsNoGain() || gain.Cost > best.Cost {
				best, bestRS, bestRT = gain, rs, rt
			}
		}
	}

	if best.Positive() {
		m.storedGain = best
		m.reverseS, m.reverseT = bestRS, bestRT
	}

	return m.storedGain
}

func (m *CrossExchange) chosenEdges() (sEdge, tEdge []int) {
	sEdge, tEdge = m.edges()
	if m.reverseS {
		sEdge = reversed(sEdge)
	}
	if m.reverseT {
		tEdge = reversed(tEdge)
	}

	return sEdge, tEdge
}

func (m *CrossExchange) IsValid() (bool, error) {
	sEdge, tEdge := m.chosenEdges()
	newS, newT := m.sequences(sEdge, tEdge)
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

func (m *CrossExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	sEdge, tEdge := m.chosenEdges()
	newS, newT := m.sequences(sEdge, tEdge)

	return rebuildBothRoutes(m.sol, m.sVehicle, newS, m.tVehicle, newT)
}

// IntraCrossExchange swaps the two-job edges at sRank/sRank+1 and
// tRank/tRank+1 within the same route (sRank+2 <= tRank so the edges
// don't overlap), with either optionally reversed.
type IntraCrossExchange struct {
	base
	prob               *problem.Problem
	sol                *solution.Solution
	state              *solution.SolutionState
	reverseS, reverseT bool
}

func NewIntraCrossExchange(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank int) *IntraCrossExchange {
	return &IntraCrossExchange{
		base:  base{name: OpIntraCrossExchange, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
	}
}

func (m *IntraCrossExchange) edges() (sEdge, tEdge []int) {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	return append([]int{}, jobs[m.sRank:m.sRank+2]...), append([]int{}, jobs[m.tRank:m.tRank+2]...)
}

func (m *IntraCrossExchange) sequence(sEdge, tEdge []int) []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()
	out := make([]int, 0, len(jobs))
	out = append(out, jobs[:m.sRank]...)
	out = append(out, tEdge...)
	out = append(out, jobs[m.sRank+2:m.tRank]...)
	out = append(out, sEdge...)
	out = append(out, jobs[m.tRank+2:]...)

	return out
}

func (m *IntraCrossExchange) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	n := m.sol.Routes[m.sVehicle].Len()
	if m.sRank+2 > m.tRank || m.tRank+2 > n {
		return m.storedGain
	}

	sEdge, tEdge := m.edges()
	vehicle := m.prob.Vehicles[m.sVehicle]
	oldEval := m.state.RouteEvals[m.sVehicle]

	best := model.NoGain
	var bestRS, bestRT bool
	for _, rs := range []bool{false, true} {
		for _, rt := range []bool{false, true} {
			se, te := sEdge, tEdge
			if rs {
				se = reversed(sEdge)
			}
			if rt {
				te = reversed(tEdge)
			}
			gain := oldEval.Sub(candidateRouteEval(m.prob, vehicle, m.sequence(se, te)))
			if best.IsNoGain() || gain.Cost > best.Cost {
				best, bestRS, bestRT = gain, rs, rt
			}
		}
	}

	if best.Positive() {
		m.storedGain = best
		m.reverseS, m.reverseT = bestRS, bestRT
	}

	return m.storedGain
}

func (m *IntraCrossExchange) chosenEdges() (sEdge, tEdge []int) {
	sEdge, tEdge = m.edges()
	if m.reverseS {
		sEdge = reversed(sEdge)
	}
	if m.reverseT {
		tEdge = reversed(tEdge)
	}

	return sEdge, tEdge
}

func (m *IntraCrossExchange) IsValid() (bool, error) {
	sEdge, tEdge := m.chosenEdges()
	newSeq := m.sequence(sEdge, tEdge)
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

func (m *IntraCrossExchange) Apply() error {
	if !m.storedGain.Positive() {
		return ErrNotApplicable
	}
	sEdge, tEdge := m.chosenEdges()

	return rebuildRoute(m.sol, m.sVehicle, m.sequence(sEdge, tEdge))
}
