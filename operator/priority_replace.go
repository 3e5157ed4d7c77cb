package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// PriorityReplace replaces either the prefix [0, sRank] or the suffix
// [tRank, end) of vehicle's route with a single unassigned job u
// (§4.3, §4.6). Gain picks the side with the higher priority gain,
// breaking a tie by the larger cost gain; IsValid checks only that side,
// and the other side is not tried when it is infeasible. The engine's
// round loop gives this move's PriorityGain precedence over ordinary
// cost gain when ordering the queue.
type PriorityReplace struct {
	base
	prob  *problem.Problem
	sol   *solution.Solution
	state *solution.SolutionState
	u     int

	replaceStart bool
	priorityGain int
}

func NewPriorityReplace(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, vehicle, sRank, tRank, u int) *PriorityReplace {
	return &PriorityReplace{
		base:  base{name: OpPriorityReplace, sVehicle: vehicle, sRank: sRank, tVehicle: vehicle, tRank: tRank},
		prob:  prob,
		sol:   sol,
		state: state,
		u:     u,
	}
}

func (m *PriorityReplace) RequiredUnassigned() []int { return []int{m.u} }

// PriorityGain returns the net priority improvement of the chosen side
// (sum of priorities freed by eviction minus u's priority, negated: a
// higher-priority u replacing lower-priority evictees is a net gain).
func (m *PriorityReplace) PriorityGain() int { return m.priorityGain }

func (m *PriorityReplace) jobsPriority(jobs []int) int {
	total := 0
	for _, j := range jobs {
		total += m.prob.Jobs[j].Priority
	}

	return total
}

func (m *PriorityReplace) startSequence() []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()

	return append([]int{m.u}, jobs[m.sRank+1:]...)
}

func (m *PriorityReplace) endSequence() []int {
	jobs := m.sol.Routes[m.sVehicle].Jobs()

	return append(append([]int{}, jobs[:m.tRank]...), m.u)
}

func (m *PriorityReplace) Gain() model.Eval {
	if m.gainComputed {
		return m.storedGain
	}
	m.gainComputed = true
	m.storedGain = model.NoGain

	n := m.sol.Routes[m.sVehicle].Len()
	if m.sRank < 0 || m.sRank >= n || m.tRank < 0 || m.tRank > n {
		return m.storedGain
	}

	jobs := m.sol.Routes[m.sVehicle].Jobs()
	vehicle := m.prob.Vehicles[m.sVehicle]
	oldEval := m.state.RouteEvals[m.sVehicle]

	startSeq := m.startSequence()
	startGain := oldEval.Sub(candidateRouteEval(m.prob, vehicle, startSeq))
	startPriority := m.prob.Jobs[m.u].Priority - m.jobsPriority(jobs[:m.sRank+1])

	endSeq := m.endSequence()
	endGain := oldEval.Sub(candidateRouteEval(m.prob, vehicle, endSeq))
	endPriority := m.prob.Jobs[m.u].Priority - m.jobsPriority(jobs[m.tRank:])

	useStart := startPriority > endPriority || (startPriority == endPriority && startGain.Cost >= endGain.Cost)

	m.replaceStart = useStart
	if useStart {
		m.storedGain = startGain
		m.priorityGain = startPriority
	} else {
		m.storedGain = endGain
		m.priorityGain = endPriority
	}

	return m.storedGain
}

func (m *PriorityReplace) sequence() []int {
	if m.replaceStart {
		return m.startSequence()
	}

	return m.endSequence()
}

func (m *PriorityReplace) IsValid() (bool, error) {
	newSeq := m.sequence()
	vehicle := m.prob.Vehicles[m.sVehicle]
	r := m.sol.Routes[m.sVehicle]

	var at, upto int
	if m.replaceStart {
		at, upto = 0, m.sRank+1
	} else {
		at, upto = m.tRank, r.Len()
	}

	if ok, err := r.IsValidAdditionForCapacity(sumDeliveries(m.prob, []int{m.u}), []int{m.u}, at, upto); err != nil {
		return false, err
	} else if !ok {
		return false, nil
	}
	if ok, err := r.IsValidAdditionForTW([]int{m.u}, at, upto); err != nil || !ok {
		return false, err
	}
	if !vehicle.IsCompatibleWith(m.prob.Jobs[m.u]) {
		return false, nil
	}
	if !shipmentPrecedenceOK(m.prob, newSeq) {
		return false, nil
	}
	if !withinRangeBounds(vehicle, candidateRouteEval(m.prob, vehicle, newSeq)) {
		return false, nil
	}

	return m.priorityGain > 0 || m.storedGain.Positive(), nil
}

func (m *PriorityReplace) Apply() error {
	if m.priorityGain <= 0 && !m.storedGain.Positive() {
		return ErrNotApplicable
	}

	return rebuildRoute(m.sol, m.sVehicle, m.sequence())
}
