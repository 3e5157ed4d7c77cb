package localsearch

import (
	"container/heap"

	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/operator"
	"github.com/routesmith/vrpls/solution"
)

// priorityGainer is implemented only by PriorityReplace: its queue
// ordering is driven by net priority improvement rather than cost gain
// (§4.6, "PriorityReplace taking precedence via its priority-gain
// field").
type priorityGainer interface {
	PriorityGain() int
}

// candidate is one entry in a round's priority queue: the move itself,
// its memoised gain, the (vehicle, rank) tuple used for the stable
// tie-break (§5, "Ordering"), and a rebuild closure that reconstructs a
// fresh instance of the same move against the engine's current
// sol/state — used to recompute a gain the lazy queue has marked stale
// rather than trusting the Move's own (already-cached) Gain().
type candidate struct {
	name            operator.OperatorName
	sVehicle, sRank int
	tVehicle, tRank int
	move            operator.Move
	gain            model.Eval
	priorityGain    int
	hasPriorityGain bool
	rebuild         func() (operator.Move, model.Eval, int, bool)
}

func newCandidate(name operator.OperatorName, sVehicle, sRank, tVehicle, tRank int, rebuild func() (operator.Move, model.Eval, int, bool)) *candidate {
	c := &candidate{name: name, sVehicle: sVehicle, sRank: sRank, tVehicle: tVehicle, tRank: tRank, rebuild: rebuild}
	c.move, c.gain, c.priorityGain, c.hasPriorityGain = rebuild()

	return c
}

// refresh reconstructs the candidate's move against current solution
// state and updates its cached gain in place.
func (c *candidate) refresh() {
	c.move, c.gain, c.priorityGain, c.hasPriorityGain = c.rebuild()
}

// staleFor reports whether c's cached move has been invalidated by a
// move already applied this round: either it touches a vehicle in
// touched (InvalidatedBy), or it requires a job to still be unassigned
// (RequiredUnassigned) that some other move has since claimed.
func (c *candidate) staleFor(sol *solution.Solution, touched map[int]bool) bool {
	for v := range touched {
		if c.move.InvalidatedBy(v) {
			return true
		}
	}
	for _, j := range c.move.RequiredUnassigned() {
		if _, ok := sol.Unassigned[j]; !ok {
			return true
		}
	}

	return false
}

// ready reports whether the candidate is still worth popping: either a
// positive priority gain (PriorityReplace) or a positive cost gain.
func (c *candidate) ready() bool {
	if c.hasPriorityGain {
		return c.priorityGain > 0
	}

	return c.gain.Positive()
}

// less reports whether c outranks other in queue priority: PriorityReplace
// candidates always outrank plain cost-gain candidates; among candidates
// of the same kind, higher gain wins; ties break on the stable
// (operator, sVehicle, sRank, tVehicle, tRank) tuple (§5).
func (c *candidate) less(other *candidate) bool {
	if c.hasPriorityGain != other.hasPriorityGain {
		return c.hasPriorityGain
	}
	if c.hasPriorityGain {
		if c.priorityGain != other.priorityGain {
			return c.priorityGain > other.priorityGain
		}
	} else if c.gain != other.gain {
		return other.gain.Less(c.gain)
	}

	if c.name != other.name {
		return c.name < other.name
	}
	if c.sVehicle != other.sVehicle {
		return c.sVehicle < other.sVehicle
	}
	if c.sRank != other.sRank {
		return c.sRank < other.sRank
	}
	if c.tVehicle != other.tVehicle {
		return c.tVehicle < other.tVehicle
	}

	return c.tRank < other.tRank
}

// candidateQueue is a max-heap of *candidate ordered by candidate.less,
// modelled on dijkstra's nodePQ: a container/heap.Interface with a
// lazy-refresh usage pattern (push a recomputed candidate rather than
// mutating one already in the heap).
type candidateQueue []*candidate

func (q candidateQueue) Len() int            { return len(q) }
func (q candidateQueue) Less(i, j int) bool  { return q[i].less(q[j]) }
func (q candidateQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *candidateQueue) Push(x interface{}) { *q = append(*q, x.(*candidate)) }
func (q *candidateQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}

// newCandidateQueue builds a heap-ordered queue from a flat slice of
// candidates gathered across every operator class.
func newCandidateQueue(all []*candidate) *candidateQueue {
	q := candidateQueue(all)
	heap.Init(&q)

	return &q
}
