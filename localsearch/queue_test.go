package localsearch

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/operator"
)

// fakeMove is a minimal operator.Move stand-in so queue ordering can be
// unit tested without building a full Problem/Solution.
type fakeMove struct {
	name       operator.OperatorName
	invalidate map[int]bool
	required   []int
}

func (m *fakeMove) Name() operator.OperatorName         { return m.name }
func (m *fakeMove) Gain() model.Eval                    { return model.Eval{Cost: 1} }
func (m *fakeMove) IsValid() (bool, error)              { return true, nil }
func (m *fakeMove) Apply() error                        { return nil }
func (m *fakeMove) AdditionCandidates() []int           { return nil }
func (m *fakeMove) UpdateCandidates() []int             { return nil }
func (m *fakeMove) RequiredUnassigned() []int           { return m.required }
func (m *fakeMove) InvalidatedBy(vehicle int) bool      { return m.invalidate[vehicle] }

func gainCandidate(name operator.OperatorName, sV, sR, tV, tR int, cost int64) *candidate {
	return newCandidate(name, sV, sR, tV, tR, func() (operator.Move, model.Eval, int, bool) {
		return &fakeMove{name: name}, model.Eval{Cost: cost}, 0, false
	})
}

func priorityCandidate(name operator.OperatorName, sV, sR, tV, tR int, priorityGain int) *candidate {
	return newCandidate(name, sV, sR, tV, tR, func() (operator.Move, model.Eval, int, bool) {
		return &fakeMove{name: name}, model.Eval{Cost: 0}, priorityGain, true
	})
}

func TestCandidateLessPriorityGainOutranksCostGain(t *testing.T) {
	c1 := gainCandidate(operator.OpRelocate, 0, 0, 1, 0, 1000)
	c2 := priorityCandidate(operator.OpPriorityReplace, 0, 0, 1, 0, 1)

	require.True(t, c2.less(c1), "a priority-gain candidate must outrank any cost-gain candidate")
	require.False(t, c1.less(c2))
}

func TestCandidateLessOrdersByGainThenStableTuple(t *testing.T) {
	high := gainCandidate(operator.OpRelocate, 0, 0, 1, 0, 50)
	low := gainCandidate(operator.OpRelocate, 0, 1, 1, 0, 10)
	require.True(t, high.less(low))

	tieA := gainCandidate(operator.OpExchange, 0, 0, 1, 0, 20)
	tieB := gainCandidate(operator.OpRelocate, 0, 0, 1, 0, 20)
	require.True(t, tieA.less(tieB), "lower operator id wins the stable tie-break on an equal gain")
}

func TestCandidateQueuePopsHighestGainFirst(t *testing.T) {
	all := []*candidate{
		gainCandidate(operator.OpRelocate, 0, 0, 1, 0, 5),
		gainCandidate(operator.OpRelocate, 0, 1, 1, 0, 50),
		gainCandidate(operator.OpRelocate, 0, 2, 1, 0, 20),
	}
	q := newCandidateQueue(all)

	first := heap.Pop(q).(*candidate)
	require.Equal(t, int64(50), first.gain.Cost)
	second := heap.Pop(q).(*candidate)
	require.Equal(t, int64(20), second.gain.Cost)
	third := heap.Pop(q).(*candidate)
	require.Equal(t, int64(5), third.gain.Cost)
}

func TestCandidateStaleForDetectsTouchedVehicle(t *testing.T) {
	c := newCandidate(operator.OpRelocate, 0, 0, 1, 0, func() (operator.Move, model.Eval, int, bool) {
		return &fakeMove{name: operator.OpRelocate, invalidate: map[int]bool{1: true}}, model.Eval{Cost: 10}, 0, false
	})

	require.False(t, c.staleFor(nil, map[int]bool{2: true}))
	require.True(t, c.staleFor(nil, map[int]bool{1: true}))
}

func TestCandidateReadyDistinguishesPriorityAndCostGain(t *testing.T) {
	zero := gainCandidate(operator.OpRelocate, 0, 0, 1, 0, 0)
	require.False(t, zero.ready())

	positive := gainCandidate(operator.OpRelocate, 0, 0, 1, 0, 5)
	require.True(t, positive.ready())

	zeroPriority := priorityCandidate(operator.OpPriorityReplace, 0, 0, 1, 0, 0)
	require.False(t, zeroPriority.ready())

	positivePriority := priorityCandidate(operator.OpPriorityReplace, 0, 0, 1, 0, 3)
	require.True(t, positivePriority.ready())
}
