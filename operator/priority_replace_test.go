package operator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/operator"
)

func TestPriorityReplaceRequiresUnassignedJob(t *testing.T) {
	p := buildProblem(t, 3, 1)
	p.Jobs[2].Priority = 100 // job 2 starts unassigned, highest priority
	sol, state := newSolutionState(t, p, [][]int{{0, 1}})

	m := operator.NewPriorityReplace(p, sol, state, 0, 0, 1, 2)
	require.Equal(t, []int{2}, m.RequiredUnassigned())

	gain := m.Gain()
	_ = gain
	require.Greater(t, m.PriorityGain(), 0)
}

func TestPriorityReplaceApplyEvictsLowerPriorityPrefix(t *testing.T) {
	p := buildProblem(t, 3, 1)
	p.Jobs[2].Priority = 100
	sol, state := newSolutionState(t, p, [][]int{{0, 1}})

	m := operator.NewPriorityReplace(p, sol, state, 0, 0, 1, 2)
	m.Gain()
	ok, err := m.IsValid()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, m.Apply())
	require.Contains(t, sol.Routes[0].Jobs(), 2)
	_, stillUnassigned := sol.Unassigned[0]
	require.True(t, stillUnassigned)
}
