package operator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/operator"
)

func TestRelocateMovesJobBetweenRoutes(t *testing.T) {
	p := buildProblem(t, 4, 2)
	// Vehicle 0: jobs 0,1 far apart via depot; vehicle 1 empty.
	sol, state := newSolutionState(t, p, [][]int{{0, 1}, {}})

	m := operator.NewRelocate(p, sol, state, 0, 1, 1, 0)
	gain := m.Gain()
	require.True(t, gain.IsNoGain() || gain.Cost >= 0)

	ok, err := m.IsValid()
	require.NoError(t, err)
	if gain.Positive() {
		require.True(t, ok)
		require.NoError(t, m.Apply())
		require.Equal(t, []int{0}, sol.Routes[0].Jobs())
		require.Equal(t, []int{1}, sol.Routes[1].Jobs())
	}
}

func TestRelocateRejectsSameVehicle(t *testing.T) {
	p := buildProblem(t, 2, 1)
	sol, state := newSolutionState(t, p, [][]int{{0, 1}})

	m := operator.NewRelocate(p, sol, state, 0, 0, 0, 1)
	require.True(t, m.Gain().IsNoGain())
}

func TestRelocateApplyBeforeValidIsRejected(t *testing.T) {
	p := buildProblem(t, 2, 2)
	sol, state := newSolutionState(t, p, [][]int{{0}, {1}})

	m := operator.NewRelocate(p, sol, state, 0, 0, 1, 0)
	require.Equal(t, operator.ErrNotApplicable, m.Apply())
}

func TestIntraRelocateOnSingleJobRouteIsNoGain(t *testing.T) {
	p := buildProblem(t, 1, 1)
	sol, state := newSolutionState(t, p, [][]int{{0}})

	m := operator.NewIntraRelocate(p, sol, state, 0, 0, 0)
	require.True(t, m.Gain().IsNoGain())
}

func TestIsValidIsIdempotent(t *testing.T) {
	p := buildProblem(t, 4, 2)
	sol, state := newSolutionState(t, p, [][]int{{0, 1}, {2, 3}})

	m := operator.NewExchange(p, sol, state, 0, 0, 1, 0)
	m.Gain()
	ok1, err1 := m.IsValid()
	ok2, err2 := m.IsValid()
	require.Equal(t, ok1, ok2)
	require.Equal(t, err1, err2)
}
