package operator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/operator"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

func TestIntraTwoOptOnSingleJobRouteIsNoGain(t *testing.T) {
	p := buildProblem(t, 1, 1)
	sol, state := newSolutionState(t, p, [][]int{{0}})

	m := operator.NewIntraTwoOpt(p, sol, state, 0, 0, 0)
	require.True(t, m.Gain().IsNoGain())
}

func TestTwoOptRejectsSameVehicle(t *testing.T) {
	p := buildProblem(t, 3, 1)
	sol, state := newSolutionState(t, p, [][]int{{0, 1, 2}})

	m := operator.NewTwoOpt(p, sol, state, 0, 0, 0, 1)
	require.True(t, m.Gain().IsNoGain())
}

// TestReverseTwoOptChecksShipmentPrecedence puts a shipment's delivery
// alone on vehicle 0 and its pickup alone on vehicle 1: the reversed
// splice lands delivery before pickup on the resulting route, which
// must be rejected regardless of cost.
func TestReverseTwoOptChecksShipmentPrecedence(t *testing.T) {
	n := 3
	m, err := costmatrix.NewDense(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			require.NoError(t, m.SetDuration(i, j, 5))
			require.NoError(t, m.SetCost(i, j, 5))
		}
	}
	set := costmatrix.NewSet(map[string]costmatrix.Matrix{"car": m})

	jobs := []model.Job{
		{Index: 0, Location: 1, Kind: model.Delivery, ShipmentID: 1, Pickup: model.NewAmount(0), Delivery: model.NewAmount(1)},
		{Index: 1, Location: 2, Kind: model.Pickup, ShipmentID: 1, Pickup: model.NewAmount(0), Delivery: model.NewAmount(1)},
	}
	depot := 0
	vehicles := []model.Vehicle{
		{Index: 0, Start: &depot, End: &depot, Capacity: model.NewAmount(100), Profile: "car"},
		{Index: 1, Start: &depot, End: &depot, Capacity: model.NewAmount(100), Profile: "car"},
	}
	p, err := problem.New(jobs, vehicles, set, 1)
	require.NoError(t, err)

	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0}, 0))
	require.NoError(t, sol.InsertJobs(1, []int{1}, 0))
	state := solution.NewSolutionState(sol)

	op := operator.NewReverseTwoOpt(p, sol, state, 0, 0, 1, 0)
	op.Gain()
	ok, err := op.IsValid()
	require.NoError(t, err)
	require.False(t, ok, "delivery must not precede its pickup in the resulting route")
}
