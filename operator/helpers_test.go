package operator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// buildProblem returns a Problem with numJobs single jobs at locations
// 1..numJobs and numVehicles vehicles starting/ending at depot location
// 0, all travelling on a uniform-cost dense matrix (cost==duration==5
// per edge, 0 on the diagonal).
func buildProblem(t *testing.T, numJobs, numVehicles int) *problem.Problem {
	t.Helper()

	n := numJobs + 1
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

	jobs := make([]model.Job, numJobs)
	for i := range jobs {
		jobs[i] = model.Job{Index: i, Location: i + 1, Kind: model.Single, Delivery: model.NewAmount(1), Pickup: model.NewAmount(0)}
	}

	depot := 0
	vehicles := make([]model.Vehicle, numVehicles)
	for v := range vehicles {
		vehicles[v] = model.Vehicle{Index: v, Start: &depot, End: &depot, Capacity: model.NewAmount(100), Profile: "car"}
	}

	p, err := problem.New(jobs, vehicles, set, 1)
	require.NoError(t, err)

	return p
}

// newSolutionState builds sol/state for a problem, assigning jobs to
// vehicles per assignment (vehicle index -> ordered job indices).
func newSolutionState(t *testing.T, p *problem.Problem, assignment [][]int) (*solution.Solution, *solution.SolutionState) {
	t.Helper()

	sol := solution.New(p)
	for v, jobs := range assignment {
		require.NoError(t, sol.InsertJobs(v, jobs, 0))
	}
	state := solution.NewSolutionState(sol)

	return sol, state
}
