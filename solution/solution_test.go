package solution_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

func buildProblem(t *testing.T, numJobs, numVehicles int) *problem.Problem {
	t.Helper()

	n := numJobs + 1 // +1 for the shared depot location
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

func TestNewSolutionAllJobsUnassigned(t *testing.T) {
	p := buildProblem(t, 3, 1)
	sol := solution.New(p)

	require.Len(t, sol.Unassigned, 3)
	require.Equal(t, 0, sol.AssignedCount())
	require.False(t, sol.IsAssigned(0))
}

func TestInsertJobsAssignsAndClearsUnassigned(t *testing.T) {
	p := buildProblem(t, 2, 1)
	sol := solution.New(p)

	require.NoError(t, sol.InsertJobs(0, []int{0, 1}, 0))
	require.Equal(t, 2, sol.AssignedCount())
	require.Empty(t, sol.Unassigned)

	v, ok := sol.VehicleOf(1)
	require.True(t, ok)
	require.Equal(t, 0, v)

	vehicle, rank, ok := sol.RankOf(1)
	require.True(t, ok)
	require.Equal(t, 0, vehicle)
	require.Equal(t, 1, rank)
}

func TestInsertJobsRejectsAlreadyAssigned(t *testing.T) {
	p := buildProblem(t, 2, 2)
	sol := solution.New(p)

	require.NoError(t, sol.InsertJobs(0, []int{0}, 0))
	err := sol.InsertJobs(1, []int{0}, 0)
	require.ErrorIs(t, err, solution.ErrJobAlreadyAssigned)
}

func TestRemoveJobsMarksUnassigned(t *testing.T) {
	p := buildProblem(t, 2, 1)
	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0, 1}, 0))

	removed, err := sol.RemoveJobs(0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []int{0}, removed)
	require.Contains(t, sol.Unassigned, 0)
	require.False(t, sol.IsAssigned(0))
}

func TestReplaceJobsSwapsDisplacedForUnassigned(t *testing.T) {
	p := buildProblem(t, 3, 1)
	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0, 1}, 0))

	displaced, err := sol.ReplaceJobs(0, []int{2}, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1}, displaced)
	require.Contains(t, sol.Unassigned, 1)
	require.True(t, sol.IsAssigned(2))
	require.Equal(t, []int{0, 2}, sol.Routes[0].Jobs())
}
