package localsearch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/localsearch"
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// buildLineProblem lays the depot (location 0) and n jobs (locations
// 1..n) on a line, so the optimal route visits jobs in location order
// and cost is a direct function of how scrambled a route is.
func buildLineProblem(t *testing.T, n, numVehicles int) *problem.Problem {
	t.Helper()

	m, err := costmatrix.NewDense(n + 1)
	require.NoError(t, err)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			if i == j {
				continue
			}
			d := i - j
			if d < 0 {
				d = -d
			}
			require.NoError(t, m.SetDuration(i, j, int64(d)*5))
			require.NoError(t, m.SetCost(i, j, int64(d)*10))
		}
	}
	set := costmatrix.NewSet(map[string]costmatrix.Matrix{"car": m})

	jobs := make([]model.Job, n)
	for i := range jobs {
		jobs[i] = model.Job{
			Index:    i,
			Location: i + 1,
			Kind:     model.Single,
			Delivery: model.NewAmount(1),
			Pickup:   model.NewAmount(0),
		}
	}

	depot := 0
	vehicles := make([]model.Vehicle, numVehicles)
	for v := range vehicles {
		vehicles[v] = model.Vehicle{
			Index:    v,
			Start:    &depot,
			End:      &depot,
			Capacity: model.NewAmount(int64(n)),
			Profile:  "car",
		}
	}

	p, err := problem.New(jobs, vehicles, set, 1)
	require.NoError(t, err)

	return p
}

func totalCost(sol *solution.Solution) int64 {
	state := solution.NewSolutionState(sol)
	var total int64
	for _, ev := range state.RouteEvals {
		total += ev.Cost
	}

	return total
}

func TestEngineRunReducesScrambledRouteCost(t *testing.T) {
	p := buildLineProblem(t, 6, 1)
	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0, 4, 1, 5, 2, 3}, 0))
	before := totalCost(sol)

	eng, err := localsearch.NewEngine(p, sol, localsearch.WithSeed(7), localsearch.WithMaxNbJobsRemoval(2))
	require.NoError(t, err)

	result, err := eng.Run()
	require.NoError(t, err)

	for j := 0; j < 6; j++ {
		require.True(t, result.IsAssigned(j), "job %d should remain assigned", j)
	}
	require.Less(t, totalCost(result), before, "local search should reduce the scrambled route's cost")
}

func TestEngineRunAssignsInitiallyUnassignedJobs(t *testing.T) {
	p := buildLineProblem(t, 4, 2)
	sol := solution.New(p)

	eng, err := localsearch.NewEngine(p, sol, localsearch.WithSeed(3))
	require.NoError(t, err)

	result, err := eng.Run()
	require.NoError(t, err)

	for j := 0; j < 4; j++ {
		require.True(t, result.IsAssigned(j), "job %d should be inserted from the unassigned set", j)
	}
	require.Empty(t, result.Unassigned)
}

func TestNewEngineRejectsMismatchedSolution(t *testing.T) {
	p1 := buildLineProblem(t, 2, 1)
	p2 := buildLineProblem(t, 2, 1)
	sol := solution.New(p2)

	_, err := localsearch.NewEngine(p1, sol)
	require.ErrorIs(t, err, localsearch.ErrSolutionProblemMismatch)
}

func TestNewEngineRejectsNilInputs(t *testing.T) {
	p := buildLineProblem(t, 1, 1)
	sol := solution.New(p)

	_, err := localsearch.NewEngine(nil, sol)
	require.ErrorIs(t, err, localsearch.ErrNilProblem)

	_, err = localsearch.NewEngine(p, nil)
	require.ErrorIs(t, err, localsearch.ErrNilSolution)
}

func TestEngineRunParallelAtLeastAsGoodAsSingleRun(t *testing.T) {
	p := buildLineProblem(t, 8, 2)
	seedSol := func() *solution.Solution {
		sol := solution.New(p)
		require.NoError(t, sol.InsertJobs(0, []int{0, 6, 2, 7, 1, 4}, 0))
		require.NoError(t, sol.InsertJobs(1, []int{5, 3}, 0))

		return sol
	}

	single, err := localsearch.NewEngine(p, seedSol(), localsearch.WithSeed(11))
	require.NoError(t, err)
	singleResult, err := single.Run()
	require.NoError(t, err)

	parallel, err := localsearch.NewEngine(p, seedSol(), localsearch.WithSeed(11))
	require.NoError(t, err)
	parallelResult, err := parallel.RunParallel(4)
	require.NoError(t, err)

	require.LessOrEqual(t, totalCost(parallelResult), totalCost(singleResult)+1,
		"running several independent searches should not do meaningfully worse than one")
}

func TestEngineRunParallelRejectsNonPositiveWorkerCount(t *testing.T) {
	p := buildLineProblem(t, 2, 1)
	eng, err := localsearch.NewEngine(p, solution.New(p))
	require.NoError(t, err)

	_, err = eng.RunParallel(0)
	require.ErrorIs(t, err, localsearch.ErrNoVehicles)
}
