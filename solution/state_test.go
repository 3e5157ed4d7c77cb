package solution_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/solution"
)

// Locations: depot=0, job0=1, job1=2, job2=3; every off-diagonal
// cost/duration entry is 5, so a two-job route [job0, job1] visits
// depot->1->2->depot at uniform edge weight 5.
func TestRebuildRouteEvalsAndGains(t *testing.T) {
	p := buildProblem(t, 3, 1)
	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0, 1}, 0))

	st := solution.NewSolutionState(sol)

	require.Equal(t, model.Eval{Cost: 15, Duration: 15}, st.RouteEvals[0])

	require.Len(t, st.NodeGains[0], 2)
	require.Equal(t, model.Eval{Cost: 5, Duration: 5}, st.NodeGains[0][0])
	require.Equal(t, model.Eval{Cost: 5, Duration: 5}, st.NodeGains[0][1])

	require.Len(t, st.EdgeGains[0], 1)
	require.Equal(t, model.Eval{Cost: 15, Duration: 15}, st.EdgeGains[0][0])
}

func TestRebuildInsertionCachesFindsNearestStop(t *testing.T) {
	p := buildProblem(t, 3, 1)
	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0, 1}, 0))

	st := solution.NewSolutionState(sol)

	// job 2 is unassigned; every cost is uniform (5), so its nearest rank
	// is rank 0 (the first rank examined to tie-break ties).
	rank, ok := st.NearestJobRankInRoutesFrom[0][2]
	require.True(t, ok)
	require.Equal(t, 0, rank)

	begin := st.InsertionRanksBegin[0][2]
	end := st.InsertionRanksEnd[0][2]
	require.Equal(t, 0, begin)
	require.Equal(t, 2, end)
}

func TestRebuildEmptyRouteHasZeroEvalAndNoGains(t *testing.T) {
	p := buildProblem(t, 2, 1)
	sol := solution.New(p)

	st := solution.NewSolutionState(sol)

	require.Equal(t, model.Eval{}, st.RouteEvals[0])
	require.Empty(t, st.NodeGains[0])
	require.Empty(t, st.EdgeGains[0])
}

func TestRebuildSingleCallOnlyTouchesThatVehicle(t *testing.T) {
	p := buildProblem(t, 2, 2)
	sol := solution.New(p)
	require.NoError(t, sol.InsertJobs(0, []int{0}, 0))
	require.NoError(t, sol.InsertJobs(1, []int{1}, 0))

	st := solution.NewSolutionState(sol)
	before := st.RouteEvals[1]

	_, err := sol.RemoveJobs(0, 0, 1)
	require.NoError(t, err)
	require.NoError(t, st.Rebuild(sol, 0))

	require.Equal(t, model.Eval{}, st.RouteEvals[0])
	require.Equal(t, before, st.RouteEvals[1])
}
