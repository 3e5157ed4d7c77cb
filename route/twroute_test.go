package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/route"
)

func buildTWProblem(t *testing.T, jobs []model.Job, n int) *problem.Problem {
	t.Helper()

	m, err := costmatrix.NewDense(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			require.NoError(t, m.SetDuration(i, j, 10))
			require.NoError(t, m.SetCost(i, j, 10))
		}
	}
	set := costmatrix.NewSet(map[string]costmatrix.Matrix{"car": m})

	vehicles := []model.Vehicle{{
		Index:    0,
		Capacity: model.NewAmount(100),
		Profile:  "car",
	}}

	p, err := problem.New(jobs, vehicles, set, 1)
	require.NoError(t, err)

	return p
}

func twJob(idx, loc int, start, end int64) model.Job {
	return model.Job{
		Index:       idx,
		Location:    loc,
		Kind:        model.Single,
		Delivery:    model.NewAmount(1),
		Pickup:      model.NewAmount(0),
		Service:     5,
		TimeWindows: []model.TimeWindow{{Start: start, End: end}},
	}
}

func TestTWRouteAcceptsFeasibleSequence(t *testing.T) {
	jobs := []model.Job{
		twJob(0, 0, 0, 100),
		twJob(1, 1, 20, 100),
	}
	p := buildTWProblem(t, jobs, 2)

	r := route.NewTWRoute(p, 0)
	require.NoError(t, r.Insert([]int{0, 1}, 0))
	require.True(t, r.Feasible())

	e0, err := r.EarliestStart(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), e0)

	e1, err := r.EarliestStart(1)
	require.NoError(t, err)
	// Arrival at job 1 is earliest(job0)+service(5)+travel(10) = 15,
	// clipped up to job1's window opening at 20.
	require.Equal(t, int64(20), e1)
}

func TestTWRouteRejectsUnreachableWindow(t *testing.T) {
	jobs := []model.Job{
		twJob(0, 0, 0, 100),
		twJob(1, 1, 0, 5), // closes long before travel+service can reach it
	}
	p := buildTWProblem(t, jobs, 2)

	r := route.NewTWRoute(p, 0)
	err := r.Insert([]int{0, 1}, 0)
	require.ErrorIs(t, err, route.ErrTimeWindowInfeasible)
	require.Equal(t, 0, r.Len())
}

func TestTWRouteReplaceRevalidatesWholeRoute(t *testing.T) {
	jobs := []model.Job{
		twJob(0, 0, 0, 100),
		twJob(1, 1, 20, 100),
		twJob(2, 2, 40, 100),
	}
	p := buildTWProblem(t, jobs, 3)

	r := route.NewTWRoute(p, 0)
	require.NoError(t, r.Insert([]int{0, 1, 2}, 0))

	// Replacing job 1 with a job whose window closes before it can be
	// reached must be rejected and leave the route untouched.
	tightJobs := []model.Job{
		twJob(0, 0, 0, 100),
		{Index: 1, Location: 1, Kind: model.Single, Pickup: model.NewAmount(0), Delivery: model.NewAmount(1), Service: 5,
			TimeWindows: []model.TimeWindow{{Start: 0, End: 1}}},
		twJob(2, 2, 40, 100),
	}
	p2 := buildTWProblem(t, tightJobs, 3)
	r2 := route.NewTWRoute(p2, 0)
	require.NoError(t, r2.Insert([]int{0, 2}, 0))

	err := r2.Replace([]int{1}, 1, 1)
	require.ErrorIs(t, err, route.ErrTimeWindowInfeasible)
	require.Equal(t, []int{0, 2}, r2.Jobs())
}

func TestTWRouteLatestStartBoundedByVehicleWindow(t *testing.T) {
	jobs := []model.Job{twJob(0, 0, 0, 100)}
	p := buildTWProblem(t, jobs, 1)
	p.Vehicles[0].TimeWindows = []model.TimeWindow{{Start: 0, End: 50}}

	r := route.NewTWRoute(p, 0)
	require.NoError(t, r.Insert([]int{0}, 0))

	latest, err := r.LatestStart(0)
	require.NoError(t, err)
	// Vehicle window closes at 50; job service takes 5, so the latest
	// feasible start is 45.
	require.Equal(t, int64(45), latest)
}

func TestTWRouteRejectsDepartureInVehicleWindowGap(t *testing.T) {
	jobs := []model.Job{twJob(0, 0, 30, 100)}
	p := buildTWProblem(t, jobs, 1)
	// Two disjoint vehicle windows with a gap between them; job 0's own
	// window only opens at 30, squarely inside the gap.
	p.Vehicles[0].TimeWindows = []model.TimeWindow{{Start: 0, End: 10}, {Start: 40, End: 100}}

	r := route.NewTWRoute(p, 0)
	err := r.Insert([]int{0}, 0)
	require.ErrorIs(t, err, route.ErrTimeWindowInfeasible)
}

func TestTWRouteDepartsInEarliestOpenVehicleWindow(t *testing.T) {
	jobs := []model.Job{twJob(0, 0, 0, 100)}
	p := buildTWProblem(t, jobs, 1)
	p.Vehicles[0].TimeWindows = []model.TimeWindow{{Start: 0, End: 10}, {Start: 40, End: 100}}

	r := route.NewTWRoute(p, 0)
	require.NoError(t, r.Insert([]int{0}, 0))

	e0, err := r.EarliestStart(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), e0)
}

func TestTWRoutePlacesBreakInEarliestOpenWindow(t *testing.T) {
	jobs := []model.Job{
		twJob(0, 0, 0, 100),
		twJob(1, 1, 0, 100),
	}
	p := buildTWProblem(t, jobs, 2)
	p.Vehicles[0].Breaks = []model.Break{{
		ID:          0,
		Service:     5,
		TimeWindows: []model.TimeWindow{{Start: 3, End: 50}},
	}}

	r := route.NewTWRoute(p, 0)
	require.NoError(t, r.Insert([]int{0, 1}, 0))
	require.True(t, r.Feasible())

	start, rank, err := r.BreakStart(0)
	require.NoError(t, err)
	// Break window opens at 3, the earliest open instant after the
	// route's rank-0 departure (cursor 0), so it's taken before job 0
	// ever starts.
	require.Equal(t, int64(3), start)
	require.Equal(t, 0, rank)

	// Job 0's own earliest start is pushed out by the break ahead of it.
	e0, err := r.EarliestStart(0)
	require.NoError(t, err)
	require.Equal(t, int64(8), e0)
}

func TestTWRouteRejectsUnplaceableBreak(t *testing.T) {
	jobs := []model.Job{twJob(0, 0, 0, 100)}
	p := buildTWProblem(t, jobs, 1)
	// The vehicle only departs at 10.
	p.Vehicles[0].TimeWindows = []model.TimeWindow{{Start: 10, End: 100}}
	p.Vehicles[0].Breaks = []model.Break{{
		ID:          0,
		Service:     5,
		TimeWindows: []model.TimeWindow{{Start: 0, End: 1}}, // closed before the vehicle departs
	}}

	r := route.NewTWRoute(p, 0)
	err := r.Insert([]int{0}, 0)
	require.ErrorIs(t, err, route.ErrTimeWindowInfeasible)
}

func TestTWRouteUnusedVehicleSkipsMandatoryBreak(t *testing.T) {
	p := buildTWProblem(t, nil, 1)
	p.Vehicles[0].Breaks = []model.Break{{
		ID:          0,
		Service:     5,
		TimeWindows: []model.TimeWindow{{Start: 0, End: 1}},
	}}

	r := route.NewTWRoute(p, 0)
	require.True(t, r.Feasible())
	require.Equal(t, 0, r.Len())
}
