package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/route"
)

// buildProblem constructs a small single-vehicle, single-dimension-capacity
// problem over n locations with a uniform unit cost/duration matrix.
func buildProblem(t *testing.T, jobs []model.Job, capacity int64, n int) *problem.Problem {
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
		Capacity: model.NewAmount(capacity),
		Profile:  "car",
	}}

	p, err := problem.New(jobs, vehicles, set, 1)
	require.NoError(t, err)

	return p
}

func deliveryJob(idx, loc int, amount int64) model.Job {
	return model.Job{Index: idx, Location: loc, Kind: model.Single, Delivery: model.NewAmount(amount), Pickup: model.NewAmount(0)}
}

func pickupJob(idx, loc int, amount int64) model.Job {
	return model.Job{Index: idx, Location: loc, Kind: model.Single, Delivery: model.NewAmount(0), Pickup: model.NewAmount(amount)}
}

func TestRawRouteInsertWithinCapacity(t *testing.T) {
	jobs := []model.Job{deliveryJob(0, 0, 3), deliveryJob(1, 1, 4)}
	p := buildProblem(t, jobs, 10, 2)

	r := route.NewRawRoute(p, 0)
	require.NoError(t, r.Insert([]int{0, 1}, 0))
	require.Equal(t, []int{0, 1}, r.Jobs())

	max := r.MaxLoad()
	require.Equal(t, model.NewAmount(7), max)
}

func TestRawRouteInsertExceedsCapacity(t *testing.T) {
	jobs := []model.Job{deliveryJob(0, 0, 6), deliveryJob(1, 1, 6)}
	p := buildProblem(t, jobs, 10, 2)

	r := route.NewRawRoute(p, 0)
	err := r.Insert([]int{0, 1}, 0)
	require.ErrorIs(t, err, route.ErrCapacityExceeded)
	require.Equal(t, 0, r.Len())
}

func TestRawRouteReplaceRejectsOverCapacityWithoutMutating(t *testing.T) {
	jobsWithReplacement := []model.Job{
		deliveryJob(0, 0, 2),
		deliveryJob(1, 1, 4),
		deliveryJob(2, 2, 2),
	}
	p2 := buildProblem(t, jobsWithReplacement, 5, 3)
	r2 := route.NewRawRoute(p2, 0)
	require.NoError(t, r2.Insert([]int{0, 2}, 0))
	err := r2.Replace([]int{1}, 1, 1)
	require.ErrorIs(t, err, route.ErrCapacityExceeded)
	require.Equal(t, []int{0, 2}, r2.Jobs())
}

func TestRawRoutePickupAndDeliveryMixedLoadProfile(t *testing.T) {
	jobs := []model.Job{
		deliveryJob(0, 0, 5),
		pickupJob(1, 1, 3),
	}
	p := buildProblem(t, jobs, 5, 2)

	r := route.NewRawRoute(p, 0)
	require.NoError(t, r.Insert([]int{0, 1}, 0))

	load0, err := r.LoadAtStep(0)
	require.NoError(t, err)
	require.Equal(t, model.NewAmount(5), load0)

	load1, err := r.LoadAtStep(1)
	require.NoError(t, err)
	require.Equal(t, model.NewAmount(0), load1)

	load2, err := r.LoadAtStep(2)
	require.NoError(t, err)
	require.Equal(t, model.NewAmount(3), load2)
}

func TestRawRouteMaxTasksEnforced(t *testing.T) {
	jobs := []model.Job{deliveryJob(0, 0, 1), deliveryJob(1, 1, 1)}
	p := buildProblem(t, jobs, 10, 2)
	maxTasks := 1
	p.Vehicles[0].MaxTasks = &maxTasks

	r := route.NewRawRoute(p, 0)
	err := r.Insert([]int{0, 1}, 0)
	require.ErrorIs(t, err, route.ErrMaxTasksExceeded)
}

func TestRawRouteSkillMismatchRejected(t *testing.T) {
	jobs := []model.Job{{Index: 0, Location: 0, Kind: model.Single, Delivery: model.NewAmount(1), Pickup: model.NewAmount(0), RequiredSkills: model.NewSkillSet(3)}}
	p := buildProblem(t, jobs, 10, 1)

	r := route.NewRawRoute(p, 0)
	err := r.Insert([]int{0}, 0)
	require.ErrorIs(t, err, route.ErrSkillMismatch)
}

func TestRawRouteRemove(t *testing.T) {
	jobs := []model.Job{deliveryJob(0, 0, 1), deliveryJob(1, 1, 1), deliveryJob(2, 2, 1)}
	p := buildProblem(t, jobs, 10, 3)

	r := route.NewRawRoute(p, 0)
	require.NoError(t, r.Insert([]int{0, 1, 2}, 0))
	require.NoError(t, r.Remove(1, 1))
	require.Equal(t, []int{0, 2}, r.Jobs())
}

func TestRawRouteSubRouteMaxLoadOutOfRange(t *testing.T) {
	jobs := []model.Job{deliveryJob(0, 0, 1)}
	p := buildProblem(t, jobs, 10, 1)
	r := route.NewRawRoute(p, 0)

	_, err := r.SubRouteMaxLoadBefore(-1)
	require.ErrorIs(t, err, route.ErrIndexOutOfRange)

	_, err = r.SubRouteMaxLoadAfter(99)
	require.ErrorIs(t, err, route.ErrIndexOutOfRange)
}
