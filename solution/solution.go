package solution

import (
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/route"
)

// Solution is the current assignment of jobs to vehicle routes: one
// route.TWRoute per vehicle, plus the set of job indices not currently on
// any route. Solution is the sole owner and mutator of its routes (§3):
// all mutation goes through Insert/Remove/Replace here rather than
// through the underlying routes directly, so the Unassigned set and the
// job→vehicle index never drift out of sync with route contents.
type Solution struct {
	Problem    *problem.Problem
	Routes     []*route.TWRoute
	Unassigned map[int]struct{}

	jobVehicle map[int]int
}

// New returns the trivial Solution for prob: every vehicle has an empty
// route and every job is unassigned.
func New(prob *problem.Problem) *Solution {
	routes := make([]*route.TWRoute, len(prob.Vehicles))
	for v := range prob.Vehicles {
		routes[v] = route.NewTWRoute(prob, v)
	}

	unassigned := make(map[int]struct{}, len(prob.Jobs))
	for _, j := range prob.Jobs {
		unassigned[j.Index] = struct{}{}
	}

	return &Solution{
		Problem:    prob,
		Routes:     routes,
		Unassigned: unassigned,
		jobVehicle: make(map[int]int),
	}
}

// IsAssigned reports whether job is present on some route.
func (s *Solution) IsAssigned(job int) bool {
	_, ok := s.jobVehicle[job]
	return ok
}

// VehicleOf returns the vehicle job is assigned to, if any.
func (s *Solution) VehicleOf(job int) (int, bool) {
	v, ok := s.jobVehicle[job]
	return v, ok
}

// RankOf returns the vehicle and in-route rank of job, if assigned. This
// is an O(route length) scan: callers on a hot path should track rank
// themselves across a sequence of mutations rather than re-deriving it.
func (s *Solution) RankOf(job int) (vehicle, rank int, ok bool) {
	v, assigned := s.jobVehicle[job]
	if !assigned {
		return 0, 0, false
	}
	for i, j := range s.Routes[v].Jobs() {
		if j == job {
			return v, i, true
		}
	}

	return 0, 0, false
}

// AssignedCount returns the number of jobs currently on some route.
func (s *Solution) AssignedCount() int {
	return len(s.jobVehicle)
}

// InsertJobs inserts jobs (all currently unassigned) into vehicle's route
// at rank at. On rejection (capacity, skills, time windows, MaxTasks) the
// solution is left unchanged.
func (s *Solution) InsertJobs(vehicle int, jobs []int, at int) error {
	if vehicle < 0 || vehicle >= len(s.Routes) {
		return ErrVehicleIndexOutOfRange
	}
	for _, j := range jobs {
		if _, ok := s.Unassigned[j]; !ok {
			return ErrJobAlreadyAssigned
		}
	}
	if err := s.Routes[vehicle].Insert(jobs, at); err != nil {
		return err
	}
	for _, j := range jobs {
		delete(s.Unassigned, j)
		s.jobVehicle[j] = vehicle
	}

	return nil
}

// RemoveJobs removes the count jobs at rank at from vehicle's route,
// marking them unassigned, and returns their job indices.
func (s *Solution) RemoveJobs(vehicle, at, count int) ([]int, error) {
	if vehicle < 0 || vehicle >= len(s.Routes) {
		return nil, ErrVehicleIndexOutOfRange
	}
	r := s.Routes[vehicle]
	if at < 0 || count < 0 || at+count > r.Len() {
		return nil, ErrJobIndexOutOfRange
	}
	removed := append([]int(nil), r.Jobs()[at:at+count]...)
	if err := r.Remove(at, count); err != nil {
		return nil, err
	}
	for _, j := range removed {
		delete(s.jobVehicle, j)
		s.Unassigned[j] = struct{}{}
	}

	return removed, nil
}

// ReplaceJobs substitutes the route slice vehicle[at:upto] with jobs. Any
// incoming job must either already be one of the jobs being displaced
// (a reorder/move within the same splice) or currently unassigned. On
// rejection the solution is left unchanged; on success it returns the
// displaced job indices, which are marked unassigned unless also present
// in the incoming jobs.
func (s *Solution) ReplaceJobs(vehicle int, jobs []int, at, upto int) ([]int, error) {
	if vehicle < 0 || vehicle >= len(s.Routes) {
		return nil, ErrVehicleIndexOutOfRange
	}
	r := s.Routes[vehicle]
	if at < 0 || upto < at || upto > r.Len() {
		return nil, ErrJobIndexOutOfRange
	}
	displaced := append([]int(nil), r.Jobs()[at:upto]...)
	freed := make(map[int]struct{}, len(displaced))
	for _, j := range displaced {
		freed[j] = struct{}{}
	}
	for _, j := range jobs {
		if _, ok := freed[j]; ok {
			continue
		}
		if _, ok := s.Unassigned[j]; !ok {
			return nil, ErrJobAlreadyAssigned
		}
	}

	if err := r.Replace(jobs, at, upto); err != nil {
		return nil, err
	}

	for _, j := range displaced {
		delete(s.jobVehicle, j)
		s.Unassigned[j] = struct{}{}
	}
	for _, j := range jobs {
		delete(s.Unassigned, j)
		s.jobVehicle[j] = vehicle
	}

	return displaced, nil
}
