package operator

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/route"
	"github.com/routesmith/vrpls/solution"
)

// skillsCompatible reports whether vehicle can serve every job in jobs.
// RawRoute.Replace already enforces this at mutation time; operators
// duplicate the (trivial) check here so IsValid can reject without
// mutating.
func skillsCompatible(prob *problem.Problem, vehicle model.Vehicle, jobs []int) bool {
	for _, j := range jobs {
		if !vehicle.IsCompatibleWith(prob.Jobs[j]) {
			return false
		}
	}

	return true
}

// taskCountOK reports whether vehicle's MaxTasks (if set) admits a route
// of newLen jobs.
func taskCountOK(vehicle model.Vehicle, newLen int) bool {
	return vehicle.MaxTasks == nil || newLen <= *vehicle.MaxTasks
}

// withinRangeBounds reports whether a candidate route Eval respects
// vehicle's MaxDuration cap (§4.3, "range-bound validity"). MaxDistance
// is deliberately not checked here; see DESIGN.md for why the 2-channel
// cost/duration oracle makes that cap unenforceable from an Eval alone.
func withinRangeBounds(vehicle model.Vehicle, candidate model.Eval) bool {
	return vehicle.WithinDurationCap(candidate.Duration)
}

// sumDeliveries returns the total Delivery amount of jobs.
func sumDeliveries(prob *problem.Problem, jobs []int) model.Amount {
	sum := model.ZeroAmount(prob.AmountDim)
	for _, j := range jobs {
		sum, _ = sum.Add(prob.Jobs[j].Delivery)
	}

	return sum
}

// validAddition runs every non-mutating feasibility check an addition of
// rangeJobs at r.Jobs()[at:upto] must pass: vehicle skills, MaxTasks,
// capacity (RawRoute.IsValidAdditionForCapacity), and time windows
// (TWRoute.IsValidAdditionForTW). It does not check shipment precedence
// or range bounds, which depend on the surrounding move's own semantics.
func validAddition(prob *problem.Problem, vehicle model.Vehicle, r *route.TWRoute, rangeJobs []int, at, upto int) (bool, error) {
	if !skillsCompatible(prob, vehicle, rangeJobs) {
		return false, nil
	}
	newLen := r.Len() - (upto - at) + len(rangeJobs)
	if !taskCountOK(vehicle, newLen) {
		return false, nil
	}
	if ok, err := r.IsValidAdditionForCapacity(sumDeliveries(prob, rangeJobs), rangeJobs, at, upto); err != nil {
		return false, err
	} else if !ok {
		return false, nil
	}

	return r.IsValidAdditionForTW(rangeJobs, at, upto)
}

// shipmentPrecedenceOK reports whether every pickup in resulting whose
// delivery sibling is also in resulting comes before that delivery. A
// shipment half whose sibling is absent from resulting passes: the check
// does not require both halves of a shipment to share a route. Moves
// that relocate only Single jobs, or move a whole (pickup,delivery) pair
// together preserving their relative order, trivially satisfy this and
// may skip the check.
func shipmentPrecedenceOK(prob *problem.Problem, resulting []int) bool {
	rank := make(map[int]int, len(resulting))
	for i, j := range resulting {
		rank[j] = i
	}
	for _, j := range resulting {
		job := prob.Jobs[j]
		if job.Kind != model.Pickup {
			continue
		}
		sibling, ok := prob.Sibling(job)
		if !ok {
			continue
		}
		dRank, onRoute := rank[sibling]
		if onRoute && dRank < rank[j] {
			return false
		}
	}

	return true
}

// stopLocation returns the location index of vehicle v's route at rank
// (0 <= rank < route length), or of its fixed start/end when rank is
// negative/>= the route length respectively. -1 means no such location
// (an unbounded vehicle start/end): the edge to/from it does not exist.
func stopLocation(prob *problem.Problem, sol *solution.Solution, v, rank int) int {
	r := sol.Routes[v]
	vehicle := prob.Vehicles[v]
	switch {
	case rank < 0:
		if vehicle.HasStart() {
			return *vehicle.Start
		}
		return -1
	case rank >= r.Len():
		if vehicle.HasEnd() {
			return *vehicle.End
		}
		return -1
	default:
		return prob.Jobs[r.Jobs()[rank]].Location
	}
}

// evalAt returns the travel Eval between two location indices, or the
// zero Eval if either is -1 (no such edge) or the profile/locations are
// invalid.
func evalAt(prob *problem.Problem, profile string, fromLoc, toLoc int) model.Eval {
	if fromLoc < 0 || toLoc < 0 {
		return model.Eval{}
	}
	e, err := prob.Eval(profile, fromLoc, toLoc)
	if err != nil {
		return model.Eval{}
	}

	return e
}

// edgeEval returns the travel Eval between vehicle v's route ranks i and
// j (either may be -1 or r.Len() to mean "vehicle start"/"vehicle end").
func edgeEval(prob *problem.Problem, sol *solution.Solution, profile string, v, i, j int) model.Eval {
	return evalAt(prob, profile, stopLocation(prob, sol, v, i), stopLocation(prob, sol, v, j))
}

// rebuildRoute rewrites vehicle v's entire route as newSeq through the
// Solution's bookkeeping. Every job in newSeq must already be on v's
// route or currently unassigned — true for any intra-route move, since
// newSeq is a reordering of v's own jobs.
func rebuildRoute(sol *solution.Solution, v int, newSeq []int) error {
	_, err := sol.ReplaceJobs(v, newSeq, 0, sol.Routes[v].Len())
	return err
}

// candidateRouteEval computes the Eval a route would realise if vehicle
// served exactly seq, in order: sum of consecutive-stop travel Evals
// (including the vehicle's fixed start/end legs, if any) plus the
// vehicle's cost model applied to the resulting route duration, when seq
// is non-empty. This mirrors solution.SolutionState.Rebuild's route_evals
// formula (§8, "route_evals equals the sum of step-to-step edge costs
// plus vehicle fixed cost"), applied to a not-yet-committed candidate
// sequence. The distance argument to CostModel.Cost is always 0: the
// cost/duration oracle (costmatrix.Matrix) exposes only Cost and
// Duration, no separate distance channel, so PerDistance never accrues
// here — see DESIGN.md.
func candidateRouteEval(prob *problem.Problem, vehicle model.Vehicle, seq []int) model.Eval {
	locs := make([]int, 0, len(seq)+2)
	if vehicle.HasStart() {
		locs = append(locs, *vehicle.Start)
	}
	for _, j := range seq {
		locs = append(locs, prob.Jobs[j].Location)
	}
	if vehicle.HasEnd() {
		locs = append(locs, *vehicle.End)
	}

	var total model.Eval
	for i := 0; i+1 < len(locs); i++ {
		total = total.Add(evalAt(prob, vehicle.Profile, locs[i], locs[i+1]))
	}
	if len(seq) > 0 {
		total.Cost += vehicle.Cost.Cost(total.Duration, 0)
	}

	return total
}

// rebuildBothRoutes clears sVehicle's and tVehicle's routes entirely
// (marking every job on them unassigned), then reinserts newS/newT. This
// is the general-purpose apply step for every inter-route move in this
// catalog: clearing both routes before reinserting sidesteps any
// ordering hazard between jobs moving from one route to the other, at
// the cost of an O(route length) rebuild Apply already pays for via
// RawRoute.recompute.
func rebuildBothRoutes(sol *solution.Solution, sVehicle int, newS []int, tVehicle int, newT []int) error {
	if _, err := sol.RemoveJobs(sVehicle, 0, sol.Routes[sVehicle].Len()); err != nil {
		return err
	}
	if _, err := sol.RemoveJobs(tVehicle, 0, sol.Routes[tVehicle].Len()); err != nil {
		return err
	}
	if err := sol.InsertJobs(sVehicle, newS, 0); err != nil {
		return err
	}

	return sol.InsertJobs(tVehicle, newT, 0)
}
