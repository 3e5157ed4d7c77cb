package localsearch

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
	"github.com/routesmith/vrpls/solution"
)

// routeEval sums the travel Eval of vehicle's fixed start/end legs plus
// every consecutive-stop edge in seq, mirroring
// solution.SolutionState.Rebuild's route_evals formula for a
// not-yet-committed candidate sequence. The distance argument to
// CostModel.Cost is always 0 (see operator.candidateRouteEval's doc
// comment and DESIGN.md for why).
func routeEval(prob *problem.Problem, vehicle model.Vehicle, seq []int) model.Eval {
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
		e, err := prob.Eval(vehicle.Profile, locs[i], locs[i+1])
		if err == nil {
			total = total.Add(e)
		}
	}
	if len(seq) > 0 {
		total.Cost += vehicle.Cost.Cost(total.Duration, 0)
	}

	return total
}

// feasibleInsertion reports whether job can be placed at rank of
// vehicle v's current route without violating skills, MaxTasks,
// capacity, time windows or the vehicle's duration cap.
func feasibleInsertion(prob *problem.Problem, sol *solution.Solution, v, job, rank int) bool {
	vehicle := prob.Vehicles[v]
	r := sol.Routes[v]
	if !vehicle.IsCompatibleWith(prob.Jobs[job]) {
		return false
	}
	if vehicle.TaskLimitReached(r.Len()) {
		return false
	}
	ok, err := r.IsValidAdditionForCapacity(prob.Jobs[job].Delivery, []int{job}, rank, rank)
	if err != nil || !ok {
		return false
	}
	ok, err = r.IsValidAdditionForTW([]int{job}, rank, rank)
	if err != nil || !ok {
		return false
	}
	newSeq := make([]int, 0, r.Len()+1)
	newSeq = append(newSeq, r.Jobs()[:rank]...)
	newSeq = append(newSeq, job)
	newSeq = append(newSeq, r.Jobs()[rank:]...)

	return vehicle.WithinDurationCap(routeEval(prob, vehicle, newSeq).Duration)
}

// cheapestInsertion finds the (vehicle, rank) pair that admits job at
// the smallest cost delta over every vehicle's route, trying every
// insertion rank on every vehicle (§4.6, "re-insert via cheapest
// insertion over all vehicles"). ok is false if job fits nowhere.
func cheapestInsertion(prob *problem.Problem, sol *solution.Solution, state *solution.SolutionState, job int) (vehicle, rank int, delta model.Eval, ok bool) {
	best := model.NoGain
	bestVehicle, bestRank := -1, -1

	for v := range sol.Routes {
		r := sol.Routes[v]
		n := r.Len()
		for rnk := 0; rnk <= n; rnk++ {
			if !feasibleInsertion(prob, sol, v, job, rnk) {
				continue
			}
			newSeq := make([]int, 0, n+1)
			newSeq = append(newSeq, r.Jobs()[:rnk]...)
			newSeq = append(newSeq, job)
			newSeq = append(newSeq, r.Jobs()[rnk:]...)
			d := routeEval(prob, prob.Vehicles[v], newSeq).Sub(state.RouteEvals[v])
			if d.Less(best) {
				best = d
				bestVehicle, bestRank = v, rnk
			}
		}
	}

	if bestVehicle < 0 {
		return 0, 0, model.NoGain, false
	}

	return bestVehicle, bestRank, best, true
}
