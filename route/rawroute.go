package route

import (
	"github.com/routesmith/vrpls/model"
	"github.com/routesmith/vrpls/problem"
)

// RawRoute is the ordered job sequence assigned to one vehicle, together
// with the incremental capacity caches that let feasibility of a
// [at, upto) replacement be checked without rescanning the whole route.
//
// Boundary k (0 <= k <= len(Jobs())) names the point in the sequence just
// after the first k jobs have been served. load[k] is the vehicle's
// pointwise cargo at that boundary:
//
//	load[k] = bwdDeliveries[k] + fwdPickups[k]
//
// fwdPickups[k] is the Pickup total of Jobs()[:k] (already collected);
// bwdDeliveries[k] is the Delivery total of Jobs()[k:] (loaded at the
// depot, still owed). prefixMax[i] and suffixMax[i] cache the pointwise
// maximum of load over [0,i] and [i,n] respectively.
type RawRoute struct {
	prob    *problem.Problem
	vehicle int
	jobs    []int

	fwdPickups    []model.Amount
	bwdDeliveries []model.Amount
	load          []model.Amount
	prefixMax     []model.Amount
	suffixMax     []model.Amount
}

// NewRawRoute returns an empty route for the given vehicle.
func NewRawRoute(prob *problem.Problem, vehicleIndex int) *RawRoute {
	r := &RawRoute{prob: prob, vehicle: vehicleIndex}
	r.recompute()

	return r
}

// Vehicle returns the owning vehicle's index.
func (r *RawRoute) Vehicle() int { return r.vehicle }

// Jobs returns the route's job indices in visiting order. The slice is
// shared with the route's internal state and must not be mutated.
func (r *RawRoute) Jobs() []int { return r.jobs }

// Len returns the number of jobs in the route.
func (r *RawRoute) Len() int { return len(r.jobs) }

func (r *RawRoute) vehicleModel() model.Vehicle { return r.prob.Vehicles[r.vehicle] }

// recompute rebuilds every cache from scratch in O(n). Called after every
// accepted mutation; the per-mutation cost of a replace/insert/remove is
// therefore O(n), while feasibility of a *candidate* replacement can be
// checked in O(range length) via IsValidAdditionForCapacity before the
// mutation is committed.
func (r *RawRoute) recompute() {
	n := len(r.jobs)
	dim := r.prob.AmountDim

	r.fwdPickups = make([]model.Amount, n+1)
	r.bwdDeliveries = make([]model.Amount, n+1)
	r.load = make([]model.Amount, n+1)
	r.prefixMax = make([]model.Amount, n+1)
	r.suffixMax = make([]model.Amount, n+1)

	r.fwdPickups[0] = model.ZeroAmount(dim)
	for i := 0; i < n; i++ {
		j := r.prob.Jobs[r.jobs[i]]
		r.fwdPickups[i+1], _ = r.fwdPickups[i].Add(j.Pickup)
	}

	r.bwdDeliveries[n] = model.ZeroAmount(dim)
	for i := n - 1; i >= 0; i-- {
		j := r.prob.Jobs[r.jobs[i]]
		r.bwdDeliveries[i], _ = r.bwdDeliveries[i+1].Add(j.Delivery)
	}

	for k := 0; k <= n; k++ {
		r.load[k], _ = r.bwdDeliveries[k].Add(r.fwdPickups[k])
	}

	r.prefixMax[0] = r.load[0].Clone()
	for k := 1; k <= n; k++ {
		r.prefixMax[k], _ = r.prefixMax[k-1].Max(r.load[k])
	}

	r.suffixMax[n] = r.load[n].Clone()
	for k := n - 1; k >= 0; k-- {
		r.suffixMax[k], _ = r.suffixMax[k+1].Max(r.load[k])
	}
}

// LoadAtStep returns the load aboard the vehicle at boundary k (0 <= k <=
// Len()), i.e. the cargo between having served Jobs()[:k] and Jobs()[k:].
func (r *RawRoute) LoadAtStep(k int) (model.Amount, error) {
	if k < 0 || k > len(r.jobs) {
		return nil, ErrIndexOutOfRange
	}

	return r.load[k].Clone(), nil
}

// MaxLoad returns the pointwise maximum load over every boundary in the
// route.
func (r *RawRoute) MaxLoad() model.Amount {
	return r.prefixMax[len(r.jobs)].Clone()
}

// JobDeliveriesSum returns the total delivery amount of the whole route
// (the load the vehicle must carry from the depot before serving job 0).
func (r *RawRoute) JobDeliveriesSum() model.Amount {
	return r.bwdDeliveries[0].Clone()
}

// SubRouteMaxLoadBefore returns the pointwise maximum load over boundaries
// [0, k], which is unaffected by any mutation of jobs at or after k.
func (r *RawRoute) SubRouteMaxLoadBefore(k int) (model.Amount, error) {
	if k < 0 || k > len(r.jobs) {
		return nil, ErrIndexOutOfRange
	}

	return r.prefixMax[k].Clone(), nil
}

// SubRouteMaxLoadAfter returns the pointwise maximum load over boundaries
// [k, Len()], which is unaffected by any mutation of jobs strictly
// before k.
func (r *RawRoute) SubRouteMaxLoadAfter(k int) (model.Amount, error) {
	if k < 0 || k > len(r.jobs) {
		return nil, ErrIndexOutOfRange
	}

	return r.suffixMax[k].Clone(), nil
}

// capacityShifts returns the constant Amount shift applied to every cached
// load value strictly before `at` (shiftPrefix) and strictly from `upto`
// onward (shiftSuffix) when the range [at, upto) is replaced by content
// whose own totals are deliverySum/pickupSum. Both shifts fold out of the
// additive load decomposition: see doc.go.
func (r *RawRoute) capacityShifts(deliverySum, pickupSum model.Amount, at, upto int) (shiftPrefix, shiftSuffix model.Amount, err error) {
	d, err := deliverySum.Add(r.bwdDeliveries[upto])
	if err != nil {
		return nil, nil, err
	}
	shiftPrefix, err = d.Sub(r.bwdDeliveries[at])
	if err != nil {
		return nil, nil, err
	}

	p, err := r.fwdPickups[at].Add(pickupSum)
	if err != nil {
		return nil, nil, err
	}
	shiftSuffix, err = p.Sub(r.fwdPickups[upto])
	if err != nil {
		return nil, nil, err
	}

	return shiftPrefix, shiftSuffix, nil
}

// IsValidAdditionForCapacity reports whether replacing Jobs()[at:upto]
// with rangeJobs keeps pointwise load within the vehicle's capacity at
// every boundary of the resulting route. deliverySum must equal the sum
// of Delivery amounts over rangeJobs (callers typically already hold this
// cached; recomputing it here would defeat the point of the O(range
// length) bound). The route itself is left unmodified; call Replace to
// commit.
func (r *RawRoute) IsValidAdditionForCapacity(deliverySum model.Amount, rangeJobs []int, at, upto int) (bool, error) {
	if at < 0 || upto < at || upto > len(r.jobs) {
		return false, ErrInvalidRange
	}
	capacity := r.vehicleModel().Capacity

	pickupSum := model.ZeroAmount(r.prob.AmountDim)
	for _, idx := range rangeJobs {
		if idx < 0 || idx >= len(r.prob.Jobs) {
			return false, ErrUnknownJob
		}
		var err error
		pickupSum, err = pickupSum.Add(r.prob.Jobs[idx].Pickup)
		if err != nil {
			return false, err
		}
	}

	shiftPrefix, shiftSuffix, err := r.capacityShifts(deliverySum, pickupSum, at, upto)
	if err != nil {
		return false, err
	}

	newPrefixMax, err := r.prefixMax[at].Add(shiftPrefix)
	if err != nil {
		return false, err
	}
	if ok, err := newPrefixMax.LessEq(capacity); err != nil {
		return false, err
	} else if !ok {
		return false, nil
	}

	newSuffixMax, err := r.suffixMax[upto].Add(shiftSuffix)
	if err != nil {
		return false, err
	}
	if ok, err := newSuffixMax.LessEq(capacity); err != nil {
		return false, err
	} else if !ok {
		return false, nil
	}

	enter, err := r.fwdPickups[at].Add(deliverySum)
	if err != nil {
		return false, err
	}
	enter, err = enter.Add(r.bwdDeliveries[upto])
	if err != nil {
		return false, err
	}

	rangeMax := enter.Clone()
	load := enter
	for _, idx := range rangeJobs {
		j := r.prob.Jobs[idx]
		load, err = load.Sub(j.Delivery)
		if err != nil {
			return false, err
		}
		load, err = load.Add(j.Pickup)
		if err != nil {
			return false, err
		}
		rangeMax, err = rangeMax.Max(load)
		if err != nil {
			return false, err
		}
	}
	if ok, err := rangeMax.LessEq(capacity); err != nil {
		return false, err
	} else if !ok {
		return false, nil
	}

	return true, nil
}

// taskCountOK reports whether the vehicle's MaxTasks (if set) admits a
// route of newLen jobs.
func (r *RawRoute) taskCountOK(newLen int) bool {
	v := r.vehicleModel()
	return v.MaxTasks == nil || newLen <= *v.MaxTasks
}

// skillsOK reports whether the vehicle is compatible with every job in
// rangeJobs.
func (r *RawRoute) skillsOK(rangeJobs []int) bool {
	v := r.vehicleModel()
	for _, idx := range rangeJobs {
		if !v.IsCompatibleWith(r.prob.Jobs[idx]) {
			return false
		}
	}

	return true
}

// Replace substitutes Jobs()[at:upto] with rangeJobs, validating capacity,
// vehicle skills, and MaxTasks before mutating. On rejection the route is
// left unchanged and a sentinel error is returned.
func (r *RawRoute) Replace(rangeJobs []int, at, upto int) error {
	if at < 0 || upto < at || upto > len(r.jobs) {
		return ErrInvalidRange
	}
	if !r.skillsOK(rangeJobs) {
		return ErrSkillMismatch
	}
	newLen := len(r.jobs) - (upto - at) + len(rangeJobs)
	if !r.taskCountOK(newLen) {
		return ErrMaxTasksExceeded
	}

	deliverySum := model.ZeroAmount(r.prob.AmountDim)
	for _, idx := range rangeJobs {
		var err error
		deliverySum, err = deliverySum.Add(r.prob.Jobs[idx].Delivery)
		if err != nil {
			return err
		}
	}
	ok, err := r.IsValidAdditionForCapacity(deliverySum, rangeJobs, at, upto)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCapacityExceeded
	}

	next := make([]int, 0, newLen)
	next = append(next, r.jobs[:at]...)
	next = append(next, rangeJobs...)
	next = append(next, r.jobs[upto:]...)
	r.jobs = next
	r.recompute()

	return nil
}

// Insert is a convenience for Replace(rangeJobs, at, at).
func (r *RawRoute) Insert(rangeJobs []int, at int) error {
	return r.Replace(rangeJobs, at, at)
}

// Remove is a convenience for Replace(nil, at, at+count).
func (r *RawRoute) Remove(at, count int) error {
	return r.Replace(nil, at, at+count)
}
