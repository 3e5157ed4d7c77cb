package model

// JobKind distinguishes a standalone task from one half of a
// pickup/delivery shipment pair.
type JobKind int

const (
	// Single is a standalone task: one visit, its own delivery amount.
	Single JobKind = iota
	// Pickup is the collection half of a shipment; its sibling Delivery
	// must appear later on the same route.
	Pickup
	// Delivery is the drop-off half of a shipment; its sibling Pickup
	// must appear earlier on the same route.
	Delivery
)

// String renders the JobKind for logs and test failure messages.
func (k JobKind) String() string {
	switch k {
	case Single:
		return "single"
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// Job is a task at a location: a Single visit, or one half of a
// Pickup/Delivery shipment pair sharing ShipmentID.
//
// Invariants (checked by the validated-input boundary, relied on here):
//   - Delivery and Pickup amounts are non-negative and share Problem's
//     amount dimension.
//   - TimeWindows is sorted and pairwise disjoint (see ValidateTimeWindows).
//   - For Pickup/Delivery pairs, ShipmentID is shared and unique to the
//     pair; Delivery.Amount on the Pickup is the shipment's carried load.
type Job struct {
	// Index is this job's position in Problem.Jobs; routes reference
	// jobs by Index, not by Location, to allow repeated locations.
	Index int

	// Location indexes into the routing profile's distance/duration
	// matrices.
	Location int

	Kind JobKind

	// ShipmentID pairs a Pickup with its Delivery. Zero (unused) for Single.
	ShipmentID int

	// Delivery is the amount dropped off at this job (carried from the
	// depot, or from the paired Pickup).
	Delivery Amount

	// Pickup is the amount collected at this job (carried to the depot,
	// or to the paired Delivery).
	Pickup Amount

	Service    int64
	Setup      int64
	TimeWindows []TimeWindow

	RequiredSkills SkillSet

	// Priority ranks jobs for the first objective tier (maximise total
	// priority of assigned jobs). Higher is more important. Non-negative.
	Priority int
}

// hasTimeWindows reports whether j declares at least one time window.
func (j Job) hasTimeWindows() bool {
	return len(j.TimeWindows) > 0
}

// OpenAt reports whether some declared time window covers t. A Job with
// no TimeWindows is open at all times.
func (j Job) OpenAt(t int64) bool {
	if !j.hasTimeWindows() {
		return true
	}
	for _, w := range j.TimeWindows {
		if w.Contains(t) {
			return true
		}
	}

	return false
}

// EarliestStartAfter returns the earliest instant >= from at which j may
// begin service, and the index of the chosen time window. ok is false if
// no window remains open at or after from.
func (j Job) EarliestStartAfter(from int64) (start int64, twIndex int, ok bool) {
	if !j.hasTimeWindows() {
		return from, -1, true
	}

	return EarliestOpenAfter(j.TimeWindows, from)
}

// IsShipmentHalf reports whether j is one half of a Pickup/Delivery pair.
func (j Job) IsShipmentHalf() bool {
	return j.Kind == Pickup || j.Kind == Delivery
}
