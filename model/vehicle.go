package model

// Break is a rest period a Vehicle must take somewhere along its route,
// subject to its own declared time windows.
type Break struct {
	ID          int
	TimeWindows []TimeWindow
	Service     int64
}

// CostModel is a Vehicle's routing cost function: fixed cost for using
// the vehicle at all, plus linear per-duration and per-distance terms.
type CostModel struct {
	Fixed      int64
	PerHour    int64 // applied to route duration, in the caller's time unit
	PerDistance int64 // applied to route distance, in the caller's distance unit
}

// Cost evaluates the model over a route of the given duration and distance.
func (c CostModel) Cost(duration, distance int64) int64 {
	return c.Fixed + c.PerHour*duration + c.PerDistance*distance
}

// Vehicle is a single unit of the fleet: its start/end locations,
// capacity, skills, availability, cost model, optional range/task caps,
// and its ordered list of mandatory Breaks.
type Vehicle struct {
	Index int

	// Start and End are location indices into the routing profile's
	// matrices; nil means the vehicle has no fixed start/end there.
	Start *int
	End   *int

	Capacity Amount

	Skills SkillSet

	// TimeWindows bounds when the vehicle is available to operate at all.
	TimeWindows []TimeWindow

	Cost CostModel

	// MaxDistance and MaxDuration are optional upper bounds on the
	// realised route; nil means unbounded.
	MaxDistance *int64
	MaxDuration *int64

	// MaxTasks optionally bounds the number of jobs (not counting
	// breaks) this vehicle may serve; nil means unbounded.
	MaxTasks *int

	// Breaks is ordered; break i must be placed no earlier than break
	// i-1 in the realised route.
	Breaks []Break

	// Profile selects which routing-matrix set this vehicle travels on
	// (see costmatrix.Set).
	Profile string
}

// HasStart reports whether the vehicle has a fixed start location.
func (v Vehicle) HasStart() bool { return v.Start != nil }

// HasEnd reports whether the vehicle has a fixed end location.
func (v Vehicle) HasEnd() bool { return v.End != nil }

// TaskLimitReached reports whether taskCount has reached the vehicle's
// MaxTasks cap (always false when uncapped).
func (v Vehicle) TaskLimitReached(taskCount int) bool {
	return v.MaxTasks != nil && taskCount >= *v.MaxTasks
}

// IsCompatibleWith reports whether v can serve job j: v's skills must be
// a superset of j's required skills.
func (v Vehicle) IsCompatibleWith(j Job) bool {
	return v.Skills.IsSupersetOf(j.RequiredSkills)
}

// WithinDistanceCap reports whether distance respects v's MaxDistance
// (always true when uncapped).
func (v Vehicle) WithinDistanceCap(distance int64) bool {
	return v.MaxDistance == nil || distance <= *v.MaxDistance
}

// WithinDurationCap reports whether duration respects v's MaxDuration
// (always true when uncapped).
func (v Vehicle) WithinDurationCap(duration int64) bool {
	return v.MaxDuration == nil || duration <= *v.MaxDuration
}
