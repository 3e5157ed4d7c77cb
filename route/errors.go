package route

import "errors"

var (
	// ErrIndexOutOfRange indicates a boundary or job-slot index outside
	// the route's current bounds.
	ErrIndexOutOfRange = errors.New("route: index out of range")

	// ErrInvalidRange indicates at > upto, or either outside [0, len(route)].
	ErrInvalidRange = errors.New("route: invalid [at, upto) range")

	// ErrCapacityExceeded indicates a mutation was rejected because the
	// resulting load would exceed vehicle capacity at some step.
	ErrCapacityExceeded = errors.New("route: capacity exceeded")

	// ErrMaxTasksExceeded indicates a mutation was rejected because the
	// resulting task count would exceed the vehicle's MaxTasks.
	ErrMaxTasksExceeded = errors.New("route: vehicle max task count exceeded")

	// ErrSkillMismatch indicates a job requires skills the vehicle lacks.
	ErrSkillMismatch = errors.New("route: vehicle missing required skill")

	// ErrTimeWindowInfeasible indicates a mutation was rejected because no
	// feasible arrival time exists at some step under the route's time
	// windows, service times, and travel times.
	ErrTimeWindowInfeasible = errors.New("route: time window infeasible")

	// ErrUnknownJob indicates a job index not present in the Problem.
	ErrUnknownJob = errors.New("route: unknown job index")
)
