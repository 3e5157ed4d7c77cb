package solution

import "errors"

var (
	// ErrVehicleIndexOutOfRange indicates a vehicle rank outside [0, len(Routes)).
	ErrVehicleIndexOutOfRange = errors.New("solution: vehicle index out of range")

	// ErrJobIndexOutOfRange indicates a job index outside [0, len(Problem.Jobs)).
	ErrJobIndexOutOfRange = errors.New("solution: job index out of range")

	// ErrJobAlreadyAssigned indicates an attempt to mark a job unassigned
	// while it is still present on some route, or vice versa.
	ErrJobAlreadyAssigned = errors.New("solution: job already assigned")

	// ErrJobNotAssigned indicates a lookup for a job's route rank when the
	// job is not present on any route.
	ErrJobNotAssigned = errors.New("solution: job not assigned")
)
