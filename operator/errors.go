package operator

import "errors"

var (
	// ErrVehicleIndexOutOfRange indicates a source/target vehicle index
	// outside the solution's fleet.
	ErrVehicleIndexOutOfRange = errors.New("operator: vehicle index out of range")

	// ErrRankOutOfRange indicates a source/target rank outside the named
	// route's current bounds.
	ErrRankOutOfRange = errors.New("operator: rank out of range")

	// ErrNotApplicable indicates Apply was called on a Move whose gain is
	// NO_GAIN or whose IsValid returned false; callers must check both
	// before applying (§4.3).
	ErrNotApplicable = errors.New("operator: move is not applicable")

	// ErrInsufficientEmptyVehicles indicates RouteSplit was attempted
	// with fewer than two empty, compatible vehicles available.
	ErrInsufficientEmptyVehicles = errors.New("operator: route split requires two empty vehicles")
)
