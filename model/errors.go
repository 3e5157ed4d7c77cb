package model

import "errors"

// Sentinel errors for the model package. All algorithms in this module
// return these rather than ad-hoc fmt.Errorf strings, so callers can
// match with errors.Is regardless of wrapping.
var (
	// ErrDimensionMismatch indicates two Amounts of different dimension
	// were combined (Add, Sub, LessEq).
	ErrDimensionMismatch = errors.New("model: amount dimension mismatch")

	// ErrNegativeAmount indicates a negative component in a Job delivery
	// or pickup vector, or in a Vehicle capacity vector.
	ErrNegativeAmount = errors.New("model: negative amount component")

	// ErrEmptyTimeWindows indicates an operation required at least one
	// time window but none were supplied.
	ErrEmptyTimeWindows = errors.New("model: no time windows")

	// ErrUnorderedTimeWindows indicates a TimeWindow slice was not sorted
	// and disjoint as required by the Job/Vehicle/Break contract.
	ErrUnorderedTimeWindows = errors.New("model: time windows not sorted/disjoint")

	// ErrInvalidTimeWindow indicates a TimeWindow with End < Start.
	ErrInvalidTimeWindow = errors.New("model: end before start in time window")

	// ErrShipmentMismatch indicates a Pickup/Delivery pair with mismatched
	// shipment IDs or amount dimensions.
	ErrShipmentMismatch = errors.New("model: mismatched shipment pair")
)
