package costmatrix

import "errors"

var (
	// ErrBadShape is returned when a requested matrix shape is invalid
	// (rows or cols <= 0).
	ErrBadShape = errors.New("costmatrix: invalid shape")

	// ErrOutOfRange indicates a location index outside [0, n).
	ErrOutOfRange = errors.New("costmatrix: index out of range")

	// ErrDimensionMismatch indicates the duration and cost matrices of a
	// Matrix pair do not share the same square dimension.
	ErrDimensionMismatch = errors.New("costmatrix: dimension mismatch")

	// ErrUnknownProfile indicates a lookup in Set for a profile name that
	// was never registered.
	ErrUnknownProfile = errors.New("costmatrix: unknown profile")

	// ErrNegativeEntry indicates a negative duration or cost entry, which
	// is never valid for a routing matrix.
	ErrNegativeEntry = errors.New("costmatrix: negative matrix entry")
)
