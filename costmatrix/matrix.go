package costmatrix

import "fmt"

// Matrix is the cost oracle for one routing profile: O(1) duration and
// cost between any two location indices. Implementations must be safe
// for concurrent reads (the engine never mutates a Matrix once built).
type Matrix interface {
	// Size returns the number of locations n; valid indices are [0, n).
	Size() int

	// Duration returns the travel duration from location i to j.
	Duration(i, j int) (int64, error)

	// Cost returns the travel cost from location i to j.
	Cost(i, j int) (int64, error)
}

// Dense is a concrete, row-major Matrix backed by two flat int64 slices —
// one for duration, one for cost — so that d(i,j) and c(i,j) are each a
// single slice read with no pointer-chasing.
type Dense struct {
	n        int
	duration []int64 // row-major, len == n*n
	cost     []int64 // row-major, len == n*n
}

var _ Matrix = (*Dense)(nil)

// NewDense allocates an n×n Dense matrix with all entries zero.
func NewDense(n int) (*Dense, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{
		n:        n,
		duration: make([]int64, n*n),
		cost:     make([]int64, n*n),
	}, nil
}

// NewDenseFromGrids builds a Dense matrix from pre-computed n×n duration
// and cost grids (row-major, flattened by the caller). Both must have
// length n*n and contain no negative entries.
func NewDenseFromGrids(n int, duration, cost []int64) (*Dense, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}
	if len(duration) != n*n || len(cost) != n*n {
		return nil, ErrDimensionMismatch
	}
	for _, v := range duration {
		if v < 0 {
			return nil, ErrNegativeEntry
		}
	}
	for _, v := range cost {
		if v < 0 {
			return nil, ErrNegativeEntry
		}
	}
	d := &Dense{n: n, duration: make([]int64, n*n), cost: make([]int64, n*n)}
	copy(d.duration, duration)
	copy(d.cost, cost)

	return d, nil
}

// Size returns n.
func (d *Dense) Size() int { return d.n }

func (d *Dense) index(i, j int) (int, error) {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return 0, fmt.Errorf("costmatrix: Dense.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return i*d.n + j, nil
}

// Duration returns the travel duration from i to j.
func (d *Dense) Duration(i, j int) (int64, error) {
	idx, err := d.index(i, j)
	if err != nil {
		return 0, err
	}

	return d.duration[idx], nil
}

// Cost returns the travel cost from i to j.
func (d *Dense) Cost(i, j int) (int64, error) {
	idx, err := d.index(i, j)
	if err != nil {
		return 0, err
	}

	return d.cost[idx], nil
}

// SetDuration sets the duration entry at (i,j). Intended for construction
// only; callers must not mutate a Dense once handed to the engine.
func (d *Dense) SetDuration(i, j int, v int64) error {
	idx, err := d.index(i, j)
	if err != nil {
		return err
	}
	if v < 0 {
		return ErrNegativeEntry
	}
	d.duration[idx] = v

	return nil
}

// SetCost sets the cost entry at (i,j). Intended for construction only.
func (d *Dense) SetCost(i, j int, v int64) error {
	idx, err := d.index(i, j)
	if err != nil {
		return err
	}
	if v < 0 {
		return ErrNegativeEntry
	}
	d.cost[idx] = v

	return nil
}
