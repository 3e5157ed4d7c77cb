package costmatrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routesmith/vrpls/costmatrix"
)

func TestNewDenseInvalidShape(t *testing.T) {
	_, err := costmatrix.NewDense(0)
	require.ErrorIs(t, err, costmatrix.ErrBadShape)

	_, err = costmatrix.NewDense(-3)
	require.ErrorIs(t, err, costmatrix.ErrBadShape)
}

func TestDenseSetGetRoundTrip(t *testing.T) {
	m, err := costmatrix.NewDense(3)
	require.NoError(t, err)

	require.NoError(t, m.SetDuration(0, 1, 10))
	require.NoError(t, m.SetCost(0, 1, 5))

	d, err := m.Duration(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(10), d)

	c, err := m.Cost(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(5), c)

	// Unset entries default to zero.
	d, err = m.Duration(1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(0), d)
}

func TestDenseOutOfRange(t *testing.T) {
	m, err := costmatrix.NewDense(2)
	require.NoError(t, err)

	_, err = m.Duration(-1, 0)
	require.ErrorIs(t, err, costmatrix.ErrOutOfRange)

	_, err = m.Cost(0, 2)
	require.ErrorIs(t, err, costmatrix.ErrOutOfRange)
}

func TestDenseNegativeEntryRejected(t *testing.T) {
	m, err := costmatrix.NewDense(2)
	require.NoError(t, err)

	err = m.SetDuration(0, 1, -5)
	require.ErrorIs(t, err, costmatrix.ErrNegativeEntry)
}

func TestNewDenseFromGridsDimensionMismatch(t *testing.T) {
	_, err := costmatrix.NewDenseFromGrids(2, []int64{1, 2, 3}, []int64{1, 2, 3, 4})
	require.ErrorIs(t, err, costmatrix.ErrDimensionMismatch)
}

func TestSetUnknownProfile(t *testing.T) {
	s := costmatrix.NewSet(nil)
	_, err := s.For("car")
	require.ErrorIs(t, err, costmatrix.ErrUnknownProfile)
}

func TestSetResolvesRegisteredProfile(t *testing.T) {
	m, err := costmatrix.NewDense(2)
	require.NoError(t, err)
	require.NoError(t, m.SetCost(0, 1, 7))

	s := costmatrix.NewSet(map[string]costmatrix.Matrix{"car": m})
	got, err := s.For("car")
	require.NoError(t, err)
	c, err := got.Cost(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(7), c)
}
