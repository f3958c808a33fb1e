package weight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMedian_Odd(t *testing.T) {
	// S1
	require.EqualValues(t, 30, Median([]uint64{10, 20, 30, 40, 50}))
}

func TestMedian_Single(t *testing.T) {
	require.EqualValues(t, 42, Median([]uint64{42}))
}

func TestMedian_EvenOverflowSafe(t *testing.T) {
	// S2
	max := uint64(math.MaxUint64)
	require.EqualValues(t, max-1, Median([]uint64{max - 1, max}))
}

func TestMedian_EvenSimple(t *testing.T) {
	require.EqualValues(t, 25, Median([]uint64{10, 20, 30, 40}))
}

func TestMedian_EmptyPanics(t *testing.T) {
	require.Panics(t, func() {
		Median(nil)
	})
}

func TestMid_PreservesBounds(t *testing.T) {
	for _, pair := range [][2]uint64{
		{0, 0}, {0, 1}, {1, 2}, {10, 11}, {math.MaxUint64 - 1, math.MaxUint64},
		{math.MaxUint64, math.MaxUint64},
	} {
		a, b := pair[0], pair[1]
		got := mid(a, b)
		require.GreaterOrEqual(t, got, a)
		require.LessOrEqual(t, got, b)
	}
}
