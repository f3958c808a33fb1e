package weight

import (
	"testing"

	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
	"github.com/stretchr/testify/require"
)

func cacheWith(shortTerm, longTerm []uint64) *Cache {
	st := make([]uint64, len(shortTerm))
	copy(st, shortTerm)
	lt := make([]uint64, len(longTerm))
	copy(lt, longTerm)
	return NewCache(&Windows{shortTerm: st, longTerm: lt, haveTip: true})
}

func TestPenaltyFreeZone(t *testing.T) {
	require.EqualValues(t, 20_000, PenaltyFreeZone(config.V1))
	require.EqualValues(t, 60_000, PenaltyFreeZone(config.V2))
	require.EqualValues(t, 60_000, PenaltyFreeZone(config.V4))
	require.EqualValues(t, 300_000, PenaltyFreeZone(config.V5))
	require.EqualValues(t, 300_000, PenaltyFreeZone(config.V16))
}

// S3: pre-V10 effective median.
func TestEffectiveMedian_PreV10(t *testing.T) {
	c := cacheWith([]uint64{1000, 2000, 3000}, []uint64{1, 2, 3})
	require.EqualValues(t, 2000, c.EffectiveMedian(config.V5))
	require.EqualValues(t, 4000, c.NextBlockWeightLimit(config.V5))
}

// S4: V15 effective median lower bound.
func TestEffectiveMedian_V15Floor(t *testing.T) {
	short := make([]uint64, 0, 199)
	for i := 0; i < 199; i++ {
		short = append(short, 100_000)
	}
	long := make([]uint64, 0, 199)
	for i := 0; i < 199; i++ {
		long = append(long, 50_000)
	}
	c := cacheWith(short, long)
	require.EqualValues(t, 100_000, c.shortTermMedian())
	require.EqualValues(t, 300_000, c.EffectiveMedian(config.V15))
}

func TestEffectiveMedian_V10ToV15Band(t *testing.T) {
	c := cacheWith([]uint64{200_000}, []uint64{10_000})
	// lm = max(300000, 10000) = 300000; sm = 200000
	// result = min(max(300000, 200000), 50*300000) = 300000
	require.EqualValues(t, 300_000, c.EffectiveMedian(config.V10))
}

// S5: V16 long-term weight adjustment.
func TestNextLongTermWeight_V16(t *testing.T) {
	long := make([]uint64, 0, 9)
	for i := 0; i < 9; i++ {
		long = append(long, 300_000)
	}
	c := cacheWith(nil, long)
	got := c.NextLongTermWeight(config.V16, 10_000)
	require.EqualValues(t, 176_470, got)
}

// Property 8 / "V10 boundary": V9 is identity, V10 applies the 2/5 formula.
func TestNextLongTermWeight_V10Boundary(t *testing.T) {
	long := []uint64{300_000, 300_000, 300_000}
	c := cacheWith(nil, long)

	require.EqualValues(t, 123_456, c.NextLongTermWeight(config.V9, 123_456))

	// ltm = max(300000, 300000) = 300000; stc = 300000+120000=420000
	got := c.NextLongTermWeight(config.V10, 500_000)
	require.EqualValues(t, 420_000, got)

	gotSmall := c.NextLongTermWeight(config.V10, 100_000)
	require.EqualValues(t, 100_000, gotSmall)
}

func TestNextBlockWeightLimit_IsTwiceMedian(t *testing.T) {
	for _, fork := range config.Versions() {
		c := cacheWith([]uint64{400_000}, []uint64{300_000})
		require.Equal(t, 2*c.EffectiveMedian(fork), c.NextBlockWeightLimit(fork))
	}
}
