package weight

import (
	"context"

	"github.com/nspcc-dev/cuprate-consensus/pkg/chainstore"
	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
)

// PenaltyFreeZoneV5 is the penalty-free zone from V5 onward (300 000) and
// also the floor used for the long-term median in the effective-median and
// long-term-weight formulas.
const PenaltyFreeZoneV5 = 300_000

// PenaltyFreeZone returns the penalty-free zone size for fork.
func PenaltyFreeZone(fork config.HardForkVersion) uint64 {
	switch {
	case fork == config.V1:
		return 20_000
	case fork.Cmp(config.V2) >= 0 && fork.Cmp(config.V4) <= 0:
		return 60_000
	default: // V5 and above
		return PenaltyFreeZoneV5
	}
}

// Cache derives the effective median, next block-weight limit, and next
// block's long-term weight from a Windows instance.
type Cache struct {
	windows *Windows
}

// NewCache wraps an already-initialised Windows instance.
func NewCache(w *Windows) *Cache {
	return &Cache{windows: w}
}

// InitCache rebuilds both the windows and the cache wrapping them from the
// chain store.
func InitCache(ctx context.Context, store chainstore.Store) (*Cache, error) {
	w, err := InitWindows(ctx, store)
	if err != nil {
		return nil, err
	}
	return NewCache(w), nil
}

// Windows returns the underlying sliding windows.
func (c *Cache) Windows() *Windows {
	return c.windows
}

// NewBlock ingests a new block's weights into the underlying windows.
func (c *Cache) NewBlock(ctx context.Context, height, blockWeight, longTermWeight uint64, store chainstore.Store) error {
	return c.windows.NewBlock(ctx, height, blockWeight, longTermWeight, store)
}

// shortTermMedian returns the median of the short-term window, or panics if
// it's empty (callers must check first, or only call this once at least one
// block has been ingested).
func (c *Cache) shortTermMedian() uint64 {
	return Median(c.windows.ShortTermSorted())
}

// longTermMedianFloored returns max(median(long_term), PenaltyFreeZoneV5).
func (c *Cache) longTermMedianFloored() uint64 {
	lm := Median(c.windows.LongTermSorted())
	if lm < PenaltyFreeZoneV5 {
		return PenaltyFreeZoneV5
	}
	return lm
}

// EffectiveMedian computes the combined median used to derive the
// block-weight limit and reward penalty for fork, per spec §4.4:
//
//	fork < V10:  median(short_term)                                 (no lower bound)
//	V10..<V15:   min(max(PFZ5, sm), 50*lm), floored by PFZ(fork)
//	fork >= V15: min(max(lm, sm), 50*lm),   floored by PFZ(fork)
func (c *Cache) EffectiveMedian(fork config.HardForkVersion) uint64 {
	sm := c.shortTermMedian()

	if fork.Cmp(config.V10) < 0 {
		return sm
	}

	lm := c.longTermMedianFloored()
	var result uint64
	if fork.Cmp(config.V15) < 0 {
		result = min64(max64(PenaltyFreeZoneV5, sm), 50*lm)
	} else {
		result = min64(max64(lm, sm), 50*lm)
	}
	pfz := PenaltyFreeZone(fork)
	if result < pfz {
		result = pfz
	}
	return result
}

// NextBlockWeightLimit returns 2 * EffectiveMedian(fork).
func (c *Cache) NextBlockWeightLimit(fork config.HardForkVersion) uint64 {
	return 2 * c.EffectiveMedian(fork)
}

// NextLongTermWeight computes the long-term weight a candidate block of the
// given weight would be assigned if accepted at fork, per spec §4.4:
//
//	fork < V10:  blockWeight, unchanged
//	V10..<V15:   ltm = max(PFZ(fork), median(long_term))
//	             stc = ltm + ltm*2/5;  result = min(stc, blockWeight)
//	fork >= V15: ltm = max(PFZ(fork), median(long_term))
//	             stc = ltm + ltm*7/10
//	             adjusted = max(blockWeight, ltm*10/17)
//	             result = min(stc, adjusted)
func (c *Cache) NextLongTermWeight(fork config.HardForkVersion, blockWeight uint64) uint64 {
	if fork.Cmp(config.V10) < 0 {
		return blockWeight
	}

	ltm := max64(PenaltyFreeZone(fork), Median(c.windows.LongTermSorted()))

	if fork.Cmp(config.V15) < 0 {
		stc := ltm + ltm*2/5
		return min64(stc, blockWeight)
	}

	stc := ltm + ltm*7/10
	adjusted := max64(blockWeight, ltm*10/17)
	return min64(stc, adjusted)
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
