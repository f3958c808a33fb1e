package weight

import (
	"context"
	"fmt"
	"sort"

	"github.com/nspcc-dev/cuprate-consensus/pkg/chainstore"
)

// ShortTermWindowSize is the number of trailing block weights kept for the
// short-term median.
const ShortTermWindowSize = 100

// LongTermWindowSize is the number of trailing long-term weights kept for
// the long-term median.
const LongTermWindowSize = 100_000

// Windows holds the two sliding windows of block weights: a FIFO of the
// last ShortTermWindowSize block weights (order preserved, unsorted) and a
// sorted multiset of the last LongTermWindowSize long-term weights.
type Windows struct {
	shortTerm []uint64 // insertion order, oldest first
	longTerm  []uint64 // sorted ascending

	tipHeight uint64
	haveTip   bool
}

// InitWindows rebuilds a Windows cache from the chain store by fetching the
// trailing LongTermWindowSize blocks below chainHeight and sorting their
// long-term weights, and keeping the last ShortTermWindowSize block weights
// in chain order.
func InitWindows(ctx context.Context, store chainstore.Store) (*Windows, error) {
	chainHeight, err := store.ChainHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("weight: fetch chain height: %w", err)
	}

	w := &Windows{}
	if chainHeight == 0 {
		return w, nil
	}

	lo := uint64(0)
	if chainHeight > LongTermWindowSize {
		lo = chainHeight - LongTermWindowSize
	}
	entries, err := store.BlockWeightsInRange(ctx, lo, chainHeight)
	if err != nil {
		return nil, fmt.Errorf("weight: fetch weight range: %w", err)
	}

	w.longTerm = make([]uint64, len(entries))
	for i, e := range entries {
		w.longTerm[i] = e.LongTermWeight
	}
	sort.Slice(w.longTerm, func(i, j int) bool { return w.longTerm[i] < w.longTerm[j] })

	shortLo := 0
	if len(entries) > ShortTermWindowSize {
		shortLo = len(entries) - ShortTermWindowSize
	}
	w.shortTerm = make([]uint64, 0, len(entries)-shortLo)
	for _, e := range entries[shortLo:] {
		w.shortTerm = append(w.shortTerm, e.BlockWeight)
	}

	w.tipHeight = chainHeight - 1
	w.haveTip = true
	return w, nil
}

// TipHeight returns the height of the most recently ingested block and
// whether one has been ingested at all.
func (w *Windows) TipHeight() (uint64, bool) {
	return w.tipHeight, w.haveTip
}

// ShortTermSorted returns a freshly sorted copy of the short-term window,
// suitable for passing to Median. The short-term window itself stays in
// insertion order so eviction (FIFO) stays O(1) amortised.
func (w *Windows) ShortTermSorted() []uint64 {
	out := make([]uint64, len(w.shortTerm))
	copy(out, w.shortTerm)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LongTermSorted returns the long-term window, which is always kept sorted
// in place; the returned slice is a copy safe for the caller to retain.
func (w *Windows) LongTermSorted() []uint64 {
	out := make([]uint64, len(w.longTerm))
	copy(out, w.longTerm)
	return out
}

// NewBlock ingests the weights of the block at height, which must equal
// TipHeight()+1 (or 0 on an empty cache).
func (w *Windows) NewBlock(ctx context.Context, height, blockWeight, longTermWeight uint64, store chainstore.Store) error {
	expected := uint64(0)
	if w.haveTip {
		expected = w.tipHeight + 1
	}
	if height != expected {
		panic(fmt.Sprintf("weight: height-ordering violation: ingest at %d, expected %d", height, expected))
	}

	// Fetch before mutating: a cancelled chain-store call must leave the
	// cache untouched (spec §5).
	var evictedLongTerm uint64
	needsEvict := height >= LongTermWindowSize
	if needsEvict {
		evictHeight := height - LongTermWindowSize
		evicted, err := store.BlockWeightsAt(ctx, evictHeight)
		if err != nil {
			return fmt.Errorf("weight: fetch evicted long-term weight at %d: %w", evictHeight, err)
		}
		evictedLongTerm = evicted.LongTermWeight
	}

	w.insertLongTerm(longTermWeight)
	if needsEvict {
		w.removeLongTerm(evictedLongTerm)
	}

	w.shortTerm = append(w.shortTerm, blockWeight)
	if len(w.shortTerm) > ShortTermWindowSize {
		w.shortTerm = w.shortTerm[1:]
	}

	w.tipHeight = height
	w.haveTip = true
	return nil
}

// insertLongTerm inserts v into the sorted long-term window, keeping it
// non-decreasing.
func (w *Windows) insertLongTerm(v uint64) {
	i := sort.Search(len(w.longTerm), func(i int) bool { return w.longTerm[i] >= v })
	w.longTerm = append(w.longTerm, 0)
	copy(w.longTerm[i+1:], w.longTerm[i:])
	w.longTerm[i] = v
}

// removeLongTerm removes one occurrence of v from the sorted long-term
// window. v must be present — removing an absent value is a programmer
// error (spec §7) since it can only mean the cache lost sync with the
// chain store.
func (w *Windows) removeLongTerm(v uint64) {
	i := sort.Search(len(w.longTerm), func(i int) bool { return w.longTerm[i] >= v })
	if i >= len(w.longTerm) || w.longTerm[i] != v {
		panic(fmt.Sprintf("weight: removeLongTerm: value %d not present", v))
	}
	w.longTerm = append(w.longTerm[:i], w.longTerm[i+1:]...)
}
