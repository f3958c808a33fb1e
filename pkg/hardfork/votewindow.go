// Package hardfork implements the per-network hard-fork version schedule
// and the rolling vote-window that gates fork activation.
package hardfork

import "github.com/nspcc-dev/cuprate-consensus/pkg/config"

// VoteWindow is a fixed-size multiset of votes over the trailing window of
// blocks: one counter per known HardForkVersion.
type VoteWindow struct {
	counters [config.NumHardForkVersions]uint64
}

// NewVoteWindow returns an empty vote window.
func NewVoteWindow() *VoteWindow {
	return &VoteWindow{}
}

func idx(v config.HardForkVersion) int {
	return int(v) - int(config.V1)
}

// Add records one vote for version.
func (w *VoteWindow) Add(version config.HardForkVersion) {
	w.counters[idx(version)]++
}

// Remove retracts one vote for version. Removing a vote that was never
// added (counter already zero) is a programmer error — the window is only
// ever asked to evict a block it previously tallied — so it panics rather
// than silently going negative.
func (w *VoteWindow) Remove(version config.HardForkVersion) {
	i := idx(version)
	if w.counters[i] == 0 {
		panic("hardfork: Remove called with zero count for " + version.String())
	}
	w.counters[i]--
}

// VotesFor returns the inclusive upward sum of votes: the count of blocks
// that voted for version or any higher version. A vote for a higher
// version counts as a vote for every lower one too — this is the one
// subtle algorithm in the window; summing only the exact-match bucket
// silently delays activation.
func (w *VoteWindow) VotesFor(version config.HardForkVersion) uint64 {
	var total uint64
	for v := version; v <= config.V16; v++ {
		total += w.counters[idx(v)]
	}
	return total
}

// Total returns the number of votes tallied across all versions.
func (w *VoteWindow) Total() uint64 {
	return w.VotesFor(config.V1)
}
