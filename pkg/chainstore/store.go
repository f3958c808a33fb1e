// Package chainstore defines the capability interface the weight and
// hard-fork caches use to read historical chain data. It owns no
// implementation of its own beyond an in-memory fake used by tests — a real
// node wires its block index/database behind this interface.
package chainstore

import (
	"context"

	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
)

// BlockWeights is the per-block weight pair the weight cache needs.
type BlockWeights struct {
	// BlockWeight is the sum of the coinbase and every other transaction's
	// weight in the block.
	BlockWeight uint64
	// LongTermWeight is the block's derived long-term weight, as computed
	// and stored by the validator when the block was accepted.
	LongTermWeight uint64
}

// Store is the external chain-store collaborator described in spec §6. All
// methods are suspension points: implementations may block or use ctx for
// cancellation, but must not leave the cache they're serving partially
// mutated — callers fetch before they mutate, never the reverse.
type Store interface {
	// ChainHeight returns one past the tip, i.e. the height the next block
	// to be accepted will have.
	ChainHeight(ctx context.Context) (uint64, error)
	// BlockWeightsInRange returns the block/long-term weights of every
	// height in [lo, hi).
	BlockWeightsInRange(ctx context.Context, lo, hi uint64) ([]BlockWeights, error)
	// BlockWeightsAt returns the block/long-term weights of a single
	// height.
	BlockWeightsAt(ctx context.Context, height uint64) (BlockWeights, error)
	// HFInfoInRange returns the (version, vote) pair of every height in
	// [lo, hi).
	HFInfoInRange(ctx context.Context, lo, hi uint64) ([]config.BlockHfInfo, error)
	// HFInfoAt returns the (version, vote) pair of a single height.
	HFInfoAt(ctx context.Context, height uint64) (config.BlockHfInfo, error)
}
