package chainstore

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
)

// Fake is an in-memory Store used by tests and by cmd/cachebench's
// synthetic chain. Blocks are appended with Append and indexed by height starting at
// 0, mirroring how the teacher's neotest fake chains build up a block list
// for executor tests.
type Fake struct {
	weights []BlockWeights
	hf      []config.BlockHfInfo
}

// NewFake returns an empty fake store.
func NewFake() *Fake {
	return &Fake{}
}

// Append adds one block's data at the next height.
func (f *Fake) Append(w BlockWeights, hf config.BlockHfInfo) {
	f.weights = append(f.weights, w)
	f.hf = append(f.hf, hf)
}

// Len returns the number of blocks appended so far.
func (f *Fake) Len() int {
	return len(f.weights)
}

func (f *Fake) ChainHeight(_ context.Context) (uint64, error) {
	return uint64(len(f.weights)), nil
}

func (f *Fake) BlockWeightsInRange(_ context.Context, lo, hi uint64) ([]BlockWeights, error) {
	if err := f.checkRange(lo, hi); err != nil {
		return nil, err
	}
	out := make([]BlockWeights, hi-lo)
	copy(out, f.weights[lo:hi])
	return out, nil
}

func (f *Fake) BlockWeightsAt(_ context.Context, height uint64) (BlockWeights, error) {
	if height >= uint64(len(f.weights)) {
		return BlockWeights{}, fmt.Errorf("chainstore: height %d out of range (have %d blocks)", height, len(f.weights))
	}
	return f.weights[height], nil
}

func (f *Fake) HFInfoInRange(_ context.Context, lo, hi uint64) ([]config.BlockHfInfo, error) {
	if err := f.checkRange(lo, hi); err != nil {
		return nil, err
	}
	out := make([]config.BlockHfInfo, hi-lo)
	copy(out, f.hf[lo:hi])
	return out, nil
}

func (f *Fake) HFInfoAt(_ context.Context, height uint64) (config.BlockHfInfo, error) {
	if height >= uint64(len(f.hf)) {
		return config.BlockHfInfo{}, fmt.Errorf("chainstore: height %d out of range (have %d blocks)", height, len(f.hf))
	}
	return f.hf[height], nil
}

func (f *Fake) checkRange(lo, hi uint64) error {
	if lo > hi {
		return fmt.Errorf("chainstore: invalid range [%d, %d)", lo, hi)
	}
	if hi > uint64(len(f.weights)) {
		return fmt.Errorf("chainstore: range [%d, %d) exceeds chain height %d", lo, hi, len(f.weights))
	}
	return nil
}
