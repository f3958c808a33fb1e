package consensuscache

import (
	"context"
	"testing"

	"github.com/nspcc-dev/cuprate-consensus/pkg/chainstore"
	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestCache_InitTwiceErrors(t *testing.T) {
	ctx := context.Background()
	store := chainstore.NewFake()
	c := New(Config{HardFork: config.MainnetHardForkConfig()})

	require.NoError(t, c.Init(ctx, store))
	require.Error(t, c.Init(ctx, store))
}

func TestCache_UsedBeforeInitPanics(t *testing.T) {
	c := New(Config{HardFork: config.MainnetHardForkConfig()})
	require.Panics(t, func() {
		c.HardFork()
	})
}

func TestCache_IngestBlock(t *testing.T) {
	ctx := context.Background()
	store := chainstore.NewFake()
	c := New(Config{HardFork: config.MainnetHardForkConfig()})
	require.NoError(t, c.Init(ctx, store))

	info := config.BlockHfInfo{Version: config.V1, Vote: 0}
	store.Append(chainstore.BlockWeights{BlockWeight: 1000, LongTermWeight: 1000}, info)
	require.NoError(t, c.IngestBlock(ctx, 0, info, 1000, 1000, store))

	height, ok := c.HardFork().LastHeight()
	require.True(t, ok)
	require.EqualValues(t, 0, height)
	tip, ok := c.Weight().Windows().TipHeight()
	require.True(t, ok)
	require.EqualValues(t, 0, tip)
}
