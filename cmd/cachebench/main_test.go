package main

import (
	"context"
	"testing"

	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
	"github.com/nspcc-dev/cuprate-consensus/pkg/consensuscache"
	"github.com/stretchr/testify/require"
)

func TestBuildSyntheticChain(t *testing.T) {
	store := buildSyntheticChain(5000)

	ctx := context.Background()
	h, err := store.ChainHeight(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5000, h)

	cache := consensuscache.New(consensuscache.Config{
		HardFork: config.MainnetHardForkConfig(),
	})
	require.NoError(t, cache.Init(ctx, store))

	require.Equal(t, config.V1, cache.HardFork().CurrentVersion())
	require.Greater(t, cache.Weight().NextBlockWeightLimit(config.V1), uint64(0))
}
