package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHardForkSchedule_VersionAtOrBelow(t *testing.T) {
	s := NewHardForkSchedule(Mainnet)

	require.Equal(t, V1, s.VersionAtOrBelow(0))
	require.Equal(t, V1, s.VersionAtOrBelow(1009826))
	require.Equal(t, V2, s.VersionAtOrBelow(1009827))
	require.Equal(t, V2, s.VersionAtOrBelow(1141316))
	require.Equal(t, V3, s.VersionAtOrBelow(1141317))
	require.Equal(t, V16, s.VersionAtOrBelow(2689608))
	require.Equal(t, V16, s.VersionAtOrBelow(99999999))
}

func TestHardForkSchedule_ThresholdAndVotesNeeded(t *testing.T) {
	s := NewHardForkSchedule(Mainnet)

	for _, v := range Versions() {
		require.EqualValues(t, 0, s.ThresholdPct(v))
		require.EqualValues(t, 0, s.VotesNeeded(v, 10080))
	}
}

func TestHardForkSchedule_UnconfiguredNetworkPanics(t *testing.T) {
	s := NewHardForkSchedule(Testnet)
	require.Panics(t, func() {
		s.ActivationHeight(V2)
	})
}

func TestNewHardForkSchedule_UnknownNetworkPanics(t *testing.T) {
	require.Panics(t, func() {
		NewHardForkSchedule(Network(99))
	})
}
