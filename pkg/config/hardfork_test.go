package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHardForkVersion_Next(t *testing.T) {
	v, ok := V1.Next()
	require.True(t, ok)
	require.Equal(t, V2, v)

	_, ok = V16.Next()
	require.False(t, ok)
}

func TestHardForkVersion_NextPanicsOnInvalid(t *testing.T) {
	require.Panics(t, func() {
		HardForkVersion(0).Next()
	})
}

func TestHardForkVersion_Cmp(t *testing.T) {
	require.Equal(t, -1, V1.Cmp(V2))
	require.Equal(t, 0, V5.Cmp(V5))
	require.Equal(t, 1, V9.Cmp(V8))
}

func TestNormalizeVote(t *testing.T) {
	require.Equal(t, V1, NormalizeVote(0))
	require.Equal(t, V16, NormalizeVote(255))
	require.Equal(t, V16, NormalizeVote(17))
	require.Equal(t, V5, NormalizeVote(5))
}

func TestIsHardForkVersionValid(t *testing.T) {
	require.True(t, IsHardForkVersionValid(V1))
	require.True(t, IsHardForkVersionValid(V16))
	require.False(t, IsHardForkVersionValid(0))
	require.False(t, IsHardForkVersionValid(17))
}
