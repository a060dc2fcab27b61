package bctk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSFATHashVectors(t *testing.T) {
	require.Equal(t, uint32(0), SFATHash(""))
	require.Equal(t, uint32(0x40e57ea6), SFATHash("example.bffnt"))
}

func TestSFATHashOrderSensitive(t *testing.T) {
	require.NotEqual(t, SFATHash("ab"), SFATHash("ba"))
}
