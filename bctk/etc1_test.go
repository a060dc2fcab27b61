package bctk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeETC1BlockIndividualZero(t *testing.T) {
	data := make([]byte, 8) // all-zero word: individual mode, table 0, no offset bits set
	out, err := DecodeETC1Block(data, false)
	require.NoError(t, err)
	for i, p := range out {
		require.Equalf(t, Pixel{R: 2, G: 2, B: 2, A: 255}, p, "pixel %d", i)
	}
}

func TestDecodeETC1A4BlockAlphaPlane(t *testing.T) {
	color := make([]byte, 8)
	alpha := make([]byte, 8)
	for i := range alpha {
		alpha[i] = 0xFF
	}
	data := append(alpha, color...)

	out, err := DecodeETC1Block(data, true)
	require.NoError(t, err)
	for i, p := range out {
		require.Equalf(t, byte(255), p.A, "pixel %d alpha", i)
		require.Equalf(t, byte(2), p.R, "pixel %d R", i)
	}
}

func TestDecodeETC1BlockDifferential(t *testing.T) {
	var word uint64
	word |= 1 << 33       // differential mode
	word |= uint64(0x10) << 59 // r1 base bits
	word |= uint64(0x2) << 56  // dr offset (+2)

	data := make([]byte, 8)
	for i := 0; i < 8; i++ {
		data[i] = byte(word >> uint(8*i))
	}

	out, err := DecodeETC1Block(data, false)
	require.NoError(t, err)

	// px=0,py=0 -> sub-block 1 (r1=expand5(0x10)=132, +mod 2 = 134)
	require.Equal(t, Pixel{R: 134, G: 2, B: 2, A: 255}, out[0])
	// px=2,py=0 -> sub-block 2 (r2=expand5(18)=148, +mod 2 = 150)
	require.Equal(t, Pixel{R: 150, G: 2, B: 2, A: 255}, out[8])
}

func TestDecodeETC1BlockTruncated(t *testing.T) {
	_, err := DecodeETC1Block(make([]byte, 4), false)
	require.ErrorIs(t, err, ErrTruncatedBlock)

	_, err = DecodeETC1Block(make([]byte, 8), true)
	require.ErrorIs(t, err, ErrTruncatedBlock)
}

func TestSignExtend3(t *testing.T) {
	cases := []struct {
		in   byte
		want int8
	}{
		{0, 0},
		{1, 1},
		{3, 3},
		{4, -4},
		{7, -1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, signExtend3(tc.in))
	}
}
