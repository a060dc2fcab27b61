package bctk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaddedDims(t *testing.T) {
	cases := []struct {
		w, h       int
		wantW      int
		wantH      int
	}{
		{8, 8, 8, 8},
		{12, 17, 16, 32},
		{256, 512, 256, 512},
		{1024, 64, 1024, 64},
		{1, 1, 8, 8},
	}
	for _, tc := range cases {
		wp, hp := PaddedDims(tc.w, tc.h)
		require.Equal(t, tc.wantW, wp)
		require.Equal(t, tc.wantH, hp)
	}
}

// TestTiledIndexIsBijection checks the spec's swizzle-inverse testable
// property: across a padded canvas, TiledIndex visits every linear slot
// exactly once.
func TestTiledIndexIsBijection(t *testing.T) {
	dims := [][2]int{{8, 8}, {12, 17}, {256, 512}, {1024, 64}}
	for _, d := range dims {
		wp, hp := PaddedDims(d[0], d[1])
		seen := make([]bool, wp*hp)
		for y := 0; y < hp; y++ {
			for x := 0; x < wp; x++ {
				idx := TiledIndex(x, y, wp)
				require.GreaterOrEqualf(t, idx, 0, "dims %v (%d,%d)", d, x, y)
				require.Lessf(t, idx, wp*hp, "dims %v (%d,%d)", d, x, y)
				require.Falsef(t, seen[idx], "dims %v (%d,%d) produced duplicate index %d", d, x, y, idx)
				seen[idx] = true
			}
		}
		for i, ok := range seen {
			require.Truef(t, ok, "dims %v index %d never produced", d, i)
		}
	}
}

// referenceTiledIndex recomputes the data_pos weighting term by term, summing
// the x and y contributions separately. It is used only as a cross-check in
// tests — never called from production code, which uses TiledIndex instead.
func referenceTiledIndex(x, y, paddedW int) int {
	tx, bx, sx, px := x/8, (x%8)/4, (x%4)/2, x%2
	ty, by, sy, py := y/8, (y%8)/4, (y%4)/2, y%2

	dataX := px + sx*4 + bx*16 + tx*64
	dataY := py*2 + sy*8 + by*32 + ty*paddedW*8
	return dataX + dataY
}

// TestTiledIndexMatchesReferenceWalk cross-checks TiledIndex against the
// separately written data_pos reference, confirming it's the data_pos weighting
// (the actual tiled storage layout) and not the pixel_linear_pos weighting —
// a distinction the bijection test alone can't make, since both are
// bijections over the same padded canvas.
func TestTiledIndexMatchesReferenceWalk(t *testing.T) {
	dims := [][2]int{{8, 8}, {12, 17}, {256, 512}, {1024, 64}}
	for _, d := range dims {
		wp, hp := PaddedDims(d[0], d[1])
		for y := 0; y < hp; y++ {
			for x := 0; x < wp; x++ {
				require.Equalf(t, referenceTiledIndex(x, y, wp), TiledIndex(x, y, wp), "dims %v (%d,%d)", d, x, y)
			}
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 8: 8, 9: 16, 1023: 1024, 1024: 1024}
	for in, want := range cases {
		require.Equal(t, want, NextPowerOfTwo(in))
	}
}
