package bctk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPixelFormatIdempotence covers the spec's round-trip property for the
// formats with no lossy channel reduction: pack then unpack must recover the
// pixel exactly as the format represents it (RGBA8 unchanged, LA8/L8 as
// Rec.709 luminance, A8 as white with the original alpha).
func TestPixelFormatIdempotence(t *testing.T) {
	formats := []Format{FormatRGBA8, FormatLA8, FormatL8, FormatA8}
	pixels := []Pixel{
		{R: 0, G: 0, B: 0, A: 0},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 12, G: 200, B: 77, A: 128},
	}

	for _, f := range formats {
		for _, p := range pixels {
			want := p
			switch f {
			case FormatLA8, FormatL8:
				l := luminance(p)
				want = Pixel{R: l, G: l, B: l, A: p.A}
				if f == FormatL8 {
					want.A = 255
				}
			case FormatA8:
				want = Pixel{R: 255, G: 255, B: 255, A: p.A}
			}

			data := make([]byte, DataSize(f, 1))
			require.NoError(t, PackPixel(f, p, data, 0))
			got, err := UnpackPixel(f, data, 0)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	p := Pixel{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}
	data := make([]byte, 2)
	require.NoError(t, PackPixel(FormatRGB565, p, data, 0))
	got, err := UnpackPixel(FormatRGB565, data, 0)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestRGBA5551RoundTrip(t *testing.T) {
	cases := []Pixel{
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 255},
		{R: 0x00, G: 0x00, B: 0x00, A: 0},
	}
	for _, p := range cases {
		data := make([]byte, 2)
		require.NoError(t, PackPixel(FormatRGBA5551, p, data, 0))
		got, err := UnpackPixel(FormatRGBA5551, data, 0)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestPixelFormatOutOfBounds(t *testing.T) {
	_, err := UnpackPixel(FormatRGBA8, []byte{1, 2, 3}, 0)
	require.ErrorIs(t, err, ErrOutOfBounds)

	err = PackPixel(FormatRGBA8, Pixel{}, []byte{1, 2, 3}, 0)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHILO8Unsupported(t *testing.T) {
	err := PackPixel(FormatHILO8, Pixel{}, make([]byte, 2), 0)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnknownFormat(t *testing.T) {
	_, err := UnpackPixel(Format(999), make([]byte, 4), 0)
	require.ErrorIs(t, err, ErrUnknownPixelFormat)
}

func TestL4A4SharedByte(t *testing.T) {
	data := make([]byte, 1)
	require.NoError(t, PackPixel(FormatL4, Pixel{R: 0xF0, G: 0xF0, B: 0xF0}, data, 0))
	require.NoError(t, PackPixel(FormatL4, Pixel{R: 0x10, G: 0x10, B: 0x10}, data, 1))

	p0, err := UnpackPixel(FormatL4, data, 0)
	require.NoError(t, err)
	p1, err := UnpackPixel(FormatL4, data, 1)
	require.NoError(t, err)

	require.Equal(t, byte(0xFF), p0.R)
	require.Equal(t, byte(0x11), p1.R)
}

func TestDataSizeBlockFormats(t *testing.T) {
	require.Equal(t, 8, DataSize(FormatETC1, 1))
	require.Equal(t, 16, DataSize(FormatETC1A4, 1))
	require.Equal(t, 80, DataSize(FormatETC1, 10))
}
