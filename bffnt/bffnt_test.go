package bffnt

import (
	"encoding/binary"
	"testing"

	"github.com/go3ds/bctools/bctk"
	"github.com/stretchr/testify/require"
)

func smallFont() *Font {
	sheet := NewBitmap(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			sheet.Set(x, y, bctk.Pixel{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255})
		}
	}

	return &Font{
		Magic:   "FFNT",
		Version: 0x04000000,
		Info: FontInfo{
			FontType: 1, Height: 16, Width: 12, Ascent: 12,
			LineFeed: 18, AlterCharIndex: 0, DefaultLeft: 0,
			DefaultGlyphWidth: 8, DefaultCharWidth: 8, Encoding: 1,
		},
		Sheet: SheetSet{
			GlyphWidth: 4, GlyphHeight: 4, MaxCharWidth: 4, BaselinePosition: 3,
			Format: bctk.FormatRGBA8, Cols: 1, Rows: 1, SheetWidth: 4, SheetHeight: 4,
			Sheets: []Bitmap{sheet},
		},
		Widths: []CWDH{{
			StartIndex: 0, EndIndex: 3,
			Records: []GlyphWidthRecord{
				{Left: 0, GlyphWidth: 4, CharWidth: 4},
				{Left: 0, GlyphWidth: 4, CharWidth: 4},
				{Left: 0, GlyphWidth: 4, CharWidth: 4},
				{Left: 0, GlyphWidth: 4, CharWidth: 4},
			},
		}},
		Maps: []CMAP{{
			CodeBegin: 0x41, CodeEnd: 0x44, Type: MappingScan,
			Pairs: []CodePair{
				{Code: 0x41, Index: 0}, {Code: 0x42, Index: 1},
				{Code: 0x43, Index: 2}, {Code: 0x44, Index: 3},
			},
		}},
	}
}

func TestRoundTripBothEndians(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		font := smallFont()
		buf, err := Encode(font, order)
		require.NoError(t, err)

		decoded, err := Decode(buf)
		require.NoError(t, err)

		reEncoded, err := Encode(decoded, order)
		require.NoError(t, err)
		require.Equal(t, buf, reEncoded)
	}
}

func TestDecodeGlyphSheetPixels(t *testing.T) {
	font := smallFont()
	buf, err := Encode(font, binary.LittleEndian)
	require.NoError(t, err)

	decoded, err := Decode(buf)
	require.NoError(t, err)

	require.Len(t, decoded.Sheet.Sheets, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := bctk.Pixel{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255}
			require.Equalf(t, want, decoded.Sheet.Sheets[0].At(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestCMAPDispatch(t *testing.T) {
	font := &Font{
		Maps: []CMAP{
			{CodeBegin: 0x20, CodeEnd: 0x7F, Type: MappingDirect, IndexOffset: 1},
			{CodeBegin: 0xFF21, CodeEnd: 0xFF22, Type: MappingScan, Pairs: []CodePair{
				{Code: 0xFF21, Index: 100}, {Code: 0xFF22, Index: 101},
			}},
		},
	}

	idx, ok := font.Lookup(0x41)
	require.True(t, ok)
	require.Equal(t, uint16(0x41-0x20+1), idx)

	idx, ok = font.Lookup(0xFF21)
	require.True(t, ok)
	require.Equal(t, uint16(100), idx)

	_, ok = font.Lookup(0x80)
	require.False(t, ok)
}

func TestManifestRoundTrip(t *testing.T) {
	font := smallFont()
	m, err := ToManifest(font)
	require.NoError(t, err)
	require.Equal(t, "RGBA8", m.TextureInfo.SheetInfo.ColorFormat)
	require.Len(t, m.GlyphWidths, 4)
	require.Equal(t, uint16(0), m.GlyphMap["A"]) // 0x41 == 'A'

	rebuilt, err := FromManifest(m)
	require.NoError(t, err)
	require.Equal(t, font.Widths[0].Records, rebuilt.Widths[0].Records)
}

func TestEncodeRejectsSheetDimensionMismatch(t *testing.T) {
	font := smallFont()
	font.Sheet.Sheets[0] = NewBitmap(2, 2)

	_, err := Encode(font, binary.LittleEndian)
	require.ErrorIs(t, err, bctk.ErrDimensionMismatch)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	font := smallFont()
	buf, err := Encode(font, binary.LittleEndian)
	require.NoError(t, err)

	binary.LittleEndian.PutUint32(buf[0x08:0x0C], 0x05000000)

	_, err = Decode(buf)
	require.ErrorIs(t, err, bctk.ErrUnknownVersion)
}
