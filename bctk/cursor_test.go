package bctk

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderFromBOM(t *testing.T) {
	cases := []struct {
		name    string
		bom     uint16
		want    binary.ByteOrder
		wantErr bool
	}{
		{"little", BomLittleEndian, binary.LittleEndian, false},
		{"big", BomBigEndian, binary.BigEndian, false},
		{"bad", 0x1234, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OrderFromBOM(tc.bom)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrBadBom)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSniffBOM(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		w := NewWriter(order)
		w.WriteU16(BomLittleEndian) // the canonical marker; order serializes it
		got, err := SniffBOM(w.Bytes(), 0)
		require.NoError(t, err)
		require.Equal(t, order, got)
	}

	_, err := SniffBOM([]byte{0}, 0)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCursorReadWrite(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	w.WriteMagic("TEST")
	w.WriteU32(0xDEADBEEF)
	w.WriteU16(0x1234)
	w.WriteU8(0x42)
	w.WriteI8(-1)
	w.WritePad(2)

	c := NewCursor(w.Bytes(), binary.BigEndian)
	tag, err := c.ReadMagic()
	require.NoError(t, err)
	require.Equal(t, "TEST", tag)

	u32, err := c.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	u16, err := c.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u8, err := c.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x42), u8)

	i8, err := c.ReadI8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)

	pad, err := c.ReadBytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, pad)
}

func TestCursorOutOfBounds(t *testing.T) {
	c := NewCursor([]byte{1, 2}, binary.LittleEndian)
	_, err := c.ReadU32()
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCursorSeekAbs(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4}, binary.LittleEndian)
	require.NoError(t, c.SeekAbs(2))
	require.Equal(t, 2, c.Pos())
	require.Error(t, c.SeekAbs(5))
}

func TestWriterPatch(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	pos := w.Pos()
	w.WriteU32(0)
	w.WriteBytes([]byte("trailer"))
	w.PatchU32At(pos, 0xCAFEBABE)

	c := NewCursor(w.Bytes(), binary.LittleEndian)
	got, err := c.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xCAFEBABE), got)
}
