package bctk

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkSections(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	WriteSection(w, "FINF", []byte{1, 2, 3, 4}, 0, 0)
	WriteSection(w, "TGLP", []byte{9, 9}, 0, 0)

	var tags []string
	var payloads [][]byte
	c := NewCursor(w.Bytes(), binary.BigEndian)
	err := WalkSections(c, 0, 0, func(s Section) error {
		tags = append(tags, s.Tag)
		payloads = append(payloads, s.Payload)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"FINF", "TGLP"}, tags)
	require.Equal(t, []byte{1, 2, 3, 4}, payloads[0])
	require.Equal(t, []byte{9, 9}, payloads[1])
}

func TestWalkSectionsTruncated(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	w.WriteMagic("FINF")
	w.WriteU32(100) // claims 92 bytes of payload that aren't there
	w.WriteBytes([]byte{1, 2})

	c := NewCursor(w.Bytes(), binary.BigEndian)
	err := WalkSections(c, 0, 0, func(s Section) error { return nil })
	require.ErrorIs(t, err, ErrTruncatedSection)
}

func TestWalkSectionsStopsOnCallbackError(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	WriteSection(w, "FINF", []byte{1}, 0, 0)
	WriteSection(w, "TGLP", []byte{2}, 0, 0)

	c := NewCursor(w.Bytes(), binary.BigEndian)
	count := 0
	err := WalkSections(c, 0, 0, func(s Section) error {
		count++
		return ErrBadMagic
	})
	require.ErrorIs(t, err, ErrBadMagic)
	require.Equal(t, 1, count)
}

// TestWalkSectionsPadding exercises MSBT's 16-byte 0xAB-filler alignment:
// a section whose tag+size+payload doesn't land on a 16-byte boundary must
// be skipped past its trailing filler before the next section is read.
func TestWalkSectionsPadding(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	WriteSection(w, "LBL1", []byte{1, 2, 3}, 16, 0xAB) // 11 bytes header+payload, pads to 16
	WriteSection(w, "TXT2", []byte{9, 9}, 16, 0xAB)

	buf := w.Bytes()
	require.Len(t, buf, 32)
	require.Equal(t, byte(0xAB), buf[11])
	require.Equal(t, byte(0xAB), buf[15])

	var tags []string
	c := NewCursor(buf, binary.LittleEndian)
	err := WalkSections(c, 16, 0xAB, func(s Section) error {
		tags = append(tags, s.Tag)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"LBL1", "TXT2"}, tags)
}

func TestWalkChainAndChainEncoder(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	ce := NewChainEncoder(w)

	type link struct{ value uint16 }
	links := []link{{1}, {2}, {3}}

	for _, l := range links {
		headerStart := w.Pos()
		sizePos, _ := ce.StartLink("LINK")
		w.WriteU16(l.value)
		ce.SetNextOffsetPos(w.Pos())
		w.WriteU32(0)
		ce.FinishLink(headerStart, sizePos)
	}
	firstOffset := ce.FirstBodyOffset()

	var values []uint16
	c := NewCursor(w.Bytes(), binary.BigEndian)
	err := WalkChain(c, firstOffset, func(tag string) (uint32, error) {
		require.Equal(t, "LINK", tag)
		v, err := c.ReadU16()
		require.NoError(t, err)
		values = append(values, v)
		return c.ReadU32()
	})
	require.NoError(t, err)
	require.Equal(t, []uint16{1, 2, 3}, values)
}
