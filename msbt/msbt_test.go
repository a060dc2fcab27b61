package msbt

import (
	"encoding/binary"
	"testing"

	"github.com/go3ds/bctools/bctk"
	"github.com/stretchr/testify/require"
)

func sampleFile() *File {
	return &File{
		HasLabels:   true,
		BucketCount: 4,
		Labels: []Label{
			{Name: "greeting", Index: 0},
			{Name: "farewell", Index: 1},
		},
		HasAttributes: true,
		AttrEntries:   1,
		Attributes:    []byte{0x01, 0x02, 0x03, 0x04},
		HasText:       true,
		Texts:         []string{"hello world", "goodbye"},
		DecodeColors:  true,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		f := sampleFile()
		buf, err := Encode(f, order)
		require.NoError(t, err)

		decoded, err := Decode(buf, true)
		require.NoError(t, err)
		require.Empty(t, decoded.Warnings)
		require.ElementsMatch(t, f.Labels, decoded.Labels)
		require.Equal(t, f.Texts, decoded.Texts)
		require.Equal(t, f.Attributes, decoded.Attributes)

		reEncoded, err := Encode(decoded, order)
		require.NoError(t, err)
		require.Equal(t, buf, reEncoded)
	}
}

func TestColorEscapeRoundTrip(t *testing.T) {
	f := &File{
		HasText:      true,
		Texts:        []string{"hello[#ff8800ff]world"},
		DecodeColors: true,
	}
	buf, err := Encode(f, binary.LittleEndian)
	require.NoError(t, err)

	decoded, err := Decode(buf, true)
	require.NoError(t, err)
	require.Equal(t, []string{"hello[#ff8800ff]world"}, decoded.Texts)
}

// TestColorEscapeWireShape checks property 8's literal wire shape: the
// escape is two tag code units followed by the 32-bit color value, encoded
// through the container's own byte order.
func TestColorEscapeWireShape(t *testing.T) {
	units := encodeColorEscapes("ab[#ff8800ff]cd", binary.LittleEndian)

	want := []uint16{'a', 'b', colorEscapeTag1, colorEscapeTag2}
	var colorBytes [4]byte
	binary.LittleEndian.PutUint32(colorBytes[:], 0xff8800ff)
	want = append(want,
		binary.LittleEndian.Uint16(colorBytes[0:2]),
		binary.LittleEndian.Uint16(colorBytes[2:4]),
		'c', 'd',
	)
	require.Equal(t, want, units)
}

func TestUnknownSectionIsWarningNotFatal(t *testing.T) {
	f := &File{HasText: true, Texts: []string{"x"}}
	buf, err := Encode(f, binary.LittleEndian)
	require.NoError(t, err)

	// Append a section with an unrecognized tag after TXT2 and patch the
	// declared file size so that the only inconsistency is the unknown tag.
	w := bctk.NewWriter(binary.LittleEndian)
	w.WriteBytes(buf)
	bctk.WriteSection(w, "XXX1", []byte{1, 2, 3, 4}, sectionPadTo, sectionPadByte)
	w.PatchU32At(0x12, uint32(w.Pos()))

	decoded, err := Decode(w.Bytes(), false)
	require.NoError(t, err)
	require.Len(t, decoded.Warnings, 1)
	require.Contains(t, decoded.Warnings[0], "unknown section tag")
	require.Equal(t, []string{"x"}, decoded.Texts)
}

func TestFileSizeMismatchIsWarning(t *testing.T) {
	f := sampleFile()
	buf, err := Encode(f, binary.LittleEndian)
	require.NoError(t, err)

	buf[0x12] ^= 0xFF // corrupt the declared file size field
	decoded, err := Decode(buf, true)
	require.NoError(t, err)
	require.NotEmpty(t, decoded.Warnings)
}

func TestLabelHashOrderSensitive(t *testing.T) {
	require.NotEqual(t, labelHash("ab"), labelHash("ba"))
}

func TestEncodeRejectsLabelWithoutTextSection(t *testing.T) {
	f := &File{
		HasLabels:   true,
		BucketCount: 4,
		Labels:      []Label{{Name: "greeting", Index: 0}},
	}
	_, err := Encode(f, binary.LittleEndian)
	require.ErrorIs(t, err, ErrNoTextSection)
}

func TestEncodeRejectsLabelIndexPastText(t *testing.T) {
	f := &File{
		HasLabels:   true,
		BucketCount: 4,
		Labels:      []Label{{Name: "greeting", Index: 5}},
		HasText:     true,
		Texts:       []string{"only one"},
	}
	_, err := Encode(f, binary.LittleEndian)
	require.ErrorIs(t, err, ErrNoTextSection)
}
