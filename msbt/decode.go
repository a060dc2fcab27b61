package msbt

import (
	"encoding/binary"
	"fmt"

	"github.com/go3ds/bctools/bctk"
)

// Decode parses a complete MSBT buffer. decodeColors controls whether
// TXT2's inline color escape is rendered as a "[#RRGGBBAA]" literal.
func Decode(buf []byte, decodeColors bool) (*File, error) {
	if len(buf) < headerSize {
		return nil, bctk.ErrTruncatedSection
	}
	order, err := bctk.SniffBOM(buf, 8)
	if err != nil {
		return nil, err
	}
	c := bctk.NewCursor(buf, order)

	magicA, err := c.ReadMagic()
	if err != nil {
		return nil, err
	}
	magicB, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if magicA+string(magicB) != headerMagic {
		return nil, bctk.ErrBadMagic
	}
	if _, err := c.ReadU16(); err != nil { // BOM
		return nil, err
	}
	u1, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	u2, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadU16(); err != nil { // section count, re-derived from the walk below
		return nil, err
	}
	u3, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	fileSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	reservedBytes, err := c.ReadBytes(10)
	if err != nil {
		return nil, err
	}

	f := &File{
		Header:       Header{Unknown1: u1, Unknown2: u2, Unknown3: u3},
		DecodeColors: decodeColors,
	}
	copy(f.Header.Reserved[:], reservedBytes)

	if int(fileSize) != len(buf) {
		f.Warnings = append(f.Warnings, fmt.Sprintf("msbt: declared file size %d does not match physical length %d", fileSize, len(buf)))
	}

	err = bctk.WalkSections(c, sectionPadTo, sectionPadByte, func(s bctk.Section) error {
		switch s.Tag {
		case "LBL1":
			return decodeLBL1(f, s.Payload, order)
		case "ATR1":
			return decodeATR1(f, s.Payload, order)
		case "TXT2":
			return decodeTXT2(f, s.Payload, order)
		case "NLI1":
			// Present in some files, never interpreted by this codec; skip.
			return nil
		default:
			f.Warnings = append(f.Warnings, fmt.Sprintf("msbt: unknown section tag %q, skipped", s.Tag))
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

// decodeLBL1 reads LBL1's bucket table and every label entry it points to.
// All offsets are relative to payload, matching resolveOffset's convention
// once headerEnd is itself expressed as a payload-relative position.
func decodeLBL1(f *File, payload []byte, order binary.ByteOrder) error {
	if len(payload) < 8 {
		return bctk.ErrTruncatedSection
	}
	unknown := order.Uint32(payload[0:4])
	bucketCount := order.Uint32(payload[4:8])

	const headerEnd = 8
	f.HasLabels = true
	f.LabelUnknown = unknown
	f.BucketCount = bucketCount

	tablePos := headerEnd
	for b := uint32(0); b < bucketCount; b++ {
		if tablePos+8 > len(payload) {
			return bctk.ErrTruncatedSection
		}
		count := order.Uint32(payload[tablePos : tablePos+4])
		offset := order.Uint32(payload[tablePos+4 : tablePos+8])
		tablePos += 8

		if count == 0 {
			continue
		}
		pos := resolveOffset(headerEnd, offset)
		for i := uint32(0); i < count; i++ {
			if pos < 0 || pos >= len(payload) {
				return bctk.ErrTruncatedSection
			}
			length := int(payload[pos])
			pos++
			if pos+length+4 > len(payload) {
				return bctk.ErrTruncatedSection
			}
			name := string(payload[pos : pos+length])
			pos += length
			index := order.Uint32(payload[pos : pos+4])
			pos += 4
			f.Labels = append(f.Labels, Label{Name: name, Index: index})
		}
	}
	return nil
}

// decodeATR1 preserves ATR1's body verbatim: its per-entry layout isn't
// specified beyond a fixed 12-byte header, so the payload round-trips as an
// opaque blob.
func decodeATR1(f *File, payload []byte, order binary.ByteOrder) error {
	if len(payload) < 12 {
		return bctk.ErrTruncatedSection
	}
	entries := order.Uint32(payload[0:4])
	u1 := order.Uint32(payload[4:8])
	u2 := order.Uint32(payload[8:12])

	f.HasAttributes = true
	f.AttrEntries = entries
	f.AttrUnknown1 = u1
	f.AttrUnknown2 = u2
	f.Attributes = append([]byte(nil), payload[12:]...)
	return nil
}

// decodeTXT2 reads TXT2's offset table and every UTF-16 string it names,
// applying the color-escape decode when f.DecodeColors is set.
func decodeTXT2(f *File, payload []byte, order binary.ByteOrder) error {
	if len(payload) < 4 {
		return bctk.ErrTruncatedSection
	}
	entries := order.Uint32(payload[0:4])
	const headerEnd = 4
	offsetTableStart := headerEnd

	texts := make([]string, entries)
	for i := uint32(0); i < entries; i++ {
		offPos := offsetTableStart + int(i)*4
		if offPos+4 > len(payload) {
			return bctk.ErrTruncatedSection
		}
		off := order.Uint32(payload[offPos : offPos+4])
		strStart := resolveOffset(headerEnd, off)
		if strStart < 0 || strStart > len(payload) {
			return bctk.ErrTruncatedSection
		}

		var units []uint16
		pos := strStart
		for {
			if pos+2 > len(payload) {
				return bctk.ErrTruncatedSection
			}
			u := order.Uint16(payload[pos : pos+2])
			pos += 2
			if u == 0 {
				break
			}
			units = append(units, u)
		}

		if f.DecodeColors {
			texts[i] = decodeColorEscapes(units, order)
		} else {
			runes := make([]rune, len(units))
			for j, u := range units {
				runes[j] = rune(u)
			}
			texts[i] = string(runes)
		}
	}
	f.HasText = true
	f.Texts = texts
	return nil
}
