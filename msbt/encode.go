package msbt

import (
	"encoding/binary"

	"github.com/go3ds/bctools/bctk"
)

// Encode serializes f to its byte representation using order as the
// container's byte order. Label→bucket assignment is recomputed from
// f.BucketCount and each label's name via labelHash; decode never needs
// this since it walks the buckets as stored, but an encoder authoring a new
// file has no other way to place labels into buckets.
func Encode(f *File, order binary.ByteOrder) ([]byte, error) {
	if f.HasLabels {
		textCount := uint32(len(f.Texts))
		for _, l := range f.Labels {
			if !f.HasText || l.Index >= textCount {
				return nil, ErrNoTextSection
			}
		}
	}

	w := bctk.NewWriter(order)

	w.WriteMagic("MsgS")
	w.WriteMagic("tdBn")
	w.WriteU16(bctk.BomLittleEndian)
	w.WriteU16(f.Header.Unknown1)
	w.WriteU16(f.Header.Unknown2)

	sectionCountPos := w.Pos()
	w.WriteU16(0) // patched once every section is known
	w.WriteU16(f.Header.Unknown3)
	fileSizePos := w.Pos()
	w.WriteU32(0) // patched below
	w.WriteBytes(f.Header.Reserved[:])

	sectionCount := 0

	if f.HasLabels {
		encodeLBL1(w, f, order)
		sectionCount++
	}
	if f.HasAttributes {
		encodeATR1(w, f)
		sectionCount++
	}
	if f.HasText {
		encodeTXT2(w, f, order)
		sectionCount++
	}

	w.PatchU16At(sectionCountPos, uint16(sectionCount))
	w.PatchU32At(fileSizePos, uint32(w.Pos()))
	return w.Bytes(), nil
}

// encodeLBL1 rebuilds the bucket table from f.Labels, grouping each label
// into bucket (labelHash(name) % f.BucketCount) and writing buckets in
// ascending index order, matching SARC's ascending-hash ordering idiom
// generalized to MSBT's bucket shape. The body is built in a scratch writer
// so its length is known before bctk.WriteSection emits the tag+size
// header and the trailing 0xAB padding.
func encodeLBL1(w *bctk.Writer, f *File, order binary.ByteOrder) {
	body := bctk.NewWriter(order)
	body.WriteU32(f.LabelUnknown)
	body.WriteU32(f.BucketCount)

	buckets := make([][]Label, f.BucketCount)
	for _, l := range f.Labels {
		b := labelHash(l.Name) % f.BucketCount
		buckets[b] = append(buckets[b], l)
	}

	labelBytes := bctk.NewWriter(order)
	// Label entries are written after the full bucket table, so their base
	// (relative to headerEnd) sits bucketCount*8 bytes in, plus the usual
	// +4 bias.
	labelBytesBase := uint32(f.BucketCount) * 8
	for _, bucket := range buckets {
		count := uint32(len(bucket))
		var offset uint32
		if count > 0 {
			offset = labelBytesBase + uint32(labelBytes.Pos()) + 4
		}
		body.WriteU32(count)
		body.WriteU32(offset)

		for _, l := range bucket {
			labelBytes.WriteU8(uint8(len(l.Name)))
			labelBytes.WriteBytes([]byte(l.Name))
			labelBytes.WriteU32(l.Index)
		}
	}
	body.WriteBytes(labelBytes.Bytes())

	bctk.WriteSection(w, "LBL1", body.Bytes(), sectionPadTo, sectionPadByte)
}

// encodeATR1 re-emits the opaque attribute blob exactly as stored.
func encodeATR1(w *bctk.Writer, f *File) {
	body := bctk.NewWriter(w.Order())
	body.WriteU32(f.AttrEntries)
	body.WriteU32(f.AttrUnknown1)
	body.WriteU32(f.AttrUnknown2)
	body.WriteBytes(f.Attributes)

	bctk.WriteSection(w, "ATR1", body.Bytes(), sectionPadTo, sectionPadByte)
}

// encodeTXT2 writes the offset table and UTF-16 string bodies, applying the
// color-escape encode when a string contains a "[#RRGGBBAA]" literal.
func encodeTXT2(w *bctk.Writer, f *File, order binary.ByteOrder) {
	entries := uint32(len(f.Texts))

	// String bytes are written after the full offset table, so their base
	// (relative to headerEnd) sits entries*4 bytes in, plus the usual +4 bias.
	strBytesBase := entries * 4
	strBytes := bctk.NewWriter(order)
	offsets := make([]uint32, entries)
	for i, s := range f.Texts {
		offsets[i] = strBytesBase + uint32(strBytes.Pos()) + 4

		var units []uint16
		if f.DecodeColors {
			units = encodeColorEscapes(s, order)
		} else {
			for _, r := range s {
				units = append(units, uint16(r))
			}
		}
		for _, u := range units {
			strBytes.WriteU16(u)
		}
		strBytes.WriteU16(0)
	}

	body := bctk.NewWriter(order)
	body.WriteU32(entries)
	for _, off := range offsets {
		body.WriteU32(off)
	}
	body.WriteBytes(strBytes.Bytes())

	bctk.WriteSection(w, "TXT2", body.Bytes(), sectionPadTo, sectionPadByte)
}
