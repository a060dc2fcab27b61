package sarc

import (
	"encoding/binary"
	"sort"

	"github.com/go3ds/bctools/bctk"
)

// FileInput is one archive member to be written by Encode. Name should be
// an ordinary path ("textures/icon.png") or, for a hash-only member with no
// stored filename, the synthesized "0x<hex>.noname.bin" form recognized by
// ParseNonameHash.
type FileInput struct {
	Name string
	Data []byte
}

// Encode builds a complete SARC archive from files under order. Members are
// written in ascending filename-hash order (testable property 6); ties keep
// their relative input order, matching a stable sort.
func Encode(files []FileInput, order binary.ByteOrder) ([]byte, error) {
	sorted := make([]FileInput, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Hash(sorted[i].Name) < Hash(sorted[j].Name)
	})

	w := bctk.NewWriter(order)
	w.WriteMagic("SARC")
	w.WriteU16(sarcHeaderSize)
	w.WriteU16(bctk.BomLittleEndian)
	fileSizePos := w.Pos()
	w.WriteU32(0) // patched below
	dataOffsetPos := w.Pos()
	w.WriteU32(0) // patched below
	w.WriteU32(sarcHeaderUnknown)

	w.WriteMagic("SFAT")
	w.WriteU16(sfatHeaderSize)
	w.WriteU16(uint16(len(sorted)))
	w.WriteU32(bctk.SFATMultiplier)

	type patch struct {
		dataStartPos int
	}
	patches := make([]patch, len(sorted))

	fnt := bctk.NewWriter(order)
	for i, f := range sorted {
		hash, hasName, nameOffset := nodeIdentity(f.Name, fnt.Pos())

		w.WriteU32(hash)
		var nameEntry uint32
		if hasName {
			nameEntry = 0x01000000 | (nameOffset / 4)
		}
		w.WriteU32(nameEntry)
		patches[i].dataStartPos = w.Pos()
		w.WriteU32(0) // dataStart, patched below
		w.WriteU32(0) // dataEnd, patched below

		if hasName {
			fnt.WriteBytes([]byte(f.Name))
			fnt.WriteU8(0)
			if pad := 4 - fnt.Pos()%4; pad < 4 {
				fnt.WritePad(pad)
			}
		}
	}

	w.WriteMagic("SFNT")
	w.WriteU16(sfntHeaderSize)
	w.WriteU16(0) // unknown
	w.WriteBytes(fnt.Bytes())

	if pad := int(dataRegionAlign) - w.Pos()%int(dataRegionAlign); pad < int(dataRegionAlign) {
		w.WritePad(pad)
	}
	dataOffset := uint32(w.Pos())
	w.PatchU32At(dataOffsetPos, dataOffset)

	for i, f := range sorted {
		if pad := int(dataAlignment) - w.Pos()%int(dataAlignment); pad < int(dataAlignment) {
			w.WritePad(pad)
		}
		start := uint32(w.Pos()) - dataOffset
		w.WriteBytes(f.Data)
		end := uint32(w.Pos()) - dataOffset

		w.PatchU32At(patches[i].dataStartPos, start)
		w.PatchU32At(patches[i].dataStartPos+4, end)
	}

	w.PatchU32At(fileSizePos, uint32(w.Pos()))
	return w.Bytes(), nil
}

// nodeIdentity resolves a member's hash, whether it carries a stored SFNT
// name, and (if so) the byte offset that name will occupy in the name table
// being built at fntPos.
func nodeIdentity(name string, fntPos int) (hash uint32, hasName bool, nameOffset uint32) {
	if h, ok := ParseNonameHash(name); ok {
		return h, false, 0
	}
	return bctk.SFATHash(name), true, uint32(fntPos)
}
