// Package sarc implements the SARC archive container: a hash-indexed
// filename table (SFAT/SFNT) wrapping a contiguous file-data region, with an
// optional zlib-wrapped transport that decodes through a chunk-resumable
// state machine rather than requiring the whole compressed stream up front.
package sarc

import (
	"encoding/binary"
	"fmt"

	"github.com/go3ds/bctools/bctk"
)

const (
	sarcHeaderSize = 0x14
	sfatHeaderSize = 0x0C
	sfatNodeSize   = 0x10
	sfntHeaderSize = 0x08

	sarcHeaderUnknown uint32 = 0x100
	dataAlignment     uint32 = 0x80
	dataRegionAlign   uint32 = 0x100
)

// Node is one SFAT entry: a filename hash plus the data range it names,
// relative to the archive's data offset.
type Node struct {
	Hash       uint32
	HasName    bool
	Name       string
	DataStart  uint32
	DataEnd    uint32
	nameOffset uint32 // byte offset into the SFNT name table, only valid when HasName
}

// File is a fully-resolved archive member: its node plus its extracted bytes.
type File struct {
	Node
	Data []byte
}

// Archive is a fully decoded (or about-to-be-encoded) SARC container.
type Archive struct {
	Order      binary.ByteOrder
	DataOffset uint32
	Files      []File
}

// nonameHashPrefix and nonameHashSuffix bracket the synthesized name the
// original encoder uses for hash-only members: "0x%08x.noname.bin".
const (
	nonameHashPrefix = "0x"
	nonameHashSuffix = ".noname.bin"
)

// synthesizeNonameName renders the placeholder name used for an archive
// member that carries no SFNT entry.
func synthesizeNonameName(hash uint32) string {
	return fmt.Sprintf("%s%08x%s", nonameHashPrefix, hash, nonameHashSuffix)
}

// ParseNonameHash recovers the hash encoded in a "0x<hex>.noname.bin" name,
// the form synthesized for archive members with no stored filename.
func ParseNonameHash(name string) (uint32, bool) {
	if len(name) != len(nonameHashPrefix)+8+len(nonameHashSuffix) {
		return 0, false
	}
	if name[:len(nonameHashPrefix)] != nonameHashPrefix {
		return 0, false
	}
	if name[len(name)-len(nonameHashSuffix):] != nonameHashSuffix {
		return 0, false
	}
	hexPart := name[len(nonameHashPrefix) : len(name)-len(nonameHashSuffix)]
	var hash uint32
	for i := 0; i < len(hexPart); i++ {
		c := hexPart[i]
		var v uint32
		switch {
		case c >= '0' && c <= '9':
			v = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v = uint32(c-'a') + 10
		default:
			return 0, false
		}
		hash = hash<<4 | v
	}
	return hash, true
}

// Hash returns the SFAT sort/lookup key for name, honoring the noname
// placeholder form so callers never need to special-case it themselves.
func Hash(name string) uint32 {
	if h, ok := ParseNonameHash(name); ok {
		return h
	}
	return bctk.SFATHash(name)
}
