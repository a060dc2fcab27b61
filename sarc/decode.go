package sarc

import "github.com/go3ds/bctools/bctk"

// Decode parses a complete, already-uncompressed SARC buffer in one pass.
// For input that may arrive in arbitrary-sized chunks (the zlib-wrapped
// transport), use Decoder instead.
func Decode(buf []byte) (*Archive, error) {
	order, err := bctk.SniffBOM(buf, 6)
	if err != nil {
		return nil, err
	}
	c := bctk.NewCursor(buf, order)

	magic, err := c.ReadMagic()
	if err != nil {
		return nil, err
	}
	if magic != "SARC" {
		return nil, bctk.ErrBadMagic
	}
	headerSize, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if headerSize != sarcHeaderSize {
		return nil, bctk.ErrBadHeaderSize
	}
	if _, err := c.ReadU16(); err != nil { // BOM, already consumed by SniffBOM
		return nil, err
	}
	fileSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(fileSize) != len(buf) {
		return nil, bctk.ErrSizeMismatch
	}
	dataOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // constant, 0x100
		return nil, err
	}

	nodes, nameTable, err := decodeFatAndFnt(c, dataOffset)
	if err != nil {
		return nil, err
	}

	files := make([]File, len(nodes))
	for i, node := range nodes {
		if node.HasName {
			node.Name, err = readCString(nameTable, int(node.nameOffset))
			if err != nil {
				return nil, err
			}
			if bctk.SFATHash(node.Name) != node.Hash {
				return nil, bctk.ErrHashMismatch
			}
		} else {
			node.Name = synthesizeNonameName(node.Hash)
		}

		start := int(dataOffset + node.DataStart)
		end := int(dataOffset + node.DataEnd)
		if start < 0 || end > len(buf) || start > end {
			return nil, bctk.ErrTruncatedSection
		}
		files[i] = File{Node: node, Data: buf[start:end]}
	}

	return &Archive{Order: order, DataOffset: dataOffset, Files: files}, nil
}

// decodeFatAndFnt reads the SFAT header, its nodes, the SFNT header, and the
// raw name table spanning up to dataOffset, shared by Decode and Decoder.
func decodeFatAndFnt(c *bctk.Cursor, dataOffset uint32) ([]Node, []byte, error) {
	magic, err := c.ReadMagic()
	if err != nil {
		return nil, nil, err
	}
	if magic != "SFAT" {
		return nil, nil, bctk.ErrBadMagic
	}
	fatHeaderSize, err := c.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	if fatHeaderSize != sfatHeaderSize {
		return nil, nil, bctk.ErrBadHeaderSize
	}
	nodeCount, err := c.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	hashMult, err := c.ReadU32()
	if err != nil {
		return nil, nil, err
	}
	if hashMult != bctk.SFATMultiplier {
		return nil, nil, ErrBadHashMultiplier
	}

	nodes := make([]Node, nodeCount)
	for i := range nodes {
		hash, err := c.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		nameEntry, err := c.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		dataStart, err := c.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		dataEnd, err := c.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		nodes[i] = Node{
			Hash:       hash,
			HasName:    nameEntry>>24 != 0,
			nameOffset: (nameEntry & 0xFFFFFF) * 4,
			DataStart:  dataStart,
			DataEnd:    dataEnd,
		}
	}

	magic, err = c.ReadMagic()
	if err != nil {
		return nil, nil, err
	}
	if magic != "SFNT" {
		return nil, nil, bctk.ErrBadMagic
	}
	fntHeaderSize, err := c.ReadU16()
	if err != nil {
		return nil, nil, err
	}
	if fntHeaderSize != sfntHeaderSize {
		return nil, nil, bctk.ErrBadHeaderSize
	}
	if _, err := c.ReadU16(); err != nil { // unknown
		return nil, nil, err
	}

	nameTableLen := int(dataOffset) - c.Pos()
	if nameTableLen < 0 {
		return nil, nil, bctk.ErrTruncatedSection
	}
	nameTable, err := c.ReadBytes(nameTableLen)
	if err != nil {
		return nil, nil, bctk.ErrTruncatedSection
	}
	return nodes, nameTable, nil
}

// readCString reads a NUL-terminated ASCII string starting at offset within buf.
func readCString(buf []byte, offset int) (string, error) {
	if offset < 0 || offset > len(buf) {
		return "", bctk.ErrOutOfBounds
	}
	end := offset
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	if end >= len(buf) {
		return "", bctk.ErrTruncatedSection
	}
	return string(buf[offset:end]), nil
}
