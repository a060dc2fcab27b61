package bffnt

import "github.com/go3ds/bctools/bctk"

// decodeCWDHChain walks the CWDH chain starting at the absolute body offset
// bodyOffset (FINF's cwdhOffset), returning one CWDH per link in file order.
func decodeCWDHChain(c *bctk.Cursor, bodyOffset uint32) ([]CWDH, error) {
	var chain []CWDH

	err := bctk.WalkChain(c, bodyOffset, func(tag string) (uint32, error) {
		startIndex, err := c.ReadU16()
		if err != nil {
			return 0, err
		}
		endIndexStored, err := c.ReadU16()
		if err != nil {
			return 0, err
		}
		nextOffset, err := c.ReadU32()
		if err != nil {
			return 0, err
		}

		// Quirk: the on-disk endIndex is one less than the inclusive glyph
		// index it names; restore it here so StartIndex/EndIndex describe
		// the logical glyph range directly.
		endIndex := endIndexStored + 1

		count := int(endIndex) - int(startIndex) + 1
		records := make([]GlyphWidthRecord, count)
		for i := range records {
			left, err := c.ReadI8()
			if err != nil {
				return 0, err
			}
			glyphW, err := c.ReadU8()
			if err != nil {
				return 0, err
			}
			charW, err := c.ReadU8()
			if err != nil {
				return 0, err
			}
			records[i] = GlyphWidthRecord{Left: left, GlyphWidth: glyphW, CharWidth: charW}
		}

		chain = append(chain, CWDH{StartIndex: startIndex, EndIndex: endIndex, Records: records})
		return nextOffset, nil
	})
	if err != nil {
		return nil, err
	}

	return chain, nil
}

// encodeCWDHChain appends the CWDH chain to w, returning the absolute body
// offset of the first link (for FINF.cwdhOffset). Each link's nextCwdhOffset
// is back-patched once the following link's position is known.
func encodeCWDHChain(w *bctk.Writer, chain []CWDH) (uint32, error) {
	if len(chain) == 0 {
		return 0, ErrEmptyCWDHChain
	}

	ce := bctk.NewChainEncoder(w)

	for _, link := range chain {
		headerStart := w.Pos()
		sizePos, _ := ce.StartLink("CWDH")

		w.WriteU16(link.StartIndex)
		w.WriteU16(link.EndIndex - 1) // quirk: store decremented
		ce.SetNextOffsetPos(w.Pos())
		w.WriteU32(0) // patched by the following link's StartLink, or left 0

		for _, rec := range link.Records {
			w.WriteI8(rec.Left)
			w.WriteU8(rec.GlyphWidth)
			w.WriteU8(rec.CharWidth)
		}

		ce.FinishLink(headerStart, sizePos)
	}

	return ce.FirstBodyOffset(), nil
}
