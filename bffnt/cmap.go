package bffnt

import "github.com/go3ds/bctools/bctk"

// decodeCMAPChain walks the CMAP chain starting at the absolute body offset
// bodyOffset (FINF's cmapOffset), returning one CMAP per link in file order.
func decodeCMAPChain(c *bctk.Cursor, bodyOffset uint32) ([]CMAP, error) {
	var chain []CMAP

	err := bctk.WalkChain(c, bodyOffset, func(tag string) (uint32, error) {
		codeBegin, err := c.ReadU16()
		if err != nil {
			return 0, err
		}
		codeEnd, err := c.ReadU16()
		if err != nil {
			return 0, err
		}
		mappingType, err := c.ReadU16()
		if err != nil {
			return 0, err
		}
		if _, err := c.ReadU16(); err != nil { // unknown
			return 0, err
		}
		nextOffset, err := c.ReadU32()
		if err != nil {
			return 0, err
		}

		m := CMAP{CodeBegin: codeBegin, CodeEnd: codeEnd, Type: MappingType(mappingType)}

		switch m.Type {
		case MappingDirect:
			m.IndexOffset, err = c.ReadU16()
			if err != nil {
				return 0, err
			}

		case MappingTable:
			count := int(codeEnd) - int(codeBegin) + 1
			m.Indices = make([]uint16, count)
			for i := range m.Indices {
				m.Indices[i], err = c.ReadU16()
				if err != nil {
					return 0, err
				}
			}

		case MappingScan:
			entryCount, err := c.ReadU16()
			if err != nil {
				return 0, err
			}
			m.Pairs = make([]CodePair, entryCount)
			for i := range m.Pairs {
				code, err := c.ReadU16()
				if err != nil {
					return 0, err
				}
				index, err := c.ReadU16()
				if err != nil {
					return 0, err
				}
				m.Pairs[i] = CodePair{Code: code, Index: index}
			}

		default:
			return 0, bctk.ErrInvalidMappingType
		}

		chain = append(chain, m)
		return nextOffset, nil
	})
	if err != nil {
		return nil, err
	}

	return chain, nil
}

// encodeCMAPChain appends the CMAP chain to w, returning the absolute body
// offset of the first link (for FINF.cmapOffset).
func encodeCMAPChain(w *bctk.Writer, chain []CMAP) (uint32, error) {
	if len(chain) == 0 {
		return 0, ErrEmptyCMAPChain
	}

	ce := bctk.NewChainEncoder(w)

	for _, m := range chain {
		headerStart := w.Pos()
		sizePos, _ := ce.StartLink("CMAP")

		w.WriteU16(m.CodeBegin)
		w.WriteU16(m.CodeEnd)
		w.WriteU16(uint16(m.Type))
		w.WriteU16(0) // unknown
		ce.SetNextOffsetPos(w.Pos())
		w.WriteU32(0)

		switch m.Type {
		case MappingDirect:
			w.WriteU16(m.IndexOffset)
		case MappingTable:
			for _, idx := range m.Indices {
				w.WriteU16(idx)
			}
		case MappingScan:
			w.WriteU16(uint16(len(m.Pairs)))
			for _, p := range m.Pairs {
				w.WriteU16(p.Code)
				w.WriteU16(p.Index)
			}
		default:
			return 0, bctk.ErrInvalidMappingType
		}

		ce.FinishLink(headerStart, sizePos)
	}

	return ce.FirstBodyOffset(), nil
}
