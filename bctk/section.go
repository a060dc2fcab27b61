package bctk

// Section is one entry in a magic-tagged section chain: a 4-byte tag, a
// declared size covering the tag+size header plus payload, and the payload
// bytes themselves.
type Section struct {
	Tag     string
	Size    uint32
	Payload []byte
}

// WalkSections reads consecutive sections from c starting at the current
// position: each section begins with a 4-byte magic tag followed by a
// uint32 size (including the 8-byte tag+size header). When padAlign is
// nonzero, each section is followed by padByte filler bytes up to the next
// padAlign-byte boundary, measured from the section's own start (MSBT's
// 0xAB filler, 16-byte aligned, per spec §4.5); padAlign==0 means sections
// sit strictly back-to-back with no inter-section padding. Walking stops
// when the cursor is exhausted or fn returns a non-nil error (io.EOF-like
// sentinels included).
func WalkSections(c *Cursor, padAlign int, padByte byte, fn func(Section) error) error {
	for c.Pos() < c.Len() {
		start := c.Pos()
		tag, err := c.ReadMagic()
		if err != nil {
			return err
		}
		size, err := c.ReadU32()
		if err != nil {
			return err
		}
		if size < 8 {
			return ErrBadHeaderSize
		}
		payloadLen := int(size) - 8
		payload, err := c.ReadBytes(payloadLen)
		if err != nil {
			return ErrTruncatedSection
		}
		if err := fn(Section{Tag: tag, Size: size, Payload: payload}); err != nil {
			return err
		}
		next := start + int(size)
		if padAlign > 0 {
			if rem := (next - start) % padAlign; rem != 0 {
				next += padAlign - rem
			}
		}
		if err := c.SeekAbs(next); err != nil {
			return err
		}
	}
	return nil
}

// WriteSection appends a tag + payload to w as a section, with the size
// field computed as len(payload)+8. When padAlign is nonzero, padByte
// filler is appended after the payload until the section (header included)
// reaches the next padAlign-byte boundary; padAlign==0 writes no padding.
func WriteSection(w *Writer, tag string, payload []byte, padAlign int, padByte byte) {
	start := w.Pos()
	w.WriteMagic(tag)
	w.WriteU32(uint32(len(payload) + 8))
	w.WriteBytes(payload)
	if padAlign > 0 {
		if rem := (w.Pos() - start) % padAlign; rem != 0 {
			w.WritePadByte(padAlign-rem, padByte)
		}
	}
}

// WalkChain follows an offset-chained section list: bodyOffset is the
// absolute file position of the first link's body, the way FINF's
// tglpOffset/cwdhOffset/cmapOffset name it. Each link ends its own fixed
// fields with a trailing nextOffset value pointing at the following link's
// body the same way, or 0 to terminate. This is BFFNT's CWDH/CMAP chaining
// shape (spec §4.5): the absolute position of the next magic is
// nextOffset-8.
//
// WalkChain only handles the seek/magic/size bookkeeping shared by every
// link; fn is responsible for reading the link's own fields (including its
// trailing nextOffset field) and returning that raw on-disk value so the
// walk can continue.
func WalkChain(c *Cursor, bodyOffset uint32, fn func(tag string) (nextOffset uint32, err error)) error {
	offset := bodyOffset
	for offset != 0 {
		if err := c.SeekAbs(int(offset) - 8); err != nil {
			return err
		}
		tag, err := c.ReadMagic()
		if err != nil {
			return err
		}
		if _, err := c.ReadU32(); err != nil { // size, recomputed on encode
			return err
		}
		next, err := fn(tag)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// ChainEncoder accumulates the bookkeeping every BFFNT-style offset-chained
// section (CWDH, CMAP) repeats identically: patching the previous link's
// nextOffset field once the following link's body position is known, and
// patching each link's own size field once its span is known.
type ChainEncoder struct {
	w            *Writer
	nextPatchPos int
	firstOffset  uint32
	started      bool
}

// NewChainEncoder starts a new chain, writing links to w.
func NewChainEncoder(w *Writer) *ChainEncoder {
	return &ChainEncoder{w: w, nextPatchPos: -1}
}

// StartLink writes tag and a placeholder size field, patching the previous
// link's nextOffset field (if any) to this link's body offset. It returns
// the size field's position, for a later FinishLink call, and this link's
// own body offset — the value a chain's first link hands back to its
// owning section's own offset field (FINF.cwdhOffset, FINF.cmapOffset).
func (ce *ChainEncoder) StartLink(tag string) (sizePos int, bodyOffset uint32) {
	w := ce.w
	w.WriteMagic(tag)
	sizePos = w.Pos()
	w.WriteU32(0)
	bodyOffset = uint32(w.Pos())
	if !ce.started {
		ce.firstOffset = bodyOffset
		ce.started = true
	}
	if ce.nextPatchPos >= 0 {
		w.PatchU32At(ce.nextPatchPos, bodyOffset)
	}
	return sizePos, bodyOffset
}

// SetNextOffsetPos records where this link wrote its own nextOffset
// placeholder field (0, meaning "no next link yet"), so the following
// StartLink call can patch it once that link's body offset is known.
func (ce *ChainEncoder) SetNextOffsetPos(pos int) {
	ce.nextPatchPos = pos
}

// FinishLink patches the size field (at sizePos) for the link that began at
// headerStart, covering everything written since.
func (ce *ChainEncoder) FinishLink(headerStart, sizePos int) {
	ce.w.PatchU32At(sizePos, uint32(ce.w.Pos()-headerStart))
}

// FirstBodyOffset returns the first link's body offset. Only meaningful
// after at least one StartLink call.
func (ce *ChainEncoder) FirstBodyOffset() uint32 { return ce.firstOffset }
