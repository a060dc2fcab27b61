package bffnt

import "github.com/go3ds/bctools/bctk"

// Decode parses a full BFFNT file from buf.
func Decode(buf []byte) (*Font, error) {
	// The BOM sits at a fixed offset inside the 0x14-byte header; probe it
	// before committing to an endian order for the rest of the cursor.
	if len(buf) < 0x14 {
		return nil, bctk.ErrTruncatedSection
	}
	order, err := bctk.SniffBOM(buf, 4)
	if err != nil {
		return nil, err
	}

	c := bctk.NewCursor(buf, order)

	magic, err := c.ReadMagic()
	if err != nil {
		return nil, err
	}
	if magic != "FFNT" && magic != "FFNU" {
		return nil, bctk.ErrBadMagic
	}
	if _, err := c.ReadU16(); err != nil { // BOM
		return nil, err
	}
	headerSize, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if headerSize != 0x14 {
		return nil, bctk.ErrBadHeaderSize
	}
	version, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != 0x03000000 && version != 0x04000000 {
		return nil, bctk.ErrUnknownVersion
	}
	fileSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(fileSize) != len(buf) {
		return nil, bctk.ErrSizeMismatch
	}
	if _, err := c.ReadU32(); err != nil { // section count
		return nil, err
	}

	font := &Font{Magic: magic, Version: version}

	if _, err := c.ReadMagic(); err != nil { // "FINF"
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // size, always 0x20
		return nil, err
	}

	fontType, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	height, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	width, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	ascent, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	lineFeed, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	alterCharIdx, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	defaultLeft, err := c.ReadI8()
	if err != nil {
		return nil, err
	}
	defaultGlyphWidth, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	defaultCharWidth, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	encoding, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	tglpOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	cwdhOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	cmapOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	font.Info = FontInfo{
		FontType: fontType, Height: height, Width: width, Ascent: ascent,
		LineFeed: lineFeed, AlterCharIndex: alterCharIdx, DefaultLeft: defaultLeft,
		DefaultGlyphWidth: defaultGlyphWidth, DefaultCharWidth: defaultCharWidth,
		Encoding: encoding,
	}

	sheet, err := decodeTGLP(c, tglpOffset)
	if err != nil {
		return nil, err
	}
	font.Sheet = sheet

	widths, err := decodeCWDHChain(c, cwdhOffset)
	if err != nil {
		return nil, err
	}
	font.Widths = widths

	maps, err := decodeCMAPChain(c, cmapOffset)
	if err != nil {
		return nil, err
	}
	font.Maps = maps

	return font, nil
}

// decodeTGLP reads the TGLP section at the given absolute body offset and
// unswizzles each sheet into an RGBA8 bitmap.
func decodeTGLP(c *bctk.Cursor, bodyOffset uint32) (SheetSet, error) {
	var s SheetSet

	if err := c.SeekAbs(int(bodyOffset) - 8); err != nil {
		return s, err
	}
	if _, err := c.ReadMagic(); err != nil { // "TGLP"
		return s, err
	}
	if _, err := c.ReadU32(); err != nil { // size, always 0x20
		return s, err
	}

	glyphWidth, err := c.ReadU8()
	if err != nil {
		return s, err
	}
	glyphHeight, err := c.ReadU8()
	if err != nil {
		return s, err
	}
	sheetCount, err := c.ReadU8()
	if err != nil {
		return s, err
	}
	maxCharWidth, err := c.ReadU8()
	if err != nil {
		return s, err
	}
	sheetSize, err := c.ReadU32()
	if err != nil {
		return s, err
	}
	baselinePosition, err := c.ReadU8()
	if err != nil {
		return s, err
	}
	pixelFormatCode, err := c.ReadU8()
	if err != nil {
		return s, err
	}
	cols, err := c.ReadU16()
	if err != nil {
		return s, err
	}
	rows, err := c.ReadU16()
	if err != nil {
		return s, err
	}
	sheetWidth, err := c.ReadU16()
	if err != nil {
		return s, err
	}
	sheetHeight, err := c.ReadU16()
	if err != nil {
		return s, err
	}
	sheetDataOffset, err := c.ReadU32()
	if err != nil {
		return s, err
	}

	if sheetCount == 0 {
		return s, ErrNoSheets
	}

	format, err := FormatFromTGLP(pixelFormatCode)
	if err != nil {
		return s, err
	}

	s = SheetSet{
		GlyphWidth: glyphWidth, GlyphHeight: glyphHeight, MaxCharWidth: maxCharWidth,
		BaselinePosition: baselinePosition, Format: format, Cols: cols, Rows: rows,
		SheetWidth: sheetWidth, SheetHeight: sheetHeight,
	}

	if err := c.SeekAbs(int(sheetDataOffset)); err != nil {
		return s, err
	}

	s.Sheets = make([]Bitmap, sheetCount)
	for i := range s.Sheets {
		data, err := c.ReadBytes(int(sheetSize))
		if err != nil {
			return s, err
		}
		bmp, err := unswizzleSheet(data, format, int(sheetWidth), int(sheetHeight))
		if err != nil {
			return s, err
		}
		s.Sheets[i] = bmp
	}

	return s, nil
}

// unswizzleSheet decodes one tiled sheet's packed bytes into a linear RGBA8 bitmap.
func unswizzleSheet(data []byte, format bctk.Format, w, h int) (Bitmap, error) {
	paddedW, paddedH := bctk.PaddedDims(w, h)
	bmp := NewBitmap(w, h)

	if format.IsBlockCompressed() {
		hasAlpha := format == bctk.FormatETC1A4
		blockSize := 8
		if hasAlpha {
			blockSize = 16
		}
		blocksWide := paddedW / 4
		blocksHigh := paddedH / 4

		for by := 0; by < blocksHigh; by++ {
			for bx := 0; bx < blocksWide; bx++ {
				blockIdx := bctk.TiledIndex(bx*4, by*4, paddedW) / 16
				off := blockIdx * blockSize
				if off+blockSize > len(data) {
					return bmp, bctk.ErrTruncatedSection
				}
				pixels, err := bctk.DecodeETC1Block(data[off:off+blockSize], hasAlpha)
				if err != nil {
					return bmp, err
				}
				for px := 0; px < 4; px++ {
					for py := 0; py < 4; py++ {
						x, y := bx*4+px, by*4+py
						if x >= w || y >= h {
							continue
						}
						bmp.Set(x, y, pixels[px*4+py])
					}
				}
			}
		}
		return bmp, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := bctk.TiledIndex(x, y, paddedW)
			p, err := bctk.UnpackPixel(format, data, idx)
			if err != nil {
				return bmp, err
			}
			bmp.Set(x, y, p)
		}
	}
	return bmp, nil
}
