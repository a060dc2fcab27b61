package bffnt

import (
	"encoding/binary"

	"github.com/go3ds/bctools/bctk"
)

// sheetDataBodyOffset is the fixed absolute offset, in all known files,
// where TGLP sheet pixel data begins.
const sheetDataBodyOffset = 0x2000

// Encode serializes font to its byte representation using order as the
// container's byte order.
func Encode(font *Font, order binary.ByteOrder) ([]byte, error) {
	if len(font.Sheet.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	for _, s := range font.Sheet.Sheets {
		if s.Width != int(font.Sheet.SheetWidth) || s.Height != int(font.Sheet.SheetHeight) {
			return nil, bctk.ErrDimensionMismatch
		}
	}

	w := bctk.NewWriter(order)

	w.WriteMagic(font.Magic)
	w.WriteU16(bctk.BomLittleEndian)
	w.WriteU16(0x14)
	w.WriteU32(font.Version)
	fileSizePos := w.Pos()
	w.WriteU32(0) // file size, patched at the end
	sectionCountPos := w.Pos()
	w.WriteU32(0) // section count, patched at the end

	sectionCount := uint32(0)

	w.WriteMagic("FINF")
	w.WriteU32(0x20)
	w.WriteU8(font.Info.FontType)
	w.WriteU8(font.Info.Height)
	w.WriteU8(font.Info.Width)
	w.WriteU8(font.Info.Ascent)
	w.WriteU16(font.Info.LineFeed)
	w.WriteU16(font.Info.AlterCharIndex)
	w.WriteI8(font.Info.DefaultLeft)
	w.WriteU8(font.Info.DefaultGlyphWidth)
	w.WriteU8(font.Info.DefaultCharWidth)
	w.WriteU8(font.Info.Encoding)
	tglpOffsetPos := w.Pos()
	w.WriteU32(0)
	cwdhOffsetPos := w.Pos()
	w.WriteU32(0)
	cmapOffsetPos := w.Pos()
	w.WriteU32(0)
	sectionCount++

	tglpBodyOffset, err := encodeTGLP(w, font.Sheet)
	if err != nil {
		return nil, err
	}
	w.PatchU32At(tglpOffsetPos, tglpBodyOffset)
	sectionCount++

	cwdhBodyOffset, err := encodeCWDHChain(w, font.Widths)
	if err != nil {
		return nil, err
	}
	w.PatchU32At(cwdhOffsetPos, cwdhBodyOffset)
	sectionCount += uint32(len(font.Widths))

	cmapBodyOffset, err := encodeCMAPChain(w, font.Maps)
	if err != nil {
		return nil, err
	}
	w.PatchU32At(cmapOffsetPos, cmapBodyOffset)
	sectionCount += uint32(len(font.Maps))

	w.PatchU32At(fileSizePos, uint32(w.Pos()))
	w.PatchU32At(sectionCountPos, sectionCount)

	return w.Bytes(), nil
}

// encodeTGLP writes the TGLP header and sheet data, padding up to the fixed
// sheetDataBodyOffset before the first sheet. It returns TGLP's body offset.
func encodeTGLP(w *bctk.Writer, sheet SheetSet) (uint32, error) {
	code, err := TGLPCodeForFormat(sheet.Format)
	if err != nil {
		return 0, err
	}

	w.WriteMagic("TGLP")
	w.WriteU32(0x20)
	bodyOffset := uint32(w.Pos())

	w.WriteU8(sheet.GlyphWidth)
	w.WriteU8(sheet.GlyphHeight)
	w.WriteU8(uint8(len(sheet.Sheets)))
	w.WriteU8(sheet.MaxCharWidth)

	packed, err := swizzleSheets(sheet.Format, sheet.Sheets, int(sheet.SheetWidth), int(sheet.SheetHeight))
	if err != nil {
		return 0, err
	}
	sheetSize := 0
	if len(packed) > 0 {
		sheetSize = len(packed[0])
	}
	w.WriteU32(uint32(sheetSize))
	w.WriteU8(sheet.BaselinePosition)
	w.WriteU8(code)
	w.WriteU16(sheet.Cols)
	w.WriteU16(sheet.Rows)
	w.WriteU16(sheet.SheetWidth)
	w.WriteU16(sheet.SheetHeight)
	w.WriteU32(sheetDataBodyOffset)

	if w.Pos() > sheetDataBodyOffset {
		return 0, bctk.ErrSizeMismatch
	}
	w.WritePad(sheetDataBodyOffset - w.Pos())

	for _, data := range packed {
		w.WriteBytes(data)
	}

	return bodyOffset, nil
}

// swizzleSheets packs each sheet's RGBA8 bitmap into tiled on-wire bytes.
func swizzleSheets(format bctk.Format, sheets []Bitmap, w, h int) ([][]byte, error) {
	paddedW, paddedH := bctk.PaddedDims(w, h)
	blockCompressed := format.IsBlockCompressed()

	var size int
	if blockCompressed {
		// ETC1 family has no packer (decode-only per spec); encode is left
		// unimplemented deliberately, matching HILO8's reserved treatment.
		return nil, bctk.ErrUnsupportedFormat
	}
	size = bctk.DataSize(format, paddedW*paddedH)

	out := make([][]byte, len(sheets))
	for i, bmp := range sheets {
		data := make([]byte, size)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := bctk.TiledIndex(x, y, paddedW)
				if err := bctk.PackPixel(format, bmp.At(x, y), data, idx); err != nil {
					return nil, err
				}
			}
		}
		out[i] = data
	}
	return out, nil
}
