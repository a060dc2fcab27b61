package bflim

import (
	"fmt"

	"github.com/go3ds/bctools/bctk"
)

const (
	flimHeaderSize = 0x14
	imagHeaderSize = 0x14
	footerSize     = flimHeaderSize + imagHeaderSize

	flimConstant1 uint32 = 0x07020000
	imagAlignment uint16 = 0x80
)

// Decode parses a full BFLIM file from buf. The pixel region precedes both
// footers, so the buffer must be addressed from the end backward.
func Decode(buf []byte) (*Image, error) {
	if len(buf) < footerSize {
		return nil, ErrTooSmall
	}

	flimStart := len(buf) - footerSize
	order, err := bctk.SniffBOM(buf, flimStart+4)
	if err != nil {
		return nil, err
	}

	c := bctk.NewCursor(buf, order)
	if err := c.SeekAbs(flimStart); err != nil {
		return nil, err
	}

	magic, err := c.ReadMagic()
	if err != nil {
		return nil, err
	}
	if magic != "FLIM" {
		return nil, bctk.ErrBadMagic
	}
	if _, err := c.ReadU16(); err != nil { // BOM
		return nil, err
	}
	headerSize, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if headerSize != flimHeaderSize {
		return nil, bctk.ErrBadHeaderSize
	}
	constant1, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if constant1 != flimConstant1 {
		return nil, ErrBadConstant
	}
	fileSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadU16(); err != nil { // constant2 = 0x01
		return nil, err
	}
	multiplier, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadU8(); err != nil { // constant3 = 0x00
		return nil, err
	}

	var warnings []string
	if int(fileSize) != len(buf) {
		warnings = append(warnings, fmt.Sprintf("bflim: declared file size %d does not match physical length %d", fileSize, len(buf)))
	}

	magic, err = c.ReadMagic()
	if err != nil {
		return nil, err
	}
	if magic != "imag" {
		return nil, bctk.ErrBadMagic
	}
	if _, err := c.ReadU32(); err != nil { // parseSize = 0x10
		return nil, err
	}
	height, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	width, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadU16(); err != nil { // alignment = 0x80
		return nil, err
	}
	formatCode, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	swizzleCode, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	dataSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	format, err := FormatFromImag(formatCode)
	if err != nil {
		return nil, err
	}
	swizzle := SwizzleTag(swizzleCode)
	if swizzle != SwizzleNone && swizzle != SwizzleRotate90 && swizzle != SwizzleTranspose {
		return nil, ErrUnknownSwizzleTag
	}

	if int(dataSize) > flimStart {
		return nil, bctk.ErrTruncatedSection
	}
	pixelData := buf[:dataSize]

	bmp, err := unswizzle(pixelData, format, int(width), int(height))
	if err != nil {
		return nil, err
	}

	return &Image{
		Multiplier: multiplier,
		Width:      int(width), Height: int(height),
		Format: format, Swizzle: swizzle,
		Pix:      bmp,
		Warnings: warnings,
	}, nil
}

// unswizzle decodes a tiled (or ETC1/ETC1A4 block-compressed) pixel region
// into a linear RGBA8 bitmap, identically to bffnt's sheet unswizzle.
func unswizzle(data []byte, format bctk.Format, w, h int) ([]bctk.Pixel, error) {
	paddedW, paddedH := bctk.PaddedDims(w, h)
	pix := make([]bctk.Pixel, w*h)

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
					return nil, bctk.ErrTruncatedSection
				}
				pixels, err := bctk.DecodeETC1Block(data[off:off+blockSize], hasAlpha)
				if err != nil {
					return nil, err
				}
				for px := 0; px < 4; px++ {
					for py := 0; py < 4; py++ {
						x, y := bx*4+px, by*4+py
						if x >= w || y >= h {
							continue
						}
						pix[y*w+x] = pixels[px*4+py]
					}
				}
			}
		}
		return pix, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := bctk.TiledIndex(x, y, paddedW)
			p, err := bctk.UnpackPixel(format, data, idx)
			if err != nil {
				return nil, err
			}
			pix[y*w+x] = p
		}
	}
	return pix, nil
}
