package bflim

import (
	"encoding/binary"

	"github.com/go3ds/bctools/bctk"
)

// Encode serializes img to its byte representation using order as the
// container's byte order.
func Encode(img *Image, order binary.ByteOrder) ([]byte, error) {
	code, err := ImagCodeForFormat(img.Format)
	if err != nil {
		return nil, err
	}

	pixelData, err := swizzle(img)
	if err != nil {
		return nil, err
	}

	w := bctk.NewWriter(order)
	w.WriteBytes(pixelData)

	w.WriteMagic("FLIM")
	w.WriteU16(bctk.BomLittleEndian)
	w.WriteU16(flimHeaderSize)
	w.WriteU32(flimConstant1)
	fileSizePos := w.Pos()
	w.WriteU32(0) // patched below
	w.WriteU16(1) // constant2
	w.WriteU8(img.Multiplier)
	w.WriteU8(0) // constant3

	w.WriteMagic("imag")
	w.WriteU32(0x10)
	w.WriteU16(uint16(img.Height))
	w.WriteU16(uint16(img.Width))
	w.WriteU16(imagAlignment)
	w.WriteU8(code)
	w.WriteU8(uint8(img.Swizzle))
	w.WriteU32(uint32(len(pixelData)))

	w.PatchU32At(fileSizePos, uint32(w.Pos()))

	return w.Bytes(), nil
}

// swizzle packs img's RGBA8 bitmap into tiled on-wire bytes.
func swizzle(img *Image) ([]byte, error) {
	if img.Format.IsBlockCompressed() {
		// ETC1 family is decode-only, matching bffnt's sheet encoder.
		return nil, bctk.ErrUnsupportedFormat
	}

	paddedW, paddedH := bctk.PaddedDims(img.Width, img.Height)
	data := make([]byte, bctk.DataSize(img.Format, paddedW*paddedH))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := bctk.TiledIndex(x, y, paddedW)
			if err := bctk.PackPixel(img.Format, img.At(x, y), data, idx); err != nil {
				return nil, err
			}
		}
	}
	return data, nil
}
