package bflim

import "github.com/go3ds/bctools/bctk"

// imagFormats maps imag's on-wire pixel-format codes to bctk's canonical
// Format tags. BFLIM numbers formats differently from BFFNT's TGLP; see
// bffnt.FormatFromTGLP for that container's table.
var imagFormats = map[uint8]bctk.Format{
	0x00: bctk.FormatL8,
	0x01: bctk.FormatA8,
	0x02: bctk.FormatLA4,
	0x03: bctk.FormatLA8,
	0x04: bctk.FormatHILO8,
	0x05: bctk.FormatRGB565,
	0x06: bctk.FormatRGB8,
	0x07: bctk.FormatRGBA5551,
	0x08: bctk.FormatRGBA4,
	0x09: bctk.FormatRGBA8,
	0x0A: bctk.FormatETC1,
	0x0B: bctk.FormatETC1A4,
	0x0C: bctk.FormatL4,
	0x0D: bctk.FormatA4,
}

var imagCodes = func() map[bctk.Format]uint8 {
	m := make(map[bctk.Format]uint8, len(imagFormats))
	for code, f := range imagFormats {
		m[f] = code
	}
	return m
}()

// FormatFromImag resolves an imag pixel-format code to a canonical Format.
func FormatFromImag(code uint8) (bctk.Format, error) {
	f, ok := imagFormats[code]
	if !ok {
		return 0, bctk.ErrUnknownPixelFormat
	}
	return f, nil
}

// ImagCodeForFormat resolves a canonical Format to its imag wire code.
func ImagCodeForFormat(f bctk.Format) (uint8, error) {
	code, ok := imagCodes[f]
	if !ok {
		return 0, bctk.ErrUnknownPixelFormat
	}
	return code, nil
}
