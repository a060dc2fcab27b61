package bffnt

import "github.com/go3ds/bctools/bctk"

// tglpFormats maps TGLP's on-wire pixel-format codes to bctk's canonical
// Format tags. BFFNT numbers formats differently from BFLIM; see
// bflim.FormatFromImag for that container's table.
var tglpFormats = map[uint8]bctk.Format{
	0x00: bctk.FormatRGBA8,
	0x01: bctk.FormatRGB8,
	0x02: bctk.FormatRGBA5551,
	0x03: bctk.FormatRGB565,
	0x04: bctk.FormatRGBA4,
	0x05: bctk.FormatLA8,
	0x06: bctk.FormatHILO8,
	0x07: bctk.FormatL8,
	0x08: bctk.FormatA8,
	0x09: bctk.FormatLA4,
	0x0A: bctk.FormatL4,
	0x0B: bctk.FormatA4,
	0x0C: bctk.FormatETC1,
	0x0D: bctk.FormatETC1A4,
}

var tglpCodes = func() map[bctk.Format]uint8 {
	m := make(map[bctk.Format]uint8, len(tglpFormats))
	for code, f := range tglpFormats {
		m[f] = code
	}
	return m
}()

// FormatFromTGLP resolves a TGLP pixel-format code to a canonical Format.
func FormatFromTGLP(code uint8) (bctk.Format, error) {
	f, ok := tglpFormats[code]
	if !ok {
		return 0, bctk.ErrUnknownPixelFormat
	}
	return f, nil
}

// TGLPCodeForFormat resolves a canonical Format to its TGLP wire code.
func TGLPCodeForFormat(f bctk.Format) (uint8, error) {
	code, ok := tglpCodes[f]
	if !ok {
		return 0, bctk.ErrUnknownPixelFormat
	}
	return code, nil
}
