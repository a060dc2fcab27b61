/*
Package bflim reads and writes BFLIM single-texture files.

Unlike most containers, the image data precedes its headers:

	[pixel data | FLIM header (0x14) | imag header (0x14)]

Decode seeks to fileSize-0x28 to find the FLIM header, then reads the imag
header that follows it directly, then slices the pixel region from offset 0 to imag.DataSize.
The swizzle tag is round-tripped as metadata only — the geometric rotation
it names is a display-time concern handled by RotateForDisplay, not baked
into the stored pixel buffer.
*/
package bflim

import "github.com/go3ds/bctools/bctk"

// SwizzleTag names the display-time transform a decoded bitmap should
// receive, per spec §4.7. The stored pixel buffer is never itself rotated.
type SwizzleTag uint8

const (
	SwizzleNone      SwizzleTag = 0
	SwizzleRotate90  SwizzleTag = 4
	SwizzleTranspose SwizzleTag = 8
)

// Image is the in-memory model of a decoded or to-be-encoded BFLIM file.
type Image struct {
	Multiplier uint8 // FLIM header's multiplier byte; meaning is opaque, preserved verbatim

	Width, Height int
	Format        bctk.Format
	Swizzle       SwizzleTag

	// Pix is the decoded RGBA8 bitmap, row-major, Width*Height pixels.
	Pix []bctk.Pixel

	// Warnings accumulates non-fatal inconsistencies found during decode
	// (currently: a FLIM fileSize field that disagrees with the physical
	// buffer length). Decode never fails for these; it records and continues.
	Warnings []string
}

// At returns the pixel at (x,y).
func (img *Image) At(x, y int) bctk.Pixel { return img.Pix[y*img.Width+x] }

// Set writes the pixel at (x,y).
func (img *Image) Set(x, y int, p bctk.Pixel) { img.Pix[y*img.Width+x] = p }
