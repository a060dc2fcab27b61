package bflim

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ToNRGBA converts the decoded pixel buffer to an image.NRGBA without
// applying the swizzle tag's rotation.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetNRGBA(x, y, color.NRGBA(img.At(x, y)))
		}
	}
	return out
}

// RotateForDisplay applies img.Swizzle's geometric transform, which is a
// display-time-only concern: the stored pixel buffer is never itself
// rotated, so callers that only need the raw bitmap should use ToNRGBA.
// SwizzleNone returns ToNRGBA unchanged.
func RotateForDisplay(img *Image) *image.NRGBA {
	src := img.ToNRGBA()
	switch img.Swizzle {
	case SwizzleNone:
		return src
	case SwizzleRotate90:
		// Clockwise 90deg: dst(x,y) samples src(y, H-1-x).
		return transform(src, 0, -1, float64(img.Height), 1, 0, 0)
	case SwizzleTranspose:
		// dst(x,y) samples src(y,x).
		return transform(src, 0, 1, 0, 1, 0, 0)
	default:
		return src
	}
}

// transform applies an affine transform via golang.org/x/image/draw,
// producing a destination sized to the source's dimensions swapped (both
// supported transforms here are 90-degree rotations/reflections).
func transform(src *image.NRGBA, a, b, c, d, e, f float64) *image.NRGBA {
	sr := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, sr.Dy(), sr.Dx()))
	t := f64.Aff3{a, b, c, d, e, f}
	draw.NearestNeighbor.Transform(dst, &t, src, sr, nil)
	return dst
}
