// Package bflimimg provides image.Decode-compatible entry points for BFLIM.
//
// Unlike the teacher's img subpackage, this package does not call
// image.RegisterFormat: BFLIM's identifying header sits at fileSize-0x28,
// not at offset 0, so there is no fixed-offset magic prefix to sniff —
// image.RegisterFormat can only match bytes at the start of a stream.
// Callers that already know a stream is BFLIM should call Decode/
// DecodeConfig directly instead of going through image.Decode.
package bflimimg

import (
	"image"
	"image/color"
	"io"

	"github.com/go3ds/bctools/bflim"
)

// Decode reads a full BFLIM stream and returns its display-oriented bitmap
// (swizzle tag applied). It implements the signature required by
// image.RegisterFormat, for callers that wire their own sniffing.
func Decode(r io.Reader) (image.Image, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := bflim.Decode(buf)
	if err != nil {
		return nil, err
	}
	return bflim.RotateForDisplay(img), nil
}

// DecodeConfig reads only the dimensions of a BFLIM stream, post-rotation.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	img, err := bflim.Decode(buf)
	if err != nil {
		return image.Config{}, err
	}

	w, h := img.Width, img.Height
	if img.Swizzle == bflim.SwizzleRotate90 || img.Swizzle == bflim.SwizzleTranspose {
		w, h = h, w
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: w, Height: h}, nil
}
