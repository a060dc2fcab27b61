package bflim

import "errors"

// BFLIM decode/encode errors. Use errors.Is to check.
var (
	// ErrTooSmall is returned when a buffer is too short to hold both footers.
	ErrTooSmall = errors.New("bflim: file too small for FLIM+imag footers")
	// ErrBadConstant is returned when a reserved constant field doesn't match its known value.
	ErrBadConstant = errors.New("bflim: unexpected constant field")
	// ErrUnknownSwizzleTag is returned for a swizzle tag outside {0,4,8}.
	ErrUnknownSwizzleTag = errors.New("bflim: unknown swizzle tag")
)
