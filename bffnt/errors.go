package bffnt

import "errors"

// BFFNT decode/encode errors. Use errors.Is to check.
var (
	// ErrNoSheets is returned when TGLP declares zero sheets.
	ErrNoSheets = errors.New("bffnt: no sheets")
	// ErrEmptyCWDHChain is returned when encoding a Font with no CWDH links.
	ErrEmptyCWDHChain = errors.New("bffnt: no CWDH entries")
	// ErrEmptyCMAPChain is returned when encoding a Font with no CMAP links.
	ErrEmptyCMAPChain = errors.New("bffnt: no CMAP entries")
)
