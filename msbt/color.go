package msbt

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
)

// colorEscapeTag1/2 are the two UTF-16 code units ( ) that
// precede an inline color escape's 32-bit value in a TXT2 string. The color
// itself occupies the following two code units, read as a single u32 in
// the container's byte order.
const (
	colorEscapeTag1 uint16 = 0x0003
	colorEscapeTag2 uint16 = 0x0004
	colorEscapeLen  int    = 4 // tag(2) + color(2), in UTF-16 code units
)

// colorBracketPattern matches the exported literal form of a decoded color
// escape: "[#RRGGBBAA]".
var colorBracketPattern = regexp.MustCompile(`\[#([0-9a-fA-F]{8})\]`)

// decodeColorEscapes scans units (a UTF-16 code unit sequence, excluding
// the terminating zero) and replaces every color-escape marker with the
// literal "[#RRGGBBAA]" form, returning plain text otherwise unchanged.
func decodeColorEscapes(units []uint16, order binary.ByteOrder) string {
	var out []rune
	i := 0
	for i < len(units) {
		if units[i] == colorEscapeTag1 && i+1 < len(units) && units[i+1] == colorEscapeTag2 && i+colorEscapeLen <= len(units) {
			var b [4]byte
			order.PutUint16(b[0:2], units[i+2])
			order.PutUint16(b[2:4], units[i+3])
			color := order.Uint32(b[:])
			out = append(out, []rune(fmt.Sprintf("[#%08x]", color))...)
			i += colorEscapeLen
			continue
		}
		out = append(out, rune(units[i]))
		i++
	}
	return string(out)
}

// encodeColorEscapes is decodeColorEscapes's inverse: every "[#RRGGBBAA]"
// literal in s becomes the 4-UTF16-unit color escape sequence.
func encodeColorEscapes(s string, order binary.ByteOrder) []uint16 {
	var out []uint16
	last := 0
	for _, loc := range colorBracketPattern.FindAllStringSubmatchIndex(s, -1) {
		start, end := loc[0], loc[1]
		for _, r := range s[last:start] {
			out = append(out, uint16(r))
		}
		color, _ := strconv.ParseUint(s[loc[2]:loc[3]], 16, 32)
		var b [4]byte
		order.PutUint32(b[:], uint32(color))
		out = append(out, colorEscapeTag1, colorEscapeTag2, order.Uint16(b[0:2]), order.Uint16(b[2:4]))
		last = end
	}
	for _, r := range s[last:] {
		out = append(out, uint16(r))
	}
	return out
}
