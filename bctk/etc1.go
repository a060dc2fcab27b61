package bctk

// etcModifiers holds the per-table-index {small, large} modifier magnitudes
// applied to a sub-block's base color, per spec §4.3.
var etcModifiers = [8][2]int{
	{2, 8}, {5, 17}, {9, 29}, {13, 42},
	{18, 60}, {24, 80}, {33, 106}, {47, 183},
}

// DecodeETC1Block decodes one 4x4-pixel ETC1 (or ETC1A4, when hasAlpha) block.
// Pixels are returned in column-major order: out[px*4+py] for px, py in [0,3],
// matching the block's own per-pixel modifier-selector bit order.
func DecodeETC1Block(data []byte, hasAlpha bool) ([16]Pixel, error) {
	var out [16]Pixel

	need := 8
	if hasAlpha {
		need = 16
	}
	if len(data) < need {
		return out, ErrTruncatedBlock
	}

	var alphaPlane uint64 = ^uint64(0)
	colorOff := 0
	if hasAlpha {
		alphaPlane = leU64(data[0:8])
		colorOff = 8
	}
	word := leU64(data[colorOff : colorOff+8])

	orientation := (word>>32)&1 != 0
	differential := (word>>33)&1 != 0
	table1 := int((word >> 37) & 0x7)
	table2 := int((word >> 34) & 0x7)

	var r1, g1, b1, r2, g2, b2 byte
	if differential {
		r1b := byte((word >> 59) & 0x1F)
		g1b := byte((word >> 51) & 0x1F)
		b1b := byte((word >> 43) & 0x1F)
		dr := signExtend3(byte((word >> 56) & 0x7))
		dg := signExtend3(byte((word >> 48) & 0x7))
		db := signExtend3(byte((word >> 40) & 0x7))
		r1, g1, b1 = expand5(r1b), expand5(g1b), expand5(b1b)
		r2, g2, b2 = expand5(add5(r1b, dr)), expand5(add5(g1b, dg)), expand5(add5(b1b, db))
	} else {
		r1 = expand4(byte((word >> 60) & 0xF))
		g1 = expand4(byte((word >> 52) & 0xF))
		b1 = expand4(byte((word >> 44) & 0xF))
		r2 = expand4(byte((word >> 56) & 0xF))
		g2 = expand4(byte((word >> 48) & 0xF))
		b2 = expand4(byte((word >> 40) & 0xF))
	}

	for px := 0; px < 4; px++ {
		for py := 0; py < 4; py++ {
			i := px*4 + py
			var subBlock2 bool
			if orientation {
				subBlock2 = py >= 2
			} else {
				subBlock2 = px >= 2
			}

			baseR, baseG, baseB := r1, g1, b1
			table := table1
			if subBlock2 {
				baseR, baseG, baseB = r2, g2, b2
				table = table2
			}

			magBit := (word >> uint(i)) & 1
			signBit := (word >> uint(16+i)) & 1
			mod := etcModifiers[table][magBit]
			if signBit != 0 {
				mod = -mod
			}

			out[i] = Pixel{
				R: clampAdd(baseR, mod),
				G: clampAdd(baseG, mod),
				B: clampAdd(baseB, mod),
				A: 255,
			}

			if hasAlpha {
				a := byte((alphaPlane >> uint(i*4)) & 0xF)
				out[i].A = expand4(a)
			}
		}
	}

	return out, nil
}

func leU64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << uint(8*i)
	}
	return v
}

// signExtend3 interprets the low 3 bits of v as a two's-complement signed value.
func signExtend3(v byte) int8 {
	x := int8(v & 0x7)
	if x >= 4 {
		x -= 8
	}
	return x
}

// add5 adds a signed offset to a 5-bit unsigned value without wrapping past its range.
func add5(v byte, d int8) byte {
	r := int(v) + int(d)
	if r < 0 {
		r = 0
	}
	if r > 0x1F {
		r = 0x1F
	}
	return byte(r)
}

// clampAdd adds a signed modifier to a base channel value, saturating to [0,255].
func clampAdd(base byte, mod int) byte {
	v := int(base) + mod
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
