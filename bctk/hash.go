package bctk

// SFATMultiplier is the multiplicative constant used by the SARC filename hash.
const SFATMultiplier uint32 = 0x65

// SFATHash computes the SARC SFAT filename hash: each byte of name is added
// to a running total that is multiplied by SFATMultiplier before the next
// byte is folded in, wrapping at 32 bits. An empty name hashes to 0.
func SFATHash(name string) uint32 {
	var result uint32
	for i := 0; i < len(name); i++ {
		result = uint32(name[i]) + result*SFATMultiplier
	}
	return result
}
