package msbt

// labelHashMultiplier seeds LBL1's bucket-assignment hash on encode. Decode
// never recomputes it — it simply walks the buckets as stored.
const labelHashMultiplier uint32 = 0x492

// labelHash computes the bucket-assignment hash for a label name, using the
// same multiplicative-rolling-hash shape as SARC's filename hash but with
// MSBT's own multiplier.
func labelHash(name string) uint32 {
	var result uint32
	for i := 0; i < len(name); i++ {
		result = result*labelHashMultiplier + uint32(name[i])
	}
	return result
}
