package ledger

import (
	"fmt"
	"math/bits"
)

// fnv128 computes the 128-bit non-cryptographic fingerprint used by the
// default ledger variant: an FNV-1a style mix operated over a 128-bit
// accumulator (the multiplier and XOR operand stay 64-bit and 8-bit
// respectively, so each step sets the high limb to hi*mul plus the carry
// out of the low limb's product, and the XOR touches only the low limb).
//
// Returned as the same lowercase, unpadded hex string a 128-bit integer's
// natural (no leading zeros) hex formatting would produce.
func fnv128(data []byte) string {
	const mul = 0x100000001b3
	var hi, lo uint64 = 0, 0xcbf29ce484222325

	for _, b := range data {
		mulHi, mulLo := bits.Mul64(lo, mul)
		lo = mulLo
		hi = hi*mul + mulHi
		lo ^= uint64(b)
	}

	if hi == 0 {
		return fmt.Sprintf("%x", lo)
	}
	return fmt.Sprintf("%x%016x", hi, lo)
}
