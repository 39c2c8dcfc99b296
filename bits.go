// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Shift & bit utilities (spec.md §4.H): leading/trailing zeros,
// popcount, limb-bit length, and sub-word bit extraction. Grounded on
// the teacher's math/big bitLen_g/leadingZeros plus
// original_source/src/lammp/extract_bits.c.

package lammp

import stdbits "math/bits"

// limbBitLen returns the number of bits needed to represent w, or 0 if w == 0.
func limbBitLen(w Word) int {
	return stdbits.Len64(w)
}

// leadingZeros returns the number of leading zero bits in w.
func leadingZeros(w Word) uint {
	return uint(stdbits.LeadingZeros64(w))
}

// trailingZerosWord returns the number of trailing zero bits in w.
// Undefined (returns _W) for w == 0, matching stdbits semantics.
func trailingZerosWord(w Word) uint {
	return uint(stdbits.TrailingZeros64(w))
}

func popcountWord(w Word) int {
	return stdbits.OnesCount64(w)
}

// bitLen returns the length of x in bits. x need not be normalized.
func bitLen(x []Word) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return i*_W + limbBitLen(x[i])
		}
	}
	return 0
}

// trailingZeroBits returns the number of consecutive least-significant
// zero bits of x.
func trailingZeroBits(x []Word) uint {
	if len(x) == 0 {
		return 0
	}
	var i uint
	for x[i] == 0 {
		i++
	}
	return i*_W + trailingZerosWord(x[i])
}

// extractBits extracts the top `nbits` significant bits of the
// multi-precision integer x (length n, need not be normalized but its
// top limb must be nonzero), matching
// original_source/src/lammp/extract_bits.c. It returns the extracted
// bits right-aligned in ext, and the bit offset (from the LSB of x) at
// which the extracted window starts.
func extractBits(x []Word, nbits int) (ext Word, offset int) {
	n := len(x)
	if n == 1 {
		lb := limbBitLen(x[0])
		if lb <= nbits {
			return x[0], 0
		}
		return x[0] >> uint(lb-nbits), lb - nbits
	}
	lb := limbBitLen(x[n-1])
	if lb <= nbits {
		ext = x[n-1] << uint(nbits-lb)
		ext |= x[n-2] >> uint(_W-nbits+lb)
		return ext, _W*(n-1) - (nbits - lb)
	}
	return x[n-1] >> uint(lb-nbits), _W*(n-1) + (lb - nbits)
}
