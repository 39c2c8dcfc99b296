// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Compile-time toggles (spec.md §6 "Configuration"): thresholds are a
// one-dimensional dependency chain where each threshold assumes all
// smaller algorithms work (spec.md §4.C). Exported as package-level
// vars, following the teacher's own
// "var karatsubaThreshold int = 40 // computed by calibrate.go"
// convention, so an embedder can retune them without a fork.

package lammp

var (
	// ToomTwoThreshold is the minimum nb for which Toom-22/Toom-33
	// (rather than schoolbook) is considered in the roughly-balanced
	// region of spec.md's dispatcher table.
	ToomTwoThreshold = 32

	// ToomX2Threshold is the minimum nb for which Toom-32/Toom-42 is
	// considered in the unbalanced region.
	ToomX2Threshold = 24

	// Toom33Threshold is the minimum nb for switching from Toom-22 to
	// Toom-33 in the balanced region.
	Toom33Threshold = 160

	// FFTThreshold is the minimum average(na,nb) at which the SSA path
	// (component E) is used instead of any Toom variant for operands of
	// unequal length, provided 2*nb also reaches it; equal-length
	// products switch at SquareFFTThreshold instead (see sqrOrMulN).
	FFTThreshold = 1024

	// SquareToomThreshold/SquareToom3Threshold/SquareFFTThreshold
	// mirror the above for a == b (squaring), which spec.md §4.C notes
	// "mirrors multiplication with dedicated basecase/Toom-2/Toom-3
	// variants".
	SquareToomThreshold  = 48
	SquareToom3Threshold = 160
	SquareFFTThreshold   = 1024

	// FFTModFThreshold is the ring width (in Words) above which a
	// pointwise product inside the SSA transform reapplies the whole
	// transform skeleton instead of multiplying directly (spec.md
	// §4.E "recursive pointwise multiplication"; MUL_FFT_MODF_THRESHOLD
	// in original_source/include/lammp/lmmpn.h).
	FFTModFThreshold = 477

	// L1Block bounds the chunk size for basecase multiplication, so
	// that very unbalanced schoolbook multiplies stay cache-resident
	// (spec.md §4.C: "chunked if na > L1_block").
	L1Block = 128

	// NewtonThreshold is the limb count at or below which the reciprocal
	// (component F) is computed directly via division rather than by
	// lifting a half-precision approximation.
	NewtonThreshold = 16

	// DivideThreshold is the minimum nb for which division switches
	// from basecase to the recursive divide-and-conquer regime
	// (spec.md §4.G regime 3, sub-strategy "Recursive divide").
	DivideThreshold = 32

	// MulinvThreshold is the minimum nb for which division switches to
	// the multiplicative-inverse regime (spec.md §4.G regime 3,
	// sub-strategy "Multiplicative-inverse divide").
	MulinvThreshold = 2000

	// MulinvModMThreshold / InvModMThreshold carry the values of
	// DIV_MULINV_MODM_THRESHOLD / INV_MODM_THRESHOLD in
	// original_source/src/lammp/div_mulinv.c and inv.c. No code reads
	// them: the multiplicative-inverse divider and the Newton lift both
	// form their fixup product with a plain full multiply.
	MulinvModMThreshold = 800
	InvModMThreshold    = 800

	// DefaultStackSize is the size, in Words, of the arena's default
	// stack-backed scratch region (spec.md §4.B).
	DefaultStackSize = 1 << 16
)

// BoundsChecking and AllocCounter stand in for the C design's
// compile-time bounds-check level and allocation counter: both are
// observability toggles rather than algorithmic thresholds.
// AllocCounter is honoured in every build (Arena.Alloc counts while it
// is set). BoundsChecking is not read by any code; bounds checks are
// on exactly in a lammpdebug build (spec.md §7).
var (
	BoundsChecking = false
	AllocCounter   = false
)
