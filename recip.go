// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the Newton-iteration reciprocal of spec.md
// §4.F: given a normalized n-limb divisor d (top bit set), produce
// the n-limb r with r+B^n = floor((B^2n-1)/d).
//
// Two regimes, gated by NewtonThreshold:
//
//   - n <= NewtonThreshold: the basecase closed form, computed exactly
//     by the schoolbook divider
//     (original_source/src/lammp/inv.c's lmmp_inv_basecase_).
//   - n > NewtonThreshold: the precision-doubling Newton lift
//     (lmmp_invappr_newton_): invert the top half of d, measure the
//     signed residual of the scaled half estimate, apply the
//     residual-derived correction, and settle the last unit or two
//     with an exact compare-and-adjust loop against the basecase's own
//     target. The loop stands in for the C source's one-shot signed
//     dec/inc; its iteration count equals the corrected estimate's
//     residual error, which quadratic convergence keeps O(1).
package lammp

// recip computes dst = reciprocal of d (len(d) == n == len(dst), d
// normalized with its top bit set): dst + B^n = floor((B^2n-1)/d)
// exactly, which trivially meets spec.md §4.F's within-1 contract.
//
// Grounded on original_source/src/lammp/inv.c's lmmp_inv_basecase_:
// r = floor((B^2n - 1 - d*B^n) / d), computed without an intermediate
// (2n+1)-word subtraction by observing that B^2n-1 is all-ones in 2n
// words, so B^2n-1-d*B^n is exactly the bitwise complement of d placed
// at word offset n over an all-ones low half.
func recip(s *Scope, dst, d []Word) {
	n := len(d)
	debugAssert(n > 0, "recip: d must be nonempty")
	debugAssert(len(dst) == n, "recip: dst must have len(d) words")
	debugAssert(d[n-1]&(Word(1)<<(_W-1)) != 0, "recip: d must be normalized")

	if n <= NewtonThreshold {
		rem := s.arena.Alloc(s, 2*n+1)
		fillOnes(rem[:n])
		notVV(rem[n:2*n], d)
		rem[2*n] = 0

		q := s.arena.Alloc(s, n+1)
		divBasecase(q, rem, d)

		// The numerator already has d*B^n taken out, so q lies in
		// [1, B^n) since d is normalized and q[n] is 0: q is the
		// reciprocal with spec.md's implicit leading B^n elided.
		copy(dst, q[:n])
		return
	}

	newtonLift(s, dst, d)
}

// newtonLift implements spec.md §4.F's "otherwise" branch, the
// precision-doubling Newton step of lmmp_invappr_newton_: invert the
// top half of d, measure the signed residual of that half-precision
// estimate against B^(n+nh), and add the residual-derived correction
// vh*rem/B^2nh to the scaled estimate. The half reciprocal is within
// a unit of exact, so the quadratic convergence of the iteration
// leaves the corrected estimate within a small constant of
// floor((B^2n-1)/d); a final compare-and-adjust loop (the same
// pattern divMulinv uses) then pins it exactly. The loop's iteration
// count is the estimate's residual error, so it is O(1) here — the
// lift carries the precision, the loop only absorbs the truncation
// slop.
func newtonLift(s *Scope, dst, d []Word) {
	n := len(d)
	nh := (n + 1) / 2
	nl := n - nh
	dh := d[nl:] // top nh limbs of d; shares d's leading bit, already normalized

	rh := s.arena.Alloc(s, nh)
	recip(s, rh, dh) // precision-doubling self-recursion

	vh := s.arena.Alloc(s, nh+1)
	copy(vh, rh)
	vh[nh] = 1 // the implicit leading limb of the half reciprocal

	// Signed residual of the scaled estimate: vh*d = B^(n+nh) - remS
	// with |remS| <= 2*B^n, so remS needs n+1 limbs plus a sign.
	p := s.arena.Alloc(s, n+nh+1)
	orderedMul(s, p, d, vh)

	rem := s.arena.Alloc(s, n+1)
	var remNeg bool
	if p[n+nh] != 0 {
		// vh*d overshot B^(n+nh); the excess is p's low part.
		debugAssert(p[n+nh] == 1, "newtonLift: residual overshoot beyond 2B^n")
		remNeg = true
		copy(rem, p[:n+1])
	} else {
		// B^(n+nh) - p via complement: NOT(p)+1 over n+nh limbs.
		t := s.arena.Alloc(s, n+nh)
		notVV(t, p[:n+nh])
		addVW(t, t, 1)
		copy(rem, t[:n+1])
	}

	// Correction: floor(vh * |remS| / B^2nh), at most a few B^nl.
	dp := s.arena.Alloc(s, n+nh+2)
	orderedMul(s, dp, rem, vh)
	delta := dp[2*nh:]

	// q = vh*B^nl +- delta: the lifted n-limb estimate with its
	// implicit leading limb in q[n].
	q := s.arena.Alloc(s, n+1)
	copy(q[nl:n], rh)
	q[n] = 1
	if remNeg {
		subUneven(q, q, delta)
	} else {
		addUneven(q, q, delta)
	}

	// Drive q (which includes its implicit leading limb) to exactly
	// floor((B^2n-1)/d); its low n limbs are then the same value
	// floor((B^2n-1-d*B^n)/d) the basecase regime divides out directly.
	target := s.arena.Alloc(s, 2*n+1)
	fillOnes(target[:2*n])
	target[2*n] = 0

	trial := s.arena.Alloc(s, 2*n+1)
	orderedMul(s, trial, q, d)

	for cmpVV(trial, target) > 0 {
		subVW(q, q, 1)
		subShiftedFrom(trial, d, 0)
	}
	for {
		next := s.arena.Alloc(s, 2*n+1)
		copy(next, trial)
		addShiftedInto(next, d, 0)
		if cmpVV(next, target) > 0 {
			break
		}
		copy(trial, next)
		addVW(q, q, 1)
	}

	copy(dst, q[:n])
}

// Reciprocal is the exported form of recip: it normalizes d itself and
// returns an n-limb Nat such that z+B^n approximates floor(B^2n/d)
// within 1, n = len(d) after normalization.
func Reciprocal(z, d Nat) Nat {
	d = d.norm()
	assert(!d.IsZero(), "Reciprocal: d must be nonzero")

	shifted, _ := d.Normalize()
	n := len(shifted)
	zz := z.make(n)

	s := defaultArena.Open()
	defer s.Close()
	recip(s, zz, shifted)
	return zz
}
