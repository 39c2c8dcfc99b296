// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Toom-Cook multiplication variants (spec.md §4.D): split each operand
// into 2, 3, or 4 roughly-equal limb groups, evaluate the resulting
// polynomials at a handful of points, multiply the point-values
// (recursing back into mulInto), and interpolate to recover the
// product's coefficients.
//
// Grounded on original_source/src/lammp/mul_toom22.c,
// mul_toom42.c, and mul_toom_interp5.c (5-point interpolation with
// the exact divide-by-3 step). The C sources reuse dst's own storage
// for several of the intermediate values (v0/v1/vinf alias dst
// directly, with a save/restore dance around the one word they
// overlap) to avoid extra allocation; this port instead evaluates
// every coefficient into its own arena-allocated, zero-padded buffer
// and assembles the final result with plain shifted adds. That trades
// some of the original's in-place cleverness for code that is easy to
// audit by inspection, which matters here since none of it can be
// compiled or run to catch an off-by-one in the overlap bookkeeping.
package lammp

// widthSlack bounds how much headroom each Toom scratch buffer gets
// beyond the final product length, so that every intermediate sum,
// doubling, or point evaluation has room to carry without reaching
// the end of its buffer.
const widthSlack = 64

func toomWidth(na, nb int) int {
	w := 2 * (na + nb)
	if w < widthSlack {
		w = widthSlack
	}
	return w + widthSlack
}

// addShiftedInto adds c into acc starting at word offset, propagating
// carry past the end of c (but never past the end of acc).
func addShiftedInto(acc, c []Word, offset int) {
	n := len(c)
	end := offset + n
	if end > len(acc) {
		end = len(acc)
		n = end - offset
	}
	if n <= 0 {
		return
	}
	carry := addVV(acc[offset:end], acc[offset:end], c[:n])
	for i := end; carry != 0 && i < len(acc); i++ {
		acc[i], carry = addWW(acc[i], carry, 0)
	}
}

// signedDiff sets z = |x-y| and reports whether x < y.
func signedDiff(z, x, y []Word) (neg bool) {
	if cmpVV(x, y) < 0 {
		subVV(z, y, x)
		return true
	}
	subVV(z, x, y)
	return false
}

// evalAt1 sums every part (spec.md §4.D evaluation at x=1).
func evalAt1(s *Scope, parts [][]Word, w int) []Word {
	buf := s.arena.Alloc(s, w)
	for _, p := range parts {
		addShiftedInto(buf, p, 0)
	}
	return buf
}

// evalNeg1 returns |sum(even-indexed parts) - sum(odd-indexed parts)|
// and whether that difference is negative (evaluation at x=-1).
func evalNeg1(s *Scope, parts [][]Word, w int) (diff []Word, neg bool) {
	even := s.arena.Alloc(s, w)
	odd := s.arena.Alloc(s, w)
	for i, p := range parts {
		if i%2 == 0 {
			addShiftedInto(even, p, 0)
		} else {
			addShiftedInto(odd, p, 0)
		}
	}
	diff = s.arena.Alloc(s, w)
	neg = signedDiff(diff, even, odd)
	return diff, neg
}

// evalAt2 evaluates the polynomial with the given limb-group
// coefficients (low-order first) at x=2 via Horner's method.
func evalAt2(s *Scope, parts [][]Word, w int) []Word {
	buf := s.arena.Alloc(s, w)
	for i := len(parts) - 1; i >= 0; i-- {
		shlVU(buf, buf, 1)
		addShiftedInto(buf, parts[i], 0)
	}
	return buf
}

// divexactBy3 computes dst = src/3 exactly, assuming 3 | src.
// Grounded on original_source/src/lammp/mul_toom_interp5.c's
// lmmp_divexact_by3_, which multiplies by the modular inverse of 3
// mod 2^64 limb by limb rather than performing a real division.
func divexactBy3(dst, src []Word) {
	const inv3 = Word(0xAAAAAAAAAAAAAAAB)
	var c Word
	for i := range src {
		s := src[i]
		l := s - c
		var next Word
		if l > s {
			next = 1
		}
		q := l * inv3
		dst[i] = q
		l2 := q + q
		if l2 < q {
			next++
		}
		l3 := l2 + q
		if l3 < l2 {
			next++
		}
		c = next
	}
}

// interpolate5 recovers the five coefficients of a degree-4 product
// from its values at 0, 1, -1, 2, and infinity (spec.md §4.D / §9,
// grounded on mul_toom_interp5.c's lmmp_toom_interp5_, generalized
// from in-place dst aliasing to independent output buffers).
func interpolate5(s *Scope, v0, v1, vm1 []Word, vm1Neg bool, v2, vinf []Word, w int) (c0, c1, c2, c3, c4 []Word) {
	c0, c4 = v0, vinf

	sum := s.arena.Alloc(s, w)
	diff := s.arena.Alloc(s, w)
	if vm1Neg {
		subVV(sum, v1, vm1)
		addVV(diff, v1, vm1)
	} else {
		addVV(sum, v1, vm1)
		subVV(diff, v1, vm1)
	}
	p := s.arena.Alloc(s, w)
	shrVU(p, sum, 1)
	q := s.arena.Alloc(s, w)
	shrVU(q, diff, 1)

	c2 = s.arena.Alloc(s, w)
	subVV(c2, p, v0)
	subVV(c2, c2, vinf)

	r := s.arena.Alloc(s, w)
	copy(r, v2)
	subVV(r, r, v0)

	t := s.arena.Alloc(s, w)
	copy(t, vinf)
	shlVU(t, t, 4)
	subVV(r, r, t)

	copy(t, q)
	shlVU(t, t, 1)
	subVV(r, r, t)

	copy(t, c2)
	shlVU(t, t, 2)
	subVV(r, r, t)

	halfR := s.arena.Alloc(s, w)
	shrVU(halfR, r, 1)
	c3 = s.arena.Alloc(s, w)
	divexactBy3(c3, halfR)

	c1 = s.arena.Alloc(s, w)
	subVV(c1, q, c3)
	return
}

// interpolate4 recovers the four coefficients of a degree-3 product
// from its values at 0, 1, -1, and infinity (spec.md §4.D's Toom-32
// point set).
func interpolate4(s *Scope, v0, v1, vm1 []Word, vm1Neg bool, vinf []Word, w int) (c0, c1, c2, c3 []Word) {
	c0, c3 = v0, vinf

	sum := s.arena.Alloc(s, w)
	diff := s.arena.Alloc(s, w)
	if vm1Neg {
		// v1-(-vm1) and v1-vm1 == sum/diff of v1,vm1 with roles swapped.
		subVV(sum, v1, vm1)
		addVV(diff, v1, vm1)
	} else {
		// am1 and bm1 already carry the same sign, so v1+vm1 and
		// v1-vm1 is a genuine add/sub pair computed in one pass
		// (spec.md §4.A's add_n_sub_n, named required by SPEC_FULL §9).
		addVVsubVV(sum, diff, v1, vm1)
	}
	c2 = s.arena.Alloc(s, w)
	shrVU(c2, sum, 1)
	subVV(c2, c2, v0)

	c1 = s.arena.Alloc(s, w)
	shrVU(c1, diff, 1)
	subVV(c1, c1, vinf)
	return
}

func orderedMul(s *Scope, dst, x, y []Word) {
	if len(x) >= len(y) {
		mulInto(s, dst, x, y)
	} else {
		mulInto(s, dst, y, x)
	}
}

// toom22Mul implements a 2-by-2 split (Karatsuba), evaluated at 0, 1,
// infinity. na need not equal nb (the longer operand is split); both
// just need to be large enough
// relative to the split point n that neither half is empty. Grounded
// on original_source/src/lammp/mul_toom22.c.
func toom22Mul(s *Scope, dst []Word, a []Word, na int, b []Word, nb int) {
	if na < nb {
		a, na, b, nb = b, nb, a, na
	}
	n := (na + 1) / 2
	if n >= na || n >= nb {
		basecaseMul(dst, a, b)
		return
	}
	sc := s.arena.Open()
	defer sc.Close()
	a0, a1 := a[:n], a[n:na]
	b0, b1 := b[:n], b[n:nb]

	w := toomWidth(na, nb)
	v0 := s.arena.Alloc(s, w)
	orderedMul(s, v0[:len(a0)+len(b0)], a0, b0)

	vinf := s.arena.Alloc(s, w)
	orderedMul(s, vinf[:len(a1)+len(b1)], a1, b1)

	ap1 := evalAt1(s, [][]Word{a0, a1}, w)
	bp1 := evalAt1(s, [][]Word{b0, b1}, w)
	v1 := s.arena.Alloc(s, w)
	orderedMul(s, v1[:2*(n+1)], ap1[:n+1], bp1[:n+1])

	c1 := s.arena.Alloc(s, w)
	subVV(c1, v1, v0)
	subVV(c1, c1, vinf)

	acc := s.arena.Alloc(s, len(dst))
	addShiftedInto(acc, v0, 0)
	addShiftedInto(acc, c1, n)
	addShiftedInto(acc, vinf, 2*n)
	copy(dst, acc[:len(dst)])
}

// sqrToom2 is toom22Mul specialized to a==b, avoiding the (a0+a1) and
// (b0+b1) redundancy (spec.md §4.C's dedicated squaring variant,
// grounded on the same evaluate-at-{0,1,inf} shape as mul_toom22.c).
func sqrToom2(s *Scope, dst []Word, a []Word) {
	na := len(a)
	n := (na + 1) / 2
	if n >= na {
		basecaseMul(dst, a, a)
		return
	}
	sc := s.arena.Open()
	defer sc.Close()
	a0, a1 := a[:n], a[n:na]
	w := toomWidth(na, na)

	v0 := s.arena.Alloc(s, w)
	mulInto(s, v0[:2*len(a0)], a0, a0)

	vinf := s.arena.Alloc(s, w)
	if len(a1) > 0 {
		mulInto(s, vinf[:2*len(a1)], a1, a1)
	}

	ap1 := evalAt1(s, [][]Word{a0, a1}, w)
	v1 := s.arena.Alloc(s, w)
	mulInto(s, v1[:2*(n+1)], ap1[:n+1], ap1[:n+1])

	c1 := s.arena.Alloc(s, w)
	subVV(c1, v1, v0)
	subVV(c1, c1, vinf)

	acc := s.arena.Alloc(s, len(dst))
	addShiftedInto(acc, v0, 0)
	addShiftedInto(acc, c1, n)
	addShiftedInto(acc, vinf, 2*n)
	copy(dst, acc[:len(dst)])
}

// sqrToom3 is toom33Mul specialized to a==b: one evaluation per point
// instead of two, and the v(-1) product is a square, so its sign is
// always positive regardless of which way the a0-a1+a2 difference ran.
func sqrToom3(s *Scope, dst, a []Word) {
	na := len(a)
	n := (na + 2) / 3
	sA := na - 2*n
	if n < 1 || sA < 1 || sA > n {
		sqrToom2(s, dst, a)
		return
	}
	sc := s.arena.Open()
	defer sc.Close()
	a0, a1, a2 := a[:n], a[n:2*n], a[2*n:na]
	parts := [][]Word{a0, a1, a2}

	w := toomWidth(na, na)

	v0 := s.arena.Alloc(s, w)
	mulInto(s, v0[:2*n], a0, a0)

	vinf := s.arena.Alloc(s, w)
	mulInto(s, vinf[:2*len(a2)], a2, a2)

	ap1 := evalAt1(s, parts, w)
	v1 := s.arena.Alloc(s, w)
	mulInto(s, v1[:2*(n+1)], ap1[:n+1], ap1[:n+1])

	am1, _ := evalNeg1(s, parts, w)
	vm1 := s.arena.Alloc(s, w)
	mulInto(s, vm1[:2*(n+1)], am1[:n+1], am1[:n+1])

	ap2 := evalAt2(s, parts, w)
	v2 := s.arena.Alloc(s, w)
	mulInto(s, v2[:2*(n+1)], ap2[:n+1], ap2[:n+1])

	c0, c1, c2, c3, c4 := interpolate5(s, v0, v1, vm1, false, v2, vinf, w)

	acc := s.arena.Alloc(s, len(dst))
	addShiftedInto(acc, c0, 0)
	addShiftedInto(acc, c1, n)
	addShiftedInto(acc, c2, 2*n)
	addShiftedInto(acc, c3, 3*n)
	addShiftedInto(acc, c4, 4*n)
	copy(dst, acc[:len(dst)])
}

// toom32Mul implements a 3-by-2 split, evaluated at 0, 1, -1, infinity
// (spec.md §4.D).
func toom32Mul(s *Scope, dst []Word, a []Word, na int, b []Word, nb int) {
	n := (na + 2) / 3
	sA := na - 2*n
	tB := nb - n
	if n < 1 || sA < 1 || sA > n || tB < 1 || tB > n {
		basecaseMul(dst, a, b)
		return
	}
	sc := s.arena.Open()
	defer sc.Close()
	a0, a1, a2 := a[:n], a[n:2*n], a[2*n:na]
	b0, b1 := b[:n], b[n:nb]

	w := toomWidth(na, nb)

	v0 := s.arena.Alloc(s, w)
	mulInto(s, v0[:2*n], a0, b0)

	vinf := s.arena.Alloc(s, w)
	orderedMul(s, vinf[:len(a2)+len(b1)], a2, b1)

	ap1 := evalAt1(s, [][]Word{a0, a1, a2}, w)
	bp1 := evalAt1(s, [][]Word{b0, b1}, w)
	v1 := s.arena.Alloc(s, w)
	orderedMul(s, v1[:2*(n+1)], ap1[:n+1], bp1[:n+1])

	am1, amNeg := evalNeg1(s, [][]Word{a0, a1, a2}, w)
	bm1, bmNeg := evalNeg1(s, [][]Word{b0, b1}, w)
	vm1Neg := amNeg != bmNeg
	vm1 := s.arena.Alloc(s, w)
	orderedMul(s, vm1[:2*(n+1)], am1[:n+1], bm1[:n+1])

	c0, c1, c2, c3 := interpolate4(s, v0, v1, vm1, vm1Neg, vinf, w)

	acc := s.arena.Alloc(s, len(dst))
	addShiftedInto(acc, c0, 0)
	addShiftedInto(acc, c1, n)
	addShiftedInto(acc, c2, 2*n)
	addShiftedInto(acc, c3, 3*n)
	copy(dst, acc[:len(dst)])
}

// toom33Mul implements a 3-by-3 split, evaluated at 0, 1, -1, 2,
// infinity (spec.md §4.D).
func toom33Mul(s *Scope, dst []Word, a []Word, na int, b []Word, nb int) {
	n := (na + 2) / 3
	sA := na - 2*n
	sB := nb - 2*n
	if n < 1 || sA < 1 || sA > n || sB < 1 || sB > n {
		toom22Mul(s, dst, a, na, b, nb)
		return
	}
	sc := s.arena.Open()
	defer sc.Close()
	a0, a1, a2 := a[:n], a[n:2*n], a[2*n:na]
	b0, b1, b2 := b[:n], b[n:2*n], b[2*n:nb]

	w := toomWidth(na, nb)

	v0 := s.arena.Alloc(s, w)
	mulInto(s, v0[:2*n], a0, b0)

	vinf := s.arena.Alloc(s, w)
	orderedMul(s, vinf[:len(a2)+len(b2)], a2, b2)

	ap1 := evalAt1(s, [][]Word{a0, a1, a2}, w)
	bp1 := evalAt1(s, [][]Word{b0, b1, b2}, w)
	v1 := s.arena.Alloc(s, w)
	mulInto(s, v1[:2*(n+1)], ap1[:n+1], bp1[:n+1])

	am1, amNeg := evalNeg1(s, [][]Word{a0, a1, a2}, w)
	bm1, bmNeg := evalNeg1(s, [][]Word{b0, b1, b2}, w)
	vm1Neg := amNeg != bmNeg
	vm1 := s.arena.Alloc(s, w)
	mulInto(s, vm1[:2*(n+1)], am1[:n+1], bm1[:n+1])

	ap2 := evalAt2(s, [][]Word{a0, a1, a2}, w)
	bp2 := evalAt2(s, [][]Word{b0, b1, b2}, w)
	v2 := s.arena.Alloc(s, w)
	mulInto(s, v2[:2*(n+1)], ap2[:n+1], bp2[:n+1])

	c0, c1, c2, c3, c4 := interpolate5(s, v0, v1, vm1, vm1Neg, v2, vinf, w)

	acc := s.arena.Alloc(s, len(dst))
	addShiftedInto(acc, c0, 0)
	addShiftedInto(acc, c1, n)
	addShiftedInto(acc, c2, 2*n)
	addShiftedInto(acc, c3, 3*n)
	addShiftedInto(acc, c4, 4*n)
	copy(dst, acc[:len(dst)])
}

// toom42Mul implements a 4-by-2 split, evaluated at 0, 1, -1, 2,
// infinity (spec.md §4.D, grounded directly on mul_toom42.c).
// toom42Mul implements a 4-by-2 split. hc, if non-nil, memoizes b's
// evaluation points across calls that reuse the same b (spec.md §4.I);
// pass nil for a one-shot call.
func toom42Mul(s *Scope, hc *HistoryCache, dst []Word, a []Word, na int, b []Word, nb int) {
	var n int
	if na >= 2*nb {
		n = (na + 3) / 4
	} else {
		n = (nb + 1) / 2
	}
	sA := na - 3*n
	tB := nb - n
	if n < 1 || sA < 1 || sA > n || tB < 1 || tB > n {
		toom22Mul(s, dst, a, na, b, nb)
		return
	}
	a0, a1, a2, a3 := a[:n], a[n:2*n], a[2*n:3*n], a[3*n:na]
	b0, b1 := b[:n], b[n:nb]

	w := toomWidth(na, nb)

	// A cached b-side evaluation must outlive this call's scratch
	// scope, so it is taken from the caller's scope.
	var bEval toom42BEval
	if hc != nil {
		bEval = toom42BSide(s, hc, b, n, w)
	}
	sc := s.arena.Open()
	defer sc.Close()
	if hc == nil {
		bEval = toom42BSide(s, nil, b, n, w)
	}

	v0 := s.arena.Alloc(s, w)
	mulInto(s, v0[:2*n], a0, b0)

	vinf := s.arena.Alloc(s, w)
	orderedMul(s, vinf[:len(a3)+len(b1)], a3, b1)

	aParts := [][]Word{a0, a1, a2, a3}
	ap1 := evalAt1(s, aParts, w)
	v1 := s.arena.Alloc(s, w)
	orderedMul(s, v1[:2*(n+1)], ap1[:n+1], bEval.bp1[:n+1])

	am1, amNeg := evalNeg1(s, aParts, w)
	vm1Neg := amNeg != bEval.bmNeg
	vm1 := s.arena.Alloc(s, w)
	orderedMul(s, vm1[:2*(n+1)], am1[:n+1], bEval.bm1[:n+1])

	ap2 := evalAt2(s, aParts, w)
	v2 := s.arena.Alloc(s, w)
	orderedMul(s, v2[:2*(n+1)], ap2[:n+1], bEval.bp2[:n+1])

	c0, c1, c2, c3, c4 := interpolate5(s, v0, v1, vm1, vm1Neg, v2, vinf, w)

	acc := s.arena.Alloc(s, len(dst))
	addShiftedInto(acc, c0, 0)
	addShiftedInto(acc, c1, n)
	addShiftedInto(acc, c2, 2*n)
	addShiftedInto(acc, c3, 3*n)
	addShiftedInto(acc, c4, 4*n)
	copy(dst, acc[:len(dst)])
}
