// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Multiplication dispatcher (spec.md §4.C): picks schoolbook, a Toom
// variant, or the SSA path based on the (na, nb) region, chunking the
// larger operand when it is far longer than the smaller one. Grounded
// on original_source/src/lammp/mul.c, generalized from raw
// pointer/length pairs to Go slices with an *Scope threading the
// scratch arena (spec.md §4.B) through every recursive call.

package lammp

// Mul returns z = x*y. Destination storage is allocated by Mul itself
// (unlike the low-level mulInto, which never allocates its
// destination, matching spec.md §3's "APIs take destination, source
// pointers and lengths; they never allocate the destination" at the
// kernel level).
func Mul(z, x, y Nat) Nat {
	nx, ny := len(x), len(y)
	if nx == 0 || ny == 0 {
		return z.make(0)
	}
	a, b := []Word(x), []Word(y)
	if len(a) < len(b) {
		a, b = b, a
	}
	zz := z.make(len(a) + len(b))
	s := defaultArena.Open()
	defer s.Close()
	mulInto(s, zz, a, b)
	return Nat(zz).norm()
}

// Sqr returns z = x*x.
func Sqr(z, x Nat) Nat {
	n := len(x)
	if n == 0 {
		return z.make(0)
	}
	zz := z.make(2 * n)
	s := defaultArena.Open()
	defer s.Close()
	sqrInto(s, zz, x)
	return Nat(zz).norm()
}

// mulInto computes dst = a*b, len(a) = na >= nb = len(b) >= 1,
// len(dst) == na+nb. dst must be disjoint from a and b except where a
// specific backend documents otherwise.
func mulInto(s *Scope, dst, a, b []Word) {
	na, nb := len(a), len(b)
	assert(na >= nb && nb > 0, "mulInto: require na >= nb > 0, got na=%d nb=%d", na, nb)

	switch {
	case na == nb:
		sqrOrMulN(s, dst, a, b)

	case (nb < ToomTwoThreshold || nb < ToomX2Threshold) && !(4*na < 5*nb):
		mulUnbalancedBasecase(s, dst, a, na, b, nb)

	case avg(na, nb) < FFTThreshold || 2*nb < FFTThreshold:
		mulToomRegion(s, dst, a, na, b, nb)

	default:
		mulFFTRegion(s, dst, a, na, b, nb)
	}
}

func avg(a, b int) int { return (a + b) / 2 }

func sqrOrMulN(s *Scope, dst, a, b []Word) {
	if &a[0] == &b[0] {
		sqrInto(s, dst, a)
		return
	}
	n := len(a)
	switch {
	case n < ToomTwoThreshold:
		basecaseMul(dst, a, b)
	case n < Toom33Threshold:
		toom22Mul(s, dst, a, n, b, n)
	case n < SquareFFTThreshold:
		toom33Mul(s, dst, a, n, b, n)
	default:
		ssaMul(s, nil, dst, a, b)
	}
}

func sqrInto(s *Scope, dst, a []Word) {
	n := len(a)
	switch {
	case n < SquareToomThreshold:
		basecaseMul(dst, a, a)
	case n < SquareToom3Threshold:
		sqrToom2(s, dst, a)
	case n < SquareFFTThreshold:
		sqrToom3(s, dst, a)
	default:
		ssaMul(s, nil, dst, a, a)
	}
}

// mulUnbalancedBasecase implements spec.md's schoolbook region,
// chunking a into L1Block-sized pieces when na is much larger than
// nb (original_source/src/lammp/mul.c's PART_SIZE loop).
func mulUnbalancedBasecase(s *Scope, dst, a []Word, na int, b []Word, nb int) {
	part := L1Block
	if na <= part || nb <= 2 {
		basecaseMul(dst, a, b)
		return
	}
	tp := s.arena.Alloc(s, nb)
	basecaseMul(dst[:part+nb], a[:part], b)
	dst, a, na = dst[part:], a[part:], na-part
	copy(tp, dst[:nb])

	for na > part {
		basecaseMul(dst[:part+nb], a[:part], b)
		if addVV(dst[:nb], dst[:nb], tp) != 0 {
			incAt(dst[nb:])
		}
		dst, a, na = dst[part:], a[part:], na-part
		copy(tp, dst[:nb])
	}
	if na >= nb {
		basecaseMul(dst[:na+nb], a[:na], b)
	} else {
		basecaseMul(dst[:na+nb], b, a[:na])
	}
	if addVV(dst[:nb], dst[:nb], tp) != 0 {
		incAt(dst[nb:])
	}
}

// mulToomRegion implements spec.md's Toom-selection row:
// 4na<5nb -> Toom-22/33, 5na<9nb -> Toom-32, else Toom-42, with the
// "chunk a into 2*nb pieces" fallback when a is far longer than b.
func mulToomRegion(s *Scope, dst, a []Word, na int, b []Word, nb int) {
	if na < 3*nb {
		switch {
		case 4*na < 5*nb:
			if nb < Toom33Threshold {
				toom22Mul(s, dst, a, na, b, nb)
			} else {
				toom33Mul(s, dst, a, na, b, nb)
			}
		case 5*na < 9*nb:
			toom32Mul(s, dst, a, na, b, nb)
		default:
			toom42Mul(s, nil, dst, a, na, b, nb)
		}
		return
	}

	// b and nb stay fixed across every chunk below, so its Toom-42
	// evaluation points only need computing once (spec.md §4.I).
	hc := NewHistoryCache()

	ws := s.arena.Alloc(s, nb)
	toom42Mul(s, hc, dst[:3*nb], a[:2*nb], 2*nb, b, nb)
	dst, a, na = dst[2*nb:], a[2*nb:], na-2*nb
	copy(ws, dst[:nb])

	for 2*na >= 5*nb {
		toom42Mul(s, hc, dst[:3*nb], a[:2*nb], 2*nb, b, nb)
		if addVV(dst[:nb], dst[:nb], ws) != 0 {
			incAt(dst[nb:])
		}
		dst, a, na = dst[2*nb:], a[2*nb:], na-2*nb
		copy(ws, dst[:nb])
	}
	if na >= nb {
		mulInto(s, dst[:na+nb], a[:na], b)
	} else {
		mulInto(s, dst[:na+nb], b, a[:na])
	}
	if addVV(dst[:nb], dst[:nb], ws) != 0 {
		incAt(dst[nb:])
	}
}

// mulFFTRegion implements spec.md's SSA-selection row, chunking a
// into 3*nb pieces when extremely unbalanced.
func mulFFTRegion(s *Scope, dst, a []Word, na int, b []Word, nb int) {
	if na < 8*nb {
		ssaMul(s, nil, dst[:na+nb], a[:na], b)
		return
	}
	// b and nb stay fixed across every chunk below, so its SSA block
	// breakdown only needs computing once (spec.md §4.I).
	hc := NewHistoryCache()

	ws := s.arena.Alloc(s, nb)
	ssaMul(s, hc, dst[:4*nb], a[:3*nb], b)
	dst, a, na = dst[3*nb:], a[3*nb:], na-3*nb
	copy(ws, dst[:nb])

	for 2*na >= 7*nb {
		ssaMul(s, hc, dst[:4*nb], a[:3*nb], b)
		if addVV(dst[:nb], dst[:nb], ws) != 0 {
			incAt(dst[nb:])
		}
		dst, a, na = dst[3*nb:], a[3*nb:], na-3*nb
		copy(ws, dst[:nb])
	}
	if na >= nb {
		mulInto(s, dst[:na+nb], a[:na], b)
	} else {
		mulInto(s, dst[:na+nb], b, a[:na])
	}
	if addVV(dst[:nb], dst[:nb], ws) != 0 {
		incAt(dst[nb:])
	}
}

// incAt adds 1 at z, propagating carry; used for the "lmmp_inc" carry
// propagation step in mul.c's chunked-multiply accumulation.
func incAt(z []Word) {
	for i := range z {
		z[i]++
		if z[i] != 0 {
			return
		}
	}
}

// basecaseMul is the schoolbook O(na*nb) kernel: the basecase of spec.md
// §4.C, and the innermost leaf every Toom/SSA recursion bottoms out
// at. dst[0:na+nb) receives the (non-normalized) product; dst must be
// disjoint from a and b.
func basecaseMul(dst, a, b []Word) {
	na := len(a)
	clearWords(dst[:na+len(b)])
	for i, d := range b {
		if d != 0 {
			dst[na+i] += addMulVVW(dst[i:i+na], a, d)
		}
	}
}
