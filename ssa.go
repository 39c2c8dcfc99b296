// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// SSA multiplication (spec.md §4.E): the product is computed modulo
// 2^N-1 (Mersenne ring) and modulo 2^N+1 (Fermat ring) for an N just
// over half the result width, and the two residues are combined by the
// Chinese remainder theorem into the exact integer product. Each ring
// multiplication cuts its operands into K = 2^k coefficient slices,
// transforms them with shift-only butterflies over a smaller Fermat
// ring (fermat.go), multiplies pointwise — recursing through the whole
// skeleton again when the pointwise size is itself large — and
// recombines the convolution coefficients at their bit offsets.
//
// Grounded on original_source/src/lammp/mul_fft.c: lmmp_fft_table_ and
// lmmp_fft_best_k_/lmmp_fft_next_size_ (the size table below),
// lmmp_mul_fermat_/lmmp_mul_mersenne_ (the two outer ring products),
// lmmp_mul_fermat_recurse_ (pointwise recursion below
// MUL_FFT_MODF_THRESHOLD), and lmmp_mul_fft_ (the CRT driver). The
// CRT step is restructured relative to the C source — see DESIGN.md.
package lammp

// fftSizeTable maps a result length rn (in Words) to the FFT log-size
// k used for multiplication modulo B^rn+1 / B^rn-1: the k of the last
// entry whose threshold is <= rn applies (spec.md §4.E "choose k from
// a precomputed table keyed by output length"). Ported from
// lmmp_fft_table_, including its closing sentinel; a lookup must never
// reach the sentinel's k.
var fftSizeTable = [...]struct{ n, k int }{
	{0, 6},
	{1597, 7},
	{1655, 6},
	{1917, 7},
	{3447, 8},
	{3565, 7},
	{3831, 8},
	{7661, 9},
	{8145, 8},
	{8685, 9},
	{14289, 10},
	{16289, 9},
	{20433, 10},
	{24481, 9},
	{26577, 10},
	{28593, 11},
	{32545, 10},
	{57249, 11},
	{65313, 10},
	{73633, 11},
	{98081, 12},
	{130625, 11},
	{196385, 12},
	{261697, 11},
	{294689, 12},
	{392769, 13},
	{523265, 12},
	{654913, 11},
	{917281, 13},
	{1047553, 11},
	{1600001, 12},
	{1834561, 14},
	{2095105, 12},
	{3<<21 + 1, 13},
	{3<<23 + 1, 14},
	{3<<25 + 1, 15},
	{3<<27 + 1, 16},
	{3<<29 + 1, 17},
	{3<<31 + 1, 18},
	{3<<33 + 1, 19},
	{3<<35 + 1, 20},
	{3<<37 + 1, 21},
	{3<<39 + 1, 22},
	{3<<41 + 1, 23},
	{3<<43 + 1, 24},
	{3<<45 + 1, 25},
	{3<<47 + 1, 26},
	{3<<49 + 1, 27},
	{3<<51 + 1, 28},
	{int(^uint(0) >> 1), 127}, // sentinel
}

func fftBestK(rn int) int {
	i := 0
	for rn >= fftSizeTable[i+1].n {
		i++
	}
	k := fftSizeTable[i].k
	assert(k != 127, "fftBestK: rn=%d beyond the size table's sentinel", rn)
	return k
}

// fftNextSize returns the smallest aligned length >= rn usable as a
// ring width for fftBestK(rn): a multiple of 2^(k-6), so that rn*_W is
// a multiple of K.
func fftNextSize(rn int) int {
	k := fftBestK(rn) - 6 // log2(_W)
	return ((rn-1)>>k + 1) << k
}

func roundUp(x, m int) int {
	return (x + m - 1) / m * m
}

func isAllOnes(x []Word) bool {
	for _, w := range x {
		if w != ^Word(0) {
			return false
		}
	}
	return len(x) > 0
}

// ssaMul computes dst[0:na+nb) = a*b. hc, if non-nil, memoizes b's
// forward transforms in both rings across calls that reuse the same b
// (spec.md §4.I); pass nil for a one-shot call.
//
// The driver follows lmmp_mul_fft_: pick the half-width N = hn*_W,
// fold a into both rings (b never needs folding: nb <= hn once the
// operands are ordered), run the two ring products, and recombine.
// The recombination solves P = M (mod 2^N-1), P = F (mod 2^N+1)
// directly: P = M + (2^N-1)*t with t = (F-M)*2^(N-1) mod 2^N+1, since
// -2 * 2^(N-1) = 1 in the Fermat ring. P < 2^2N-1 makes the solution
// unique, so no trailing correction step is needed.
func ssaMul(s *Scope, hc *HistoryCache, dst, a, b []Word) {
	if len(a) < len(b) {
		a, b = b, a
	}
	na, nb := len(a), len(b)
	if nb == 0 || Nat(a).IsZero() || Nat(b).IsZero() {
		clearWords(dst[:na+nb])
		return
	}

	hn := fftNextSize((na + nb + 1) / 2)
	assert(na+nb > hn, "ssaMul: result length %d not above ring width %d", na+nb, hn)

	sc := s.arena.Open()
	defer sc.Close()

	// a mod 2^N-1: fold the high part back additively (2^N = 1).
	am := s.arena.Alloc(sc, hn)
	if na > hn {
		c := addUneven(am, a[:hn], a[hn:])
		for c != 0 {
			c = addVW(am, am, c)
		}
		if isAllOnes(am) {
			clearWords(am)
		}
	} else {
		copy(am, a)
	}

	// a mod 2^N+1: fold subtractively (2^N = -1), correcting a borrow
	// by adding the modulus back.
	ap := s.arena.Alloc(sc, hn+1)
	if na > hn {
		if subUneven(ap[:hn], a[:hn], a[hn:]) != 0 {
			ap[hn] = addVW(ap[:hn], ap[:hn], 1)
		}
	} else {
		copy(ap, a)
	}

	bm, bp := b, b
	if na > hn && sameBase(a, b) && na == nb {
		bm, bp = am, ap
	}

	mm := s.arena.Alloc(sc, hn)
	mersenneMulMod(s, hc, mm, hn, am, bm)

	fp := s.arena.Alloc(sc, hn+1)
	fermatMulMod(s, hc, fp, hn, ap, bp)

	// t = (F - M) * 2^(N-1) mod 2^N+1.
	ring := fermatRing{hn}
	me := s.arena.Alloc(sc, hn+1)
	copy(me[:hn], mm)
	d := s.arena.Alloc(sc, hn+1)
	ring.sub(d, fp, me)
	t := s.arena.Alloc(sc, hn+1)
	ring.shift(s, t, d, hn*_W-1)

	// P = M + t*2^N - t, assembled in 2hn+1 words (the t*2^N term can
	// transiently need the extra word before -t brings it back down).
	acc := s.arena.Alloc(sc, 2*hn+1)
	copy(acc[hn:], t)
	addShiftedInto(acc, mm, 0)
	subShiftedFrom(acc, t, 0)
	copy(dst[:na+nb], acc[:na+nb])
}

// fftParams derives every size the ring products share from the ring
// width rn and the Fermat/Mersenne alignment rule (spec.md §4.E: the
// coefficient width is aligned up to a multiple of lcm(64, K) for the
// Fermat ring and lcm(64, K/2) for the Mersenne ring).
func fftParams(rn int, fermat bool) (k, kk, sliceBits, m int) {
	k = fftBestK(rn)
	for k > 1 && rn*_W%(1<<k) != 0 {
		k--
	}
	kk = 1 << k
	sliceBits = rn * _W / kk

	extra := k // headroom for K summed cross terms
	align := kk
	if fermat {
		extra += 2 // and for the negacyclic coefficients' sign window
	} else {
		align = kk / 2
	}
	if align < _W {
		align = _W
	}
	m = roundUp(2*sliceBits+extra, align)
	return
}

// allocCoefs carves K ring elements of l+1 Words each out of one arena
// block.
func allocCoefs(s *Scope, sc *Scope, kk, l int) [][]Word {
	back := s.arena.Alloc(sc, kk*(l+1))
	coef := make([][]Word, kk)
	for i := range coef {
		coef[i] = back[i*(l+1) : (i+1)*(l+1)]
	}
	return coef
}

func makeCoefs(kk, l int) [][]Word {
	back := make([]Word, kk*(l+1))
	coef := make([][]Word, kk)
	for i := range coef {
		coef[i] = back[i*(l+1) : (i+1)*(l+1)]
	}
	return coef
}

// fermatMulMod computes dst[0:rn+1) = a*b mod 2^(rn*_W)+1 for canonical
// residues a, b of at most rn+1 Words. The coefficient slices are
// pre-rotated by i*m/K bits so the cyclic transform computes a
// negacyclic convolution (spec.md §4.E "coefficient extraction"), and
// the inverse rotation is folded into the final per-coefficient
// division by K. dst may overlap a or b: both are fully consumed
// before dst is written.
func fermatMulMod(s *Scope, hc *HistoryCache, dst []Word, rn int, a, b []Word) {
	ring := fermatRing{rn}
	if Nat(a).IsZero() || Nat(b).IsZero() {
		clearWords(dst[:rn+1])
		return
	}
	sc := s.arena.Open()
	defer sc.Close()
	if len(a) == rn+1 && a[rn] == 1 {
		be := s.arena.Alloc(sc, rn+1)
		copy(be, b)
		ring.neg(dst, be)
		return
	}
	if len(b) == rn+1 && b[rn] == 1 {
		ae := s.arena.Alloc(sc, rn+1)
		copy(ae, a)
		ring.neg(dst, ae)
		return
	}
	sqr := sameBase(a, b) && len(a) == len(b)

	k, kk, sliceBits, m := fftParams(rn, true)
	rl := m / _W
	inner := fermatRing{rl}
	theta := m / kk   // pre-rotation step, in bits
	omega := 2 * m / kk // transform twiddle step, in bits

	srcA := a
	if len(srcA) > rn {
		srcA = srcA[:rn] // top word is 0 here; value < 2^N
	}
	ca := allocCoefs(s, sc, kk, rl)
	for i := 0; i < kk; i++ {
		extractSliceBits(ca[i], srcA, i*sliceBits, sliceBits)
		if i > 0 {
			inner.shift(s, ca[i], ca[i], i*theta)
		}
	}
	inner.fftForward(s, ca, omega)

	cb := ca
	if !sqr {
		if hc != nil && hc.fermatHit(b, rn) {
			cb = hc.fermat.coef
		} else {
			srcB := b
			if len(srcB) > rn {
				srcB = srcB[:rn]
			}
			if hc != nil {
				cb = makeCoefs(kk, rl)
			} else {
				cb = allocCoefs(s, sc, kk, rl)
			}
			for i := 0; i < kk; i++ {
				extractSliceBits(cb[i], srcB, i*sliceBits, sliceBits)
				if i > 0 {
					inner.shift(s, cb[i], cb[i], i*theta)
				}
			}
			inner.fftForward(s, cb, omega)
			if hc != nil {
				hc.storeFermat(b, rn, fftBSide{rl: rl, coef: cb})
			}
		}
	}

	for i := 0; i < kk; i++ {
		inner.mul(s, ca[i], ca[i], cb[i])
	}

	inner.fftInverse(s, ca, omega)

	// Undo the rotation and the transform's factor of K, then place
	// each signed coefficient at its bit offset. |v_i| < 2^(m-2), so
	// the sign of the canonical residue is decided by its top bit.
	accPos := s.arena.Alloc(sc, rn+rl+2)
	accNeg := s.arena.Alloc(sc, rn+rl+2)
	for i := 0; i < kk; i++ {
		if e := (k + i*theta) % (2 * m); e != 0 {
			inner.shift(s, ca[i], ca[i], 2*m-e)
		}
		if ca[i][rl] != 0 || ca[i][rl-1]>>(_W-1) != 0 {
			inner.negInPlace(ca[i])
			addShiftedBitsInto(s, accNeg, ca[i], i*sliceBits)
		} else {
			addShiftedBitsInto(s, accPos, ca[i], i*sliceBits)
		}
	}

	pe := s.arena.Alloc(sc, rn+1)
	foldFermat(s, ring, pe, accPos)
	ne := s.arena.Alloc(sc, rn+1)
	foldFermat(s, ring, ne, accNeg)
	ring.sub(dst, pe, ne)
}

// mersenneMulMod computes dst[0:rn) = a*b mod 2^(rn*_W)-1 for residues
// a, b of at most rn Words, each below the modulus. The transform and
// pointwise layers are the same Fermat-ring machinery fermatMulMod
// uses; only the slicing (plain cyclic, no rotation) and the additive
// recombination differ.
func mersenneMulMod(s *Scope, hc *HistoryCache, dst []Word, rn int, a, b []Word) {
	if Nat(a).IsZero() || Nat(b).IsZero() {
		clearWords(dst[:rn])
		return
	}
	sqr := sameBase(a, b) && len(a) == len(b)

	k, kk, sliceBits, m := fftParams(rn, false)
	rl := m / _W
	inner := fermatRing{rl}
	omega := 2 * m / kk

	sc := s.arena.Open()
	defer sc.Close()

	ca := allocCoefs(s, sc, kk, rl)
	for i := 0; i < kk; i++ {
		extractSliceBits(ca[i], a, i*sliceBits, sliceBits)
	}
	inner.fftForward(s, ca, omega)

	cb := ca
	if !sqr {
		if hc != nil && hc.mersenneHit(b, rn) {
			cb = hc.mersenne.coef
		} else {
			if hc != nil {
				cb = makeCoefs(kk, rl)
			} else {
				cb = allocCoefs(s, sc, kk, rl)
			}
			for i := 0; i < kk; i++ {
				extractSliceBits(cb[i], b, i*sliceBits, sliceBits)
			}
			inner.fftForward(s, cb, omega)
			if hc != nil {
				hc.storeMersenne(b, rn, fftBSide{rl: rl, coef: cb})
			}
		}
	}

	for i := 0; i < kk; i++ {
		inner.mul(s, ca[i], ca[i], cb[i])
	}

	inner.fftInverse(s, ca, omega)

	// Cyclic convolution coefficients are nonnegative and below 2^m,
	// so after dividing out K each canonical residue is the exact
	// value; sum them at their offsets and fold once.
	acc := s.arena.Alloc(sc, rn+rl+2)
	for i := 0; i < kk; i++ {
		if e := k % (2 * m); e != 0 {
			inner.shift(s, ca[i], ca[i], 2*m-e)
		}
		addShiftedBitsInto(s, acc, ca[i], i*sliceBits)
	}

	foldMersenne(dst[:rn], acc)
}

// foldMersenne reduces an accumulator of any width to a canonical
// residue of Z/(2^(rn*_W)-1) in dst: every rn-Word chunk folds in
// additively, whatever its offset, since 2^(rn*_W) = 1.
func foldMersenne(dst, v []Word) {
	rn := len(dst)
	copy(dst, v)
	if len(v) < rn {
		clearWords(dst[len(v):])
	}
	for rest := v[min(rn, len(v)):]; len(rest) > 0; {
		chunk := rest[:min(rn, len(rest))]
		c := addUneven(dst, dst, chunk)
		for c != 0 {
			c = addVW(dst, dst, c)
		}
		rest = rest[len(chunk):]
	}
	if isAllOnes(dst) {
		clearWords(dst)
	}
}

// foldFermat reduces an accumulator of any width to a canonical
// element of Z/(2^(rn*_W)+1): v = lo + hi*2^(rn*_W) = lo - hi, with
// an over-wide hi folded recursively first.
func foldFermat(s *Scope, ring fermatRing, z []Word, v []Word) {
	rn := ring.l
	sc := s.arena.Open()
	lo := s.arena.Alloc(sc, rn+1)
	copy(lo, v[:min(rn, len(v))])
	if len(v) <= rn {
		copy(z[:rn+1], lo)
		sc.Close()
		return
	}
	hi := s.arena.Alloc(sc, rn+1)
	if rest := v[rn:]; len(rest) <= rn {
		copy(hi, rest)
	} else {
		foldFermat(s, ring, hi, rest)
	}
	ring.sub(z, lo, hi)
	sc.Close()
}
