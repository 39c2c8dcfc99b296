// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ring arithmetic and transforms for the SSA multiplication path
// (spec.md §4.E): elements of Z/(2^n + 1) with n a multiple of the
// word size, the shift-and-add butterfly (every twiddle factor is a
// power of two in the ring), and the recursive forward/inverse FFT
// both outer rings share. Grounded on
// original_source/src/lammp/mul_fft.c (lmmp_fft_shl_coef_,
// lmmp_fft_bfy_ / lmmp_ifft_bfy_, lmmp_fft_ / lmmp_ifft_), with the
// pseudo-normalized coefficient representation replaced by a fully
// reduced canonical one — see DESIGN.md for why.
package lammp

// A fermatRing describes Z/(2^n + 1) for n = l*_W bits. An element is
// a slice of l+1 Words holding a canonical residue in [0, 2^n]: the
// top Word is 0 or 1, and when it is 1 every lower Word is 0. Keeping
// every element canonical after every operation costs an extra
// compare or fold per step but removes the carry-debt bookkeeping the
// C source threads through its butterflies.
type fermatRing struct {
	l int // words per element, excluding the top Word
}

func (r fermatRing) bits() int { return r.l * _W }

// norm folds z's top Word back into the low part: for any t,
// lo + t*2^n = lo - t (mod 2^n+1). One fold suffices because t < B
// and lo < 2^n. z is canonical afterward.
func (r fermatRing) norm(z []Word) {
	l := r.l
	t := z[l]
	if t == 0 {
		return
	}
	z[l] = 0
	if subVW(z[:l], z[:l], t) != 0 {
		// lo - t went negative; add the modulus back (one +1 at the
		// bottom, since the wrapped value already carries the 2^n).
		z[l] = addVW(z[:l], z[:l], 1)
	}
}

// add sets z = x+y. z may alias x or y.
func (r fermatRing) add(z, x, y []Word) {
	addVV(z[:r.l+1], x[:r.l+1], y[:r.l+1])
	r.norm(z)
}

// sub sets z = x-y. z may alias x or y.
func (r fermatRing) sub(z, x, y []Word) {
	l := r.l
	if cmpVV(x[:l+1], y[:l+1]) >= 0 {
		subVV(z[:l+1], x[:l+1], y[:l+1])
		return
	}
	// x < y: z = (2^n+1) - (y-x), with 1 <= y-x <= 2^n.
	subVV(z[:l+1], y[:l+1], x[:l+1])
	r.negInPlace(z)
}

// neg sets z = -x, i.e. (2^n+1)-x for x != 0 and 0 for x == 0. z may
// alias x.
func (r fermatRing) neg(z, x []Word) {
	l := r.l
	if z2 := z[:l+1]; &z2[0] != &x[0] {
		copy(z2, x[:l+1])
	}
	r.negInPlace(z)
}

func (r fermatRing) negInPlace(z []Word) {
	l := r.l
	if Nat(z[:l+1]).IsZero() {
		return
	}
	if z[l] == 1 {
		// z was 2^n; -2^n = 1.
		z[l] = 0
		z[0] = 1
		return
	}
	// 2^n+1-z = (2^n-1 - z) + 2, and the NOT computes the inner term.
	notVV(z[:l], z[:l])
	z[l] = addVW(z[:l], z[:l], 2)
}

// shift sets z = x * 2^e for 0 <= e < 2n. Since 2^n = -1 in the ring,
// e >= n negates a shift by e-n; below that, the bits pushed past 2^n
// wrap around subtractively. z may alias x (x is consumed before z is
// written).
func (r fermatRing) shift(s *Scope, z, x []Word, e int) {
	l, n := r.l, r.bits()
	e %= 2 * n
	if e < 0 {
		e += 2 * n
	}
	neg := false
	if e >= n {
		e -= n
		neg = true
	}
	if e == 0 {
		if &z[0] != &x[0] {
			copy(z[:l+1], x[:l+1])
		}
		if neg {
			r.negInPlace(z)
		}
		return
	}

	sc := s.arena.Open()
	t := s.arena.Alloc(sc, 2*l+2)
	w, b := e/_W, uint(e%_W)
	copy(t[w:w+l+1], x[:l+1])
	if b != 0 {
		shlVU(t[w:w+l+2], t[w:w+l+2], b)
	}
	// x*2^e = hi*2^n + lo with hi <= 2^(e) <= 2^(n-1); result = lo - hi.
	lo := s.arena.Alloc(sc, l+1)
	copy(lo[:l], t[:l])
	hi := s.arena.Alloc(sc, l+1)
	copy(hi, t[l:2*l+1])
	r.sub(z, lo, hi)
	sc.Close()

	if neg {
		r.negInPlace(z)
	}
}

// mul sets z = x*y in the ring: a full product reduced by one fold
// when the element is small, the whole SSA skeleton reapplied to the
// smaller ring when it is not (spec.md §4.E "recursive pointwise
// multiplication"). z may alias x or y.
func (r fermatRing) mul(s *Scope, z, x, y []Word) {
	l := r.l
	if x[l] == 1 {
		r.neg(z, y)
		return
	}
	if y[l] == 1 {
		r.neg(z, x)
		return
	}
	if l >= FFTModFThreshold {
		fermatMulMod(s, nil, z, l, x[:l+1], y[:l+1])
		return
	}
	sc := s.arena.Open()
	prod := s.arena.Alloc(sc, 2*l+2)
	mulInto(s, prod, x[:l+1], y[:l+1])
	lo := s.arena.Alloc(sc, l+1)
	copy(lo[:l], prod[:l])
	hi := s.arena.Alloc(sc, l+1)
	copy(hi, prod[l:2*l+1])
	r.sub(z, lo, hi)
	sc.Close()
}

// fftForward runs the decimation-in-frequency transform in place:
// coef's length K is a power of two, and 2^e is a primitive K-th root
// of unity in the ring (e = 2n/K at the top call). Each butterfly is
// (a, b) -> (a+b, (a-b)*2^(j*e)), the shift-and-add form of spec.md
// §4.E's (a+b, (a-b)*omega^w). Output is in bit-reversed order, which
// the pointwise products never see and fftInverse undoes.
func (r fermatRing) fftForward(s *Scope, coef [][]Word, e int) {
	K := len(coef)
	if K == 1 {
		return
	}
	half := K / 2
	n2 := 2 * r.bits()
	sc := s.arena.Open()
	t1 := s.arena.Alloc(sc, r.l+1)
	t2 := s.arena.Alloc(sc, r.l+1)
	for j := 0; j < half; j++ {
		r.add(t1, coef[j], coef[j+half])
		r.sub(t2, coef[j], coef[j+half])
		copy(coef[j], t1)
		r.shift(s, coef[j+half], t2, (j*e)%n2)
	}
	sc.Close()
	r.fftForward(s, coef[:half], 2*e)
	r.fftForward(s, coef[half:], 2*e)
}

// fftInverse is fftForward's exact mirror: recurse first, then
// butterfly with the negated twiddles. It consumes bit-reversed input
// and leaves natural order, with every coefficient scaled by K; the
// caller divides by K via a single right-shift per coefficient.
func (r fermatRing) fftInverse(s *Scope, coef [][]Word, e int) {
	K := len(coef)
	if K == 1 {
		return
	}
	half := K / 2
	n2 := 2 * r.bits()
	r.fftInverse(s, coef[:half], 2*e)
	r.fftInverse(s, coef[half:], 2*e)
	sc := s.arena.Open()
	t := s.arena.Alloc(sc, r.l+1)
	t2 := s.arena.Alloc(sc, r.l+1)
	for j := 0; j < half; j++ {
		r.shift(s, t, coef[j+half], n2-(j*e)%n2)
		r.sub(t2, coef[j], t)
		r.add(coef[j], coef[j], t)
		copy(coef[j+half], t2)
	}
	sc.Close()
}

// extractSliceBits fills dst (fully, zero-padding past the slice) with
// the window of `bits` bits of src starting at bit offset bitOff,
// treating bits beyond src's end as zero. Grounded on
// lmmp_fft_extract_coef_, with the out-of-range reads that routine
// forbids handled here instead of at every call site.
func extractSliceBits(dst []Word, src []Word, bitOff, bits int) {
	clearWords(dst)
	w, b := bitOff/_W, uint(bitOff%_W)
	nw := (bits + _W - 1) / _W
	for i := 0; i < nw; i++ {
		j := w + i
		var v Word
		if j < len(src) {
			v = src[j] >> b
		}
		if b != 0 && j+1 < len(src) {
			v |= src[j+1] << (_W - b)
		}
		dst[i] = v
	}
	if rem := uint(bits % _W); rem != 0 {
		dst[nw-1] &= Word(1)<<rem - 1
	}
}

// addShiftedBitsInto adds x into acc at an arbitrary bit offset,
// propagating carry through the rest of acc.
func addShiftedBitsInto(s *Scope, acc, x []Word, bitOff int) {
	w, b := bitOff/_W, uint(bitOff%_W)
	if b == 0 {
		addShiftedInto(acc, x, w)
		return
	}
	sc := s.arena.Open()
	t := s.arena.Alloc(sc, len(x)+1)
	t[len(x)] = shlVU(t[:len(x)], x, b)
	addShiftedInto(acc, t, w)
	sc.Close()
}
