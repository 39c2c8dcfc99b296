// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lammp

import (
	"math/big"
	"math/rand"
	"testing"
)

// fermatModulus returns 2^(l*_W)+1 as a big.Int.
func fermatModulus(l int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(l*_W))
	return m.Add(m, big.NewInt(1))
}

func mersenneModulus(l int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(l*_W))
	return m.Sub(m, big.NewInt(1))
}

func bigFromWords(x []Word) *big.Int {
	return bigFromNat(Nat(x))
}

// randomElement returns a canonical element of Z/(2^(l*_W)+1): usually
// a random l-word value, occasionally the extreme 2^n itself.
func randomElement(r *rand.Rand, l int) []Word {
	z := make([]Word, l+1)
	if r.Intn(16) == 0 {
		z[l] = 1
		return z
	}
	for i := 0; i < l; i++ {
		z[i] = Word(r.Uint64())
	}
	return z
}

func checkElement(t *testing.T, name string, ring fermatRing, got []Word, want *big.Int) {
	t.Helper()
	if got[ring.l] > 1 {
		t.Fatalf("%s: non-canonical top word %d", name, got[ring.l])
	}
	if bigFromWords(got).Cmp(want) != 0 {
		t.Fatalf("%s = %v, want %v", name, bigFromWords(got), want)
	}
}

func TestFermatRingAddSubNeg(t *testing.T) {
	r := rand.New(rand.NewSource(40))
	s := defaultArena.Open()
	defer s.Close()
	for _, l := range []int{1, 2, 3, 7} {
		ring := fermatRing{l}
		mod := fermatModulus(l)
		for i := 0; i < 50; i++ {
			x := randomElement(r, l)
			y := randomElement(r, l)
			bx, by := bigFromWords(x), bigFromWords(y)

			z := make([]Word, l+1)
			ring.add(z, x, y)
			checkElement(t, "add", ring, z, new(big.Int).Mod(new(big.Int).Add(bx, by), mod))

			ring.sub(z, x, y)
			checkElement(t, "sub", ring, z, new(big.Int).Mod(new(big.Int).Sub(bx, by), mod))

			ring.neg(z, x)
			checkElement(t, "neg", ring, z, new(big.Int).Mod(new(big.Int).Neg(bx), mod))
		}
	}
}

func TestFermatRingShift(t *testing.T) {
	r := rand.New(rand.NewSource(41))
	s := defaultArena.Open()
	defer s.Close()
	for _, l := range []int{1, 2, 5} {
		ring := fermatRing{l}
		mod := fermatModulus(l)
		n := l * _W
		for i := 0; i < 80; i++ {
			x := randomElement(r, l)
			e := r.Intn(2 * n)
			bx := bigFromWords(x)
			want := new(big.Int).Lsh(bx, uint(e))
			want.Mod(want, mod)

			z := make([]Word, l+1)
			ring.shift(s, z, x, e)
			checkElement(t, "shift", ring, z, want)

			// In-place form, as the transform's weighting step uses it.
			zz := make([]Word, l+1)
			copy(zz, x)
			ring.shift(s, zz, zz, e)
			checkElement(t, "shift in place", ring, zz, want)
		}
	}
}

func TestFermatRingMul(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := defaultArena.Open()
	defer s.Close()
	for _, l := range []int{1, 2, 4, 9} {
		ring := fermatRing{l}
		mod := fermatModulus(l)
		for i := 0; i < 50; i++ {
			x := randomElement(r, l)
			y := randomElement(r, l)
			want := new(big.Int).Mul(bigFromWords(x), bigFromWords(y))
			want.Mod(want, mod)

			z := make([]Word, l+1)
			ring.mul(s, z, x, y)
			checkElement(t, "mul", ring, z, want)
		}
	}
}

// The forward and inverse transforms compose to multiplication by K;
// dividing each coefficient by K = 2^k must therefore restore the
// original coefficient vector exactly.
func TestFFTRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(43))
	s := defaultArena.Open()
	defer s.Close()
	for _, tc := range []struct{ l, k int }{{2, 2}, {2, 4}, {4, 3}, {1, 6}} {
		ring := fermatRing{tc.l}
		kk := 1 << tc.k
		n2 := 2 * ring.bits()
		if n2%kk != 0 {
			t.Fatalf("bad test case: 2n=%d not divisible by K=%d", n2, kk)
		}
		omega := n2 / kk

		coef := make([][]Word, kk)
		orig := make([][]Word, kk)
		for i := range coef {
			coef[i] = randomElement(r, tc.l)
			orig[i] = make([]Word, tc.l+1)
			copy(orig[i], coef[i])
		}

		ring.fftForward(s, coef, omega)
		ring.fftInverse(s, coef, omega)
		for i := range coef {
			ring.shift(s, coef[i], coef[i], n2-tc.k)
			if cmpVV(coef[i], orig[i]) != 0 {
				t.Fatalf("l=%d k=%d: coefficient %d not restored", tc.l, tc.k, i)
			}
		}
	}
}

func TestExtractSliceBits(t *testing.T) {
	r := rand.New(rand.NewSource(44))
	src := randomWords(r, 6)
	bsrc := bigFromWords(src)
	for i := 0; i < 200; i++ {
		bits := 1 + r.Intn(130)
		off := r.Intn(8 * _W)
		dst := make([]Word, (bits+_W-1)/_W+2)
		extractSliceBits(dst, src, off, bits)

		mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		mask.Sub(mask, big.NewInt(1))
		want := new(big.Int).Rsh(bsrc, uint(off))
		want.And(want, mask)
		if bigFromWords(dst).Cmp(want) != 0 {
			t.Fatalf("extractSliceBits(off=%d,bits=%d) = %v, want %v", off, bits, bigFromWords(dst), want)
		}
	}
}

func TestFermatMulMod(t *testing.T) {
	r := rand.New(rand.NewSource(45))
	s := defaultArena.Open()
	defer s.Close()
	for _, rn := range []int{1, 2, 16, 51, 80} {
		ring := fermatRing{rn}
		mod := fermatModulus(rn)
		for i := 0; i < 10; i++ {
			a := randomElement(r, rn)
			b := randomElement(r, rn)
			want := new(big.Int).Mul(bigFromWords(a), bigFromWords(b))
			want.Mod(want, mod)

			dst := make([]Word, rn+1)
			fermatMulMod(s, nil, dst, rn, a, b)
			checkElement(t, "fermatMulMod", ring, dst, want)
		}
	}
}

func TestMersenneMulMod(t *testing.T) {
	r := rand.New(rand.NewSource(46))
	s := defaultArena.Open()
	defer s.Close()
	for _, rn := range []int{1, 2, 16, 51, 80} {
		mod := mersenneModulus(rn)
		for i := 0; i < 10; i++ {
			a := randomWords(r, rn)
			b := randomWords(r, rn)
			ba := new(big.Int).Mod(bigFromWords(a), mod)
			bb := new(big.Int).Mod(bigFromWords(b), mod)
			want := new(big.Int).Mul(ba, bb)
			want.Mod(want, mod)

			am := natFromBig(ba)
			bm := natFromBig(bb)
			dst := make([]Word, rn)
			mersenneMulMod(s, nil, dst, rn, am, bm)
			if bigFromWords(dst).Cmp(want) != 0 {
				t.Fatalf("mersenneMulMod(rn=%d) = %v, want %v", rn, bigFromWords(dst), want)
			}
		}
	}
}

func TestFermatMulModSquaringPath(t *testing.T) {
	r := rand.New(rand.NewSource(47))
	s := defaultArena.Open()
	defer s.Close()
	rn := 32
	ring := fermatRing{rn}
	mod := fermatModulus(rn)
	for i := 0; i < 20; i++ {
		a := randomElement(r, rn)
		want := new(big.Int).Mul(bigFromWords(a), bigFromWords(a))
		want.Mod(want, mod)
		dst := make([]Word, rn+1)
		fermatMulMod(s, nil, dst, rn, a, a)
		checkElement(t, "fermatMulMod square", ring, dst, want)
	}
}

func TestFFTSizeTable(t *testing.T) {
	for _, rn := range []int{1, 100, 1596, 1597, 1654, 1655, 3446, 3447, 100000} {
		k := fftBestK(rn)
		if k < 6 {
			t.Fatalf("fftBestK(%d) = %d, below log2(_W)", rn, k)
		}
		hn := fftNextSize(rn)
		if hn < rn {
			t.Fatalf("fftNextSize(%d) = %d < input", rn, hn)
		}
		if hn%(1<<(fftBestK(rn)-6)) != 0 {
			t.Fatalf("fftNextSize(%d) = %d not aligned for k=%d", rn, hn, fftBestK(rn))
		}
	}
	// The spot values the C table pins down directly.
	if k := fftBestK(1597); k != 7 {
		t.Fatalf("fftBestK(1597) = %d, want 7", k)
	}
	if k := fftBestK(3447); k != 8 {
		t.Fatalf("fftBestK(3447) = %d, want 8", k)
	}
}
