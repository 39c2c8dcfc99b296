// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lammp

import (
	"math/big"
	"math/rand"
	"testing"
)

func TestDivWW21(t *testing.T) {
	r := rand.New(rand.NewSource(50))
	for i := 0; i < 500; i++ {
		d1 := Word(r.Uint64()) | Word(1)<<(_W-1) // normalized
		d0 := Word(r.Uint64())
		n2 := Word(r.Uint64()) % d1
		n1 := Word(r.Uint64())
		n0 := Word(r.Uint64())

		q, r1, r0 := divWW21(n2, n1, n0, d1, d0)

		bn := threeLimbsToBig(n2, n1, n0)
		bd := twoLimbsToBig(d1, d0)
		wantQ, wantR := new(big.Int).QuoRem(bn, bd, new(big.Int))

		gotR := twoLimbsToBig(r1, r0)
		if wantQ.Cmp(new(big.Int).SetUint64(uint64(q))) != 0 || wantR.Cmp(gotR) != 0 {
			t.Fatalf("divWW21(%d,%d,%d,%d,%d) = q=%d r=(%d,%d), want q=%v r=%v", n2, n1, n0, d1, d0, q, r1, r0, wantQ, wantR)
		}
	}
}

func threeLimbsToBig(n2, n1, n0 Word) *big.Int {
	b := new(big.Int).SetUint64(uint64(n2))
	b.Lsh(b, _W)
	b.Or(b, new(big.Int).SetUint64(uint64(n1)))
	b.Lsh(b, _W)
	b.Or(b, new(big.Int).SetUint64(uint64(n0)))
	return b
}

func twoLimbsToBig(hi, lo Word) *big.Int {
	b := new(big.Int).SetUint64(uint64(hi))
	b.Lsh(b, _W)
	b.Or(b, new(big.Int).SetUint64(uint64(lo)))
	return b
}

// TestDivPowerOfTwo64Limbs covers the "64-limb power-of-two division"
// scenario: dividing B^64-1 (all ones) by a small power of two must
// match repeated right-shift semantics and a quotient*divisor+rem
// reconstruction against the big.Int oracle.
func TestDivPowerOfTwo64Limbs(t *testing.T) {
	x := make(Nat, 64)
	for i := range x {
		x[i] = ^Word(0)
	}
	y := Nat(nil).setUint64(1 << 20)

	q, rem := Div(nil, nil, x, y)

	bx, by := bigFromNat(x), bigFromNat(y)
	wantQ, wantR := new(big.Int).QuoRem(bx, by, new(big.Int))

	if bigFromNat(q).Cmp(wantQ) != 0 || bigFromNat(rem).Cmp(wantR) != 0 {
		t.Fatalf("Div(B^64-1, 2^20) = q=%v r=%v, want q=%v r=%v", bigFromNat(q), bigFromNat(rem), wantQ, wantR)
	}
}

func TestDivAgainstBigRandom(t *testing.T) {
	r := rand.New(rand.NewSource(51))
	for i := 0; i < 200; i++ {
		bx := randomBig(r, 1+r.Intn(800))
		by := randomBig(r, 1+r.Intn(400))
		if by.Sign() == 0 {
			continue
		}
		x, y := natFromBig(bx), natFromBig(by)
		q, rem := Div(nil, nil, x, y)
		wantQ, wantR := new(big.Int).QuoRem(bx, by, new(big.Int))
		if bigFromNat(q).Cmp(wantQ) != 0 || bigFromNat(rem).Cmp(wantR) != 0 {
			t.Fatalf("Div(%v,%v) = q=%v r=%v, want q=%v r=%v", bx, by, bigFromNat(q), bigFromNat(rem), wantQ, wantR)
		}
	}
}

// TestDivTwoLimbPowerOfTwo is the fixed scenario with a 64-limb
// power-of-two numerator and the 2-limb divisor {0, 2^63}: the
// quotient is 63 limbs with only its top limb set (to 1), remainder 0.
func TestDivTwoLimbPowerOfTwo(t *testing.T) {
	a := make(Nat, 64)
	a[63] = Word(1) << 63
	d := Nat{0, Word(1) << 63}

	q, rem := Div(nil, nil, a, d)
	q = q.norm()
	if len(q) != 63 || q[62] != 1 {
		t.Fatalf("Div(2^4095, 2^127): quotient = %v, want 2^3968", bigFromNat(q))
	}
	for i := 0; i < 62; i++ {
		if q[i] != 0 {
			t.Fatalf("quotient limb %d nonzero", i)
		}
	}
	if !rem.norm().IsZero() {
		t.Fatalf("remainder = %v, want 0", bigFromNat(rem))
	}
}

// TestDivEqualLengths: with na == nb and a normalized divisor (top bit
// set) the quotient is 0 or 1.
func TestDivEqualLengths(t *testing.T) {
	r := rand.New(rand.NewSource(54))
	for i := 0; i < 100; i++ {
		n := 1 + r.Intn(10)
		x := Nat(randomWords(r, n)).norm()
		y := randomNormalized(r, n)
		if y.IsZero() {
			continue
		}
		q, rem := Div(nil, nil, x, y)
		q = q.norm()
		if len(q) > 1 || (len(q) == 1 && q[0] > 1) {
			t.Fatalf("Div of equal lengths gave quotient %v", bigFromNat(q))
		}
		check := Nat(nil).add(Mul(nil, q, y), rem)
		if check.cmp(x) != 0 {
			t.Fatalf("q*y+r != x for equal lengths")
		}
	}
}

func TestDivXLessThanY(t *testing.T) {
	x := Nat(nil).setUint64(3)
	y := Nat(nil).setUint64(100)
	q, rem := Div(nil, nil, x, y)
	if !Nat(q).norm().IsZero() || bigFromNat(rem).Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("Div(3,100) = q=%v r=%v, want q=0 r=3", bigFromNat(q), bigFromNat(rem))
	}
}

// TestDivByZeroAborts installs a panicking AbortFunc so the fatal
// channel of spec.md §7 can be observed from a test: the default
// AbortFunc terminates the process (log.Fatalf), which a recover()
// cannot catch.
func TestDivByZeroAborts(t *testing.T) {
	prev := SetAbortFunc(func(f *Fault) { panic(f) })
	defer SetAbortFunc(prev)

	defer func() {
		if recover() == nil {
			t.Fatalf("Div by zero did not abort")
		}
	}()
	Div(nil, nil, Nat(nil).setUint64(5), Nat{})
}

// TestDivMulinvPath forces the multiplicative-inverse regime by
// lowering MulinvThreshold, checking it against the big.Int oracle.
func TestDivMulinvPath(t *testing.T) {
	orig := MulinvThreshold
	MulinvThreshold = 16
	defer func() { MulinvThreshold = orig }()

	r := rand.New(rand.NewSource(52))
	for i := 0; i < 20; i++ {
		bx := randomBig(r, 3000)
		by := randomBig(r, 1500+r.Intn(500))
		x, y := natFromBig(bx), natFromBig(by)
		q, rem := Div(nil, nil, x, y)
		wantQ, wantR := new(big.Int).QuoRem(bx, by, new(big.Int))
		if bigFromNat(q).Cmp(wantQ) != 0 || bigFromNat(rem).Cmp(wantR) != 0 {
			t.Fatalf("mulinv Div mismatch for bitlens %d/%d", bx.BitLen(), by.BitLen())
		}
	}

	// Very unbalanced operands: the quotient is several times longer
	// than the divisor, so divMulinv must produce it slab by slab.
	for i := 0; i < 10; i++ {
		bx := randomBig(r, 8000)
		by := randomBig(r, 1100+r.Intn(200))
		x, y := natFromBig(bx), natFromBig(by)
		q, rem := Div(nil, nil, x, y)
		wantQ, wantR := new(big.Int).QuoRem(bx, by, new(big.Int))
		if bigFromNat(q).Cmp(wantQ) != 0 || bigFromNat(rem).Cmp(wantR) != 0 {
			t.Fatalf("multi-slab mulinv Div mismatch for bitlens %d/%d", bx.BitLen(), by.BitLen())
		}
	}
}

// TestDivRecursivePath forces the mid-size recursive-divide regime by
// lowering DivideThreshold (while keeping MulinvThreshold high).
func TestDivRecursivePath(t *testing.T) {
	origD := DivideThreshold
	DivideThreshold = 4
	defer func() { DivideThreshold = origD }()

	r := rand.New(rand.NewSource(53))
	for i := 0; i < 50; i++ {
		bx := randomBig(r, 800)
		by := randomBig(r, 200+r.Intn(200))
		x, y := natFromBig(bx), natFromBig(by)
		q, rem := Div(nil, nil, x, y)
		wantQ, wantR := new(big.Int).QuoRem(bx, by, new(big.Int))
		if bigFromNat(q).Cmp(wantQ) != 0 || bigFromNat(rem).Cmp(wantR) != 0 {
			t.Fatalf("recursive Div mismatch for bitlens %d/%d", bx.BitLen(), by.BitLen())
		}
	}
}
