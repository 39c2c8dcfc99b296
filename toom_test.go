// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lammp

import (
	"math/rand"
	"testing"
)

func basecaseOracle(a, b []Word) []Word {
	dst := make([]Word, len(a)+len(b))
	if len(a) >= len(b) {
		basecaseMul(dst, a, b)
	} else {
		basecaseMul(dst, b, a)
	}
	return dst
}

func TestToom22MulAgainstBasecase(t *testing.T) {
	r := rand.New(rand.NewSource(20))
	s := defaultArena.Open()
	defer s.Close()
	for i := 0; i < 100; i++ {
		na := 4 + r.Intn(40)
		nb := 4 + r.Intn(40)
		a := randomWords(r, na)
		b := randomWords(r, nb)
		dst := make([]Word, na+nb)
		toom22Mul(s, dst, a, na, b, nb)
		want := basecaseOracle(a, b)
		if !wordsEqual(dst, want) {
			t.Fatalf("toom22Mul(na=%d,nb=%d) mismatch", na, nb)
		}
	}
}

func TestToom32MulAgainstBasecase(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	s := defaultArena.Open()
	defer s.Close()
	for i := 0; i < 100; i++ {
		n := 4 + r.Intn(20)
		na := 3 * n
		nb := 2 * n
		a := randomWords(r, na)
		b := randomWords(r, nb)
		dst := make([]Word, na+nb)
		toom32Mul(s, dst, a, na, b, nb)
		want := basecaseOracle(a, b)
		if !wordsEqual(dst, want) {
			t.Fatalf("toom32Mul(n=%d) mismatch", n)
		}
	}
}

func TestToom33MulAgainstBasecase(t *testing.T) {
	r := rand.New(rand.NewSource(22))
	s := defaultArena.Open()
	defer s.Close()
	for i := 0; i < 100; i++ {
		n := 4 + r.Intn(20)
		na := 3 * n
		nb := 3 * n
		a := randomWords(r, na)
		b := randomWords(r, nb)
		dst := make([]Word, na+nb)
		toom33Mul(s, dst, a, na, b, nb)
		want := basecaseOracle(a, b)
		if !wordsEqual(dst, want) {
			t.Fatalf("toom33Mul(n=%d) mismatch", n)
		}
	}
}

func TestToom42MulAgainstBasecase(t *testing.T) {
	r := rand.New(rand.NewSource(23))
	s := defaultArena.Open()
	defer s.Close()
	for i := 0; i < 100; i++ {
		n := 4 + r.Intn(20)
		na := 4 * n
		nb := 2 * n
		a := randomWords(r, na)
		b := randomWords(r, nb)
		dst := make([]Word, na+nb)
		toom42Mul(s, nil, dst, a, na, b, nb)
		want := basecaseOracle(a, b)
		if !wordsEqual(dst, want) {
			t.Fatalf("toom42Mul(n=%d) mismatch", n)
		}
	}
}

func TestToom42MulHistoryCacheMatchesUncached(t *testing.T) {
	r := rand.New(rand.NewSource(24))
	s := defaultArena.Open()
	defer s.Close()

	n := 12
	na, nb := 4*n, 2*n
	a := randomWords(r, na)
	b := randomWords(r, nb)

	uncached := make([]Word, na+nb)
	toom42Mul(s, nil, uncached, a, na, b, nb)

	hc := NewHistoryCache()
	cachedOnce := make([]Word, na+nb)
	toom42Mul(s, hc, cachedOnce, a, na, b, nb)
	cachedTwice := make([]Word, na+nb)
	toom42Mul(s, hc, cachedTwice, a, na, b, nb)

	if !wordsEqual(uncached, cachedOnce) || !wordsEqual(uncached, cachedTwice) {
		t.Fatalf("HistoryCache-backed toom42Mul diverged from uncached result")
	}
}

// TestMulToom33VsBasecase200Limbs exercises the 200-limb "Toom-33 agrees with
// basecase" scenario by temporarily lowering the dispatcher's
// thresholds so Mul actually selects the Toom-33 path.
func TestMulToom33VsBasecase200Limbs(t *testing.T) {
	origToom := ToomTwoThreshold
	origToom33 := Toom33Threshold
	ToomTwoThreshold = 8
	Toom33Threshold = 16
	defer func() { ToomTwoThreshold, Toom33Threshold = origToom, origToom33 }()

	r := rand.New(rand.NewSource(25))
	a := randomWords(r, 200)
	b := randomWords(r, 200)
	dst := Mul(nil, Nat(a), Nat(b))
	want := Nat(basecaseOracle(a, b)).norm()
	if !wordsEqual([]Word(dst.norm()), []Word(want)) {
		t.Fatalf("Mul (Toom-33 path) disagrees with basecase oracle at 200 limbs")
	}
}
