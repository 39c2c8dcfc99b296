// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lammp

import (
	"math/rand"
	"testing"
)

func TestNatNorm(t *testing.T) {
	z := Nat{1, 2, 0, 0}
	if got := z.norm(); len(got) != 2 {
		t.Fatalf("norm() len = %d, want 2", len(got))
	}
	if got := (Nat{}).norm(); len(got) != 0 {
		t.Fatalf("norm() of empty = %v, want empty", got)
	}
}

func TestNatCmp(t *testing.T) {
	cases := []struct {
		x, y Nat
		want int
	}{
		{Nat{1}, Nat{2}, -1},
		{Nat{2}, Nat{1}, 1},
		{Nat{1, 1}, Nat{1, 1}, 0},
		{Nat{}, Nat{0, 0}, 0},
		{Nat{1}, Nat{1, 1}, -1},
	}
	for _, c := range cases {
		if got := c.x.cmp(c.y); got != c.want {
			t.Errorf("cmp(%v,%v) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestNatAddSubRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		x := randomNat(r, 1+r.Intn(6))
		y := randomNat(r, 1+r.Intn(6))
		sum := Nat(nil).add(x, y)
		back := Nat(nil).sub(sum, y)
		if back.cmp(x) != 0 {
			t.Fatalf("(x+y)-y != x for x=%v y=%v: got %v", x, y, back)
		}
	}
}

func TestNatShlShr(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		x := randomNat(r, 1+r.Intn(4)).norm()
		s := uint(r.Intn(200))
		shifted := Nat(nil).shl(x, s)
		back := Nat(nil).shr(shifted, s)
		if back.cmp(x) != 0 {
			t.Fatalf("shr(shl(x,%d),%d) != x for x=%v: got %v", s, s, x, back)
		}
	}
}

func TestNatBytesRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		x := randomNat(r, 1+r.Intn(6)).norm()
		buf := make([]byte, len(x)*_S)
		off := x.bytes(buf)
		back := Nat(nil).setBytes(buf[off:])
		if back.cmp(x) != 0 {
			t.Fatalf("setBytes(bytes(x)) != x for x=%v: got %v", x, back)
		}
	}
}

func TestNatNormalize(t *testing.T) {
	x := Nat{1}
	shifted, shift := x.Normalize()
	if !shifted.topIsSet() {
		t.Fatalf("Normalize did not set top bit: %v (shift %d)", shifted, shift)
	}
	if Nat(nil).shr(shifted, shift).cmp(x) != 0 {
		t.Fatalf("un-shifting Normalize's result did not recover x")
	}
}

func randomNat(r *rand.Rand, n int) Nat {
	w := make(Nat, n)
	for i := range w {
		w[i] = Word(r.Uint64())
	}
	return w
}
