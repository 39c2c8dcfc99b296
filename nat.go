// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the representation layer of spec.md §3: a
// multi-precision unsigned integer is a little-endian sequence of
// Words with a caller-visible length, normalized so the top limb is
// nonzero (or the length is zero). Grounded on the teacher's own
// nat.go lineage (make/cmake, norm, add/sub/cmp, bit/shift helpers);
// the constant-time (czero/sel/cnorm) and Montgomery machinery that
// lineage adds for cryptographic use is dropped here since spec.md
// scopes this library to plain variable-time arithmetic with no
// modular-exponentiation or constant-time requirement beyond the
// single-limb multiply primitive.
package lammp

// A Nat is an unsigned multi-precision integer: a little-endian limb
// slice. The value is sum(z[i]*B^i). The zero value (nil or empty
// slice) represents 0. A Nat is canonical when its top limb is
// nonzero or its length is zero (spec.md §3).
type Nat []Word

var (
	natZero = Nat{}
	natOne  = Nat{1}
)

// make returns a Nat of length n, its old contents discarded, reusing
// z's backing array when it has enough capacity.
func (z Nat) make(n int) Nat {
	if n <= cap(z) {
		return z[:n]
	}
	const extra = 4
	return make(Nat, n, n+extra)
}

// norm trims leading (high-order) zero limbs, returning the canonical form.
func (z Nat) norm() Nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

// normalized reports whether z is already in canonical form.
func (z Nat) normalized() bool {
	return len(z) == 0 || z[len(z)-1] != 0
}

// clear zeroes every limb of z in place.
func (z Nat) clear() {
	clearWords(z)
}

func (z Nat) set(x Nat) Nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

func (z Nat) setWord(x Word) Nat {
	if x == 0 {
		return z.make(0)
	}
	z = z.make(1)
	z[0] = x
	return z
}

func (z Nat) setUint64(x uint64) Nat {
	return z.setWord(Word(x))
}

// cmp compares x and y, returning -1, 0, or +1. Operands need not be
// normalized as long as any limbs above the "true" length are zero.
func (x Nat) cmp(y Nat) int {
	m, n := len(x), len(y)
	for m > 0 && x[m-1] == 0 {
		m--
	}
	for n > 0 && y[n-1] == 0 {
		n--
	}
	if m != n {
		if m < n {
			return -1
		}
		return 1
	}
	return cmpVV(x[:m], y[:m])
}

// IsZero reports whether z represents the value 0.
func (z Nat) IsZero() bool {
	for _, w := range z {
		if w != 0 {
			return false
		}
	}
	return true
}

// add sets z = x+y and returns the (possibly reused) result.
func (z Nat) add(x, y Nat) Nat {
	m, n := len(x), len(y)
	if m < n {
		x, y = y, x
		m, n = n, m
	}
	switch {
	case m == 0:
		return z.make(0)
	case n == 0:
		return z.set(x)
	}
	zz := z.make(m + 1)
	c := addVV(zz[:n], x[:n], y)
	if m > n {
		c = addVWc(zz[n:m], x[n:m], c)
	}
	zz[m] = c
	return zz.norm()
}

// sub sets z = x-y (x must be >= y) and returns the result.
func (z Nat) sub(x, y Nat) Nat {
	m, n := len(x), len(y)
	assert(m >= n, "Nat.sub: negative result (len(x)=%d < len(y)=%d)", m, n)
	zz := z.make(m)
	c := subVV(zz[:n], x[:n], y)
	if m > n {
		c = subVWc(zz[n:m], x[n:m], c)
	}
	assert(c == 0, "Nat.sub: underflow, x < y")
	return zz.norm()
}

// cmpGE reports whether x >= y without requiring equal lengths or
// normalization beyond "no nonzero limb above the real length".
func cmpGE(x, y Nat) bool {
	return x.cmp(y) >= 0
}

// shl sets z = x << s.
func (z Nat) shl(x Nat, s uint) Nat {
	m := len(x)
	if m == 0 {
		return z.make(0)
	}
	n := m + int(s/_W)
	zz := z.make(n + 1)
	zz[n] = shlVU(zz[n-m:n], x, s%_W)
	clearWords(zz[:n-m])
	return zz.norm()
}

// shr sets z = x >> s.
func (z Nat) shr(x Nat, s uint) Nat {
	m := len(x)
	n := m - int(s/_W)
	if n <= 0 {
		return z.make(0)
	}
	zz := z.make(n)
	shrVU(zz, x[m-n:], s%_W)
	return zz.norm()
}

// bitLen returns the bit length of z.
func (z Nat) bitLen() int {
	return bitLen(z)
}

// bit returns the i'th bit of z, lsb == bit 0.
func (z Nat) bit(i uint) uint {
	j := i / _W
	if j >= uint(len(z)) {
		return 0
	}
	return uint(z[j] >> (i % _W) & 1)
}

// topIsSet reports whether z's top limb has its high bit set, i.e.
// whether z (taken as an n-limb normalized divisor) satisfies
// spec.md §3's "normalized divisor" precondition.
func (z Nat) topIsSet() bool {
	n := len(z)
	return n > 0 && z[n-1]&(Word(1)<<(_W-1)) != 0
}

// Normalize left-shifts z until its top limb has the high bit set,
// returning the shifted value and the shift amount used. This is the
// caller-side adjustment spec.md §3 requires before using z as a
// divisor; the caller must also shift the dividend by the same amount
// and un-shift the remainder afterward (see Div).
func (z Nat) Normalize() (shifted Nat, shift uint) {
	if len(z) == 0 {
		return z, 0
	}
	s := leadingZeros(z[len(z)-1])
	if s == 0 {
		return z, 0
	}
	return Nat(nil).shl(z, s), s
}

// bytes writes the big-endian encoding of z into buf (which must be
// at least len(z)*_S bytes) and returns the offset of the first
// nonzero byte.
func (z Nat) bytes(buf []byte) int {
	i := len(buf)
	for _, d := range z {
		for j := 0; j < _S; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	return i
}

// setBytes interprets buf as a big-endian unsigned integer.
func (z Nat) setBytes(buf []byte) Nat {
	zz := z.make((len(buf) + _S - 1) / _S)
	k := 0
	var s uint
	var d Word
	for i := len(buf); i > 0; i-- {
		d |= Word(buf[i-1]) << s
		if s += 8; s == _S*8 {
			zz[k] = d
			k++
			s, d = 0, 0
		}
	}
	if k < len(zz) {
		zz[k] = d
	}
	return zz.norm()
}
