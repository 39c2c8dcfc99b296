// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lammp implements arbitrary-precision unsigned integer
// arithmetic: a little-endian limb representation, the primitive
// carry-propagating kernels built on it, a multi-algorithm
// multiplication dispatcher (schoolbook, Toom-22/32/33/42, and a
// Schönhage–Strassen style FFT over Fermat/Mersenne rings), a
// Newton-iterated multiplicative-inverse reciprocal, and division
// built on top of all three.
//
// Everything here is unsigned and single-threaded. Signed wrappers,
// string conversion, random generation, hashing, and number-theoretic
// helpers (gcd, pow, factorial) are external collaborators that build
// on this package; they are not implemented by it.
package lammp
