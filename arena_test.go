// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lammp

import "testing"

func TestArenaAllocZeroed(t *testing.T) {
	a := NewArena(64)
	s := a.Open()
	defer s.Close()

	z := a.Alloc(s, 8)
	for i, w := range z {
		if w != 0 {
			t.Fatalf("Alloc did not zero word %d: %d", i, w)
		}
	}
	for i := range z {
		z[i] = Word(i + 1)
	}
}

func TestArenaScopeRewind(t *testing.T) {
	a := NewArena(64)
	s1 := a.Open()
	a.Alloc(s1, 10)
	top := a.top
	s2 := a.Open()
	a.Alloc(s2, 20)
	if a.top == top {
		t.Fatalf("expected top to advance after second Alloc")
	}
	s2.Close()
	if a.top != top {
		t.Fatalf("Close did not rewind top: got %d, want %d", a.top, top)
	}
	s1.Close()
	if a.top != 0 {
		t.Fatalf("Close did not rewind to 0: got %d", a.top)
	}
}

func TestArenaHeapFallback(t *testing.T) {
	a := NewArena(4)
	s := a.Open()
	defer s.Close()

	big := a.Alloc(s, StackFastPathLimit+1)
	if len(big) != StackFastPathLimit+1 {
		t.Fatalf("heap Alloc returned %d words, want %d", len(big), StackFastPathLimit+1)
	}
	for _, w := range big {
		if w != 0 {
			t.Fatalf("heap Alloc did not zero its buffer")
		}
	}
	if a.heapHead == nil {
		t.Fatalf("heap Alloc did not register a heapNode")
	}
}

func TestArenaAllocZeroWords(t *testing.T) {
	a := NewArena(8)
	s := a.Open()
	defer s.Close()
	if z := a.Alloc(s, 0); z != nil {
		t.Fatalf("Alloc(0) = %v, want nil", z)
	}
}
