// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build lammpdebug

package lammp

// debugAssert and boundsCheck are compiled in only under the
// lammpdebug build tag (spec.md §7 kinds 2 and 4 are "debug-only").

func debugAssert(cond bool, format string, args ...any) {
	if !cond {
		raise(KindDebugAssert, format, args...)
	}
}

func boundsCheck(cond bool, format string, args ...any) {
	if !cond {
		raise(KindBounds, format, args...)
	}
}

const debugBuild = true
