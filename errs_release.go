// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !lammpdebug

package lammp

// Release build: debug-only checks compile away entirely (spec.md §7).

func debugAssert(cond bool, format string, args ...any) {}

func boundsCheck(cond bool, format string, args ...any) {}

const debugBuild = false
