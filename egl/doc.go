// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package egl describes the display platform that widecolor negotiates with.
//
// The package does not bind to a native EGL library. It defines the handle
// types, the attribute constants, and the [Platform] interface that a host
// application implements on top of its own EGL binding (cgo, purego, or a
// test double such as [github.com/gogpu/widecolor/egl/egltest]).
//
// It also provides the extension capability checker used to decide which
// wide-color modes are worth attempting:
//
//	report := p.QueryString(d, egl.Extensions)
//	if egl.HasExtensions(report, egl.PassthroughExtensions...) {
//	    // Display-P3 passthrough is available
//	}
package egl
