// Package widecolor negotiates a Display P3 rendering context on an EGL
// display and falls back to sRGB when the platform lacks support.
//
// # Overview
//
// An Engine probes the display's extension report, builds an ordered list
// of candidate modes and attempts each one until a context and window
// surface bind:
//
//	passthrough extensions  P3 passthrough 8, 10, FP16, then sRGB 8
//	Display P3 extensions   P3 8, 10, FP16, then sRGB 8
//	neither                 sRGB 8 only
//
// A candidate fails when the display has no matching configuration, the
// context or surface is rejected, or the native window refuses the
// configuration's format. Failures are recovered locally and only reported
// when every candidate has failed.
//
// # Quick Start
//
//	e := widecolor.NewEngine(platform, window)
//	if err := e.CreateContext(); err != nil {
//	    return err // nothing is bound; do not render
//	}
//	defer e.DestroyContext()
//
//	switch e.ColorSpace() {
//	case widecolor.ColorSpaceP3Passthrough:
//	    // upload pre-encoded content as RGBA8Unorm
//	case widecolor.ColorSpaceP3, widecolor.ColorSpaceSRGB:
//	    // upload as RGBA8UnormSrgb so the sampler decodes it
//	}
//
// # Platform
//
// The display system is reached through egl.Platform. The package never
// calls a driver directly; egl/egltest provides an in-memory platform for
// tests and dry runs.
//
// # Color Conversion
//
// The colorspace package converts 8-bit content between gamuts with the
// same gamma tables and fixed-point matrix arithmetic used to produce the
// reference imagery. RenderingContext.Pipeline returns a pipeline into the
// negotiated gamut.
//
// # Logging
//
// widecolor is silent by default. See SetLogger.
package widecolor
