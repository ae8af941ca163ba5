// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

// Int mirrors EGLint.
type Int = int32

// Display is an opaque platform display handle.
type Display uintptr

// Config is an opaque framebuffer configuration handle.
type Config uintptr

// Context is an opaque rendering context handle.
type Context uintptr

// Surface is an opaque drawing surface handle.
type Surface uintptr

// Sentinel handles. A zero handle never refers to a live platform object.
const (
	NoDisplay Display = 0
	NoContext Context = 0
	NoSurface Surface = 0
)

// Attribute names and values used during negotiation. Values match the
// Khronos EGL headers so a cgo-backed Platform can pass them through as is.
const (
	None Int = 0x3038

	AlphaSize      Int = 0x3021
	BlueSize       Int = 0x3022
	GreenSize      Int = 0x3023
	RedSize        Int = 0x3024
	SurfaceType    Int = 0x3033
	NativeVisualID Int = 0x302E
	RenderableType Int = 0x3040
	Extensions     Int = 0x3055
	Height         Int = 0x3056
	Width          Int = 0x3057

	WindowBit      Int = 0x0004
	OpenGLES3Bit   Int = 0x0040
	ContextVersion Int = 0x3098

	ColorComponentTypeExt      Int = 0x3339
	ColorComponentTypeFixedExt Int = 0x333A
	ColorComponentTypeFloatExt Int = 0x333B

	GLColorspaceKHR                  Int = 0x309D
	GLColorspaceSRGBKHR              Int = 0x3089
	GLColorspaceDisplayP3Ext         Int = 0x3363
	GLColorspaceDisplayP3Passthrough Int = 0x3490
)

// NativeWindow is the platform window a surface is bound to.
type NativeWindow interface {
	// SetBuffersGeometry changes the window buffer format. A width or height
	// of zero keeps the window's native size. A negative result is a failure.
	SetBuffersGeometry(width, height, format Int) Int
}

// Platform is the display system the negotiator drives. Every method is a
// blocking call into the underlying driver.
//
// Implementations wrap the corresponding EGL entry points:
//
//	GetDisplay          eglGetDisplay(EGL_DEFAULT_DISPLAY)
//	Initialize          eglInitialize
//	QueryString         eglQueryString
//	ChooseConfig        eglChooseConfig
//	GetConfigAttrib     eglGetConfigAttrib
//	CreateContext       eglCreateContext
//	CreateWindowSurface eglCreateWindowSurface
//	MakeCurrent         eglMakeCurrent
//	QuerySurface        eglQuerySurface
//	DestroyContext      eglDestroyContext
//	DestroySurface      eglDestroySurface
//	Terminate           eglTerminate
type Platform interface {
	GetDisplay() Display
	Initialize(d Display) (major, minor Int, ok bool)
	QueryString(d Display, name Int) string

	// ChooseConfig returns at most limit configurations matching the
	// None-terminated attribute list.
	ChooseConfig(d Display, attribs []Int, limit int) ([]Config, bool)
	GetConfigAttrib(d Display, c Config, attr Int) (Int, bool)

	CreateContext(d Display, c Config, share Context, attribs []Int) Context
	CreateWindowSurface(d Display, c Config, w NativeWindow, attribs []Int) Surface
	MakeCurrent(d Display, draw, read Surface, ctx Context) bool
	QuerySurface(d Display, s Surface, attr Int) (Int, bool)

	DestroyContext(d Display, ctx Context) bool
	DestroySurface(d Display, s Surface) bool
	Terminate(d Display) bool
}
