// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package egltest provides an in-memory egl.Platform for tests and dry runs.
//
// The fake platform keeps a call log and tracks every live handle so tests
// can assert release order and detect leaks or double frees.
package egltest

import (
	"fmt"
	"strings"

	"github.com/gogpu/widecolor/egl"
)

// ConfigSpec describes a framebuffer configuration offered by the fake display.
type ConfigSpec struct {
	R, G, B, A egl.Int
	Float      bool
	VisualID   egl.Int
}

func (s ConfigSpec) String() string {
	kind := "fixed"
	if s.Float {
		kind = "float"
	}
	return fmt.Sprintf("%d%d%d%d/%s", s.R, s.G, s.B, s.A, kind)
}

// Common configurations.
var (
	RGBA8   = ConfigSpec{R: 8, G: 8, B: 8, A: 8, VisualID: 1}
	RGB10A2 = ConfigSpec{R: 10, G: 10, B: 10, A: 2, VisualID: 0x2b}
	RGBA16F = ConfigSpec{R: 16, G: 16, B: 16, A: 16, Float: true, VisualID: 0x16}
)

// Extension reports for common device generations.
const (
	ReportPassthrough = "EGL_KHR_gl_colorspace EGL_EXT_gl_colorspace_display_p3 " +
		"GL_EXT_gl_colorspace_display_p3_passthrough EGL_EXT_pixel_format_float"
	ReportDisplayP3 = "EGL_KHR_gl_colorspace EGL_EXT_gl_colorspace_display_p3 EGL_KHR_fence_sync"
	ReportLegacy    = "EGL_KHR_fence_sync EGL_ANDROID_presentation_time"
)

// Platform is a scriptable egl.Platform.
//
// The zero value reports no extensions and offers no configurations.
// Platform is not safe for concurrent use.
type Platform struct {
	// Extensions is returned for egl.Extensions queries.
	Extensions string

	// Major and Minor are reported by Initialize.
	Major, Minor egl.Int

	// Configs lists the configurations ChooseConfig can match.
	Configs []ConfigSpec

	// ColorSpaces lists surface color space tags CreateWindowSurface accepts.
	// Nil accepts every tag.
	ColorSpaces []egl.Int

	// Width and Height are reported by QuerySurface.
	Width, Height egl.Int

	// Failure injection.
	NoDisplay        bool
	InitFails        bool
	ChooseFails      bool
	ContextFails     func(ConfigSpec) bool
	MakeCurrentFails bool

	// Calls records every platform call in order, e.g. "DestroyContext".
	Calls []string

	// Errors records misuse such as releasing an unknown handle.
	Errors []string

	next     uintptr
	display  egl.Display
	configs  map[egl.Config]ConfigSpec
	contexts map[egl.Context]bool
	surfaces map[egl.Surface]bool
	current  egl.Context
}

var _ egl.Platform = (*Platform)(nil)

func (p *Platform) handle() uintptr {
	p.next++
	return p.next
}

func (p *Platform) record(format string, args ...any) {
	p.Calls = append(p.Calls, fmt.Sprintf(format, args...))
}

func (p *Platform) misuse(format string, args ...any) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// GetDisplay returns the single fake display.
func (p *Platform) GetDisplay() egl.Display {
	p.record("GetDisplay")
	if p.NoDisplay {
		return egl.NoDisplay
	}
	if p.display == egl.NoDisplay {
		p.display = egl.Display(p.handle())
		p.configs = make(map[egl.Config]ConfigSpec)
		p.contexts = make(map[egl.Context]bool)
		p.surfaces = make(map[egl.Surface]bool)
	}
	return p.display
}

// Initialize reports Major.Minor unless InitFails is set.
func (p *Platform) Initialize(d egl.Display) (major, minor egl.Int, ok bool) {
	p.record("Initialize")
	if !p.checkDisplay(d) || p.InitFails {
		return 0, 0, false
	}
	return p.Major, p.Minor, true
}

// QueryString returns Extensions for egl.Extensions and "" otherwise.
func (p *Platform) QueryString(d egl.Display, name egl.Int) string {
	p.record("QueryString")
	if !p.checkDisplay(d) || name != egl.Extensions {
		return ""
	}
	return p.Extensions
}

// ChooseConfig matches color sizes and component type exactly.
func (p *Platform) ChooseConfig(d egl.Display, attribs []egl.Int, limit int) ([]egl.Config, bool) {
	p.record("ChooseConfig")
	if !p.checkDisplay(d) || p.ChooseFails {
		return nil, false
	}
	want := specFromAttribs(attribs)
	var out []egl.Config
	for _, spec := range p.Configs {
		if len(out) >= limit {
			break
		}
		if spec.R == want.R && spec.G == want.G && spec.B == want.B && spec.A == want.A && spec.Float == want.Float {
			c := egl.Config(p.handle())
			p.configs[c] = spec
			out = append(out, c)
		}
	}
	return out, true
}

// GetConfigAttrib answers egl.NativeVisualID and the color sizes.
func (p *Platform) GetConfigAttrib(d egl.Display, c egl.Config, attr egl.Int) (egl.Int, bool) {
	p.record("GetConfigAttrib")
	spec, ok := p.configs[c]
	if !p.checkDisplay(d) || !ok {
		return 0, false
	}
	switch attr {
	case egl.NativeVisualID:
		return spec.VisualID, true
	case egl.RedSize:
		return spec.R, true
	case egl.GreenSize:
		return spec.G, true
	case egl.BlueSize:
		return spec.B, true
	case egl.AlphaSize:
		return spec.A, true
	}
	return 0, false
}

// CreateContext creates a context unless ContextFails rejects the config.
func (p *Platform) CreateContext(d egl.Display, c egl.Config, _ egl.Context, _ []egl.Int) egl.Context {
	p.record("CreateContext")
	spec, ok := p.configs[c]
	if !p.checkDisplay(d) || !ok {
		return egl.NoContext
	}
	if p.ContextFails != nil && p.ContextFails(spec) {
		return egl.NoContext
	}
	ctx := egl.Context(p.handle())
	p.contexts[ctx] = true
	return ctx
}

// CreateWindowSurface creates a surface when the requested color space tag
// is accepted.
func (p *Platform) CreateWindowSurface(d egl.Display, c egl.Config, w egl.NativeWindow, attribs []egl.Int) egl.Surface {
	tag, _ := egl.Lookup(attribs, egl.GLColorspaceKHR)
	p.record("CreateWindowSurface %#x", tag)
	if _, ok := p.configs[c]; !p.checkDisplay(d) || !ok || w == nil {
		return egl.NoSurface
	}
	if p.ColorSpaces != nil && !containsInt(p.ColorSpaces, tag) {
		return egl.NoSurface
	}
	s := egl.Surface(p.handle())
	p.surfaces[s] = true
	return s
}

// MakeCurrent binds or, with all-sentinel arguments, unbinds.
func (p *Platform) MakeCurrent(d egl.Display, draw, read egl.Surface, ctx egl.Context) bool {
	if ctx == egl.NoContext && draw == egl.NoSurface && read == egl.NoSurface {
		p.record("MakeCurrent none")
		p.current = egl.NoContext
		return p.checkDisplay(d)
	}
	p.record("MakeCurrent")
	if !p.checkDisplay(d) || p.MakeCurrentFails || !p.contexts[ctx] || !p.surfaces[draw] || !p.surfaces[read] {
		return false
	}
	p.current = ctx
	return true
}

// QuerySurface reports Width and Height.
func (p *Platform) QuerySurface(d egl.Display, s egl.Surface, attr egl.Int) (egl.Int, bool) {
	p.record("QuerySurface")
	if !p.checkDisplay(d) || !p.surfaces[s] {
		return 0, false
	}
	switch attr {
	case egl.Width:
		return p.Width, true
	case egl.Height:
		return p.Height, true
	}
	return 0, false
}

// DestroyContext releases a context.
func (p *Platform) DestroyContext(d egl.Display, ctx egl.Context) bool {
	p.record("DestroyContext")
	if !p.checkDisplay(d) {
		return false
	}
	if !p.contexts[ctx] {
		p.misuse("DestroyContext: unknown context %#x", uintptr(ctx))
		return false
	}
	if p.current == ctx {
		p.misuse("DestroyContext: context %#x is still current", uintptr(ctx))
	}
	delete(p.contexts, ctx)
	return true
}

// DestroySurface releases a surface.
func (p *Platform) DestroySurface(d egl.Display, s egl.Surface) bool {
	p.record("DestroySurface")
	if !p.checkDisplay(d) {
		return false
	}
	if !p.surfaces[s] {
		p.misuse("DestroySurface: unknown surface %#x", uintptr(s))
		return false
	}
	delete(p.surfaces, s)
	return true
}

// Terminate releases the display connection.
func (p *Platform) Terminate(d egl.Display) bool {
	p.record("Terminate")
	if !p.checkDisplay(d) {
		return false
	}
	if len(p.contexts) > 0 || len(p.surfaces) > 0 {
		p.misuse("Terminate: %d contexts and %d surfaces still live", len(p.contexts), len(p.surfaces))
	}
	p.display = egl.NoDisplay
	p.configs = nil
	p.contexts = nil
	p.surfaces = nil
	p.current = egl.NoContext
	return true
}

// Live reports the number of contexts and surfaces not yet destroyed.
func (p *Platform) Live() (contexts, surfaces int) {
	return len(p.contexts), len(p.surfaces)
}

// Open reports whether the display connection is still initialized.
func (p *Platform) Open() bool {
	return p.display != egl.NoDisplay
}

// CallsMatching returns the recorded calls that start with prefix.
func (p *Platform) CallsMatching(prefix string) []string {
	var out []string
	for _, c := range p.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (p *Platform) checkDisplay(d egl.Display) bool {
	if d == egl.NoDisplay || d != p.display {
		p.misuse("invalid display %#x", uintptr(d))
		return false
	}
	return true
}

func specFromAttribs(attribs []egl.Int) ConfigSpec {
	var s ConfigSpec
	s.R, _ = egl.Lookup(attribs, egl.RedSize)
	s.G, _ = egl.Lookup(attribs, egl.GreenSize)
	s.B, _ = egl.Lookup(attribs, egl.BlueSize)
	s.A, _ = egl.Lookup(attribs, egl.AlphaSize)
	if v, ok := egl.Lookup(attribs, egl.ColorComponentTypeExt); ok {
		s.Float = v == egl.ColorComponentTypeFloatExt
	}
	return s
}

func containsInt(list []egl.Int, v egl.Int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Window is a fake native window.
type Window struct {
	// Result is returned from SetBuffersGeometry; negative means failure.
	Result egl.Int

	// Formats records every format requested.
	Formats []egl.Int
}

// SetBuffersGeometry records format and returns Result.
func (w *Window) SetBuffersGeometry(_, _, format egl.Int) egl.Int {
	w.Formats = append(w.Formats, format)
	return w.Result
}
