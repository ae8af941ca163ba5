// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

import "strings"

// Extension names probed during negotiation.
const (
	ExtKHRColorspace        = "EGL_KHR_gl_colorspace"
	ExtDisplayP3            = "EGL_EXT_gl_colorspace_display_p3"
	ExtDisplayP3Passthrough = "GL_EXT_gl_colorspace_display_p3_passthrough"
	ExtPixelFormatFloat     = "EGL_EXT_pixel_format_float"
)

// PassthroughExtensions must all be reported for Display-P3 passthrough
// surfaces (Android 10+). Content is written pre-encoded and the display's
// own encode/decode stages are bypassed.
var PassthroughExtensions = []string{ExtKHRColorspace, ExtDisplayP3Passthrough}

// DisplayP3Extensions must all be reported for regular Display-P3 surfaces.
var DisplayP3Extensions = []string{ExtKHRColorspace, ExtDisplayP3}

// Matcher reports whether every required extension appears in report.
type Matcher func(report string, required ...string) bool

// HasExtensions reports whether every required name occurs in report.
//
// Matching is by substring, not by token: a required name that is a prefix
// of a longer reported extension matches. Drivers occasionally decorate
// names, and existing callers depend on this. Use HasExtensionTokens for
// exact matching.
func HasExtensions(report string, required ...string) bool {
	for _, ext := range required {
		if !strings.Contains(report, ext) {
			return false
		}
	}
	return true
}

// HasExtensionTokens reports whether every required name is present as a
// whole whitespace-separated token of report.
func HasExtensionTokens(report string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	tokens := strings.Fields(report)
	for _, ext := range required {
		found := false
		for _, tok := range tokens {
			if tok == ext {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Capabilities is the result of probing a display's extension report.
type Capabilities struct {
	// Passthrough is set when Display-P3 passthrough surfaces are available.
	Passthrough bool

	// DisplayP3 is set when regular Display-P3 surfaces are available.
	DisplayP3 bool

	// FloatFormats is set when floating point color buffers are advertised.
	// It is informational; FP16 modes are attempted regardless and fail at
	// configuration matching on drivers that lack them.
	FloatFormats bool
}

// WideColor reports whether any Display-P3 mode is worth attempting.
func (c Capabilities) WideColor() bool {
	return c.Passthrough || c.DisplayP3
}

// ProbeReport evaluates an extension report with the given matcher.
// A nil matcher selects HasExtensions.
func ProbeReport(report string, match Matcher) Capabilities {
	if match == nil {
		match = HasExtensions
	}
	return Capabilities{
		Passthrough:  match(report, PassthroughExtensions...),
		DisplayP3:    match(report, DisplayP3Extensions...),
		FloatFormats: match(report, ExtPixelFormatFloat),
	}
}

// Probe queries the display's extension report and evaluates it.
// It has no side effects and may be called repeatedly.
func Probe(p Platform, d Display, match Matcher) Capabilities {
	return ProbeReport(p.QueryString(d, Extensions), match)
}
