// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader selects and compiles the WGSL programs that draw content
// onto a negotiated surface.
//
// Content in the surface's own gamut is drawn with a plain blit. Content
// in another gamut is drawn with the gamut conversion program, which
// applies the same matrix the colorspace package uses on the CPU. On
// passthrough surfaces the conversion program also applies the transfer
// functions, since neither the sampler nor the display does.
//
// Sources are embedded and compiled to SPIR-V with naga.
package shader
