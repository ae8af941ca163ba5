// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package colorspace converts 8-bit RGB samples between display color spaces.
//
// Conversion is split into three stages, each usable on its own:
//
//  1. Decode: a 256-entry gamma table maps an encoded sample to linear light
//     ([BuildGammaDecodeTable]).
//  2. Gamut: a 3x3 matrix maps linear RGB of the source space to linear RGB
//     of the destination space through CIE XYZ ([Conversion]). The matrix is
//     applied in 10-bit fixed point ([FixedMatrix]) with results clamped to
//     [0,255].
//  3. Encode: a second table maps linear light back to an encoded sample
//     ([BuildGammaEncodeTable]).
//
// [Pipeline] chains the three stages:
//
//	p := colorspace.NewPipeline(colorspace.SRGB, colorspace.DisplayP3)
//	r, g, b := p.Convert(255, 0, 0)
//
// The fixed-point rounding (round half up at coefficient quantization and
// at the final shift) is bit-compatible with existing reference imagery.
//
// Only the color spaces predefined here are supported, and out-of-gamut
// results are clamped rather than gamut mapped.
package colorspace
