// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorspace

import (
	"fmt"
	"math"

	"github.com/gogpu/widecolor/internal/cache"
)

const maxSample = 255

// Knee points of the piecewise transfer curves, as 8-bit indices.
// decodeKnee is int(0.04045 * 255), encodeKnee is int(0.0031308 * 255).
// At 8 bits the linear segment of the encode curve is empty.
const (
	decodeKnee = 10
	encodeKnee = 0
)

// Default gammas for Display-P3 images shown on a P3 or sRGB display.
const (
	// DefaultImageGamma is the encoding gamma of P3 image content.
	// Decode tables use its reciprocal.
	DefaultImageGamma float32 = 1 / 2.2

	// DefaultDisplayGamma is the encoding gamma of the display.
	DefaultDisplayGamma float32 = 1 / 2.2
)

// GammaTable maps an 8-bit input sample to an 8-bit output sample.
// Tables are monotonically non-decreasing and immutable once built.
type GammaTable [256]uint8

// BuildGammaDecodeTable builds the table that decodes a display-encoded
// sample to linear light:
//
//	linear = s / 12.92                        s < 0.04045
//	linear = pow((s + 0.055) / 1.055, gamma)  otherwise
//
// gamma must be a finite value greater than 1; anything else is a
// programming error and panics.
func BuildGammaDecodeTable(gamma float32) GammaTable {
	if !(gamma > 1) || math.IsInf(float64(gamma), 0) {
		panic(fmt.Sprintf("colorspace: invalid decode gamma %v (must be > 1)", gamma))
	}

	var t GammaTable
	for i := 0; i < decodeKnee; i++ {
		t[i] = uint8(float64(i)/12.92 + 0.5)
	}
	for i := decodeKnee; i <= maxSample; i++ {
		s := (float32(i)/maxSample + 0.055) / 1.055
		v := float64(math.Pow(float64(s), float64(gamma))*maxSample) + 0.5
		t[i] = clampToByte(v)
	}
	t.fillMonotonic()
	return t
}

// BuildGammaEncodeTable builds the table that encodes a linear sample for
// the display:
//
//	encoded = linear * 12.92                     linear < 0.0031308
//	encoded = 1.055 * pow(linear, gamma) - 0.055  otherwise
//
// gamma must lie in (0, 1); anything else is a programming error and panics.
func BuildGammaEncodeTable(gamma float32) GammaTable {
	if !(gamma > 0 && gamma < 1) {
		panic(fmt.Sprintf("colorspace: invalid encode gamma %v (must be in (0, 1))", gamma))
	}

	var t GammaTable
	for i := 0; i < encodeKnee; i++ {
		t[i] = uint8(float64(float64(i)*12.92) + 0.5)
	}
	for i := encodeKnee; i <= maxSample; i++ {
		p := float32(math.Pow(float64(float32(i)/maxSample), float64(gamma)))
		e := float32(1.055*p) - 0.055
		v := float64(float64(e)*maxSample) + 0.5
		t[i] = clampToByte(v)
	}
	return t
}

// fillMonotonic raises any entry that falls below its predecessor.
// Only steep decode gammas (above ~2.5) dip at the knee; for the
// default gammas the table is unchanged.
func (t *GammaTable) fillMonotonic() {
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			t[i] = t[i-1]
		}
	}
}

// ApplyGamma looks up each channel in t. No interpolation is performed.
func ApplyGamma(r, g, b uint8, t *GammaTable) (uint8, uint8, uint8) {
	return t[r], t[g], t[b]
}

type tableKey struct {
	gamma  float32
	encode bool
}

// tables shares built tables between pipelines.
var tables = cache.New[tableKey, *GammaTable](32)

// decodeTable returns the shared decode table for gamma. Callers must not
// modify the result.
func decodeTable(gamma float32) *GammaTable {
	return tables.GetOrCreate(tableKey{gamma: gamma}, func() *GammaTable {
		t := BuildGammaDecodeTable(gamma)
		return &t
	})
}

// encodeTable returns the shared encode table for gamma. Callers must not
// modify the result.
func encodeTable(gamma float32) *GammaTable {
	return tables.GetOrCreate(tableKey{gamma: gamma, encode: true}, func() *GammaTable {
		t := BuildGammaEncodeTable(gamma)
		return &t
	})
}

// clampToByte clips v to [0,255] and truncates toward zero.
// Callers add 0.5 first when they want rounding.
func clampToByte(v float64) uint8 {
	if v > maxSample {
		return maxSample
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}
