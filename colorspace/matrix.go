// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorspace

import "fmt"

// Matrix3 is a 3x3 row-major matrix acting on column vectors:
//
//	| r' |   | m[0][0] m[0][1] m[0][2] |   | r |
//	| g' | = | m[1][0] m[1][1] m[1][2] | * | g |
//	| b' |   | m[2][0] m[2][1] m[2][2] |   | b |
type Matrix3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Mul returns m * n: the transform that applies n first, then m.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// Apply transforms the column vector (x, y, z).
func (m Matrix3) Apply(x, y, z float64) (float64, float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

// Determinant returns the determinant of m.
func (m Matrix3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse of m. The second result is false when m is
// singular.
func (m Matrix3) Inverse() (Matrix3, bool) {
	det := m.Determinant()
	if det == 0 {
		return Matrix3{}, false
	}
	inv := 1 / det
	return Matrix3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}, true
}

// Transpose returns the transpose of m.
func (m Matrix3) Transpose() Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// String formats m one row per line, as logged for diagnostics.
func (m Matrix3) String() string {
	return fmt.Sprintf("[%.10f %.10f %.10f; %.10f %.10f %.10f; %.10f %.10f %.10f]",
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2])
}

// fixedShift is the number of fractional bits of FixedMatrix coefficients.
const fixedShift = 10

// FixedMatrix holds matrix coefficients quantized to 10 fractional bits.
type FixedMatrix [3][3]int32

// Quantize converts m to fixed point. Each coefficient is scaled by 1024
// at float32 precision, offset by 0.5 and truncated toward zero.
func Quantize(m Matrix3) FixedMatrix {
	var f FixedMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f[i][j] = int32(float32(float32(m[i][j])*(1<<fixedShift)) + 0.5)
		}
	}
	return f
}

// Apply computes f * (r, g, b) in fixed point. Each channel is rounded by
// adding half a unit before the shift and clamped to [0,255].
func (f *FixedMatrix) Apply(r, g, b uint8) (uint8, uint8, uint8) {
	const half = 1 << (fixedShift - 1)
	sr, sg, sb := int32(r), int32(g), int32(b)
	dr := (f[0][0]*sr + f[0][1]*sg + f[0][2]*sb + half) >> fixedShift
	dg := (f[1][0]*sr + f[1][1]*sg + f[1][2]*sb + half) >> fixedShift
	db := (f[2][0]*sr + f[2][1]*sg + f[2][2]*sb + half) >> fixedShift
	return clampInt(dr), clampInt(dg), clampInt(db)
}

// TransformRGB8 computes m * (r, g, b) with 10-bit fixed-point arithmetic
// and clamps every channel to [0,255].
//
// Use Quantize and FixedMatrix.Apply when transforming many pixels with the
// same matrix.
func TransformRGB8(r, g, b uint8, m Matrix3) (uint8, uint8, uint8) {
	f := Quantize(m)
	return f.Apply(r, g, b)
}

func clampInt(v int32) uint8 {
	if v > maxSample {
		return maxSample
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}
