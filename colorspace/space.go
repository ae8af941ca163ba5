// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorspace

import "fmt"

// Chromaticity is a CIE 1931 xy coordinate.
type Chromaticity struct {
	X, Y float64
}

// Space is an RGB color space defined by its primaries and white point.
type Space struct {
	Name  string
	Red   Chromaticity
	Green Chromaticity
	Blue  Chromaticity
	White Chromaticity
}

// D65 is the CIE standard illuminant D65.
var D65 = Chromaticity{X: 0.3127, Y: 0.3290}

// Predefined color spaces.
var (
	SRGB = Space{
		Name:  "sRGB",
		Red:   Chromaticity{0.640, 0.330},
		Green: Chromaticity{0.300, 0.600},
		Blue:  Chromaticity{0.150, 0.060},
		White: D65,
	}
	DisplayP3 = Space{
		Name:  "Display P3",
		Red:   Chromaticity{0.680, 0.320},
		Green: Chromaticity{0.265, 0.690},
		Blue:  Chromaticity{0.150, 0.060},
		White: D65,
	}
	DCIP3 = Space{
		Name:  "DCI-P3",
		Red:   Chromaticity{0.680, 0.320},
		Green: Chromaticity{0.265, 0.690},
		Blue:  Chromaticity{0.150, 0.060},
		White: Chromaticity{0.314, 0.351},
	}
	BT2020 = Space{
		Name:  "BT.2020",
		Red:   Chromaticity{0.708, 0.292},
		Green: Chromaticity{0.170, 0.797},
		Blue:  Chromaticity{0.131, 0.046},
		White: D65,
	}
)

// Spaces lists the predefined color spaces.
func Spaces() []Space {
	return []Space{SRGB, DisplayP3, DCIP3, BT2020}
}

// Lookup returns the predefined space with the given name.
func Lookup(name string) (Space, bool) {
	for _, s := range Spaces() {
		if s.Name == name {
			return s, true
		}
	}
	return Space{}, false
}

func (s Space) String() string { return s.Name }

// RGBToXYZ returns the matrix converting linear RGB in s to CIE XYZ,
// normalized so that RGB white maps to Y = 1 at the space's own white point.
// No chromatic adaptation is applied.
func (s Space) RGBToXYZ() Matrix3 {
	// Columns are the XYZ of each primary at Y = 1.
	p := Matrix3{
		{s.Red.X / s.Red.Y, s.Green.X / s.Green.Y, s.Blue.X / s.Blue.Y},
		{1, 1, 1},
		{
			(1 - s.Red.X - s.Red.Y) / s.Red.Y,
			(1 - s.Green.X - s.Green.Y) / s.Green.Y,
			(1 - s.Blue.X - s.Blue.Y) / s.Blue.Y,
		},
	}
	inv, ok := p.Inverse()
	if !ok {
		panic(fmt.Sprintf("colorspace: degenerate primaries for %s", s.Name))
	}

	// Scale each primary so that R = G = B = 1 lands on the white point.
	wx := s.White.X / s.White.Y
	wz := (1 - s.White.X - s.White.Y) / s.White.Y
	sr, sg, sb := inv.Apply(wx, 1, wz)

	for i := 0; i < 3; i++ {
		p[i][0] *= sr
		p[i][1] *= sg
		p[i][2] *= sb
	}
	return p
}

// XYZToRGB returns the matrix converting CIE XYZ to linear RGB in s.
func (s Space) XYZToRGB() Matrix3 {
	inv, _ := s.RGBToXYZ().Inverse()
	return inv
}

// Conversion returns the linear RGB transform from src to dst, composed
// through CIE XYZ as XYZToRGB(dst) * RGBToXYZ(src).
func Conversion(src, dst Space) Matrix3 {
	return dst.XYZToRGB().Mul(src.RGBToXYZ())
}

// Reference matrices used for bit-exact conversions. They match the
// constants the existing reference imagery was produced with and differ
// from the derived matrices only in the last float32 digits.
var (
	SRGBToXYZ = Matrix3{
		{0.4123908281, 0.3575843275, 0.1804807931},
		{0.2126390338, 0.7151686549, 0.0721923113},
		{0.0193308201, 0.1191947237, 0.9505321383},
	}
	XYZToSRGB = Matrix3{
		{3.2409696579, -1.5373830795, -0.4986107349},
		{-0.9692436457, 1.8759675026, 0.0415550880},
		{0.0556300320, -0.2039768547, 1.0569714308},
	}
	DisplayP3ToXYZ = Matrix3{
		{0.4865709245, 0.2656676769, 0.1982172877},
		{0.2289745510, 0.6917385459, 0.0792869106},
		{0.0000000000, 0.0451133996, 1.0439443588},
	}
	XYZToDisplayP3 = Matrix3{
		{2.4934973717, -0.9313836098, -0.4027108550},
		{-0.8294889927, 1.7626641989, 0.0236246940},
		{0.0358458459, -0.0761724263, 0.9568846226},
	}
)

// referenceConversion returns the reference matrix for src->dst when both
// spaces have reference constants.
func referenceConversion(src, dst Space) (Matrix3, bool) {
	var toXYZ, fromXYZ Matrix3
	switch src {
	case SRGB:
		toXYZ = SRGBToXYZ
	case DisplayP3:
		toXYZ = DisplayP3ToXYZ
	default:
		return Matrix3{}, false
	}
	switch dst {
	case SRGB:
		fromXYZ = XYZToSRGB
	case DisplayP3:
		fromXYZ = XYZToDisplayP3
	default:
		return Matrix3{}, false
	}
	return fromXYZ.Mul(toXYZ), true
}
