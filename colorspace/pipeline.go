// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorspace

import (
	"image"

	"golang.org/x/image/draw"
)

// Pipeline converts encoded 8-bit RGB from one color space to another:
// decode table, fixed-point gamut matrix, encode table.
//
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	src, dst Space
	matrix   Matrix3
	fixed    FixedMatrix
	decode   *GammaTable
	encode   *GammaTable
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	decodeGamma float32
	encodeGamma float32
	derived     bool
}

// WithGammas sets the decode gamma (> 1) and encode gamma (in (0, 1)).
// The defaults are 1/DefaultImageGamma and DefaultDisplayGamma.
func WithGammas(decode, encode float32) PipelineOption {
	return func(o *pipelineOptions) {
		o.decodeGamma = decode
		o.encodeGamma = encode
	}
}

// WithDerivedMatrix forces the gamut matrix to be derived from the
// primaries even when reference constants exist for the pair.
func WithDerivedMatrix() PipelineOption {
	return func(o *pipelineOptions) {
		o.derived = true
	}
}

// NewPipeline returns a pipeline from src to dst.
//
// For sRGB and Display P3 the reference matrices are used so output is
// bit-exact with existing imagery; other pairs are derived from their
// primaries. Invalid gammas panic, like the table builders.
func NewPipeline(src, dst Space, opts ...PipelineOption) *Pipeline {
	o := pipelineOptions{
		decodeGamma: 1 / DefaultImageGamma,
		encodeGamma: DefaultDisplayGamma,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m, ok := referenceConversion(src, dst)
	if !ok || o.derived {
		m = Conversion(src, dst)
	}

	return &Pipeline{
		src:    src,
		dst:    dst,
		matrix: m,
		fixed:  Quantize(m),
		decode: decodeTable(o.decodeGamma),
		encode: encodeTable(o.encodeGamma),
	}
}

// Source returns the source color space.
func (p *Pipeline) Source() Space { return p.src }

// Destination returns the destination color space.
func (p *Pipeline) Destination() Space { return p.dst }

// Matrix returns the floating-point gamut matrix.
func (p *Pipeline) Matrix() Matrix3 { return p.matrix }

// Convert converts a single encoded sample.
func (p *Pipeline) Convert(r, g, b uint8) (uint8, uint8, uint8) {
	r, g, b = ApplyGamma(r, g, b, p.decode)
	r, g, b = p.fixed.Apply(r, g, b)
	return ApplyGamma(r, g, b, p.encode)
}

// ConvertPixels converts interleaved RGBA pixels from src into dst.
// Alpha is copied unchanged. dst and src may be the same slice; only
// len(src)/4 whole pixels are converted and dst must be at least as long.
func (p *Pipeline) ConvertPixels(dst, src []uint8) {
	n := len(src) &^ 3
	_ = dst[:n]
	for i := 0; i < n; i += 4 {
		dst[i], dst[i+1], dst[i+2] = p.Convert(src[i], src[i+1], src[i+2])
		dst[i+3] = src[i+3]
	}
}

// ConvertImage returns a converted copy of img as non-premultiplied RGBA.
func (p *Pipeline) ConvertImage(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+b.Dx()*4]
		p.ConvertPixels(row, row)
	}
	return out
}
