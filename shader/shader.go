// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/naga"

	"github.com/gogpu/widecolor"
	"github.com/gogpu/widecolor/colorspace"
	"github.com/gogpu/widecolor/internal/cache"
)

//go:embed shaders/blit.wgsl
var blitShaderSource string

//go:embed shaders/gamut_convert.wgsl
var gamutConvertShaderSource string

// Entry points shared by every program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// ErrInvalidColorSpace is returned for a surface that is not bound.
var ErrInvalidColorSpace = errors.New("shader: invalid surface color space")

// Kind identifies a program.
type Kind uint8

const (
	// KindBlit copies the texture unchanged.
	KindBlit Kind = iota

	// KindGamutConvert maps the texture into the surface gamut.
	KindGamutConvert
)

func (k Kind) String() string {
	switch k {
	case KindBlit:
		return "blit"
	case KindGamutConvert:
		return "gamut_convert"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Program is a shader selected for a surface and a content gamut.
type Program struct {
	Kind Kind

	// Matrix maps linear content RGB to linear surface RGB.
	// It is the identity for KindBlit.
	Matrix colorspace.Matrix3

	// ManualTransfer is set when the shader decodes and encodes itself.
	ManualTransfer bool

	// DecodeGamma and EncodeGamma are used when ManualTransfer is set.
	DecodeGamma, EncodeGamma float32
}

// ForColorSpace returns the program that draws content encoded in the
// content gamut onto a surface negotiated with color space cs.
func ForColorSpace(cs widecolor.ColorSpace, content colorspace.Space) (Program, error) {
	dst, ok := cs.Space()
	if !ok {
		return Program{}, ErrInvalidColorSpace
	}
	if content == dst {
		return Program{Kind: KindBlit, Matrix: colorspace.Identity3()}, nil
	}
	return Program{
		Kind:           KindGamutConvert,
		Matrix:         colorspace.NewPipeline(content, dst).Matrix(),
		ManualTransfer: cs == widecolor.ColorSpaceP3Passthrough,
		DecodeGamma:    1 / colorspace.DefaultImageGamma,
		EncodeGamma:    colorspace.DefaultDisplayGamma,
	}, nil
}

// Source returns the WGSL source of p.
func (p Program) Source() string {
	if p.Kind == KindGamutConvert {
		return gamutConvertShaderSource
	}
	return blitShaderSource
}

// UniformSize is the size in bytes of the gamut conversion uniform block.
const UniformSize = 64

// Uniforms serializes the parameters of a gamut conversion program in the
// layout of the WGSL Params struct: a mat3x3<f32> stored as three columns
// padded to 16 bytes, then manual_transfer, decode_gamma and encode_gamma.
// Blit programs have no uniforms and return nil.
func (p Program) Uniforms() []byte {
	if p.Kind != KindGamutConvert {
		return nil
	}
	buf := make([]byte, UniformSize)
	le := binary.LittleEndian
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			off := col*16 + row*4
			le.PutUint32(buf[off:off+4], math.Float32bits(float32(p.Matrix[row][col])))
		}
	}
	var manual uint32
	if p.ManualTransfer {
		manual = 1
	}
	le.PutUint32(buf[48:52], manual)
	le.PutUint32(buf[52:56], math.Float32bits(p.DecodeGamma))
	le.PutUint32(buf[56:60], math.Float32bits(p.EncodeGamma))
	return buf
}

// Compile compiles p's source to SPIR-V words. Results are cached per kind.
func (p Program) Compile() ([]uint32, error) {
	r := compiled.GetOrCreate(p.Kind, func() compileResult {
		code, err := Compile(p.Source())
		return compileResult{code: code, err: err}
	})
	return r.code, r.err
}

type compileResult struct {
	code []uint32
	err  error
}

var compiled = cache.New[Kind, compileResult](0)

// Compile compiles WGSL source to SPIR-V words.
func Compile(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V output is %d bytes, not a whole number of words", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return code, nil
}
