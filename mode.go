package widecolor

import (
	"fmt"

	"github.com/gogpu/widecolor/colorspace"
	"github.com/gogpu/widecolor/egl"
)

// ColorSpace is the color space of a negotiated drawing surface as seen by
// the application.
type ColorSpace uint8

const (
	// ColorSpaceInvalid is reported when no context is bound.
	ColorSpaceInvalid ColorSpace = iota

	// ColorSpaceP3Passthrough is Display P3 with the display's own
	// encode/decode stages bypassed. Content must be written pre-encoded.
	ColorSpaceP3Passthrough

	// ColorSpaceP3 is Display P3. The display encodes linear output.
	ColorSpaceP3

	// ColorSpaceSRGB is standard sRGB.
	ColorSpaceSRGB
)

// String returns the color space name.
func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceP3Passthrough:
		return "P3 passthrough"
	case ColorSpaceP3:
		return "P3"
	case ColorSpaceSRGB:
		return "sRGB"
	default:
		return "invalid"
	}
}

// Wide reports whether c covers the Display P3 gamut.
func (c ColorSpace) Wide() bool {
	return c == ColorSpaceP3Passthrough || c == ColorSpaceP3
}

// Space returns the primaries of c.
func (c ColorSpace) Space() (colorspace.Space, bool) {
	switch c {
	case ColorSpaceP3Passthrough, ColorSpaceP3:
		return colorspace.DisplayP3, true
	case ColorSpaceSRGB:
		return colorspace.SRGB, true
	default:
		return colorspace.Space{}, false
	}
}

// Format is the pixel format of a negotiated drawing surface.
type Format uint8

const (
	// FormatInvalid is reported when no context is bound.
	FormatInvalid Format = iota

	// FormatRGBA8 is 8 bits per channel.
	FormatRGBA8

	// FormatRGB10A2 is 10 bits per color channel and 2 bits of alpha.
	FormatRGB10A2

	// FormatRGBA16F is a 16-bit float per channel.
	FormatRGBA16F
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGB10A2:
		return "RGB10A2"
	case FormatRGBA16F:
		return "RGBA16F"
	default:
		return "invalid"
	}
}

// Float reports whether f stores floating point components.
func (f Format) Float() bool { return f == FormatRGBA16F }

// Mode identifies one concrete color space and pixel format combination
// that negotiation can attempt.
type Mode uint8

const (
	// ModeInvalid is reported when no context is bound.
	ModeInvalid Mode = iota

	// Display P3 passthrough, Android 10 and later.
	ModeP3PassthroughRGBA8
	ModeP3PassthroughRGB10A2
	ModeP3PassthroughFP16

	// Display P3.
	ModeP3RGBA8
	ModeP3RGB10A2
	ModeP3FP16

	// Legacy sRGB fallback.
	ModeSRGBRGBA8

	numModes
)

// ApplicationDescriptor is the application-level view of a mode.
type ApplicationDescriptor struct {
	ColorSpace ColorSpace
	Format     Format
}

func (a ApplicationDescriptor) String() string {
	return a.ColorSpace.String() + "/" + a.Format.String()
}

// ChannelBits holds the per-channel bit depth requested from the platform.
type ChannelBits struct {
	R, G, B, A egl.Int
}

// PlatformDescriptor is the platform-level view of a mode.
type PlatformDescriptor struct {
	// ColorSpaceTag is the EGL_GL_COLORSPACE_KHR surface attribute value.
	ColorSpaceTag egl.Int
	Bits          ChannelBits
}

// ModeDescriptor describes a mode on both sides of the platform boundary.
// The zero value is the invalid descriptor.
type ModeDescriptor struct {
	App      ApplicationDescriptor
	Platform PlatformDescriptor
}

var (
	bits8888     = ChannelBits{R: 8, G: 8, B: 8, A: 8}
	bits1010102  = ChannelBits{R: 10, G: 10, B: 10, A: 2}
	bits16161616 = ChannelBits{R: 16, G: 16, B: 16, A: 16}
)

// modeTable holds exactly one descriptor per Mode. Index 0 is the invalid
// descriptor.
var modeTable = [numModes]ModeDescriptor{
	ModeP3PassthroughRGBA8: {
		App:      ApplicationDescriptor{ColorSpaceP3Passthrough, FormatRGBA8},
		Platform: PlatformDescriptor{egl.GLColorspaceDisplayP3Passthrough, bits8888},
	},
	ModeP3PassthroughRGB10A2: {
		App:      ApplicationDescriptor{ColorSpaceP3Passthrough, FormatRGB10A2},
		Platform: PlatformDescriptor{egl.GLColorspaceDisplayP3Passthrough, bits1010102},
	},
	ModeP3PassthroughFP16: {
		App:      ApplicationDescriptor{ColorSpaceP3Passthrough, FormatRGBA16F},
		Platform: PlatformDescriptor{egl.GLColorspaceDisplayP3Passthrough, bits16161616},
	},
	ModeP3RGBA8: {
		App:      ApplicationDescriptor{ColorSpaceP3, FormatRGBA8},
		Platform: PlatformDescriptor{egl.GLColorspaceDisplayP3Ext, bits8888},
	},
	ModeP3RGB10A2: {
		App:      ApplicationDescriptor{ColorSpaceP3, FormatRGB10A2},
		Platform: PlatformDescriptor{egl.GLColorspaceDisplayP3Ext, bits1010102},
	},
	ModeP3FP16: {
		App:      ApplicationDescriptor{ColorSpaceP3, FormatRGBA16F},
		Platform: PlatformDescriptor{egl.GLColorspaceDisplayP3Ext, bits16161616},
	},
	ModeSRGBRGBA8: {
		App:      ApplicationDescriptor{ColorSpaceSRGB, FormatRGBA8},
		Platform: PlatformDescriptor{egl.GLColorspaceSRGBKHR, bits8888},
	},
}

// Descriptor returns the descriptor for m. For ModeInvalid and unknown
// values it returns the invalid descriptor and false.
func Descriptor(m Mode) (ModeDescriptor, bool) {
	if !m.Valid() {
		return ModeDescriptor{}, false
	}
	return modeTable[m], true
}

// Modes returns every valid mode in table order.
func Modes() []Mode {
	out := make([]Mode, 0, numModes-1)
	for m := ModeInvalid + 1; m < numModes; m++ {
		out = append(out, m)
	}
	return out
}

// Valid reports whether m names a mode in the table.
func (m Mode) Valid() bool {
	return m > ModeInvalid && m < numModes
}

// String returns a short name such as "P3/RGB10A2".
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeTable[m].App.String()
}

// Passthrough returns the passthrough equivalent of a P3 mode with the
// same bit depths. Other modes are returned unchanged.
func (m Mode) Passthrough() Mode {
	switch m {
	case ModeP3RGBA8:
		return ModeP3PassthroughRGBA8
	case ModeP3RGB10A2:
		return ModeP3PassthroughRGB10A2
	case ModeP3FP16:
		return ModeP3PassthroughFP16
	}
	return m
}

// WithoutPassthrough is the inverse of Passthrough.
func (m Mode) WithoutPassthrough() Mode {
	switch m {
	case ModeP3PassthroughRGBA8:
		return ModeP3RGBA8
	case ModeP3PassthroughRGB10A2:
		return ModeP3RGB10A2
	case ModeP3PassthroughFP16:
		return ModeP3FP16
	}
	return m
}

// configAttribs returns the framebuffer configuration request for d.
// Floating point formats ask for float components, everything else for
// fixed point.
func (d ModeDescriptor) configAttribs() []egl.Int {
	component := egl.ColorComponentTypeFixedExt
	if d.App.Format.Float() {
		component = egl.ColorComponentTypeFloatExt
	}
	var l egl.AttribList
	l = l.Add(egl.SurfaceType, egl.WindowBit)
	l = l.Add(egl.RenderableType, egl.OpenGLES3Bit)
	l = l.Add(egl.BlueSize, d.Platform.Bits.B)
	l = l.Add(egl.GreenSize, d.Platform.Bits.G)
	l = l.Add(egl.RedSize, d.Platform.Bits.R)
	l = l.Add(egl.AlphaSize, d.Platform.Bits.A)
	l = l.Add(egl.ColorComponentTypeExt, component)
	return l.Terminated()
}

// surfaceAttribs returns the window surface request for d.
func (d ModeDescriptor) surfaceAttribs() []egl.Int {
	var l egl.AttribList
	return l.Add(egl.GLColorspaceKHR, d.Platform.ColorSpaceTag).Terminated()
}
