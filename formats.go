package widecolor

import "github.com/gogpu/gputypes"

// TextureFormat returns the storage format matching f, or
// TextureFormatUndefined for FormatInvalid.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatRGB10A2:
		return gputypes.TextureFormatRGB10A2Unorm
	case FormatRGBA16F:
		return gputypes.TextureFormatRGBA16Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// SurfaceFormat returns the format of the negotiated drawing surface.
func (a ApplicationDescriptor) SurfaceFormat() gputypes.TextureFormat {
	return a.Format.TextureFormat()
}

// ImageTextureFormat returns the format for uploading encoded 8-bit image
// content.
//
// With passthrough the display does not encode the output, so the sampler
// must not decode either and the texture is plain RGBA8. On P3 and sRGB
// surfaces the display encodes the output, so the sampler decodes the
// content to avoid encoding it twice.
func (a ApplicationDescriptor) ImageTextureFormat() gputypes.TextureFormat {
	switch a.ColorSpace {
	case ColorSpaceP3Passthrough:
		return gputypes.TextureFormatRGBA8Unorm
	case ColorSpaceP3, ColorSpaceSRGB:
		return gputypes.TextureFormatRGBA8UnormSrgb
	default:
		return gputypes.TextureFormatUndefined
	}
}

// SurfaceFormat returns the surface format of the negotiated mode.
func (rc RenderingContext) SurfaceFormat() gputypes.TextureFormat {
	return rc.App().SurfaceFormat()
}

// ImageTextureFormat returns the image texture format of the negotiated mode.
func (rc RenderingContext) ImageTextureFormat() gputypes.TextureFormat {
	return rc.App().ImageTextureFormat()
}
