package widecolor

import (
	"github.com/gogpu/widecolor/colorspace"
	"github.com/gogpu/widecolor/egl"
)

// RenderingContext is the set of platform handles produced by a successful
// negotiation, together with the negotiated mode and surface size.
//
// The zero value holds only sentinel handles and reports ModeInvalid.
// A RenderingContext is owned by exactly one Engine; copies must not be
// destroyed independently.
type RenderingContext struct {
	Display egl.Display
	Context egl.Context
	Surface egl.Surface

	// Mode is the negotiated mode.
	Mode Mode

	// Width and Height are read back from the surface after binding.
	Width, Height int
}

// Valid reports whether rc holds an initialized display.
func (rc RenderingContext) Valid() bool {
	return rc.Display != egl.NoDisplay
}

// App returns the application descriptor of the negotiated mode, or the
// invalid descriptor for the zero value.
func (rc RenderingContext) App() ApplicationDescriptor {
	d, _ := Descriptor(rc.Mode)
	return d.App
}

// Pipeline returns a pipeline converting encoded content in src into the
// gamut of the negotiated surface. It reports false for the zero value.
func (rc RenderingContext) Pipeline(src colorspace.Space, opts ...colorspace.PipelineOption) (*colorspace.Pipeline, bool) {
	dst, ok := rc.App().ColorSpace.Space()
	if !ok {
		return nil, false
	}
	return colorspace.NewPipeline(src, dst, opts...), true
}

// Destroy releases rc's handles and returns the zero value.
//
// The order is fixed: unbind, destroy the context, destroy the surface,
// terminate the display. Sentinel handles are skipped. Destroy on a value
// without a display does nothing, so destroying twice is safe as long as
// the caller keeps the returned value.
func (rc RenderingContext) Destroy(p egl.Platform) RenderingContext {
	if rc.Display == egl.NoDisplay {
		return RenderingContext{}
	}

	p.MakeCurrent(rc.Display, egl.NoSurface, egl.NoSurface, egl.NoContext)
	if rc.Context != egl.NoContext {
		p.DestroyContext(rc.Display, rc.Context)
	}
	if rc.Surface != egl.NoSurface {
		p.DestroySurface(rc.Display, rc.Surface)
	}
	p.Terminate(rc.Display)

	return RenderingContext{}
}
