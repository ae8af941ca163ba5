package widecolor

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceProvider exposes a negotiated surface to gpucontext consumers.
//
// The device, queue and adapter are supplied by the host; the surface
// format comes from the negotiated mode, so renderers that target the
// provider pick up the wide-color format without further plumbing.
type DeviceProvider struct {
	rc      RenderingContext
	device  gpucontext.Device
	queue   gpucontext.Queue
	adapter gpucontext.Adapter
	info    gpucontext.AdapterInfo
}

var _ gpucontext.DeviceProvider = (*DeviceProvider)(nil)

// NewDeviceProvider wraps a bound rendering context. adapter may be nil.
func NewDeviceProvider(rc RenderingContext, device gpucontext.Device, queue gpucontext.Queue, adapter gpucontext.Adapter) *DeviceProvider {
	return &DeviceProvider{
		rc:      rc,
		device:  device,
		queue:   queue,
		adapter: adapter,
		info: gpucontext.AdapterInfo{
			Name: "EGL " + rc.App().String(),
			Type: gpucontext.AdapterTypeUnknown,
		},
	}
}

// WithAdapterInfo returns p with the adapter metadata replaced.
func (p *DeviceProvider) WithAdapterInfo(info gpucontext.AdapterInfo) *DeviceProvider {
	cp := *p
	cp.info = info
	return &cp
}

func (p *DeviceProvider) Device() gpucontext.Device   { return p.device }
func (p *DeviceProvider) Queue() gpucontext.Queue     { return p.queue }
func (p *DeviceProvider) Adapter() gpucontext.Adapter { return p.adapter }

// SurfaceFormat returns the negotiated surface format, or
// TextureFormatUndefined when the context is not bound.
func (p *DeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return p.rc.SurfaceFormat()
}

// AdapterInfo returns the adapter metadata.
func (p *DeviceProvider) AdapterInfo() gpucontext.AdapterInfo { return p.info }

// Context returns the wrapped rendering context.
func (p *DeviceProvider) Context() RenderingContext { return p.rc }
