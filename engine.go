package widecolor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/widecolor/colorspace"
	"github.com/gogpu/widecolor/egl"
)

// State is the negotiation state of an Engine.
type State uint8

const (
	// StateUninitialized is the initial state and the state after
	// DestroyContext. No display is open.
	StateUninitialized State = iota

	// StateProbingExtensions means the display is open and its extension
	// report has been, or is being, evaluated.
	StateProbingExtensions

	// StateAttemptingMode means a candidate mode is being tried.
	StateAttemptingMode

	// StateBound means a context and surface are current.
	StateBound

	// StateFailed means the last negotiation exhausted its candidates or
	// could not open the display. Every handle has been released.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateProbingExtensions:
		return "ProbingExtensions"
	case StateAttemptingMode:
		return "AttemptingMode"
	case StateBound:
		return "Bound"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Engine negotiates a wide-color rendering context on a platform display.
//
// Every method blocks on the platform. Engine is not safe for concurrent
// use; the owning goroutine is the sole mutator of its handles.
type Engine struct {
	platform egl.Platform
	window   egl.NativeWindow
	opts     engineOptions

	state   State
	display egl.Display
	caps    egl.Capabilities
	rc      RenderingContext
}

// NewEngine creates an engine for the given platform and window.
// Nothing is opened until Probe, CreateContext or TryCreateContext.
//
// NewEngine panics if platform or window is nil, or if WithCandidates
// named an invalid mode.
func NewEngine(platform egl.Platform, window egl.NativeWindow, opts ...Option) *Engine {
	if platform == nil {
		panic("widecolor: nil platform")
	}
	if window == nil {
		panic("widecolor: nil window")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	for _, m := range o.candidates {
		if !m.Valid() {
			panic(fmt.Sprintf("widecolor: invalid candidate %s", m))
		}
	}
	return &Engine{
		platform: platform,
		window:   window,
		opts:     o,
	}
}

func (e *Engine) logger() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return Logger()
}

// State returns the current negotiation state.
func (e *Engine) State() State { return e.state }

// Context returns the bound rendering context, or the zero value.
func (e *Engine) Context() RenderingContext { return e.rc }

// Mode returns the bound mode, or ModeInvalid.
func (e *Engine) Mode() Mode { return e.rc.Mode }

// ColorSpace returns the application color space of the bound mode.
// Renderers use it to pick shaders and texture formats.
func (e *Engine) ColorSpace() ColorSpace { return e.rc.App().ColorSpace }

// Format returns the pixel format of the bound mode.
func (e *Engine) Format() Format { return e.rc.App().Format }

// Size returns the negotiated surface size, or zeros when unbound.
func (e *Engine) Size() (width, height int) { return e.rc.Width, e.rc.Height }

// Capabilities returns the result of the most recent probe.
func (e *Engine) Capabilities() egl.Capabilities { return e.caps }

// Probe opens the display if necessary and evaluates its extension report.
// It may be called repeatedly and does not affect a bound context.
func (e *Engine) Probe() (egl.Capabilities, error) {
	if err := e.open(); err != nil {
		return egl.Capabilities{}, err
	}
	if e.state != StateBound {
		e.state = StateProbingExtensions
	}
	e.caps = egl.Probe(e.platform, e.display, e.opts.match)
	e.logger().Debug("widecolor: probed extensions",
		"passthrough", e.caps.Passthrough,
		"displayP3", e.caps.DisplayP3,
		"float", e.caps.FloatFormats)
	return e.caps, nil
}

// CreateContext runs the full negotiation: probe, build the candidate list
// and attempt each candidate until one binds.
//
// On success the engine is Bound. When every candidate fails the display
// is terminated, the engine is Failed and the returned error wraps
// ErrNoSupportedMode together with each candidate's *ModeError.
func (e *Engine) CreateContext() error {
	if e.state == StateBound {
		return ErrAlreadyBound
	}
	caps, err := e.Probe()
	if err != nil {
		return err
	}

	modes := e.opts.candidates
	if modes == nil {
		modes = CandidateModes(caps)
		if !caps.WideColor() {
			e.logger().Warn("widecolor: Display P3 is not supported, creating legacy sRGB context")
		}
	}

	errs := make([]error, 0, len(modes)+1)
	errs = append(errs, ErrNoSupportedMode)
	for i, m := range modes {
		err := e.attempt(m)
		if err == nil {
			e.logger().Info("widecolor: context bound",
				"mode", m, "candidate", i+1, "of", len(modes),
				"width", e.rc.Width, "height", e.rc.Height)
			return nil
		}
		errs = append(errs, err)
	}

	e.fail()
	e.logger().Warn("widecolor: no candidate mode could be bound", "tried", len(modes))
	return errors.Join(errs...)
}

// TryCreateContext attempts exactly one mode, opening the display if
// necessary. On failure the display is released again and the returned
// error is a *ModeError. An invalid mode panics.
func (e *Engine) TryCreateContext(m Mode) error {
	if !m.Valid() {
		panic(fmt.Sprintf("widecolor: invalid mode %s", m))
	}
	if e.state == StateBound {
		return ErrAlreadyBound
	}
	if err := e.open(); err != nil {
		return err
	}
	if err := e.attempt(m); err != nil {
		e.fail()
		return err
	}
	e.logger().Info("widecolor: context bound",
		"mode", m, "width", e.rc.Width, "height", e.rc.Height)
	return nil
}

// DestroyContext releases the bound context and surface and terminates the
// display. It does nothing when no display is open, so calling it twice is
// safe. The engine returns to Uninitialized.
func (e *Engine) DestroyContext() {
	rc := e.rc
	if rc.Display == egl.NoDisplay {
		// Probed but never bound: only the display is open.
		rc.Display = e.display
	}
	e.rc = rc.Destroy(e.platform)
	e.display = egl.NoDisplay
	e.state = StateUninitialized
}

// open connects to and initializes the default display once.
func (e *Engine) open() error {
	if e.display != egl.NoDisplay {
		return nil
	}
	d := e.platform.GetDisplay()
	if d == egl.NoDisplay {
		e.state = StateFailed
		return ErrNoDisplay
	}
	major, minor, ok := e.platform.Initialize(d)
	if !ok {
		e.state = StateFailed
		return ErrDisplayInit
	}
	e.logger().Info("widecolor: display initialized", "major", major, "minor", minor)
	e.display = d
	return nil
}

// fail terminates the display and resets every handle.
func (e *Engine) fail() {
	e.rc = RenderingContext{Display: e.display}.Destroy(e.platform)
	e.display = egl.NoDisplay
	e.state = StateFailed
}

// attempt tries to bind m. Candidate-level failures release whatever this
// attempt created and return a *ModeError. A failed MakeCurrent panics.
func (e *Engine) attempt(m Mode) error {
	d, _ := Descriptor(m)
	p := e.platform
	log := e.logger().With("mode", m)

	e.state = StateAttemptingMode

	configs, ok := p.ChooseConfig(e.display, d.configAttribs(), 1)
	if !ok || len(configs) != 1 {
		log.Info("widecolor: config not supported", "matched", len(configs))
		return &ModeError{Mode: m, Err: ErrNoMatchingConfig}
	}
	cfg := configs[0]

	var ctxAttribs egl.AttribList
	ctxAttribs = ctxAttribs.Add(egl.ContextVersion, e.opts.clientVersion)
	ctx := p.CreateContext(e.display, cfg, egl.NoContext, ctxAttribs.Terminated())
	if ctx == egl.NoContext {
		log.Info("widecolor: context creation failed")
		return &ModeError{Mode: m, Err: ErrContextCreation}
	}

	format, ok := p.GetConfigAttrib(e.display, cfg, egl.NativeVisualID)
	if !ok {
		log.Debug("widecolor: no native visual id, keeping window format")
	}
	if res := e.window.SetBuffersGeometry(0, 0, format); res < 0 {
		p.DestroyContext(e.display, ctx)
		log.Info("widecolor: window geometry rejected", "format", format, "result", res)
		return &ModeError{Mode: m, Err: fmt.Errorf("%w (format %#x, result %d)", ErrWindowGeometry, format, res)}
	}

	surface := p.CreateWindowSurface(e.display, cfg, e.window, d.surfaceAttribs())
	if surface == egl.NoSurface {
		p.DestroyContext(e.display, ctx)
		log.Info("widecolor: surface not supported", "colorspace", fmt.Sprintf("%#x", d.Platform.ColorSpaceTag))
		return &ModeError{Mode: m, Err: ErrSurfaceCreation}
	}

	if !p.MakeCurrent(e.display, surface, surface, ctx) {
		panic(fmt.Sprintf("widecolor: MakeCurrent failed for freshly created %s context", m))
	}

	width, _ := p.QuerySurface(e.display, surface, egl.Width)
	height, _ := p.QuerySurface(e.display, surface, egl.Height)

	e.rc = RenderingContext{
		Display: e.display,
		Context: ctx,
		Surface: surface,
		Mode:    m,
		Width:   int(width),
		Height:  int(height),
	}
	e.state = StateBound
	e.logConversion(log)
	return nil
}

// logConversion logs the matrix that maps content from the other supported
// gamut into the bound surface's gamut.
func (e *Engine) logConversion(log *slog.Logger) {
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	src := colorspace.SRGB
	if !e.rc.App().ColorSpace.Wide() {
		src = colorspace.DisplayP3
	}
	p, ok := e.rc.Pipeline(src)
	if !ok {
		return
	}
	log.Debug("widecolor: content conversion", "from", p.Source(), "to", p.Destination(), "matrix", p.Matrix())
}
