package widecolor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/widecolor/egl"
	"github.com/gogpu/widecolor/egl/egltest"
)

func newPlatform(report string, configs ...egltest.ConfigSpec) *egltest.Platform {
	return &egltest.Platform{
		Extensions: report,
		Major:      1,
		Minor:      5,
		Configs:    configs,
		Width:      1080,
		Height:     2340,
	}
}

func newLegacyPlatform() *egltest.Platform {
	return newPlatform(egltest.ReportLegacy, egltest.RGBA8)
}

func allConfigs() []egltest.ConfigSpec {
	return []egltest.ConfigSpec{egltest.RGBA8, egltest.RGB10A2, egltest.RGBA16F}
}

func surfaceTags(p *egltest.Platform) []string {
	return p.CallsMatching("CreateWindowSurface")
}

func tag(v egl.Int) string {
	return fmt.Sprintf("CreateWindowSurface %#x", v)
}

// checkClean fails when the platform saw misuse or still holds handles.
func checkClean(t *testing.T, p *egltest.Platform) {
	t.Helper()
	if len(p.Errors) != 0 {
		t.Errorf("platform misuse: %v", p.Errors)
	}
	if c, s := p.Live(); c != 0 || s != 0 {
		t.Errorf("live handles: %d contexts, %d surfaces", c, s)
	}
	if p.Open() {
		t.Error("display still open")
	}
}

func TestCreateContextPassthrough(t *testing.T) {
	p := newPlatform(egltest.ReportPassthrough, allConfigs()...)
	e := NewEngine(p, &egltest.Window{})

	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}
	if e.State() != StateBound {
		t.Errorf("State() = %v, want Bound", e.State())
	}
	if e.Mode() != ModeP3PassthroughRGBA8 {
		t.Errorf("Mode() = %v, want %v", e.Mode(), ModeP3PassthroughRGBA8)
	}
	if e.ColorSpace() != ColorSpaceP3Passthrough || e.Format() != FormatRGBA8 {
		t.Errorf("descriptor = %v/%v, want P3 passthrough/RGBA8", e.ColorSpace(), e.Format())
	}
	if w, h := e.Size(); w != 1080 || h != 2340 {
		t.Errorf("Size() = %dx%d, want 1080x2340", w, h)
	}

	want := []string{
		"GetDisplay",
		"Initialize",
		"QueryString",
		"ChooseConfig",
		"CreateContext",
		"GetConfigAttrib",
		tag(egl.GLColorspaceDisplayP3Passthrough),
		"MakeCurrent",
		"QuerySurface",
		"QuerySurface",
	}
	if !reflect.DeepEqual(p.Calls, want) {
		t.Errorf("calls:\n got %v\nwant %v", p.Calls, want)
	}

	e.DestroyContext()
	checkClean(t, p)
}

func TestCreateContextPassthroughCandidatesUsePassthroughTag(t *testing.T) {
	// Only sRGB surfaces are accepted, so every P3 candidate gets as far as
	// surface creation and the tags it asked for are visible.
	p := newPlatform(egltest.ReportPassthrough, allConfigs()...)
	p.ColorSpaces = []egl.Int{egl.GLColorspaceSRGBKHR}
	e := NewEngine(p, &egltest.Window{})

	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}

	passthrough := tag(egl.GLColorspaceDisplayP3Passthrough)
	want := []string{passthrough, passthrough, passthrough, tag(egl.GLColorspaceSRGBKHR)}
	if got := surfaceTags(p); !reflect.DeepEqual(got, want) {
		t.Errorf("surface tags = %v, want %v", got, want)
	}
	if e.Mode() != ModeSRGBRGBA8 {
		t.Errorf("Mode() = %v, want sRGB fallback", e.Mode())
	}
	// Three rejected surfaces each released their context.
	if got := len(p.CallsMatching("DestroyContext")); got != 3 {
		t.Errorf("DestroyContext calls = %d, want 3", got)
	}
	if c, s := p.Live(); c != 1 || s != 1 {
		t.Errorf("live handles = %d contexts, %d surfaces; want 1, 1", c, s)
	}

	e.DestroyContext()
	checkClean(t, p)
}

func TestCreateContextFallsThroughBitDepths(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		configs []egltest.ConfigSpec
		want    Mode
		chooses int
	}{
		{"passthrough 10-bit", egltest.ReportPassthrough, []egltest.ConfigSpec{egltest.RGB10A2}, ModeP3PassthroughRGB10A2, 2},
		{"passthrough FP16", egltest.ReportPassthrough, []egltest.ConfigSpec{egltest.RGBA16F}, ModeP3PassthroughFP16, 3},
		{"P3 8-bit", egltest.ReportDisplayP3, allConfigs(), ModeP3RGBA8, 1},
		{"P3 10-bit", egltest.ReportDisplayP3, []egltest.ConfigSpec{egltest.RGB10A2, egltest.RGBA16F}, ModeP3RGB10A2, 2},
		{"P3 FP16", egltest.ReportDisplayP3, []egltest.ConfigSpec{egltest.RGBA16F}, ModeP3FP16, 3},
		{"legacy", egltest.ReportLegacy, allConfigs(), ModeSRGBRGBA8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlatform(tt.report, tt.configs...)
			e := NewEngine(p, &egltest.Window{})
			if err := e.CreateContext(); err != nil {
				t.Fatalf("CreateContext() = %v", err)
			}
			if e.Mode() != tt.want {
				t.Errorf("Mode() = %v, want %v", e.Mode(), tt.want)
			}
			if got := len(p.CallsMatching("ChooseConfig")); got != tt.chooses {
				t.Errorf("ChooseConfig calls = %d, want %d", got, tt.chooses)
			}
			e.DestroyContext()
			checkClean(t, p)
		})
	}
}

func TestCreateContextLegacyCollapsesToSRGB(t *testing.T) {
	p := newLegacyPlatform()
	e := NewEngine(p, &egltest.Window{})

	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}
	if got := surfaceTags(p); !reflect.DeepEqual(got, []string{tag(egl.GLColorspaceSRGBKHR)}) {
		t.Errorf("surface tags = %v, want only sRGB", got)
	}
	if e.ColorSpace() != ColorSpaceSRGB || e.Format() != FormatRGBA8 {
		t.Errorf("descriptor = %v/%v, want sRGB/RGBA8", e.ColorSpace(), e.Format())
	}
	e.DestroyContext()
}

func TestCreateContextAllConfigsFail(t *testing.T) {
	p := newPlatform(egltest.ReportPassthrough, allConfigs()...)
	p.ChooseFails = true
	e := NewEngine(p, &egltest.Window{})

	err := e.CreateContext()
	if !errors.Is(err, ErrNoSupportedMode) {
		t.Fatalf("CreateContext() = %v, want ErrNoSupportedMode", err)
	}
	if !errors.Is(err, ErrNoMatchingConfig) {
		t.Errorf("error %v does not wrap ErrNoMatchingConfig", err)
	}
	var me *ModeError
	if !errors.As(err, &me) || me.Mode != ModeP3PassthroughRGBA8 {
		t.Errorf("first ModeError = %v, want mode %v", me, ModeP3PassthroughRGBA8)
	}
	if joined, ok := err.(interface{ Unwrap() []error }); !ok || len(joined.Unwrap()) != 5 {
		t.Errorf("expected sentinel plus four candidate errors, got %v", err)
	}

	if e.State() != StateFailed {
		t.Errorf("State() = %v, want Failed", e.State())
	}
	if e.Context() != (RenderingContext{}) {
		t.Errorf("Context() = %+v, want zero value", e.Context())
	}
	if e.ColorSpace() != ColorSpaceInvalid || e.Format() != FormatInvalid || e.Mode() != ModeInvalid {
		t.Errorf("descriptor not reset: %v %v %v", e.ColorSpace(), e.Format(), e.Mode())
	}
	if got := len(p.CallsMatching("ChooseConfig")); got != 4 {
		t.Errorf("ChooseConfig calls = %d, want 4", got)
	}
	if len(p.CallsMatching("CreateContext")) != 0 {
		t.Error("CreateContext called without a config")
	}
	checkClean(t, p)

	// Teardown after a failed negotiation is a no-op.
	before := len(p.Calls)
	e.DestroyContext()
	if len(p.Calls) != before {
		t.Errorf("DestroyContext after failure made calls: %v", p.Calls[before:])
	}
}

func TestCreateContextContextFailureFallsThrough(t *testing.T) {
	p := newPlatform(egltest.ReportDisplayP3, egltest.RGBA8, egltest.RGB10A2)
	p.ContextFails = func(s egltest.ConfigSpec) bool { return s == egltest.RGBA8 }
	e := NewEngine(p, &egltest.Window{})

	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}
	if e.Mode() != ModeP3RGB10A2 {
		t.Errorf("Mode() = %v, want %v", e.Mode(), ModeP3RGB10A2)
	}
	e.DestroyContext()
	checkClean(t, p)
}

func TestCreateContextGeometryFailureDestroysContext(t *testing.T) {
	p := newLegacyPlatform()
	w := &egltest.Window{Result: -1}
	e := NewEngine(p, w)

	err := e.CreateContext()
	if !errors.Is(err, ErrWindowGeometry) {
		t.Fatalf("CreateContext() = %v, want ErrWindowGeometry", err)
	}
	if got := len(p.CallsMatching("DestroyContext")); got != 1 {
		t.Errorf("DestroyContext calls = %d, want 1", got)
	}
	if got := surfaceTags(p); len(got) != 0 {
		t.Errorf("surface created after geometry failure: %v", got)
	}
	if !reflect.DeepEqual(w.Formats, []egl.Int{egltest.RGBA8.VisualID}) {
		t.Errorf("window formats = %v, want the config's visual id", w.Formats)
	}
	checkClean(t, p)
}

func TestCreateContextSurfaceFailureDestroysContext(t *testing.T) {
	p := newLegacyPlatform()
	p.ColorSpaces = []egl.Int{}
	e := NewEngine(p, &egltest.Window{})

	err := e.CreateContext()
	if !errors.Is(err, ErrSurfaceCreation) {
		t.Fatalf("CreateContext() = %v, want ErrSurfaceCreation", err)
	}
	if got := len(p.CallsMatching("DestroyContext")); got != 1 {
		t.Errorf("DestroyContext calls = %d, want 1", got)
	}
	checkClean(t, p)
}

func TestCreateContextMakeCurrentPanics(t *testing.T) {
	p := newLegacyPlatform()
	p.MakeCurrentFails = true
	e := NewEngine(p, &egltest.Window{})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic when MakeCurrent fails")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "MakeCurrent") {
			t.Errorf("panic message %q does not mention MakeCurrent", msg)
		}
	}()
	_ = e.CreateContext()
}

func TestDestroyContextOrderAndIdempotence(t *testing.T) {
	p := newPlatform(egltest.ReportDisplayP3, allConfigs()...)
	e := NewEngine(p, &egltest.Window{})
	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}

	before := len(p.Calls)
	e.DestroyContext()
	want := []string{"MakeCurrent none", "DestroyContext", "DestroySurface", "Terminate"}
	if got := p.Calls[before:]; !reflect.DeepEqual(got, want) {
		t.Errorf("teardown calls = %v, want %v", got, want)
	}
	if e.State() != StateUninitialized {
		t.Errorf("State() = %v, want Uninitialized", e.State())
	}
	if e.Context() != (RenderingContext{}) {
		t.Errorf("Context() = %+v, want zero value", e.Context())
	}

	before = len(p.Calls)
	e.DestroyContext()
	if len(p.Calls) != before {
		t.Errorf("second DestroyContext made calls: %v", p.Calls[before:])
	}
	checkClean(t, p)
}

func TestCreateContextAlreadyBound(t *testing.T) {
	p := newLegacyPlatform()
	e := NewEngine(p, &egltest.Window{})
	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}
	defer e.DestroyContext()

	if err := e.CreateContext(); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("second CreateContext() = %v, want ErrAlreadyBound", err)
	}
	if err := e.TryCreateContext(ModeSRGBRGBA8); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("TryCreateContext() while bound = %v, want ErrAlreadyBound", err)
	}
	if e.State() != StateBound {
		t.Errorf("State() = %v, want Bound", e.State())
	}
}

func TestCreateContextAfterDestroy(t *testing.T) {
	p := newPlatform(egltest.ReportDisplayP3, allConfigs()...)
	e := NewEngine(p, &egltest.Window{})

	for i := 0; i < 3; i++ {
		if err := e.CreateContext(); err != nil {
			t.Fatalf("round %d: CreateContext() = %v", i, err)
		}
		if e.Mode() != ModeP3RGBA8 {
			t.Errorf("round %d: Mode() = %v", i, e.Mode())
		}
		e.DestroyContext()
	}
	checkClean(t, p)
}

func TestTryCreateContext(t *testing.T) {
	p := newPlatform(egltest.ReportLegacy, egltest.RGBA8, egltest.RGBA16F)
	e := NewEngine(p, &egltest.Window{})

	// Extensions are not consulted for an explicit mode.
	if err := e.TryCreateContext(ModeP3FP16); err != nil {
		t.Fatalf("TryCreateContext(P3 FP16) = %v", err)
	}
	if e.Format() != FormatRGBA16F || e.ColorSpace() != ColorSpaceP3 {
		t.Errorf("descriptor = %v/%v, want P3/RGBA16F", e.ColorSpace(), e.Format())
	}
	if len(p.CallsMatching("QueryString")) != 0 {
		t.Error("TryCreateContext probed extensions")
	}
	e.DestroyContext()
	checkClean(t, p)
}

func TestTryCreateContextFailureReleasesDisplay(t *testing.T) {
	p := newLegacyPlatform()
	e := NewEngine(p, &egltest.Window{})

	err := e.TryCreateContext(ModeP3RGB10A2)
	var me *ModeError
	if !errors.As(err, &me) || me.Mode != ModeP3RGB10A2 || !errors.Is(err, ErrNoMatchingConfig) {
		t.Fatalf("TryCreateContext() = %v, want ModeError{P3/RGB10A2, ErrNoMatchingConfig}", err)
	}
	if e.State() != StateFailed {
		t.Errorf("State() = %v, want Failed", e.State())
	}
	checkClean(t, p)

	// A narrower retry reopens the display.
	if err := e.TryCreateContext(ModeSRGBRGBA8); err != nil {
		t.Fatalf("retry TryCreateContext(sRGB) = %v", err)
	}
	if got := len(p.CallsMatching("Initialize")); got != 2 {
		t.Errorf("Initialize calls = %d, want 2", got)
	}
	e.DestroyContext()
	checkClean(t, p)
}

func TestTryCreateContextInvalidModePanics(t *testing.T) {
	e := NewEngine(newLegacyPlatform(), &egltest.Window{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for ModeInvalid")
		}
	}()
	_ = e.TryCreateContext(ModeInvalid)
}

func TestCreateContextDisplayErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *egltest.Platform)
		want  error
	}{
		{"no display", func(p *egltest.Platform) { p.NoDisplay = true }, ErrNoDisplay},
		{"initialize fails", func(p *egltest.Platform) { p.InitFails = true }, ErrDisplayInit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newLegacyPlatform()
			tt.setup(p)
			e := NewEngine(p, &egltest.Window{})
			if err := e.CreateContext(); !errors.Is(err, tt.want) {
				t.Errorf("CreateContext() = %v, want %v", err, tt.want)
			}
			if e.State() != StateFailed {
				t.Errorf("State() = %v, want Failed", e.State())
			}
			if len(p.CallsMatching("ChooseConfig")) != 0 {
				t.Error("candidates attempted without a display")
			}
		})
	}
}

func TestProbe(t *testing.T) {
	p := newPlatform(egltest.ReportPassthrough, allConfigs()...)
	e := NewEngine(p, &egltest.Window{})

	for i := 0; i < 2; i++ {
		caps, err := e.Probe()
		if err != nil {
			t.Fatalf("Probe() = %v", err)
		}
		if !caps.Passthrough || !caps.DisplayP3 || !caps.FloatFormats {
			t.Errorf("Probe() = %+v, want all capabilities", caps)
		}
	}
	if e.State() != StateProbingExtensions {
		t.Errorf("State() = %v, want ProbingExtensions", e.State())
	}
	if got := len(p.CallsMatching("Initialize")); got != 1 {
		t.Errorf("Initialize calls = %d, want 1", got)
	}
	if got := len(p.CallsMatching("QueryString")); got != 2 {
		t.Errorf("QueryString calls = %d, want 2", got)
	}
	if e.Capabilities() != (egl.Capabilities{Passthrough: true, DisplayP3: true, FloatFormats: true}) {
		t.Errorf("Capabilities() = %+v", e.Capabilities())
	}

	// A probed display is released by DestroyContext.
	e.DestroyContext()
	checkClean(t, p)
}

func TestWithCandidates(t *testing.T) {
	p := newPlatform(egltest.ReportLegacy, allConfigs()...)
	e := NewEngine(p, &egltest.Window{}, WithCandidates(ModeP3RGB10A2, ModeSRGBRGBA8))

	if err := e.CreateContext(); err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}
	if e.Mode() != ModeP3RGB10A2 {
		t.Errorf("Mode() = %v, want %v", e.Mode(), ModeP3RGB10A2)
	}
	e.DestroyContext()

	empty := NewEngine(p, &egltest.Window{}, WithCandidates())
	if err := empty.CreateContext(); !errors.Is(err, ErrNoSupportedMode) {
		t.Errorf("CreateContext() with no candidates = %v, want ErrNoSupportedMode", err)
	}
	checkClean(t, p)
}

func TestWithTokenizedExtensions(t *testing.T) {
	// The P3 extension only appears as a prefix of a longer name.
	report := "EGL_KHR_gl_colorspace EGL_EXT_gl_colorspace_display_p3_linear"

	tests := []struct {
		name string
		opts []Option
		want Mode
	}{
		{"substring", nil, ModeP3RGBA8},
		{"tokenized", []Option{WithTokenizedExtensions()}, ModeSRGBRGBA8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlatform(report, allConfigs()...)
			e := NewEngine(p, &egltest.Window{}, tt.opts...)
			if err := e.CreateContext(); err != nil {
				t.Fatalf("CreateContext() = %v", err)
			}
			if e.Mode() != tt.want {
				t.Errorf("Mode() = %v, want %v", e.Mode(), tt.want)
			}
			e.DestroyContext()
		})
	}
}

func TestNewEnginePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil platform", func() { NewEngine(nil, &egltest.Window{}) }},
		{"nil window", func() { NewEngine(newLegacyPlatform(), nil) }},
		{"invalid candidate", func() { NewEngine(newLegacyPlatform(), &egltest.Window{}, WithCandidates(ModeP3RGBA8, Mode(42))) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateUninitialized:     "Uninitialized",
		StateProbingExtensions: "ProbingExtensions",
		StateAttemptingMode:    "AttemptingMode",
		StateBound:             "Bound",
		StateFailed:            "Failed",
		State(9):               "State(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestModeErrorMessage(t *testing.T) {
	err := &ModeError{Mode: ModeP3RGB10A2, Err: ErrSurfaceCreation}
	if got, want := err.Error(), "mode P3/RGB10A2: widecolor: surface creation failed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrSurfaceCreation) {
		t.Error("ModeError does not unwrap to its cause")
	}
}
