package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/widecolor"
	"github.com/gogpu/widecolor/colorspace"
	"github.com/gogpu/widecolor/egl/egltest"
	"github.com/gogpu/widecolor/shader"
)

var reports = map[string]string{
	"passthrough": egltest.ReportPassthrough,
	"p3":          egltest.ReportDisplayP3,
	"legacy":      egltest.ReportLegacy,
}

var configSpecs = map[string]egltest.ConfigSpec{
	"rgba8":   egltest.RGBA8,
	"rgb10a2": egltest.RGB10A2,
	"rgba16f": egltest.RGBA16F,
}

func runNegotiate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("negotiate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		report  = fs.String("report", "passthrough", "extension report: passthrough, p3 or legacy")
		configs = fs.String("configs", "rgba8,rgb10a2,rgba16f", "framebuffer configs the display offers")
		mode    = fs.String("mode", "", "attempt only this mode, e.g. P3/RGB10A2")
		verbose = fs.Bool("v", false, "log negotiation steps")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ext, ok := reports[*report]
	if !ok {
		return fmt.Errorf("unknown report %q", *report)
	}
	platform := &egltest.Platform{
		Extensions: ext,
		Major:      1,
		Minor:      5,
		Width:      1080,
		Height:     2340,
	}
	for _, name := range strings.Split(*configs, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		spec, ok := configSpecs[name]
		if !ok {
			return fmt.Errorf("unknown config %q", name)
		}
		platform.Configs = append(platform.Configs, spec)
	}

	var opts []widecolor.Option
	if *verbose {
		opts = append(opts, widecolor.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	e := widecolor.NewEngine(platform, &egltest.Window{}, opts...)
	defer e.DestroyContext()

	var err error
	if *mode != "" {
		m, ok := parseMode(*mode)
		if !ok {
			return fmt.Errorf("unknown mode %q", *mode)
		}
		err = e.TryCreateContext(m)
	} else {
		err = e.CreateContext()
	}
	if err != nil {
		return err
	}

	rc := e.Context()
	w, h := e.Size()
	field := func(name string, v any) {
		fmt.Fprintf(stdout, "%-16s%v\n", name+":", v)
	}
	field("mode", e.Mode())
	field("size", fmt.Sprintf("%dx%d", w, h))
	field("surface format", rc.SurfaceFormat())
	field("image format", rc.ImageTextureFormat())

	prog, err := shader.ForColorSpace(e.ColorSpace(), colorspace.SRGB)
	if err != nil {
		return err
	}
	field("sRGB content", prog.Kind)
	if prog.Kind == shader.KindGamutConvert {
		field("matrix", prog.Matrix)
	}
	return nil
}

// parseMode matches the names printed by Mode.String, ignoring case.
func parseMode(s string) (widecolor.Mode, bool) {
	for _, m := range widecolor.Modes() {
		if strings.EqualFold(m.String(), s) {
			return m, true
		}
	}
	return widecolor.ModeInvalid, false
}
