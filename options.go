package widecolor

import (
	"log/slog"

	"github.com/gogpu/widecolor/egl"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Default negotiation
//	e := widecolor.NewEngine(platform, window)
//
//	// Only try 10-bit P3, then give up
//	e := widecolor.NewEngine(platform, window,
//	    widecolor.WithCandidates(widecolor.ModeP3RGB10A2))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	logger        *slog.Logger
	candidates    []Mode
	match         egl.Matcher
	clientVersion egl.Int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		match:         egl.HasExtensions,
		clientVersion: 3, // OpenGL ES 3
	}
}

// WithLogger sets a logger for this engine only, overriding the package
// logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithCandidates replaces the probed candidate list. Modes are attempted
// in the given order regardless of the reported extensions. Passing an
// invalid mode panics in NewEngine.
func WithCandidates(modes ...Mode) Option {
	return func(o *engineOptions) {
		o.candidates = append([]Mode{}, modes...)
	}
}

// WithTokenizedExtensions matches required extensions against whole
// tokens of the extension report instead of substrings.
func WithTokenizedExtensions() Option {
	return func(o *engineOptions) {
		o.match = egl.HasExtensionTokens
	}
}

// WithClientVersion sets the requested OpenGL ES client version.
// The default is 3.
func WithClientVersion(major int) Option {
	return func(o *engineOptions) {
		o.clientVersion = egl.Int(major)
	}
}
