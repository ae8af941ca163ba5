package widecolor

import (
	"errors"
	"fmt"
)

// Candidate-level failures. Negotiation recovers from these by moving on to
// the next candidate; they reach the caller wrapped in a *ModeError.
var (
	// ErrNoMatchingConfig is returned when the display does not offer
	// exactly one configuration with the mode's bit depths.
	ErrNoMatchingConfig = errors.New("widecolor: no matching config")

	// ErrContextCreation is returned when the platform rejects the context.
	ErrContextCreation = errors.New("widecolor: context creation failed")

	// ErrWindowGeometry is returned when the native window rejects the
	// config's visual format.
	ErrWindowGeometry = errors.New("widecolor: window geometry rejected")

	// ErrSurfaceCreation is returned when the platform rejects a window
	// surface with the mode's color space tag.
	ErrSurfaceCreation = errors.New("widecolor: surface creation failed")
)

// Engine-level failures.
var (
	// ErrNoDisplay is returned when the platform has no default display.
	ErrNoDisplay = errors.New("widecolor: no display")

	// ErrDisplayInit is returned when the display connection cannot be
	// initialized.
	ErrDisplayInit = errors.New("widecolor: display initialization failed")

	// ErrNoSupportedMode is returned when every candidate mode failed.
	// The returned error also wraps each candidate's *ModeError.
	ErrNoSupportedMode = errors.New("widecolor: no supported color mode")

	// ErrAlreadyBound is returned when negotiation is requested while a
	// context is bound. Call DestroyContext first.
	ErrAlreadyBound = errors.New("widecolor: context already bound")
)

// ModeError records why a single candidate mode failed.
type ModeError struct {
	Mode Mode
	Err  error
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("mode %s: %v", e.Mode, e.Err)
}

func (e *ModeError) Unwrap() error {
	return e.Err
}
