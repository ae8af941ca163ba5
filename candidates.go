package widecolor

import "github.com/gogpu/widecolor/egl"

// defaultCandidates is the negotiation order on a display that supports
// Display P3.
var defaultCandidates = [...]Mode{
	ModeP3RGBA8,
	ModeP3RGB10A2,
	ModeP3FP16,
	ModeSRGBRGBA8,
}

// CandidateModes returns the ordered list of modes to attempt for a display
// with the given capabilities.
//
//   - Passthrough support turns every P3 candidate into its passthrough
//     equivalent with the same bit depths.
//   - Without Display P3 support only the sRGB fallback remains.
//
// The sRGB fallback is always last. The result is a new slice.
func CandidateModes(caps egl.Capabilities) []Mode {
	switch {
	case caps.Passthrough:
		out := make([]Mode, len(defaultCandidates))
		for i, m := range defaultCandidates {
			out[i] = m.Passthrough()
		}
		return out
	case caps.DisplayP3:
		return append([]Mode(nil), defaultCandidates[:]...)
	default:
		return []Mode{ModeSRGBRGBA8}
	}
}
