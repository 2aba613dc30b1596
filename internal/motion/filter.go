package motion

import (
	"math"

	"wall-overlay/internal/config"
)

// Sample is one gravity reading from a motion source, as a unit vector in
// the device frame: +X right, +Y up, +Z out of the screen. Samples are
// ephemeral; only the filter state survives them.
type Sample struct {
	GravityX float64 `json:"gx"`
	GravityY float64 `json:"gy"`
	GravityZ float64 `json:"gz"`
}

// LevelFilter low-pass-filters raw device roll into a stable auto-level
// correction angle. Unreliable readings (device held close to face-up, where
// almost no gravity lies in the screen plane) are confidence-gated toward
// zero instead of producing a wild correction.
//
// Not safe for concurrent use; the host delivers samples on its single
// update goroutine.
type LevelFilter struct {
	smoothedRoll float64
}

// NewLevelFilter returns a filter at rest (zero correction).
func NewLevelFilter() *LevelFilter {
	return &LevelFilter{}
}

// Update feeds one gravity sample through the filter and returns the new
// smoothed roll.
func (f *LevelFilter) Update(s Sample) float64 {
	raw := math.Atan2(s.GravityX, -s.GravityY)
	raw = clamp(raw, -config.AutoLevelClampRad, config.AutoLevelClampRad)

	// How much of gravity lies in the screen plane. Near zero the device is
	// face-up or face-down and the roll reading is meaningless.
	mag := math.Hypot(s.GravityX, s.GravityY)
	confidence := clamp((mag-config.ConfidenceFloor)/config.ConfidenceRamp, 0, 1)

	target := raw * confidence

	// Blend along the shortest angular path so corrections crossing ±π
	// never swing the long way around.
	delta := ShortestDelta(f.smoothedRoll, target)
	f.smoothedRoll += delta * config.SmoothingFactor
	return f.smoothedRoll
}

// SmoothedRoll returns the current filtered roll in radians.
func (f *LevelFilter) SmoothedRoll() float64 { return f.smoothedRoll }

// Correction returns the rotation to apply to the overlay: the negation of
// the smoothed roll, so the image counter-rotates against device tilt.
func (f *LevelFilter) Correction() float64 { return -f.smoothedRoll }

// Reset zeroes the filter state. Called whenever motion sensing stops.
func (f *LevelFilter) Reset() { f.smoothedRoll = 0 }

// NormalizeAngle wraps an angle into (-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// ShortestDelta returns the signed smallest rotation from a to b, in
// (-π, π].
func ShortestDelta(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
