package overlay

import (
	"wall-overlay/internal/config"
)

// Transform holds the user-adjustable placement state for the route
// template: accumulated pan offset plus any in-flight drag delta, the two
// perspective tilt sliders, the auto-level correction, and the display
// layer toggles. It owns only placement math and state; drawing happens
// elsewhere.
//
// Not safe for concurrent use; all mutation happens on the host's single
// update goroutine.
type Transform struct {
	panX, panY   float64 // accumulated pan, px
	dragX, dragY float64 // in-flight drag delta, px
	dragging     bool

	hTiltDeg float64 // rotation about the vertical axis, ±TiltLimitDeg
	vTiltDeg float64 // rotation about the horizontal axis, ±TiltLimitDeg

	autoLevel      bool
	autoLevelAngle float64 // radians, from the motion filter

	tint       int
	showGrid   bool
	showLabels bool
}

// NewTransform returns a transform at defaults: centered, level, untinted,
// grid and labels visible.
func NewTransform() *Transform {
	t := &Transform{}
	t.Reset()
	return t
}

// Reset restores every field to its default. Called when calibration is
// reset or the app returns to calibration mode.
func (t *Transform) Reset() {
	t.panX, t.panY = 0, 0
	t.dragX, t.dragY = 0, 0
	t.dragging = false
	t.hTiltDeg, t.vTiltDeg = 0, 0
	t.autoLevel = false
	t.autoLevelAngle = 0
	t.tint = 0
	t.showGrid = true
	t.showLabels = true
}

// PanOffset returns the effective pan: accumulated plus in-flight drag.
func (t *Transform) PanOffset() (x, y float64) {
	return t.panX + t.dragX, t.panY + t.dragY
}

// BeginDrag starts a pan gesture.
func (t *Transform) BeginDrag() {
	t.dragging = true
	t.dragX, t.dragY = 0, 0
}

// Drag updates the in-flight delta of the current pan gesture.
func (t *Transform) Drag(dx, dy float64) {
	if !t.dragging {
		return
	}
	t.dragX, t.dragY = dx, dy
}

// EndDrag folds the in-flight delta into the accumulated pan and clamps it
// so the overlay cannot be stranded off-screen.
func (t *Transform) EndDrag(ppm, screenW, screenH float64) {
	if !t.dragging {
		return
	}
	t.panX += t.dragX
	t.panY += t.dragY
	t.dragX, t.dragY = 0, 0
	t.dragging = false
	t.ClampToScreen(ppm, screenW, screenH)
}

// ClampToScreen constrains the accumulated pan so that at least
// config.PanMarginPx of the rendered overlay stays inside the screen on
// every edge. Re-applied whenever the screen size changes.
func (t *Transform) ClampToScreen(ppm, screenW, screenH float64) {
	w := config.TemplateWidthM * ppm
	h := config.TemplateHeightM * ppm
	if w <= 0 || h <= 0 {
		return
	}

	cx := screenW / 2
	cy := screenH / 2

	t.panX = clampPan(t.panX, cx, w, screenW)
	t.panY = clampPan(t.panY, cy, h, screenH)
}

// clampPan bounds one pan axis. The overlay edge nearest the screen must
// reach at least PanMarginPx past the screen edge it is leaving through.
func clampPan(pan, center, size, screen float64) float64 {
	margin := config.PanMarginPx
	if margin > size {
		margin = size
	}

	lo := margin - center - size/2          // overlay's far edge ≥ margin inside from the left
	hi := screen - margin - center + size/2 // overlay's near edge ≤ screen-margin from the left

	if lo > hi {
		return (lo + hi) / 2
	}
	if pan < lo {
		return lo
	}
	if pan > hi {
		return hi
	}
	return pan
}

// SetHorizontalTilt sets the horizontal tilt slider, clamped to the limit.
func (t *Transform) SetHorizontalTilt(deg float64) {
	t.hTiltDeg = clampTilt(deg)
}

// SetVerticalTilt sets the vertical tilt slider, clamped to the limit.
func (t *Transform) SetVerticalTilt(deg float64) {
	t.vTiltDeg = clampTilt(deg)
}

// NudgeTilts adjusts both sliders by deltas, clamped.
func (t *Transform) NudgeTilts(dhDeg, dvDeg float64) {
	t.SetHorizontalTilt(t.hTiltDeg + dhDeg)
	t.SetVerticalTilt(t.vTiltDeg + dvDeg)
}

// ResetHorizontalTilt snaps the horizontal slider back to 0.
func (t *Transform) ResetHorizontalTilt() { t.hTiltDeg = 0 }

// ResetVerticalTilt snaps the vertical slider back to 0.
func (t *Transform) ResetVerticalTilt() { t.vTiltDeg = 0 }

// HorizontalTilt returns the horizontal tilt slider in degrees.
func (t *Transform) HorizontalTilt() float64 { return t.hTiltDeg }

// VerticalTilt returns the vertical tilt slider in degrees.
func (t *Transform) VerticalTilt() float64 { return t.vTiltDeg }

// SetAutoLevel enables or disables the auto-level rotation. Disabling
// zeroes the stored correction immediately.
func (t *Transform) SetAutoLevel(on bool) {
	t.autoLevel = on
	if !on {
		t.autoLevelAngle = 0
	}
}

// AutoLevel reports whether auto-level is enabled.
func (t *Transform) AutoLevel() bool { return t.autoLevel }

// SetAutoLevelAngle stores the latest correction from the motion filter.
// Ignored while auto-level is off.
func (t *Transform) SetAutoLevelAngle(rad float64) {
	if t.autoLevel {
		t.autoLevelAngle = rad
	}
}

// AutoLevelAngle returns the effective auto-level rotation in radians.
func (t *Transform) AutoLevelAngle() float64 {
	if !t.autoLevel {
		return 0
	}
	return t.autoLevelAngle
}

// CycleTint advances the overlay tint selection.
func (t *Transform) CycleTint() {
	t.tint = (t.tint + 1) % len(config.TintNames)
}

// Tint returns the current tint index into config.TintNames.
func (t *Transform) Tint() int { return t.tint }

// ToggleGrid flips the grid layer visibility.
func (t *Transform) ToggleGrid() { t.showGrid = !t.showGrid }

// ToggleLabels flips the label layer visibility.
func (t *Transform) ToggleLabels() { t.showLabels = !t.showLabels }

// ShowGrid reports grid layer visibility.
func (t *Transform) ShowGrid() bool { return t.showGrid }

// ShowLabels reports label layer visibility.
func (t *Transform) ShowLabels() bool { return t.showLabels }

func clampTilt(deg float64) float64 {
	if deg < -config.TiltLimitDeg {
		return -config.TiltLimitDeg
	}
	if deg > config.TiltLimitDeg {
		return config.TiltLimitDeg
	}
	return deg
}
