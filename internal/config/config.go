package config

import "math"

const (
	// Route template real-world dimensions. A standard speed-wall lane is
	// 3 m wide and 15 m tall.
	TemplateWidthM  = 3.0
	TemplateHeightM = 15.0

	// Calibration
	MinCalibrationPx = 1.0 // Point pairs closer than this are rejected as degenerate

	// Auto-level filter
	SmoothingFactor   = 0.15        // EMA blend per sample (15% new, 85% old)
	AutoLevelClampRad = math.Pi / 4 // Raw roll clamp (±45°)
	ConfidenceFloor   = 0.25        // In-plane gravity magnitude below this is untrusted
	ConfidenceRamp    = 0.4         // Magnitude span over which confidence ramps 0→1
	MotionRateHz      = 60          // Nominal motion sample rate

	// Overlay transform
	TiltLimitDeg   = 45.0   // Horizontal/vertical tilt slider bounds (±)
	PanMarginPx    = 100.0  // Overlay pixels that must stay on screen per edge
	PerspectiveEye = 1200.0 // Eye distance for the pseudo-3D tilt projection (px)
	GridSpacingM   = 0.5    // Meter grid line spacing on the overlay

	// Viewfinder display
	TargetFPS = 30 // Target frames per second

	// History
	RollHistorySize = 120 // Recent auto-level corrections kept for the sparkline

	// App
	AppName    = "WALL-OVERLAY"
	AppVersion = "1.0"
)

// TintNames are the selectable overlay tint labels, cycled by the tint key.
var TintNames = []string{"red", "green", "blue", "yellow", "white"}
