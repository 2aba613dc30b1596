package calibrate

import "time"

// Point is a calibration mark in virtual screen pixels.
type Point struct {
	X, Y float64
	At   time.Time
}

// State is the calibration workflow state. Exactly one variant is active at
// a time, and a variant carries the points that exist in that state; a point
// cannot exist without the state that recorded it.
type State interface {
	// Name returns a short display label for the state.
	Name() string

	isState()
}

// WaitingFirstPoint is the initial state: no points recorded.
type WaitingFirstPoint struct{}

// WaitingSecondPoint holds the first recorded point.
type WaitingSecondPoint struct {
	First Point
}

// WaitingDistance holds both points while the real-world distance between
// them is being entered.
type WaitingDistance struct {
	First  Point
	Second Point
}

// Complete holds the final calibration: both points (still adjustable, see
// Session.MovePoint), the confirmed real-world distance, and the derived
// scale factor.
type Complete struct {
	First          Point
	Second         Point
	KnownMeters    float64
	PixelsPerMeter float64
}

func (WaitingFirstPoint) Name() string  { return "tap point 1" }
func (WaitingSecondPoint) Name() string { return "tap point 2" }
func (WaitingDistance) Name() string    { return "enter distance" }
func (Complete) Name() string           { return "calibrated" }

func (WaitingFirstPoint) isState()  {}
func (WaitingSecondPoint) isState() {}
func (WaitingDistance) isState()    {}
func (Complete) isState()           {}
