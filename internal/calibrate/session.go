package calibrate

import (
	"errors"
	"math"
	"time"

	"wall-overlay/internal/config"
)

var (
	// ErrInvalidDistance is returned for a non-positive or non-finite
	// real-world distance.
	ErrInvalidDistance = errors.New("distance must be a positive finite number")

	// ErrDegeneratePoints is returned when the two calibration points are
	// too close together to derive a usable scale.
	ErrDegeneratePoints = errors.New("calibration points are too close together")

	// ErrNotReady is returned when an operation requires a state the
	// session has not reached.
	ErrNotReady = errors.New("calibration not in the required state")
)

// Session drives the two-tap-plus-distance calibration workflow and owns
// the derived pixels-per-meter scale. It carries no UI dependency; hosts
// observe changes through OnChange or by polling the queries.
//
// Session is not safe for concurrent use. All mutation is expected to happen
// on the host's single update goroutine.
type Session struct {
	state State

	// OnChange, when set, is called after every successful mutation.
	OnChange func()
}

// NewSession returns a session waiting for the first tap.
func NewSession() *Session {
	return &Session{state: WaitingFirstPoint{}}
}

// State returns the current workflow state.
func (s *Session) State() State { return s.state }

// RecordTap records a calibration point at the given screen position.
// Taps are only meaningful while waiting for a point; in any other state
// the tap is silently ignored so a stray one cannot disturb a finished
// calibration.
func (s *Session) RecordTap(x, y float64) {
	switch st := s.state.(type) {
	case WaitingFirstPoint:
		s.state = WaitingSecondPoint{First: Point{X: x, Y: y, At: time.Now()}}
	case WaitingSecondPoint:
		s.state = WaitingDistance{First: st.First, Second: Point{X: x, Y: y, At: time.Now()}}
	default:
		return
	}
	s.notify()
}

// ConfirmDistance confirms the real-world distance in meters between the two
// recorded points and derives pixels-per-meter. The distance must be positive
// and finite, and the points must not be degenerate; on rejection the state
// is left unchanged.
func (s *Session) ConfirmDistance(meters float64) error {
	st, ok := s.state.(WaitingDistance)
	if !ok {
		return ErrNotReady
	}
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters <= 0 {
		return ErrInvalidDistance
	}

	px := pixelDistance(st.First, st.Second)
	if px < config.MinCalibrationPx {
		return ErrDegeneratePoints
	}

	s.state = Complete{
		First:          st.First,
		Second:         st.Second,
		KnownMeters:    meters,
		PixelsPerMeter: px / meters,
	}
	s.notify()
	return nil
}

// MovePoint overwrites the position of calibration point 0 or 1 after
// completion and recomputes the scale from the stored real-world distance.
// This is the only path that changes calibration geometry without re-running
// the tap workflow. A no-op unless calibrated.
func (s *Session) MovePoint(index int, x, y float64) error {
	st, ok := s.state.(Complete)
	if !ok {
		return ErrNotReady
	}

	switch index {
	case 0:
		st.First.X, st.First.Y = x, y
	case 1:
		st.Second.X, st.Second.Y = x, y
	default:
		return errors.New("point index must be 0 or 1")
	}

	px := pixelDistance(st.First, st.Second)
	if px < config.MinCalibrationPx {
		return ErrDegeneratePoints
	}

	st.PixelsPerMeter = px / st.KnownMeters
	s.state = st
	s.notify()
	return nil
}

// Reset clears the calibration unconditionally, from any state.
func (s *Session) Reset() {
	s.state = WaitingFirstPoint{}
	s.notify()
}

// IsCalibrated reports whether a usable scale exists.
func (s *Session) IsCalibrated() bool {
	st, ok := s.state.(Complete)
	return ok && st.PixelsPerMeter > 0
}

// PixelsPerMeter returns the derived scale, or 0 when not calibrated.
func (s *Session) PixelsPerMeter() float64 {
	if st, ok := s.state.(Complete); ok {
		return st.PixelsPerMeter
	}
	return 0
}

// KnownMeters returns the confirmed real-world distance, or 0 when not
// calibrated.
func (s *Session) KnownMeters() float64 {
	if st, ok := s.state.(Complete); ok {
		return st.KnownMeters
	}
	return 0
}

// Points returns the recorded calibration points in order. Zero, one or two
// points exist depending on how far the workflow has progressed.
func (s *Session) Points() []Point {
	switch st := s.state.(type) {
	case WaitingSecondPoint:
		return []Point{st.First}
	case WaitingDistance:
		return []Point{st.First, st.Second}
	case Complete:
		return []Point{st.First, st.Second}
	}
	return nil
}

func (s *Session) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func pixelDistance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
