package calibrate

import (
	"math"
	"testing"
)

func TestTwoTapProgression(t *testing.T) {
	s := NewSession()

	if _, ok := s.State().(WaitingFirstPoint); !ok {
		t.Fatalf("initial state = %s, want waiting for first point", s.State().Name())
	}
	if got := s.Points(); got != nil {
		t.Fatalf("expected no points initially, got %d", len(got))
	}

	s.RecordTap(10, 20)
	if _, ok := s.State().(WaitingSecondPoint); !ok {
		t.Fatalf("after 1 tap state = %s", s.State().Name())
	}
	if got := len(s.Points()); got != 1 {
		t.Fatalf("after 1 tap points = %d, want 1", got)
	}

	s.RecordTap(310, 20)
	if _, ok := s.State().(WaitingDistance); !ok {
		t.Fatalf("after 2 taps state = %s", s.State().Name())
	}
	if got := len(s.Points()); got != 2 {
		t.Fatalf("after 2 taps points = %d, want 2", got)
	}

	// Further taps are ignored.
	s.RecordTap(500, 500)
	if got := len(s.Points()); got != 2 {
		t.Fatalf("tap while waiting for distance recorded a point")
	}
	pts := s.Points()
	if pts[0].X != 10 || pts[1].X != 310 {
		t.Fatalf("tap while waiting for distance moved a point: %+v", pts)
	}
}

func TestConfirmDistanceDerivesScale(t *testing.T) {
	s := NewSession()
	s.RecordTap(0, 0)
	s.RecordTap(300, 0)

	if err := s.ConfirmDistance(1.0); err != nil {
		t.Fatalf("ConfirmDistance: %v", err)
	}
	if !s.IsCalibrated() {
		t.Fatal("expected calibrated session")
	}
	if got := s.PixelsPerMeter(); got != 300.0 {
		t.Fatalf("PixelsPerMeter = %v, want 300", got)
	}
	if got := s.KnownMeters(); got != 1.0 {
		t.Fatalf("KnownMeters = %v, want 1", got)
	}

	// Tap after completion is a no-op.
	s.RecordTap(5, 5)
	if got := s.PixelsPerMeter(); got != 300.0 {
		t.Fatalf("tap after completion changed scale to %v", got)
	}
}

func TestConfirmDistanceDiagonal(t *testing.T) {
	s := NewSession()
	s.RecordTap(0, 0)
	s.RecordTap(30, 40)

	if err := s.ConfirmDistance(0.5); err != nil {
		t.Fatalf("ConfirmDistance: %v", err)
	}
	if got := s.PixelsPerMeter(); math.Abs(got-100.0) > 1e-9 {
		t.Fatalf("PixelsPerMeter = %v, want 100", got)
	}
}

func TestConfirmDistanceRejections(t *testing.T) {
	s := NewSession()

	// Wrong state.
	if err := s.ConfirmDistance(1.0); err != ErrNotReady {
		t.Fatalf("ConfirmDistance before taps = %v, want ErrNotReady", err)
	}

	s.RecordTap(0, 0)
	s.RecordTap(300, 0)

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := s.ConfirmDistance(bad); err != ErrInvalidDistance {
			t.Fatalf("ConfirmDistance(%v) = %v, want ErrInvalidDistance", bad, err)
		}
		if _, ok := s.State().(WaitingDistance); !ok {
			t.Fatalf("rejection changed state to %s", s.State().Name())
		}
	}

	// A valid confirm still works after rejections.
	if err := s.ConfirmDistance(2.0); err != nil {
		t.Fatalf("ConfirmDistance after rejections: %v", err)
	}
	if got := s.PixelsPerMeter(); got != 150.0 {
		t.Fatalf("PixelsPerMeter = %v, want 150", got)
	}
}

func TestDegeneratePointsRejected(t *testing.T) {
	s := NewSession()
	s.RecordTap(100, 100)
	s.RecordTap(100, 100)

	if err := s.ConfirmDistance(1.0); err != ErrDegeneratePoints {
		t.Fatalf("ConfirmDistance on coincident points = %v, want ErrDegeneratePoints", err)
	}
	if s.IsCalibrated() {
		t.Fatal("degenerate calibration must not complete")
	}
	if _, ok := s.State().(WaitingDistance); !ok {
		t.Fatalf("rejection changed state to %s", s.State().Name())
	}
}

func TestMovePointRecomputesScale(t *testing.T) {
	s := NewSession()
	s.RecordTap(0, 0)
	s.RecordTap(300, 0)
	if err := s.ConfirmDistance(1.0); err != nil {
		t.Fatalf("ConfirmDistance: %v", err)
	}

	if err := s.MovePoint(1, 600, 0); err != nil {
		t.Fatalf("MovePoint: %v", err)
	}
	if got := s.PixelsPerMeter(); got != 600.0 {
		t.Fatalf("PixelsPerMeter after move = %v, want 600", got)
	}
	if !s.IsCalibrated() {
		t.Fatal("session must stay calibrated after point move")
	}

	if err := s.MovePoint(0, 300, 0); err != nil {
		t.Fatalf("MovePoint: %v", err)
	}
	if got := s.PixelsPerMeter(); got != 300.0 {
		t.Fatalf("PixelsPerMeter after second move = %v, want 300", got)
	}

	// Moving onto the other point would be degenerate; rejected, scale kept.
	if err := s.MovePoint(0, 600, 0); err != ErrDegeneratePoints {
		t.Fatalf("degenerate move = %v, want ErrDegeneratePoints", err)
	}
	if got := s.PixelsPerMeter(); got != 300.0 {
		t.Fatalf("rejected move changed scale to %v", got)
	}

	if err := s.MovePoint(2, 0, 0); err == nil {
		t.Fatal("MovePoint(2) expected index error")
	}
}

func TestMovePointRequiresCompletion(t *testing.T) {
	s := NewSession()
	s.RecordTap(0, 0)
	if err := s.MovePoint(0, 5, 5); err != ErrNotReady {
		t.Fatalf("MovePoint before completion = %v, want ErrNotReady", err)
	}
	pts := s.Points()
	if pts[0].X != 0 || pts[0].Y != 0 {
		t.Fatalf("rejected move changed a point: %+v", pts[0])
	}
}

func TestResetFromEveryState(t *testing.T) {
	build := []func(*Session){
		func(*Session) {},
		func(s *Session) { s.RecordTap(0, 0) },
		func(s *Session) { s.RecordTap(0, 0); s.RecordTap(300, 0) },
		func(s *Session) {
			s.RecordTap(0, 0)
			s.RecordTap(300, 0)
			if err := s.ConfirmDistance(1.0); err != nil {
				panic(err)
			}
		},
	}

	for i, setup := range build {
		s := NewSession()
		setup(s)
		s.Reset()

		if _, ok := s.State().(WaitingFirstPoint); !ok {
			t.Fatalf("case %d: reset state = %s", i, s.State().Name())
		}
		if s.Points() != nil {
			t.Fatalf("case %d: reset left points behind", i)
		}
		if s.PixelsPerMeter() != 0 {
			t.Fatalf("case %d: reset left scale %v", i, s.PixelsPerMeter())
		}

		// Idempotent.
		s.Reset()
		if _, ok := s.State().(WaitingFirstPoint); !ok {
			t.Fatalf("case %d: double reset state = %s", i, s.State().Name())
		}
	}
}

func TestOnChangeNotification(t *testing.T) {
	s := NewSession()
	fired := 0
	s.OnChange = func() { fired++ }

	s.RecordTap(0, 0)  // fires
	s.RecordTap(10, 0) // fires
	s.RecordTap(20, 0) // ignored, no fire
	if err := s.ConfirmDistance(-1); err == nil {
		t.Fatal("expected rejection")
	} // no fire
	if err := s.ConfirmDistance(1); err != nil {
		t.Fatalf("ConfirmDistance: %v", err)
	} // fires
	s.Reset() // fires

	if fired != 4 {
		t.Fatalf("OnChange fired %d times, want 4", fired)
	}
}
