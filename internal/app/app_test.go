package app

import (
	"math"
	"testing"

	"wall-overlay/internal/camera"
	"wall-overlay/internal/units"
)

func newTestModel() AppModel {
	return New(camera.NewMockFeed(), nil, nil, true, "demo")
}

func TestRollRingWraps(t *testing.T) {
	r := NewRollRing(4)
	for i := 1; i <= 6; i++ {
		r.Push(float64(i))
	}

	if r.Len() != 4 {
		t.Fatalf("Len = %d, want 4", r.Len())
	}
	if r.Last() != 6 {
		t.Fatalf("Last = %v, want 6", r.Last())
	}

	want := []float64{3, 4, 5, 6}
	got := r.Values()
	if len(got) != len(want) {
		t.Fatalf("Values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	r.Reset()
	if r.Len() != 0 || r.Values() != nil {
		t.Fatalf("after Reset: Len = %d, Values = %v", r.Len(), r.Values())
	}
}

func TestDistanceEntryRejectsJunk(t *testing.T) {
	m := newTestModel()
	m.shared.session.RecordTap(0, 0)
	m.shared.session.RecordTap(300, 0)

	for _, text := range []string{"", "abc", "0", "0.0", "..", "1.2.3"} {
		m.entryText = text
		m.confirmDistance()
		if m.entryErr == "" {
			t.Fatalf("entry %q: expected an error message", text)
		}
		if m.mode != ModeCalibrate {
			t.Fatalf("entry %q: mode = %v, want ModeCalibrate", text, m.mode)
		}
	}
	if m.shared.session.IsCalibrated() {
		t.Fatal("session calibrated after rejected entries")
	}
}

func TestDistanceEntryConfirms(t *testing.T) {
	m := newTestModel()
	m.shared.session.RecordTap(0, 0)
	m.shared.session.RecordTap(300, 0)

	m.entryText = "1"
	m.confirmDistance()

	if m.mode != ModeOverlay {
		t.Fatalf("mode = %v, want ModeOverlay", m.mode)
	}
	if ppm := m.shared.session.PixelsPerMeter(); math.Abs(ppm-300) > 1e-9 {
		t.Fatalf("PixelsPerMeter = %v, want 300", ppm)
	}
	if m.entryErr != "" || m.entryText != "" {
		t.Fatalf("entry not cleared: text=%q err=%q", m.entryText, m.entryErr)
	}
}

func TestDistanceEntryConvertsUnits(t *testing.T) {
	m := newTestModel()
	m.shared.session.RecordTap(0, 0)
	m.shared.session.RecordTap(300, 0)

	// 100 cm is 1 m, so 300 px over it is still 300 px/m.
	for i, u := range units.All {
		if u == units.Centimeters {
			m.entryUnit = i
		}
	}
	m.entryText = "100"
	m.confirmDistance()

	if ppm := m.shared.session.PixelsPerMeter(); math.Abs(ppm-300) > 1e-9 {
		t.Fatalf("PixelsPerMeter = %v, want 300", ppm)
	}
}

func TestRecalibrateClearsEverything(t *testing.T) {
	m := newTestModel()
	m.shared.session.RecordTap(0, 0)
	m.shared.session.RecordTap(300, 0)
	m.entryText = "1"
	m.confirmDistance()

	m.shared.transform.NudgeTilts(20, -10)
	m.adjustMode = true
	m.notice = "saved somewhere"

	m.recalibrate()

	if m.mode != ModeCalibrate {
		t.Fatalf("mode = %v, want ModeCalibrate", m.mode)
	}
	if m.shared.session.IsCalibrated() {
		t.Fatal("session still calibrated")
	}
	if h, v := m.shared.transform.HorizontalTilt(), m.shared.transform.VerticalTilt(); h != 0 || v != 0 {
		t.Fatalf("tilts = (%v, %v), want zero", h, v)
	}
	if m.adjustMode || m.notice != "" {
		t.Fatalf("adjustMode=%v notice=%q, want cleared", m.adjustMode, m.notice)
	}
}

func TestSnapshotRequestIsDetachedFromTransform(t *testing.T) {
	m := newTestModel()
	m.shared.screenW = 1280
	m.shared.screenH = 720
	m.shared.session.RecordTap(0, 0)
	m.shared.session.RecordTap(300, 0)
	m.entryText = "1"
	m.confirmDistance()

	req := m.snapshotRequest()
	if !req.ShowGrid || !req.ShowLabels || req.Tint != 0 {
		t.Fatalf("request did not capture defaults: %+v", req)
	}
	wantCorner := req.Placement.Corners[0]

	// Mutations after capture must not reach the request; the save runs on
	// its own goroutine and reads only the copy.
	m.shared.transform.ToggleGrid()
	m.shared.transform.ToggleLabels()
	m.shared.transform.CycleTint()
	m.shared.transform.BeginDrag()
	m.shared.transform.Drag(40, 40)
	m.shared.session.Reset()

	if !req.ShowGrid || !req.ShowLabels || req.Tint != 0 {
		t.Fatalf("request changed after capture: %+v", req)
	}
	if got := req.Placement.Corners[0]; got != wantCorner {
		t.Fatalf("placement corner moved after capture: %+v, want %+v", got, wantCorner)
	}
	if req.PPM != 300 || len(req.Points) != 2 {
		t.Fatalf("request lost calibration data: ppm=%v points=%d", req.PPM, len(req.Points))
	}
}

func TestViewfinderCellMapping(t *testing.T) {
	m := newTestModel()
	m.width = 120
	m.height = 40
	m.shared.screenW = 1280
	m.shared.screenH = 720

	// Top-left content cell sits past the menu bar and the panel border.
	col, row, inside := m.viewfinderCell(1, 2)
	if !inside || col != 0 || row != 0 {
		t.Fatalf("viewfinderCell(1,2) = (%d, %d, %v), want (0, 0, true)", col, row, inside)
	}

	// The menu bar row is outside the content area.
	if _, _, inside := m.viewfinderCell(1, 0); inside {
		t.Fatal("menu bar row mapped inside the viewfinder")
	}

	// Cell centers survive a screen round trip back to the same cell.
	mp := m.mapper()
	for _, cell := range [][2]int{{0, 0}, {mp.Cols / 2, mp.Rows / 2}, {mp.Cols - 1, mp.Rows - 1}} {
		x, y := mp.ToScreen(cell[0], cell[1])
		c, r := mp.ToCell(x, y)
		if c != cell[0] || r != cell[1] {
			t.Fatalf("cell (%d, %d) round-tripped to (%d, %d)", cell[0], cell[1], c, r)
		}
	}
}
