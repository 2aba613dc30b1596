package overlay

import (
	"math"
	"testing"

	"wall-overlay/internal/config"
)

func TestRenderedSizeFromScale(t *testing.T) {
	tr := NewTransform()
	p := tr.Placement(100, 1000, 2000)

	if p.RenderedW != config.TemplateWidthM*100 {
		t.Fatalf("RenderedW = %v, want %v", p.RenderedW, config.TemplateWidthM*100)
	}
	if p.RenderedH != config.TemplateHeightM*100 {
		t.Fatalf("RenderedH = %v, want %v", p.RenderedH, config.TemplateHeightM*100)
	}
}

func TestIdentityPlacementCentered(t *testing.T) {
	tr := NewTransform()
	p := tr.Placement(100, 1000, 2000)

	if math.Abs(p.Center.X-500) > 1e-9 || math.Abs(p.Center.Y-1000) > 1e-9 {
		t.Fatalf("center = %+v, want (500, 1000)", p.Center)
	}

	// With no rotation the corners are the plain rectangle.
	wantX := []float64{500 - p.RenderedW/2, 500 + p.RenderedW/2, 500 + p.RenderedW/2, 500 - p.RenderedW/2}
	wantY := []float64{1000 - p.RenderedH/2, 1000 - p.RenderedH/2, 1000 + p.RenderedH/2, 1000 + p.RenderedH/2}
	for i, c := range p.Corners {
		if math.Abs(c.X-wantX[i]) > 1e-6 || math.Abs(c.Y-wantY[i]) > 1e-6 {
			t.Fatalf("corner %d = %+v, want (%v, %v)", i, c, wantX[i], wantY[i])
		}
	}
}

func TestTiltClamping(t *testing.T) {
	tr := NewTransform()

	tr.SetHorizontalTilt(90)
	if got := tr.HorizontalTilt(); got != config.TiltLimitDeg {
		t.Fatalf("horizontal tilt clamped to %v, want %v", got, config.TiltLimitDeg)
	}
	tr.SetVerticalTilt(-200)
	if got := tr.VerticalTilt(); got != -config.TiltLimitDeg {
		t.Fatalf("vertical tilt clamped to %v, want %v", got, -config.TiltLimitDeg)
	}

	tr.NudgeTilts(-200, 400)
	if tr.HorizontalTilt() != -config.TiltLimitDeg || tr.VerticalTilt() != config.TiltLimitDeg {
		t.Fatalf("nudge escaped clamp: h=%v v=%v", tr.HorizontalTilt(), tr.VerticalTilt())
	}

	tr.ResetHorizontalTilt()
	tr.ResetVerticalTilt()
	if tr.HorizontalTilt() != 0 || tr.VerticalTilt() != 0 {
		t.Fatal("tilt reset did not zero sliders")
	}
}

func TestAutoLevelRotatesCorners(t *testing.T) {
	tr := NewTransform()
	tr.SetAutoLevel(true)
	tr.SetAutoLevelAngle(math.Pi / 2)

	p := tr.Placement(100, 1000, 2000)

	// A quarter turn maps the top-left template corner to where the
	// bottom-left was.
	if math.Abs(p.Corners[0].X-(500+p.RenderedH/2)) > 1e-6 {
		t.Fatalf("rotated corner X = %v", p.Corners[0].X)
	}

	// Disabling auto-level zeroes the stored angle immediately.
	tr.SetAutoLevel(false)
	if tr.AutoLevelAngle() != 0 {
		t.Fatalf("angle after disable = %v", tr.AutoLevelAngle())
	}

	// While off, filter updates are ignored.
	tr.SetAutoLevelAngle(0.5)
	if tr.AutoLevelAngle() != 0 {
		t.Fatalf("angle set while disabled = %v", tr.AutoLevelAngle())
	}
}

// overlapMeetsMargin checks that the overlay bounds overlap the screen by
// at least the pan margin in both axes.
func overlapMeetsMargin(t *testing.T, tr *Transform, ppm, sw, sh float64) {
	t.Helper()
	p := tr.Placement(ppm, sw, sh)
	minX, minY, maxX, maxY := p.Bounds()

	overlapX := math.Min(maxX, sw) - math.Max(minX, 0)
	overlapY := math.Min(maxY, sh) - math.Max(minY, 0)

	if overlapX < config.PanMarginPx-1e-6 {
		t.Fatalf("horizontal overlap %v below margin %v", overlapX, config.PanMarginPx)
	}
	if overlapY < config.PanMarginPx-1e-6 {
		t.Fatalf("vertical overlap %v below margin %v", overlapY, config.PanMarginPx)
	}
}

func TestPanClampKeepsOverlayReachable(t *testing.T) {
	const ppm, sw, sh = 100, 1000, 2000
	tr := NewTransform()

	drags := [][2]float64{
		{5000, 0}, {-5000, 0}, {0, 9000}, {0, -9000},
		{4000, -8000}, {-123456, 654321}, {3, 4},
	}
	for _, d := range drags {
		tr.BeginDrag()
		tr.Drag(d[0], d[1])
		tr.EndDrag(ppm, sw, sh)
		overlapMeetsMargin(t, tr, ppm, sw, sh)
	}
}

func TestPanInFlightDeltaAccumulates(t *testing.T) {
	tr := NewTransform()

	tr.BeginDrag()
	tr.Drag(30, -40)
	x, y := tr.PanOffset()
	if x != 30 || y != -40 {
		t.Fatalf("in-flight pan = (%v, %v)", x, y)
	}

	tr.EndDrag(100, 1000, 2000)
	x, y = tr.PanOffset()
	if x != 30 || y != -40 {
		t.Fatalf("folded pan = (%v, %v)", x, y)
	}

	// Drag without BeginDrag is ignored.
	tr.Drag(500, 500)
	x, y = tr.PanOffset()
	if x != 30 || y != -40 {
		t.Fatalf("unstarted drag moved pan to (%v, %v)", x, y)
	}
}

func TestResizeReclamps(t *testing.T) {
	const ppm = 100.0
	tr := NewTransform()

	tr.BeginDrag()
	tr.Drag(400, 0)
	tr.EndDrag(ppm, 1000, 2000)
	overlapMeetsMargin(t, tr, ppm, 1000, 2000)

	// Screen shrinks (device rotation); the old pan could strand the
	// overlay. Re-clamping restores the invariant.
	tr.ClampToScreen(ppm, 400, 600)
	overlapMeetsMargin(t, tr, ppm, 400, 600)
}

func TestTransformReset(t *testing.T) {
	tr := NewTransform()
	tr.BeginDrag()
	tr.Drag(50, 50)
	tr.EndDrag(100, 1000, 2000)
	tr.SetHorizontalTilt(30)
	tr.SetAutoLevel(true)
	tr.SetAutoLevelAngle(0.2)
	tr.CycleTint()
	tr.ToggleGrid()
	tr.ToggleLabels()

	tr.Reset()

	if x, y := tr.PanOffset(); x != 0 || y != 0 {
		t.Fatalf("pan after reset = (%v, %v)", x, y)
	}
	if tr.HorizontalTilt() != 0 || tr.VerticalTilt() != 0 {
		t.Fatal("tilts survived reset")
	}
	if tr.AutoLevel() || tr.AutoLevelAngle() != 0 {
		t.Fatal("auto-level survived reset")
	}
	if tr.Tint() != 0 {
		t.Fatal("tint survived reset")
	}
	if !tr.ShowGrid() || !tr.ShowLabels() {
		t.Fatal("layer visibility defaults not restored")
	}
}
