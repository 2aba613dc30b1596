package overlay

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"wall-overlay/internal/config"
)

// Vec2 is a point in virtual screen pixels.
type Vec2 struct {
	X, Y float64
}

// Placement is the computed on-screen pose of the template for one frame:
// the projected corners (top-left, top-right, bottom-right, bottom-left in
// template order) plus the pieces needed to project further template-local
// points (grid lines, labels) through the same chain.
type Placement struct {
	Corners [4]Vec2
	Center  Vec2

	// RenderedW/H is the unrotated rendered size, real-world dims × scale.
	RenderedW float64
	RenderedH float64

	rot  *mat.Dense // composed 3×3 rotation
	eye  float64
	panX float64
	panY float64
}

// Placement computes the template pose for the current transform state:
// scale from pixels-per-meter, planar auto-level rotation, the two
// perspective tilts, and translation to screen center plus pan.
func (t *Transform) Placement(ppm, screenW, screenH float64) Placement {
	w := config.TemplateWidthM * ppm
	h := config.TemplateHeightM * ppm

	rot := composeRotation(t.AutoLevelAngle(), t.hTiltDeg, t.vTiltDeg)

	panX, panY := t.PanOffset()
	p := Placement{
		RenderedW: w,
		RenderedH: h,
		rot:       rot,
		eye:       config.PerspectiveEye,
		panX:      screenW/2 + panX,
		panY:      screenH/2 + panY,
	}

	p.Corners[0] = p.ProjectLocal(-w/2, -h/2)
	p.Corners[1] = p.ProjectLocal(w/2, -h/2)
	p.Corners[2] = p.ProjectLocal(w/2, h/2)
	p.Corners[3] = p.ProjectLocal(-w/2, h/2)
	p.Center = p.ProjectLocal(0, 0)
	return p
}

// ProjectLocal maps a template-local point (pixels from the template
// center, +Y down) to screen space through the placement's rotation,
// perspective divide, and translation.
func (p Placement) ProjectLocal(lx, ly float64) Vec2 {
	v := mat.NewVecDense(3, []float64{lx, ly, 0})
	var out mat.VecDense
	out.MulVec(p.rot, v)

	x, y, z := out.AtVec(0), out.AtVec(1), out.AtVec(2)

	// Pinhole projection with the eye on the +Z axis. Tilt bounds keep z
	// well away from the eye plane.
	scale := p.eye / (p.eye - z)
	return Vec2{
		X: x*scale + p.panX,
		Y: y*scale + p.panY,
	}
}

// Bounds returns the axis-aligned bounding box of the projected corners.
func (p Placement) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range p.Corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return
}

// composeRotation builds the full rotation: planar auto-level roll about Z,
// then horizontal tilt about the vertical (Y) axis, then vertical tilt
// about the horizontal (X) axis.
func composeRotation(rollRad, hTiltDeg, vTiltDeg float64) *mat.Dense {
	rz := rotZ(rollRad)
	ry := rotY(hTiltDeg * math.Pi / 180)
	rx := rotX(vTiltDeg * math.Pi / 180)

	var tmp, out mat.Dense
	tmp.Mul(ry, rz)
	out.Mul(rx, &tmp)
	return &out
}

func rotZ(a float64) *mat.Dense {
	c, s := math.Cos(a), math.Sin(a)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func rotY(a float64) *mat.Dense {
	c, s := math.Cos(a), math.Sin(a)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

func rotX(a float64) *mat.Dense {
	c, s := math.Cos(a), math.Sin(a)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}
