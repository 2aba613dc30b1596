package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"wall-overlay/internal/calibrate"
	"wall-overlay/internal/config"
	"wall-overlay/internal/overlay"
)

// TintColors maps config.TintNames indices to BGR-friendly RGBA values.
var TintColors = []color.RGBA{
	{230, 60, 60, 255},   // red
	{60, 220, 90, 255},   // green
	{70, 120, 240, 255},  // blue
	{240, 220, 60, 255},  // yellow
	{245, 245, 245, 255}, // white
}

var gridColor = color.RGBA{200, 200, 200, 255}

// Request is everything one snapshot needs, captured by value on the update
// goroutine. Save runs on its own goroutine and must never read live
// transform state.
type Request struct {
	Placement  overlay.Placement
	Points     []calibrate.Point
	PPM        float64
	Tint       int
	ShowGrid   bool
	ShowLabels bool
}

// Saver composites the overlay onto full-resolution frames and writes them
// to disk. This is the photo-library sink: it only reports success or
// failure, the host decides what to tell the user.
type Saver struct {
	dir string

	template    gocv.Mat
	hasTemplate bool
}

// NewSaver creates a saver writing into dir, optionally loading a template
// image to warp onto saved frames. An unreadable template is an error; a
// missing path just means outline-only snapshots.
func NewSaver(dir, templatePath string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create snapshot directory %q", dir)
	}

	s := &Saver{dir: dir}
	if templatePath != "" {
		m := gocv.IMRead(templatePath, gocv.IMReadColor)
		if m.Empty() {
			return nil, errors.Errorf("read template image %q", templatePath)
		}
		s.template = m
		s.hasTemplate = true
		logrus.WithFields(logrus.Fields{
			"template": templatePath,
			"cols":     m.Cols(),
			"rows":     m.Rows(),
		}).Info("snapshot: template loaded")
	}
	return s, nil
}

// Close releases the template.
func (s *Saver) Close() {
	if s.hasTemplate {
		s.template.Close()
		s.hasTemplate = false
	}
}

// Save composites the placed overlay onto the frame and writes a
// timestamped PNG. The frame is modified in place and must be owned by the
// caller. Returns the written path.
func (s *Saver) Save(frame gocv.Mat, req Request) (string, error) {
	if frame.Empty() {
		return "", errors.New("no frame to save")
	}

	tint := TintColors[req.Tint%len(TintColors)]

	if s.hasTemplate {
		s.warpTemplate(&frame, req.Placement)
	}
	s.drawOutline(&frame, req.Placement, tint)
	if req.ShowGrid && req.PPM > 0 {
		s.drawGrid(&frame, req.Placement, req.PPM)
	}
	if req.ShowLabels && req.PPM > 0 {
		s.drawLabels(&frame, req.Placement, req.PPM)
	}
	s.drawCalibration(&frame, req.Points)

	path := filepath.Join(s.dir, fmt.Sprintf("overlay_%s.png", time.Now().Format("2006-01-02_15-04-05")))
	if ok := gocv.IMWrite(path, frame); !ok {
		return "", errors.Errorf("write snapshot %q", path)
	}

	logrus.WithField("path", path).Info("snapshot: saved")
	return path, nil
}

// warpTemplate maps the template image onto the placement quad and blends
// it over the frame.
func (s *Saver) warpTemplate(frame *gocv.Mat, p overlay.Placement) {
	src := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: 0, Y: 0},
		{X: float32(s.template.Cols() - 1), Y: 0},
		{X: float32(s.template.Cols() - 1), Y: float32(s.template.Rows() - 1)},
		{X: 0, Y: float32(s.template.Rows() - 1)},
	})
	defer src.Close()

	dstPts := make([]gocv.Point2f, 4)
	for i, c := range p.Corners {
		dstPts[i] = gocv.Point2f{X: float32(c.X), Y: float32(c.Y)}
	}
	dst := gocv.NewPoint2fVectorFromPoints(dstPts)
	defer dst.Close()

	m := gocv.GetPerspectiveTransform2f(src, dst)
	defer m.Close()

	warped := gocv.NewMat()
	defer warped.Close()
	gocv.WarpPerspective(s.template, &warped, m, image.Pt(frame.Cols(), frame.Rows()))

	// Blend only where the warped template has content.
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(warped, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, 1, 255, gocv.ThresholdBinary)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(*frame, 0.45, warped, 0.55, 0, &blended)
	blended.CopyToWithMask(frame, mask)
}

func (s *Saver) drawOutline(frame *gocv.Mat, p overlay.Placement, tint color.RGBA) {
	for i := 0; i < 4; i++ {
		a := p.Corners[i]
		b := p.Corners[(i+1)%4]
		gocv.Line(frame, image.Pt(int(a.X), int(a.Y)), image.Pt(int(b.X), int(b.Y)), tint, 2)
	}
}

// drawGrid projects the meter grid through the same placement chain so the
// lines follow the overlay's tilt.
func (s *Saver) drawGrid(frame *gocv.Mat, p overlay.Placement, ppm float64) {
	step := config.GridSpacingM * ppm
	halfW := p.RenderedW / 2
	halfH := p.RenderedH / 2

	for lx := -halfW + step; lx < halfW; lx += step {
		a := p.ProjectLocal(lx, -halfH)
		b := p.ProjectLocal(lx, halfH)
		gocv.Line(frame, image.Pt(int(a.X), int(a.Y)), image.Pt(int(b.X), int(b.Y)), gridColor, 1)
	}
	for ly := -halfH + step; ly < halfH; ly += step {
		a := p.ProjectLocal(-halfW, ly)
		b := p.ProjectLocal(halfW, ly)
		gocv.Line(frame, image.Pt(int(a.X), int(a.Y)), image.Pt(int(b.X), int(b.Y)), gridColor, 1)
	}
}

// drawLabels writes meter heights along the overlay's left edge, measured
// from the template bottom.
func (s *Saver) drawLabels(frame *gocv.Mat, p overlay.Placement, ppm float64) {
	halfW := p.RenderedW / 2
	halfH := p.RenderedH / 2

	for m := 0.0; m <= config.TemplateHeightM; m += 1.0 {
		ly := halfH - m*ppm
		pt := p.ProjectLocal(-halfW, ly)
		gocv.PutText(frame, fmt.Sprintf("%.0fm", m),
			image.Pt(int(pt.X)+4, int(pt.Y)-4),
			gocv.FontHersheySimplex, 0.6, gridColor, 1)
	}
}

func (s *Saver) drawCalibration(frame *gocv.Mat, points []calibrate.Point) {
	marker := color.RGBA{60, 200, 255, 255}

	if len(points) == 2 {
		gocv.Line(frame,
			image.Pt(int(points[0].X), int(points[0].Y)),
			image.Pt(int(points[1].X), int(points[1].Y)),
			marker, 1)
	}
	for i, pt := range points {
		gocv.Circle(frame, image.Pt(int(pt.X), int(pt.Y)), 8, marker, 2)
		gocv.PutText(frame, fmt.Sprintf("%d", i+1),
			image.Pt(int(pt.X)+10, int(pt.Y)+4),
			gocv.FontHersheySimplex, 0.5, marker, 1)
	}
}
