package camera

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// Typed session failures. The host surfaces these to the user; nothing in
// the engine interprets them.
var (
	ErrUnavailable      = errors.New("camera device unavailable")
	ErrCannotAddInput   = errors.New("cannot open camera input")
	ErrCannotAddOutput  = errors.New("cannot read camera output")
	ErrPermissionDenied = errors.New("camera permission denied")
)

// Feed is a live video source. Start and Stop control the background
// capture loop; the rest of the program only ever sees frame copies, so no
// mutable state crosses the capture boundary beyond "is running".
type Feed interface {
	Start() error
	Stop()
	Running() bool

	// Preview returns the latest downscaled frame for the viewfinder, or
	// nil before the first frame arrives.
	Preview() image.Image

	// Size returns the full-resolution frame dimensions, the coordinate
	// space calibration points and overlay placement live in. Zero until
	// the first frame arrives.
	Size() (w, h int)

	// Frame returns a clone of the latest full-resolution frame for
	// snapshot compositing. The caller owns the Mat and must Close it.
	// ok is false when no frame has been captured yet.
	Frame() (m gocv.Mat, ok bool)
}
