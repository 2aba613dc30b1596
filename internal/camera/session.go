package camera

import (
	"context"
	"image"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"

	"wall-overlay/internal/config"
)

// Preview dimensions. Small enough to convert every frame without hurting
// the capture loop, large enough to oversample any realistic terminal.
const (
	previewW = 240
	previewH = 180
)

// Session captures frames from a V4L2 device with gocv. The capture loop
// owns the working Mat; consumers get copies guarded by the mutex.
type Session struct {
	deviceID int

	mu       sync.RWMutex
	running  bool
	preview  image.Image
	frame    gocv.Mat
	hasFrame bool
	frameW   int
	frameH   int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session for the given V4L2 device index.
func NewSession(deviceID int) *Session {
	return &Session{deviceID: deviceID}
}

// Start opens the device and launches the capture loop. Failures are
// classified into the typed errors for the host to surface.
func (s *Session) Start() error {
	if s.Running() {
		return nil
	}

	if err := probeDevice(s.deviceID); err != nil {
		return err
	}

	cap, err := gocv.VideoCaptureDevice(s.deviceID)
	if err != nil {
		return errors.Wrapf(ErrCannotAddInput, "device %d: %v", s.deviceID, err)
	}

	// Verify the device actually produces frames before declaring success.
	probe := gocv.NewMat()
	if ok := cap.Read(&probe); !ok || probe.Empty() {
		probe.Close()
		cap.Close()
		return errors.Wrapf(ErrCannotAddOutput, "device %d produced no frame", s.deviceID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.running = true
	s.frame = probe.Clone()
	s.hasFrame = true
	s.frameW = probe.Cols()
	s.frameH = probe.Rows()
	s.preview = downscale(probe)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()
	probe.Close()

	logrus.WithField("device", s.deviceID).Info("camera: session started")
	go s.loop(ctx, cap)
	return nil
}

func (s *Session) loop(ctx context.Context, cap *gocv.VideoCapture) {
	defer close(s.done)
	defer cap.Close()

	mat := gocv.NewMat()
	defer mat.Close()

	interval := time.Second / config.TargetFPS
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok := cap.Read(&mat); !ok || mat.Empty() {
			time.Sleep(interval)
			continue
		}

		img := downscale(mat)

		s.mu.Lock()
		if s.hasFrame {
			s.frame.Close()
		}
		s.frame = mat.Clone()
		s.hasFrame = true
		s.frameW = mat.Cols()
		s.frameH = mat.Rows()
		if img != nil {
			s.preview = img
		}
		s.mu.Unlock()
	}
}

// Stop halts the capture loop and releases the device.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	if s.hasFrame {
		s.frame.Close()
		s.hasFrame = false
	}
	s.mu.Unlock()

	logrus.WithField("device", s.deviceID).Info("camera: session stopped")
}

// Running reports whether the capture loop is active.
func (s *Session) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Preview returns the latest downscaled frame.
func (s *Session) Preview() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preview
}

// Frame returns a clone of the latest full-resolution frame.
func (s *Session) Frame() (gocv.Mat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasFrame {
		return gocv.Mat{}, false
	}
	return s.frame.Clone(), true
}

// Size returns the full-resolution frame dimensions.
func (s *Session) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameW, s.frameH
}

// probeDevice distinguishes a missing device from a permission problem
// before gocv's opaque open error can blur them together.
func probeDevice(deviceID int) error {
	path := devicePath(deviceID)
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrUnavailable, "%s", path)
		}
		if os.IsPermission(err) {
			return errors.Wrapf(ErrPermissionDenied, "%s", path)
		}
		return errors.Wrapf(ErrUnavailable, "%s: %v", path, err)
	}
	if fi.Mode()&os.ModeDevice == 0 {
		return errors.Wrapf(ErrUnavailable, "%s is not a device", path)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(ErrPermissionDenied, "%s", path)
		}
		return errors.Wrapf(ErrUnavailable, "%s: %v", path, err)
	}
	f.Close()
	return nil
}

// downscale converts a captured Mat to a small RGBA preview image.
func downscale(m gocv.Mat) image.Image {
	src, err := m.ToImage()
	if err != nil {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, previewW, previewH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
