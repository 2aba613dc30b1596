package camera

import (
	"image"
	"image/color"
	"math/rand"
	"sync"

	"gocv.io/x/gocv"
)

const (
	mockW = 1280
	mockH = 720
)

// MockFeed synthesizes wall frames for demo mode: a shaded wall gradient
// with a scatter of hold-like blobs, so calibration and overlay placement
// can be exercised without a camera.
type MockFeed struct {
	mu      sync.RWMutex
	running bool
	frame   *image.RGBA
}

// NewMockFeed creates a mock camera feed.
func NewMockFeed() *MockFeed {
	return &MockFeed{}
}

// Start renders the synthetic wall. The scene is static, so no background
// loop is needed.
func (f *MockFeed) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return nil
	}
	f.frame = renderWall()
	f.running = true
	return nil
}

// Stop releases the synthetic frame.
func (f *MockFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.frame = nil
}

// Running reports whether the feed is active.
func (f *MockFeed) Running() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.running
}

// Preview returns the synthetic frame.
func (f *MockFeed) Preview() image.Image {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.frame == nil {
		return nil
	}
	return f.frame
}

// Size returns the synthetic frame dimensions.
func (f *MockFeed) Size() (int, int) {
	return mockW, mockH
}

// Frame converts the synthetic frame to a Mat for snapshot compositing.
func (f *MockFeed) Frame() (gocv.Mat, bool) {
	f.mu.RLock()
	img := f.frame
	f.mu.RUnlock()
	if img == nil {
		return gocv.Mat{}, false
	}

	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, false
	}
	return m, true
}

func renderWall() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, mockW, mockH))

	// Wall gradient, darker toward the bottom.
	for y := 0; y < mockH; y++ {
		shade := uint8(110 - y*40/mockH)
		for x := 0; x < mockW; x++ {
			img.SetRGBA(x, y, color.RGBA{shade, shade, uint8(int(shade) + 10), 255})
		}
	}

	// Hold blobs.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 40; i++ {
		cx := rng.Intn(mockW)
		cy := rng.Intn(mockH)
		r := 8 + rng.Intn(16)
		c := color.RGBA{
			uint8(120 + rng.Intn(120)),
			uint8(40 + rng.Intn(80)),
			uint8(40 + rng.Intn(60)),
			255,
		}
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				x, y := cx+dx, cy+dy
				if x >= 0 && x < mockW && y >= 0 && y < mockH {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}

	return img
}
