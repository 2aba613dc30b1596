package motion

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"wall-overlay/internal/config"
)

// MockSource generates fake gravity samples for demo mode: a slow
// sinusoidal roll of up to ~15° with a little jitter, as if the operator
// were holding the device slightly unsteady.
type MockSource struct {
	running atomic.Bool
	cancel  context.CancelFunc

	maxRollRad float64
	periodSec  float64
	phase      float64
}

// NewMockSource creates a mock motion source.
func NewMockSource() *MockSource {
	return &MockSource{
		maxRollRad: 15 * math.Pi / 180,
		periodSec:  8 + rand.Float64()*4,
		phase:      rand.Float64() * 2 * math.Pi,
	}
}

// Start begins emitting samples at the nominal motion rate. The mock never
// fails, so fail is unused.
func (s *MockSource) Start(emit func(Sample), fail func(error)) error {
	s.running.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx, emit)
	return nil
}

func (s *MockSource) loop(ctx context.Context, emit func(Sample)) {
	ticker := time.NewTicker(time.Second / config.MotionRateHz)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.running.Load() {
				return
			}
			t += 1.0 / config.MotionRateHz
			emit(s.sampleAt(t))
		}
	}
}

func (s *MockSource) sampleAt(t float64) Sample {
	roll := s.maxRollRad*math.Sin(2*math.Pi*t/s.periodSec+s.phase) +
		(rand.Float64()-0.5)*0.01

	// Device held mostly upright facing the wall: gravity points down the
	// screen with a small out-of-plane component.
	tiltBack := 0.2 + (rand.Float64()-0.5)*0.02
	inPlane := math.Cos(tiltBack)

	return Sample{
		GravityX: inPlane * math.Sin(roll),
		GravityY: -inPlane * math.Cos(roll),
		GravityZ: -math.Sin(tiltBack),
	}
}

// Stop halts sample delivery.
func (s *MockSource) Stop() {
	s.running.Store(false)
	if s.cancel != nil {
		s.cancel()
	}
}
