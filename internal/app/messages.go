package app

import (
	"time"

	"wall-overlay/internal/motion"
)

// TickMsg triggers a frame redraw.
type TickMsg time.Time

// MotionMsg carries one gravity sample from the motion source.
type MotionMsg struct {
	Sample motion.Sample
}

// MotionErrorMsg reports a motion source failure.
type MotionErrorMsg struct {
	Err error
}

// SnapshotMsg reports the result of an annotated snapshot write.
type SnapshotMsg struct {
	Path string
	Err  error
}
