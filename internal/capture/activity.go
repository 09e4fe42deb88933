package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Activity gate tuning. The gate reports "active" while the scene is
// changing and keeps reporting active for a short linger window after
// motion stops, so the pipeline does not flap between frame rates.
const (
	// DefaultActivityThreshold is the percentage of pixels that must
	// change between frames to count as motion.
	DefaultActivityThreshold = 0.8
	// DefaultActivityLinger keeps the gate active after the last motion.
	DefaultActivityLinger = 3 * time.Second

	blurKernel   = 21
	pixelDiffMin = 25
)

// ActivityGate decides whether the scene in front of the camera is
// active. It compares blurred grayscale frames and holds the active
// state for a linger window, letting the capture loop drop to a low
// frame rate when nothing is happening.
type ActivityGate struct {
	mu        sync.Mutex
	threshold float64
	linger    time.Duration
	baseline  gocv.Mat
	primed    bool
	lastMove  time.Time
	now       func() time.Time
}

// NewActivityGate creates a gate with the given motion threshold in
// percent of changed pixels. Non-positive values fall back to the default.
func NewActivityGate(threshold float64) *ActivityGate {
	if threshold <= 0 {
		threshold = DefaultActivityThreshold
	}
	return &ActivityGate{
		threshold: threshold,
		linger:    DefaultActivityLinger,
		baseline:  gocv.NewMat(),
		now:       time.Now,
	}
}

// Observe feeds a frame into the gate and reports whether the scene is
// currently active. The first frame only primes the baseline.
func (g *ActivityGate) Observe(frame *gocv.Mat) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return g.activeLocked()
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(blurKernel, blurKernel), 0, 0, gocv.BorderDefault)

	if !g.primed {
		blurred.CopyTo(&g.baseline)
		g.primed = true
		return false
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.baseline, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, pixelDiffMin, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(mask)) / float64(mask.Rows()*mask.Cols()) * 100.0
	blurred.CopyTo(&g.baseline)

	if changed > g.threshold {
		g.lastMove = g.now()
	}
	return g.activeLocked()
}

// Touch forces the gate active, as if motion had just been seen. The
// pipeline calls this when a hand is detected so recognition never
// starves at the idle frame rate.
func (g *ActivityGate) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastMove = g.now()
}

// Active reports whether the gate is within its linger window.
func (g *ActivityGate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.activeLocked()
}

func (g *ActivityGate) activeLocked() bool {
	if g.lastMove.IsZero() {
		return false
	}
	return g.now().Sub(g.lastMove) < g.linger
}

// Reset drops the baseline so the next frame primes a fresh one.
func (g *ActivityGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.baseline.Empty() {
		g.baseline.Close()
		g.baseline = gocv.NewMat()
	}
	g.primed = false
	g.lastMove = time.Time{}
}

// Close releases the gate's resources.
func (g *ActivityGate) Close() {
	g.Reset()
}
