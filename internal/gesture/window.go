package gesture

import "github.com/ayusman/chitram/internal/detector"

// Result reports whether a pushed snapshot completed a full window.
type Result int

const (
	// WindowPending means the window is not yet full; the classifier
	// must not be invoked.
	WindowPending Result = iota
	// WindowReady means the window holds exactly Size snapshots and can
	// be submitted to the classifier.
	WindowReady
)

// Default window parameters. Four frames matches the sequence length the
// gesture model was trained with.
const (
	DefaultWindowSize = 4
	DefaultLostLimit  = 5
)

// Window accumulates per-frame landmark snapshots into a fixed-length
// temporal window for the classifier. Oldest snapshots are evicted first.
//
// The window is cleared when hand tracking has been lost for more than
// lostLimit consecutive frames, so a window never stitches together
// landmarks from a lost-and-reacquired hand.
type Window struct {
	frames    [][]detector.Point3D
	size      int
	lost      int
	lostLimit int
}

// NewWindow creates a Window holding size snapshots. Values <= 0 fall back
// to the defaults.
func NewWindow(size, lostLimit int) *Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	if lostLimit <= 0 {
		lostLimit = DefaultLostLimit
	}
	return &Window{
		frames:    make([][]detector.Point3D, 0, size),
		size:      size,
		lostLimit: lostLimit,
	}
}

// Push appends a landmark snapshot to the window. Snapshots that do not
// hold exactly 21 points are rejected without touching the window.
// Returns WindowReady when the window is full after the push.
func (w *Window) Push(points []detector.Point3D) Result {
	if len(points) != detector.NumLandmarks {
		return WindowPending
	}

	w.lost = 0

	snapshot := make([]detector.Point3D, detector.NumLandmarks)
	copy(snapshot, points)

	if len(w.frames) >= w.size {
		// Shift left by one, evicting the oldest snapshot
		copy(w.frames, w.frames[1:])
		w.frames = w.frames[:w.size-1]
	}
	w.frames = append(w.frames, snapshot)

	if len(w.frames) == w.size {
		return WindowReady
	}
	return WindowPending
}

// MarkLost records a frame with no tracked hand. After lostLimit
// consecutive lost frames the window is cleared.
func (w *Window) MarkLost() {
	w.lost++
	if w.lost > w.lostLimit {
		w.Reset()
	}
}

// Reset clears the window and the lost-frame counter.
func (w *Window) Reset() {
	w.frames = w.frames[:0]
	w.lost = 0
}

// Len returns the number of buffered snapshots.
func (w *Window) Len() int {
	return len(w.frames)
}

// Frames returns the buffered snapshots, oldest first. The returned slice
// aliases the window's internal storage and is only valid until the next
// Push or Reset.
func (w *Window) Frames() [][]detector.Point3D {
	return w.frames
}
