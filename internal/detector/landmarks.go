// Package detector provides hand detection interfaces and types for the gesture pipeline.
package detector

import "image"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in normalized camera space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for a single hand.
// Coordinates are normalized to [0, 1] relative to the camera frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Fingertip returns the index fingertip position in normalized coordinates.
// The index fingertip is the drawing and panning cursor for the whiteboard.
func (h *HandLandmarks) Fingertip() Point3D {
	return h.Points[IndexTip]
}

// FingertipAt projects the index fingertip onto a surface of the given
// dimensions, returning pixel coordinates.
func (h *HandLandmarks) FingertipAt(width, height int) image.Point {
	tip := h.Points[IndexTip]
	return image.Point{
		X: int(tip.X * float64(width)),
		Y: int(tip.Y * float64(height)),
	}
}
