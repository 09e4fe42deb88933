package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, and optionally to
// script a different result per frame.
type MockDetector struct {
	hands  []HandLandmarks
	script [][]HandLandmarks
	cursor int
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
	m.script = nil
}

// SetScript sets a per-frame sequence of detection results. Once the
// script is exhausted, Detect returns no hands.
func (m *MockDetector) SetScript(frames [][]HandLandmarks) {
	m.script = frames
	m.cursor = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.script != nil {
		if m.cursor >= len(m.script) {
			return nil, nil
		}
		hands := m.script[m.cursor]
		m.cursor++
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// HandAt returns a HandLandmarks with the index fingertip at the given
// normalized position. The remaining landmarks are arranged in a loose
// pointing pose around it. Useful for driving the whiteboard cursor in tests.
func HandAt(x, y float64) HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist below and to the side of the fingertip
	hand.Points[Wrist] = Point3D{X: x - 0.05, Y: y + 0.25, Z: 0}

	// Index finger extended toward the cursor position
	hand.Points[IndexMCP] = Point3D{X: x - 0.02, Y: y + 0.15, Z: 0}
	hand.Points[IndexPIP] = Point3D{X: x - 0.01, Y: y + 0.10, Z: 0}
	hand.Points[IndexDIP] = Point3D{X: x - 0.005, Y: y + 0.05, Z: 0}
	hand.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0}

	// Thumb tucked alongside
	hand.Points[ThumbCMC] = Point3D{X: x - 0.08, Y: y + 0.22, Z: 0.01}
	hand.Points[ThumbMCP] = Point3D{X: x - 0.09, Y: y + 0.18, Z: 0.02}
	hand.Points[ThumbIP] = Point3D{X: x - 0.09, Y: y + 0.15, Z: 0.02}
	hand.Points[ThumbTip] = Point3D{X: x - 0.08, Y: y + 0.13, Z: 0.02}

	// Remaining fingers curled toward the palm
	curled := []struct{ mcp, pip, dip, tip int }{
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip},
		{RingMCP, RingPIP, RingDIP, RingTip},
		{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip},
	}
	for i, f := range curled {
		dx := float64(i+1) * 0.02
		hand.Points[f.mcp] = Point3D{X: x - dx, Y: y + 0.15, Z: -0.01}
		hand.Points[f.pip] = Point3D{X: x - dx, Y: y + 0.13, Z: -0.03}
		hand.Points[f.dip] = Point3D{X: x - dx - 0.01, Y: y + 0.15, Z: -0.03}
		hand.Points[f.tip] = Point3D{X: x - dx - 0.02, Y: y + 0.17, Z: -0.02}
	}

	return hand
}

// FistLandmarks returns a preset HandLandmarks representing a closed fist,
// the pose the classifier associates with write_start.
func FistLandmarks() HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0}

	// All fingers curled into the palm
	fingers := []struct{ mcp, pip, dip, tip int }{
		{IndexMCP, IndexPIP, IndexDIP, IndexTip},
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip},
		{RingMCP, RingPIP, RingDIP, RingTip},
		{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip},
	}
	for i, f := range fingers {
		x := 0.55 - float64(i)*0.04
		hand.Points[f.mcp] = Point3D{X: x, Y: 0.68, Z: -0.02}
		hand.Points[f.pip] = Point3D{X: x, Y: 0.64, Z: -0.05}
		hand.Points[f.dip] = Point3D{X: x - 0.01, Y: 0.68, Z: -0.05}
		hand.Points[f.tip] = Point3D{X: x - 0.02, Y: 0.71, Z: -0.03}
	}

	// Thumb wrapped over the curled fingers
	hand.Points[ThumbCMC] = Point3D{X: 0.57, Y: 0.76, Z: 0}
	hand.Points[ThumbMCP] = Point3D{X: 0.59, Y: 0.72, Z: 0.01}
	hand.Points[ThumbIP] = Point3D{X: 0.57, Y: 0.69, Z: 0.02}
	hand.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.68, Z: 0.03}

	return hand
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm,
// the pose the classifier associates with write_stop.
func OpenPalmLandmarks() HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0}

	// Thumb extended to the side
	hand.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	hand.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	hand.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	hand.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Four fingers extended upward
	fingers := []struct {
		mcp, pip, dip, tip int
		x                  float64
	}{
		{IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.56},
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50},
		{RingMCP, RingPIP, RingDIP, RingTip, 0.44},
		{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.38},
	}
	for _, f := range fingers {
		hand.Points[f.mcp] = Point3D{X: f.x, Y: 0.66, Z: 0}
		hand.Points[f.pip] = Point3D{X: f.x, Y: 0.54, Z: 0}
		hand.Points[f.dip] = Point3D{X: f.x, Y: 0.44, Z: 0}
		hand.Points[f.tip] = Point3D{X: f.x, Y: 0.34, Z: 0}
	}

	return hand
}
