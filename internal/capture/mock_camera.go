package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera is a Camera implementation that produces synthetic frames.
// It is used in tests and as a fallback when no physical camera is present.
type MockCamera struct {
	mu      sync.Mutex
	running bool
	fps     int
	frame   int
	fill    uint8
}

// NewMockCamera creates a mock camera producing gray frames.
func NewMockCamera() *MockCamera {
	return &MockCamera{fps: DefaultFPS, fill: 128}
}

// Open marks the mock camera as running.
func (m *MockCamera) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	return nil
}

// Close marks the mock camera as stopped.
func (m *MockCamera) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	return nil
}

// ReadFrame returns a synthetic 640x480 frame. The fill value shifts
// slightly every frame so motion detection sees activity.
func (m *MockCamera) ReadFrame() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil, ErrCameraNotOpen
	}

	m.frame++
	fill := float64(m.fill + uint8(m.frame%3))
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(fill, fill, fill, 0),
		DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3,
	)
	return &mat, nil
}

// SetFPS adjusts the mock frame rate.
func (m *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fps = fps
}

// FPS returns the configured frame rate.
func (m *MockCamera) FPS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}

// IsOpen reports whether the mock camera is running.
func (m *MockCamera) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
