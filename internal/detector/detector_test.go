package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestHandLandmarks_FingertipAt(t *testing.T) {
	tests := []struct {
		name   string
		tip    Point3D
		width  int
		height int
		wantX  int
		wantY  int
	}{
		{
			name:   "center of canvas",
			tip:    Point3D{X: 0.5, Y: 0.5},
			width:  1200,
			height: 800,
			wantX:  600,
			wantY:  400,
		},
		{
			name:   "top left corner",
			tip:    Point3D{X: 0, Y: 0},
			width:  1200,
			height: 800,
			wantX:  0,
			wantY:  0,
		},
		{
			name:   "bottom right corner",
			tip:    Point3D{X: 1.0, Y: 1.0},
			width:  640,
			height: 480,
			wantX:  640,
			wantY:  480,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := HandLandmarks{}
			hand.Points[IndexTip] = tt.tip

			got := hand.FingertipAt(tt.width, tt.height)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("FingertipAt() = (%d, %d), want (%d, %d)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHandAt_FingertipPosition(t *testing.T) {
	hand := HandAt(0.25, 0.75)

	tip := hand.Fingertip()
	if math.Abs(tip.X-0.25) > epsilon {
		t.Errorf("expected fingertip X 0.25, got %f", tip.X)
	}
	if math.Abs(tip.Y-0.75) > epsilon {
		t.Errorf("expected fingertip Y 0.75, got %f", tip.Y)
	}
}

func TestMockDetector_Script(t *testing.T) {
	mock := NewMockDetector()
	mock.SetScript([][]HandLandmarks{
		{FistLandmarks()},
		nil,
		{OpenPalmLandmarks()},
	})

	// Frame 1: fist
	hands, err := mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand on frame 1, got %d", len(hands))
	}

	// Frame 2: tracking lost
	hands, err = mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("expected no hands on frame 2, got %d", len(hands))
	}

	// Frame 3: open palm
	hands, err = mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand on frame 3, got %d", len(hands))
	}

	// Script exhausted
	hands, _ = mock.Detect(nil)
	if len(hands) != 0 {
		t.Errorf("expected no hands after script exhausted, got %d", len(hands))
	}
}

func TestMockDetector_Error(t *testing.T) {
	mock := NewMockDetector()
	wantErr := errors.New("camera unplugged")
	mock.SetError(wantErr)

	_, err := mock.Detect(nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}
