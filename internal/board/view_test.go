package board

import (
	"math"
	"testing"
)

func TestView_ZoomSaturation(t *testing.T) {
	v := NewView(1200, 800)

	// 20 zoom-ins from 1.0 saturate at 3.0 and never exceed it
	for i := 0; i < 20; i++ {
		v.ZoomIn()
		if v.Zoom() > MaxZoom {
			t.Fatalf("zoom %f exceeds maximum after %d steps", v.Zoom(), i+1)
		}
	}
	if v.Zoom() != MaxZoom {
		t.Errorf("expected zoom saturated at %f, got %f", MaxZoom, v.Zoom())
	}

	// And back down, saturating at 1.0
	for i := 0; i < 20; i++ {
		v.ZoomOut()
		if v.Zoom() < MinZoom {
			t.Fatalf("zoom %f below minimum after %d steps", v.Zoom(), i+1)
		}
	}
	if v.Zoom() != MinZoom {
		t.Errorf("expected zoom saturated at %f, got %f", MinZoom, v.Zoom())
	}
}

func TestView_PanClamp(t *testing.T) {
	v := NewView(1200, 800)
	v.ZoomIn() // 1.2

	spanX := 1200 * (v.Zoom() - 1)
	spanY := 800 * (v.Zoom() - 1)

	deltas := [][2]float64{
		{-1e6, -1e6},
		{1e6, 1e6},
		{-37, 12},
		{240, -9000},
		{0.5, 0.5},
	}

	for _, d := range deltas {
		v.Pan(d[0], d[1])
		x, y := v.Offset()
		if x < -spanX-1e-9 || x > 0 {
			t.Errorf("offset X %f outside [%f, 0] after delta %v", x, -spanX, d)
		}
		if y < -spanY-1e-9 || y > 0 {
			t.Errorf("offset Y %f outside [%f, 0] after delta %v", y, -spanY, d)
		}
	}
}

func TestView_PanIsNoopAtMinZoom(t *testing.T) {
	v := NewView(1200, 800)

	// At 1:1 zoom the clamp span is zero, so offsets stay pinned
	v.Pan(-500, -500)
	x, y := v.Offset()
	if x != 0 || y != 0 {
		t.Errorf("expected offsets pinned to 0 at min zoom, got (%f, %f)", x, y)
	}
}

func TestView_ZoomOutReclampsOffsets(t *testing.T) {
	v := NewView(1200, 800)
	for i := 0; i < 10; i++ {
		v.ZoomIn() // 3.0
	}
	v.Pan(-2400, -1600) // full span at 3.0

	// Zooming back out shrinks the legal span; offsets must follow
	for i := 0; i < 5; i++ {
		v.ZoomOut()
		spanX := 1200 * (v.Zoom() - 1)
		spanY := 800 * (v.Zoom() - 1)
		x, y := v.Offset()
		if x < -spanX-1e-9 || y < -spanY-1e-9 {
			t.Errorf("offsets (%f, %f) outside span (%f, %f) at zoom %f", x, y, spanX, spanY, v.Zoom())
		}
	}
}

func TestView_ZoomStep(t *testing.T) {
	v := NewView(1200, 800)
	v.ZoomIn()
	if math.Abs(v.Zoom()-1.2) > 1e-9 {
		t.Errorf("expected zoom 1.2 after one step, got %f", v.Zoom())
	}
}

func TestPalette_CycleWraps(t *testing.T) {
	p := NewPalette()

	if p.Name() != "red" {
		t.Errorf("expected initial color red, got %s", p.Name())
	}

	for i := 0; i < p.Len(); i++ {
		p.Cycle()
	}
	if p.Index() != 0 || p.Name() != "red" {
		t.Errorf("expected palette to wrap to red, got %s (index %d)", p.Name(), p.Index())
	}
}

func TestShape_CycleOrder(t *testing.T) {
	want := []Shape{ShapeCircle, ShapeLine, ShapeArrow, ShapeRectangle}

	s := ShapeRectangle
	for _, w := range want {
		s = s.Next()
		if s != w {
			t.Fatalf("expected %s, got %s", w, s)
		}
	}
}
