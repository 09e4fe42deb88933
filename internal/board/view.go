package board

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Zoom limits and step size.
const (
	MinZoom  = 1.0
	MaxZoom  = 3.0
	ZoomStep = 0.2
)

// View owns the zoom factor and pan offsets of the visible viewport.
// Offsets are kept within [-(size)*(zoom-1), 0] on both axes so the
// viewport never leaves the scaled canvas bounds.
type View struct {
	width   int
	height  int
	zoom    float64
	offsetX float64
	offsetY float64
}

// NewView creates a View over a canvas of the given size, at 1:1 zoom.
func NewView(width, height int) *View {
	return &View{
		width:  width,
		height: height,
		zoom:   MinZoom,
	}
}

// ZoomIn increases the zoom factor by one step, saturating at MaxZoom.
func (v *View) ZoomIn() {
	v.zoom = math.Min(MaxZoom, v.zoom+ZoomStep)
	v.clamp()
}

// ZoomOut decreases the zoom factor by one step, saturating at MinZoom.
func (v *View) ZoomOut() {
	v.zoom = math.Max(MinZoom, v.zoom-ZoomStep)
	v.clamp()
}

// Pan shifts the viewport by the given deltas, clamped to the canvas bounds.
func (v *View) Pan(dx, dy float64) {
	v.offsetX += dx
	v.offsetY += dy
	v.clamp()
}

func (v *View) clamp() {
	v.offsetX = clampOffset(v.offsetX, float64(v.width)*(v.zoom-1))
	v.offsetY = clampOffset(v.offsetY, float64(v.height)*(v.zoom-1))
}

func clampOffset(offset, span float64) float64 {
	if offset < -span {
		return -span
	}
	if offset > 0 {
		return 0
	}
	return offset
}

// Zoom returns the current zoom factor.
func (v *View) Zoom() float64 { return v.zoom }

// Offset returns the current pan offsets.
func (v *View) Offset() (x, y float64) { return v.offsetX, v.offsetY }

// Reset restores the identity transform.
func (v *View) Reset() {
	v.zoom = MinZoom
	v.offsetX = 0
	v.offsetY = 0
}

// Apply renders the visible viewport of src at the canvas's native size.
// The caller owns the returned Mat and must Close it.
func (v *View) Apply(src gocv.Mat) gocv.Mat {
	if v.zoom == MinZoom {
		return src.Clone()
	}

	// The viewport covers 1/zoom of the canvas, anchored by the offsets.
	viewW := float64(v.width) / v.zoom
	viewH := float64(v.height) / v.zoom
	x0 := -v.offsetX / v.zoom
	y0 := -v.offsetY / v.zoom

	x0 = math.Min(math.Max(x0, 0), float64(v.width)-viewW)
	y0 = math.Min(math.Max(y0, 0), float64(v.height)-viewH)

	rect := image.Rect(int(x0), int(y0), int(x0+viewW), int(y0+viewH))
	region := src.Region(rect)
	defer region.Close()

	dst := gocv.NewMat()
	gocv.Resize(region, &dst, image.Point{X: v.width, Y: v.height}, 0, 0, gocv.InterpolationLinear)
	return dst
}
