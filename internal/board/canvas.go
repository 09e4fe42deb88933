// Package board implements the whiteboard state engine: the raster canvas,
// bounded undo/redo history, tool modes, shape previews, view transform and
// the dispatcher that maps gesture events onto all of them.
package board

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Canvas default dimensions, matching the whiteboard's native resolution.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

// Canvas is the committed raster drawing surface: a white 3-channel image
// mutated only through its drawing primitives and Clear.
type Canvas struct {
	mat    gocv.Mat
	width  int
	height int
}

// NewCanvas creates a blank white canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Canvas{
		mat:    whiteMat(width, height),
		width:  width,
		height: height,
	}
}

func whiteMat(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0),
		height, width, gocv.MatTypeCV8UC3,
	)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Mat exposes the underlying matrix for encoding and sinks. Callers must
// not retain the pointer across mutations.
func (c *Canvas) Mat() *gocv.Mat { return &c.mat }

// Clone returns a snapshot copy of the canvas. The caller owns the
// returned Mat and must Close it.
func (c *Canvas) Clone() gocv.Mat {
	return c.mat.Clone()
}

// Restore copies the given snapshot's pixels into the canvas. The snapshot
// remains owned by the caller.
func (c *Canvas) Restore(snapshot gocv.Mat) {
	snapshot.CopyTo(&c.mat)
}

// Line draws a line segment between two points.
func (c *Canvas) Line(from, to image.Point, col color.RGBA, thickness int) {
	gocv.Line(&c.mat, from, to, col, thickness)
}

// Clear resets the canvas to blank white.
func (c *Canvas) Clear() {
	white := whiteMat(c.width, c.height)
	white.CopyTo(&c.mat)
	white.Close()
}

// Close releases the underlying matrix.
func (c *Canvas) Close() {
	if !c.mat.Empty() {
		c.mat.Close()
	}
}
