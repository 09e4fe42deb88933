package board

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// Shape identifies one of the whiteboard's shape tools.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeCircle
	ShapeLine
	ShapeArrow

	numShapes
)

// String returns the wire name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	case ShapeArrow:
		return "arrow"
	}
	return "unknown"
}

// Next returns the following shape in the cycle, wrapping around.
func (s Shape) Next() Shape {
	return (s + 1) % numShapes
}

// renderShape draws the given shape between anchor and pt onto mat.
// Circles are centered on the midpoint with a radius of half the
// anchor-to-pointer distance.
func renderShape(mat *gocv.Mat, s Shape, anchor, pt image.Point, col color.RGBA, thickness int) {
	switch s {
	case ShapeRectangle:
		gocv.Rectangle(mat, image.Rectangle{Min: anchor, Max: pt}.Canon(), col, thickness)
	case ShapeCircle:
		center := image.Point{
			X: (anchor.X + pt.X) / 2,
			Y: (anchor.Y + pt.Y) / 2,
		}
		dx := float64(pt.X - anchor.X)
		dy := float64(pt.Y - anchor.Y)
		radius := int(math.Sqrt(dx*dx+dy*dy) / 2)
		gocv.Circle(mat, center, radius, col, thickness)
	case ShapeLine:
		gocv.Line(mat, anchor, pt, col, thickness)
	case ShapeArrow:
		gocv.ArrowedLine(mat, anchor, pt, col, thickness)
	}
}
