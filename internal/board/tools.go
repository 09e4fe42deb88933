package board

// Mode is the whiteboard's current interaction mode. Exactly one mode is
// active at a time; erasing is an orthogonal flag on top of Drawing since
// erasing reuses the stroke mechanics with a different brush.
type Mode int

const (
	// ModeIdle means no interaction is in progress.
	ModeIdle Mode = iota
	// ModeDrawing means a freehand stroke is being laid down.
	ModeDrawing
	// ModeShapePreview means a shape is being interactively sized on the
	// preview surface.
	ModeShapePreview
	// ModePanning means pointer motion shifts the viewport.
	ModePanning
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModeShapePreview:
		return "shape_preview"
	case ModePanning:
		return "panning"
	}
	return "unknown"
}
