// Package gesture turns per-frame hand landmarks into debounced whiteboard
// commands: it buffers landmark windows, runs the gesture classifier, gates
// on confidence and suppresses repeated firings.
package gesture

import "time"

// Class identifies one of the gestures the classifier is trained on.
// The numeric values are the classifier's output indices and are a binding
// contract shared with the model and remote clients. Do not reorder.
type Class int

const (
	WriteStart Class = iota
	WriteStop
	Erase
	ZoomIn
	ZoomOut
	DrawShapes
	Undo
	Redo
	ChangeColor
	Save
	Pan
	ClearAll

	// NumClasses is the size of the classifier's probability vector.
	NumClasses = 12
)

// Unknown is returned for classifier indices outside the known set.
const Unknown Class = -1

var classNames = [NumClasses]string{
	"write_start",
	"write_stop",
	"erase",
	"zoom_in",
	"zoom_out",
	"draw_shapes",
	"undo",
	"redo",
	"change_color",
	"save",
	"pan",
	"clear_all",
}

// String returns the wire name of the class.
func (c Class) String() string {
	if c < 0 || int(c) >= NumClasses {
		return "unknown"
	}
	return classNames[c]
}

// ClassFromIndex maps a classifier output index to a Class.
// Indices outside [0, NumClasses) map to Unknown.
func ClassFromIndex(i int) Class {
	if i < 0 || i >= NumClasses {
		return Unknown
	}
	return Class(i)
}

// Event is a single recognized gesture, produced by the Recognizer and
// consumed by the Debouncer and the whiteboard dispatcher.
type Event struct {
	Class      Class     `json:"-"`
	Name       string    `json:"gesture"`
	Confidence float64   `json:"confidence"`
	X          float64   `json:"x"` // index-fingertip, normalized [0,1]
	Y          float64   `json:"y"`
	HasPos     bool      `json:"has_pos"`
	Timestamp  time.Time `json:"timestamp"`
}
