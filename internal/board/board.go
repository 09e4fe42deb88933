package board

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/chitram/internal/gesture"
)

// Brush defaults, matching the whiteboard's pen and eraser.
const (
	DefaultBrushThickness  = 5
	DefaultEraserThickness = 25
)

// panGain amplifies fingertip deltas while panning so the whole canvas is
// reachable without sweeping the hand across the full camera frame.
const panGain = 2.0

// Sink persists a committed canvas outside the engine. Write must not
// mutate the image.
type Sink interface {
	Write(filename string, img gocv.Mat) error
}

// Config holds construction options for a Board.
type Config struct {
	Width           int
	Height          int
	HistoryDepth    int
	BrushThickness  int
	EraserThickness int
	Sink            Sink
}

// DefaultConfig returns a Config with the whiteboard's native defaults.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		HistoryDepth:    DefaultHistoryDepth,
		BrushThickness:  DefaultBrushThickness,
		EraserThickness: DefaultEraserThickness,
	}
}

// Board is the whiteboard state engine. It owns the committed canvas, the
// shape preview surface, the undo/redo history, the tool mode, the view
// transform and the palette, and mutates them in response to dispatched
// gesture events and pointer motion.
//
// All methods are safe for concurrent use; the lock exists so state reads
// for rendering or broadcast never observe a half-applied command.
type Board struct {
	mu      sync.Mutex
	config  Config
	canvas  *Canvas
	history *History
	view    *View
	palette *Palette

	// preview is the scratch surface while a shape is being sized.
	preview       gocv.Mat
	previewActive bool

	mode       Mode
	erasing    bool
	shape      Shape
	shapeArmed bool
	anchor     image.Point
	hasAnchor  bool
	pointer    image.Point
	hasPointer bool

	lastGesture string
	status      string

	now func() time.Time // overridable for tests
}

// New creates a Board with a blank canvas and the history seeded with it.
func New(config Config) *Board {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	if config.HistoryDepth <= 0 {
		config.HistoryDepth = DefaultHistoryDepth
	}
	if config.BrushThickness <= 0 {
		config.BrushThickness = DefaultBrushThickness
	}
	if config.EraserThickness <= 0 {
		config.EraserThickness = DefaultEraserThickness
	}

	canvas := NewCanvas(config.Width, config.Height)
	history := NewHistory(config.HistoryDepth)
	history.Commit(canvas.Clone())

	return &Board{
		config:  config,
		canvas:  canvas,
		history: history,
		view:    NewView(config.Width, config.Height),
		palette: NewPalette(),
		now:     time.Now,
	}
}

// Handle dispatches one debounced gesture event onto the board state.
// Unknown gestures are ignored.
func (b *Board) Handle(ev gesture.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ev.Class < 0 || ev.Class >= gesture.NumClasses {
		return
	}

	b.lastGesture = ev.Name

	// Panning is sustained only while the pan pose keeps firing; any
	// other recognized gesture releases it.
	if b.mode == ModePanning && ev.Class != gesture.Pan {
		b.mode = ModeIdle
		b.setStatus("Pan mode deactivated")
	}

	pt := b.eventPoint(ev)

	switch ev.Class {
	case gesture.WriteStart:
		b.beginStroke(pt)
	case gesture.WriteStop:
		b.endInteraction()
		b.setStatus("Drawing stopped")
	case gesture.Erase:
		b.erasing = !b.erasing
		if b.erasing {
			b.setStatus("Eraser activated")
		} else {
			b.setStatus("Drawing mode")
		}
	case gesture.ZoomIn:
		b.view.ZoomIn()
		b.setStatus(fmt.Sprintf("Zoom: %d%%", int(b.view.Zoom()*100)))
	case gesture.ZoomOut:
		b.view.ZoomOut()
		b.setStatus(fmt.Sprintf("Zoom: %d%%", int(b.view.Zoom()*100)))
	case gesture.DrawShapes:
		b.shapeArmed = true
		b.setStatus("Shape mode: " + b.shape.String())
	case gesture.Undo:
		b.undo()
	case gesture.Redo:
		b.redo()
	case gesture.ChangeColor:
		b.palette.Cycle()
		b.setStatus("Color changed: " + b.palette.Name())
	case gesture.Save:
		if _, err := b.save(); err != nil {
			log.Printf("Save failed: %v", err)
			b.setStatus("Save failed")
		}
	case gesture.Pan:
		b.beginPan(pt)
	case gesture.ClearAll:
		b.clearAll()
	}
}

// eventPoint resolves the event's pointer position in canvas pixels,
// falling back to the last tracked pointer.
func (b *Board) eventPoint(ev gesture.Event) image.Point {
	if ev.HasPos {
		return image.Point{
			X: int(ev.X * float64(b.config.Width)),
			Y: int(ev.Y * float64(b.config.Height)),
		}
	}
	return b.pointer
}

// beginStroke starts a freehand stroke, or anchors a shape when the shape
// tool is armed. Any other interaction in progress is force-ended first so
// its work is committed rather than silently discarded.
func (b *Board) beginStroke(pt image.Point) {
	if b.mode == ModeDrawing || b.mode == ModeShapePreview {
		return
	}
	b.endInteraction()

	if b.shapeArmed {
		b.mode = ModeShapePreview
		b.anchor = pt
		b.hasAnchor = true
		b.setPreview(b.canvas.Clone())
		b.setStatus("Shape: " + b.shape.String())
	} else {
		b.mode = ModeDrawing
		b.setStatus("Drawing started")
	}

	b.pointer = pt
	b.hasPointer = true
}

// beginPan enters panning mode. A stroke or shape in progress is committed
// first.
func (b *Board) beginPan(pt image.Point) {
	if b.mode == ModePanning {
		return
	}
	b.endInteraction()

	b.mode = ModePanning
	b.pointer = pt
	b.hasPointer = true
	b.setStatus("Pan mode - move hand to pan")
}

// endInteraction finishes whatever interaction is active and returns the
// board to Idle. Completed strokes and shapes are committed to history;
// erasing strokes intentionally leave no history entry of their own.
func (b *Board) endInteraction() {
	switch b.mode {
	case ModeDrawing:
		if !b.erasing {
			b.commit()
		}
	case ModeShapePreview:
		if b.hasAnchor && b.previewActive {
			b.canvas.Restore(b.preview)
			b.commit()
		}
		b.shapeArmed = false
	}

	b.clearPreview()
	b.mode = ModeIdle
	b.hasAnchor = false
}

// commit snapshots the canvas into history.
func (b *Board) commit() {
	b.history.Commit(b.canvas.Clone())
}

func (b *Board) undo() {
	snapshot, ok := b.history.Undo()
	if !ok {
		return
	}
	b.canvas.Restore(snapshot)
	b.refreshPreview()
	b.setStatus("Undo performed")
}

func (b *Board) redo() {
	snapshot, ok := b.history.Redo()
	if !ok {
		return
	}
	b.canvas.Restore(snapshot)
	b.refreshPreview()
	b.setStatus("Redo performed")
}

func (b *Board) clearAll() {
	b.canvas.Clear()
	b.commit()
	b.refreshPreview()
	b.setStatus("Canvas cleared")
}

// save writes the committed canvas through the sink under a timestamped
// name. Canvas and history are untouched regardless of the outcome.
func (b *Board) save() (string, error) {
	if b.config.Sink == nil {
		return "", fmt.Errorf("no persistence sink configured")
	}

	filename := fmt.Sprintf("whiteboard_%s.png", b.now().Format("20060102_150405"))
	if err := b.config.Sink.Write(filename, *b.canvas.Mat()); err != nil {
		return "", err
	}

	b.setStatus("Saved as " + filename)
	return filename, nil
}

// SaveNow persists the committed canvas on demand, outside the gesture
// path (tray menu, HTTP).
func (b *Board) SaveNow() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save()
}

// MovePointer feeds one frame's fingertip position into the active
// interaction: stroke segments while drawing, preview re-render while
// sizing a shape, viewport deltas while panning.
func (b *Board) MovePointer(pt image.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.mode {
	case ModeDrawing:
		if b.hasPointer {
			col, thickness := b.brush()
			b.canvas.Line(b.pointer, pt, col, thickness)
		}
	case ModeShapePreview:
		if b.hasAnchor {
			col, thickness := b.brush()
			b.setPreview(b.canvas.Clone())
			renderShape(&b.preview, b.shape, b.anchor, pt, col, thickness)
		}
	case ModePanning:
		if b.hasPointer {
			dx := float64(pt.X-b.pointer.X) * panGain
			dy := float64(pt.Y-b.pointer.Y) * panGain
			b.view.Pan(dx, dy)
		}
	}

	b.pointer = pt
	b.hasPointer = true
}

// PointerLost records that hand tracking dropped this frame. Panning ends
// immediately; a stroke survives but will not stitch across the gap.
func (b *Board) PointerLost() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mode == ModePanning {
		b.mode = ModeIdle
		b.setStatus("Pan mode deactivated")
	}
	b.hasPointer = false
}

// brush returns the active stroke color and thickness.
func (b *Board) brush() (color.RGBA, int) {
	if b.erasing {
		return eraserColor, b.config.EraserThickness
	}
	return b.palette.Color(), b.config.BrushThickness
}

// CycleShape advances the shape tool to the next kind.
func (b *Board) CycleShape() Shape {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shape = b.shape.Next()
	b.setStatus("Shape changed: " + b.shape.String())
	return b.shape
}

// CycleColor advances the palette cursor.
func (b *Board) CycleColor() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.palette.Cycle()
	b.setStatus("Color changed: " + b.palette.Name())
	return b.palette.Name()
}

func (b *Board) setPreview(mat gocv.Mat) {
	if b.previewActive {
		b.preview.Close()
	}
	b.preview = mat
	b.previewActive = true
}

func (b *Board) clearPreview() {
	if b.previewActive {
		b.preview.Close()
		b.previewActive = false
	}
}

// refreshPreview rebases an active shape preview onto the current canvas,
// so undo/redo/clear under a live preview does not resurrect stale pixels.
func (b *Board) refreshPreview() {
	if b.previewActive {
		b.setPreview(b.canvas.Clone())
	}
}

func (b *Board) setStatus(msg string) {
	b.status = msg
}

// Render composites the board for presentation: the preview surface while
// a shape is being sized, the committed canvas otherwise, with the view
// transform applied. The caller owns the returned Mat and must Close it.
func (b *Board) Render() gocv.Mat {
	b.mu.Lock()
	defer b.mu.Unlock()

	src := *b.canvas.Mat()
	if b.previewActive {
		src = b.preview
	}
	return b.view.Apply(src)
}

// Snapshot returns a copy of the committed canvas without the view
// transform. The caller owns the returned Mat and must Close it.
func (b *Board) Snapshot() gocv.Mat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canvas.Clone()
}

// State is a consistent read of the board for rendering and broadcast.
type State struct {
	Mode         string  `json:"mode"`
	Erasing      bool    `json:"erasing"`
	Color        string  `json:"color"`
	ColorIndex   int     `json:"color_index"`
	Shape        string  `json:"shape"`
	ShapeArmed   bool    `json:"shape_armed"`
	Zoom         float64 `json:"zoom"`
	OffsetX      float64 `json:"offset_x"`
	OffsetY      float64 `json:"offset_y"`
	LastGesture  string  `json:"last_gesture"`
	HistoryDepth int     `json:"history_depth"`
	RedoDepth    int     `json:"redo_depth"`
	Status       string  `json:"status"`
}

// State returns a consistent snapshot of the board's non-pixel state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	offsetX, offsetY := b.view.Offset()
	return State{
		Mode:         b.mode.String(),
		Erasing:      b.erasing,
		Color:        b.palette.Name(),
		ColorIndex:   b.palette.Index(),
		Shape:        b.shape.String(),
		ShapeArmed:   b.shapeArmed,
		Zoom:         b.view.Zoom(),
		OffsetX:      offsetX,
		OffsetY:      offsetY,
		LastGesture:  b.lastGesture,
		HistoryDepth: b.history.Len(),
		RedoDepth:    b.history.RedoLen(),
		Status:       b.status,
	}
}

// Size returns the canvas dimensions in pixels.
func (b *Board) Size() (width, height int) {
	return b.config.Width, b.config.Height
}

// Mode returns the current interaction mode.
func (b *Board) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// Close releases the canvas, preview and history surfaces.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearPreview()
	b.history.Close()
	b.canvas.Close()
}
