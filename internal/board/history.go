package board

import "gocv.io/x/gocv"

// DefaultHistoryDepth bounds the undo and redo stacks. Snapshots older than
// the bound silently age out; that loss is by design, not an error.
const DefaultHistoryDepth = 50

// History is the bounded undo/redo stack of canvas snapshots. The top of
// the undo stack is always the currently committed canvas; the stack never
// drops below one entry once seeded.
//
// History owns every Mat it holds and closes snapshots as they are evicted.
type History struct {
	undo  []gocv.Mat
	redo  []gocv.Mat
	depth int
}

// NewHistory creates a History bounded to depth snapshots per stack.
// Depth values <= 0 fall back to DefaultHistoryDepth.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{
		undo:  make([]gocv.Mat, 0, depth),
		redo:  make([]gocv.Mat, 0, depth),
		depth: depth,
	}
}

// Commit records a new snapshot as the current state. The History takes
// ownership of the Mat. Any pending redo entries are discarded, and the
// oldest undo entry is evicted once the depth bound is exceeded.
func (h *History) Commit(snapshot gocv.Mat) {
	h.clearRedo()

	if len(h.undo) >= h.depth {
		oldest := h.undo[0]
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
		oldest.Close()
	}
	h.undo = append(h.undo, snapshot)
}

// Undo steps back one snapshot. It returns the snapshot that is now
// current, still owned by the History, and false when fewer than two
// entries exist (the initial canvas is never popped).
func (h *History) Undo() (gocv.Mat, bool) {
	if len(h.undo) < 2 {
		return gocv.Mat{}, false
	}

	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	if len(h.redo) >= h.depth {
		oldest := h.redo[0]
		copy(h.redo, h.redo[1:])
		h.redo = h.redo[:len(h.redo)-1]
		oldest.Close()
	}
	h.redo = append(h.redo, top)

	return h.undo[len(h.undo)-1], true
}

// Redo reapplies the most recently undone snapshot. It returns the
// snapshot that is now current, still owned by the History, and false when
// nothing is undone.
func (h *History) Redo() (gocv.Mat, bool) {
	if len(h.redo) == 0 {
		return gocv.Mat{}, false
	}

	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)

	return top, true
}

// Len returns the number of snapshots on the undo stack.
func (h *History) Len() int {
	return len(h.undo)
}

// RedoLen returns the number of snapshots on the redo stack.
func (h *History) RedoLen() int {
	return len(h.redo)
}

func (h *History) clearRedo() {
	for _, m := range h.redo {
		m.Close()
	}
	h.redo = h.redo[:0]
}

// Close releases every held snapshot.
func (h *History) Close() {
	for _, m := range h.undo {
		m.Close()
	}
	h.undo = h.undo[:0]
	h.clearRedo()
}
