package state

import "sync"

// RecordKind tags the variants of a history record.
type RecordKind int

const (
	// RecordStroke adds one stroke to the board.
	RecordStroke RecordKind = iota
	// RecordClear empties the board. Undoing it restores everything drawn
	// before it; no snapshot is stored because the visible set is always
	// recomputed by replaying the undo stack.
	RecordClear
)

// Record is one undoable action.
type Record struct {
	Kind   RecordKind
	Stroke Stroke // set when Kind == RecordStroke
}

// Surface is the drawing target History replays onto. The Fyne board and
// the offscreen renderer both satisfy it.
type Surface interface {
	Clear()
	DrawStroke(s Stroke)
}

// History is the linear undo/redo log of committed actions. Committing a
// new action always empties the redo stack; branching history is not
// supported. A mutex guards the stacks because the spectator feed and the
// AI capture goroutine read the visible strokes off the UI thread.
type History struct {
	mu   sync.RWMutex
	undo []Record
	redo []Record
}

func NewHistory() *History {
	return &History{}
}

// Commit pushes r onto the undo stack and drops any redoable actions.
// The caller has already rendered the action; Commit is bookkeeping only.
func (h *History) Commit(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append(h.undo, r)
	h.redo = h.redo[:0]
}

// CommitStroke records a finished stroke.
func (h *History) CommitStroke(s Stroke) {
	h.Commit(Record{Kind: RecordStroke, Stroke: s})
}

// Clear commits a clear action. The board looks empty afterwards but the
// action is undoable like any other.
func (h *History) Clear() {
	h.Commit(Record{Kind: RecordClear})
}

// Undo moves the most recent action onto the redo stack. It returns false
// and changes nothing when there is nothing to undo. The caller re-renders
// from Visible (full replay) afterwards.
func (h *History) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, last)
	return true
}

// Redo re-applies the most recently undone action, false when the redo
// stack is empty.
func (h *History) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, last)
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.undo) > 0
}

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.redo) > 0
}

// Len returns the number of applied (undoable) actions.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.undo)
}

// Records returns a copy of the undo stack in commit order.
func (h *History) Records() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Record, len(h.undo))
	copy(out, h.undo)
	return out
}

// Visible replays the undo stack and returns the strokes that should be on
// the surface: every stroke committed after the most recent clear, in
// commit order.
func (h *History) Visible() []Stroke {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []Stroke
	for _, r := range h.undo {
		switch r.Kind {
		case RecordClear:
			out = out[:0]
		case RecordStroke:
			out = append(out, r.Stroke.Clone())
		}
	}
	return out
}

// Replay clears the surface and redraws every visible stroke onto it.
// Redrawing from scratch after each undo is O(total strokes) but keeps the
// surface trivially consistent with the log; interactive sessions stay in
// the hundreds of strokes.
func (h *History) Replay(s Surface) {
	strokes := h.Visible()
	s.Clear()
	for _, st := range strokes {
		s.DrawStroke(st)
	}
}
