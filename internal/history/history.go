// Package history implements the per-panel undo/redo engine: a bounded
// stack of stroke snapshots with dirty tracking against a saved entry.
package history

import (
	"time"

	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
	"github.com/Higashi-Kota/drawing-explorer/internal/drawing"
)

// Entry is one point in a panel's undo history.
type Entry struct {
	Strokes   []drawing.Stroke
	Timestamp time.Time
	seq       uint64
}

// State is a single panel's undo/redo history. The zero value is not
// usable; construct one with New.
type State struct {
	undoStack []Entry
	redoStack []Entry
	maxSize   int
	savedSeq  int64 // -1 means no saved entry
	nextSeq   uint64
}

// New returns an empty history bounded to maxSize undo entries. A
// maxSize below 1 is treated as 1.
func New(maxSize int) *State {
	if maxSize < 1 {
		maxSize = 1
	}
	return &State{maxSize: maxSize, savedSeq: -1}
}

// nowFunc is overridable in tests that need deterministic timestamps;
// production code always uses time.Now.
var nowFunc = time.Now

// Initialize replaces the state with a single entry marked as saved,
// clearing both stacks and any dirty state.
func (s *State) Initialize(strokes []drawing.Stroke) {
	entry := s.newEntry(strokes)
	s.undoStack = []Entry{entry}
	s.redoStack = nil
	s.savedSeq = int64(entry.seq)
}

// Push appends a new entry to the undo stack, dropping from the front
// if maxSize is exceeded, and clears the redo stack.
func (s *State) Push(strokes []drawing.Stroke) {
	entry := s.newEntry(strokes)
	s.undoStack = append(s.undoStack, entry)
	if len(s.undoStack) > s.maxSize {
		s.undoStack = s.undoStack[len(s.undoStack)-s.maxSize:]
	}
	s.redoStack = nil
	debug.Log(debug.HISTORY, "Push: %d strokes (stack %d/%d)", len(strokes), len(s.undoStack), s.maxSize)
}

func (s *State) newEntry(strokes []drawing.Stroke) Entry {
	s.nextSeq++
	return Entry{Strokes: copyStrokes(strokes), Timestamp: nowFunc(), seq: s.nextSeq}
}

// Undo requires len(undoStack) > 1. It moves the current top onto the
// redo stack and returns the new top's strokes. ok is false (no
// mutation) if there is nothing to undo.
func (s *State) Undo() (strokes []drawing.Stroke, ok bool) {
	if len(s.undoStack) <= 1 {
		return nil, false
	}
	top := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = append(s.redoStack, top)
	debug.Log(debug.HISTORY, "Undo: stack %d, redo %d", len(s.undoStack), len(s.redoStack))
	return s.current().Strokes, true
}

// Redo requires a non-empty redo stack. It moves the top of the redo
// stack back onto the undo stack. ok is false if there is nothing to
// redo.
func (s *State) Redo() (strokes []drawing.Stroke, ok bool) {
	if len(s.redoStack) == 0 {
		return nil, false
	}
	top := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = append(s.undoStack, top)
	return top.Strokes, true
}

// MarkSaved sets savedEntry to the current top of the undo stack.
func (s *State) MarkSaved() {
	if len(s.undoStack) == 0 {
		s.savedSeq = -1
		return
	}
	s.savedSeq = int64(s.current().seq)
}

// Clear empties both stacks and clears savedEntry.
func (s *State) Clear() {
	s.undoStack = nil
	s.redoStack = nil
	s.savedSeq = -1
}

func (s *State) current() Entry {
	if len(s.undoStack) == 0 {
		return Entry{}
	}
	return s.undoStack[len(s.undoStack)-1]
}

// Current returns the strokes at the top of the undo stack, or nil if
// the history is empty.
func (s *State) Current() []drawing.Stroke {
	if len(s.undoStack) == 0 {
		return nil
	}
	return s.current().Strokes
}

// CanUndo reports whether Undo would succeed.
func (s *State) CanUndo() bool { return len(s.undoStack) > 1 }

// CanRedo reports whether Redo would succeed.
func (s *State) CanRedo() bool { return len(s.redoStack) > 0 }

// IsDirty reports whether the current top differs from savedEntry,
// compared by entry identity (the sequence number assigned at
// creation), not by value. With no savedEntry, any non-empty history
// is considered dirty.
func (s *State) IsDirty() bool {
	if s.savedSeq >= 0 {
		if len(s.undoStack) == 0 {
			return true
		}
		return int64(s.current().seq) != s.savedSeq
	}
	return len(s.undoStack) > 0
}

// Snapshot returns a copy-safe view of the current state for a host to
// hold across a re-render without risking a later mutation reaching
// back into owned state.
type Snapshot struct {
	Strokes []drawing.Stroke
	CanUndo bool
	CanRedo bool
	IsDirty bool
}

// Snapshot returns a value copy of the visible state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Strokes: copyStrokes(s.Current()),
		CanUndo: s.CanUndo(),
		CanRedo: s.CanRedo(),
		IsDirty: s.IsDirty(),
	}
}

// MarshalStrokes encodes the current top-of-stack strokes as a ".draw"
// document via internal/drawing, without this package importing
// persistence.
func (s *State) MarshalStrokes() ([]byte, error) {
	return drawing.Marshal(drawing.File{Strokes: s.Current()})
}

// UnmarshalStrokes decodes a ".draw" document into a stroke slice
// suitable for Initialize or Push.
func UnmarshalStrokes(data []byte) ([]drawing.Stroke, error) {
	f, err := drawing.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return f.Strokes, nil
}

func copyStrokes(in []drawing.Stroke) []drawing.Stroke {
	if in == nil {
		return nil
	}
	out := make([]drawing.Stroke, len(in))
	copy(out, in)
	return out
}
