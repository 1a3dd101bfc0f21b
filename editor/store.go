package editor

import (
	"github.com/google/uuid"
)

// Op is a reducer bound to its arguments.
type Op func(State) State

// Store owns the current State and its undo history. It is driven from the
// single UI goroutine and is not safe for concurrent use.
type Store struct {
	state     State
	undoStack []State
	redoStack []State
	maxUndo   int

	stroke        bool
	strokePending bool

	listeners []func(State)
	newID     func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithMaxUndo bounds the undo history.
func WithMaxUndo(n int) Option {
	return func(s *Store) { s.maxUndo = n }
}

// NewStore returns a store seeded with initial.
func NewStore(initial State, opts ...Option) *Store {
	s := &Store{
		state:   initial,
		maxUndo: maxUndoDepth,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxUndo <= 0 {
		s.maxUndo = maxUndoDepth
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State { return s.state }

// NewID returns a fresh entity id.
func (s *Store) NewID() string { return s.newID() }

// Subscribe registers fn to be called after every change.
func (s *Store) Subscribe(fn func(State)) {
	s.listeners = append(s.listeners, fn)
}

// Dispatch applies an undoable operation. It reports whether the state changed.
func (s *Store) Dispatch(op Op) bool {
	next := op(s.state)
	if next.rev == s.state.rev {
		return false
	}
	if !s.stroke || s.strokePending {
		s.pushUndo()
		s.strokePending = false
	}
	s.redoStack = nil
	s.set(next)
	return true
}

// Update applies an operation that does not enter the undo history, such as
// selection or zoom changes.
func (s *Store) Update(op Op) bool {
	next := op(s.state)
	if next.rev == s.state.rev {
		return false
	}
	s.set(next)
	return true
}

// BeginStroke groups subsequent dispatches into a single undo entry until
// EndStroke.
func (s *Store) BeginStroke() {
	s.stroke = true
	s.strokePending = true
}

// EndStroke closes the current stroke.
func (s *Store) EndStroke() {
	s.stroke = false
	s.strokePending = false
}

func (s *Store) pushUndo() {
	if len(s.undoStack) >= s.maxUndo {
		s.undoStack = s.undoStack[1:]
	}
	s.undoStack = append(s.undoStack, s.state)
}

// Undo restores the previous snapshot. Zoom and grid visibility are kept
// from the current state. Any open stroke is closed.
func (s *Store) Undo() bool {
	s.EndStroke()
	if len(s.undoStack) == 0 {
		return false
	}
	idx := len(s.undoStack) - 1
	prev := s.undoStack[idx]
	s.undoStack = s.undoStack[:idx]
	s.redoStack = append(s.redoStack, s.state)
	s.set(s.restore(prev))
	return true
}

// Redo re-applies the last undone snapshot.
func (s *Store) Redo() bool {
	s.EndStroke()
	if len(s.redoStack) == 0 {
		return false
	}
	idx := len(s.redoStack) - 1
	next := s.redoStack[idx]
	s.redoStack = s.redoStack[:idx]
	s.undoStack = append(s.undoStack, s.state)
	s.set(s.restore(next))
	return true
}

// CanUndo reports whether there is history to undo.
func (s *Store) CanUndo() bool { return len(s.undoStack) > 0 }

// restore carries view settings across history jumps and bumps the revision
// so listeners see a change.
func (s *Store) restore(snap State) State {
	out := snap
	out.ZoomLevel = s.state.ZoomLevel
	out.ShowGrid = s.state.ShowGrid
	if s.state.rev >= out.rev {
		out.rev = s.state.rev + 1
	}
	if _, ok := out.File(out.SelectedFileID); !ok {
		out.SelectedFileID = ""
		out.SelectedLayerID = ""
		out.SelectedObjectID = ""
	}
	return out
}

func (s *Store) set(next State) {
	s.state = next
	for _, fn := range s.listeners {
		fn(next)
	}
}
