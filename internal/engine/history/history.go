package history

import (
	"errors"
	"sync"

	"github.com/mvickers/quarry/internal/engine/buffer"
	"github.com/mvickers/quarry/internal/engine/cursor"
)

// Errors returned by history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxDepth is the default number of undo steps retained.
const DefaultMaxDepth = 1000

// entry is one undo step: a named group of operations applied in order.
type entry struct {
	name string
	ops  []Operation
}

// History tracks buffer edits as undoable steps.
type History struct {
	mu        sync.Mutex
	undoStack []*entry
	redoStack []*entry
	open      *entry
	depth     int
	maxDepth  int
}

// New creates an empty history.
func New() *History {
	return &History{maxDepth: DefaultMaxDepth}
}

// BeginGroup starts a named group. Operations recorded until the matching
// EndGroup become a single undo step. Groups nest; inner groups fold into the
// outermost one.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		h.open = &entry{name: name}
	}
	h.depth++
}

// EndGroup closes the current group. The outermost EndGroup commits the
// group as one undo step; an empty group is discarded.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	if h.open != nil && len(h.open.ops) > 0 {
		h.push(h.open)
	}
	h.open = nil
}

// GroupScope starts a group and returns a scope whose End method closes it.
// Intended for use with defer.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// GroupScope closes a group exactly once, usually via defer.
type GroupScope struct {
	history *History
	active  bool
}

// End ends the group scope. Safe to call multiple times.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Record adds an operation to the open group, or as its own undo step when
// no group is open. Recording clears the redo stack.
func (h *History) Record(op Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil
	if h.open != nil {
		h.open.ops = append(h.open.ops, op)
		return
	}
	h.push(&entry{ops: []Operation{op}})
}

// push appends an entry to the undo stack, trimming to maxDepth.
// Caller must hold the lock.
func (h *History) push(e *entry) {
	h.undoStack = append(h.undoStack, e)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
}

// CanUndo returns true if there is at least one undoable step.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one redoable step.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undoable steps.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// Undo reverses the most recent step and returns the selection that was
// active before it.
func (h *History) Undo(buf *buffer.Buffer) (cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return cursor.Selection{}, ErrNothingToUndo
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	// Inverse operations in reverse order so later offsets stay valid.
	for i := len(e.ops) - 1; i >= 0; i-- {
		if err := e.ops[i].Invert().Apply(buf); err != nil {
			return cursor.Selection{}, err
		}
	}

	h.redoStack = append(h.redoStack, e)
	return e.ops[0].SelBefore, nil
}

// Redo re-applies the most recently undone step and returns the selection
// that was active after it.
func (h *History) Redo(buf *buffer.Buffer) (cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return cursor.Selection{}, ErrNothingToRedo
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	for _, op := range e.ops {
		if err := op.Apply(buf); err != nil {
			return cursor.Selection{}, err
		}
	}

	h.undoStack = append(h.undoStack, e)
	return e.ops[len(e.ops)-1].SelAfter, nil
}
