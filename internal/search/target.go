package search

import (
	"github.com/mvickers/quarry/internal/engine/buffer"
	"github.com/mvickers/quarry/internal/engine/cursor"
)

// Target is the document surface the engine operates on. editor.Document is
// the canonical implementation; tests may substitute their own.
type Target interface {
	// Text returns the full document text.
	Text() string

	// Selection returns the primary selection; a caret is an empty selection.
	Selection() cursor.Selection

	// SetSelection makes sel the primary selection.
	SetSelection(sel cursor.Selection)

	// ReplaceRange replaces the text in r.
	ReplaceRange(r buffer.Range, text string) error

	// MarkOccurrence adds a mark-all occurrence highlight.
	MarkOccurrence(r buffer.Range)

	// ClearOccurrences removes all occurrence highlights and returns how
	// many there were. Implementations must notify dependents even when the
	// set was already empty.
	ClearOccurrences() int

	// Change runs fn inside a named atomic-undo scope so that every edit fn
	// performs undoes as a single step. Nested calls fold into the
	// outermost scope.
	Change(name string, fn func() error) error

	// Reveal asks the document to bring r into view.
	Reveal(r buffer.Range)
}
