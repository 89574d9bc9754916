// Package editor provides the Document the search engine operates on.
//
// A Document bundles a text buffer with the single primary selection, the
// set of occurrence marks produced by mark-all, and an undo history. It is
// the concrete implementation of the search package's Target interface.
//
// Documents are not safe for concurrent use: the engine's call-and-return
// design assumes one caller at a time, the way an event-dispatch thread
// serializes access in a UI shell.
package editor

import (
	"io"

	"github.com/mvickers/quarry/internal/engine/buffer"
	"github.com/mvickers/quarry/internal/engine/cursor"
	"github.com/mvickers/quarry/internal/engine/history"
	"github.com/mvickers/quarry/internal/event"
)

const eventSource = "editor"

// Document is an editable text document with selection, occurrence marks,
// and undo history.
type Document struct {
	buf      *buffer.Buffer
	sel      cursor.Selection
	marks    []buffer.Range
	hist     *history.History
	bus      *event.Bus
	revealed buffer.Range
}

// NewDocument creates a document with the given initial content.
func NewDocument(text string, opts ...buffer.Option) *Document {
	return &Document{
		buf:  buffer.NewBufferFromString(text, opts...),
		hist: history.New(),
		bus:  event.NewBus(),
	}
}

// NewDocumentFromReader creates a document from an io.Reader.
func NewDocumentFromReader(r io.Reader, opts ...buffer.Option) (*Document, error) {
	buf, err := buffer.NewBufferFromReader(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{buf: buf, hist: history.New(), bus: event.NewBus()}, nil
}

// Buffer returns the underlying text buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Bus returns the document's event bus.
func (d *Document) Bus() *event.Bus {
	return d.bus
}

// Text returns the full document text.
func (d *Document) Text() string {
	return d.buf.Text()
}

// Len returns the document length in bytes.
func (d *Document) Len() buffer.ByteOffset {
	return d.buf.Len()
}

// Selection returns the primary selection.
func (d *Document) Selection() cursor.Selection {
	return d.sel
}

// SetSelection sets the primary selection, clamped to the document bounds.
func (d *Document) SetSelection(sel cursor.Selection) {
	d.sel = sel.Clamp(d.buf.Len())
}

// ReplaceRange replaces the text in r, records the edit for undo, and
// publishes a content-changed event.
func (d *Document) ReplaceRange(r buffer.Range, text string) error {
	old := d.buf.TextRange(r.Start, r.End)

	op := history.NewOperation(r, old, text)
	op.SelBefore = d.sel

	newEnd, err := d.buf.Replace(r.Start, r.End, text)
	if err != nil {
		return err
	}

	op.SelAfter = cursor.NewCursorSelection(newEnd)
	d.hist.Record(op)

	d.bus.Publish(event.New(event.TopicContentChanged, r, eventSource))
	return nil
}

// Change runs fn inside a named undo group so every edit it performs becomes
// a single undo step. Nested calls fold into the outermost group.
func (d *Document) Change(name string, fn func() error) error {
	scope := d.hist.GroupScope(name)
	defer scope.End()
	return fn()
}

// MarkOccurrence adds an occurrence mark. Zero-length ranges are ignored.
func (d *Document) MarkOccurrence(r buffer.Range) {
	if r.IsEmpty() {
		return
	}
	d.marks = append(d.marks, r)
	d.bus.Publish(event.New(event.TopicMarkAdded, r, eventSource))
}

// ClearOccurrences removes all occurrence marks and returns how many there
// were. The cleared event is published even when the set was already empty
// so dependent surfaces always refresh.
func (d *Document) ClearOccurrences() int {
	n := len(d.marks)
	d.marks = nil
	d.bus.Publish(event.New(event.TopicMarksCleared, n, eventSource))
	return n
}

// Occurrences returns a copy of the current occurrence marks.
func (d *Document) Occurrences() []buffer.Range {
	out := make([]buffer.Range, len(d.marks))
	copy(out, d.marks)
	return out
}

// Reveal records the range a UI would scroll into view.
func (d *Document) Reveal(r buffer.Range) {
	d.revealed = r
}

// LastRevealed returns the most recently revealed range.
func (d *Document) LastRevealed() buffer.Range {
	return d.revealed
}

// Undo reverses the most recent undo step and restores its selection.
func (d *Document) Undo() error {
	sel, err := d.hist.Undo(d.buf)
	if err != nil {
		return err
	}
	d.SetSelection(sel)
	d.bus.Publish(event.New(event.TopicContentChanged, nil, eventSource))
	return nil
}

// Redo re-applies the most recently undone step.
func (d *Document) Redo() error {
	sel, err := d.hist.Redo(d.buf)
	if err != nil {
		return err
	}
	d.SetSelection(sel)
	d.bus.Publish(event.New(event.TopicContentChanged, nil, eventSource))
	return nil
}

// CanUndo returns true if an undo step is available.
func (d *Document) CanUndo() bool {
	return d.hist.CanUndo()
}
