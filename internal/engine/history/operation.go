package history

import (
	"github.com/mvickers/quarry/internal/engine/buffer"
	"github.com/mvickers/quarry/internal/engine/cursor"
)

// Operation records a single reversible buffer edit: the range that was
// replaced, the text it held before, and the text that replaced it.
type Operation struct {
	Range   buffer.Range
	OldText string
	NewText string

	// Selections around the edit, restored on undo/redo.
	SelBefore cursor.Selection
	SelAfter  cursor.Selection
}

// NewOperation creates an operation for replacing r (holding oldText) with
// newText.
func NewOperation(r buffer.Range, oldText, newText string) Operation {
	return Operation{Range: r, OldText: oldText, NewText: newText}
}

// Invert returns the operation that undoes this one.
func (op Operation) Invert() Operation {
	return Operation{
		Range: buffer.Range{
			Start: op.Range.Start,
			End:   op.Range.Start + buffer.ByteOffset(len(op.NewText)),
		},
		OldText:   op.NewText,
		NewText:   op.OldText,
		SelBefore: op.SelAfter,
		SelAfter:  op.SelBefore,
	}
}

// Apply performs the operation against the buffer.
func (op Operation) Apply(buf *buffer.Buffer) error {
	_, err := buf.Replace(op.Range.Start, op.Range.End, op.NewText)
	return err
}
