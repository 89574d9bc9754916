package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Buffer holds document text addressed by byte offsets.
// The content is kept as a single contiguous byte slice; the search engine
// consumes whole-buffer or bounded substrings, so contiguous storage keeps
// Text and TextRange allocation-free beyond the string conversion.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	content    []byte
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.content = []byte(b.normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)

	// Read everything before normalizing so CRLF sequences split across
	// read boundaries are handled correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	b.content = []byte(b.normalizeLineEndings(string(data)))
	return b, nil
}

// normalizeLineEndings converts line endings to the buffer's preferred style.
func (b *Buffer) normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding == LineEndingCRLF {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}

// Read operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.content)
}

// TextRange returns text in the given byte range.
// Out-of-bounds offsets are clamped.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := ByteOffset(len(b.content))
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return string(b.content[start:end])
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.content))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines.
// An empty buffer has one (empty) line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := uint32(1)
	for _, c := range b.content {
		if c == '\n' {
			count++
		}
	}
	return count
}

// LineText returns the text of a specific line without its line ending.
// Returns the empty string for out-of-range lines.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end, ok := b.lineBounds(line)
	if !ok {
		return ""
	}
	return string(b.content[start:end])
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, _, ok := b.lineBounds(line)
	if !ok {
		return ByteOffset(len(b.content))
	}
	return start
}

// lineBounds returns the [start, end) byte range of a line, excluding the
// trailing newline. Caller must hold the lock.
func (b *Buffer) lineBounds(line uint32) (ByteOffset, ByteOffset, bool) {
	var cur uint32
	start := ByteOffset(0)
	for i, c := range b.content {
		if cur == line && c == '\n' {
			return start, ByteOffset(i), true
		}
		if c == '\n' {
			cur++
			start = ByteOffset(i + 1)
		}
	}
	if cur == line {
		return start, ByteOffset(len(b.content)), true
	}
	return 0, 0, false
}

// OffsetToPoint converts a byte offset to a line/column position.
// Offsets past the end of the buffer map to the final position.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset > ByteOffset(len(b.content)) {
		offset = ByteOffset(len(b.content))
	}

	var p Point
	lineStart := ByteOffset(0)
	for i := ByteOffset(0); i < offset; i++ {
		if b.content[i] == '\n' {
			p.Line++
			lineStart = i + 1
		}
	}
	p.Column = uint32(offset - lineStart)
	return p
}

// Write operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > ByteOffset(len(b.content)) {
		return 0, ErrOffsetOutOfRange
	}

	text = b.normalizeLineEndings(text)
	b.content = splice(b.content, offset, offset, text)
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.content)) {
		return ErrRangeInvalid
	}

	b.content = splice(b.content, start, end, "")
	b.revisionID = NewRevisionID()
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.content)) {
		return 0, ErrRangeInvalid
	}

	text = b.normalizeLineEndings(text)
	b.content = splice(b.content, start, end, text)
	b.revisionID = NewRevisionID()

	return start + ByteOffset(len(text)), nil
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// splice replaces content[start:end] with text, always allocating a fresh
// slice so previously returned strings stay valid.
func splice(content []byte, start, end ByteOffset, text string) []byte {
	out := make([]byte, 0, ByteOffset(len(content))-(end-start)+ByteOffset(len(text)))
	out = append(out, content[:start]...)
	out = append(out, text...)
	out = append(out, content[end:]...)
	return out
}
