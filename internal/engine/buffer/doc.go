// Package buffer provides the text buffer the search engine operates on.
//
// A Buffer holds document text addressed by byte offsets. Positions are
// expressed either as a ByteOffset (the fundamental addressing unit) or as a
// Point (line/column, used for display). Ranges are half-open [Start, End).
//
// All Buffer methods are safe for concurrent use, but the search engine
// itself assumes a single caller at a time; the buffer's locking only
// protects individual reads and writes, not multi-step operations.
package buffer
