package search

import (
	"fmt"

	"github.com/mvickers/quarry/internal/engine/buffer"
)

// Result reports the outcome of an engine call.
type Result struct {
	// Match is the range of the found (or last replaced) match, nil when
	// nothing was found.
	Match *buffer.Range

	// Count is the number of replacements performed. Only meaningful for
	// ReplaceAll; Replace stamps it 1 when a replacement occurred.
	Count int

	// Marked is the number of occurrence marks produced by mark-all.
	Marked int
}

// Found returns true when the call located a match.
func (r *Result) Found() bool {
	return r.Match != nil
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	if !r.Found() {
		return fmt.Sprintf("not found (marked %d)", r.Marked)
	}
	return fmt.Sprintf("match %v, count %d, marked %d", *r.Match, r.Count, r.Marked)
}
