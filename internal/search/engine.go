package search

import (
	"strings"

	"github.com/mvickers/quarry/internal/engine/buffer"
	"github.com/mvickers/quarry/internal/engine/cursor"
)

// Find locates the next match for ctx and makes it the active selection.
//
// When mark-all is enabled, existing occurrence marks are cleared and every
// match in the document is re-marked first; the result carries the marked
// count. An empty search text yields a not-found result (with marks already
// cleared). Forward search starts after the current selection so an
// already-selected match is not found again; backward search ends before it.
//
// A malformed regex pattern is returned as an error.
func Find(doc Target, ctx *Context) (*Result, error) {
	res, _, err := find(doc, ctx, false)
	return res, err
}

// find is the shared find path. expandReplace additionally computes the
// replacement text for the located match.
func find(doc Target, ctx *Context, expandReplace bool) (*Result, *matchData, error) {
	res := &Result{}
	if ctx.MarkAll() {
		res.Marked = markAll(doc, ctx)
	}
	if ctx.SearchText() == "" {
		return res, nil, nil
	}

	text := doc.Text()
	sel := doc.Selection()

	// Forward: start after any existing selection. Backward: end before it.
	var start buffer.ByteOffset
	if ctx.Forward() {
		start = sel.End()
	} else {
		start = sel.Start()
	}
	if start > buffer.ByteOffset(len(text)) {
		start = buffer.ByteOffset(len(text))
	}
	if start < 0 {
		start = 0
	}

	// Bound the searched region instead of always scanning the whole text.
	var haystack string
	if ctx.Forward() {
		haystack = text[start:]
	} else {
		haystack = text[:start]
	}

	m, err := matchIn(haystack, ctx, expandReplace)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return res, nil, nil
	}

	if ctx.Forward() {
		m.rng = m.rng.Shift(start)
	}
	doc.SetSelection(cursor.NewRangeSelection(m.rng))
	doc.Reveal(m.rng)
	res.Match = &m.rng
	return res, m, nil
}

// Replace replaces the next match for ctx with the replacement text and
// pre-selects the match after it. The whole operation, including the text
// edit, is one atomic undo step.
//
// For regex searches the replacement template is expanded against the
// match's capture groups; a reference to a group the pattern does not define
// is returned as a GroupError.
func Replace(doc Target, ctx *Context) (*Result, error) {
	var res *Result
	err := doc.Change("replace", func() error {
		// Collapse the selection toward the search direction so a currently
		// selected match is found and replaced rather than skipped.
		sel := doc.Selection()
		if ctx.Forward() {
			doc.SetSelection(sel.CollapseToStart())
		} else {
			doc.SetSelection(sel.CollapseToEnd())
		}

		found, m, err := find(doc, ctx, true)
		if err != nil {
			return err
		}
		res = found
		if m == nil {
			return nil
		}

		if err := doc.ReplaceRange(m.rng, m.replacement); err != nil {
			return err
		}
		res.Count = 1

		if ctx.Forward() {
			// Past the inserted text, so the follow-up find cannot match
			// inside the replacement.
			doc.SetSelection(cursor.NewCursorSelection(m.rng.Start + buffer.ByteOffset(len(m.replacement))))
		} else {
			doc.SetSelection(cursor.NewCursorSelection(m.rng.Start))
		}

		// Pre-select the next match.
		next, _, err := find(doc, ctx, false)
		if err != nil {
			return err
		}
		res.Marked = next.Marked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ReplaceAll replaces every match in the document, always scanning forward
// from the start regardless of the context's direction. The iteration runs
// with mark-all disabled; when the context requests marking, occurrences are
// recomputed once against the final text. Zero replacements leave the
// selection untouched. The whole operation is one atomic undo step.
func ReplaceAll(doc Target, ctx *Context) (*Result, error) {
	scratch := ctx.Clone()
	scratch.SetForward(true)
	scratch.SetMarkAll(false)

	res := &Result{}
	err := doc.Change("replace all", func() error {
		orig := doc.Selection()
		doc.SetSelection(cursor.NewCursorSelection(0))

		for {
			r, err := Replace(doc, scratch)
			if err != nil {
				return err
			}
			if r.Count == 0 {
				break
			}
			res.Count += r.Count
			res.Match = r.Match
		}

		if res.Count == 0 {
			doc.SetSelection(orig)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ctx.MarkAll() {
		res.Marked = markAll(doc, ctx)
	}
	return res, nil
}

// MarkAll clears existing occurrence marks and, when the context enables
// marking and has a search text, marks every match in the document. The
// clear is broadcast even when nothing will be marked. A malformed regex is
// treated as "no matches" so an incomplete pattern being typed never errors.
func MarkAll(doc Target, ctx *Context) *Result {
	return &Result{Marked: markAll(doc, ctx)}
}

// markAll is the mark-all implementation shared by Find, ReplaceAll, and
// MarkAll. It scans forward over the whole document on a scratch context
// with marking disabled, which also prevents recursion through find.
func markAll(doc Target, ctx *Context) int {
	doc.ClearOccurrences()
	if !ctx.MarkAll() || ctx.SearchText() == "" {
		return 0
	}

	scratch := ctx.Clone()
	scratch.SetForward(true)
	scratch.SetMarkAll(false)

	text := doc.Text()
	if scratch.Regex() {
		return markAllRegex(doc, scratch, text)
	}
	return markAllPlain(doc, scratch, text)
}

func markAllRegex(doc Target, ctx *Context, text string) int {
	re, err := compilePattern(ctx)
	if err != nil {
		// Deliberately silent: the pattern is often mid-edit.
		return 0
	}

	count := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		doc.MarkOccurrence(buffer.NewRange(int64(loc[0]), int64(loc[1])))
		count++
	}
	return count
}

func markAllPlain(doc Target, ctx *Context, text string) int {
	needle := ctx.SearchText()
	scanText, scanNeedle := text, needle
	if !ctx.MatchCase() {
		// Lowercase the whole text once rather than per match.
		scanText = strings.ToLower(text)
		scanNeedle = strings.ToLower(needle)
	}

	count := 0
	pos := 0
	for pos+len(scanNeedle) <= len(scanText) {
		idx := strings.Index(scanText[pos:], scanNeedle)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(scanNeedle)
		if ctx.WholeWord() && !onWordBoundary(text, start, end) {
			pos = start + 1
			continue
		}
		doc.MarkOccurrence(buffer.NewRange(int64(start), int64(end)))
		count++
		pos = end
	}
	return count
}
