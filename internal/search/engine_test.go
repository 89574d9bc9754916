package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvickers/quarry/internal/editor"
	"github.com/mvickers/quarry/internal/engine/buffer"
	"github.com/mvickers/quarry/internal/engine/cursor"
	"github.com/mvickers/quarry/internal/event"
)

var _ Target = (*editor.Document)(nil)

func findCtx(text string) *Context {
	c := NewFindContext(text)
	c.SetMatchCase(true)
	return c
}

func TestFindForwardPlain(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")
	ctx := findCtx("cat")

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(0, 3), *res.Match)
	assert.Equal(t, 2, res.Marked)
	assert.Equal(t, cursor.NewSelection(0, 3), doc.Selection())
	assert.Equal(t, buffer.NewRange(0, 3), doc.LastRevealed())

	// The selected match is not found again; the next one is.
	res, err = Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(8, 11), *res.Match)

	// Nothing after the last match.
	res, err = Find(doc, ctx)
	require.NoError(t, err)
	assert.False(t, res.Found())
}

func TestFindBackwardReturnsToPreviousMatch(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")
	ctx := findCtx("cat")

	_, err := Find(doc, ctx)
	require.NoError(t, err)
	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.Equal(t, buffer.NewRange(8, 11), *res.Match)

	// Backward from the second match lands on the first again.
	ctx.SetForward(false)
	res, err = Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(0, 3), *res.Match)
}

func TestFindCaseInsensitive(t *testing.T) {
	doc := editor.NewDocument("The CAT sat")
	ctx := NewFindContext("cat") // matchCase defaults to false

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(4, 7), *res.Match)
}

func TestFindWholeWord(t *testing.T) {
	doc := editor.NewDocument("concatenate cat scatter")
	ctx := findCtx("cat")
	ctx.SetWholeWord(true)

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(12, 15), *res.Match)
	assert.Equal(t, 1, res.Marked, "substring occurrences must not be marked")

	// No further standalone occurrence.
	res, err = Find(doc, ctx)
	require.NoError(t, err)
	assert.False(t, res.Found())
}

func TestFindCaseInsensitiveWholeWord(t *testing.T) {
	doc := editor.NewDocument("The CAT sat")
	ctx := NewFindContext("Cat")
	ctx.SetWholeWord(true)

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(4, 7), *res.Match)
}

func TestFindEmptySearchClearsMarks(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")

	MarkAll(doc, findCtx("cat"))
	require.Len(t, doc.Occurrences(), 2)

	res, err := Find(doc, findCtx(""))
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Zero(t, res.Marked)
	assert.Empty(t, doc.Occurrences())
}

func TestFindRegexForward(t *testing.T) {
	doc := editor.NewDocument("a1 b22 c333")
	ctx := findCtx(`\d+`)
	ctx.SetRegex(true)

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(1, 2), *res.Match)
	assert.Equal(t, 3, res.Marked)

	res, err = Find(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, buffer.NewRange(4, 6), *res.Match)
}

func TestFindRegexBackward(t *testing.T) {
	doc := editor.NewDocument("a1 b22 c333")
	ctx := findCtx(`\d+`)
	ctx.SetRegex(true)
	ctx.SetForward(false)
	doc.SetSelection(cursor.NewCursorSelection(doc.Len()))

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(8, 11), *res.Match)

	res, err = Find(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, buffer.NewRange(4, 6), *res.Match)
}

func TestFindRegexMultiline(t *testing.T) {
	doc := editor.NewDocument("one\ntwo\nthree")
	ctx := findCtx(`^two$`)
	ctx.SetRegex(true)

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(4, 7), *res.Match)
}

func TestFindRegexZeroLengthSkipped(t *testing.T) {
	doc := editor.NewDocument("abc")
	ctx := findCtx("x*")
	ctx.SetRegex(true)

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	assert.False(t, res.Found(), "zero-width matches must not be selected")
}

func TestFindMalformedRegex(t *testing.T) {
	doc := editor.NewDocument("abc")
	ctx := findCtx("(")
	ctx.SetRegex(true)
	ctx.SetMarkAll(false)

	_, err := Find(doc, ctx)
	assert.Error(t, err)
}

func TestFindRegexWholeWord(t *testing.T) {
	doc := editor.NewDocument("concatenate cat scatter")
	ctx := findCtx(`c\wt`)
	ctx.SetRegex(true)
	ctx.SetWholeWord(true)

	res, err := Find(doc, ctx)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, buffer.NewRange(12, 15), *res.Match)
}

func TestReplaceAdvancesAndPreselects(t *testing.T) {
	doc := editor.NewDocument("aaa")
	ctx := NewReplaceContext("a", "b")
	ctx.SetMatchCase(true)

	res, err := Replace(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "baa", doc.Text())
	assert.Equal(t, cursor.NewSelection(1, 2), doc.Selection(), "next match must be pre-selected")
	assert.Equal(t, 2, res.Marked, "marks recomputed against the edited text")
}

func TestReplaceSelectedMatchIsReplaced(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")
	ctx := NewReplaceContext("cat", "bird")
	ctx.SetMatchCase(true)

	// Select the first match, then replace: the selected match itself must
	// be replaced, not skipped.
	_, err := Find(doc, ctx)
	require.NoError(t, err)
	require.Equal(t, cursor.NewSelection(0, 3), doc.Selection())

	res, err := Replace(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "bird dog cat", doc.Text())
}

func TestReplaceBackward(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")
	ctx := NewReplaceContext("cat", "X")
	ctx.SetMatchCase(true)
	ctx.SetForward(false)
	doc.SetSelection(cursor.NewCursorSelection(doc.Len()))

	res, err := Replace(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "cat dog X", doc.Text())
	assert.Equal(t, cursor.NewSelection(0, 3), doc.Selection(), "previous match must be pre-selected")
}

func TestReplaceRegexGroups(t *testing.T) {
	doc := editor.NewDocument("hello world")
	ctx := NewReplaceContext(`(\w+) (\w+)`, "$2 $1")
	ctx.SetMatchCase(true)
	ctx.SetRegex(true)

	res, err := Replace(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "world hello", doc.Text())
}

func TestReplaceRegexEscapes(t *testing.T) {
	doc := editor.NewDocument("a,b")
	ctx := NewReplaceContext(",", `\n`)
	ctx.SetMatchCase(true)
	ctx.SetRegex(true)

	_, err := Replace(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", doc.Text())
}

func TestReplaceInvalidGroup(t *testing.T) {
	doc := editor.NewDocument("hello")
	ctx := NewReplaceContext(`(h)`, "$4")
	ctx.SetRegex(true)

	_, err := Replace(doc, ctx)

	var groupErr *GroupError
	require.ErrorAs(t, err, &groupErr)
	assert.Equal(t, 4, groupErr.Group)
	assert.Equal(t, "hello", doc.Text(), "failed replace must not mutate the text")
}

func TestReplaceNotFound(t *testing.T) {
	doc := editor.NewDocument("abc")
	ctx := NewReplaceContext("zzz", "x")
	ctx.SetMatchCase(true)

	res, err := Replace(doc, ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.False(t, res.Found())
	assert.Equal(t, "abc", doc.Text())
}

func TestReplaceAllPlain(t *testing.T) {
	doc := editor.NewDocument("aaa")
	ctx := NewReplaceContext("a", "b")
	ctx.SetMatchCase(true)

	res, err := ReplaceAll(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "bbb", doc.Text())
}

func TestReplaceAllIgnoresDirection(t *testing.T) {
	doc := editor.NewDocument("x.y.z")
	ctx := NewReplaceContext(".", "-")
	ctx.SetMatchCase(true)
	ctx.SetForward(false) // forced forward internally

	res, err := ReplaceAll(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "x-y-z", doc.Text())
	assert.False(t, ctx.Forward(), "caller's context must not be mutated")
}

func TestReplaceAllGrowingReplacement(t *testing.T) {
	doc := editor.NewDocument("aaa")
	ctx := NewReplaceContext("a", "aa")
	ctx.SetMatchCase(true)

	res, err := ReplaceAll(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count, "replacement text containing the needle must not loop")
	assert.Equal(t, "aaaaaa", doc.Text())
}

func TestReplaceAllNotFoundRestoresSelection(t *testing.T) {
	doc := editor.NewDocument("abcdef")
	doc.SetSelection(cursor.NewCursorSelection(4))
	ctx := NewReplaceContext("zzz", "x")
	ctx.SetMatchCase(true)

	res, err := ReplaceAll(doc, ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Equal(t, cursor.NewCursorSelection(4), doc.Selection())
}

func TestReplaceAllIsOneUndoStep(t *testing.T) {
	doc := editor.NewDocument("aaa")
	ctx := NewReplaceContext("a", "b")
	ctx.SetMatchCase(true)

	_, err := ReplaceAll(doc, ctx)
	require.NoError(t, err)
	require.Equal(t, "bbb", doc.Text())

	require.NoError(t, doc.Undo())
	assert.Equal(t, "aaa", doc.Text())
	assert.False(t, doc.CanUndo(), "replace-all must be exactly one undo step")
}

func TestReplaceAllRemarksOnce(t *testing.T) {
	doc := editor.NewDocument("ab ab ab")
	ctx := NewReplaceContext("ab", "ab!")
	ctx.SetMatchCase(true)

	res, err := ReplaceAll(doc, ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 3, res.Marked, "marks recomputed against the final text")
	assert.Len(t, doc.Occurrences(), 3)
}

func TestMarkAllPlain(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")

	res := MarkAll(doc, findCtx("cat"))
	assert.Equal(t, 2, res.Marked)
	assert.Equal(t, []buffer.Range{
		buffer.NewRange(0, 3),
		buffer.NewRange(8, 11),
	}, doc.Occurrences())
}

func TestMarkAllEmptyTextClearsAndBroadcasts(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")
	MarkAll(doc, findCtx("cat"))
	require.Len(t, doc.Occurrences(), 2)

	cleared := 0
	doc.Bus().Subscribe(event.TopicMarksCleared, func(event.Event) { cleared++ })

	res := MarkAll(doc, findCtx(""))
	assert.Zero(t, res.Marked)
	assert.Empty(t, doc.Occurrences())
	assert.Equal(t, 1, cleared, "the clear must be broadcast even with nothing to mark")
}

func TestMarkAllDisabledStillClears(t *testing.T) {
	doc := editor.NewDocument("cat dog cat")
	MarkAll(doc, findCtx("cat"))
	require.Len(t, doc.Occurrences(), 2)

	ctx := findCtx("cat")
	ctx.SetMarkAll(false)
	res := MarkAll(doc, ctx)
	assert.Zero(t, res.Marked)
	assert.Empty(t, doc.Occurrences())
}

func TestMarkAllZeroLengthRegex(t *testing.T) {
	doc := editor.NewDocument("abc xx c")
	ctx := findCtx("x*")
	ctx.SetRegex(true)

	res := MarkAll(doc, ctx)
	assert.Equal(t, 1, res.Marked, "only the non-empty match is marked")
	assert.Equal(t, []buffer.Range{buffer.NewRange(4, 6)}, doc.Occurrences())
}

func TestMarkAllMalformedRegexSilent(t *testing.T) {
	doc := editor.NewDocument("abc")
	ctx := findCtx("(unclosed")
	ctx.SetRegex(true)

	res := MarkAll(doc, ctx)
	assert.Zero(t, res.Marked, "an in-progress pattern is treated as no matches")
}

func TestMarkAllCaseInsensitive(t *testing.T) {
	doc := editor.NewDocument("Cat cat CAT")

	res := MarkAll(doc, NewFindContext("cat"))
	assert.Equal(t, 3, res.Marked)
}
