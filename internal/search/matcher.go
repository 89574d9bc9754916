package search

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mvickers/quarry/internal/engine/buffer"
)

// matchData is one located match within a haystack. Offsets are relative to
// the haystack searched, not the document. Replacement carries the expanded
// replacement text and is only populated on the replace path.
type matchData struct {
	rng         buffer.Range
	matched     string
	replacement string
}

// matchIn locates a match for ctx in haystack. expandReplace requests the
// replacement text for the match: literal for plain searches, template-
// expanded for regex searches.
func matchIn(haystack string, ctx *Context, expandReplace bool) (*matchData, error) {
	if ctx.Regex() {
		return regexMatch(haystack, ctx, expandReplace)
	}

	m := plainMatch(haystack, ctx)
	if m != nil && expandReplace {
		m.replacement = ctx.ReplaceText()
	}
	return m, nil
}

// plainMatch performs a literal substring search.
//
// Case-insensitive searches lower-case both needle and haystack and scan the
// lowered text; this assumes lower-casing preserves byte offsets, which holds
// for the common case but is not locale-aware case folding.
func plainMatch(haystack string, ctx *Context) *matchData {
	needle := ctx.SearchText()
	scanText, scanNeedle := haystack, needle
	if !ctx.MatchCase() {
		scanText = strings.ToLower(haystack)
		scanNeedle = strings.ToLower(needle)
	}

	if ctx.Forward() {
		pos := 0
		for pos+len(scanNeedle) <= len(scanText) {
			idx := strings.Index(scanText[pos:], scanNeedle)
			if idx < 0 {
				return nil
			}
			start := pos + idx
			end := start + len(scanNeedle)
			if ctx.WholeWord() && !onWordBoundary(haystack, start, end) {
				// Rejected near-miss: resume one position further on.
				pos = start + 1
				continue
			}
			return &matchData{
				rng:     buffer.NewRange(int64(start), int64(end)),
				matched: haystack[start:end],
			}
		}
		return nil
	}

	limit := len(scanText)
	for limit >= len(scanNeedle) {
		idx := strings.LastIndex(scanText[:limit], scanNeedle)
		if idx < 0 {
			return nil
		}
		end := idx + len(scanNeedle)
		if ctx.WholeWord() && !onWordBoundary(haystack, idx, end) {
			// Resume one position further back: shrink the window so the
			// next scan may still find an overlapping earlier match.
			limit = end - 1
			continue
		}
		return &matchData{
			rng:     buffer.NewRange(int64(idx), int64(end)),
			matched: haystack[idx:end],
		}
	}
	return nil
}

// onWordBoundary returns true when neither neighbor of [start, end) is a
// letter or digit. A missing neighbor (start or end of text) counts as a
// boundary.
func onWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// compilePattern compiles the context's pattern. Multiline mode is always
// on so ^ and $ anchor per line. Whole-word mode wraps the pattern in \b
// assertions verbatim; patterns that already contain anchors or top-level
// alternation inherit whatever that wrapping produces.
func compilePattern(ctx *Context) (*regexp.Regexp, error) {
	pattern := ctx.SearchText()
	if ctx.WholeWord() {
		pattern = `\b` + pattern + `\b`
	}
	flags := "(?m)"
	if !ctx.MatchCase() {
		flags = "(?im)"
	}
	return regexp.Compile(flags + pattern)
}

// regexMatch performs a regex search.
//
// Forward search scans linearly, skipping zero-length matches by advancing
// one byte so degenerate patterns like "foo|" neither loop forever nor
// produce zero-length selections. Backward search enumerates every forward
// match and takes the last one: O(matches) per call, since the regex engine
// has no native backward mode.
func regexMatch(haystack string, ctx *Context, expandReplace bool) (*matchData, error) {
	re, err := compilePattern(ctx)
	if err != nil {
		return nil, err
	}

	if ctx.Forward() {
		pos := 0
		for pos <= len(haystack) {
			loc := re.FindStringSubmatchIndex(haystack[pos:])
			if loc == nil {
				return nil, nil
			}
			if loc[0] == loc[1] {
				pos += loc[0] + 1
				continue
			}
			return newRegexMatch(haystack, offsetLocs(loc, pos), re, ctx, expandReplace)
		}
		return nil, nil
	}

	all := re.FindAllStringSubmatchIndex(haystack, -1)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i][0] == all[i][1] {
			continue
		}
		return newRegexMatch(haystack, all[i], re, ctx, expandReplace)
	}
	return nil, nil
}

// newRegexMatch builds matchData from submatch indices, expanding the
// replacement template when requested.
func newRegexMatch(haystack string, locs []int, re *regexp.Regexp, ctx *Context, expandReplace bool) (*matchData, error) {
	m := &matchData{
		rng:     buffer.NewRange(int64(locs[0]), int64(locs[1])),
		matched: haystack[locs[0]:locs[1]],
	}
	if expandReplace {
		replacement, err := expandTemplate(ctx.ReplaceText(), haystack, locs, re.NumSubexp())
		if err != nil {
			return nil, err
		}
		m.replacement = replacement
	}
	return m, nil
}

// offsetLocs shifts submatch indices by delta, preserving -1 markers for
// groups that did not participate.
func offsetLocs(locs []int, delta int) []int {
	out := make([]int, len(locs))
	for i, v := range locs {
		if v < 0 {
			out[i] = v
			continue
		}
		out[i] = v + delta
	}
	return out
}
