package search

// Property names fired in change notifications.
const (
	PropertySearchText  = "search.text"
	PropertyReplaceText = "search.replaceWith"
	PropertyForward     = "search.forward"
	PropertyMatchCase   = "search.matchCase"
	PropertyWholeWord   = "search.wholeWord"
	PropertyRegex       = "search.regex"
	PropertyMarkAll     = "search.markAll"
)

// Change describes a single Context property change.
type Change struct {
	Property string
	Old      any
	New      any
}

// ChangeListener receives Context property changes.
type ChangeListener func(Change)

// Context describes one search or replace operation: what to look for, what
// to replace it with, and how to match. Setters notify registered listeners
// only when the value actually changes, so UI bindings can observe the
// context without functional effect on the engine.
//
// The engine never mutates a caller's Context; it works on scratch clones
// when it needs to force a flag (mark-all recursion suppression, forced
// forward direction).
type Context struct {
	searchText    string
	replaceText   string
	forward       bool
	matchCase     bool
	wholeWord     bool
	regex         bool
	markAll       bool
	selectionOnly bool

	listeners []ChangeListener
}

// NewContext creates a context with default flags: forward search with
// mark-all enabled.
func NewContext() *Context {
	return &Context{forward: true, markAll: true}
}

// NewFindContext creates a context for finding text.
func NewFindContext(text string) *Context {
	c := NewContext()
	c.searchText = text
	return c
}

// NewReplaceContext creates a context for replacing text.
func NewReplaceContext(text, replacement string) *Context {
	c := NewFindContext(text)
	c.replaceText = replacement
	return c
}

// OnChange registers a listener for property changes.
func (c *Context) OnChange(fn ChangeListener) {
	c.listeners = append(c.listeners, fn)
}

func (c *Context) fire(property string, old, val any) {
	for _, fn := range c.listeners {
		fn(Change{Property: property, Old: old, New: val})
	}
}

// SearchText returns the text or pattern to search for.
func (c *Context) SearchText() string { return c.searchText }

// SetSearchText sets the text or pattern to search for.
func (c *Context) SetSearchText(text string) {
	if text == c.searchText {
		return
	}
	old := c.searchText
	c.searchText = text
	c.fire(PropertySearchText, old, text)
}

// ReplaceText returns the replacement text.
func (c *Context) ReplaceText() string { return c.replaceText }

// SetReplaceText sets the replacement text. For regex searches it may
// contain \n, \t, backslash escapes, and $n capture group references.
func (c *Context) SetReplaceText(text string) {
	if text == c.replaceText {
		return
	}
	old := c.replaceText
	c.replaceText = text
	c.fire(PropertyReplaceText, old, text)
}

// Forward returns true when searching toward the end of the document.
func (c *Context) Forward() bool { return c.forward }

// SetForward sets the search direction.
func (c *Context) SetForward(forward bool) {
	if forward == c.forward {
		return
	}
	c.forward = forward
	c.fire(PropertyForward, !forward, forward)
}

// MatchCase returns true when the search is case-sensitive.
func (c *Context) MatchCase() bool { return c.matchCase }

// SetMatchCase sets case sensitivity.
func (c *Context) SetMatchCase(matchCase bool) {
	if matchCase == c.matchCase {
		return
	}
	c.matchCase = matchCase
	c.fire(PropertyMatchCase, !matchCase, matchCase)
}

// WholeWord returns true when matches must fall on word boundaries.
func (c *Context) WholeWord() bool { return c.wholeWord }

// SetWholeWord sets whole-word matching.
func (c *Context) SetWholeWord(wholeWord bool) {
	if wholeWord == c.wholeWord {
		return
	}
	c.wholeWord = wholeWord
	c.fire(PropertyWholeWord, !wholeWord, wholeWord)
}

// Regex returns true when the search text is a regular expression.
func (c *Context) Regex() bool { return c.regex }

// SetRegex sets regular expression mode.
func (c *Context) SetRegex(regex bool) {
	if regex == c.regex {
		return
	}
	c.regex = regex
	c.fire(PropertyRegex, !regex, regex)
}

// MarkAll returns true when every occurrence should be marked on find.
func (c *Context) MarkAll() bool { return c.markAll }

// SetMarkAll sets occurrence marking.
func (c *Context) SetMarkAll(markAll bool) {
	if markAll == c.markAll {
		return
	}
	c.markAll = markAll
	c.fire(PropertyMarkAll, !markAll, markAll)
}

// SelectionOnly reports whether the search is scoped to the selection.
// It is always false.
func (c *Context) SelectionOnly() bool { return c.selectionOnly }

// SetSelectionOnly rejects enabling selection-scoped search with
// ErrSelectionOnlyUnsupported. Disabling it is a no-op.
func (c *Context) SetSelectionOnly(selectionOnly bool) error {
	if selectionOnly {
		return ErrSelectionOnlyUnsupported
	}
	return nil
}

// Clone returns a copy of the context's settings. Listener registrations are
// never copied: scratch clones made by the engine must not feed the caller's
// observers.
func (c *Context) Clone() *Context {
	return &Context{
		searchText:    c.searchText,
		replaceText:   c.replaceText,
		forward:       c.forward,
		matchCase:     c.matchCase,
		wholeWord:     c.wholeWord,
		regex:         c.regex,
		markAll:       c.markAll,
		selectionOnly: c.selectionOnly,
	}
}
