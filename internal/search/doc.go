// Package search implements find, replace, replace-all, and mark-all over a
// text document.
//
// The engine is stateless: package-level functions take the document to
// operate on (a Target) together with a Context describing the search. A
// call runs to completion on the calling goroutine and returns a Result;
// side effects on the document are limited to selection updates, text
// replacement, and the occurrence-mark set.
//
// Callers must not invoke engine functions on the same Target from multiple
// goroutines. The engine relies on the caller serializing access, the way a
// UI event loop does.
package search
