// Package cursor provides the selection model used by the search engine.
//
// A Selection is an immutable anchor/head pair of byte offsets. When anchor
// and head are equal the selection is a bare caret. The search engine reads
// the selection to decide where a search starts and writes it to make a found
// match the active selection.
package cursor
