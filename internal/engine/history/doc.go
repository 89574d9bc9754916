// Package history provides undo/redo support for buffer edits.
//
// Each buffer mutation is recorded as an Operation. Operations recorded
// between BeginGroup and EndGroup collapse into a single undo step, which is
// how replace and replace-all become one undoable unit no matter how many
// individual edits they perform. Groups nest; only the outermost EndGroup
// commits.
package history
