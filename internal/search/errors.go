package search

import (
	"errors"
	"fmt"
)

// ErrSelectionOnlyUnsupported is returned when enabling selection-scoped
// search, which this engine does not implement.
var ErrSelectionOnlyUnsupported = errors.New("searching within a selection is not supported")

// GroupError reports a replacement template referencing a capture group the
// search pattern does not define.
type GroupError struct {
	Group int
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("no capture group %d in search pattern", e.Group)
}
