package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrLayoutMissing reports a layout, or a placeholder role within a
	// layout, that the deck does not provide.
	ErrLayoutMissing = errors.New("layout missing")
	// ErrInvalidLevel reports a paragraph indent level outside 0..MaxLevel.
	ErrInvalidLevel = errors.New("invalid paragraph level")
	// ErrOutOfRange reports a table row or column index outside the grid.
	ErrOutOfRange = errors.New("index out of range")
)

// LayoutMissingError identifies the layout and role that could not be found.
// An empty Role means the layout itself is missing.
type LayoutMissingError struct {
	Layout string
	Role   Role
}

func (e *LayoutMissingError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("layout %q not found", e.Layout)
	}
	return fmt.Sprintf("layout %q has no %s placeholder", e.Layout, e.Role)
}

// Is makes errors.Is(err, ErrLayoutMissing) hold for every LayoutMissingError.
func (e *LayoutMissingError) Is(target error) bool {
	return target == ErrLayoutMissing
}
