package mines

import "errors"

var (
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrInsufficientCells = errors.New("not enough cells to place mines")
	ErrInvalidParams     = errors.New("invalid board parameters")
)

// AssertionError reports a broken internal invariant.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
