package nbplot

import (
	"errors"
	"fmt"
)

var (
	ErrNoData           = errors.New("no data")
	ErrInvalidX         = errors.New("x-series value is missing or not finite")
	ErrLengthMismatch   = errors.New("series length mismatch")
	ErrPaletteExhausted = errors.New("more y-series than palette colors")
)

// InputError reports which series (and, when known, which position in it)
// failed validation. It unwraps to one of the sentinel errors above.
type InputError struct {
	Op     string
	Series int // -1 when not about a particular series
	Index  int // -1 when not about a particular value
	Err    error
}

func (e *InputError) Error() string {
	switch {
	case e.Series >= 0 && e.Index >= 0:
		return fmt.Sprintf("%s: series %d, index %d: %v", e.Op, e.Series, e.Index, e.Err)
	case e.Series >= 0:
		return fmt.Sprintf("%s: series %d: %v", e.Op, e.Series, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *InputError) Unwrap() error {
	return e.Err
}
