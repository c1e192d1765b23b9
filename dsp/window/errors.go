package window

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by [ParseType] for unknown names.
var ErrUnknownType = errors.New("unknown apodization type")

func validate(length int, dt float64) error {
	if length <= 0 {
		return fmt.Errorf("apodization length must be > 0: %d", length)
	}
	if dt <= 0 {
		return fmt.Errorf("apodization sampling interval must be > 0: %f", dt)
	}
	return nil
}
