package indicator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPeriod = errors.New("period must be at least 1")
	ErrInvalidMaxLen = errors.New("max length must not be negative")
	ErrNotBarSeries  = errors.New("source must be a bar data series")
)

func invalidPeriod(period int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidPeriod, period)
}
