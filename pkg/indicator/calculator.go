package indicator

import (
	"time"

	"github.com/mohamedkhairy/vwap-indicator/pkg/dataseries"
)

// Window is the interface for event windows driven by an EventBasedFilter
type Window[T any] interface {
	// OnNewValue is called for every value appended to the source series
	OnNewValue(dateTime time.Time, value T)

	// Value returns the current value, or dataseries.None() if not enough data
	Value() dataseries.Value

	// WindowSize returns the number of values required for this window
	WindowSize() int
}

// State describes whether a filter has seen enough values to produce output
type State int

const (
	// StateFilling means fewer than WindowSize values have been seen
	StateFilling State = iota
	// StateFull means the window is full; it never leaves this state
	StateFull
)

func (s State) String() string {
	switch s {
	case StateFilling:
		return "filling"
	case StateFull:
		return "full"
	default:
		return "unknown"
	}
}
