package indicator

import (
	"time"

	"github.com/mohamedkhairy/vwap-indicator/pkg/dataseries"
)

// Source is a series that notifies subscribers when a value is appended
type Source[T any] interface {
	NewValueEvent() *dataseries.Event[T]
}

// EventBasedFilter republishes a Window's value as a derived series.
// Each source value yields exactly one output entry, so input and output
// positions stay aligned until either series hits its retention cap.
type EventBasedFilter[T any] struct {
	window Window[T]
	output *dataseries.SequenceDataSeries[dataseries.Value]
	seen   int
}

// NewEventBasedFilter subscribes window to source. maxLen <= 0 selects dataseries.DefaultMaxLen.
func NewEventBasedFilter[T any](source Source[T], window Window[T], maxLen int) *EventBasedFilter[T] {
	f := &EventBasedFilter[T]{
		window: window,
		output: dataseries.NewSequenceDataSeries[dataseries.Value](maxLen),
	}
	source.NewValueEvent().Subscribe(f.onNewValue)
	return f
}

func (f *EventBasedFilter[T]) onNewValue(dateTime time.Time, value T) {
	f.window.OnNewValue(dateTime, value)
	f.seen++
	f.output.AppendWithDateTime(dateTime, f.window.Value())
}

// Window returns the underlying event window
func (f *EventBasedFilter[T]) Window() Window[T] {
	return f.window
}

// DataSeries returns the derived output series
func (f *EventBasedFilter[T]) DataSeries() *dataseries.SequenceDataSeries[dataseries.Value] {
	return f.output
}

// NewValueEvent returns the event emitted for every output entry
func (f *EventBasedFilter[T]) NewValueEvent() *dataseries.Event[dataseries.Value] {
	return f.output.NewValueEvent()
}

// State returns StateFull once WindowSize source values have been seen
func (f *EventBasedFilter[T]) State() State {
	if f.seen >= f.window.WindowSize() {
		return StateFull
	}
	return StateFilling
}

// ValuesProcessed returns the number of source values seen
func (f *EventBasedFilter[T]) ValuesProcessed() int {
	return f.seen
}

// Len returns the number of retained output entries
func (f *EventBasedFilter[T]) Len() int {
	return f.output.Len()
}

// At returns the output entry at index i. Negative indexes count from the end.
func (f *EventBasedFilter[T]) At(i int) (dataseries.Value, error) {
	return f.output.At(i)
}

// Last returns the newest output entry, or dataseries.None() when empty
func (f *EventBasedFilter[T]) Last() dataseries.Value {
	v, _ := f.output.Last()
	return v
}

// Values returns the retained output entries, oldest first
func (f *EventBasedFilter[T]) Values() []dataseries.Value {
	return f.output.Values()
}
