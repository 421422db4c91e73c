package dataseries

import (
	"fmt"
	"time"
)

// DefaultMaxLen is the retention used when a series is created with maxLen <= 0
const DefaultMaxLen = 1024

// SequenceDataSeries is an ordered, bounded series of values. Once MaxLen
// entries are held, every append drops the oldest entry.
type SequenceDataSeries[T any] struct {
	maxLen    int
	values    []T
	dateTimes []time.Time
	newValue  Event[T]
}

// NewSequenceDataSeries creates an empty series. maxLen <= 0 selects DefaultMaxLen.
func NewSequenceDataSeries[T any](maxLen int) *SequenceDataSeries[T] {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &SequenceDataSeries[T]{
		maxLen:    maxLen,
		values:    make([]T, 0, min(maxLen, 64)),
		dateTimes: make([]time.Time, 0, min(maxLen, 64)),
	}
}

// Append appends a value without a date time
func (s *SequenceDataSeries[T]) Append(value T) {
	s.AppendWithDateTime(time.Time{}, value)
}

// AppendWithDateTime appends a value and notifies subscribers
func (s *SequenceDataSeries[T]) AppendWithDateTime(dateTime time.Time, value T) {
	s.values = append(s.values, value)
	s.dateTimes = append(s.dateTimes, dateTime)

	if len(s.values) > s.maxLen {
		// Remove oldest entry
		copy(s.values, s.values[1:])
		s.values = s.values[:len(s.values)-1]
		copy(s.dateTimes, s.dateTimes[1:])
		s.dateTimes = s.dateTimes[:len(s.dateTimes)-1]
	}

	s.newValue.Emit(dateTime, value)
}

// NewValueEvent returns the event emitted after every append
func (s *SequenceDataSeries[T]) NewValueEvent() *Event[T] {
	return &s.newValue
}

// Len returns the number of retained entries
func (s *SequenceDataSeries[T]) Len() int {
	return len(s.values)
}

// MaxLen returns the retention cap
func (s *SequenceDataSeries[T]) MaxLen() int {
	return s.maxLen
}

// At returns the entry at index i. Negative indexes count from the end (-1 is the newest).
func (s *SequenceDataSeries[T]) At(i int) (T, error) {
	idx, err := s.index(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.values[idx], nil
}

// DateTimeAt returns the date time of the entry at index i
func (s *SequenceDataSeries[T]) DateTimeAt(i int) (time.Time, error) {
	idx, err := s.index(i)
	if err != nil {
		return time.Time{}, err
	}
	return s.dateTimes[idx], nil
}

// Last returns the newest entry and false when the series is empty
func (s *SequenceDataSeries[T]) Last() (T, bool) {
	if len(s.values) == 0 {
		var zero T
		return zero, false
	}
	return s.values[len(s.values)-1], true
}

// Values returns a copy of the retained values, oldest first
func (s *SequenceDataSeries[T]) Values() []T {
	values := make([]T, len(s.values))
	copy(values, s.values)
	return values
}

// DateTimes returns a copy of the retained date times, oldest first
func (s *SequenceDataSeries[T]) DateTimes() []time.Time {
	dateTimes := make([]time.Time, len(s.dateTimes))
	copy(dateTimes, s.dateTimes)
	return dateTimes
}

func (s *SequenceDataSeries[T]) index(i int) (int, error) {
	n := len(s.values)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, n)
	}
	return idx, nil
}
