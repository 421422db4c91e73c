package dataseries

import (
	"fmt"
	"time"

	"github.com/mohamedkhairy/vwap-indicator/internal/models"
)

// BarDataSeries is a bounded series of bars in non-decreasing timestamp order.
// Close, typical price and volume are mirrored into derived float series that
// are updated before the bar event fires.
type BarDataSeries struct {
	bars         *SequenceDataSeries[*models.Bar]
	closes       *SequenceDataSeries[float64]
	typicalPrice *SequenceDataSeries[float64]
	volumes      *SequenceDataSeries[float64]
}

// NewBarDataSeries creates an empty bar series. maxLen <= 0 selects DefaultMaxLen.
func NewBarDataSeries(maxLen int) *BarDataSeries {
	return &BarDataSeries{
		bars:         NewSequenceDataSeries[*models.Bar](maxLen),
		closes:       NewSequenceDataSeries[float64](maxLen),
		typicalPrice: NewSequenceDataSeries[float64](maxLen),
		volumes:      NewSequenceDataSeries[float64](maxLen),
	}
}

// Append validates the bar and appends it, notifying subscribers synchronously
func (s *BarDataSeries) Append(bar *models.Bar) error {
	if bar == nil {
		return ErrNilBar
	}
	if err := bar.Validate(); err != nil {
		return fmt.Errorf("invalid bar: %w", err)
	}
	if last, ok := s.bars.Last(); ok && bar.Timestamp.Before(last.Timestamp) {
		return fmt.Errorf("%w: %s < %s", ErrBarOutOfOrder,
			bar.Timestamp.Format(time.RFC3339), last.Timestamp.Format(time.RFC3339))
	}

	s.closes.AppendWithDateTime(bar.Timestamp, bar.Close)
	s.typicalPrice.AppendWithDateTime(bar.Timestamp, bar.TypicalPrice())
	s.volumes.AppendWithDateTime(bar.Timestamp, bar.Volume)
	s.bars.AppendWithDateTime(bar.Timestamp, bar)
	return nil
}

// NewValueEvent returns the event emitted for every appended bar
func (s *BarDataSeries) NewValueEvent() *Event[*models.Bar] {
	return s.bars.NewValueEvent()
}

// Len returns the number of retained bars
func (s *BarDataSeries) Len() int {
	return s.bars.Len()
}

// MaxLen returns the retention cap
func (s *BarDataSeries) MaxLen() int {
	return s.bars.MaxLen()
}

// At returns the bar at index i. Negative indexes count from the end.
func (s *BarDataSeries) At(i int) (*models.Bar, error) {
	return s.bars.At(i)
}

// Last returns the newest bar
func (s *BarDataSeries) Last() (*models.Bar, bool) {
	return s.bars.Last()
}

// Values returns the retained bars, oldest first
func (s *BarDataSeries) Values() []*models.Bar {
	return s.bars.Values()
}

// CloseDataSeries returns the closing prices
func (s *BarDataSeries) CloseDataSeries() *SequenceDataSeries[float64] {
	return s.closes
}

// TypicalPriceDataSeries returns the typical prices
func (s *BarDataSeries) TypicalPriceDataSeries() *SequenceDataSeries[float64] {
	return s.typicalPrice
}

// VolumeDataSeries returns the volumes
func (s *BarDataSeries) VolumeDataSeries() *SequenceDataSeries[float64] {
	return s.volumes
}
