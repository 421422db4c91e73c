package indicator

import (
	"testing"
	"time"

	"github.com/mohamedkhairy/vwap-indicator/pkg/dataseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumWindow sums the values in a fixed window
type sumWindow struct {
	values *EventWindow[float64]
}

func (w *sumWindow) OnNewValue(_ time.Time, value float64) {
	w.values.PushBack(value)
}

func (w *sumWindow) Value() dataseries.Value {
	if !w.values.WindowFull() {
		return dataseries.None()
	}
	var sum float64
	for _, v := range w.values.Values() {
		sum += v
	}
	return dataseries.Some(sum)
}

func (w *sumWindow) WindowSize() int {
	return w.values.WindowSize()
}

func TestEventBasedFilter_ForwardsAndAppends(t *testing.T) {
	source := dataseries.NewSequenceDataSeries[float64](0)
	values, err := NewEventWindow[float64](2)
	require.NoError(t, err)

	filter := NewEventBasedFilter[float64](source, &sumWindow{values: values}, 0)

	ts := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	source.AppendWithDateTime(ts, 1)
	source.AppendWithDateTime(ts.Add(time.Minute), 2)
	source.AppendWithDateTime(ts.Add(2*time.Minute), 3)

	assert.Equal(t, []dataseries.Value{dataseries.None(), dataseries.Some(3), dataseries.Some(5)}, filter.Values())
	assert.Equal(t, source.DateTimes(), filter.DataSeries().DateTimes())
	assert.Equal(t, 3, filter.ValuesProcessed())
	assert.Equal(t, StateFull, filter.State())
	assert.Equal(t, 2, filter.Window().WindowSize())
}

func TestEventBasedFilter_LastEmpty(t *testing.T) {
	source := dataseries.NewSequenceDataSeries[float64](0)
	values, err := NewEventWindow[float64](2)
	require.NoError(t, err)

	filter := NewEventBasedFilter[float64](source, &sumWindow{values: values}, 0)

	assert.False(t, filter.Last().Valid)
	assert.Equal(t, 0, filter.Len())
	_, err = filter.At(0)
	assert.ErrorIs(t, err, dataseries.ErrIndexOutOfRange)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "filling", StateFilling.String())
	assert.Equal(t, "full", StateFull.String())
	assert.Equal(t, "unknown", State(9).String())
}
