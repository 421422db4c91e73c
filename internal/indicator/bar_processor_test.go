package indicator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mohamedkhairy/vwap-indicator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	bars   []*models.Bar
	reject string
}

func (p *recordingProcessor) ProcessBar(bar *models.Bar) error {
	if bar.Symbol == p.reject {
		return errors.New("rejected")
	}
	p.bars = append(p.bars, bar)
	return nil
}

func TestDecodeBar(t *testing.T) {
	bar, err := DecodeBar([]byte(`{"symbol":"AAPL","timestamp":"2024-03-15T09:30:00Z","open":10,"high":11,"low":9,"close":10.5,"volume":1200}`))
	require.NoError(t, err)
	assert.Equal(t, "AAPL", bar.Symbol)
	assert.Equal(t, 10.5, bar.Close)
	assert.Equal(t, 1200.0, bar.Volume)
	assert.Equal(t, 2024, bar.Timestamp.Year())

	_, err = DecodeBar([]byte(`{not json`))
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	input := strings.Join([]string{
		`{"symbol":"AAPL","timestamp":"2024-03-15T09:30:00Z","high":11,"low":9,"close":10,"volume":100}`,
		``,
		`garbage`,
		`{"symbol":"SKIP","timestamp":"2024-03-15T09:31:00Z","high":11,"low":9,"close":10,"volume":100}`,
		`{"symbol":"AAPL","timestamp":"2024-03-15T09:31:00Z","high":13,"low":11,"close":12,"volume":50}`,
	}, "\n")

	processor := &recordingProcessor{reject: "SKIP"}
	stats, err := Replay(context.Background(), strings.NewReader(input), processor)
	require.NoError(t, err)

	assert.Equal(t, ReplayStats{Lines: 4, Processed: 2, Rejected: 2}, stats)
	require.Len(t, processor.bars, 2)
	assert.Equal(t, 12.0, processor.bars[1].Close)
}

func TestReplay_IntoEngine(t *testing.T) {
	engine, err := NewEngine(EngineConfig{Periods: []int{3}})
	require.NoError(t, err)

	input := `{"symbol":"AAPL","timestamp":"2024-03-15T09:30:00Z","high":10,"low":10,"close":10,"volume":100}
{"symbol":"AAPL","timestamp":"2024-03-15T09:31:00Z","high":12,"low":12,"close":12,"volume":50}
{"symbol":"AAPL","timestamp":"2024-03-15T09:32:00Z","high":11,"low":11,"close":11,"volume":200}
`
	stats, err := Replay(context.Background(), strings.NewReader(input), engine)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Processed)

	indicators, err := engine.GetIndicators("AAPL")
	require.NoError(t, err)
	assert.InDelta(t, 10.857142857, indicators["vwap_3"], 1e-6)
}

func TestReplay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := &recordingProcessor{}
	_, err := Replay(ctx, strings.NewReader(`{"symbol":"AAPL"}`), processor)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, processor.bars)
}
