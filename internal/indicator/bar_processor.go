package indicator

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mohamedkhairy/vwap-indicator/internal/models"
	"github.com/mohamedkhairy/vwap-indicator/pkg/logger"
)

// maxLineSize bounds a single encoded bar
const maxLineSize = 1 << 20

// BarProcessor processes finalized bars
type BarProcessor interface {
	ProcessBar(bar *models.Bar) error
}

// ReplayStats summarizes a replay run
type ReplayStats struct {
	Lines     int `json:"lines"`
	Processed int `json:"processed"`
	Rejected  int `json:"rejected"`
}

// DecodeBar decodes one JSON-encoded bar
func DecodeBar(data []byte) (*models.Bar, error) {
	var bar models.Bar
	if err := json.Unmarshal(data, &bar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bar: %w", err)
	}
	return &bar, nil
}

// Replay reads newline-delimited JSON bars from r and hands them to processor in order.
// Undecodable or rejected bars are logged and counted; only read errors and
// context cancellation stop the replay.
func Replay(ctx context.Context, r io.Reader, processor BarProcessor) (ReplayStats, error) {
	var stats ReplayStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		bar, err := DecodeBar(line)
		if err != nil {
			stats.Rejected++
			logger.BarsRejected.WithLabelValues("decode").Inc()
			logger.Warn("Skipping undecodable bar",
				logger.Int("line", stats.Lines),
				logger.ErrorField(err),
			)
			continue
		}

		if err := processor.ProcessBar(bar); err != nil {
			stats.Rejected++
			continue
		}
		stats.Processed++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read bars: %w", err)
	}
	return stats, nil
}
