package models

import (
	"time"
)

// Bar represents a finalized OHLCV bar for a single symbol
type Bar struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Price returns the closing price
func (b *Bar) Price() float64 {
	return b.Close
}

// TypicalPrice returns (high + low + close) / 3
func (b *Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3.0
}

// Date returns the calendar date of the bar in the bar's own location
func (b *Bar) Date() time.Time {
	y, m, d := b.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.Timestamp.Location())
}

// Validate validates a Bar
func (b *Bar) Validate() error {
	if b.Symbol == "" {
		return ErrInvalidSymbol
	}
	if b.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if b.High < b.Low {
		return ErrInvalidBar
	}
	if b.Volume < 0 {
		return ErrInvalidVolume
	}
	return nil
}

// IndicatorUpdate is the set of valid indicator values computed for a symbol after a bar
type IndicatorUpdate struct {
	Symbol    string             `json:"symbol"`
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"` // e.g., {"vwap_14": 101.25}
}
