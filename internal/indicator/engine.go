package indicator

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mohamedkhairy/vwap-indicator/internal/models"
	"github.com/mohamedkhairy/vwap-indicator/pkg/dataseries"
	indicatorpkg "github.com/mohamedkhairy/vwap-indicator/pkg/indicator"
	"github.com/mohamedkhairy/vwap-indicator/pkg/logger"
)

// OnIndicatorsUpdated is a callback function called after indicators are updated.
// It runs while the engine lock is held and must not call back into the engine.
type OnIndicatorsUpdated func(update models.IndicatorUpdate)

// symbolState holds the bar series of one symbol and the filters bound to it
type symbolState struct {
	series  *dataseries.BarDataSeries
	filters []*indicatorpkg.VWAP
}

// Engine feeds finalized bars into per-symbol VWAP filters
type Engine struct {
	config              EngineConfig
	symbolStates        map[string]*symbolState
	onIndicatorsUpdated OnIndicatorsUpdated // Callback after indicators are updated
	mu                  sync.RWMutex
}

// EngineConfig holds configuration for the indicator engine
type EngineConfig struct {
	Periods         []int // One VWAP filter per period (default: [14])
	UseTypicalPrice bool
	MaxLen          int // Retained output values per filter (0 = library default)
	BarMaxLen       int // Retained bars per symbol (0 = library default)
	Anchor          indicatorpkg.AnchorMode
}

// DefaultEngineConfig returns default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Periods: []int{14},
		Anchor:  indicatorpkg.AnchorWindow,
	}
}

// NewEngine creates a new indicator engine
func NewEngine(config EngineConfig) (*Engine, error) {
	if len(config.Periods) == 0 {
		return nil, fmt.Errorf("engine needs at least one VWAP period")
	}
	for _, period := range config.Periods {
		if period < 1 {
			return nil, fmt.Errorf("invalid VWAP period %d: %w", period, indicatorpkg.ErrInvalidPeriod)
		}
	}
	if config.MaxLen < 0 {
		return nil, fmt.Errorf("invalid max length %d: %w", config.MaxLen, indicatorpkg.ErrInvalidMaxLen)
	}

	return &Engine{
		config:       config,
		symbolStates: make(map[string]*symbolState),
	}, nil
}

// ProcessBar validates a finalized bar and feeds it to the symbol's filters.
// Filters run synchronously before ProcessBar returns.
func (e *Engine) ProcessBar(bar *models.Bar) error {
	if bar == nil {
		logger.BarsRejected.WithLabelValues("nil").Inc()
		return dataseries.ErrNilBar
	}

	if err := bar.Validate(); err != nil {
		logger.BarsRejected.WithLabelValues("invalid").Inc()
		logger.Warn("Rejected invalid bar",
			logger.String("symbol", bar.Symbol),
			logger.ErrorField(err),
		)
		return fmt.Errorf("invalid bar: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Get or create symbol state
	state, exists := e.symbolStates[bar.Symbol]
	if !exists {
		var err error
		state, err = e.newSymbolState(bar.Symbol)
		if err != nil {
			return err
		}
		e.symbolStates[bar.Symbol] = state
		logger.SymbolsTracked.Set(float64(len(e.symbolStates)))
	}

	if err := state.series.Append(bar); err != nil {
		reason := "invalid"
		if errors.Is(err, dataseries.ErrBarOutOfOrder) {
			reason = "out_of_order"
		}
		logger.BarsRejected.WithLabelValues(reason).Inc()
		logger.Warn("Rejected bar",
			logger.String("symbol", bar.Symbol),
			logger.Time("timestamp", bar.Timestamp),
			logger.ErrorField(err),
		)
		return err
	}
	logger.BarsProcessed.Inc()

	indicators := make(map[string]float64, len(state.filters))
	for _, filter := range state.filters {
		value, ok := filter.Last().Get()
		if !ok {
			continue
		}
		indicators[filter.Name()] = value
		logger.ValuesEmitted.WithLabelValues(filter.Name()).Inc()
		if filter.VWAPWindow().UsedFallback() {
			logger.ZeroVolumeFallbacks.WithLabelValues(filter.Name()).Inc()
		}
	}

	if e.onIndicatorsUpdated != nil && len(indicators) > 0 {
		e.onIndicatorsUpdated(models.IndicatorUpdate{
			Symbol:    bar.Symbol,
			Timestamp: bar.Timestamp,
			Values:    indicators,
		})
	}

	return nil
}

func (e *Engine) newSymbolState(symbol string) (*symbolState, error) {
	state := &symbolState{
		series:  dataseries.NewBarDataSeries(e.config.BarMaxLen),
		filters: make([]*indicatorpkg.VWAP, 0, len(e.config.Periods)),
	}

	for _, period := range e.config.Periods {
		filter, err := indicatorpkg.NewVWAP(state.series, period,
			indicatorpkg.WithTypicalPrice(e.config.UseTypicalPrice),
			indicatorpkg.WithMaxLen(e.config.MaxLen),
			indicatorpkg.WithAnchor(e.config.Anchor),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create VWAP filter for %s: %w", symbol, err)
		}
		state.filters = append(state.filters, filter)
	}

	logger.Debug("Created VWAP filters for symbol",
		logger.String("symbol", symbol),
		logger.Ints("periods", e.config.Periods),
	)
	return state, nil
}

// GetIndicators returns the latest valid indicator values for a symbol
func (e *Engine) GetIndicators(symbol string) (map[string]float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state, exists := e.symbolStates[symbol]
	if !exists {
		return nil, fmt.Errorf("symbol %s not found", symbol)
	}

	indicators := make(map[string]float64, len(state.filters))
	for _, filter := range state.filters {
		if value, ok := filter.Last().Get(); ok {
			indicators[filter.Name()] = value
		}
	}
	return indicators, nil
}

// GetSeries returns a copy of the output series of a named filter for a symbol
func (e *Engine) GetSeries(symbol, name string) ([]dataseries.Value, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state, exists := e.symbolStates[symbol]
	if !exists {
		return nil, fmt.Errorf("symbol %s not found", symbol)
	}
	for _, filter := range state.filters {
		if filter.Name() == name {
			return filter.Values(), nil
		}
	}
	return nil, fmt.Errorf("indicator %q not found for symbol %s", name, symbol)
}

// GetAllSymbols returns a sorted list of all symbols being tracked
func (e *Engine) GetAllSymbols() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	symbols := make([]string, 0, len(e.symbolStates))
	for symbol := range e.symbolStates {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// GetSymbolCount returns the number of symbols being tracked
func (e *Engine) GetSymbolCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.symbolStates)
}

// Reset drops all state for a symbol. The next bar starts a fresh window.
func (e *Engine) Reset(symbol string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.symbolStates, symbol)
	logger.SymbolsTracked.Set(float64(len(e.symbolStates)))
}

// SetOnIndicatorsUpdated sets the callback function called after indicators are updated
func (e *Engine) SetOnIndicatorsUpdated(callback OnIndicatorsUpdated) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onIndicatorsUpdated = callback
}
