package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BarsProcessed counts bars accepted by the indicator engine
	BarsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vwap_bars_processed_total",
			Help: "Total number of bars fed to VWAP filters",
		},
	)

	// BarsRejected counts bars refused by validation or ordering checks
	BarsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vwap_bars_rejected_total",
			Help: "Total number of rejected bars",
		},
		[]string{"reason"},
	)

	// ValuesEmitted counts computed values, including the zero-volume fallback
	ValuesEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vwap_values_emitted_total",
			Help: "Total number of VWAP values emitted",
		},
		[]string{"indicator"},
	)

	// ZeroVolumeFallbacks counts values that fell back to the newest bar's price
	ZeroVolumeFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vwap_zero_volume_fallbacks_total",
			Help: "Total number of VWAP values taken from the newest bar because the window had no volume",
		},
		[]string{"indicator"},
	)

	// SymbolsTracked is the number of symbols with live filters
	SymbolsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vwap_symbols_tracked",
			Help: "Number of symbols with VWAP filters",
		},
	)
)
