package indicator

import (
	"fmt"
	"time"

	"github.com/mohamedkhairy/vwap-indicator/internal/models"
	"github.com/mohamedkhairy/vwap-indicator/pkg/dataseries"
)

// PriceFunc selects the price weighted by volume
type PriceFunc func(bar *models.Bar) float64

// ClosePrice weights the closing price
func ClosePrice(bar *models.Bar) float64 {
	return bar.Price()
}

// TypicalPrice weights (high + low + close) / 3
func TypicalPrice(bar *models.Bar) float64 {
	return bar.TypicalPrice()
}

// AnchorMode controls how calendar-date changes inside the window affect the VWAP
type AnchorMode int

const (
	// AnchorWindow accumulates over every bar in the window. Date changes only
	// move the day anchor.
	AnchorWindow AnchorMode = iota
	// AnchorSession restarts accumulation at every date change, so the value
	// covers only the newest session's bars in the window.
	AnchorSession
)

func (m AnchorMode) String() string {
	switch m {
	case AnchorWindow:
		return "window"
	case AnchorSession:
		return "session"
	default:
		return "unknown"
	}
}

// ParseAnchorMode parses "window" or "session"
func ParseAnchorMode(s string) (AnchorMode, error) {
	switch s {
	case "", "window":
		return AnchorWindow, nil
	case "session":
		return AnchorSession, nil
	default:
		return AnchorWindow, fmt.Errorf("unknown VWAP anchor mode %q", s)
	}
}

type options struct {
	useTypicalPrice bool
	maxLen          int
	anchor          AnchorMode
}

// Option configures a VWAP window or filter
type Option func(*options)

// WithTypicalPrice selects the typical price instead of the closing price
func WithTypicalPrice(use bool) Option {
	return func(o *options) {
		o.useTypicalPrice = use
	}
}

// WithMaxLen caps the number of retained output values. 0 selects dataseries.DefaultMaxLen.
func WithMaxLen(maxLen int) Option {
	return func(o *options) {
		o.maxLen = maxLen
	}
}

// WithAnchor sets the anchoring mode
func WithAnchor(mode AnchorMode) Option {
	return func(o *options) {
		o.anchor = mode
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// VWAPWindow computes the Volume Weighted Average Price over the last period bars
// VWAP = Sum(Price * Volume) / Sum(Volume)
type VWAPWindow struct {
	bars            *EventWindow[*models.Bar]
	price           PriceFunc
	useTypicalPrice bool
	anchor          AnchorMode
	dayAnchor       time.Time // date of the session the last scan ended in
	fellBack        bool
}

// NewVWAPWindow creates a VWAP window over period bars
func NewVWAPWindow(period int, opts ...Option) (*VWAPWindow, error) {
	bars, err := NewEventWindow[*models.Bar](period)
	if err != nil {
		return nil, fmt.Errorf("VWAP %w", err)
	}

	o := buildOptions(opts)
	price := ClosePrice
	if o.useTypicalPrice {
		price = TypicalPrice
	}

	return &VWAPWindow{
		bars:            bars,
		price:           price,
		useTypicalPrice: o.useTypicalPrice,
		anchor:          o.anchor,
	}, nil
}

// OnNewValue appends a bar, evicting the oldest one when the window is full
func (w *VWAPWindow) OnNewValue(_ time.Time, bar *models.Bar) {
	w.bars.PushBack(bar)
}

// Value returns the VWAP over the window, or dataseries.None() until the window is full.
// When every bar in the scanned range has zero volume the price of the newest bar is returned.
func (w *VWAPWindow) Value() dataseries.Value {
	w.fellBack = false
	if !w.bars.WindowFull() {
		return dataseries.None()
	}

	var total, volume float64
	var last *models.Bar
	for _, bar := range w.bars.Values() {
		if date := bar.Date(); !date.Equal(w.dayAnchor) {
			w.dayAnchor = date
			if w.anchor == AnchorSession {
				total, volume = 0, 0
			}
		}
		total += w.price(bar) * bar.Volume
		volume += bar.Volume
		last = bar
	}

	if volume == 0 {
		w.fellBack = true
		return dataseries.Some(w.price(last))
	}
	return dataseries.Some(total / volume)
}

// WindowSize returns the period
func (w *VWAPWindow) WindowSize() int {
	return w.bars.WindowSize()
}

// Bars returns the bars in the window, oldest first
func (w *VWAPWindow) Bars() []*models.Bar {
	return w.bars.Values()
}

// DayAnchor returns the calendar date remembered by the last Value call
func (w *VWAPWindow) DayAnchor() time.Time {
	return w.dayAnchor
}

// UsedFallback reports whether the last Value call hit the zero-volume fallback
func (w *VWAPWindow) UsedFallback() bool {
	return w.fellBack
}

// UseTypicalPrice reports whether the typical price is weighted
func (w *VWAPWindow) UseTypicalPrice() bool {
	return w.useTypicalPrice
}

// Anchor returns the anchoring mode
func (w *VWAPWindow) Anchor() AnchorMode {
	return w.anchor
}

// VWAP is a filter that republishes a VWAPWindow over a bar series as a derived series
type VWAP struct {
	*EventBasedFilter[*models.Bar]
	window *VWAPWindow
	name   string
}

// NewVWAP binds a VWAP window of the given period to source
func NewVWAP(source *dataseries.BarDataSeries, period int, opts ...Option) (*VWAP, error) {
	if source == nil {
		return nil, ErrNotBarSeries
	}

	o := buildOptions(opts)
	if o.maxLen < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidMaxLen, o.maxLen)
	}

	window, err := NewVWAPWindow(period, opts...)
	if err != nil {
		return nil, err
	}

	return &VWAP{
		EventBasedFilter: NewEventBasedFilter[*models.Bar](source, window, o.maxLen),
		window:           window,
		name:             vwapName(period, o),
	}, nil
}

func vwapName(period int, o options) string {
	name := "vwap"
	if o.useTypicalPrice {
		name += "_tp"
	}
	if o.anchor == AnchorSession {
		name += "_session"
	}
	return fmt.Sprintf("%s_%d", name, period)
}

// Name returns the indicator name
func (v *VWAP) Name() string {
	return v.name
}

// Period returns the window size
func (v *VWAP) Period() int {
	return v.window.WindowSize()
}

// UseTypicalPrice reports whether the typical price is weighted
func (v *VWAP) UseTypicalPrice() bool {
	return v.window.UseTypicalPrice()
}

// VWAPWindow returns the underlying window
func (v *VWAP) VWAPWindow() *VWAPWindow {
	return v.window
}
