// Package synth generates randomized daily price series for demo charts.
//
// The symbol of a request is validated but does not influence the output: two
// symbols generated from equal random sources produce identical series.
package synth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"StockSandbox/internal/calculator"
	"StockSandbox/internal/model"
)

// ErrInvalidSymbol is returned for a blank symbol.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrInvalidWindow aliases the model error so callers can match either.
var ErrInvalidWindow = model.ErrInvalidWindow

const (
	minBasePrice  = 50.0
	basePriceSpan = 450.0
	dailySwing    = 0.03
	trendBias     = 0.005
	priceFloor    = 10.0
	minVolume     = 1_000_000
	volumeSpan    = 10_000_000
)

// RandomSource is the randomness consumed by Generate. *math/rand.Rand satisfies it.
// A source must not be shared between concurrent Generate calls.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// Engine generates series relative to the current calendar day.
type Engine struct {
	now func() time.Time
	loc *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone that decides which calendar day is "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// NewEngine creates an Engine using UTC calendar days.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", ErrInvalidSymbol
	}
	return s, nil
}

// Now returns the current instant in the engine's location.
func (e *Engine) Now() time.Time {
	return e.now().In(e.loc)
}

// Today returns the generation day at midnight in the engine's location.
func (e *Engine) Today() time.Time {
	return e.dayOf(e.Now())
}

func (e *Engine) dayOf(t time.Time) time.Time {
	t = t.In(e.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
}

// Generate returns window days + 1 points, oldest first, ending today.
func (e *Engine) Generate(req model.SeriesRequest, rng RandomSource) ([]model.PricePoint, error) {
	return e.GenerateAt(req, rng, e.Now())
}

// GenerateAt is Generate with the series ending on the calendar day of at,
// taken in the engine's location.
func (e *Engine) GenerateAt(req model.SeriesRequest, rng RandomSource, at time.Time) ([]model.PricePoint, error) {
	if _, err := NormalizeSymbol(req.Symbol); err != nil {
		return nil, err
	}
	days, err := req.Window.Days()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("generate %s: nil random source", req.Symbol)
	}

	today := e.dayOf(at)
	base := minBasePrice + rng.Float64()*basePriceSpan
	trend := -1.0
	if rng.Float64() > 0.5 {
		trend = 1.0
	}

	points := make([]model.PricePoint, 0, days+1)
	for i := days; i >= 0; i-- {
		change := (rng.Float64()*2*dailySwing - dailySwing + trend*trendBias) * base
		base += change
		if base < priceFloor {
			base = priceFloor
		}
		points = append(points, model.PricePoint{
			Date:   today.AddDate(0, 0, -i),
			Price:  calculator.Round2(base),
			Volume: int64(rng.Intn(volumeSpan) + minVolume),
		})
	}
	return points, nil
}
