package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"StockSandbox/internal/calculator"
	"StockSandbox/internal/model"
	"StockSandbox/internal/synth"
)

// Collector orchestrates point fetching and statistics computation.
type Collector struct {
	Source Source
	logger zerolog.Logger
	now    func() time.Time
}

// NewCollector creates a new Collector. Results are stamped with the source's
// clock when it has one, otherwise with time.Now.
func NewCollector(src Source, logger zerolog.Logger) *Collector {
	now := time.Now
	if clk, ok := src.(Clock); ok {
		now = clk.Now
	}
	return &Collector{
		Source: src,
		logger: logger.With().Str("component", "collector").Logger(),
		now:    now,
	}
}

// Collect validates the request, fetches points and computes stats and rolling averages.
func (c *Collector) Collect(ctx context.Context, req model.SeriesRequest) (*model.SeriesResult, error) {
	symbol, err := synth.NormalizeSymbol(req.Symbol)
	if err != nil {
		return nil, err
	}
	if _, err := req.Window.Days(); err != nil {
		return nil, err
	}
	req.Symbol = symbol

	at := c.now()
	points, err := c.Source.FetchSeries(ctx, req, at)
	if err != nil {
		return nil, fmt.Errorf("fetch %s series: %w", c.Source.Name(), err)
	}
	stats, err := calculator.ComputeStats(points)
	if err != nil {
		return nil, fmt.Errorf("compute stats for %s: %w", symbol, err)
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Str("window", req.Window.String()).
		Int("points", len(points)).
		Float64("last_price", stats.LastPrice).
		Msg("series collected")

	return &model.SeriesResult{
		Symbol:      symbol,
		Window:      req.Window,
		Source:      c.Source.Name(),
		GeneratedAt: at,
		Points:      points,
		Stats:       stats,
		Rolling:     calculator.ComputeRollingAverages(points),
	}, nil
}
