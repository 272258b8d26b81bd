package calculator

import (
	"errors"

	"StockSandbox/internal/model"
)

// Trailing periods shown on the summary card and chart.
const (
	ShortPeriod = 10
	LongPeriod  = 30
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// trailingSMA returns the rounded mean of the period prices ending at index end,
// or nil when fewer than period prices are available.
func trailingSMA(prices []float64, end, period int) *float64 {
	sma, err := CalculateSMA(prices[:end+1], period)
	if err != nil {
		return nil
	}
	v := Round2(sma)
	return &v
}

func extractPrices(points []model.PricePoint) []float64 {
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	return prices
}
