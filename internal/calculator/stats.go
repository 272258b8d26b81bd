package calculator

import (
	"errors"

	"StockSandbox/internal/model"
)

var (
	// ErrEmptySeries is returned when statistics are requested for zero points.
	ErrEmptySeries = errors.New("empty series")
	// ErrZeroBasePrice is returned when the first price is zero and the percent change is undefined.
	ErrZeroBasePrice = errors.New("first price is zero")
)

// ComputeStats summarizes an ordered series. SMAs are anchored at the last point.
func ComputeStats(points []model.PricePoint) (model.SeriesStats, error) {
	if len(points) == 0 {
		return model.SeriesStats{}, ErrEmptySeries
	}
	prices := extractPrices(points)
	first := prices[0]
	last := prices[len(prices)-1]
	if first == 0 {
		return model.SeriesStats{}, ErrZeroBasePrice
	}

	low, high, err := PriceRange(prices)
	if err != nil {
		return model.SeriesStats{}, err
	}

	change := last - first
	end := len(prices) - 1
	return model.SeriesStats{
		LastPrice:      last,
		ChangeAbsolute: change,
		ChangePercent:  change / first * 100,
		MinPrice:       low,
		MaxPrice:       high,
		LastVolume:     points[end].Volume,
		SMA10:          trailingSMA(prices, end, ShortPeriod),
		SMA30:          trailingSMA(prices, end, LongPeriod),
	}, nil
}
