package calculator

import "StockSandbox/internal/model"

// ComputeRollingAverages returns the trailing SMA10/SMA30 at every point, aligned
// with the input. Values are nil until enough points precede them.
func ComputeRollingAverages(points []model.PricePoint) []model.RollingAverage {
	prices := extractPrices(points)
	out := make([]model.RollingAverage, len(prices))
	for k := range prices {
		out[k] = model.RollingAverage{
			SMA10: trailingSMA(prices, k, ShortPeriod),
			SMA30: trailingSMA(prices, k, LongPeriod),
		}
	}
	return out
}
