package calculator

import (
	"errors"
	"math"
)

// PriceRange scans all prices and returns the lowest and highest.
func PriceRange(prices []float64) (low, high float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, p := range prices {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return low, high, nil
}
