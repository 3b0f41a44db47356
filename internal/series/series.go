// Package series converts raw price history into the return sequences the
// statistical components consume. Input validation happens here, before any
// downstream computation runs.
package series

import (
	"fmt"
	"math"

	"github.com/tsquant/engine/models"
)

// Validate rejects malformed price history eagerly: empty input,
// non-monotonic timestamps and non-positive prices.
func Validate(prices []models.PricePoint) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: empty price series", models.ErrInsufficientData)
	}
	for i, p := range prices {
		if p.Close <= 0 {
			return fmt.Errorf("%w: non-positive price %.6f at index %d", models.ErrInvalidParameter, p.Close, i)
		}
		if i > 0 && !prices[i-1].Timestamp.Before(p.Timestamp) {
			return fmt.Errorf("%w: timestamps not strictly increasing at index %d", models.ErrInvalidParameter, i)
		}
	}
	return nil
}

// Closes extracts the close prices in order.
func Closes(prices []models.PricePoint) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = p.Close
	}
	return out
}

// SimpleReturns derives the percentage-change return series. The result has
// length len(prices)-1 and is always freshly allocated.
func SimpleReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices for returns, got %d", models.ErrInsufficientData, len(prices))
	}
	returns := make([]float64, len(prices)-1)
	for i := 0; i < len(prices)-1; i++ {
		if prices[i] == 0 {
			return nil, fmt.Errorf("%w: zero price at index %d", models.ErrInvalidParameter, i)
		}
		returns[i] = (prices[i+1] - prices[i]) / prices[i]
	}
	return returns, nil
}

// LogReturns derives the log-return series ln(p[i+1]/p[i]).
func LogReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices for returns, got %d", models.ErrInsufficientData, len(prices))
	}
	returns := make([]float64, len(prices)-1)
	for i := 0; i < len(prices)-1; i++ {
		if prices[i] <= 0 || prices[i+1] <= 0 {
			return nil, fmt.Errorf("%w: non-positive price at index %d", models.ErrInvalidParameter, i)
		}
		returns[i] = math.Log(prices[i+1] / prices[i])
	}
	return returns, nil
}

// Diff returns the first-difference series p[i+1]-p[i].
func Diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 0; i < len(values)-1; i++ {
		out[i] = values[i+1] - values[i]
	}
	return out
}

// AnnualizedVolatility scales the standard deviation of daily returns to a
// yearly figure using 252 trading days.
func AnnualizedVolatility(returns []float64) float64 {
	n := len(returns)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(n)

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(n - 1)

	return math.Sqrt(variance) * math.Sqrt(252)
}
