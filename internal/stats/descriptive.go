// Package stats implements the statistical inference components: descriptive
// statistics, the autocorrelation engine, stationarity tests, seasonal
// decomposition and hypothesis/power calculations.
package stats

import (
	"fmt"
	"math"

	"github.com/tsquant/engine/models"
)

// Describe computes the summary statistics of a numeric sequence. Variance
// uses the n-1 sample denominator; kurtosis is reported raw (normal = 3).
func Describe(values []float64) (*models.DescriptiveStats, error) {
	n := len(values)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", models.ErrInsufficientData, n)
	}

	mean := Mean(values)
	min, max := values[0], values[0]
	m2, m3, m4 := 0.0, 0.0, 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}

	variance := m2 / float64(n-1)
	std := math.Sqrt(variance)

	skew, kurt := 0.0, 0.0
	if std > 0 {
		nf := float64(n)
		skew = (m3 / nf) / math.Pow(m2/nf, 1.5)
		kurt = (m4 / nf) / math.Pow(m2/nf, 2)
	}

	return &models.DescriptiveStats{
		Count:    n,
		Mean:     mean,
		Variance: variance,
		StdDev:   std,
		Skewness: skew,
		Kurtosis: kurt,
		Min:      min,
		Max:      max,
		Range:    max - min,
	}, nil
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the sample variance (n-1 denominator).
func Variance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(n-1)
}

// StdDev returns the sample standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}
