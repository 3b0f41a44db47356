package stats

import (
	"fmt"

	"github.com/tsquant/engine/models"
)

// Decomposition modes.
const (
	Additive       = "additive"
	Multiplicative = "multiplicative"
)

// Decompose performs classical seasonal decomposition. The trend is a
// centered moving average with a half-window on each side; near the series
// boundaries the window shrinks to whatever is available, which biases the
// edge estimates (a known limitation of classical decomposition). Seasonal
// indices are phase averages of the detrended series, re-centered to zero
// mean (additive) or unit mean (multiplicative).
func Decompose(values []float64, period int, mode string) (*models.DecompositionResult, error) {
	n := len(values)
	if period < 2 {
		return nil, fmt.Errorf("%w: period must be at least 2, got %d", models.ErrInvalidParameter, period)
	}
	if mode != Additive && mode != Multiplicative {
		return nil, fmt.Errorf("%w: unknown decomposition mode %q", models.ErrInvalidParameter, mode)
	}
	if n < 2*period {
		return nil, fmt.Errorf("%w: need at least %d observations for period %d, got %d",
			models.ErrInsufficientData, 2*period, period, n)
	}

	trend := centeredMovingAverage(values, period)

	// Detrend
	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		if mode == Multiplicative {
			if trend[i] != 0 {
				detrended[i] = values[i] / trend[i]
			}
			// Zero trend contributes nothing to the seasonal pattern.
		} else {
			detrended[i] = values[i] - trend[i]
		}
	}

	// Average detrended values per phase
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		pattern[i%period] += detrended[i]
		counts[i%period]++
	}
	for p := 0; p < period; p++ {
		if counts[p] > 0 {
			pattern[p] /= float64(counts[p])
		}
	}

	// Re-center: zero mean for additive, unit mean for multiplicative
	patternMean := Mean(pattern)
	for p := range pattern {
		if mode == Multiplicative {
			if patternMean != 0 {
				pattern[p] /= patternMean
			}
		} else {
			pattern[p] -= patternMean
		}
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
		if mode == Multiplicative {
			denom := trend[i] * seasonal[i]
			if denom != 0 {
				residual[i] = values[i] / denom
			} else {
				residual[i] = 1
			}
		} else {
			residual[i] = values[i] - trend[i] - seasonal[i]
		}
	}

	return &models.DecompositionResult{
		Trend:            trend,
		Seasonal:         seasonal,
		Residual:         residual,
		Period:           period,
		Mode:             mode,
		SeasonalStrength: componentStrength(seasonal, residual),
		TrendStrength:    componentStrength(trend, residual),
	}, nil
}

// centeredMovingAverage smooths with a half-window on each side, shrinking
// the window near the boundaries.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	half := period / 2
	trend := make([]float64, n)

	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		trend[i] = sum / float64(hi-lo+1)
	}
	return trend
}

// componentStrength = max(0, 1 - var(residual)/var(component+residual)).
func componentStrength(component, residual []float64) float64 {
	combined := make([]float64, len(component))
	for i := range component {
		combined[i] = component[i] + residual[i]
	}
	varCombined := Variance(combined)
	if varCombined == 0 {
		return 0
	}
	strength := 1 - Variance(residual)/varCombined
	if strength < 0 {
		return 0
	}
	return strength
}
