package backtest

import (
	"math"

	"github.com/tsquant/engine/models"
)

// computeMetrics aggregates all window-level forecasts into one accuracy
// computation over the pooled (forecast, actual) pairs.
func computeMetrics(forecasts, actuals, windowRMSEs []float64, hits, windows int) models.AccuracyMetrics {
	n := len(actuals)

	var sumAbs, sumSq, sumPct, sumBias float64
	for i := 0; i < n; i++ {
		err := forecasts[i] - actuals[i]
		sumAbs += math.Abs(err)
		sumSq += err * err
		if actuals[i] != 0 {
			sumPct += math.Abs(err/actuals[i]) * 100
			sumBias += err / actuals[i]
		}
	}

	mse := sumSq / float64(n)

	// R^2 against the pooled actual mean.
	actualMean := mean(actuals)
	ssTot := 0.0
	for _, a := range actuals {
		d := a - actualMean
		ssTot += d * d
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - sumSq/ssTot
	}

	directional := 0.0
	if windows > 0 {
		directional = float64(hits) / float64(windows) * 100
	}

	return models.AccuracyMetrics{
		MAE:                 sumAbs / float64(n),
		RMSE:                math.Sqrt(mse),
		MAPE:                sumPct / float64(n),
		MSE:                 mse,
		R2:                  r2,
		DirectionalAccuracy: directional,
		Bias:                sumBias / float64(n),
		Consistency:         consistency(windowRMSEs),
	}
}

// consistency = 1 - coefficient of variation of per-window RMSE, clamped
// at 0. A model whose window errors barely vary scores near 1.
func consistency(windowRMSEs []float64) float64 {
	if len(windowRMSEs) < 2 {
		return 0
	}
	m := mean(windowRMSEs)
	if m == 0 {
		return 1
	}
	c := 1 - stdDev(windowRMSEs, m)/m
	if c < 0 {
		return 0
	}
	return c
}

// compositeScore averages a MAPE-derived and an RMSE-derived score, each
// max(0, 100-metric). RMSE is in price units, so the score is
// scale-sensitive; kept as-is for compatibility with existing consumers.
func compositeScore(m models.AccuracyMetrics) float64 {
	mapeScore := math.Max(0, 100-m.MAPE)
	rmseScore := math.Max(0, 100-m.RMSE)
	return (mapeScore + rmseScore) / 2
}

// performanceGrade buckets MAPE and directional accuracy into the fixed
// five-tier ordinal scale.
func performanceGrade(m models.AccuracyMetrics) string {
	switch {
	case m.MAPE < 1 && m.DirectionalAccuracy >= 70:
		return "A+"
	case m.MAPE < 2 && m.DirectionalAccuracy >= 60:
		return "A"
	case m.MAPE < 5 && m.DirectionalAccuracy >= 50:
		return "B"
	case m.MAPE < 10 && m.DirectionalAccuracy >= 40:
		return "C"
	default:
		return "F"
	}
}

// windowRMSE is the root mean squared error of one forecast window.
func windowRMSE(forecasts, actuals []float64) float64 {
	n := len(actuals)
	if n == 0 || len(forecasts) != n {
		return math.NaN()
	}
	sumSq := 0.0
	for i := 0; i < n; i++ {
		d := forecasts[i] - actuals[i]
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// Helper functions
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func stdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return math.Sqrt(sumSquaredDiff / float64(len(values)-1))
}
