// Package forecast implements the forecaster family behind a single
// contract: Forecast(history, horizon) -> ForecastOutput. Every model is
// deterministic and reports in-sample fit via a shared Gaussian
// log-likelihood AIC/BIC.
package forecast

import (
	"fmt"
	"math"

	"github.com/tsquant/engine/models"
)

// Default smoothing constants.
const (
	DefaultAlpha = 0.3
	DefaultBeta  = 0.1
)

// Reliability labels, ordered best to worst. Fixed enumeration reproduced
// exactly for consumer compatibility.
const (
	ReliabilityVeryHigh = "Very High"
	ReliabilityHigh     = "High"
	ReliabilityModerate = "Moderate"
	ReliabilityLow      = "Low"
	ReliabilityVeryLow  = "Very Low"
)

// All returns one instance of every forecaster in the family.
func All() []models.Forecaster {
	return []models.Forecaster{
		NewDifferenceAR(),
		NewExponentialSmoothing(DefaultAlpha),
		NewLinearTrend(),
		NewMovingAverage(),
		NewHolt(DefaultAlpha, DefaultBeta),
	}
}

// ByName returns the forecaster with the given name.
func ByName(name string) (models.Forecaster, error) {
	for _, f := range All() {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown forecast model %q", models.ErrInvalidParameter, name)
}

// validateArgs applies the shared input checks of the family.
func validateArgs(history []float64, horizon, minLen int) error {
	if horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", models.ErrInvalidParameter, horizon)
	}
	if len(history) < minLen {
		return fmt.Errorf("%w: need at least %d observations, got %d", models.ErrInsufficientData, minLen, len(history))
	}
	return nil
}

// fitMetrics derives AIC/BIC/RMSE from in-sample residuals using the
// Gaussian log-likelihood, penalized by the model's parameter count k.
func fitMetrics(residuals []float64, k int) models.ModelFit {
	n := len(residuals)
	if n == 0 {
		return models.ModelFit{AIC: math.Inf(1), BIC: math.Inf(1)}
	}

	sse := 0.0
	for _, r := range residuals {
		sse += r * r
	}
	sigma2 := sse / float64(n)
	if sigma2 < 1e-12 {
		sigma2 = 1e-12
	}

	nf := float64(n)
	logLik := -nf / 2 * (math.Log(2*math.Pi) + math.Log(sigma2) + 1)

	return models.ModelFit{
		AIC:  -2*logLik + 2*float64(k),
		BIC:  -2*logLik + float64(k)*math.Log(nf),
		RMSE: math.Sqrt(sigma2),
	}
}

// BuildIntervals derives 95% and 80% confidence bands around the point
// forecasts. The error band grows with sqrt(h) since forecast uncertainty
// compounds with the horizon.
func BuildIntervals(predictions []float64, forecastError float64) []models.ConfidenceInterval {
	intervals := make([]models.ConfidenceInterval, len(predictions))
	for h, p := range predictions {
		scale := forecastError * math.Sqrt(float64(h+1))
		intervals[h] = models.ConfidenceInterval{
			Point:   p,
			Lower95: p - 1.96*scale,
			Upper95: p + 1.96*scale,
			Lower80: p - 1.2816*scale,
			Upper80: p + 1.2816*scale,
		}
	}
	return intervals
}

// Reliability buckets the relative forecast error (error divided by the last
// observed level) into the fixed five-tier scale.
func Reliability(forecastError, lastLevel float64) string {
	if lastLevel == 0 {
		return ReliabilityVeryLow
	}
	rel := math.Abs(forecastError / lastLevel)
	switch {
	case rel < 0.005:
		return ReliabilityVeryHigh
	case rel < 0.01:
		return ReliabilityHigh
	case rel < 0.02:
		return ReliabilityModerate
	case rel < 0.05:
		return ReliabilityLow
	default:
		return ReliabilityVeryLow
	}
}

// Report assembles the consumer-facing forecast payload for one model run.
func Report(symbol string, out *models.ForecastOutput, lastLevel float64) *models.ForecastReport {
	return &models.ForecastReport{
		Symbol:              symbol,
		Predictions:         out.Predictions,
		ConfidenceIntervals: BuildIntervals(out.Predictions, out.ModelFit.RMSE),
		ModelInfo:           out.ModelInfo,
		Quality: models.ForecastQuality{
			ModelFit:      out.ModelFit,
			ForecastError: out.ModelFit.RMSE,
			Reliability:   Reliability(out.ModelFit.RMSE, lastLevel),
		},
	}
}
