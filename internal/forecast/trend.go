package forecast

import (
	"github.com/tsquant/engine/models"
)

// LinearTrend fits an ordinary least-squares regression of the series on its
// time index and extrapolates the fitted line.
type LinearTrend struct{}

// NewLinearTrend creates the linear-trend forecaster.
func NewLinearTrend() *LinearTrend {
	return &LinearTrend{}
}

// Name implements models.Forecaster.
func (m *LinearTrend) Name() string { return "linear_trend" }

// Forecast implements models.Forecaster.
func (m *LinearTrend) Forecast(history []float64, horizon int) (*models.ForecastOutput, error) {
	if err := validateArgs(history, horizon, 3); err != nil {
		return nil, err
	}

	n := len(history)
	nf := float64(n)

	var sumT, sumY, sumTY, sumT2 float64
	for i, y := range history {
		t := float64(i)
		sumT += t
		sumY += y
		sumTY += t * y
		sumT2 += t * t
	}

	denom := nf*sumT2 - sumT*sumT
	slope := 0.0
	if denom != 0 {
		slope = (nf*sumTY - sumT*sumY) / denom
	}
	intercept := (sumY - slope*sumT) / nf

	residuals := make([]float64, n)
	for i, y := range history {
		residuals[i] = y - (intercept + slope*float64(i))
	}

	predictions := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		predictions[h] = intercept + slope*float64(n+h)
	}

	return &models.ForecastOutput{
		Predictions: predictions,
		ModelInfo: models.ModelInfo{
			Name: m.Name(),
			Parameters: map[string]float64{
				"slope":     slope,
				"intercept": intercept,
			},
			DOF: 2,
		},
		ModelFit: fitMetrics(residuals, 2),
	}, nil
}
