package forecast

import (
	"github.com/tsquant/engine/internal/stats"
	"github.com/tsquant/engine/models"
)

// MovingAverage forecasts flat at the mean of the trailing window of
// min(20, n/2) observations.
type MovingAverage struct{}

// NewMovingAverage creates the moving-average forecaster.
func NewMovingAverage() *MovingAverage {
	return &MovingAverage{}
}

// Name implements models.Forecaster.
func (m *MovingAverage) Name() string { return "moving_average" }

// Forecast implements models.Forecaster.
func (m *MovingAverage) Forecast(history []float64, horizon int) (*models.ForecastOutput, error) {
	if err := validateArgs(history, horizon, 4); err != nil {
		return nil, err
	}

	n := len(history)
	window := 20
	if n/2 < window {
		window = n / 2
	}

	level := stats.Mean(history[n-window:])

	// One-step residuals against the trailing-window mean.
	residuals := make([]float64, 0, n-window)
	for t := window; t < n; t++ {
		residuals = append(residuals, history[t]-stats.Mean(history[t-window:t]))
	}

	predictions := make([]float64, horizon)
	for h := range predictions {
		predictions[h] = level
	}

	return &models.ForecastOutput{
		Predictions: predictions,
		ModelInfo: models.ModelInfo{
			Name: m.Name(),
			Parameters: map[string]float64{
				"window": float64(window),
				"level":  level,
			},
			DOF: 1,
		},
		ModelFit: fitMetrics(residuals, 1),
	}, nil
}
