package forecast

import (
	"github.com/tsquant/engine/internal/stats"
	"github.com/tsquant/engine/models"
)

// DifferenceAR is the ARIMA-like forecaster: it first-differences the price
// series, fits an AR(1) on the differences (mean plus lag-1 coefficient),
// forecasts the differences recursively and reconstructs the price path by
// cumulative summation from the last observed price.
type DifferenceAR struct{}

// NewDifferenceAR creates the difference-AR(1) forecaster.
func NewDifferenceAR() *DifferenceAR {
	return &DifferenceAR{}
}

// Name implements models.Forecaster.
func (m *DifferenceAR) Name() string { return "arima" }

// Forecast implements models.Forecaster.
func (m *DifferenceAR) Forecast(history []float64, horizon int) (*models.ForecastOutput, error) {
	if err := validateArgs(history, horizon, 5); err != nil {
		return nil, err
	}

	n := len(history)
	diffs := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = history[i] - history[i-1]
	}

	mu := stats.Mean(diffs)
	phi, err := stats.AR1Coefficient(diffs)
	if err != nil {
		// Constant-increment series has no lag-1 structure; fall back to a
		// pure drift model.
		phi = 0
	}

	// One-step in-sample residuals on the differenced scale.
	residuals := make([]float64, 0, len(diffs)-1)
	for t := 1; t < len(diffs); t++ {
		fitted := mu + phi*(diffs[t-1]-mu)
		residuals = append(residuals, diffs[t]-fitted)
	}

	// Recursive forecast of the differences, then cumulative reconstruction.
	predictions := make([]float64, horizon)
	lastDiff := diffs[len(diffs)-1]
	level := history[n-1]
	for h := 0; h < horizon; h++ {
		nextDiff := mu + phi*(lastDiff-mu)
		level += nextDiff
		predictions[h] = level
		lastDiff = nextDiff
	}

	return &models.ForecastOutput{
		Predictions: predictions,
		ModelInfo: models.ModelInfo{
			Name: m.Name(),
			Parameters: map[string]float64{
				"mu":  mu,
				"phi": phi,
			},
			DOF: 2,
		},
		ModelFit: fitMetrics(residuals, 2),
	}, nil
}
