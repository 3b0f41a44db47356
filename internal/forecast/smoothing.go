package forecast

import (
	"github.com/tsquant/engine/models"
)

// ExponentialSmoothing is simple exponential smoothing with a single
// smoothing constant. The forecast is flat at the last smoothed level.
type ExponentialSmoothing struct {
	Alpha float64
}

// NewExponentialSmoothing creates an SES forecaster; alpha outside (0,1]
// falls back to the default.
func NewExponentialSmoothing(alpha float64) *ExponentialSmoothing {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &ExponentialSmoothing{Alpha: alpha}
}

// Name implements models.Forecaster.
func (m *ExponentialSmoothing) Name() string { return "exponential_smoothing" }

// Forecast implements models.Forecaster.
func (m *ExponentialSmoothing) Forecast(history []float64, horizon int) (*models.ForecastOutput, error) {
	if err := validateArgs(history, horizon, 2); err != nil {
		return nil, err
	}

	level := history[0]
	residuals := make([]float64, 0, len(history)-1)
	for _, x := range history[1:] {
		residuals = append(residuals, x-level)
		level = m.Alpha*x + (1-m.Alpha)*level
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
				"alpha": m.Alpha,
				"level": level,
			},
			DOF: 1,
		},
		ModelFit: fitMetrics(residuals, 1),
	}, nil
}

// Holt is double exponential smoothing with separate level and trend
// smoothing constants. The h-step forecast is level + h*trend.
type Holt struct {
	Alpha float64
	Beta  float64
}

// NewHolt creates a Holt linear-trend forecaster; out-of-range constants
// fall back to the defaults.
func NewHolt(alpha, beta float64) *Holt {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	if beta <= 0 || beta > 1 {
		beta = DefaultBeta
	}
	return &Holt{Alpha: alpha, Beta: beta}
}

// Name implements models.Forecaster.
func (m *Holt) Name() string { return "holt" }

// Forecast implements models.Forecaster.
func (m *Holt) Forecast(history []float64, horizon int) (*models.ForecastOutput, error) {
	if err := validateArgs(history, horizon, 3); err != nil {
		return nil, err
	}

	level := history[0]
	trend := history[1] - history[0]
	residuals := make([]float64, 0, len(history)-1)

	for _, x := range history[1:] {
		forecast := level + trend
		residuals = append(residuals, x-forecast)

		prevLevel := level
		level = m.Alpha*x + (1-m.Alpha)*(level+trend)
		trend = m.Beta*(level-prevLevel) + (1-m.Beta)*trend
	}

	predictions := make([]float64, horizon)
	for h := range predictions {
		predictions[h] = level + float64(h+1)*trend
	}

	return &models.ForecastOutput{
		Predictions: predictions,
		ModelInfo: models.ModelInfo{
			Name: m.Name(),
			Parameters: map[string]float64{
				"alpha": m.Alpha,
				"beta":  m.Beta,
				"level": level,
				"trend": trend,
			},
			DOF: 3,
		},
		ModelFit: fitMetrics(residuals, 3),
	}, nil
}
