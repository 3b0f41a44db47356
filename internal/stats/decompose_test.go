package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsquant/engine/models"
)

func seasonalSeries(n, period int, trendSlope, amplitude float64) []float64 {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = 100 + trendSlope*float64(i) +
			amplitude*math.Sin(2*math.Pi*float64(i)/float64(period))
	}
	return values
}

func TestDecomposeAdditiveRoundTrip(t *testing.T) {
	observed := seasonalSeries(84, 7, 0.5, 3)
	result, err := Decompose(observed, 7, Additive)
	require.NoError(t, err)

	for i := range observed {
		reconstructed := result.Trend[i] + result.Seasonal[i] + result.Residual[i]
		assert.InDelta(t, observed[i], reconstructed, 1e-9, "index %d", i)
	}
	assert.Len(t, result.Trend, len(observed))
	assert.Len(t, result.Seasonal, len(observed))
	assert.Len(t, result.Residual, len(observed))
}

func TestDecomposeMultiplicativeRoundTrip(t *testing.T) {
	observed := seasonalSeries(84, 7, 0.5, 3)
	result, err := Decompose(observed, 7, Multiplicative)
	require.NoError(t, err)

	for i := range observed {
		reconstructed := result.Trend[i] * result.Seasonal[i] * result.Residual[i]
		assert.InDelta(t, observed[i], reconstructed, 1e-9, "index %d", i)
	}
}

func TestDecomposeSeasonalCentering(t *testing.T) {
	observed := seasonalSeries(140, 7, 0.2, 5)

	additive, err := Decompose(observed, 7, Additive)
	require.NoError(t, err)
	assert.InDelta(t, 0, Mean(additive.Seasonal[:7]), 1e-9, "additive seasonal indices should have zero mean")

	multiplicative, err := Decompose(observed, 7, Multiplicative)
	require.NoError(t, err)
	assert.InDelta(t, 1, Mean(multiplicative.Seasonal[:7]), 1e-9, "multiplicative seasonal indices should have unit mean")
}

func TestDecomposePurelySeasonal(t *testing.T) {
	// Period-7 signal with zero trend: seasonality should dominate and the
	// residual should be near zero away from the boundary windows.
	observed := seasonalSeries(140, 7, 0, 4)
	result, err := Decompose(observed, 7, Additive)
	require.NoError(t, err)

	assert.Greater(t, result.SeasonalStrength, 0.9, "seasonal strength should be near 1")
	assert.Less(t, result.TrendStrength, 0.3, "trend strength should be near 0")

	for i := 7; i < len(observed)-7; i++ {
		assert.InDelta(t, 0, result.Residual[i], 0.25, "interior residual at %d", i)
	}
}

func TestDecomposeTrendingSeries(t *testing.T) {
	// Strong linear trend, weak seasonality.
	observed := seasonalSeries(140, 7, 2.0, 0.5)
	result, err := Decompose(observed, 7, Additive)
	require.NoError(t, err)

	assert.Greater(t, result.TrendStrength, 0.8, "trend strength should be high for a trending series")
}

func TestDecomposeErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		period  int
		mode    string
		wantErr error
	}{
		{"too short", seasonalSeries(10, 7, 0, 1), 7, Additive, models.ErrInsufficientData},
		{"period one", seasonalSeries(50, 7, 0, 1), 1, Additive, models.ErrInvalidParameter},
		{"bad mode", seasonalSeries(50, 7, 0, 1), 7, "robust", models.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.values, tt.period, tt.mode)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
