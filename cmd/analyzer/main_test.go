package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsquant/engine/internal/numerics"
	"github.com/tsquant/engine/models"
)

func testConfig() *models.Config {
	return &models.Config{
		Symbol:            "EUR/USD",
		MaxLags:           10,
		SeasonalPeriod:    7,
		RollingWindow:     30,
		ConfidenceLevel:   0.95,
		SignificanceLevel: 0.05,
	}
}

// driftingPrices grows ~1% per day with a small alternating wobble so the
// return series has positive mean and non-zero variance.
func driftingPrices(n int) []models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]models.PricePoint, n)
	level := 100.0
	for i := 0; i < n; i++ {
		prices[i] = models.PricePoint{Timestamp: base.AddDate(0, 0, i), Close: level}
		r := 0.01
		if i%2 == 0 {
			r += 0.002
		} else {
			r -= 0.002
		}
		level *= 1 + r
	}
	return prices
}

func TestAnalyzeBandFollowsConfidenceLevel(t *testing.T) {
	cfg := testConfig()
	cfg.ConfidenceLevel = 0.90
	prices := driftingPrices(120)

	report, err := analyze(cfg, prices)
	require.NoError(t, err)
	require.NotNil(t, report.Autocorrelation)

	nReturns := float64(len(prices) - 1)
	want := numerics.NormalQuantile(0.95) / math.Sqrt(nReturns)
	assert.InDelta(t, want, report.Autocorrelation.ConfidenceBound, 1e-12)
}

func TestAnalyzeDefaultBandMatchesTwoSigma(t *testing.T) {
	report, err := analyze(testConfig(), driftingPrices(120))
	require.NoError(t, err)
	require.NotNil(t, report.Autocorrelation)

	// At the 0.95 default the band is the familiar 1.96/sqrt(n).
	assert.InDelta(t, 1.96/math.Sqrt(119), report.Autocorrelation.ConfidenceBound, 1e-4)
}

func TestAnalyzeReportsMeanReturnTestAndPower(t *testing.T) {
	report, err := analyze(testConfig(), driftingPrices(120))
	require.NoError(t, err)

	require.NotNil(t, report.MeanReturn)
	assert.Equal(t, "t-test", report.MeanReturn.Test)
	assert.True(t, report.MeanReturn.RejectNull, "a steady daily drift should reject a zero-mean null")

	require.NotNil(t, report.Power)
	assert.Greater(t, report.Power.RequiredSampleSize, 0)
	assert.Greater(t, report.Power.AchievedPower, 0.0)
	assert.LessOrEqual(t, report.Power.AchievedPower, 1.0)
	assert.InDelta(t, targetPower, report.Power.TargetPower, 1e-12)
}
