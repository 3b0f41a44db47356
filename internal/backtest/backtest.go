// Package backtest drives any forecaster over historical data with
// walk-forward (rolling-origin) validation and ranks candidate models.
package backtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsquant/engine/models"
)

// Runner executes walk-forward validation. Windows retrain from scratch, so
// a run is O(n/horizon) forecaster fits; windows are independent given the
// shared immutable input.
type Runner struct {
	TrainingDays int
	Horizon      int
	logger       zerolog.Logger
}

// NewRunner creates a walk-forward runner.
func NewRunner(trainingDays, horizon int) *Runner {
	return &Runner{
		TrainingDays: trainingDays,
		Horizon:      horizon,
		logger:       log.With().Str("component", "backtest").Logger(),
	}
}

// Run validates one forecaster: starting at TrainingDays it repeatedly
// trains on all data up to index i, forecasts Horizon steps, compares with
// the next Horizon actuals, then advances i by Horizon. Windows whose fit
// fails are skipped and counted, never silently dropped. Cancellation is
// cooperative at window granularity.
func (r *Runner) Run(ctx context.Context, forecaster models.Forecaster, prices []float64) (*models.BacktestResult, error) {
	if r.Horizon <= 0 || r.TrainingDays <= 0 {
		return nil, fmt.Errorf("%w: trainingDays and horizon must be positive", models.ErrInvalidParameter)
	}
	if len(prices) < r.TrainingDays+r.Horizon {
		return nil, fmt.Errorf("%w: need at least %d observations for trainingDays=%d horizon=%d, got %d",
			models.ErrInsufficientData, r.TrainingDays+r.Horizon, r.TrainingDays, r.Horizon, len(prices))
	}

	result := &models.BacktestResult{Model: forecaster.Name()}

	var pooledForecasts, pooledActuals []float64
	var windowRMSEs []float64
	var directionalHits, directionalTotal int

	for i := r.TrainingDays; i+r.Horizon <= len(prices); i += r.Horizon {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.TotalWindows++

		train := prices[:i]
		actual := prices[i : i+r.Horizon]

		out, err := forecaster.Forecast(train, r.Horizon)
		if err != nil {
			result.SkippedWindows++
			r.logger.Warn().Err(err).Int("training_end", i).
				Str("model", forecaster.Name()).Msg("Window skipped")
			continue
		}

		rmse := windowRMSE(out.Predictions, actual)
		result.Windows = append(result.Windows, models.WindowResult{
			TrainingEnd: i,
			Accuracy:    rmse,
		})
		windowRMSEs = append(windowRMSEs, rmse)
		pooledForecasts = append(pooledForecasts, out.Predictions...)
		pooledActuals = append(pooledActuals, actual...)

		// Direction over the window: forecast end vs training end compared
		// with actual end vs training end.
		lastTrain := train[len(train)-1]
		predMove := out.Predictions[len(out.Predictions)-1] - lastTrain
		actualMove := actual[len(actual)-1] - lastTrain
		directionalTotal++
		if (predMove >= 0) == (actualMove >= 0) {
			directionalHits++
		}
	}

	if len(pooledActuals) == 0 {
		return nil, fmt.Errorf("%w: every backtest window failed for model %s",
			models.ErrInsufficientData, forecaster.Name())
	}

	result.Metrics = computeMetrics(pooledForecasts, pooledActuals, windowRMSEs,
		directionalHits, directionalTotal)
	result.CompositeScore = compositeScore(result.Metrics)
	result.Grade = performanceGrade(result.Metrics)

	r.logger.Debug().
		Str("model", forecaster.Name()).
		Int("windows", result.TotalWindows).
		Int("skipped", result.SkippedWindows).
		Float64("composite", result.CompositeScore).
		Msg("Backtest complete")

	return result, nil
}

// Compare runs every forecaster over the same split concurrently and selects
// the highest composite score as the production recommendation.
func (r *Runner) Compare(ctx context.Context, forecasters []models.Forecaster, prices []float64) (*models.ModelComparison, error) {
	if len(forecasters) == 0 {
		return nil, fmt.Errorf("%w: no forecasters supplied", models.ErrInvalidParameter)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make([]*models.BacktestResult, 0, len(forecasters))

	for _, f := range forecasters {
		wg.Add(1)
		go func(f models.Forecaster) {
			defer wg.Done()
			result, err := r.Run(ctx, f, prices)
			if err != nil {
				r.logger.Warn().Err(err).Str("model", f.Name()).Msg("Model excluded from comparison")
				return
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(f)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no model produced a valid backtest", models.ErrInsufficientData)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})

	return &models.ModelComparison{
		Results:   results,
		BestModel: results[0].Model,
	}, nil
}
