package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsquant/engine/config"
	"github.com/tsquant/engine/internal/api/twelvedata"
	"github.com/tsquant/engine/internal/backtest"
	"github.com/tsquant/engine/internal/forecast"
	"github.com/tsquant/engine/internal/series"
	"github.com/tsquant/engine/models"
)

// ForecastRun is the full forecasting payload: the model comparison that
// selected the production model plus its forecast with confidence bands.
type ForecastRun struct {
	Comparison *models.ModelComparison `json:"comparison,omitempty"`
	Forecast   *models.ForecastReport  `json:"forecast"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)
	log.Info().Str("symbol", cfg.Symbol).Int("horizon", cfg.Horizon).Msg("Starting forecaster")

	prices, err := fetchPrices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch price history")
	}
	if err := series.Validate(prices); err != nil {
		log.Fatal().Err(err).Msg("Malformed price history")
	}

	run, err := runForecast(ctx, cfg, series.Closes(prices))
	if err != nil {
		log.Fatal().Err(err).Msg("Forecast failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(run); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode forecast")
	}
}

// runForecast selects the best model by walk-forward backtest (when
// enabled) and produces the production forecast from the full history.
func runForecast(ctx context.Context, cfg *models.Config, closes []float64) (*ForecastRun, error) {
	var comparison *models.ModelComparison
	chosen := models.Forecaster(forecast.NewDifferenceAR())

	if cfg.EnableBacktest {
		runner := backtest.NewRunner(cfg.TrainingDays, cfg.Horizon)
		result, err := runner.Compare(ctx, forecast.All(), closes)
		if err != nil {
			return nil, fmt.Errorf("model comparison: %w", err)
		}
		comparison = result

		best, err := forecast.ByName(result.BestModel)
		if err != nil {
			return nil, err
		}
		chosen = best
		log.Info().Str("model", result.BestModel).
			Float64("composite", result.Results[0].CompositeScore).
			Str("grade", result.Results[0].Grade).
			Msg("Selected production model")
	}

	out, err := chosen.Forecast(closes, cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("forecasting with %s: %w", chosen.Name(), err)
	}

	return &ForecastRun{
		Comparison: comparison,
		Forecast:   forecast.Report(cfg.Symbol, out, closes[len(closes)-1]),
	}, nil
}

func fetchPrices(ctx context.Context, cfg *models.Config) ([]models.PricePoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -cfg.Days)

	client := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: 5,
	})

	prices, err := client.FetchPrices(ctx, cfg.Symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", cfg.Symbol, err)
	}
	return prices, nil
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
