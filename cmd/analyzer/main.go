package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tsquant/engine/config"
	"github.com/tsquant/engine/internal/api/twelvedata"
	"github.com/tsquant/engine/internal/database"
	"github.com/tsquant/engine/internal/numerics"
	"github.com/tsquant/engine/internal/series"
	"github.com/tsquant/engine/internal/stats"
	"github.com/tsquant/engine/models"
)

// targetPower is the conventional power the sample-size recommendation aims
// for.
const targetPower = 0.80

// AnalysisReport bundles the full diagnostics suite for one symbol.
type AnalysisReport struct {
	Symbol               string                        `json:"symbol"`
	Observations         int                           `json:"observations"`
	Prices               *models.DescriptiveStats      `json:"prices"`
	Returns              *models.DescriptiveStats      `json:"returns"`
	AnnualizedVolatility float64                       `json:"annualizedVolatility"`
	Autocorrelation      *models.AutocorrelationResult `json:"autocorrelation"`
	Stationarity         *models.StationarityResult    `json:"stationarity"`
	Decomposition        *models.DecompositionResult   `json:"decomposition"`
	Normality            *models.JarqueBeraResult      `json:"normality"`
	MeanReturn           *models.LocationTestResult    `json:"meanReturn"`
	Power                *models.PowerAnalysisResult   `json:"power"`
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
	log.Info().Str("symbol", cfg.Symbol).Int("days", cfg.Days).Msg("Starting series analyzer")

	prices, err := fetchPrices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch price history")
	}

	report, err := analyze(cfg, prices)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode report")
	}
}

// analyze runs the full diagnostics suite over validated price history.
func analyze(cfg *models.Config, prices []models.PricePoint) (*AnalysisReport, error) {
	if err := series.Validate(prices); err != nil {
		return nil, err
	}

	closes := series.Closes(prices)
	returns, err := series.SimpleReturns(closes)
	if err != nil {
		return nil, err
	}

	priceStats, err := stats.Describe(closes)
	if err != nil {
		return nil, err
	}
	returnStats, err := stats.Describe(returns)
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		Symbol:               cfg.Symbol,
		Observations:         len(prices),
		Prices:               priceStats,
		Returns:              returnStats,
		AnnualizedVolatility: series.AnnualizedVolatility(returns),
	}

	// The significant-lag band follows the configured confidence level
	// (1.96/sqrt(n) at the 0.95 default).
	band := numerics.NormalQuantile((1+cfg.ConfidenceLevel)/2) / math.Sqrt(float64(len(returns)))

	// Diagnostics that need longer series degrade gracefully: the report
	// carries whatever could be computed.
	if acf, err := stats.Autocorrelation(returns, cfg.MaxLags, band); err != nil {
		log.Warn().Err(err).Msg("Autocorrelation skipped")
	} else {
		report.Autocorrelation = acf
	}

	if st, err := stats.TestStationarity(returns, cfg.RollingWindow); err != nil {
		log.Warn().Err(err).Msg("Stationarity tests skipped")
	} else {
		report.Stationarity = st
	}

	if dec, err := stats.Decompose(closes, cfg.SeasonalPeriod, stats.Additive); err != nil {
		log.Warn().Err(err).Msg("Seasonal decomposition skipped")
	} else {
		report.Decomposition = dec
	}

	if jb, err := stats.JarqueBera(returns, cfg.SignificanceLevel); err != nil {
		log.Warn().Err(err).Msg("Normality test skipped")
	} else {
		report.Normality = jb
	}

	if tt, err := stats.TTest(returns, 0, stats.TwoSided, cfg.SignificanceLevel); err != nil {
		log.Warn().Err(err).Msg("Mean-return test skipped")
	} else {
		report.MeanReturn = tt
	}

	// Power analysis treats the observed mean return as the effect to detect.
	if pa, err := stats.PowerAnalysis(returnStats.Mean, returnStats.StdDev,
		len(returns), cfg.SignificanceLevel, targetPower); err != nil {
		log.Warn().Err(err).Msg("Power analysis skipped")
	} else {
		report.Power = pa
	}

	return report, nil
}

// fetchPrices pulls history from the provider, consulting the optional
// Postgres cache first when it is enabled.
func fetchPrices(ctx context.Context, cfg *models.Config) ([]models.PricePoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -cfg.Days)

	var cache *database.DB
	if cfg.EnablePriceCache {
		db, err := database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Price cache unavailable, fetching directly")
		} else {
			cache = db
			defer cache.Close()

			cached, err := cache.LoadPrices(ctx, cfg.Symbol, start, end)
			if err != nil {
				log.Warn().Err(err).Msg("Cache lookup failed")
			} else if len(cached) > 0 {
				log.Info().Int("count", len(cached)).Msg("Using cached price history")
				return cached, nil
			}
		}
	}

	client := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: 5,
	})

	prices, err := client.FetchPrices(ctx, cfg.Symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", cfg.Symbol, err)
	}

	if cache != nil {
		if err := cache.SavePrices(ctx, cfg.Symbol, prices); err != nil {
			log.Warn().Err(err).Msg("Failed to cache price history")
		}
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
