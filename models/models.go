package models

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	TwelveAPIKey      string  `env:"TWELVE_API_KEY" envDefault:"-"`
	Symbol            string  `env:"SYMBOL" envDefault:"EUR/USD"`
	Days              int     `env:"DAYS" envDefault:"365"`
	MaxLags           int     `env:"MAX_LAGS" envDefault:"20"`
	SeasonalPeriod    int     `env:"SEASONAL_PERIOD" envDefault:"7"`
	Horizon           int     `env:"HORIZON" envDefault:"5"`
	TrainingDays      int     `env:"TRAINING_DAYS" envDefault:"60"`
	RollingWindow     int     `env:"ROLLING_WINDOW" envDefault:"30"`
	ConfidenceLevel   float64 `env:"CONFIDENCE_LEVEL" envDefault:"0.95"`
	SignificanceLevel float64 `env:"SIGNIFICANCE_LEVEL" envDefault:"0.05"`
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout    int     `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	EnableBacktest    bool    `env:"ENABLE_BACKTEST" envDefault:"true"`
	EnablePriceCache  bool    `env:"ENABLE_PRICE_CACHE" envDefault:"false"`
	DBHost            string  `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string  `env:"DB_PORT" envDefault:"5432"`
	DBUser            string  `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string  `env:"DB_PASSWORD" envDefault:"-"`
	DBName            string  `env:"DB_NAME" envDefault:"prices"`
	DBSSLMode         string  `env:"DB_SSLMODE" envDefault:"disable"`
}

// PricePoint represents a single close-price observation
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Close     float64   `json:"close"`
}

// DescriptiveStats summarizes the distribution of a numeric sequence
type DescriptiveStats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"stdDev"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
}

// LjungBoxTest is the portmanteau test for joint autocorrelation significance
type LjungBoxTest struct {
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"pValue"`
	DegreesOfFreedom int     `json:"degreesOfFreedom"`
}

// AutocorrelationResult holds ACF/PACF values for lags 0..maxLag.
// Invariant: len(ACF) == len(PACF) == maxLag+1 and ACF[0] == 1.
type AutocorrelationResult struct {
	ACF             []float64    `json:"acf"`
	PACF            []float64    `json:"pacf"`
	SignificantLags []int        `json:"significantLags"`
	ConfidenceBound float64      `json:"confidenceBound"`
	LjungBox        LjungBoxTest `json:"ljungBox"`
}

// StationarityTest is a single unit-root/stationarity test outcome
type StationarityTest struct {
	TestStatistic  float64            `json:"testStatistic"`
	PValue         float64            `json:"pValue"`
	CriticalValues map[string]float64 `json:"criticalValues"`
	IsStationary   bool               `json:"isStationary"`
}

// StationarityConclusion combines the ADF and KPSS verdicts
type StationarityConclusion struct {
	OverallAssessment string `json:"overallAssessment"` // Stationary, Non-stationary, Inconclusive
	Recommendation    string `json:"recommendation"`
}

// RollingStability reports sliding-window mean/variance diagnostics
type RollingStability struct {
	Window         int       `json:"window"`
	Means          []float64 `json:"means"`
	Variances      []float64 `json:"variances"`
	StabilityScore float64   `json:"stabilityScore"`
}

// StationarityResult is the joint output of both tests plus rolling diagnostics
type StationarityResult struct {
	AugmentedDickeyFuller StationarityTest       `json:"augmentedDickeyFuller"`
	KPSS                  StationarityTest       `json:"kpss"`
	Conclusion            StationarityConclusion `json:"conclusion"`
	Rolling               RollingStability       `json:"rolling"`
}

// DecompositionResult holds the classical seasonal decomposition components.
// For additive mode trend[i]+seasonal[i]+residual[i] reconstructs the input;
// multiplicative mode reconstructs under multiplication.
type DecompositionResult struct {
	Trend            []float64 `json:"trend"`
	Seasonal         []float64 `json:"seasonal"`
	Residual         []float64 `json:"residual"`
	Period           int       `json:"period"`
	Mode             string    `json:"mode"` // additive or multiplicative
	SeasonalStrength float64   `json:"seasonalStrength"`
	TrendStrength    float64   `json:"trendStrength"`
}

// ModelFit holds in-sample fit metrics shared by every forecaster
type ModelFit struct {
	AIC  float64 `json:"aic"`
	BIC  float64 `json:"bic"`
	RMSE float64 `json:"rmse"`
}

// ModelInfo identifies a fitted forecaster and its estimated parameters
type ModelInfo struct {
	Name       string             `json:"name"`
	Parameters map[string]float64 `json:"parameters"`
	DOF        int                `json:"degreesOfFreedom"`
}

// ForecastOutput is the common result contract of the forecaster family
type ForecastOutput struct {
	Predictions []float64 `json:"predictions"`
	ModelInfo   ModelInfo `json:"modelInfo"`
	ModelFit    ModelFit  `json:"modelFit"`
}

// ConfidenceInterval bounds a single forecast step
type ConfidenceInterval struct {
	Point   float64 `json:"point"`
	Lower95 float64 `json:"lower95"`
	Upper95 float64 `json:"upper95"`
	Lower80 float64 `json:"lower80"`
	Upper80 float64 `json:"upper80"`
}

// ForecastQuality grades how trustworthy a forecast is
type ForecastQuality struct {
	ModelFit      ModelFit `json:"modelFit"`
	ForecastError float64  `json:"forecastError"`
	Reliability   string   `json:"reliability"` // Very High .. Very Low
}

// ForecastReport is the full consumer-facing forecast payload
type ForecastReport struct {
	Symbol              string               `json:"symbol"`
	Predictions         []float64            `json:"predictions"`
	ConfidenceIntervals []ConfidenceInterval `json:"confidenceIntervals"`
	ModelInfo           ModelInfo            `json:"modelInfo"`
	Quality             ForecastQuality      `json:"quality"`
}

// WindowResult records one walk-forward validation window
type WindowResult struct {
	TrainingEnd int     `json:"trainingEnd"`
	Accuracy    float64 `json:"accuracy"` // per-window RMSE
}

// AccuracyMetrics aggregates forecast accuracy over all backtest windows
type AccuracyMetrics struct {
	MAE                 float64 `json:"mae"`
	RMSE                float64 `json:"rmse"`
	MAPE                float64 `json:"mape"`
	MSE                 float64 `json:"mse"`
	R2                  float64 `json:"r2"`
	DirectionalAccuracy float64 `json:"directionalAccuracy"` // percent, 0..100
	Bias                float64 `json:"bias"`
	Consistency         float64 `json:"consistency"`
}

// BacktestResult is produced once per (symbol, model, parameter) combination
type BacktestResult struct {
	Model          string          `json:"model"`
	Windows        []WindowResult  `json:"windows"`
	TotalWindows   int             `json:"totalWindows"`
	SkippedWindows int             `json:"skippedWindows"`
	Metrics        AccuracyMetrics `json:"metrics"`
	CompositeScore float64         `json:"compositeScore"`
	Grade          string          `json:"grade"`
}

// ModelComparison ranks all candidate forecasters over the same split
type ModelComparison struct {
	Results   []*BacktestResult `json:"results"` // sorted by composite score, best first
	BestModel string            `json:"bestModel"`
}

// LocationTestResult is the outcome of a one-sample t/z test
type LocationTestResult struct {
	Test        string  `json:"test"` // t-test or z-test
	Statistic   float64 `json:"statistic"`
	PValue      float64 `json:"pValue"`
	NullMean    float64 `json:"nullMean"`
	Alternative string  `json:"alternative"` // two-sided, greater, less
	RejectNull  bool    `json:"rejectNull"`
}

// JarqueBeraResult is the outcome of the Jarque-Bera normality test
type JarqueBeraResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"pValue"`
	Skewness  float64 `json:"skewness"`
	Kurtosis  float64 `json:"kurtosis"`
	IsNormal  bool    `json:"isNormal"`
}

// PowerAnalysisResult holds sample-size and power calculations
type PowerAnalysisResult struct {
	EffectSize         float64 `json:"effectSize"`
	SignificanceLevel  float64 `json:"significanceLevel"`
	TargetPower        float64 `json:"targetPower"`
	RequiredSampleSize int     `json:"requiredSampleSize"`
	AchievedPower      float64 `json:"achievedPower"`
}
