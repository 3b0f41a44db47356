package models

import (
	"context"
	"time"
)

// PriceClient fetches historical close prices from an upstream provider.
// Implementations may return fewer points than the range covers; callers
// treat short series as a data-insufficiency condition, not a transport error.
type PriceClient interface {
	FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]PricePoint, error)
}

// Forecaster is the common contract of the forecast model family.
// Forecast must be deterministic: identical history and horizon always
// produce identical predictions.
type Forecaster interface {
	Name() string
	Forecast(history []float64, horizon int) (*ForecastOutput, error)
}
