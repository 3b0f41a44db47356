package series

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tsquant/engine/models"
)

func pricePoints(closes []float64) []models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{Timestamp: base.AddDate(0, 0, i), Close: c}
	}
	return points
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		prices  []models.PricePoint
		wantErr error
	}{
		{"valid series", pricePoints([]float64{100, 101, 102}), nil},
		{"empty series", nil, models.ErrInsufficientData},
		{"negative price", pricePoints([]float64{100, -5, 102}), models.ErrInvalidParameter},
		{
			"duplicate timestamp",
			func() []models.PricePoint {
				p := pricePoints([]float64{100, 101})
				p[1].Timestamp = p[0].Timestamp
				return p
			}(),
			models.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.prices)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSimpleReturns(t *testing.T) {
	returns, err := SimpleReturns([]float64{100, 110, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.10) > 1e-12 {
		t.Errorf("returns[0] = %v, want 0.10", returns[0])
	}
	if math.Abs(returns[1]-(-0.10)) > 1e-12 {
		t.Errorf("returns[1] = %v, want -0.10", returns[1])
	}
}

func TestSimpleReturnsInsufficientData(t *testing.T) {
	if _, err := SimpleReturns([]float64{100}); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestLogReturnsMatchSimpleForSmallMoves(t *testing.T) {
	prices := []float64{100, 100.1, 100.2, 100.05}
	simple, err := SimpleReturns(prices)
	if err != nil {
		t.Fatal(err)
	}
	logs, err := LogReturns(prices)
	if err != nil {
		t.Fatal(err)
	}
	for i := range simple {
		if math.Abs(simple[i]-logs[i]) > 1e-5 {
			t.Errorf("log and simple returns diverge too much at %d: %v vs %v", i, logs[i], simple[i])
		}
	}
}

func TestDiff(t *testing.T) {
	got := Diff([]float64{1, 3, 6, 10})
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diff[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	// Constant returns have zero volatility.
	if v := AnnualizedVolatility([]float64{0.01, 0.01, 0.01, 0.01}); v != 0 {
		t.Errorf("constant returns should have zero volatility, got %v", v)
	}
	// Alternating returns: stddev of {0.01,-0.01,...} times sqrt(252).
	returns := []float64{0.01, -0.01, 0.01, -0.01, 0.01, -0.01}
	got := AnnualizedVolatility(returns)
	if got <= 0 {
		t.Fatalf("expected positive volatility, got %v", got)
	}
	if got > 1 {
		t.Errorf("volatility implausibly large: %v", got)
	}
}
