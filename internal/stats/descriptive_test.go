package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/tsquant/engine/models"
)

func TestDescribe(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	desc, err := Describe(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if desc.Count != 8 {
		t.Errorf("count = %d, want 8", desc.Count)
	}
	if math.Abs(desc.Mean-5.0) > 1e-12 {
		t.Errorf("mean = %v, want 5", desc.Mean)
	}
	// Sample variance of this classic set is 32/7.
	if math.Abs(desc.Variance-32.0/7.0) > 1e-12 {
		t.Errorf("variance = %v, want %v", desc.Variance, 32.0/7.0)
	}
	if desc.Min != 2 || desc.Max != 9 || desc.Range != 7 {
		t.Errorf("min/max/range = %v/%v/%v, want 2/9/7", desc.Min, desc.Max, desc.Range)
	}
}

func TestDescribeSymmetricSkew(t *testing.T) {
	symmetric := []float64{-3, -2, -1, 0, 1, 2, 3}
	desc, err := Describe(symmetric)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(desc.Skewness) > 1e-12 {
		t.Errorf("symmetric data skewness = %v, want 0", desc.Skewness)
	}
}

func TestDescribeInsufficientData(t *testing.T) {
	if _, err := Describe([]float64{1}); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestVarianceConstantSeries(t *testing.T) {
	if v := Variance([]float64{5, 5, 5, 5}); v != 0 {
		t.Errorf("variance of constant series = %v, want 0", v)
	}
}
