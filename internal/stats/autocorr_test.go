package stats

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/tsquant/engine/models"
)

func ar1Series(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + rng.NormFloat64()
	}
	return values
}

func TestACFBounds(t *testing.T) {
	series := ar1Series(300, 0.8, 1)
	acf, err := ACF(series, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acf[0] != 1.0 {
		t.Errorf("acf[0] = %v, want exactly 1.0", acf[0])
	}
	for k, v := range acf {
		if math.Abs(v) > 1.0+1e-9 {
			t.Errorf("|acf[%d]| = %v exceeds 1", k, v)
		}
	}
	if len(acf) != 26 {
		t.Errorf("len(acf) = %d, want 26", len(acf))
	}
}

func TestACFDecaysForAR1(t *testing.T) {
	series := ar1Series(2000, 0.7, 2)
	acf, err := ACF(series, 5)
	if err != nil {
		t.Fatal(err)
	}
	// For AR(1) with phi=0.7, acf[k] ~ 0.7^k.
	if acf[1] < 0.5 || acf[1] > 0.9 {
		t.Errorf("acf[1] = %v, expected near 0.7", acf[1])
	}
	if math.Abs(acf[1]) < math.Abs(acf[3]) {
		t.Errorf("acf should decay: acf[1]=%v acf[3]=%v", acf[1], acf[3])
	}
}

func TestACFInsufficientData(t *testing.T) {
	if _, err := ACF([]float64{1, 2, 3}, 5); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := ACF(ar1Series(50, 0.5, 3), 0); !errors.Is(err, models.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for maxLag=0, got %v", err)
	}
}

func TestPACFMatchesACFAtLagOne(t *testing.T) {
	series := ar1Series(500, 0.6, 4)
	acf, err := ACF(series, 10)
	if err != nil {
		t.Fatal(err)
	}
	pacf, err := PACF(series, 10)
	if err != nil {
		t.Fatal(err)
	}

	if pacf[0] != 1.0 {
		t.Errorf("pacf[0] = %v, want 1.0", pacf[0])
	}
	if math.Abs(pacf[1]-acf[1]) > 1e-12 {
		t.Errorf("pacf[1] = %v should equal acf[1] = %v", pacf[1], acf[1])
	}
	if len(pacf) != len(acf) {
		t.Errorf("len(pacf)=%d != len(acf)=%d", len(pacf), len(acf))
	}
}

func TestPACFCutsOffForAR1(t *testing.T) {
	// An AR(1) process has PACF near zero beyond lag 1.
	series := ar1Series(2000, 0.7, 5)
	pacf, err := PACF(series, 8)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pacf[1]) < 0.5 {
		t.Errorf("pacf[1] = %v, expected strong lag-1 coefficient", pacf[1])
	}
	bound := 3 * 1.96 / math.Sqrt(2000)
	for k := 3; k <= 8; k++ {
		if math.Abs(pacf[k]) > bound {
			t.Errorf("pacf[%d] = %v, expected near zero beyond lag 1", k, pacf[k])
		}
	}
}

func TestAutocorrelationSignificance(t *testing.T) {
	// Strongly autocorrelated series: lag 1 must be flagged and Ljung-Box
	// must reject the no-autocorrelation null.
	series := ar1Series(400, 0.8, 6)
	result, err := Autocorrelation(series, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, lag := range result.SignificantLags {
		if lag == 1 {
			found = true
		}
	}
	if !found {
		t.Error("lag 1 should be significant for AR(1) with phi=0.8")
	}
	if result.LjungBox.PValue > 0.01 {
		t.Errorf("Ljung-Box p-value = %v, expected strong rejection", result.LjungBox.PValue)
	}
	if result.LjungBox.DegreesOfFreedom != 10 {
		t.Errorf("dof = %d, want 10", result.LjungBox.DegreesOfFreedom)
	}
	expectedBound := 1.96 / math.Sqrt(400)
	if math.Abs(result.ConfidenceBound-expectedBound) > 1e-12 {
		t.Errorf("confidence bound = %v, want %v", result.ConfidenceBound, expectedBound)
	}
}

func TestAutocorrelationWhiteNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	noise := make([]float64, 500)
	for i := range noise {
		noise[i] = rng.NormFloat64()
	}

	result, err := Autocorrelation(noise, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.LjungBox.PValue < 0.05 {
		t.Errorf("Ljung-Box rejected no-autocorrelation for white noise: p=%v", result.LjungBox.PValue)
	}
}

func TestAutocorrelationCustomThreshold(t *testing.T) {
	series := ar1Series(300, 0.5, 8)
	result, err := Autocorrelation(series, 5, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.SignificantLags) != 0 {
		t.Errorf("no lag can exceed a 0.99 threshold, got %v", result.SignificantLags)
	}
}

func TestAR1Coefficient(t *testing.T) {
	series := ar1Series(3000, 0.5, 9)
	phi, err := AR1Coefficient(series)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(phi-0.5) > 0.1 {
		t.Errorf("AR(1) estimate = %v, want near 0.5", phi)
	}
}
