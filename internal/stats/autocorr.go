package stats

import (
	"fmt"
	"math"

	"github.com/tsquant/engine/internal/numerics"
	"github.com/tsquant/engine/models"
)

// ACF calculates the sample autocorrelation function for lags 0..maxLag.
// The mean and variance are computed once; acf[0] is 1 by definition.
func ACF(values []float64, maxLag int) ([]float64, error) {
	n := len(values)
	if maxLag < 1 {
		return nil, fmt.Errorf("%w: maxLag must be positive, got %d", models.ErrInvalidParameter, maxLag)
	}
	if n <= maxLag {
		return nil, fmt.Errorf("%w: need more than %d observations for maxLag=%d, got %d",
			models.ErrInsufficientData, maxLag, maxLag, n)
	}

	mean := Mean(values)
	denom := 0.0
	for _, v := range values {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return nil, fmt.Errorf("%w: series has zero variance", models.ErrInvalidParameter)
	}

	acf := make([]float64, maxLag+1)
	acf[0] = 1.0
	for k := 1; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / denom
	}
	return acf, nil
}

// PACF calculates the partial autocorrelation function via the
// Durbin-Levinson recursion; no matrix inversion is involved.
func PACF(values []float64, maxLag int) ([]float64, error) {
	acf, err := ACF(values, maxLag)
	if err != nil {
		return nil, err
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1.0

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}

		if den == 0 {
			pacf[k] = 0
			continue
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}

	return pacf, nil
}

// AR1Coefficient estimates the lag-1 autoregressive coefficient of the
// series, which for a demeaned AR(1) process equals the lag-1
// autocorrelation. Used by the stationarity tester and the difference-AR
// forecaster.
func AR1Coefficient(values []float64) (float64, error) {
	acf, err := ACF(values, 1)
	if err != nil {
		return 0, err
	}
	return acf[1], nil
}

// Autocorrelation runs the full autocorrelation analysis: ACF, PACF,
// significant-lag detection against the confidence band and the Ljung-Box
// portmanteau test. threshold overrides the default 1.96/sqrt(n) band when
// positive.
func Autocorrelation(values []float64, maxLag int, threshold float64) (*models.AutocorrelationResult, error) {
	acf, err := ACF(values, maxLag)
	if err != nil {
		return nil, err
	}
	pacf, err := PACF(values, maxLag)
	if err != nil {
		return nil, err
	}

	n := len(values)
	bound := threshold
	if bound <= 0 {
		bound = 1.96 / math.Sqrt(float64(n))
	}

	var significant []int
	for k := 1; k <= maxLag; k++ {
		if math.Abs(acf[k]) > bound {
			significant = append(significant, k)
		}
	}

	lb := ljungBox(acf, n, maxLag)

	return &models.AutocorrelationResult{
		ACF:             acf,
		PACF:            pacf,
		SignificantLags: significant,
		ConfidenceBound: bound,
		LjungBox:        lb,
	}, nil
}

// ljungBox computes Q = n(n+2) * sum(acf[k]^2/(n-k)) with a chi-square
// upper-tail p-value on m degrees of freedom.
func ljungBox(acf []float64, n, m int) models.LjungBoxTest {
	q := 0.0
	for k := 1; k <= m; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	return models.LjungBoxTest{
		Statistic:        q,
		PValue:           numerics.ChiSquareSF(q, m),
		DegreesOfFreedom: m,
	}
}
