package stats

import (
	"fmt"
	"math"

	"github.com/tsquant/engine/internal/numerics"
	"github.com/tsquant/engine/models"
)

// Alternative hypotheses for the one-sample location tests.
const (
	TwoSided = "two-sided"
	Greater  = "greater"
	Less     = "less"
)

// TTest runs a one-sample t-test of the sample mean against nullMean. The
// p-value uses the normal CDF, which is a close approximation for the sample
// sizes this engine is used with.
func TTest(values []float64, nullMean float64, alternative string, alpha float64) (*models.LocationTestResult, error) {
	return locationTest("t-test", values, nullMean, alternative, alpha)
}

// ZTest runs a one-sample z-test of the sample mean against nullMean.
func ZTest(values []float64, nullMean float64, alternative string, alpha float64) (*models.LocationTestResult, error) {
	return locationTest("z-test", values, nullMean, alternative, alpha)
}

func locationTest(test string, values []float64, nullMean float64, alternative string, alpha float64) (*models.LocationTestResult, error) {
	n := len(values)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", models.ErrInsufficientData, n)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: significance level %v outside (0,1)", models.ErrInvalidParameter, alpha)
	}
	switch alternative {
	case TwoSided, Greater, Less:
	default:
		return nil, fmt.Errorf("%w: unknown alternative %q", models.ErrInvalidParameter, alternative)
	}

	std := StdDev(values)
	if std == 0 {
		return nil, fmt.Errorf("%w: series has zero variance", models.ErrInvalidParameter)
	}

	stat := (Mean(values) - nullMean) / (std / math.Sqrt(float64(n)))

	var pValue float64
	switch alternative {
	case Greater:
		pValue = 1 - numerics.NormalCDF(stat)
	case Less:
		pValue = numerics.NormalCDF(stat)
	default:
		pValue = 2 * (1 - numerics.NormalCDF(math.Abs(stat)))
	}

	return &models.LocationTestResult{
		Test:        test,
		Statistic:   stat,
		PValue:      pValue,
		NullMean:    nullMean,
		Alternative: alternative,
		RejectNull:  pValue < alpha,
	}, nil
}

// JarqueBera tests for normality using sample skewness and kurtosis:
// JB = (n/6)*(skew^2 + (kurt-3)^2/4) against a chi-square(2) upper tail.
func JarqueBera(values []float64, alpha float64) (*models.JarqueBeraResult, error) {
	n := len(values)
	if n < 4 {
		return nil, fmt.Errorf("%w: Jarque-Bera needs at least 4 observations, got %d", models.ErrInsufficientData, n)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: significance level %v outside (0,1)", models.ErrInvalidParameter, alpha)
	}

	desc, err := Describe(values)
	if err != nil {
		return nil, err
	}

	skew := desc.Skewness
	kurt := desc.Kurtosis
	jb := float64(n) / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)
	pValue := numerics.ChiSquareSF(jb, 2)

	return &models.JarqueBeraResult{
		Statistic: jb,
		PValue:    pValue,
		Skewness:  skew,
		Kurtosis:  kurt,
		IsNormal:  pValue >= alpha,
	}, nil
}

// RequiredSampleSize returns the sample size needed to detect effectSize at
// the given two-sided significance level with the target power, using the
// closed form ((z_{a/2} + z_b) * sigma / effect)^2.
func RequiredSampleSize(effectSize, stdDev, alpha, power float64) (int, error) {
	if effectSize == 0 {
		return 0, fmt.Errorf("%w: effect size must be non-zero", models.ErrInvalidParameter)
	}
	if stdDev <= 0 {
		return 0, fmt.Errorf("%w: standard deviation must be positive", models.ErrInvalidParameter)
	}
	if alpha <= 0 || alpha >= 1 || power <= 0 || power >= 1 {
		return 0, fmt.Errorf("%w: alpha and power must be in (0,1)", models.ErrInvalidParameter)
	}

	zAlpha := numerics.NormalQuantile(1 - alpha/2)
	zBeta := numerics.NormalQuantile(power)
	n := math.Pow((zAlpha+zBeta)*stdDev/math.Abs(effectSize), 2)
	return int(math.Ceil(n)), nil
}

// AchievedPower returns the power of the current sample for the given effect
// size via the non-centrality-parameter approximation.
func AchievedPower(effectSize, stdDev float64, n int, alpha float64) (float64, error) {
	if stdDev <= 0 {
		return 0, fmt.Errorf("%w: standard deviation must be positive", models.ErrInvalidParameter)
	}
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 observations, got %d", models.ErrInsufficientData, n)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("%w: significance level %v outside (0,1)", models.ErrInvalidParameter, alpha)
	}

	ncp := math.Abs(effectSize) / stdDev * math.Sqrt(float64(n))
	zAlpha := numerics.NormalQuantile(1 - alpha/2)
	return 1 - numerics.NormalCDF(zAlpha-ncp), nil
}

// PowerAnalysis bundles the sample-size and achieved-power calculations.
func PowerAnalysis(effectSize, stdDev float64, n int, alpha, targetPower float64) (*models.PowerAnalysisResult, error) {
	required, err := RequiredSampleSize(effectSize, stdDev, alpha, targetPower)
	if err != nil {
		return nil, err
	}
	achieved, err := AchievedPower(effectSize, stdDev, n, alpha)
	if err != nil {
		return nil, err
	}
	return &models.PowerAnalysisResult{
		EffectSize:         effectSize,
		SignificanceLevel:  alpha,
		TargetPower:        targetPower,
		RequiredSampleSize: required,
		AchievedPower:      achieved,
	}, nil
}
