package stats

import (
	"fmt"
	"math"

	"github.com/tsquant/engine/models"
)

// Fixed asymptotic critical values (constant-only regression). These are
// deliberately not sample-size dependent: the approximation matches the
// behavior existing consumers depend on, and callers must not assume
// publication-grade precision from either test.
var (
	adfCriticalValues = map[string]float64{
		"1%":  -3.43,
		"5%":  -2.86,
		"10%": -2.57,
	}
	kpssCriticalValues = map[string]float64{
		"1%":  0.739,
		"5%":  0.463,
		"10%": 0.347,
	}
)

// DefaultRollingWindow is the window used for rolling stability diagnostics
// when the caller does not supply one.
const DefaultRollingWindow = 30

// ADF performs an approximate Augmented Dickey-Fuller test. The series is
// first-differenced, an AR(1) slope is estimated on the differences through
// the autocorrelation engine, and the t-like statistic slope*sqrt(n) is
// compared against fixed asymptotic critical values.
func ADF(values []float64) (*models.StationarityTest, error) {
	if len(values) < 10 {
		return nil, fmt.Errorf("%w: ADF needs at least 10 observations, got %d", models.ErrInsufficientData, len(values))
	}

	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}

	slope, err := AR1Coefficient(diffs)
	if err != nil {
		return nil, err
	}

	n := float64(len(diffs))
	stat := slope * math.Sqrt(n)
	pValue := adfPValue(stat)

	return &models.StationarityTest{
		TestStatistic:  stat,
		PValue:         pValue,
		CriticalValues: copyCriticals(adfCriticalValues),
		IsStationary:   pValue < 0.05,
	}, nil
}

// KPSS performs an approximate KPSS test: the series is demeaned, deviations
// are cumulatively summed, and the statistic sum(S^2)/(n^2 * var) is compared
// against fixed asymptotic critical values. The null hypothesis is
// stationarity, opposite to ADF.
func KPSS(values []float64) (*models.StationarityTest, error) {
	n := len(values)
	if n < 10 {
		return nil, fmt.Errorf("%w: KPSS needs at least 10 observations, got %d", models.ErrInsufficientData, n)
	}

	variance := Variance(values)
	if variance == 0 {
		return nil, fmt.Errorf("%w: series has zero variance", models.ErrInvalidParameter)
	}

	mean := Mean(values)
	cum := 0.0
	sumSq := 0.0
	for _, v := range values {
		cum += v - mean
		sumSq += cum * cum
	}

	stat := sumSq / (float64(n) * float64(n) * variance)
	pValue := kpssPValue(stat)

	return &models.StationarityTest{
		TestStatistic:  stat,
		PValue:         pValue,
		CriticalValues: copyCriticals(kpssCriticalValues),
		IsStationary:   pValue >= 0.05,
	}, nil
}

// TestStationarity runs ADF and KPSS and combines them into a joint verdict,
// with rolling mean/variance stability diagnostics over the given window
// (DefaultRollingWindow when window <= 0).
func TestStationarity(values []float64, window int) (*models.StationarityResult, error) {
	adf, err := ADF(values)
	if err != nil {
		return nil, err
	}
	kpss, err := KPSS(values)
	if err != nil {
		return nil, err
	}

	if window <= 0 {
		window = DefaultRollingWindow
	}
	rolling := RollingDiagnostics(values, window)

	return &models.StationarityResult{
		AugmentedDickeyFuller: *adf,
		KPSS:                  *kpss,
		Conclusion:            combineVerdicts(adf, kpss),
		Rolling:               rolling,
	}, nil
}

// combineVerdicts: Stationary only when ADF rejects the unit-root null AND
// KPSS fails to reject stationarity; Non-stationary when both point at a
// unit root; Inconclusive when the tests disagree.
func combineVerdicts(adf, kpss *models.StationarityTest) models.StationarityConclusion {
	switch {
	case adf.IsStationary && kpss.IsStationary:
		return models.StationarityConclusion{
			OverallAssessment: "Stationary",
			Recommendation:    "Series is suitable for models that assume constant mean and variance.",
		}
	case !adf.IsStationary && !kpss.IsStationary:
		return models.StationarityConclusion{
			OverallAssessment: "Non-stationary",
			Recommendation:    "Difference the series or model the trend before fitting stationary models.",
		}
	default:
		return models.StationarityConclusion{
			OverallAssessment: "Inconclusive",
			Recommendation:    "ADF and KPSS disagree; inspect rolling diagnostics and consider a longer sample.",
		}
	}
}

// RollingDiagnostics computes mean and variance over a sliding window and a
// stability score 1/(1+stddev(rolling means)). A score near 1 means the
// local mean barely moves.
func RollingDiagnostics(values []float64, window int) models.RollingStability {
	n := len(values)
	if window < 2 || n < window {
		return models.RollingStability{Window: window, StabilityScore: 0}
	}

	count := n - window + 1
	means := make([]float64, count)
	variances := make([]float64, count)
	for i := 0; i < count; i++ {
		chunk := values[i : i+window]
		means[i] = Mean(chunk)
		variances[i] = Variance(chunk)
	}

	return models.RollingStability{
		Window:         window,
		Means:          means,
		Variances:      variances,
		StabilityScore: 1 / (1 + StdDev(means)),
	}
}

// adfPValue maps the t-like statistic onto an approximate p-value by
// stepwise interpolation between the fixed critical values.
func adfPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}

// kpssPValue maps the KPSS statistic onto an approximate p-value.
func kpssPValue(stat float64) float64 {
	switch {
	case stat > 0.739:
		return 0.01
	case stat > 0.463:
		return 0.05
	case stat > 0.347:
		return 0.10
	default:
		return math.Min(0.10+(0.347-stat)*0.5, 0.99)
	}
}

func copyCriticals(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
