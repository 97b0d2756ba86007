package sample

import (
	"iter"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/estimate"
)

// Summary holds the single-pass statistics of one numeric variable: count,
// extremes, mean and the central moments M2, M3 and M4 in sum-of-deviations form.
//
// A Summary is built by Analyze or AnalyzeSlice and is read-only afterwards.
// Queries that need more samples than were seen panic with an error wrapping
// errs.ErrInsufficientSamples.
type Summary[T constraints.Float] struct {
	count int
	min   T
	max   T
	mean  T
	m2    T
	m3    T
	m4    T
}

// Analyze folds seq into a Summary, consuming it exactly once.
//
// Parameters:
//   - seq: Sequence of observations
//
// Returns:
//   - Summary[T]: Statistics of the observations
//
// Example:
//
//	s := sample.Analyze(slices.Values([]float64{1, 2, 3, 4, 5}))
//	fmt.Println(s.Mean(), s.Variance()) // 3 2.5
func Analyze[T constraints.Float](seq iter.Seq[T]) Summary[T] {
	var s Summary[T]
	for x := range seq {
		s.add(x)
	}

	return s
}

// AnalyzeSlice is Analyze over the elements of values.
func AnalyzeSlice[T constraints.Float](values []T) Summary[T] {
	var s Summary[T]
	for _, x := range values {
		s.add(x)
	}

	return s
}

// add folds one observation into the running moments.
//
// M4 must be updated before M3, and M3 before M2: each higher moment reads the
// lower moments as they were before this observation.
func (s *Summary[T]) add(x T) {
	if s.count == 0 {
		s.min, s.max = x, x
	} else {
		s.min = min(s.min, x)
		s.max = max(s.max, x)
	}

	s.count++
	n := T(s.count)
	delta := x - s.mean
	rDelta := delta / n
	rDelta2 := rDelta * rDelta
	term := delta * rDelta * (n - 1)

	s.mean += rDelta
	s.m4 += term*rDelta2*(n*n-3*n+3) + 6*rDelta2*s.m2 - 4*rDelta*s.m3
	s.m3 += term*rDelta*(n-2) - 3*rDelta*s.m2
	s.m2 += term
}

func (s *Summary[T]) require(minCount int, stat string) {
	if s.count < minCount {
		errs.Violation(errs.ErrInsufficientSamples, "%s requires at least %d samples, got %d", stat, minCount, s.count)
	}
}

// Count returns the number of observations.
func (s Summary[T]) Count() int {
	return s.count
}

// Min returns the smallest observation, or +Inf for an empty summary.
func (s Summary[T]) Min() T {
	if s.count == 0 {
		return T(math.Inf(1))
	}

	return s.min
}

// Max returns the largest observation, or -Inf for an empty summary.
func (s Summary[T]) Max() T {
	if s.count == 0 {
		return T(math.Inf(-1))
	}

	return s.max
}

// Mean returns the arithmetic mean. Requires at least 1 observation.
func (s Summary[T]) Mean() T {
	s.require(1, "mean")
	return s.mean
}

// Variance returns the Bessel-corrected sample variance M2/(n-1).
// Requires at least 2 observations.
func (s Summary[T]) Variance() T {
	s.require(2, "variance")
	return s.m2 / T(s.count-1)
}

// StdDev returns the sample standard deviation.
func (s Summary[T]) StdDev() T {
	return T(math.Sqrt(float64(s.Variance())))
}

// Skewness returns the adjusted Fisher-Pearson standardized moment coefficient
//
//	G1 = n / ((n-1)(n-2)) * Σ((x - mean)/s)³
//
// Requires at least 3 observations.
func (s Summary[T]) Skewness() T {
	s.require(3, "skewness")
	n := float64(s.count)
	g := math.Sqrt(n-1) * float64(s.m3) / math.Pow(float64(s.m2), 1.5)

	return T(g * n / (n - 2))
}

// Kurtosis returns the bias-corrected sample excess kurtosis G2 plus 3, so a
// normal population scores about 3:
//
//	G2 = (n²-1) / ((n-2)(n-3)) * (n·M4/M2² - 3 + 6/(n+1))
//
// Requires at least 4 observations.
func (s Summary[T]) Kurtosis() T {
	s.require(4, "kurtosis")
	n := float64(s.count)
	m2 := float64(s.m2)
	g2 := (n*n - 1) / ((n - 2) * (n - 3)) * (n*float64(s.m4)/(m2*m2) - 3 + 6/(n+1))

	return T(g2 + 3)
}

// MeanVariance returns the variance of the mean, Variance()/n.
func (s Summary[T]) MeanVariance() T {
	return s.Variance() / T(s.count)
}

// MeanStdErr returns the standard error of the mean.
func (s Summary[T]) MeanStdErr() T {
	return T(math.Sqrt(float64(s.MeanVariance())))
}

// MeanEstimate returns the mean together with its variance.
// Requires at least 2 observations.
func (s Summary[T]) MeanEstimate() estimate.Estimate[T] {
	return estimate.New(s.Mean(), s.MeanVariance())
}
