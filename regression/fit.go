package regression

import (
	"iter"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/estimate"
	"github.com/arloliu/mensura/internal/compensated"
	"github.com/arloliu/mensura/internal/options"
	"github.com/arloliu/mensura/sample"
)

// Result is an ordinary least-squares fit y = intercept + slope·x together
// with the uncertainties of its coefficients.
//
// A Result is an immutable value; it owns a copy of the paired summary of the
// data it was fitted on.
type Result[T constraints.Float] struct {
	slope             T
	intercept         T
	slopeVariance     T
	interceptVariance T
	r2                T
	residualVariance  T
	yVariance         T
	sample            sample.PairedSummary[T]
}

// Fit performs ordinary least-squares regression of y on x.
//
// The sequence is walked twice: once to build the paired summary and once to
// accumulate the residuals. If the second walk yields a different number of
// pairs than the first, as a one-shot sequence does, Fit panics with an error
// wrapping errs.ErrLengthMismatch.
//
// Parameters:
//   - pairs: Re-iterable sequence of (x, y) observations
//   - opts: WithKnownVariance
//
// Returns:
//   - Result[T]: The fitted line and its uncertainties
//
// Fit panics with an error wrapping errs.ErrInsufficientSamples if there are
// fewer than 3 pairs.
//
// Example:
//
//	r := regression.FitSlices(t, v)
//	fmt.Printf("a = %.4f (R² = %.5f)\n", r.SlopeEstimate(), r.R2())
func Fit[T constraints.Float](pairs iter.Seq2[T, T], opts ...Option[T]) Result[T] {
	cfg := defaultFitConfig[T]()
	options.MustApply(&cfg, opts...)

	s := sample.AnalyzePairs(pairs)
	n := s.Count()
	if n <= 2 {
		errs.Violation(errs.ErrInsufficientSamples, "regression requires at least 3 samples, got %d", n)
	}

	xMean := s.X().Mean()
	xVariance := s.X().Variance()
	slope := s.Covariance() / xVariance
	intercept := s.Y().Mean() - slope*xMean

	var ssRes compensated.Sum[T]
	m := 0
	for x, y := range pairs {
		residual := y - (intercept + slope*x)
		ssRes.Add(residual * residual)
		m++
	}
	if m != n {
		errs.Violation(errs.ErrLengthMismatch, "residual pass yielded %d pairs, summary pass %d", m, n)
	}
	residualVariance := ssRes.Result() / T(n-2)

	yVariance := residualVariance
	if !math.IsNaN(float64(cfg.knownVariance)) {
		yVariance = cfg.knownVariance
	}

	slopeVariance := yVariance / (T(n-1) * xVariance)

	return Result[T]{
		slope:             slope,
		intercept:         intercept,
		slopeVariance:     slopeVariance,
		interceptVariance: yVariance/T(n) + slopeVariance*xMean*xMean,
		r2:                1 - residualVariance/s.Y().Variance(),
		residualVariance:  residualVariance,
		yVariance:         yVariance,
		sample:            s,
	}
}

// FitSlices is Fit over x[i], y[i].
// It panics with errs.ErrLengthMismatch if the slices differ in length.
func FitSlices[T constraints.Float](x, y []T, opts ...Option[T]) Result[T] {
	if len(x) != len(y) {
		errs.Violation(errs.ErrLengthMismatch, "x has %d values, y has %d", len(x), len(y))
	}

	return Fit(func(yield func(T, T) bool) {
		for i := range x {
			if !yield(x[i], y[i]) {
				return
			}
		}
	}, opts...)
}

// FitPairs is Fit over the elements of pairs.
func FitPairs[T constraints.Float](pairs []sample.Pair[T], opts ...Option[T]) Result[T] {
	return Fit(func(yield func(T, T) bool) {
		for _, p := range pairs {
			if !yield(p.X, p.Y) {
				return
			}
		}
	}, opts...)
}

// Slope returns the fitted slope.
func (r Result[T]) Slope() T {
	return r.slope
}

// Intercept returns the fitted intercept.
func (r Result[T]) Intercept() T {
	return r.intercept
}

// SlopeVariance returns the variance of the slope.
func (r Result[T]) SlopeVariance() T {
	return r.slopeVariance
}

// SlopeStdErr returns the standard error of the slope.
func (r Result[T]) SlopeStdErr() T {
	return T(math.Sqrt(float64(r.slopeVariance)))
}

// SlopeEstimate returns the slope with its variance.
func (r Result[T]) SlopeEstimate() estimate.Estimate[T] {
	return estimateOf(r.slope, r.slopeVariance)
}

// InterceptVariance returns the variance of the intercept.
func (r Result[T]) InterceptVariance() T {
	return r.interceptVariance
}

// InterceptStdErr returns the standard error of the intercept.
func (r Result[T]) InterceptStdErr() T {
	return T(math.Sqrt(float64(r.interceptVariance)))
}

// InterceptEstimate returns the intercept with its variance.
func (r Result[T]) InterceptEstimate() estimate.Estimate[T] {
	return estimateOf(r.intercept, r.interceptVariance)
}

// R2 returns the coefficient of determination adjusted for the two fitted
// parameters, 1 - residualVariance/var(y). It is NaN when y is constant.
func (r Result[T]) R2() T {
	return r.r2
}

// ResidualVariance returns Σ(y - ŷ)²/(n-2).
func (r Result[T]) ResidualVariance() T {
	return r.residualVariance
}

// YVariance returns the y variance the coefficient uncertainties were derived
// from: the known variance if one was supplied, else ResidualVariance.
func (r Result[T]) YVariance() T {
	return r.yVariance
}

// Sample returns the paired summary of the fitted data.
func (r Result[T]) Sample() sample.PairedSummary[T] {
	return r.sample
}

// Count returns the number of fitted pairs.
func (r Result[T]) Count() int {
	return r.sample.Count()
}

// Predict returns the fitted value at x. Its variance accounts for the
// correlation between slope and intercept, which is -slopeVariance·mean(x).
func (r Result[T]) Predict(x T) estimate.Estimate[T] {
	xMean := r.sample.X().Mean()
	variance := r.interceptVariance + x*x*r.slopeVariance - 2*x*r.slopeVariance*xMean

	return estimateOf(r.intercept+r.slope*x, max(variance, 0))
}

// estimateOf returns the unknown estimate for the NaN coefficients of a fit
// whose x values are all equal.
func estimateOf[T constraints.Float](value, variance T) estimate.Estimate[T] {
	if math.IsNaN(float64(value)) || math.IsNaN(float64(variance)) {
		return estimate.Unknown[T]()
	}

	return estimate.New(value, variance)
}
