package sample

import (
	"iter"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/mensura/errs"
)

// Pair is one (x, y) observation of a paired sample.
type Pair[T constraints.Float] struct {
	X, Y T
}

// PairedSummary holds the summaries of two jointly observed variables and
// their running co-moment.
type PairedSummary[T constraints.Float] struct {
	x, y     Summary[T]
	coMoment T
}

// AnalyzePairs folds seq into a PairedSummary, consuming it exactly once.
//
// Parameters:
//   - seq: Sequence of (x, y) observations
//
// Returns:
//   - PairedSummary[T]: Per-variable statistics plus covariance
func AnalyzePairs[T constraints.Float](seq iter.Seq2[T, T]) PairedSummary[T] {
	var p PairedSummary[T]
	for x, y := range seq {
		p.add(x, y)
	}

	return p
}

// AnalyzePairSlice is AnalyzePairs over the elements of pairs.
func AnalyzePairSlice[T constraints.Float](pairs []Pair[T]) PairedSummary[T] {
	var p PairedSummary[T]
	for _, pr := range pairs {
		p.add(pr.X, pr.Y)
	}

	return p
}

// AnalyzeColumns is AnalyzePairs over x[i], y[i].
// It panics with errs.ErrLengthMismatch if the columns differ in length.
func AnalyzeColumns[T constraints.Float](x, y []T) PairedSummary[T] {
	if len(x) != len(y) {
		errs.Violation(errs.ErrLengthMismatch, "x has %d values, y has %d", len(x), len(y))
	}

	var p PairedSummary[T]
	for i := range x {
		p.add(x[i], y[i])
	}

	return p
}

// add takes the x deviation against the mean before the update and the y
// deviation against the mean after it; this asymmetry is what makes the
// accumulated co-moment equal Σ(x - x̄)(y - ȳ).
func (p *PairedSummary[T]) add(x, y T) {
	deltaX := x - p.x.mean

	p.x.add(x)
	p.y.add(y)

	p.coMoment += deltaX * (y - p.y.mean)
}

// X returns the summary of the first variable.
func (p PairedSummary[T]) X() Summary[T] {
	return p.x
}

// Y returns the summary of the second variable.
func (p PairedSummary[T]) Y() Summary[T] {
	return p.y
}

// Count returns the number of pairs.
func (p PairedSummary[T]) Count() int {
	return p.x.count
}

// Covariance returns the sample covariance co-moment/(n-1).
// Requires at least 2 pairs.
func (p PairedSummary[T]) Covariance() T {
	p.x.require(2, "covariance")
	return p.coMoment / T(p.x.count-1)
}

// Correlation returns the Pearson correlation coefficient.
// Requires at least 2 pairs.
func (p PairedSummary[T]) Correlation() T {
	return T(float64(p.Covariance()) / math.Sqrt(float64(p.x.Variance())*float64(p.y.Variance())))
}
