// Package estimate provides Estimate, a measured or derived quantity paired with
// its variance.
//
// Estimate is the value type exchanged by every mensura package: sample
// summaries produce the estimate of a mean, propagation turns estimates into new
// estimates, and regression exposes its slope and intercept as estimates.
//
// # Unknown Estimates
//
// The zero value of Estimate is the "unknown" sentinel: both Value and Variance
// report NaN. This is distinct from an exact (zero variance) estimate, which is
// created with Exact:
//
//	var e estimate.Estimate[float64]          // unknown: NaN +- NaN
//	x := estimate.Exact(9.806)               // exact:   9.806 +- 0
//	y := estimate.New(9.79, 0.0004)          // 9.79 +- 0.02
//
// # Formatting
//
// Estimates render as "<value> +- <stddev>". With fmt, the verb, width and
// precision are applied to both numbers:
//
//	fmt.Printf("%.3f", y) // 9.790 +- 0.020
package estimate

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/mensura/errs"
)

// Estimate is an immutable value paired with its variance.
type Estimate[T constraints.Float] struct {
	value    T
	variance T
	known    bool
}

// New creates an estimate from a value and its variance.
//
// New panics with an error wrapping errs.ErrNegativeVariance if variance is
// negative or NaN; NaN is reserved for the unknown sentinel.
//
// Parameters:
//   - value: Central value
//   - variance: Variance of the value (must be >= 0)
//
// Returns:
//   - Estimate[T]: The new estimate
func New[T constraints.Float](value, variance T) Estimate[T] {
	if !(variance >= 0) {
		errs.Violation(errs.ErrNegativeVariance, "got %v", variance)
	}

	return Estimate[T]{value: value, variance: variance, known: true}
}

// Exact creates an estimate with zero variance.
func Exact[T constraints.Float](value T) Estimate[T] {
	return Estimate[T]{value: value, known: true}
}

// Unknown returns the unknown sentinel, equal to the zero value.
func Unknown[T constraints.Float]() Estimate[T] {
	return Estimate[T]{}
}

// Value returns the central value, or NaN if the estimate is unknown.
func (e Estimate[T]) Value() T {
	if !e.known {
		return T(math.NaN())
	}

	return e.value
}

// Variance returns the variance, or NaN if the estimate is unknown.
func (e Estimate[T]) Variance() T {
	if !e.known {
		return T(math.NaN())
	}

	return e.variance
}

// StdDev returns the standard deviation, sqrt(Variance()).
func (e Estimate[T]) StdDev() T {
	return T(math.Sqrt(float64(e.Variance())))
}

// IsUnknown reports whether e is the unknown sentinel.
func (e Estimate[T]) IsUnknown() bool {
	return !e.known
}

// RelativeError returns StdDev()/|Value()|.
// It is +Inf for a zero value with non-zero variance and NaN for unknown estimates.
func (e Estimate[T]) RelativeError() T {
	return T(float64(e.StdDev()) / math.Abs(float64(e.Value())))
}

// String renders the estimate as "<value> +- <stddev>" using the shortest
// representation that round-trips for T.
func (e Estimate[T]) String() string {
	bits := bitSize[T]()

	return strconv.FormatFloat(float64(e.Value()), 'g', -1, bits) +
		" +- " +
		strconv.FormatFloat(float64(e.StdDev()), 'g', -1, bits)
}

func bitSize[T constraints.Float]() int {
	var zero T
	switch any(zero).(type) {
	case float32:
		return 32
	default:
		return 64
	}
}

// Format implements fmt.Formatter. The verb, flags, width and precision are
// applied to the value and to the standard deviation in turn.
func (e Estimate[T]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		if _, hasPrec := f.Precision(); !hasPrec {
			if _, hasWidth := f.Width(); !hasWidth {
				_, _ = io.WriteString(f, e.String())
				return
			}
		}
		verb = 'g'
	}

	directive := fmt.FormatString(f, verb)
	fmt.Fprintf(f, directive, e.Value())
	_, _ = io.WriteString(f, " +- ")
	fmt.Fprintf(f, directive, e.StdDev())
}

// Compatibility returns the distance between two estimates in units of their
// combined standard deviation: |a - b| / sqrt(var(a) + var(b)).
//
// It is typically used to compare a derived quantity with a reference value,
// for example a measured g against the accepted local gravity.
//
// Returns NaN if either estimate is unknown, and +Inf when both variances are
// zero and the values differ.
func Compatibility[T constraints.Float](a, b Estimate[T]) T {
	diff := math.Abs(float64(a.Value() - b.Value()))

	return T(diff / math.Sqrt(float64(a.Variance()+b.Variance())))
}
