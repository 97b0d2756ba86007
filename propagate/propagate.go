package propagate

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/estimate"
	"github.com/arloliu/mensura/internal/compensated"
	"github.com/arloliu/mensura/internal/options"
)

// Function is a differentiable function of N arguments.
//
// ValueAt evaluates the function. DerivativeAt returns the N partial
// derivatives, evaluated at the given point. The two are called with
// different points when derivatives are taken at known calibration values
// instead of at the measured arguments.
type Function[T constraints.Float] interface {
	ValueAt(args ...T) T
	DerivativeAt(args ...T) []T
}

// Funcs adapts a pair of closures to Function.
type Funcs[T constraints.Float] struct {
	Value      func(args ...T) T
	Derivative func(args ...T) []T
}

var _ Function[float64] = Funcs[float64]{}

// ValueAt calls f.Value.
func (f Funcs[T]) ValueAt(args ...T) T {
	return f.Value(args...)
}

// DerivativeAt calls f.Derivative.
func (f Funcs[T]) DerivativeAt(args ...T) []T {
	return f.Derivative(args...)
}

type config[T constraints.Float] struct {
	trueValues []T
	covariance []T
}

// Option configures a propagation call.
type Option[T constraints.Float] = options.Option[*config[T]]

// WithTrueValues sets the point at which derivatives are evaluated. By default
// the derivatives are evaluated at the argument values.
func WithTrueValues[T constraints.Float](values ...T) Option[T] {
	return options.NoError(func(c *config[T]) {
		c.trueValues = values
	})
}

// WithCovariance supplies covariance terms in row-major upper-triangular order
// (i = 0..N-1, j = i..N-1 or j = i+1..N-1).
//
// For Values the matrix is full and includes the diagonal, N(N+1)/2 terms.
// Each off-diagonal entry is the whole cross contribution of the pair,
// Cov(i, j) + Cov(j, i) = 2·Cov(i, j), and is added once.
// For Estimates the diagonal comes from the arguments themselves and only the
// strictly upper triangle of plain covariances is given, N(N-1)/2 terms, each
// counted twice for the symmetric half.
//
// Without this option all covariance terms are zero.
func WithCovariance[T constraints.Float](terms ...T) Option[T] {
	return options.NoError(func(c *config[T]) {
		c.covariance = terms
	})
}

// Values propagates uncertainty through fn at raw argument values.
//
// The result value is fn.ValueAt(args...). The result variance is the
// first-order sum Σi≤j di·dj·C(i, j), with C taken from WithCovariance
// (full upper triangle, diagonal included, off-diagonal entries already
// covering both halves of the symmetric matrix) and the derivatives d
// evaluated at WithTrueValues, defaulting to args.
//
// Parameters:
//   - fn: Function to propagate through
//   - args: Argument values
//   - opts: WithTrueValues, WithCovariance
//
// Returns:
//   - estimate.Estimate[T]: Propagated estimate, or the unknown estimate if the
//     function or its derivatives produce NaN
//
// Panics with an error wrapping errs.ErrArgumentCount or
// errs.ErrCovarianceLength if the inputs are inconsistent.
//
// Example:
//
//	// t = (t1 + t2) / 2 with var(t1) = 4e-6, var(t2) = 9e-6, cov = 1e-6
//	mid := propagate.Linear(0.5, 0.5)
//	t := propagate.Values(mid, []float64{1.20, 1.35},
//	    propagate.WithCovariance(4e-6, 2e-6, 9e-6))
func Values[T constraints.Float](fn Function[T], args []T, opts ...Option[T]) estimate.Estimate[T] {
	n := len(args)
	cfg := newConfig(n, args, opts)
	if cfg.covariance != nil {
		requireLength(cfg.covariance, n*(n+1)/2, "full")
	}

	value := fn.ValueAt(args...)
	d := derivatives(fn, cfg.trueValues, n)

	var acc accumulator[T]
	k := 0
	for i := range n {
		acc.add(d[i] * d[i] * termAt(cfg.covariance, k))
		k++
		for j := i + 1; j < n; j++ {
			acc.add(d[i] * d[j] * termAt(cfg.covariance, k))
			k++
		}
	}

	return acc.estimate(value)
}

// Estimates propagates uncertainty through fn at estimate-valued arguments.
//
// The result value is fn.ValueAt evaluated at the argument values. Each
// argument contributes its own variance on the diagonal; correlations between
// arguments are supplied with WithCovariance as the strictly upper triangle.
// Derivatives are evaluated at WithTrueValues, defaulting to the argument values.
//
// If any argument is unknown, the result is unknown.
//
// Example:
//
//	// v = dx / (t2 - t1)
//	v := propagate.Estimates(velocity, []estimate.Estimate[float64]{dx, t1, t2})
func Estimates[T constraints.Float](fn Function[T], args []estimate.Estimate[T], opts ...Option[T]) estimate.Estimate[T] {
	n := len(args)
	values := make([]T, n)
	for i, a := range args {
		if a.IsUnknown() {
			return estimate.Unknown[T]()
		}
		values[i] = a.Value()
	}

	cfg := newConfig(n, values, opts)
	if cfg.covariance != nil {
		requireLength(cfg.covariance, n*(n-1)/2, "strictly upper")
	}

	value := fn.ValueAt(values...)
	d := derivatives(fn, cfg.trueValues, n)

	var acc accumulator[T]
	k := 0
	for i := range n {
		acc.add(d[i] * d[i] * args[i].Variance())
		for j := i + 1; j < n; j++ {
			acc.add(2 * d[i] * d[j] * termAt(cfg.covariance, k))
			k++
		}
	}

	return acc.estimate(value)
}

func newConfig[T constraints.Float](n int, args []T, opts []Option[T]) *config[T] {
	if n == 0 {
		errs.Violation(errs.ErrArgumentCount, "propagation needs at least one argument")
	}

	cfg := &config[T]{}
	options.MustApply(cfg, opts...)

	if cfg.trueValues == nil {
		cfg.trueValues = args
	} else if len(cfg.trueValues) != n {
		errs.Violation(errs.ErrArgumentCount, "%d true values for %d arguments", len(cfg.trueValues), n)
	}

	return cfg
}

func requireLength[T constraints.Float](terms []T, expected int, shape string) {
	if len(terms) != expected {
		errs.Violation(errs.ErrCovarianceLength, "%s triangular matrix needs %d terms, got %d", shape, expected, len(terms))
	}
}

func derivatives[T constraints.Float](fn Function[T], at []T, n int) []T {
	d := fn.DerivativeAt(at...)
	if len(d) != n {
		errs.Violation(errs.ErrArgumentCount, "derivative has %d components for %d arguments", len(d), n)
	}

	return d
}

func termAt[T constraints.Float](terms []T, k int) T {
	if terms == nil {
		return 0
	}

	return terms[k]
}

// accumulator sums variance contributions with compensation and tracks their
// magnitude so rounding residue below zero can be told apart from an
// inconsistent covariance matrix.
type accumulator[T constraints.Float] struct {
	sum       compensated.Sum[T]
	magnitude T
}

func (a *accumulator[T]) add(term T) {
	a.sum.Add(term)
	a.magnitude += T(math.Abs(float64(term)))
}

func (a *accumulator[T]) estimate(value T) estimate.Estimate[T] {
	variance := a.sum.Result()
	if math.IsNaN(float64(value)) || math.IsNaN(float64(variance)) {
		return estimate.Unknown[T]()
	}

	// Cancellation between correlated terms can leave a few ulps below zero.
	if variance < 0 && -variance <= 8*epsilon[T]()*a.magnitude {
		variance = 0
	}

	return estimate.New(value, variance)
}

func epsilon[T constraints.Float]() T {
	var one T = 1
	if T(1+1e-10) == one {
		return T(math.Nextafter32(1, 2) - 1)
	}

	return T(math.Nextafter(1, 2) - 1)
}
