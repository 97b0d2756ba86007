package propagate

import (
	"github.com/arloliu/mensura/errs"
	"golang.org/x/exp/constraints"
)

// Identity returns f(x) = x.
func Identity[T constraints.Float]() Function[T] {
	return Linear[T](1)
}

type linear[T constraints.Float] struct {
	coeffs []T
}

// Linear returns f(x0, ..., xn) = Σ coeffs[i]·xi. It needs one argument per
// coefficient.
func Linear[T constraints.Float](coeffs ...T) Function[T] {
	if len(coeffs) == 0 {
		errs.Violation(errs.ErrArgumentCount, "linear function needs at least one coefficient")
	}

	return linear[T]{coeffs: coeffs}
}

func (l linear[T]) ValueAt(args ...T) T {
	checkArity(len(l.coeffs), len(args))

	var sum T
	for i, c := range l.coeffs {
		sum += c * args[i]
	}

	return sum
}

func (l linear[T]) DerivativeAt(args ...T) []T {
	checkArity(len(l.coeffs), len(args))

	d := make([]T, len(l.coeffs))
	copy(d, l.coeffs)

	return d
}

// Sum returns f(x0, ..., x(n-1)) = Σ xi.
func Sum[T constraints.Float](n int) Function[T] {
	if n <= 0 {
		errs.Violation(errs.ErrArgumentCount, "sum needs at least one argument, got %d", n)
	}

	coeffs := make([]T, n)
	for i := range coeffs {
		coeffs[i] = 1
	}

	return linear[T]{coeffs: coeffs}
}

// Difference returns f(a, b) = a - b.
func Difference[T constraints.Float]() Function[T] {
	return Linear[T](1, -1)
}

type product[T constraints.Float] struct{}

// Product returns f(a, b) = a·b.
func Product[T constraints.Float]() Function[T] {
	return product[T]{}
}

func (product[T]) ValueAt(args ...T) T {
	checkArity(2, len(args))
	return args[0] * args[1]
}

func (product[T]) DerivativeAt(args ...T) []T {
	checkArity(2, len(args))
	return []T{args[1], args[0]}
}

type quotient[T constraints.Float] struct{}

// Quotient returns f(a, b) = a/b.
func Quotient[T constraints.Float]() Function[T] {
	return quotient[T]{}
}

func (quotient[T]) ValueAt(args ...T) T {
	checkArity(2, len(args))
	return args[0] / args[1]
}

func (quotient[T]) DerivativeAt(args ...T) []T {
	checkArity(2, len(args))
	return []T{1 / args[1], -args[0] / (args[1] * args[1])}
}

func checkArity(expected, got int) {
	if expected != got {
		errs.Violation(errs.ErrArgumentCount, "function takes %d arguments, got %d", expected, got)
	}
}
