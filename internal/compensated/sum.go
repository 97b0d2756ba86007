// Package compensated implements Neumaier's improved Kahan summation.
package compensated

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Sum accumulates terms while tracking the low-order bits lost by each
// addition. The zero value is an empty sum.
type Sum[T constraints.Float] struct {
	sum          T
	compensation T
}

// Add adds term to the running sum and updates the compensation.
func (s *Sum[T]) Add(term T) {
	t := s.sum + term
	if math.Abs(float64(s.sum)) >= math.Abs(float64(term)) {
		s.compensation += (s.sum - t) + term
	} else {
		s.compensation += (term - t) + s.sum
	}
	s.sum = t
}

// Result returns the running sum reconciled with its compensation.
// It does not modify the accumulator.
func (s *Sum[T]) Result() T {
	return s.sum + s.compensation
}
