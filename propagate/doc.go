// Package propagate carries uncertainty through differentiable functions using
// the first-order (linear) approximation
//
//	var(f) = Σi Σj ∂f/∂xi · ∂f/∂xj · Cov(xi, xj)
//
// A function is anything implementing Function: it evaluates itself and its
// gradient at a point. Funcs adapts a pair of closures, and the package ships
// a few stock functions (Linear, Sum, Difference, Product, Quotient).
//
// Two entry points differ in how the covariance is supplied:
//
//   - Values takes raw argument values and the covariance matrix folded into
//     its upper triangle, diagonal included. Each off-diagonal entry is the
//     whole cross contribution 2·Cov and is added once.
//   - Estimates takes estimate-valued arguments, whose own variances form the
//     diagonal; only the strictly upper triangle is passed as an option.
//
// Covariance terms are listed row by row. For three arguments the full form is
//
//	Var(x0), 2·Cov(x0,x1), 2·Cov(x0,x2), Var(x1), 2·Cov(x1,x2), Var(x2)
//
// and the strict form is
//
//	Cov(x0,x1), Cov(x0,x2), Cov(x1,x2)
//
// Derivatives are evaluated at the arguments unless WithTrueValues gives a
// different point.
//
// Example:
//
//	// g = 2·d / t²
//	accel := propagate.Funcs[float64]{
//	    Value: func(a ...float64) float64 { return 2 * a[0] / (a[1] * a[1]) },
//	    Derivative: func(a ...float64) []float64 {
//	        return []float64{2 / (a[1] * a[1]), -4 * a[0] / (a[1] * a[1] * a[1])}
//	    },
//	}
//	g := propagate.Estimates(accel, []estimate.Estimate[float64]{d, t})
package propagate
