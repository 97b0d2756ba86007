// Package regression fits straight lines and simple curves to paired
// measurements.
//
// # Linear Fit
//
// Fit performs ordinary least-squares regression y = intercept + slope·x and
// reports the uncertainty of both coefficients:
//
//	r := regression.FitSlices(t, v)
//	fmt.Printf("a = %.4f\n", r.SlopeEstimate())     // slope with its std error
//	fmt.Printf("v0 = %.4f\n", r.InterceptEstimate())
//	fmt.Printf("R² = %.5f\n", r.R2())
//
// By default the y variance is taken from the residuals, Σ(y - ŷ)²/(n-2).
// When the y uncertainty is known independently, pass it with
// WithKnownVariance and the coefficient variances are derived from it instead:
//
//	slopeVariance     = yVar / ((n-1)·var(x))
//	interceptVariance = yVar/n + slopeVariance·mean(x)²
//
// R2 always uses the residual variance: 1 - residualVariance/var(y).
//
// Fit needs at least 3 pairs and panics otherwise. The input sequence is
// walked twice, so it must be re-iterable.
//
// # Model Selection
//
// SelectModel fits several two-parameter curves and ranks them by R² on the
// original scale:
//
//   - Linear: y = a + b·x
//   - Hyperbolic: y = a + b/x
//   - Logarithmic: y = a + b·ln(x)
//   - Power: y = a·x^b
//   - Exponential: y = a·e^(b·x)
//
// Each curve is linearized and fitted with Fit, so every Model also carries
// the straight-line Result in transformed coordinates. Curves whose domain
// does not contain the data (for example ln(x) with x <= 0) are skipped.
//
//	sel, err := regression.SelectModel(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range sel.AllModels {
//	    fmt.Printf("%s: R²=%.4f, %s\n", m.Type, m.RSquared, m.Formula)
//	}
//
// Unlike Fit, SelectModel returns errors instead of panicking: it is meant for
// data read from files, where a short or mismatched input is not a bug.
package regression
