// Package sample computes streaming statistics over measurement sequences.
//
// A Summary is built in a single forward pass using the incremental central
// moment updates of Welford, Terriberry and Pébay, which avoid the
// cancellation of the textbook Σx² - n·x̄² formulas. A PairedSummary extends it
// to two variables and adds their covariance.
//
// # Basic Usage
//
//	times := []float64{0.512, 0.509, 0.515, 0.511, 0.508}
//	s := sample.AnalyzeSlice(times)
//	fmt.Printf("t = %.4f s (n=%d, skew=%.3f)\n", s.MeanEstimate(), s.Count(), s.Skewness())
//
// Any iter.Seq works as input, so values can be streamed from a decoder
// without materializing them:
//
//	s := sample.Analyze(ds.All("gate3"))
//
// # Preconditions
//
// Each statistic needs a minimum number of observations: Mean 1, Variance and
// Covariance 2, Skewness 3, Kurtosis 4. Asking for a statistic below its
// minimum is a programming error and panics with an error wrapping
// errs.ErrInsufficientSamples.
//
// # Thread Safety
//
// Summaries are values. Once Analyze returns they are never modified and may be
// read from any number of goroutines.
package sample
