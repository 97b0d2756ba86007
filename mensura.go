// Package mensura computes statistics of repeated physical measurements and
// carries their uncertainties through derived quantities.
//
// A measured quantity is an estimate.Estimate: a central value together with
// its variance. Samples of repeated readings are summarized in a single pass
// by the sample package, lines are fitted by least squares in the regression
// package, and the propagate package turns argument uncertainties into the
// uncertainty of any differentiable function of them.
//
// # Core Features
//
//   - Single-pass mean, variance, skewness, kurtosis and covariance
//   - First-order uncertainty propagation with optional covariance terms
//   - Least-squares line fit with slope and intercept uncertainties
//   - Curve model selection (linear, hyperbolic, logarithmic, power, exponential)
//   - Compact .msr dataset files: xxHash64 series IDs, raw or Gorilla values,
//     optional compression (None, Zstd, S2, LZ4), CRC32 trailer
//
// # Basic Usage
//
// Summarizing readings and deriving a quantity:
//
//	import "github.com/arloliu/mensura"
//
//	t := sample.AnalyzeSlice(times).MeanEstimate()
//	d := estimate.New(1.2, 0.001*0.001)
//
//	// v = d / t
//	v := propagate.Estimates(propagate.Quotient[float64](), []estimate.Estimate[float64]{d, t})
//	fmt.Printf("v = %.4f m/s\n", v)
//
// Storing series and reading them back:
//
//	data, _ := mensura.Pack([]dataset.Series{
//	    {Name: "gate1", Values: gate1},
//	    {Name: "gate2", Values: gate2},
//	})
//	ds, _ := mensura.Decode(data)
//	s, _ := mensura.Summarize(ds, "gate1")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dataset,
// sample and regression packages for the most common use cases. For
// fine-grained control, use those packages directly.
package mensura

import (
	"fmt"

	"github.com/arloliu/mensura/dataset"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/format"
	"github.com/arloliu/mensura/internal/hash"
	"github.com/arloliu/mensura/regression"
	"github.com/arloliu/mensura/sample"
)

var defaultOptions = []dataset.EncoderOption{
	dataset.WithLittleEndian(),
	dataset.WithValueEncoding(format.TypeGorilla),
	dataset.WithCompression(format.CompressionZstd),
}

// NewEncoder creates a dataset encoder with custom options.
//
// Available options:
//   - dataset.WithLittleEndian() / dataset.WithBigEndian()
//   - dataset.WithValueEncoding(format.TypeRaw|TypeGorilla)
//   - dataset.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//
// Example:
//
//	enc, err := mensura.NewEncoder(dataset.WithValueEncoding(format.TypeRaw))
func NewEncoder(opts ...dataset.EncoderOption) (*dataset.Encoder, error) {
	return dataset.NewEncoder(opts...)
}

// NewDefaultEncoder creates a dataset encoder with the recommended settings:
// little-endian, Gorilla values and Zstd compression.
func NewDefaultEncoder() (*dataset.Encoder, error) {
	return dataset.NewEncoder(defaultOptions...)
}

// Pack encodes series with the default settings followed by opts.
func Pack(series []dataset.Series, opts ...dataset.EncoderOption) ([]byte, error) {
	allOpts := append(append([]dataset.EncoderOption{}, defaultOptions...), opts...)

	return dataset.Pack(series, allOpts...)
}

// Decode parses a dataset file. See dataset.Decode.
func Decode(data []byte) (*dataset.Dataset, error) {
	return dataset.Decode(data)
}

// SeriesID returns the 64-bit ID a dataset stores for a series name.
func SeriesID(name string) uint64 {
	return hash.SeriesID(name)
}

// Summarize analyzes the named series of ds.
//
// Returns an error wrapping errs.ErrSeriesNotFound for an unknown name.
func Summarize(ds *dataset.Dataset, name string) (sample.Summary[float64], error) {
	if !ds.Has(name) {
		return sample.Summary[float64]{}, fmt.Errorf("%w: %q", errs.ErrSeriesNotFound, name)
	}

	return sample.Analyze(ds.All(name)), nil
}

// AnalyzeFile summarizes a text file of whitespace-separated numbers.
func AnalyzeFile(path string) (sample.Summary[float64], error) {
	values, err := dataset.ReadValuesFile(path)
	if err != nil {
		return sample.Summary[float64]{}, err
	}

	return sample.AnalyzeSlice(values), nil
}

// FitFile fits a line to a two-column text file.
//
// Unlike regression.Fit, which panics, a file with fewer than 3 points returns
// an error wrapping errs.ErrInsufficientSamples.
func FitFile(path string, opts ...regression.Option[float64]) (regression.Result[float64], error) {
	x, y, err := dataset.ReadPairsFile(path)
	if err != nil {
		return regression.Result[float64]{}, err
	}

	if len(x) < 3 {
		return regression.Result[float64]{}, fmt.Errorf("%w: %s has %d points", errs.ErrInsufficientSamples, path, len(x))
	}

	return regression.FitSlices(x, y, opts...), nil
}
