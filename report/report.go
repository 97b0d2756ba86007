// Package report renders summaries, fits and estimates as plain text tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/arloliu/mensura/estimate"
	"github.com/arloliu/mensura/internal/options"
	"github.com/arloliu/mensura/regression"
	"github.com/arloliu/mensura/sample"
)

const defaultPrecision = 5

// Writer renders report sections to an io.Writer.
//
// Write errors are sticky: after the first failure every method is a no-op
// and Err returns that failure.
type Writer struct {
	w         io.Writer
	precision int
	runID     string
	err       error
}

// Option configures a Writer.
type Option = options.Option[*Writer]

// WithPrecision sets the number of decimals of every number. Default 5.
func WithPrecision(p int) Option {
	return options.New(func(w *Writer) error {
		if p < 0 {
			return fmt.Errorf("invalid precision %d", p)
		}
		w.precision = p

		return nil
	})
}

// WithRunID sets the run identifier printed by Header instead of a random
// UUID.
func WithRunID(id string) Option {
	return options.NoError(func(w *Writer) {
		w.runID = id
	})
}

// NewWriter creates a Writer with a fresh run ID.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	rw := &Writer{
		w:         w,
		precision: defaultPrecision,
		runID:     uuid.NewString(),
	}

	if err := options.Apply(rw, opts...); err != nil {
		return nil, err
	}

	return rw, nil
}

// RunID returns the identifier printed in the header.
func (w *Writer) RunID() string {
	return w.runID
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *Writer) num(v float64) string {
	return fmt.Sprintf("%.*f", w.precision, v)
}

func (w *Writer) est(e estimate.Estimate[float64]) string {
	if e.IsUnknown() {
		return "unknown"
	}

	return fmt.Sprintf("%.*f", w.precision, e)
}

// Header prints a title line followed by the run ID.
func (w *Writer) Header(title string) {
	w.printf("=== %s ===\n", title)
	w.printf("run: %s\n\n", w.runID)
}

// Section prints a section title.
func (w *Writer) Section(title string) {
	w.printf("--- %s ---\n", title)
}

// NamedSummary pairs a series name with its statistics.
type NamedSummary struct {
	Name    string
	Summary sample.Summary[float64]
}

// Summaries prints one table row per series. Statistics that need more
// observations than a series has are shown as "-".
func (w *Writer) Summaries(rows []NamedSummary) {
	cols := []string{"series", "n", "mean", "stddev", "mean err", "min", "max", "skewness", "kurtosis"}
	w.printf("%-12s %6s %14s %14s %14s %14s %14s %10s %10s\n", toAny(cols)...)
	w.printf("%s\n", strings.Repeat("-", 116))

	for _, r := range rows {
		s := r.Summary
		w.printf("%-12s %6d %14s %14s %14s %14s %14s %10s %10s\n",
			r.Name,
			s.Count(),
			w.stat(s, 1, s.Mean),
			w.stat(s, 2, s.StdDev),
			w.stat(s, 2, s.MeanStdErr),
			w.stat(s, 1, s.Min),
			w.stat(s, 1, s.Max),
			w.short(s, 3, s.Skewness),
			w.short(s, 4, s.Kurtosis),
		)
	}
	w.printf("\n")
}

func (w *Writer) stat(s sample.Summary[float64], minCount int, fn func() float64) string {
	if s.Count() < minCount {
		return "-"
	}

	return w.num(fn())
}

func (w *Writer) short(s sample.Summary[float64], minCount int, fn func() float64) string {
	if s.Count() < minCount {
		return "-"
	}

	return fmt.Sprintf("%.3f", fn())
}

// Estimate prints a labeled estimate with its relative error.
func (w *Writer) Estimate(label string, e estimate.Estimate[float64]) {
	if e.IsUnknown() {
		w.printf("%-12s unknown\n", label+":")
		return
	}

	w.printf("%-12s %s (%.2f%%)\n", label+":", w.est(e), 100*e.RelativeError())
}

// Compatibility prints how many combined standard deviations separate a
// measured estimate from a reference.
func (w *Writer) Compatibility(label string, measured, reference estimate.Estimate[float64]) {
	z := estimate.Compatibility(measured, reference)
	w.printf("%-12s %.2f sigma from %s (%s)\n", label+":", z, w.est(reference), classifyCompatibility(z))
}

// Fit prints the coefficients and goodness of a linear fit.
func (w *Writer) Fit(r regression.Result[float64]) {
	w.printf("%-12s %d\n", "points:", r.Count())
	w.printf("%-12s %s\n", "slope:", w.est(r.SlopeEstimate()))
	w.printf("%-12s %s\n", "intercept:", w.est(r.InterceptEstimate()))
	w.printf("%-12s %.4f (%s)\n", "R²:", r.R2(), classifyRSquared(r.R2()))
	w.printf("%-12s %s\n\n", "residual σ²:", w.num(r.ResidualVariance()))
}

// Selection prints the ranked curve models.
func (w *Writer) Selection(sel *regression.Selection) {
	if sel == nil || sel.BestFit == nil {
		w.printf("no model fits the data\n\n")
		return
	}

	w.printf("%-12s %s\n", "best fit:", sel.BestFit.Type)
	w.printf("%-12s %s\n", "formula:", sel.BestFit.Formula)
	w.printf("%-12s %.4f (%s)\n\n", "R²:", sel.BestFit.RSquared, classifyRSquared(sel.BestFit.RSquared))

	w.printf("%-12s %10s %14s\n", "model", "R²", "RMSE")
	w.printf("%s\n", strings.Repeat("-", 38))
	for _, m := range sel.AllModels {
		w.printf("%-12s %10.4f %14.4g\n", m.Type, m.RSquared, m.RMSE)
	}
	for _, mt := range sel.Skipped {
		w.printf("%-12s %10s %14s\n", mt, "skipped", "-")
	}
	w.printf("\n")
}

func classifyRSquared(r2 float64) string {
	switch {
	case r2 >= 0.98:
		return "excellent fit"
	case r2 >= 0.95:
		return "very good fit"
	case r2 >= 0.90:
		return "good fit"
	case r2 >= 0.80:
		return "fair fit"
	default:
		return "poor fit"
	}
}

func classifyCompatibility(z float64) string {
	switch {
	case z <= 1:
		return "excellent agreement"
	case z <= 2:
		return "good agreement"
	case z <= 3:
		return "marginal agreement"
	default:
		return "incompatible"
	}
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}

	return out
}
