package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/sample"
)

func requirePanicsWith(t *testing.T, sentinel error, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		require.True(t, errors.Is(err, sentinel), "expected %v, got %v", sentinel, err)
	}()

	fn()
}

func TestFitExactLine(t *testing.T) {
	r := FitPairs([]sample.Pair[float64]{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}})

	require.Equal(t, 3, r.Count())
	require.Equal(t, 2.0, r.Slope())
	require.Equal(t, 0.0, r.Intercept())
	require.Equal(t, 1.0, r.R2())
	require.Equal(t, 0.0, r.ResidualVariance())
	require.Equal(t, 0.0, r.SlopeVariance())
	require.Equal(t, "2 +- 0", r.SlopeEstimate().String())
}

func TestFitLineWithOffset(t *testing.T) {
	x := make([]float64, 10)
	y := make([]float64, 10)
	for i := range x {
		x[i] = float64(i)
		y[i] = 3*x[i] - 1
	}

	r := FitSlices(x, y)

	require.InDelta(t, 3.0, r.Slope(), 1e-12)
	require.InDelta(t, -1.0, r.Intercept(), 1e-12)
	require.InDelta(t, 0.0, r.ResidualVariance(), 1e-24)
	require.InDelta(t, 1.0, r.R2(), 1e-12)
}

func TestFitMatchesGonum(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1, 12.2, 13.8, 16.1}
	n := float64(len(x))

	r := FitSlices(x, y)
	alpha, beta := stat.LinearRegression(x, y, nil, false)

	require.InDelta(t, beta, r.Slope(), 1e-12)
	require.InDelta(t, alpha, r.Intercept(), 1e-12)

	var ssRes float64
	for i := range x {
		e := y[i] - (alpha + beta*x[i])
		ssRes += e * e
	}
	resVar := ssRes / (n - 2)
	require.InDelta(t, resVar, r.ResidualVariance(), 1e-12)
	require.Equal(t, r.ResidualVariance(), r.YVariance())

	xVar := stat.Variance(x, nil)
	require.InDelta(t, resVar/((n-1)*xVar), r.SlopeVariance(), 1e-12)
	require.InDelta(t, resVar/n+r.SlopeVariance()*stat.Mean(x, nil)*stat.Mean(x, nil), r.InterceptVariance(), 1e-12)

	// R2 is the R² adjusted for two fitted parameters.
	r2 := stat.RSquared(x, y, nil, alpha, beta)
	require.InDelta(t, 1-(1-r2)*(n-1)/(n-2), r.R2(), 1e-12)

	require.InDelta(t, stat.Covariance(x, y, nil), r.Sample().Covariance(), 1e-12)
}

func TestFitKnownVariance(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}

	r := FitSlices(x, y, WithKnownVariance(0.04))

	require.Equal(t, 0.04, r.YVariance())
	// var(x) = 2.5, n = 5
	require.InDelta(t, 0.004, r.SlopeVariance(), 1e-15)
	require.InDelta(t, 0.044, r.InterceptVariance(), 1e-15)
	require.NotEqual(t, r.ResidualVariance(), r.YVariance())

	unset := FitSlices(x, y, WithKnownVariance(math.NaN()))
	require.Equal(t, unset.ResidualVariance(), unset.YVariance())
}

func TestFitPredict(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}

	r := FitSlices(x, y, WithKnownVariance(0.04))

	atMean := r.Predict(3)
	require.InDelta(t, r.Intercept()+3*r.Slope(), atMean.Value(), 1e-12)
	// at mean(x) only the y scatter remains: yVar/n
	require.InDelta(t, 0.008, atMean.Variance(), 1e-15)

	far := r.Predict(10)
	require.Greater(t, far.Variance(), atMean.Variance())
}

func TestFitDegenerateX(t *testing.T) {
	r := FitSlices([]float64{2, 2, 2}, []float64{1, 2, 3})

	require.True(t, math.IsNaN(r.Slope()))
	require.True(t, r.SlopeEstimate().IsUnknown())
	require.True(t, r.InterceptEstimate().IsUnknown())
}

func TestFitPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		fn       func()
	}{
		{
			name:     "two pairs",
			sentinel: errs.ErrInsufficientSamples,
			fn:       func() { _ = FitSlices([]float64{1, 2}, []float64{1, 2}) },
		},
		{
			name:     "empty",
			sentinel: errs.ErrInsufficientSamples,
			fn:       func() { _ = FitPairs[float64](nil) },
		},
		{
			name:     "length mismatch",
			sentinel: errs.ErrLengthMismatch,
			fn:       func() { _ = FitSlices([]float64{1, 2, 3}, []float64{1, 2}) },
		},
		{
			name:     "negative known variance",
			sentinel: errs.ErrNegativeVariance,
			fn:       func() { _ = FitSlices([]float64{1, 2, 3}, []float64{1, 2, 4}, WithKnownVariance(-1.0)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requirePanicsWith(t, tt.sentinel, tt.fn)
		})
	}
}

func TestFitWalksSequenceTwice(t *testing.T) {
	calls := 0
	seq := func(yield func(float64, float64) bool) {
		calls++
		for i := 1; i <= 4; i++ {
			if !yield(float64(i), float64(2*i+1)) {
				return
			}
		}
	}

	r := Fit(seq)

	require.Equal(t, 2, calls)
	require.InDelta(t, 2.0, r.Slope(), 1e-15)
	require.InDelta(t, 1.0, r.Intercept(), 1e-15)
}

func TestFitOneShotSequencePanics(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2.1, 3.9, 6.2, 7.8, 10.1}
	used := false
	seq := func(yield func(float64, float64) bool) {
		if used {
			return
		}
		used = true
		for i := range xs {
			if !yield(xs[i], ys[i]) {
				return
			}
		}
	}

	requirePanicsWith(t, errs.ErrLengthMismatch, func() {
		_ = Fit(seq)
	})
}

func TestFitFloat32(t *testing.T) {
	r := FitSlices([]float32{1, 2, 3, 4}, []float32{3, 5, 7, 9})

	require.InDelta(t, 2.0, float64(r.Slope()), 1e-6)
	require.InDelta(t, 1.0, float64(r.Intercept()), 1e-6)
}

func BenchmarkFit(b *testing.B) {
	x := make([]float64, 1000)
	y := make([]float64, 1000)
	for i := range x {
		x[i] = float64(i)
		y[i] = 0.5*x[i] + math.Sin(float64(i))
	}

	for b.Loop() {
		_ = FitSlices(x, y)
	}
}
