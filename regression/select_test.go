package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mensura/errs"
)

func generate(f func(x float64) float64, xs ...float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}

	return ys
}

func TestSelectModelRecoversCurve(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name  string
		f     func(float64) float64
		want  ModelType
		coeff [2]float64
	}{
		{"linear", func(x float64) float64 { return 1 + 2*x }, ModelTypeLinear, [2]float64{1, 2}},
		{"hyperbolic", func(x float64) float64 { return 3 + 2/x }, ModelTypeHyperbolic, [2]float64{3, 2}},
		{"logarithmic", func(x float64) float64 { return 1 + 4*math.Log(x) }, ModelTypeLogarithmic, [2]float64{1, 4}},
		{"power", func(x float64) float64 { return 2 * math.Pow(x, 1.5) }, ModelTypePower, [2]float64{2, 1.5}},
		{"exponential", func(x float64) float64 { return 0.5 * math.Exp(0.3*x) }, ModelTypeExponential, [2]float64{0.5, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := SelectModel(xs, generate(tt.f, xs...))
			require.NoError(t, err)
			require.Len(t, sel.AllModels, 5)
			require.Empty(t, sel.Skipped)

			best := sel.BestFit
			require.Same(t, sel.AllModels[0], best)
			require.Equal(t, tt.want, best.Type)
			require.InDelta(t, 1.0, best.RSquared, 1e-10)
			require.InDelta(t, 0.0, best.RMSE, 1e-9)
			require.InDelta(t, tt.coeff[0], best.Coefficients[0], 1e-9)
			require.InDelta(t, tt.coeff[1], best.Coefficients[1], 1e-9)

			for i := 1; i < len(sel.AllModels); i++ {
				require.GreaterOrEqual(t, sel.AllModels[i-1].RSquared, sel.AllModels[i].RSquared)
			}
		})
	}
}

func TestSelectModelSkipsOutOfDomain(t *testing.T) {
	x := []float64{-3, -2, -1, 1, 2, 3}
	y := generate(func(x float64) float64 { return 1 + 2*x }, x...)

	sel, err := SelectModel(x, y)
	require.NoError(t, err)

	require.Equal(t, []ModelType{ModelTypeLogarithmic, ModelTypePower, ModelTypeExponential}, sel.Skipped)
	require.Len(t, sel.AllModels, 2)
	require.Equal(t, ModelTypeLinear, sel.BestFit.Type)
	require.NotNil(t, sel.Model(ModelTypeHyperbolic))
	require.Nil(t, sel.Model(ModelTypePower))
}

func TestSelectModelSubset(t *testing.T) {
	x := []float64{1, 2, 4, 8, 16}
	y := generate(func(x float64) float64 { return 5 - 3/x }, x...)

	sel, err := SelectModel(x, y, ModelTypeLinear, ModelTypeHyperbolic)
	require.NoError(t, err)
	require.Len(t, sel.AllModels, 2)
	require.Equal(t, ModelTypeHyperbolic, sel.BestFit.Type)

	slope := sel.BestFit.Linearized.SlopeEstimate()
	require.InDelta(t, -3.0, slope.Value(), 1e-12)
	require.InDelta(t, 0.0, slope.StdDev(), 1e-6)
}

func TestSelectModelErrors(t *testing.T) {
	_, err := SelectModel([]float64{1, 2, 3}, []float64{1, 2})
	require.True(t, errors.Is(err, errs.ErrLengthMismatch))

	_, err = SelectModel([]float64{1, 2}, []float64{1, 2})
	require.True(t, errors.Is(err, errs.ErrInsufficientSamples))

	_, err = SelectModel([]float64{-1, -2, -3}, []float64{1, 2, 3}, ModelTypeLogarithmic)
	require.ErrorContains(t, err, "no model fits the data")

	_, err = SelectModel([]float64{1, 2, 3}, []float64{1, 2, 3}, ModelType(42))
	require.ErrorContains(t, err, "unknown model type")
}

func TestSelectionString(t *testing.T) {
	require.Equal(t, "Selection{BestFit: nil}", (&Selection{}).String())

	sel, err := SelectModel([]float64{1, 2, 3}, []float64{2, 4, 6}, ModelTypeLinear)
	require.NoError(t, err)
	require.Equal(t,
		"Selection{BestFit: Model{Type: linear, R²: 1.0000, RMSE: 0, Formula: y = 0 + 2 * x}, TotalModels: 1}",
		sel.String())
}

func TestRSquaredAndRMSE(t *testing.T) {
	observed := []float64{1, 2, 3, 4}
	predicted := []float64{1, 2, 3, 5}

	// SS_tot = 5, SS_res = 1
	require.InDelta(t, 0.8, calculateRSquared(observed, predicted), 1e-15)
	require.InDelta(t, 0.5, calculateRMSE(observed, predicted), 1e-15)
	require.Equal(t, 0.0, calculateRSquared([]float64{2, 2, 2}, []float64{1, 2, 3}))
}
