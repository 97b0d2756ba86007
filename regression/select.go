package regression

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/internal/compensated"
)

// linearization maps a model onto a straight line: the data is transformed
// with forward, fitted with Fit, and the line's intercept and slope are
// mapped back to the curve coefficients [a, b].
type linearization struct {
	forward func(x, y float64) (float64, float64, bool)
	back    func(intercept, slope float64) (a, b float64)
}

func identityBack(intercept, slope float64) (float64, float64) {
	return intercept, slope
}

func expBack(intercept, slope float64) (float64, float64) {
	return math.Exp(intercept), slope
}

var linearizations = map[ModelType]linearization{
	ModelTypeLinear: {
		forward: func(x, y float64) (float64, float64, bool) { return x, y, true },
		back:    identityBack,
	},
	ModelTypeHyperbolic: {
		forward: func(x, y float64) (float64, float64, bool) { return 1 / x, y, x != 0 },
		back:    identityBack,
	},
	ModelTypeLogarithmic: {
		forward: func(x, y float64) (float64, float64, bool) { return math.Log(x), y, x > 0 },
		back:    identityBack,
	},
	ModelTypePower: {
		forward: func(x, y float64) (float64, float64, bool) { return math.Log(x), math.Log(y), x > 0 && y > 0 },
		back:    expBack,
	},
	ModelTypeExponential: {
		forward: func(x, y float64) (float64, float64, bool) { return x, math.Log(y), y > 0 },
		back:    expBack,
	},
}

var errOutsideDomain = errors.New("data outside model domain")

// SelectModel fits each requested model type to the data and ranks them.
//
// Each model is linearized (for example ln(y) = ln(a) + b·ln(x) for the power
// model), fitted with Fit, and scored on the original scale by R² and RMSE.
// Models whose domain excludes some of the data, such as logarithmic with
// x <= 0, are listed in Selection.Skipped. With no types given, all five are
// tried.
//
// Parameters:
//   - x: Independent variable
//   - y: Dependent variable
//   - types: Model types to try (default AllModelTypes)
//
// Returns:
//   - *Selection: Fitted models ranked by R² (best first)
//   - error: Length mismatch, fewer than 3 points, or no model fits the data
//
// Example:
//
//	sel, err := regression.SelectModel(ppm, bpp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sel.BestFit.Formula)
func SelectModel(x, y []float64, types ...ModelType) (*Selection, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values vs %d y values", errs.ErrLengthMismatch, len(x), len(y))
	}

	if len(x) < 3 {
		return nil, fmt.Errorf("%w: model selection needs at least 3 points, got %d", errs.ErrInsufficientSamples, len(x))
	}

	if len(types) == 0 {
		types = AllModelTypes
	}

	sel := &Selection{}
	for _, mt := range types {
		model, err := fitModel(mt, x, y)
		if errors.Is(err, errOutsideDomain) {
			sel.Skipped = append(sel.Skipped, mt)
			continue
		}
		if err != nil {
			return nil, err
		}

		sel.AllModels = append(sel.AllModels, model)
	}

	if len(sel.AllModels) == 0 {
		return nil, fmt.Errorf("no model fits the data (skipped: %v)", sel.Skipped)
	}

	slices.SortStableFunc(sel.AllModels, func(a, b *Model) int {
		if c := cmp.Compare(b.RSquared, a.RSquared); c != 0 {
			return c
		}

		return cmp.Compare(a.RMSE, b.RMSE)
	})
	sel.BestFit = sel.AllModels[0]

	return sel, nil
}

func fitModel(mt ModelType, x, y []float64) (*Model, error) {
	lin, ok := linearizations[mt]
	if !ok {
		return nil, fmt.Errorf("unknown model type: %d", int(mt))
	}

	tx := make([]float64, len(x))
	ty := make([]float64, len(y))
	for i := range x {
		var inDomain bool
		tx[i], ty[i], inDomain = lin.forward(x[i], y[i])
		if !inDomain {
			return nil, errOutsideDomain
		}
	}

	line := FitSlices(tx, ty)
	a, b := lin.back(line.Intercept(), line.Slope())
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return nil, errOutsideDomain
	}

	c := newEmptyCurve(mt)
	if err := c.SetCoefficients([]float64{a, b}); err != nil {
		return nil, err
	}

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = c.At(x[i])
	}

	return &Model{
		Type:         mt,
		Coefficients: c.Coefficients(),
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      formula(mt, a, b),
		Curve:        c,
		Linearized:   line,
	}, nil
}

func formula(mt ModelType, a, b float64) string {
	switch mt {
	case ModelTypeHyperbolic:
		return fmt.Sprintf("y = %.4g + %.4g / x", a, b)
	case ModelTypeLogarithmic:
		return fmt.Sprintf("y = %.4g + %.4g * ln(x)", a, b)
	case ModelTypePower:
		return fmt.Sprintf("y = %.4g * x^%.4g", a, b)
	case ModelTypeExponential:
		return fmt.Sprintf("y = %.4g * e^(%.4g * x)", a, b)
	default:
		return fmt.Sprintf("y = %.4g + %.4g * x", a, b)
	}
}

// calculateRSquared returns 1 - SS_res/SS_tot, or 0 when y is constant.
func calculateRSquared(observed, predicted []float64) float64 {
	var sum compensated.Sum[float64]
	for _, v := range observed {
		sum.Add(v)
	}
	mean := sum.Result() / float64(len(observed))

	var ssTot, ssRes compensated.Sum[float64]
	for i := range observed {
		dev := observed[i] - mean
		res := observed[i] - predicted[i]
		ssTot.Add(dev * dev)
		ssRes.Add(res * res)
	}

	if ssTot.Result() == 0 {
		return 0
	}

	return 1 - ssRes.Result()/ssTot.Result()
}

// calculateRMSE returns √(Σ(observed - predicted)² / n).
func calculateRMSE(observed, predicted []float64) float64 {
	var sumSq compensated.Sum[float64]
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq.Add(diff * diff)
	}

	return math.Sqrt(sumSq.Result() / float64(len(observed)))
}
