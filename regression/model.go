package regression

import "fmt"

// Model is one fitted curve together with its goodness of fit on the original
// (untransformed) scale.
type Model struct {
	// Type is the functional form.
	Type ModelType
	// Coefficients are [a, b] of the curve.
	Coefficients []float64
	// RSquared is 1 - SS_res/SS_tot on the original scale (higher is better).
	RSquared float64
	// RMSE is the root mean square residual on the original scale.
	RMSE float64
	// Formula is a human-readable rendering of the curve.
	Formula string
	// Curve evaluates the fitted model.
	Curve Curve
	// Linearized is the straight-line fit in the transformed coordinates. Its
	// slope and intercept estimates carry the coefficient uncertainties.
	Linearized Result[float64]
}

// String returns a one-line summary of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4g, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Selection is the outcome of SelectModel.
type Selection struct {
	// BestFit is the model with the highest R².
	BestFit *Model
	// AllModels holds every model that could be fitted, best first.
	AllModels []*Model
	// Skipped lists the requested models whose domain excluded the data.
	Skipped []ModelType
}

// String returns a one-line summary of the selection.
func (s *Selection) String() string {
	if s.BestFit == nil {
		return "Selection{BestFit: nil}"
	}

	return fmt.Sprintf("Selection{BestFit: %s, TotalModels: %d}", s.BestFit, len(s.AllModels))
}

// Model returns the fitted model of the given type, or nil if it was skipped
// or not requested.
func (s *Selection) Model(mt ModelType) *Model {
	for _, m := range s.AllModels {
		if m.Type == mt {
			return m
		}
	}

	return nil
}
