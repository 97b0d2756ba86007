package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType identifies the functional form of a curve.
type ModelType int

const (
	// ModelTypeLinear is y = a + b·x
	ModelTypeLinear ModelType = iota
	// ModelTypeHyperbolic is y = a + b/x
	ModelTypeHyperbolic
	// ModelTypeLogarithmic is y = a + b·ln(x)
	ModelTypeLogarithmic
	// ModelTypePower is y = a·x^b
	ModelTypePower
	// ModelTypeExponential is y = a·e^(b·x)
	ModelTypeExponential
)

// AllModelTypes lists every model type in declaration order.
var AllModelTypes = []ModelType{
	ModelTypeLinear,
	ModelTypeHyperbolic,
	ModelTypeLogarithmic,
	ModelTypePower,
	ModelTypeExponential,
}

var modelTypeNames = map[ModelType]string{
	ModelTypeLinear:      "linear",
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
	ModelTypeExponential: "exponential",
}

// String returns the lower-case name of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

var modelTypeFromString = map[string]ModelType{
	"linear":      ModelTypeLinear,
	"hyperbolic":  ModelTypeHyperbolic,
	"logarithmic": ModelTypeLogarithmic,
	"power":       ModelTypePower,
	"exponential": ModelTypeExponential,
}

// ModelTypeFromString returns the ModelType for a case-insensitive name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(strings.TrimSpace(name))]; exists {
		return modelType
	}

	return ModelType(-1)
}

// Curve is a two-coefficient model y = f(x; a, b).
type Curve interface {
	// At evaluates the curve. Points outside the model's domain yield NaN.
	At(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns [a, b].
	Coefficients() []float64
	// SetCoefficients replaces [a, b]. It fails unless exactly two are given.
	SetCoefficients(coeffs []float64) error
}

// curve holds the coefficients shared by all curve implementations.
type curve struct {
	a, b float64
}

func (c *curve) Coefficients() []float64 {
	return []float64{c.a, c.b}
}

func (c *curve) set(mt ModelType, coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%s model expects exactly 2 coefficients, got %d", mt, len(coeffs))
	}
	c.a, c.b = coeffs[0], coeffs[1]

	return nil
}

// LinearCurve implements y = a + b·x
type LinearCurve struct{ curve }

// NewLinearCurve creates a linear curve.
func NewLinearCurve(a, b float64) *LinearCurve {
	return &LinearCurve{curve{a: a, b: b}}
}

// At returns a + b·x.
func (c *LinearCurve) At(x float64) float64 {
	return c.a + c.b*x
}

// Type returns ModelTypeLinear.
func (c *LinearCurve) Type() ModelType {
	return ModelTypeLinear
}

// SetCoefficients updates [a, b].
func (c *LinearCurve) SetCoefficients(coeffs []float64) error {
	return c.set(ModelTypeLinear, coeffs)
}

// HyperbolicCurve implements y = a + b/x
type HyperbolicCurve struct{ curve }

// NewHyperbolicCurve creates a hyperbolic curve.
func NewHyperbolicCurve(a, b float64) *HyperbolicCurve {
	return &HyperbolicCurve{curve{a: a, b: b}}
}

// At returns a + b/x, or NaN at x = 0.
func (c *HyperbolicCurve) At(x float64) float64 {
	if x == 0 {
		return math.NaN()
	}

	return c.a + c.b/x
}

// Type returns ModelTypeHyperbolic.
func (c *HyperbolicCurve) Type() ModelType {
	return ModelTypeHyperbolic
}

// SetCoefficients updates [a, b].
func (c *HyperbolicCurve) SetCoefficients(coeffs []float64) error {
	return c.set(ModelTypeHyperbolic, coeffs)
}

// LogarithmicCurve implements y = a + b·ln(x)
type LogarithmicCurve struct{ curve }

// NewLogarithmicCurve creates a logarithmic curve.
func NewLogarithmicCurve(a, b float64) *LogarithmicCurve {
	return &LogarithmicCurve{curve{a: a, b: b}}
}

// At returns a + b·ln(x), or NaN for x <= 0.
func (c *LogarithmicCurve) At(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}

	return c.a + c.b*math.Log(x)
}

// Type returns ModelTypeLogarithmic.
func (c *LogarithmicCurve) Type() ModelType {
	return ModelTypeLogarithmic
}

// SetCoefficients updates [a, b].
func (c *LogarithmicCurve) SetCoefficients(coeffs []float64) error {
	return c.set(ModelTypeLogarithmic, coeffs)
}

// PowerCurve implements y = a·x^b
type PowerCurve struct{ curve }

// NewPowerCurve creates a power curve.
func NewPowerCurve(a, b float64) *PowerCurve {
	return &PowerCurve{curve{a: a, b: b}}
}

// At returns a·x^b, or NaN for x <= 0.
func (c *PowerCurve) At(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}

	return c.a * math.Pow(x, c.b)
}

// Type returns ModelTypePower.
func (c *PowerCurve) Type() ModelType {
	return ModelTypePower
}

// SetCoefficients updates [a, b].
func (c *PowerCurve) SetCoefficients(coeffs []float64) error {
	return c.set(ModelTypePower, coeffs)
}

// ExponentialCurve implements y = a·e^(b·x)
type ExponentialCurve struct{ curve }

// NewExponentialCurve creates an exponential curve.
func NewExponentialCurve(a, b float64) *ExponentialCurve {
	return &ExponentialCurve{curve{a: a, b: b}}
}

// At returns a·e^(b·x).
func (c *ExponentialCurve) At(x float64) float64 {
	return c.a * math.Exp(c.b*x)
}

// Type returns ModelTypeExponential.
func (c *ExponentialCurve) Type() ModelType {
	return ModelTypeExponential
}

// SetCoefficients updates [a, b].
func (c *ExponentialCurve) SetCoefficients(coeffs []float64) error {
	return c.set(ModelTypeExponential, coeffs)
}

func newEmptyCurve(modelType ModelType) Curve {
	switch modelType {
	case ModelTypeLinear:
		return NewLinearCurve(0, 0)
	case ModelTypeHyperbolic:
		return NewHyperbolicCurve(0, 0)
	case ModelTypeLogarithmic:
		return NewLogarithmicCurve(0, 0)
	case ModelTypePower:
		return NewPowerCurve(0, 0)
	case ModelTypeExponential:
		return NewExponentialCurve(0, 0)
	default:
		return nil
	}
}

// NewCurve creates a curve by model name and coefficients.
//
// Parameters:
//   - name: Model name, case-insensitive: linear, hyperbolic, logarithmic,
//     power or exponential
//   - coeffs: The two coefficients [a, b]
//
// Returns:
//   - Curve: The created curve
//   - error: Unknown name or wrong number of coefficients
//
// Example:
//
//	c, err := regression.NewCurve("power", []float64{2.0, 0.5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := c.At(16) // 8
func NewCurve(name string, coeffs []float64) (Curve, error) {
	c := newEmptyCurve(ModelTypeFromString(name))
	if c == nil {
		supported := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			supported = append(supported, n)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supported, ", "))
	}

	if err := c.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return c, nil
}
