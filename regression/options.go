package regression

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/internal/options"
)

// fitConfig holds the optional inputs of Fit.
type fitConfig[T constraints.Float] struct {
	knownVariance T
}

func defaultFitConfig[T constraints.Float]() fitConfig[T] {
	return fitConfig[T]{knownVariance: T(math.NaN())}
}

// Option is a functional option for Fit.
type Option[T constraints.Float] = options.Option[*fitConfig[T]]

// WithKnownVariance supplies the variance of the y measurements when it is
// known independently of the fit, for example from repeated measurements of
// each point. The slope and intercept uncertainties are then derived from it
// instead of from the residual variance.
//
// NaN means "not known" and leaves the residual variance in use. A negative
// variance makes Fit panic with an error wrapping errs.ErrNegativeVariance.
func WithKnownVariance[T constraints.Float](v T) Option[T] {
	return options.New(func(cfg *fitConfig[T]) error {
		if v < 0 {
			return errs.ErrNegativeVariance
		}
		cfg.knownVariance = v

		return nil
	})
}
