// Package options implements generic functional options.
//
// Library entry points accept variadic options and apply them to a private
// configuration struct:
//
//	type fitConfig struct{ knownVariance float64 }
//	type FitOption = options.Option[*fitConfig]
//
//	func WithKnownVariance(v float64) FitOption {
//		return options.New(func(c *fitConfig) error {
//			if v < 0 {
//				return errs.ErrNegativeVariance
//			}
//			c.knownVariance = v
//			return nil
//		})
//	}
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// MustApply is Apply for callers whose option errors are contract
// violations: it panics with the first error.
func MustApply[T any](target T, opts ...Option[T]) {
	if err := Apply(target, opts...); err != nil {
		panic(err)
	}
}
