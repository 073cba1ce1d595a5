package quadrature

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval indicates a lower limit greater than the upper limit
	// or a limit that isn't a finite number.
	ErrInvalidInterval = errors.New("quadrature: limits must be finite with lower ≤ upper")

	// ErrInvalidIterations indicates an iteration count a rule can't work with.
	ErrInvalidIterations = errors.New("quadrature: invalid number of iterations")

	// ErrMissingComposite indicates a Simpson's rule built without a composite variant.
	ErrMissingComposite = errors.New("quadrature: composite can't be unspecified")

	// ErrNilIntegral indicates Solve was called without an integral.
	ErrNilIntegral = errors.New("quadrature: nil integral")

	// ErrNoFunction indicates an integral that carries no integrand.
	ErrNoFunction = errors.New("quadrature: integral has no function")

	// ErrNilRule indicates a batch job without a rule.
	ErrNilRule = errors.New("quadrature: nil rule")

	// ErrUnknownRule indicates a rule name NewNamedRule doesn't know.
	ErrUnknownRule = errors.New("quadrature: unknown rule")
)

// IntervalError reports the rejected pair of limits.
type IntervalError struct {
	Lower float64
	Upper float64
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("%v: [%g, %g]", ErrInvalidInterval, e.Lower, e.Upper)
}

func (e *IntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// IterationError reports an iteration count rejected by a rule.
// Modulus is zero when the count was rejected for not being positive.
type IterationError struct {
	Iterations int
	Modulus    int
}

func (e *IterationError) Error() string {
	if e.Modulus > 0 {
		return fmt.Sprintf("%v: %d is not a multiple of %d", ErrInvalidIterations, e.Iterations, e.Modulus)
	}
	return fmt.Sprintf("%v: %d must be positive", ErrInvalidIterations, e.Iterations)
}

func (e *IterationError) Unwrap() error {
	return ErrInvalidIterations
}
