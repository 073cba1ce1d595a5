package quadrature

import "sync"

// Rule approximates the value of a definite integral.
type Rule interface {
	Solve(di *DefiniteIntegral) (float64, error)
}

// Summation is the rule-specific part of a solve: given the integrand f,
// the limits [a, b], the step size h and the iteration count n, it returns
// the approximation.
type Summation func(f Func, a, b, h float64, n int) float64

// StepSize returns h = (b - a) / iterations for the integral's current limits.
// A zero iteration count divides by zero; rules reject it before getting here.
func StepSize(di *DefiniteIntegral, iterations int) float64 {
	lower, upper := di.Limits()
	return stepSize(lower, upper, iterations)
}

func stepSize(lower, upper float64, iterations int) float64 {
	return (upper - lower) / float64(iterations)
}

// engine carries the state every rule shares: the iteration count.
// The step size is derived per Solve and never stored.
type engine struct {
	mu         sync.RWMutex
	iterations int
}

// Iterations returns the current iteration count.
func (e *engine) Iterations() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.iterations
}

// update stores n once validate accepts it.
func (e *engine) update(n int, validate func(int) error) error {
	if err := validate(n); err != nil {
		return err
	}

	e.mu.Lock()
	e.iterations = n
	e.mu.Unlock()
	return nil
}

// solve computes the step size for di and hands the work to sum.
// The read lock keeps SetIterations from changing n mid-summation.
func (e *engine) solve(di *DefiniteIntegral, sum Summation) (float64, error) {
	if di == nil {
		return 0, ErrNilIntegral
	}

	fn, lower, upper := di.snapshot()
	if fn == nil {
		return 0, ErrNoFunction
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	h := stepSize(lower, upper, e.iterations)
	return sum(fn, lower, upper, h, e.iterations), nil
}

// CustomRule runs a caller-supplied Summation on the shared engine.
type CustomRule struct {
	engine
	sum Summation
}

// NewCustomRule creates a rule from sum. The iteration count must be positive.
func NewCustomRule(iterations int, sum Summation) (*CustomRule, error) {
	r := &CustomRule{sum: sum}
	if err := r.SetIterations(iterations); err != nil {
		return nil, err
	}
	return r, nil
}

// SetIterations changes the iteration count.
func (r *CustomRule) SetIterations(n int) error {
	return r.update(n, positiveIterations)
}

// Solve implements Rule.
func (r *CustomRule) Solve(di *DefiniteIntegral) (float64, error) {
	return r.solve(di, r.sum)
}

func positiveIterations(n int) error {
	if n < 1 {
		return &IterationError{Iterations: n}
	}
	return nil
}
