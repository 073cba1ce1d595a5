package quadrature

import (
	"math"
	"sync"
)

// Func is a single-argument real integrand.
// It must be pure: the engine may call it from several goroutines.
type Func func(x float64) float64

// DefiniteIntegral bundles an integrand with a closed interval [a, b].
// Both limits are finite and a ≤ b after every successful constructor or
// setter call; a failed call leaves the previous limits in place.
type DefiniteIntegral struct {
	mu    sync.RWMutex
	fn    Func    // May be nil when only the interval is of interest
	lower float64 // a
	upper float64 // b
}

// NewDefiniteIntegral creates the integral of fn over [lower, upper].
func NewDefiniteIntegral(fn Func, lower, upper float64) (*DefiniteIntegral, error) {
	if err := validateLimits(lower, upper); err != nil {
		return nil, err
	}
	return &DefiniteIntegral{fn: fn, lower: lower, upper: upper}, nil
}

func validateLimits(lower, upper float64) error {
	if !finite(lower) || !finite(upper) || lower > upper {
		return &IntervalError{Lower: lower, Upper: upper}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Function returns the integrand, possibly nil.
func (d *DefiniteIntegral) Function() Func {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fn
}

// SetFunction replaces the integrand.
func (d *DefiniteIntegral) SetFunction(fn Func) {
	d.mu.Lock()
	d.fn = fn
	d.mu.Unlock()
}

// Lower returns a.
func (d *DefiniteIntegral) Lower() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lower
}

// Upper returns b.
func (d *DefiniteIntegral) Upper() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.upper
}

// Limits returns a and b read together.
func (d *DefiniteIntegral) Limits() (lower, upper float64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lower, d.upper
}

// Width returns b - a.
func (d *DefiniteIntegral) Width() float64 {
	lower, upper := d.Limits()
	return upper - lower
}

// SetLower moves a. It fails if the new value exceeds the current b.
func (d *DefiniteIntegral) SetLower(lower float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateLimits(lower, d.upper); err != nil {
		return err
	}
	d.lower = lower
	return nil
}

// SetUpper moves b. It fails if the current a exceeds the new value.
func (d *DefiniteIntegral) SetUpper(upper float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateLimits(d.lower, upper); err != nil {
		return err
	}
	d.upper = upper
	return nil
}

// SetInterval replaces both limits at once.
//
// Use it when moving to an interval that one of the single-field setters
// would reject against the old opposite limit, e.g. [0, 1] → [2, 3].
func (d *DefiniteIntegral) SetInterval(lower, upper float64) error {
	if err := validateLimits(lower, upper); err != nil {
		return err
	}

	d.mu.Lock()
	d.lower, d.upper = lower, upper
	d.mu.Unlock()
	return nil
}

// Clone returns an independent integral sharing the same Func.
func (d *DefiniteIntegral) Clone() *DefiniteIntegral {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return &DefiniteIntegral{fn: d.fn, lower: d.lower, upper: d.upper}
}

// snapshot reads everything a solve needs under one lock.
func (d *DefiniteIntegral) snapshot() (fn Func, lower, upper float64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fn, d.lower, d.upper
}
