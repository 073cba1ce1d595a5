package quadrature

import (
	"fmt"
	"math"
	"testing"
)

// AssertionConfig contains thresholds for convergence properties.
type AssertionConfig struct {
	// Allowed deviation of the fitted order from the expected one
	OrderTolerance float64

	// Minimum R² for the log-log fit
	MinRSquared float64

	// Slack when checking that errors never grow (relative to the
	// previous error); absorbs rounding once errors reach ~1e-15
	Slack float64
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		OrderTolerance: 0.2,  // p within ±0.2
		MinRSquared:    0.99, // 99% model fit
		Slack:          1e-9,
	}
}

// AssertApprox verifies |got - want| ≤ tolerance.
func AssertApprox(t *testing.T, got, want, tolerance float64) {
	t.Helper()

	if math.IsNaN(got) || math.Abs(got-want) > tolerance {
		t.Errorf("Approximation off: got %.10f, want %.10f ± %g (diff %g)",
			got, want, tolerance, math.Abs(got-want))
	}
}

// AssertConverges verifies the error never grows as n increases.
//
// Mathematical property:
//
//	|E(n₂)| ≤ |E(n₁)| for n₁ < n₂
func AssertConverges(t *testing.T, samples []Sample, cfg AssertionConfig) {
	t.Helper()

	if len(samples) < 2 {
		t.Fatalf("Need at least 2 samples to check convergence, got %d", len(samples))
	}

	var failures []string
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if curr.AbsError > prev.AbsError*(1+cfg.Slack)+math.SmallestNonzeroFloat64 {
			failures = append(failures, fmt.Sprintf(
				"  n=%d→%d: error %.3e → %.3e (grew!)",
				prev.Iterations, curr.Iterations, prev.AbsError, curr.AbsError))
		}
	}

	if len(failures) > 0 {
		t.Errorf("Approximation does not converge:\n%s", failures)
	}
}

// AssertOrder verifies the fitted order of convergence.
//
// Mathematical property:
//
//	|E(h)| ≈ C·h^p, p = 2 (trapezoidal), p = 4 (Simpson's)
func AssertOrder(t *testing.T, samples []Sample, want float64, cfg AssertionConfig) {
	t.Helper()

	fit, err := FitOrder(samples)
	if err != nil {
		t.Fatalf("Failed to fit convergence order: %v", err)
	}

	if math.Abs(fit.Order-want) > cfg.OrderTolerance {
		t.Errorf("Order of convergence off: p = %.3f (want %.1f ± %.2f)",
			fit.Order, want, cfg.OrderTolerance)
	}

	if fit.RSquared < cfg.MinRSquared {
		t.Errorf("Poor model fit: R² = %.4f (min: %.4f)\n"+
			"Errors don't follow a power law. Check for rounding at high n.",
			fit.RSquared, cfg.MinRSquared)
	}

	t.Logf("✓ Order of convergence: p = %.3f (C = %.3e, R² = %.4f)", fit.Order, fit.Constant, fit.RSquared)
}

// PrintStudy outputs a convergence table to the test log.
func PrintStudy(t *testing.T, samples []Sample) {
	t.Helper()

	t.Logf("\n=== Convergence Study ===")
	t.Logf("  n       h             value              |error|     evals")
	t.Logf("  ------  ------------  -----------------  ----------  -----")
	for _, s := range samples {
		t.Logf("  %-6d  %12.6e  %17.12f  %10.3e  %5d",
			s.Iterations, s.StepSize, s.Value, s.AbsError, s.Evaluations)
	}

	if fit, err := FitOrder(samples); err == nil {
		t.Logf("\nFitted order: p = %.3f, R² = %.4f", fit.Order, fit.RSquared)
	}
}
