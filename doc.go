// Package quadrature approximates definite integrals of real functions of
// one variable with composite Newton-Cotes rules.
//
// # Overview
//
// An integral and a rule are separate values, combined only when solving:
//
//   - DefiniteIntegral - an integrand f plus a closed interval [a, b], a ≤ b
//   - Rule             - anything that can Solve a DefiniteIntegral
//   - TrapezoidalRule  - composite trapezoidal rule, error O(h²)
//   - SimpsonsRule     - composite Simpson's 1/3 (Main) or 3/8 (ThreeEighths), error O(h⁴)
//   - CustomRule       - the shared engine driving a caller-supplied Summation
//
// Every rule divides [a, b] into n subintervals of width
//
//	h = (b - a) / n
//
// recomputed on each Solve from the integral's current limits, so one rule
// can solve any number of integrals.
//
// # Quick Start
//
//	di, err := quadrature.NewDefiniteIntegral(func(x float64) float64 {
//	    return 1 / (x + 1)
//	}, 2, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rule, err := quadrature.NewSimpsonsRule(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := rule.Solve(di) // ≈ 0.2876831 = ln(4/3)
//
// # Simpson's Variants
//
// Simpson's rule weighs interior points by their index i:
//
//	Main:          w_i = 2 if i mod 2 == 0 else 4, result = h/3  · (f(a) + Σ w_i·f(a+ih) + f(b))
//	ThreeEighths:  w_i = 2 if i mod 3 == 0 else 3, result = 3h/8 · (f(a) + Σ w_i·f(a+ih) + f(b))
//
// n must be a multiple of 2 (Main) or 3 (ThreeEighths). Rules reject an
// invalid count at construction and on SetIterations, keeping the previous
// count in the latter case.
//
// # Convergence Studies
//
// Study solves one integral over several iteration counts and FitOrder
// recovers the order p in |error| ≈ C·h^p:
//
//	samples, err := quadrature.Study(ctx, factory, di, math.Log(4.0/3.0), quadrature.DefaultStudyConfig())
//	fit, err := quadrature.FitOrder(samples) // fit.Order ≈ 4 for Simpson's
//
// # Testing
//
// Use assertions to validate convergence properties:
//
//	func TestMyIntegrand(t *testing.T) {
//	    samples, _ := quadrature.Study(ctx, factory, di, exact, quadrature.DefaultStudyConfig())
//
//	    quadrature.AssertConverges(t, samples, quadrature.DefaultAssertionConfig())
//	    quadrature.AssertOrder(t, samples, 2, quadrature.DefaultAssertionConfig())
//	}
//
// # Concurrency
//
// Rules and integrals guard their fields with read-write locks. Solve only
// reads, so concurrent solves are safe; setters wait for in-flight solves.
// SolveJobs runs a batch of rule/integral pairs on a worker pool.
package quadrature
