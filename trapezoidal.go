package quadrature

// TrapezoidalRule is the composite trapezoidal rule:
//
//	∫f ≈ h/2 · (f(a) + 2·Σ_{i=1}^{n-1} f(a+ih) + f(b))
//
// The error shrinks as O(h²) for smooth integrands.
type TrapezoidalRule struct {
	engine
}

// NewTrapezoidalRule creates a trapezoidal rule with n subintervals.
func NewTrapezoidalRule(iterations int) (*TrapezoidalRule, error) {
	r := &TrapezoidalRule{}
	if err := r.SetIterations(iterations); err != nil {
		return nil, err
	}
	return r, nil
}

// SetIterations changes the number of subintervals. n must be positive.
func (r *TrapezoidalRule) SetIterations(n int) error {
	return r.update(n, positiveIterations)
}

// Solve implements Rule.
func (r *TrapezoidalRule) Solve(di *DefiniteIntegral) (float64, error) {
	return r.solve(di, trapezoidalSum)
}

func trapezoidalSum(f Func, a, b, h float64, n int) float64 {
	var sum float64
	for i := 1; i <= n-1; i++ {
		sum += 2 * f(a+float64(i)*h)
	}
	return h / 2 * (f(a) + sum + f(b))
}
