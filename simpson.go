package quadrature

import (
	"fmt"
	"strings"

	"github.com/alexshd/quadrature/mathutil"
)

// Composite selects the Simpson's variant.
type Composite uint8

const (
	CompositeUnspecified Composite = iota // Rejected by NewSimpsonsRuleComposite
	Main                                  // Simpson's 1/3 rule, n divisible by 2
	ThreeEighths                          // Simpson's 3/8 rule, n divisible by 3
)

// coefficients are the data that distinguish the variants.
type coefficients struct {
	name    string
	modulus int                     // n must be a multiple of this
	inner   float64                 // weight where i mod modulus ≠ 0
	joint   float64                 // weight where i mod modulus == 0
	scale   func(h float64) float64 // overall multiplier
}

var composites = [...]coefficients{
	Main: {
		name:    "main",
		modulus: 2,
		inner:   4,
		joint:   2,
		scale:   func(h float64) float64 { return h / 3 },
	},
	ThreeEighths: {
		name:    "three-eighths",
		modulus: 3,
		inner:   3,
		joint:   2,
		scale:   func(h float64) float64 { return 3 * h / 8 },
	},
}

func (c Composite) valid() bool {
	return c != CompositeUnspecified && int(c) < len(composites)
}

// Modulus returns the number the iteration count must be a multiple of,
// zero for an unspecified composite.
func (c Composite) Modulus() int {
	if !c.valid() {
		return 0
	}
	return composites[c].modulus
}

func (c Composite) String() string {
	if !c.valid() {
		return "unspecified"
	}
	return composites[c].name
}

// ParseComposite accepts "main", "1/3", "three-eighths" or "3/8".
func ParseComposite(s string) (Composite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main", "1/3", "one-third":
		return Main, nil
	case "three-eighths", "three_eighths", "3/8":
		return ThreeEighths, nil
	}
	return CompositeUnspecified, fmt.Errorf("%w: %q", ErrMissingComposite, s)
}

// SimpsonsRule is the composite Simpson's rule:
//
//	∫f ≈ k(h) · (f(a) + Σ_{i=1}^{n-1} w_i·f(a+ih) + f(b))
//
// where w_i and k(h) come from the Composite (4,2 and h/3 for Main;
// 3,2 and 3h/8 for ThreeEighths). The error shrinks as O(h⁴).
type SimpsonsRule struct {
	engine
	composite Composite
}

// NewSimpsonsRule creates a Simpson's 1/3 rule. iterations must be even.
func NewSimpsonsRule(iterations int) (*SimpsonsRule, error) {
	return NewSimpsonsRuleComposite(iterations, Main)
}

// NewSimpsonsRuleComposite creates a Simpson's rule of the given variant.
func NewSimpsonsRuleComposite(iterations int, c Composite) (*SimpsonsRule, error) {
	if !c.valid() {
		return nil, ErrMissingComposite
	}

	r := &SimpsonsRule{composite: c}
	if err := r.SetIterations(iterations); err != nil {
		return nil, err
	}
	return r, nil
}

// Composite returns the variant fixed at construction.
func (r *SimpsonsRule) Composite() Composite {
	return r.composite
}

// SetIterations changes the iteration count. A count that isn't a positive
// multiple of the composite's modulus is rejected and the old one kept.
func (r *SimpsonsRule) SetIterations(n int) error {
	return r.update(n, r.validateIterations)
}

func (r *SimpsonsRule) validateIterations(n int) error {
	if n < 1 {
		return &IterationError{Iterations: n}
	}

	modulus := r.composite.Modulus()
	if !mathutil.IsMultiple(n, modulus) {
		return &IterationError{Iterations: n, Modulus: modulus}
	}
	return nil
}

// Solve implements Rule.
func (r *SimpsonsRule) Solve(di *DefiniteIntegral) (float64, error) {
	return r.solve(di, composites[r.composite].sum)
}

func (c coefficients) sum(f Func, a, b, h float64, n int) float64 {
	var sum float64
	for i := 1; i <= n-1; i++ {
		w := c.inner
		if i%c.modulus == 0 {
			w = c.joint
		}
		sum += w * f(a+float64(i)*h)
	}
	return c.scale(h) * (f(a) + sum + f(b))
}
