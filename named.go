package quadrature

import (
	"fmt"
	"strings"
)

// Rule names accepted by NewNamedRule.
const (
	RuleTrapezoidal = "trapezoidal"
	RuleSimpson     = "simpson"
)

// RuleFactory builds a rule for a given iteration count.
type RuleFactory func(iterations int) (Rule, error)

// NewNamedRule builds the rule called name. The composite only matters
// for Simpson's rule; CompositeUnspecified falls back to Main there.
func NewNamedRule(name string, iterations int, c Composite) (Rule, error) {
	factory, err := NamedFactory(name, c)
	if err != nil {
		return nil, err
	}
	return factory(iterations)
}

// NamedFactory returns a RuleFactory for the rule called name.
func NamedFactory(name string, c Composite) (RuleFactory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RuleTrapezoidal, "trapezoid":
		return func(n int) (Rule, error) {
			r, err := NewTrapezoidalRule(n)
			if err != nil {
				return nil, err
			}
			return r, nil
		}, nil
	case RuleSimpson, "simpsons":
		if c == CompositeUnspecified {
			c = Main
		}
		return func(n int) (Rule, error) {
			r, err := NewSimpsonsRuleComposite(n, c)
			if err != nil {
				return nil, err
			}
			return r, nil
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}
