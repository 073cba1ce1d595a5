package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexshd/quadrature"
	"github.com/alexshd/quadrature/integrand"
)

var solveExample = `# integrate 1/(x+1) over [2, 3] with Simpson's 1/3 rule and 10 subintervals
%[1]s solve '1/(x+1)' 2 3 -n 10

# the same with the trapezoidal rule, as JSON
%[1]s solve '1/(x+1)' 2 3 -n 10 --rule trapezoidal -o json

# limits may be constant expressions
%[1]s solve 'sin(x)' 0 pi/2 --composite 3/8 -n 30
`

// errNotFinite reports an approximation that came out NaN or infinite,
// usually because the integrand isn't defined everywhere on the interval.
var errNotFinite = errors.New("approximation is not finite")

// SolveOpts holds one integral and the rule to solve it with.
type SolveOpts struct {
	Expression string
	Lower      string
	Upper      string

	settings *settings
	integral *quadrature.DefiniteIntegral
	rule     quadrature.Rule

	Out io.Writer
}

// NewCmdSolve returns the solve subcommand.
func NewCmdSolve(parent string, s *settings, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "solve EXPRESSION LOWER UPPER",
		Short:   "Approximate one definite integral",
		Example: fmt.Sprintf(solveExample, parent),
		Args:    cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			opts := &SolveOpts{settings: s, Out: out}

			if err := opts.Complete(args); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return opts.Run(c.Context())
		},
	}
	return cmd
}

// Complete compiles the integral and builds the configured rule.
func (o *SolveOpts) Complete(args []string) error {
	o.Expression, o.Lower, o.Upper = args[0], args[1], args[2]

	var err error
	if o.integral, err = compileIntegral(o.Expression, o.Lower, o.Upper); err != nil {
		return err
	}
	if o.rule, err = o.settings.NewRule(); err != nil {
		return err
	}
	return nil
}

// Validate checks that Complete ran.
func (o *SolveOpts) Validate() error {
	if o.integral == nil || o.rule == nil {
		return errors.New("solve: options not completed")
	}
	return nil
}

// Run solves the integral and prints the approximation.
func (o *SolveOpts) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := o.rule.Solve(o.integral)
	if err != nil {
		return err
	}
	if !finite(value) {
		return fmt.Errorf("%w: %s on [%s, %s]", errNotFinite, o.Expression, o.Lower, o.Upper)
	}

	o.settings.Logger.Debug("solved",
		"integrand", o.Expression,
		"rule", o.settings.Rule,
		"iterations", o.settings.Iterations,
		"value", value)

	lower, upper := o.integral.Limits()
	return writeSolutions(o.Out, o.settings.Format, []solution{{
		Integrand:  o.Expression,
		Lower:      lower,
		Upper:      upper,
		Rule:       ruleLabel(o.rule),
		Iterations: o.settings.Iterations,
		StepSize:   quadrature.StepSize(o.integral, o.settings.Iterations),
		Value:      value,
	}})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// compileIntegral builds an integral from an expression and two constant
// expressions for its limits.
func compileIntegral(expression, lower, upper string) (*quadrature.DefiniteIntegral, error) {
	fn, err := integrand.Compile(expression)
	if err != nil {
		return nil, err
	}
	a, err := integrand.Constant(lower)
	if err != nil {
		return nil, fmt.Errorf("lower limit: %w", err)
	}
	b, err := integrand.Constant(upper)
	if err != nil {
		return nil, fmt.Errorf("upper limit: %w", err)
	}
	return quadrature.NewDefiniteIntegral(fn.Func(), a, b)
}

// ruleLabel names a rule the way the --rules flag spells it.
func ruleLabel(rule quadrature.Rule) string {
	switch r := rule.(type) {
	case *quadrature.TrapezoidalRule:
		return quadrature.RuleTrapezoidal
	case *quadrature.SimpsonsRule:
		return quadrature.RuleSimpson + ":" + r.Composite().String()
	default:
		return fmt.Sprintf("%T", rule)
	}
}
