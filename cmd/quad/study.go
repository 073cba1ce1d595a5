package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexshd/quadrature"
	"github.com/alexshd/quadrature/chart"
	"github.com/alexshd/quadrature/integrand"
)

var studyExample = `# compare every rule on the integral of sin over [0, pi]
%[1]s study 'sin(x)' 0 pi --reference 2

# only Simpson's 3/8 rule, at custom levels, with a chart
%[1]s study 'exp(x)' 0 1 --reference 'e-1' --rules simpson:3/8 --levels 3,6,12,24 --plot exp.svg
`

var defaultStudyRules = []string{
	quadrature.RuleTrapezoidal,
	quadrature.RuleSimpson + ":" + quadrature.Main.String(),
	quadrature.RuleSimpson + ":" + quadrature.ThreeEighths.String(),
}

// StudyFlags are the flags only study takes.
type StudyFlags struct {
	Reference string
	Rules     []string
	Plot      string
}

// StudyOpts holds one integral, its reference value and the rules to compare.
type StudyOpts struct {
	Expression string
	Lower      string
	Upper      string
	Reference  float64
	Rules      []string
	Plot       string

	settings  *settings
	integral  *quadrature.DefiniteIntegral
	factories []quadrature.RuleFactory
	memo      *quadrature.Memo

	Out io.Writer
}

// ToOptions copies the flags into a fresh StudyOpts.
func (f *StudyFlags) ToOptions(s *settings, out io.Writer) *StudyOpts {
	return &StudyOpts{
		Rules:    f.Rules,
		Plot:     f.Plot,
		settings: s,
		Out:      out,
	}
}

// NewCmdStudy returns the study subcommand.
func NewCmdStudy(parent string, s *settings, out io.Writer) *cobra.Command {
	flags := &StudyFlags{Rules: defaultStudyRules}

	cmd := &cobra.Command{
		Use:   "study EXPRESSION LOWER UPPER --reference VALUE",
		Short: "Measure how fast each rule converges on one integral",
		Long: `Solve one integral at every level in --levels with each rule in --rules,
compare against the known --reference value and fit the order of
convergence p in |error| ≈ C·h^p.`,
		Example: fmt.Sprintf(studyExample, parent),
		Args:    cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			opts := flags.ToOptions(s, out)

			if err := opts.Complete(args, flags.Reference); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return opts.Run(c.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Reference, "reference", "", "exact value of the integral, as a constant expression")
	cmd.Flags().StringSliceVar(&flags.Rules, "rules", flags.Rules, "rules to study: trapezoidal, simpson[:main|:three-eighths]")
	cmd.Flags().StringVar(&flags.Plot, "plot", "", "write a log-log convergence chart to this file (png, svg, pdf, ...)")
	_ = cmd.MarkFlagRequired("reference")
	return cmd
}

// Complete evaluates the reference, compiles the integral and resolves
// every rule. With memoization on, the integrand is wrapped in a Memo
// shared by all rules and levels.
func (o *StudyOpts) Complete(args []string, reference string) error {
	o.Expression, o.Lower, o.Upper = args[0], args[1], args[2]

	var err error
	if o.Reference, err = integrand.Constant(reference); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	if o.integral, err = compileIntegral(o.Expression, o.Lower, o.Upper); err != nil {
		return err
	}

	if o.settings.Memoize {
		o.memo = quadrature.Memoize(o.integral.Function(), quadrature.DefaultMemoConfig())
		o.integral.SetFunction(o.memo.Func())
	}

	o.factories = make([]quadrature.RuleFactory, len(o.Rules))
	for i, name := range o.Rules {
		if o.factories[i], err = parseRuleSpec(name); err != nil {
			return fmt.Errorf("rule %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks the rule list and the chart file name.
func (o *StudyOpts) Validate() error {
	if len(o.Rules) == 0 {
		return errors.New("at least one rule must be given with --rules")
	}
	if o.Plot != "" && plotFormat(o.Plot) == "" {
		return fmt.Errorf("can't tell the chart format of %q", o.Plot)
	}
	return nil
}

// Run studies each rule in turn, fits its order of convergence and
// optionally draws the chart.
func (o *StudyOpts) Run(ctx context.Context) error {
	cfg := quadrature.StudyConfig{
		Levels:  o.settings.Levels,
		Workers: o.settings.Workers,
		Logger:  o.settings.Logger,
	}

	studies := make([]study, 0, len(o.factories))
	series := make([]chart.Series, 0, len(o.factories))
	for i, factory := range o.factories {
		samples, err := quadrature.Study(ctx, factory, o.integral, o.Reference, cfg)
		if err != nil {
			return fmt.Errorf("rule %s: %w", o.Rules[i], err)
		}
		for _, sm := range samples {
			if !finite(sm.Value) {
				return fmt.Errorf("rule %s at n=%d: %w", o.Rules[i], sm.Iterations, errNotFinite)
			}
		}

		st := study{Rule: o.Rules[i], Samples: samples}
		if fit, err := quadrature.FitOrder(samples); err != nil {
			o.settings.Logger.Warn("can't fit order of convergence", "rule", o.Rules[i], "err", err)
		} else {
			st.Fit = &fit
		}
		studies = append(studies, st)
		series = append(series, chart.Series{Name: o.Rules[i], Samples: samples})
	}

	if o.memo != nil {
		o.settings.Logger.Debug("integrand cache",
			"hits", o.memo.Hits(),
			"misses", o.memo.Misses(),
			"points", o.memo.Len())
	}

	if o.Plot != "" {
		if err := o.writePlot(series); err != nil {
			return err
		}
		o.settings.Logger.Info("chart written", "file", o.Plot)
	}

	return writeStudies(o.Out, o.settings.Format, studies)
}

func (o *StudyOpts) writePlot(series []chart.Series) error {
	cfg := chart.DefaultConfig()
	cfg.Title = fmt.Sprintf("∫ %s dx on [%s, %s]", o.Expression, o.Lower, o.Upper)
	cfg.Format = plotFormat(o.Plot)

	p, err := chart.Convergence(series, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(o.Plot)
	if err != nil {
		return err
	}
	if err := chart.Write(f, p, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func plotFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// parseRuleSpec reads NAME[:COMPOSITE], e.g. "simpson:3/8".
func parseRuleSpec(s string) (quadrature.RuleFactory, error) {
	name, variant, _ := strings.Cut(s, ":")

	composite := quadrature.CompositeUnspecified
	if variant != "" {
		var err error
		if composite, err = quadrature.ParseComposite(variant); err != nil {
			return nil, err
		}
	}
	return quadrature.NamedFactory(name, composite)
}
