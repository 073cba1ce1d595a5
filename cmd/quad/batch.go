package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexshd/quadrature"
	"github.com/alexshd/quadrature/internal/jobs"
)

var batchExample = `# solve every integral listed in a file
%[1]s batch integrals.yaml

# jobs without their own rule settings use the flags
%[1]s batch integrals.yaml --rule trapezoidal -n 256 -o json
`

// BatchOpts holds the tasks read from one or more batch files.
type BatchOpts struct {
	Files []string

	settings *settings
	tasks    []jobs.Task

	Out io.Writer
}

// NewCmdBatch returns the batch subcommand.
func NewCmdBatch(parent string, s *settings, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "batch FILE...",
		Short:   "Solve the integrals listed in YAML batch files",
		Example: fmt.Sprintf(batchExample, parent),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts := &BatchOpts{Files: args, settings: s, Out: out}

			if err := opts.Complete(); err != nil {
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

// Complete loads and builds every file, using the flags for settings
// the files leave out.
func (o *BatchOpts) Complete() error {
	fallback := jobs.Settings{
		Rule:       o.settings.Rule,
		Iterations: o.settings.Iterations,
		Composite:  o.settings.Composite,
	}

	for _, path := range o.Files {
		f, err := jobs.LoadFile(path)
		if err != nil {
			return err
		}
		tasks, err := f.Build(fallback)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		o.tasks = append(o.tasks, tasks...)
	}
	return nil
}

// Validate checks that the files held at least one job.
func (o *BatchOpts) Validate() error {
	if len(o.tasks) == 0 {
		return jobs.ErrNoJobs
	}
	return nil
}

// Run solves every task concurrently and prints the outcomes in file
// order. It fails if any job failed.
func (o *BatchOpts) Run(ctx context.Context) error {
	batch := make([]quadrature.Job, len(o.tasks))
	for i, task := range o.tasks {
		batch[i] = task.Job
	}

	outcomes := quadrature.SolveJobs(ctx, batch, quadrature.BatchConfig{
		Workers: o.settings.Workers,
		Logger:  o.settings.Logger,
	})

	var (
		solutions = make([]solution, len(outcomes))
		failed    int
	)
	for i, out := range outcomes {
		solutions[i] = o.solution(o.tasks[i], out)
		if solutions[i].Error != "" {
			failed++
			o.settings.Logger.Error("job failed", "job", out.Job.Name, "err", solutions[i].Error)
		}
	}

	if err := writeSolutions(o.Out, o.settings.Format, solutions); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(outcomes))
	}
	return nil
}

func (o *BatchOpts) solution(task jobs.Task, out quadrature.Outcome) solution {
	lower, upper := task.Integral.Limits()
	var iterations int
	if r, ok := task.Rule.(interface{ Iterations() int }); ok {
		iterations = r.Iterations()
	}
	var h float64
	if iterations > 0 {
		h = quadrature.StepSize(task.Integral, iterations)
	}

	s := solution{
		Name:       task.Name,
		Integrand:  task.Source,
		Lower:      lower,
		Upper:      upper,
		Rule:       ruleLabel(task.Rule),
		Iterations: iterations,
		StepSize:   h,
		Value:      out.Value,
		Duration:   out.Duration,
	}

	switch {
	case out.Err != nil:
		s.Error = out.Err.Error()
	case !finite(out.Value):
		s.Value = 0
		s.Error = errNotFinite.Error()
	case task.HasReference:
		ref := task.Reference
		abs := math.Abs(out.Value - ref)
		s.Reference, s.AbsError = &ref, &abs
	}
	return s
}
