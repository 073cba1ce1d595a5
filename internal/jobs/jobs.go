// Package jobs reads batch files: YAML lists of integrals to solve.
//
//	defaults:
//	  rule: simpson
//	  iterations: 12
//	jobs:
//	  - name: reciprocal
//	    integrand: 1/(x+1)
//	    lower: 2
//	    upper: 3
//	    reference: log(4/3)
//	  - name: quarter-wave
//	    integrand: sin(x)
//	    lower: 0
//	    upper: pi/2
//	    rule: trapezoidal
//	    iterations: 64
//
// Limits, iteration counts and references may be numbers or strings.
// Strings are read as decimal numbers ("010" is ten), or else evaluated
// as constant expressions. Iteration counts must come out whole.
package jobs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/quadrature"
	"github.com/alexshd/quadrature/integrand"
)

// ErrNoJobs indicates a batch file without jobs.
var ErrNoJobs = errors.New("jobs: no jobs defined")

// Settings are the per-job rule settings. Zero values inherit from Defaults.
type Settings struct {
	Rule       string `yaml:"rule"`
	Iterations any    `yaml:"iterations"`
	Composite  string `yaml:"composite"`
}

// Entry is one job as written in the file.
type Entry struct {
	Name      string `yaml:"name"`
	Integrand string `yaml:"integrand"`
	Lower     any    `yaml:"lower"`
	Upper     any    `yaml:"upper"`
	Reference any    `yaml:"reference"` // Optional known value

	Settings `yaml:",inline"`
}

// File is a decoded batch file.
type File struct {
	Defaults Settings `yaml:"defaults"`
	Jobs     []Entry  `yaml:"jobs"`
}

// Task is a ready-to-solve job.
type Task struct {
	quadrature.Job

	Source       string  // Integrand expression
	Reference    float64 // Valid when HasReference
	HasReference bool
}

// Load decodes a batch file. Unknown keys are an error.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoJobs
		}
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	if len(f.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	return &f, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Build compiles every entry, with fallback supplying settings that
// neither the entry nor the file defaults set.
func (f *File) Build(fallback Settings) ([]Task, error) {
	defaults := f.Defaults.merge(fallback)

	tasks := make([]Task, 0, len(f.Jobs))
	for i, e := range f.Jobs {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("job-%d", i+1)
		}

		task, err := e.build(defaults)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", name, err)
		}
		task.Name = name
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (e Entry) build(defaults Settings) (Task, error) {
	fn, err := integrand.Compile(e.Integrand)
	if err != nil {
		return Task{}, err
	}

	lower, err := number("lower", e.Lower)
	if err != nil {
		return Task{}, err
	}
	upper, err := number("upper", e.Upper)
	if err != nil {
		return Task{}, err
	}
	di, err := quadrature.NewDefiniteIntegral(fn.Func(), lower, upper)
	if err != nil {
		return Task{}, err
	}

	rule, err := e.Settings.merge(defaults).rule()
	if err != nil {
		return Task{}, err
	}

	task := Task{
		Job:    quadrature.Job{Rule: rule, Integral: di},
		Source: fn.Source(),
	}
	if e.Reference != nil {
		if task.Reference, err = number("reference", e.Reference); err != nil {
			return Task{}, err
		}
		task.HasReference = true
	}
	return task, nil
}

// merge fills unset fields of s from d.
func (s Settings) merge(d Settings) Settings {
	if s.Rule == "" {
		s.Rule = d.Rule
	}
	if s.Iterations == nil {
		s.Iterations = d.Iterations
	}
	if s.Composite == "" {
		s.Composite = d.Composite
	}
	return s
}

func (s Settings) rule() (quadrature.Rule, error) {
	composite := quadrature.CompositeUnspecified
	if s.Composite != "" {
		var err error
		if composite, err = quadrature.ParseComposite(s.Composite); err != nil {
			return nil, err
		}
	}

	iterations, err := count(s.Iterations)
	if err != nil {
		return nil, err
	}
	return quadrature.NewNamedRule(s.Rule, iterations, composite)
}

// count reads an iteration count. It must be a whole number that fits
// exactly in a float64; the rule checks the rest.
func count(v any) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("iterations: %w: missing", quadrature.ErrInvalidIterations)
	}

	f, err := number("iterations", v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("iterations: %w: %v is not a whole number", quadrature.ErrInvalidIterations, v)
	}
	return int(f), nil
}

// number reads v as a finite float64. Strings that aren't plain decimal
// numbers are evaluated as constant expressions, so "pi/2" works.
func number(field string, v any) (float64, error) {
	var (
		f   float64
		err error
	)

	switch v := v.(type) {
	case nil:
		return 0, fmt.Errorf("%s: missing", field)
	case bool:
		return 0, fmt.Errorf("%s: want a number, got %v", field, v)
	case string:
		f, err = decimal(v)
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %v is not finite", field, v)
	}
	return f, nil
}

// decimal parses s in base 10, falling back to a constant expression.
// Hex, octal and binary prefixes are not numbers here.
func decimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "xXpP") {
		return f, nil
	}
	return integrand.Constant(s)
}
