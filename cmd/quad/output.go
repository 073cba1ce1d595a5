package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/alexshd/quadrature"
	"github.com/alexshd/quadrature/internal/config"
)

type solution struct {
	Name       string        `json:"name,omitempty"`
	Integrand  string        `json:"integrand"`
	Lower      float64       `json:"lower"`
	Upper      float64       `json:"upper"`
	Rule       string        `json:"rule"`
	Iterations int           `json:"iterations"`
	StepSize   float64       `json:"step_size"`
	Value      float64       `json:"value"`
	Reference  *float64      `json:"reference,omitempty"`
	AbsError   *float64      `json:"abs_error,omitempty"`
	Duration   time.Duration `json:"duration_ns,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type study struct {
	Rule    string               `json:"rule"`
	Samples []quadrature.Sample  `json:"samples"`
	Fit     *quadrature.OrderFit `json:"fit,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSolutions(w io.Writer, format string, solutions []solution) error {
	if format == config.FormatJSON {
		if len(solutions) == 1 {
			return writeJSON(w, solutions[0])
		}
		return writeJSON(w, solutions)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINTEGRAND\tINTERVAL\tRULE\tN\tVALUE\tERROR")
	for _, s := range solutions {
		name := s.Name
		if name == "" {
			name = "-"
		}
		interval := fmt.Sprintf("[%g, %g]", s.Lower, s.Upper)

		switch {
		case s.Error != "":
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t-\t%s\n", name, s.Integrand, interval, s.Rule, s.Iterations, s.Error)
		case s.AbsError != nil:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.12g\t%.3e\n", name, s.Integrand, interval, s.Rule, s.Iterations, s.Value, *s.AbsError)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.12g\t-\n", name, s.Integrand, interval, s.Rule, s.Iterations, s.Value)
		}
	}
	return tw.Flush()
}

func writeStudies(w io.Writer, format string, studies []study) error {
	if format == config.FormatJSON {
		return writeJSON(w, studies)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range studies {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", s.Rule)
		fmt.Fprintln(tw, "N\tH\tVALUE\t|ERROR|\tEVALS\tTIME")
		for _, sm := range s.Samples {
			fmt.Fprintf(tw, "%d\t%.4g\t%.12g\t%.3e\t%d\t%v\n",
				sm.Iterations, sm.StepSize, sm.Value, sm.AbsError, sm.Evaluations, sm.Duration)
		}
		if s.Fit != nil {
			fmt.Fprintf(tw, "order ≈ %.2f (R² = %.4f)\n", s.Fit.Order, s.Fit.RSquared)
		}
	}
	return tw.Flush()
}
