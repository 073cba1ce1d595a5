// Package chart draws convergence studies as log-log plots.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/alexshd/quadrature"
)

// ErrNoData indicates that no series had a point that can go on a log scale.
var ErrNoData = errors.New("chart: no positive errors to plot")

// Series is one rule's convergence study.
type Series struct {
	Name    string
	Samples []quadrature.Sample
}

// Config controls the rendered chart.
type Config struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	Format string // png, svg, pdf, ...: anything plot.WriterTo accepts
}

// DefaultConfig returns a 6×4 inch PNG.
func DefaultConfig() Config {
	return Config{
		Title:  "Convergence",
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
		Format: "png",
	}
}

// Convergence plots |error| against n for every series on log-log axes.
// The slope of each line is minus the rule's order of convergence.
func Convergence(series []Series, cfg Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "iterations (n)"
	p.Y.Label.Text = "|error|"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	var lines []interface{}
	for _, s := range series {
		pts := points(s.Samples)
		if len(pts) == 0 {
			continue
		}
		lines = append(lines, s.Name, pts)
	}
	if len(lines) == 0 {
		return nil, ErrNoData
	}

	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, fmt.Errorf("add series: %w", err)
	}
	return p, nil
}

// points keeps the samples a log scale can show.
func points(samples []quadrature.Sample) plotter.XYs {
	pts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		if s.Iterations < 1 || s.AbsError <= 0 || math.IsInf(s.AbsError, 0) || math.IsNaN(s.AbsError) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(s.Iterations), Y: s.AbsError})
	}
	return pts
}

// Write renders p to w in cfg.Format.
func Write(w io.Writer, p *plot.Plot, cfg Config) error {
	wt, err := p.WriterTo(cfg.Width, cfg.Height, cfg.Format)
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}
