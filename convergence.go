package quadrature

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/alexshd/quadrature/mathutil"
)

// Sample is the outcome of one solve in a convergence study.
type Sample struct {
	Iterations  int           // n
	StepSize    float64       // h = (b-a)/n
	Value       float64       // Approximation at this n
	AbsError    float64       // |Value - reference|
	Evaluations int64         // Calls to the integrand as given, memoized hits included
	Duration    time.Duration // Wall time of the solve
}

// OrderFit is the power law |error| ≈ C·h^p fitted to a study.
type OrderFit struct {
	Order    float64 // p: 2 for trapezoidal, 4 for Simpson's on smooth integrands
	Constant float64 // C
	RSquared float64 // R²: goodness of fit in log-log space (1.0 = perfect)
}

// StudyConfig controls a convergence study.
type StudyConfig struct {
	Levels  []int        // Iteration counts to solve at
	Workers int          // Levels solved concurrently (0 = one per CPU)
	Logger  *slog.Logger // Optional per-level debug output
}

// DefaultStudyConfig returns doubling levels starting at LCM(2, 3) = 6,
// so every built-in rule accepts all of them.
func DefaultStudyConfig() StudyConfig {
	base := mathutil.LCM(Main.Modulus(), ThreeEighths.Modulus())

	levels := make([]int, 0, 6)
	for n := base; len(levels) < cap(levels); n *= 2 {
		levels = append(levels, n)
	}

	return StudyConfig{
		Levels:  levels,
		Workers: runtime.NumCPU(),
	}
}

// Study solves di with a rule from factory at every level and measures the
// error against reference, a value the caller knows to be accurate.
//
// Each level works on its own clone of di, so di is never touched and
// levels may run concurrently. Results are sorted by iteration count.
func Study(ctx context.Context, factory RuleFactory, di *DefiniteIntegral, reference float64, cfg StudyConfig) ([]Sample, error) {
	if di == nil {
		return nil, ErrNilIntegral
	}
	fn := di.Function()
	if fn == nil {
		return nil, ErrNoFunction
	}
	if len(cfg.Levels) == 0 {
		return nil, fmt.Errorf("need at least 1 level, got 0")
	}

	// Build every rule first so a bad level fails before any work is done
	rules := make([]Rule, len(cfg.Levels))
	for i, n := range cfg.Levels {
		rule, err := factory(n)
		if err != nil {
			return nil, fmt.Errorf("failed at n=%d: %w", n, err)
		}
		rules[i] = rule
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(rules) {
		workers = len(rules)
	}

	var (
		wg      sync.WaitGroup
		next    = make(chan int)
		samples = make([]Sample, len(rules))
		errs    = make([]error, len(rules))
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range next {
				samples[i], errs[i] = runLevel(rules[i], di, fn, cfg.Levels[i], reference)
				if cfg.Logger != nil && errs[i] == nil {
					cfg.Logger.Debug("study level solved",
						"n", samples[i].Iterations,
						"h", samples[i].StepSize,
						"value", samples[i].Value,
						"abs_error", samples[i].AbsError,
						"evaluations", samples[i].Evaluations,
						"duration", samples[i].Duration)
				}
			}
		}()
	}

feed:
	for i := range rules {
		select {
		case next <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed at n=%d: %w", cfg.Levels[i], err)
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Iterations < samples[j].Iterations
	})
	return samples, nil
}

// runLevel solves a private copy of di whose integrand counts its calls.
func runLevel(rule Rule, di *DefiniteIntegral, fn Func, n int, reference float64) (Sample, error) {
	var calls int64

	local := di.Clone()
	local.SetFunction(func(x float64) float64 {
		atomic.AddInt64(&calls, 1)
		return fn(x)
	})

	start := time.Now()
	value, err := rule.Solve(local)
	elapsed := time.Since(start)
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Iterations:  n,
		StepSize:    StepSize(local, n),
		Value:       value,
		AbsError:    math.Abs(value - reference),
		Evaluations: atomic.LoadInt64(&calls),
		Duration:    elapsed,
	}, nil
}

// FitOrder fits log|error| = log C + p·log h by least squares.
//
// Samples with a zero error (exact for this integrand, or below rounding)
// carry no slope information and are skipped.
func FitOrder(samples []Sample) (OrderFit, error) {
	xs := make([]float64, 0, len(samples))
	ys := make([]float64, 0, len(samples))

	for _, s := range samples {
		if s.AbsError <= 0 || s.StepSize <= 0 || math.IsInf(s.AbsError, 0) || math.IsNaN(s.AbsError) {
			continue
		}
		xs = append(xs, math.Log(s.StepSize))
		ys = append(ys, math.Log(s.AbsError))
	}

	if len(xs) < 2 {
		return OrderFit{}, fmt.Errorf("need at least 2 samples with non-zero error, got %d", len(xs))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	return OrderFit{
		Order:    beta,
		Constant: math.Exp(alpha),
		RSquared: stat.RSquared(xs, ys, nil, alpha, beta),
	}, nil
}

// Predict returns the fitted error at step size h.
func (f OrderFit) Predict(h float64) float64 {
	return f.Constant * math.Pow(h, f.Order)
}
