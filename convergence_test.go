package quadrature

import (
	"context"
	"errors"
	"math"
	"testing"
)

var ln4over3 = math.Log(4.0 / 3.0)

func studyReciprocal(t *testing.T, factory RuleFactory, cfg StudyConfig) []Sample {
	t.Helper()

	di, err := NewDefiniteIntegral(reciprocal, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := Study(context.Background(), factory, di, ln4over3, cfg)
	if err != nil {
		t.Fatalf("Study failed: %v", err)
	}
	return samples
}

// TestDefaultStudyConfig verifies the default levels suit every rule.
func TestDefaultStudyConfig(t *testing.T) {
	cfg := DefaultStudyConfig()

	want := []int{6, 12, 24, 48, 96, 192}
	if len(cfg.Levels) != len(want) {
		t.Fatalf("Expected %d levels, got %v", len(want), cfg.Levels)
	}
	for i, n := range want {
		if cfg.Levels[i] != n {
			t.Errorf("Level %d: expected %d, got %d", i, n, cfg.Levels[i])
		}
	}
	if cfg.Workers < 1 {
		t.Errorf("Expected at least 1 worker, got %d", cfg.Workers)
	}
}

// TestStudy_Trapezoidal verifies O(h²) convergence.
func TestStudy_Trapezoidal(t *testing.T) {
	factory, err := NamedFactory(RuleTrapezoidal, CompositeUnspecified)
	if err != nil {
		t.Fatal(err)
	}

	samples := studyReciprocal(t, factory, DefaultStudyConfig())
	PrintStudy(t, samples)

	cfg := DefaultAssertionConfig()
	AssertConverges(t, samples, cfg)
	AssertOrder(t, samples, 2, cfg)
}

// TestStudy_Simpson verifies O(h⁴) convergence for both variants.
func TestStudy_Simpson(t *testing.T) {
	for _, c := range []Composite{Main, ThreeEighths} {
		t.Run(c.String(), func(t *testing.T) {
			factory, err := NamedFactory(RuleSimpson, c)
			if err != nil {
				t.Fatal(err)
			}

			samples := studyReciprocal(t, factory, DefaultStudyConfig())
			PrintStudy(t, samples)

			cfg := DefaultAssertionConfig()
			AssertConverges(t, samples, cfg)
			AssertOrder(t, samples, 4, cfg)
		})
	}
}

// TestStudy_Samples verifies per-level bookkeeping.
func TestStudy_Samples(t *testing.T) {
	factory, err := NamedFactory(RuleSimpson, Main)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultStudyConfig()
	cfg.Levels = []int{24, 4, 12} // Deliberately unsorted
	cfg.Workers = 2

	samples := studyReciprocal(t, factory, cfg)

	wantN := []int{4, 12, 24}
	for i, s := range samples {
		if s.Iterations != wantN[i] {
			t.Errorf("Sample %d: expected n=%d, got %d", i, wantN[i], s.Iterations)
		}
		if s.StepSize != 1/float64(s.Iterations) {
			t.Errorf("Sample %d: expected h=1/%d, got %g", i, s.Iterations, s.StepSize)
		}
		if s.Evaluations != int64(s.Iterations+1) {
			t.Errorf("Sample %d: expected %d evaluations, got %d", i, s.Iterations+1, s.Evaluations)
		}
	}

	AssertApprox(t, samples[0].Value, 0.2876831, 1e-7)
}

// TestStudy_InvalidLevel verifies a level the rule rejects fails the whole study.
func TestStudy_InvalidLevel(t *testing.T) {
	factory, err := NamedFactory(RuleSimpson, ThreeEighths)
	if err != nil {
		t.Fatal(err)
	}

	di, err := NewDefiniteIntegral(reciprocal, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultStudyConfig()
	cfg.Levels = []int{6, 10}

	if _, err := Study(context.Background(), factory, di, ln4over3, cfg); !errors.Is(err, ErrInvalidIterations) {
		t.Errorf("Expected ErrInvalidIterations, got %v", err)
	}
}

// TestStudy_Canceled verifies a canceled context stops the study.
func TestStudy_Canceled(t *testing.T) {
	factory, err := NamedFactory(RuleTrapezoidal, CompositeUnspecified)
	if err != nil {
		t.Fatal(err)
	}
	di, err := NewDefiniteIntegral(reciprocal, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Study(ctx, factory, di, ln4over3, DefaultStudyConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// TestStudy_MissingInputs verifies argument checks.
func TestStudy_MissingInputs(t *testing.T) {
	factory, err := NamedFactory(RuleTrapezoidal, CompositeUnspecified)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Study(context.Background(), factory, nil, 0, DefaultStudyConfig()); !errors.Is(err, ErrNilIntegral) {
		t.Errorf("Expected ErrNilIntegral, got %v", err)
	}

	di, err := NewDefiniteIntegral(nil, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Study(context.Background(), factory, di, 0, DefaultStudyConfig()); !errors.Is(err, ErrNoFunction) {
		t.Errorf("Expected ErrNoFunction, got %v", err)
	}

	di.SetFunction(reciprocal)
	if _, err := Study(context.Background(), factory, di, 0, StudyConfig{}); err == nil {
		t.Error("Expected an error for a study without levels")
	}
}

// TestFitOrder_ExactPowerLaw verifies the fit recovers a known power law.
func TestFitOrder_ExactPowerLaw(t *testing.T) {
	var samples []Sample
	for _, n := range []int{10, 20, 40, 80} {
		h := 1 / float64(n)
		samples = append(samples, Sample{
			Iterations: n,
			StepSize:   h,
			AbsError:   0.5 * math.Pow(h, 3),
		})
	}

	fit, err := FitOrder(samples)
	if err != nil {
		t.Fatal(err)
	}

	AssertApprox(t, fit.Order, 3, 1e-9)
	AssertApprox(t, fit.Constant, 0.5, 1e-9)
	AssertApprox(t, fit.RSquared, 1, 1e-9)
	AssertApprox(t, fit.Predict(0.01), 0.5e-6, 1e-15)
}

// TestFitOrder_SkipsZeroErrors verifies exact samples are ignored.
func TestFitOrder_SkipsZeroErrors(t *testing.T) {
	samples := []Sample{
		{Iterations: 6, StepSize: 1.0 / 6, AbsError: 0},
		{Iterations: 12, StepSize: 1.0 / 12, AbsError: 1e-3},
	}

	if _, err := FitOrder(samples); err == nil {
		t.Error("Expected an error with only one usable sample")
	}
}
