package quadrature

import (
	"context"
	"errors"
	"testing"
)

// TestSolveJobs_SharedRule verifies one rule can serve many integrals at once.
func TestSolveJobs_SharedRule(t *testing.T) {
	rule, err := NewSimpsonsRule(100)
	if err != nil {
		t.Fatal(err)
	}

	var jobs []Job
	for i := 0; i < 32; i++ {
		upper := 3 + float64(i)
		di, err := NewDefiniteIntegral(reciprocal, 2, upper)
		if err != nil {
			t.Fatal(err)
		}
		jobs = append(jobs, Job{Name: "reciprocal", Rule: rule, Integral: di})
	}

	cfg := DefaultBatchConfig()
	cfg.Workers = 4

	outcomes := SolveJobs(context.Background(), jobs, cfg)
	if len(outcomes) != len(jobs) {
		t.Fatalf("Expected %d outcomes, got %d", len(jobs), len(outcomes))
	}

	for i, o := range outcomes {
		if o.Err != nil {
			t.Errorf("Job %d failed: %v", i, o.Err)
			continue
		}
		if o.Job.Integral != jobs[i].Integral {
			t.Errorf("Outcome %d out of order", i)
		}

		// Solve sequentially for comparison
		want, err := rule.Solve(jobs[i].Integral)
		if err != nil {
			t.Fatal(err)
		}
		if o.Value != want {
			t.Errorf("Job %d: concurrent %v != sequential %v", i, o.Value, want)
		}
	}
}

// TestSolveJobs_Errors verifies per-job failures stay with their job.
func TestSolveJobs_Errors(t *testing.T) {
	rule, err := NewTrapezoidalRule(10)
	if err != nil {
		t.Fatal(err)
	}
	good, err := NewDefiniteIntegral(reciprocal, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	empty, err := NewDefiniteIntegral(nil, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	outcomes := SolveJobs(context.Background(), []Job{
		{Name: "good", Rule: rule, Integral: good},
		{Name: "no-rule", Integral: good},
		{Name: "no-function", Rule: rule, Integral: empty},
	}, BatchConfig{})

	if outcomes[0].Err != nil {
		t.Errorf("good: unexpected error %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, ErrNilRule) {
		t.Errorf("no-rule: expected ErrNilRule, got %v", outcomes[1].Err)
	}
	if !errors.Is(outcomes[2].Err, ErrNoFunction) {
		t.Errorf("no-function: expected ErrNoFunction, got %v", outcomes[2].Err)
	}
}

// TestSolveJobs_Canceled verifies jobs report the context error once canceled.
func TestSolveJobs_Canceled(t *testing.T) {
	rule, err := NewTrapezoidalRule(10)
	if err != nil {
		t.Fatal(err)
	}
	di, err := NewDefiniteIntegral(reciprocal, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := SolveJobs(ctx, []Job{{Rule: rule, Integral: di}, {Rule: rule, Integral: di}}, DefaultBatchConfig())
	for i, o := range outcomes {
		if !errors.Is(o.Err, context.Canceled) {
			t.Errorf("Job %d: expected context.Canceled, got %v", i, o.Err)
		}
	}
}

// TestSolveJobs_Empty verifies an empty batch returns immediately.
func TestSolveJobs_Empty(t *testing.T) {
	if outcomes := SolveJobs(context.Background(), nil, DefaultBatchConfig()); len(outcomes) != 0 {
		t.Errorf("Expected no outcomes, got %d", len(outcomes))
	}
}
