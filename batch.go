package quadrature

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Job pairs a rule with the integral it should solve.
// Jobs may share rules and integrals; solving only reads them.
type Job struct {
	Name     string
	Rule     Rule
	Integral *DefiniteIntegral
}

// Outcome is the result of one Job.
type Outcome struct {
	Job      Job
	Value    float64
	Err      error
	Duration time.Duration
}

// BatchConfig controls SolveJobs.
type BatchConfig struct {
	Workers int          // Jobs solved concurrently (0 = one per CPU)
	Logger  *slog.Logger // Optional per-job debug output
}

// DefaultBatchConfig returns one worker per CPU.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Workers: runtime.NumCPU(),
	}
}

// SolveJobs solves every job on a bounded pool of workers and returns the
// outcomes in job order. Jobs not started before ctx is done get ctx.Err().
func SolveJobs(ctx context.Context, jobs []Job, cfg BatchConfig) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	if len(jobs) == 0 {
		return outcomes
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var (
		wg   sync.WaitGroup
		next = make(chan int)
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range next {
				outcomes[i] = solveJob(ctx, jobs[i])
				if cfg.Logger != nil {
					o := outcomes[i]
					cfg.Logger.Debug("job solved",
						"job", o.Job.Name,
						"value", o.Value,
						"duration", o.Duration,
						"err", o.Err)
				}
			}
		}()
	}

	for i := range jobs {
		next <- i
	}
	close(next)
	wg.Wait()

	return outcomes
}

func solveJob(ctx context.Context, job Job) Outcome {
	out := Outcome{Job: job}

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	if job.Rule == nil {
		out.Err = ErrNilRule
		return out
	}

	start := time.Now()
	out.Value, out.Err = job.Rule.Solve(job.Integral)
	out.Duration = time.Since(start)
	return out
}
