package main

import (
	"context"
	"fmt"
	"time"

	"github.com/evobandits/evobandits-go/internal/logger"
	"github.com/evobandits/evobandits-go/internal/monitoring"
	"github.com/evobandits/evobandits-go/pkg/bandit"
	"github.com/evobandits/evobandits-go/pkg/benchmarks"
	"github.com/evobandits/evobandits-go/pkg/config"
	"github.com/evobandits/evobandits-go/pkg/optimization"
	"github.com/evobandits/evobandits-go/pkg/params"
	"github.com/evobandits/evobandits-go/pkg/reporting"
	"github.com/evobandits/evobandits-go/pkg/study"
)

// runner executes one configured study
type runner struct {
	cfg     *config.StudyConfig
	verbose bool
	health  *monitoring.HealthChecker
	runLog  *logger.Logger
}

// benchmarkObjective feeds the integer parameters of space, in declaration
// order, to a benchmark function
func benchmarkObjective(f func([]int) float64, noise float64, noiseSeed uint64, space *params.Space) study.Objective {
	var inner bandit.Objective = benchmarks.Deterministic(f)
	if noise > 0 {
		inner = benchmarks.Noisy(inner, noise, noiseSeed)
	}
	names := space.Names()

	return study.ObjectiveFunc(func(values study.Values) (float64, error) {
		x, err := flatten(names, values)
		if err != nil {
			return 0, err
		}
		return inner.Evaluate(x)
	})
}

func flatten(names []string, values study.Values) ([]int, error) {
	var x []int
	for _, name := range names {
		switch v := values[name].(type) {
		case int:
			x = append(x, v)
		case []int:
			x = append(x, v...)
		case float64:
			x = append(x, int(v))
		default:
			return nil, fmt.Errorf("parameter %q has non-numeric value %v", name, v)
		}
	}
	return x, nil
}

// run optimizes the configured benchmark and collects the report
func (r *runner) run(ctx context.Context) (*reporting.StudyReport, error) {
	cfg := r.cfg

	f, err := benchmarks.Lookup(cfg.Objective.Benchmark)
	if err != nil {
		return nil, err
	}
	space, err := cfg.BuildSpace()
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	opts.Verbose = r.verbose

	s := study.New(cfg.Seed, opts)
	s.SetName(cfg.Name)
	s.SetProgress(r.progressFunc())

	if r.health != nil {
		r.health.SetRunning(true)
		defer r.health.SetRunning(false)
	}

	objective := benchmarkObjective(f, cfg.Objective.Noise, cfg.Objective.NoiseSeed, space)
	settings := cfg.Settings()

	start := time.Now()
	if err := s.Optimize(ctx, objective, space, cfg.Run.Trials, settings); err != nil {
		if r.health != nil {
			r.health.RecordError(err)
		}
		if r.runLog != nil {
			r.runLog.LogError("optimize", err)
		}
		return nil, err
	}

	report, err := reporting.NewStudyReport(cfg.Name, s, cfg.Run.Trials, settings, time.Since(start))
	if err != nil {
		return nil, err
	}
	report.Benchmark = cfg.Objective.Benchmark

	if r.runLog != nil {
		for _, res := range report.Results {
			r.runLog.LogResult(res.UCBRank, res.RunID, res.Value, res.Evaluations, reporting.FormatParams(res.Params))
		}
	}
	return report, nil
}

// progressFunc forwards generation reports to the health checker and run
// log; a report for generation 1 starts a new run
func (r *runner) progressFunc() optimization.ProgressFunc {
	run := -1
	return func(report optimization.GenerationReport) {
		if report.Generation == 1 {
			run++
		}
		if r.health != nil {
			r.health.RecordProgress(report.Best.MeanReward)
		}
		if r.runLog != nil && report.Generation%optimization.ProgressReportInterval == 0 {
			r.runLog.LogGeneration(run, report.Generation, report.Spent, report.Budget,
				report.Arms, report.Best.MeanReward, report.Best.NumPulls)
		}
	}
}
