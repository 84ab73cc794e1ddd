package loadtest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/conn"
)

// ScenarioOutput carries whichever result type a scenario produced.
type ScenarioOutput struct {
	Summary *Summary
	Bulk    *BulkStats
	Query   *QueryStats
}

// Scenario is one named unit of suite work.
type Scenario struct {
	Name    string
	Execute func(ctx context.Context) (ScenarioOutput, error)
}

// ScenarioResult records one scenario's outcome in the consolidated
// report. A failed scenario carries its error text; later scenarios still
// run.
type ScenarioResult struct {
	Name    string
	Output  ScenarioOutput
	Elapsed time.Duration
	Err     string
}

// Failed reports whether the scenario ended in error.
func (r ScenarioResult) Failed() bool { return r.Err != "" }

// SuiteReport is the consolidated outcome of a suite run, keyed by
// scenario name. Order preserves execution order for presentation.
type SuiteReport struct {
	Started  time.Time
	Finished time.Time
	Order    []string
	Results  map[string]ScenarioResult
}

// FailedCount returns how many scenarios ended in error.
func (r *SuiteReport) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// SuiteRunner sequences scenarios and consolidates their outputs.
type SuiteRunner struct {
	logger *zap.Logger
}

// NewSuiteRunner creates a suite runner.
func NewSuiteRunner(logger *zap.Logger) *SuiteRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuiteRunner{logger: logger}
}

// Run executes the scenarios sequentially. A scenario failure is recorded
// in the report and never prevents the remaining scenarios from running.
func (s *SuiteRunner) Run(ctx context.Context, scenarios []Scenario) *SuiteReport {
	report := &SuiteReport{
		Started: time.Now(),
		Results: make(map[string]ScenarioResult, len(scenarios)),
	}

	for _, sc := range scenarios {
		s.logger.Info("running scenario", zap.String("scenario", sc.Name))
		start := time.Now()

		out, err := sc.Execute(ctx)
		result := ScenarioResult{
			Name:    sc.Name,
			Output:  out,
			Elapsed: time.Since(start),
		}
		if err != nil {
			result.Err = err.Error()
			s.logger.Error("scenario failed",
				zap.String("scenario", sc.Name),
				zap.Error(err))
		} else {
			s.logger.Info("scenario complete",
				zap.String("scenario", sc.Name),
				zap.Duration("elapsed", result.Elapsed))
		}

		report.Order = append(report.Order, sc.Name)
		report.Results[sc.Name] = result
	}

	report.Finished = time.Now()
	return report
}

// LoadScenario wraps one engine run plus its reduction.
func LoadScenario(name string, engine *Engine, profile Profile, factory conn.Factory, mix Mix) Scenario {
	return Scenario{
		Name: name,
		Execute: func(ctx context.Context) (ScenarioOutput, error) {
			rs, err := engine.Run(ctx, profile, factory, mix)
			if err != nil {
				return ScenarioOutput{}, err
			}
			summary, err := Summarize(rs)
			if err != nil {
				return ScenarioOutput{}, err
			}
			return ScenarioOutput{Summary: summary}, nil
		},
	}
}

// BulkScenario wraps one bulk population call on a dedicated handle.
func BulkScenario(name string, loader *BulkLoader, factory conn.Factory, rowCount int) Scenario {
	return Scenario{
		Name: name,
		Execute: func(ctx context.Context) (ScenarioOutput, error) {
			h, err := openHandle(ctx, factory)
			if err != nil {
				return ScenarioOutput{}, err
			}
			defer func() { _ = h.Close() }()

			stats, err := loader.Load(ctx, h, rowCount)
			if err != nil {
				return ScenarioOutput{}, err
			}
			return ScenarioOutput{Bulk: &stats}, nil
		},
	}
}

// QueryScenario wraps one query benchmark on a dedicated handle.
func QueryScenario(name string, bench *QueryBenchmarker, factory conn.Factory, query string, params []any, iterations int) Scenario {
	return Scenario{
		Name: name,
		Execute: func(ctx context.Context) (ScenarioOutput, error) {
			h, err := openHandle(ctx, factory)
			if err != nil {
				return ScenarioOutput{}, err
			}
			defer func() { _ = h.Close() }()

			stats, err := bench.Run(ctx, h, query, params, iterations)
			if err != nil {
				return ScenarioOutput{}, err
			}
			return ScenarioOutput{Query: &stats}, nil
		},
	}
}

// StandardScenarios is the canonical write-then-read matrix: write, read,
// and a 50/50 mix at low load, plus the high-load write and read passes
// when requested.
func StandardScenarios(engine *Engine, factory conn.Factory, includeHighLoad bool) []Scenario {
	low := LowLoad()
	scenarios := []Scenario{
		LoadScenario("low-load-write", engine, low, factory, WriteOnly()),
		LoadScenario("low-load-read", engine, low, factory, ReadOnly()),
		LoadScenario("low-load-mixed", engine, low, factory, ReadRatio(0.5)),
	}

	if includeHighLoad {
		high := HighLoad()
		scenarios = append(scenarios,
			LoadScenario("high-load-write", engine, high, factory, WriteOnly()),
			LoadScenario("high-load-read", engine, high, factory, ReadOnly()),
		)
	}
	return scenarios
}

func openHandle(ctx context.Context, factory conn.Factory) (conn.Handle, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: handle factory is required", ErrInvalidConfiguration)
	}
	h, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conn.ErrConnection, err)
	}
	if err := h.Open(ctx); err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("%w: %v", conn.ErrConnection, err)
	}
	return h, nil
}
