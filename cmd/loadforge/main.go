// cmd/loadforge/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/config"
	"github.com/FairForge/loadforge/internal/conn"
	"github.com/FairForge/loadforge/internal/database"
	"github.com/FairForge/loadforge/internal/loadtest"
	"github.com/FairForge/loadforge/internal/logging"
	"github.com/FairForge/loadforge/internal/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	setup := flag.Bool("setup", true, "create benchmark tables before running")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Driver-wide settings must be pinned before the first Open.
	if err := conn.Initialize(conn.Settings{Security: cfg.Security}); err != nil {
		logger.Fatal("failed to initialize driver", zap.Error(err))
	}

	params := database.Params{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Security: cfg.Security,
	}
	factory := database.Factory(params, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *setup {
		if err := prepareSchema(ctx, factory); err != nil {
			logger.Fatal("failed to prepare schema", zap.Error(err))
		}
	}

	engine := loadtest.NewEngine(logger, loadtest.WithObserver(metrics.NewCollector()))
	scenarios := buildScenarios(logger, engine, factory, cfg)

	report := loadtest.NewSuiteRunner(logger).Run(ctx, scenarios)
	logReport(logger, report)

	if report.FailedCount() > 0 {
		os.Exit(1)
	}
}

func prepareSchema(ctx context.Context, factory conn.Factory) error {
	h, err := factory()
	if err != nil {
		return err
	}
	if err := h.Open(ctx); err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	pg, ok := h.(*database.Postgres)
	if !ok {
		return fmt.Errorf("schema setup requires a postgres handle, got %T", h)
	}
	return pg.Setup(ctx)
}

func buildScenarios(logger *zap.Logger, engine *loadtest.Engine, factory conn.Factory, cfg *config.Config) []loadtest.Scenario {
	profile := selectProfile(cfg.Run)

	var scenarios []loadtest.Scenario
	if cfg.Run.BulkRows > 0 {
		loader := loadtest.NewBulkLoader(logger, cfg.Run.BulkBatchSize)
		scenarios = append(scenarios,
			loadtest.BulkScenario("bulk-populate", loader, factory, cfg.Run.BulkRows))
	}

	if cfg.Run.Profile == "custom" {
		scenarios = append(scenarios,
			loadtest.LoadScenario("custom-write", engine, profile, factory, loadtest.WriteOnly()),
			loadtest.LoadScenario("custom-read", engine, profile, factory, loadtest.ReadOnly()),
			loadtest.LoadScenario("custom-mixed", engine, profile, factory, loadtest.ReadRatio(cfg.Run.ReadRatio)),
		)
	} else {
		scenarios = append(scenarios,
			loadtest.StandardScenarios(engine, factory, cfg.Run.IncludeHighLoad)...)
	}

	if cfg.Run.QueryIterations != 0 {
		bench := loadtest.NewQueryBenchmarker(logger)
		scenarios = append(scenarios, loadtest.QueryScenario(
			"query-count", bench, factory,
			"SELECT COUNT(*) FROM bench_payloads", nil, cfg.Run.QueryIterations))
	}
	return scenarios
}

func selectProfile(run config.RunConfig) loadtest.Profile {
	switch run.Profile {
	case "high":
		return loadtest.HighLoad()
	case "custom":
		var opts []loadtest.Option
		if run.Connections > 0 {
			opts = append(opts, loadtest.WithConnections(run.Connections))
		}
		if run.OpsPerSecond > 0 {
			opts = append(opts, loadtest.WithOpsPerSecond(run.OpsPerSecond))
		}
		if run.DataSizeBytes > 0 {
			opts = append(opts, loadtest.WithDataSize(run.DataSizeBytes))
		}
		if run.ThinkTimeMillis >= 0 {
			opts = append(opts, loadtest.WithThinkTime(time.Duration(run.ThinkTimeMillis)*time.Millisecond))
		}
		if run.DurationSeconds > 0 {
			opts = append(opts, loadtest.WithDuration(run.DurationSeconds))
		}
		return loadtest.Custom("Custom", opts...)
	default:
		return loadtest.LowLoad()
	}
}

func logReport(logger *zap.Logger, report *loadtest.SuiteReport) {
	for _, name := range report.Order {
		result := report.Results[name]
		if result.Failed() {
			logger.Error("scenario result",
				zap.String("scenario", name),
				zap.String("error", result.Err))
			continue
		}

		switch {
		case result.Output.Summary != nil:
			s := result.Output.Summary
			logger.Info("scenario result",
				zap.String("scenario", name),
				zap.Int("operations", s.TotalOperations),
				zap.Float64("success_rate", s.SuccessRate),
				zap.Float64("mean_ms", s.Durations.MeanMillis),
				zap.Float64("p95_ms", s.Durations.P95Millis),
				zap.Float64("p99_ms", s.Durations.P99Millis),
				zap.Float64("bytes_per_sec", s.BytesPerSecond))
		case result.Output.Bulk != nil:
			b := result.Output.Bulk
			logger.Info("scenario result",
				zap.String("scenario", name),
				zap.Int("rows_inserted", b.RowsInserted),
				zap.Int("batches", b.Batches),
				zap.Float64("rows_per_sec", b.RowsPerSecond))
		case result.Output.Query != nil:
			q := result.Output.Query
			logger.Info("scenario result",
				zap.String("scenario", name),
				zap.Int("successes", q.SuccessfulIterations),
				zap.Int("failures", q.FailedIterations),
				zap.Float64("mean_ms", q.MeanMillis),
				zap.Float64("avg_rows", q.AvgRows))
		}
	}
}
