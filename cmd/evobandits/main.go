package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/evobandits/evobandits-go/cmd/common"
	studyerrors "github.com/evobandits/evobandits-go/internal/errors"
	"github.com/evobandits/evobandits-go/internal/logger"
	"github.com/evobandits/evobandits-go/internal/monitoring"
	"github.com/evobandits/evobandits-go/pkg/benchmarks"
	"github.com/evobandits/evobandits-go/pkg/config"
	"github.com/evobandits/evobandits-go/pkg/reporting"
)

const appName = "evobandits"

func main() {
	var (
		configFile  = flag.String("config", "", "Path to study configuration file (JSON)")
		benchmark   = flag.String("benchmark", config.DefaultBenchmark, "Benchmark objective ("+strings.Join(benchmarks.Names(), ", ")+")")
		trials      = flag.Int("trials", config.DefaultTrials, "Objective evaluations per run")
		runs        = flag.Int("runs", config.DefaultRuns, "Independent optimization runs")
		topK        = flag.Int("top-k", config.DefaultTopK, "Best arms kept per run")
		seed        = flag.Uint64("seed", 0, "Study seed (unset: random, not reproducible)")
		maximize    = flag.Bool("maximize", false, "Maximize instead of minimize")
		population  = flag.Int("population", 0, "Population size (0: config value)")
		noise       = flag.Float64("noise", 0, "Standard deviation of Gaussian noise added to the benchmark")
		formats     = flag.String("formats", "", "Comma separated report formats: console,csv,xlsx,json")
		metricsAddr = flag.String("metrics-addr", "", "Serve /metrics and /health on this address")
		runLog      = flag.Bool("run-log", false, "Write a study run log next to the reports")
	)
	commonFlags := common.RegisterCommonFlags()

	usage := common.NewUsageFormatter(appName, "genetic multi-armed bandit optimizer for noisy integer objectives").
		AddExample(appName+" -benchmark rosenbrock -trials 5000 -seed 42", "Minimize the Rosenbrock function").
		AddExample(appName+" -config configs/study.json -formats console,xlsx", "Run a configured study and write a workbook").
		AddExample(appName+" -noise 2 -runs 5 -top-k 3 -metrics-addr :9090", "Repeated noisy runs with Prometheus metrics")
	flag.Usage = usage.PrintUsage

	flag.Parse()

	if flag.NArg() > 0 {
		common.Error("Unexpected arguments: %s", strings.Join(flag.Args(), " "))
		usage.PrintShortUsage()
		os.Exit(2)
	}
	if common.CheckHelpAndVersion(appName, commonFlags, usage) {
		return
	}
	common.SetupLogger(commonFlags)
	common.Debug("%s %s", common.ProjectName, common.GetFullVersion())

	// Load environment variables from .env file
	if err := common.LoadEnvFile(*commonFlags.EnvFile); err != nil {
		common.Warn("Continuing with system environment: %v", err)
	}

	manager := config.NewStudyConfigManager()
	manager.SetEnvFile("")

	if *configFile != "" {
		*configFile = common.ResolvePath(*configFile, "configs", ".json")
		if err := common.NewFlagValidator().ValidateFile("config", *configFile, false).GetError(); err != nil {
			exit(studyerrors.NewConfigurationError("flags", "validate", err))
		}
	}
	cfg, err := manager.LoadConfig(*configFile)
	if err != nil {
		exit(studyerrors.NewConfigurationError("config", "load", err))
	}

	// Explicitly set flags override file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "benchmark":
			cfg.Objective.Benchmark = *benchmark
		case "trials":
			cfg.Run.Trials = *trials
		case "runs":
			cfg.Run.Runs = *runs
		case "top-k":
			cfg.Run.TopK = *topK
		case "seed":
			s := *seed
			cfg.Seed = &s
		case "maximize":
			cfg.Run.Maximize = *maximize
		case "population":
			cfg.Algorithm.PopulationSize = *population
		case "noise":
			cfg.Objective.Noise = *noise
		case "formats":
			cfg.Output.Formats = nil
			for _, format := range strings.Split(*formats, ",") {
				if format = strings.ToLower(strings.TrimSpace(format)); format != "" {
					cfg.Output.Formats = append(cfg.Output.Formats, format)
				}
			}
		case "metrics-addr":
			cfg.Metrics.Enabled = true
			cfg.Metrics.Address = *metricsAddr
		case "run-log":
			cfg.Output.RunLog = *runLog
		case "output":
			cfg.Output.Dir = *commonFlags.OutputDir
		}
	})

	if err := validateFlags(cfg, commonFlags); err != nil {
		exit(studyerrors.NewConfigurationError("flags", "validate", err))
	}
	if err := manager.ValidateConfig(cfg); err != nil {
		exit(studyerrors.NewConfigurationError("config", "validate", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, cfg, commonFlags); err != nil {
		exit(studyerrors.CategorizeError(err, "study", "execute"))
	}
}

// validateFlags checks the flag-facing settings after overrides were applied
func validateFlags(cfg *config.StudyConfig, flags *common.CommonFlags) error {
	validator := common.NewFlagValidator().
		ValidateInt("trials", cfg.Run.Trials, 1, 1<<30).
		ValidateInt("runs", cfg.Run.Runs, 1, 10000).
		ValidateChoice("benchmark", cfg.Objective.Benchmark, benchmarks.Names()).
		ValidateFloat("noise", cfg.Objective.Noise, 0, math.MaxFloat64).
		ValidateDirectory("output", cfg.Output.Dir)
	if *flags.Silent && *flags.Verbose {
		validator.AddError("-silent and -verbose cannot be combined")
	}
	return validator.GetError()
}

// exit reports a categorized error and terminates with its exit code
func exit(err *studyerrors.StudyError) {
	monitoring.RecordError(err.MetricLabel())
	common.Error("%v", err)
	if err.IsRetryable() {
		common.Info("The failure may be transient, running the study again can succeed")
	}
	os.Exit(err.ExitCode())
}

// execute runs the study, serves metrics while it runs and writes the reports
func execute(ctx context.Context, cfg *config.StudyConfig, flags *common.CommonFlags) error {
	common.Header("EvoBandits Study: " + cfg.Name)
	common.Info("Benchmark: %s | Trials: %d | Runs: %d | Top-K: %d", cfg.Objective.Benchmark, cfg.Run.Trials, cfg.Run.Runs, cfg.Run.TopK)

	r := &runner{cfg: cfg, verbose: *flags.Verbose}

	if cfg.Metrics.Enabled {
		r.health = monitoring.NewHealthChecker(time.Minute)
		srv := startMetricsServer(cfg.Metrics.Address, r.health)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	outputDir := reporting.NewPathManager(cfg.Output.Dir).GetDefaultOutputDir(cfg.Name)
	if cfg.Output.RunLog && !*flags.ConsoleOnly {
		runLog, err := logger.NewLogger(filepath.Join(outputDir, config.LogsDir), cfg.Name)
		if err != nil {
			return err
		}
		defer runLog.Close()
		runLog.Info("benchmark=%s trials=%d runs=%d top_k=%d maximize=%t",
			cfg.Objective.Benchmark, cfg.Run.Trials, cfg.Run.Runs, cfg.Run.TopK, cfg.Run.Maximize)
		r.runLog = runLog
		common.Debug("Run log: %s", runLog.GetLogPath())
	}

	common.Progress("Optimizing...")
	report, err := r.run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("study interrupted: %w", err)
		}
		return fmt.Errorf("study failed: %w", err)
	}
	common.Success("Finished in %s, best value %s", common.FormatDuration(report.Duration), common.FormatFloat(report.BestValue, -1))

	common.Section("Results")
	reportCfg := reporting.ReportingConfig{
		EnableConsole:   cfg.HasFormat("console") && !*flags.Silent,
		EnableFiles:     !*flags.ConsoleOnly,
		OutputDirectory: cfg.Output.Dir,
		CSVEnabled:      cfg.HasFormat("csv"),
		ExcelEnabled:    cfg.HasFormat("xlsx"),
		JSONEnabled:     cfg.HasFormat("json"),
	}
	manager := reporting.NewReportingManager(reportCfg)

	written, err := manager.ReportResults(report)
	if err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	if path, err := manager.ReportConfig(cfg, report); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	} else if path != "" {
		written = append(written, path)
	}

	for _, path := range written {
		common.Quiet("📁 %s", path)
	}
	return nil
}

func startMetricsServer(addr string, health *monitoring.HealthChecker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.Error("Metrics server failed: %v", err)
		}
	}()
	common.Info("Serving metrics on %s/metrics", addr)
	return srv
}
