package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"feedcli/internal/config"
	apperrors "feedcli/internal/errors"
	"feedcli/internal/infrastructure"
	"feedcli/internal/operations"
	"feedcli/pkg/contracts"
	"feedcli/pkg/contracts/domain"
)

// app holds the global flags and what PersistentPreRunE builds from them
type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	logFile     string
	workDir     string
	exportLog   string
	metricsFile string
	traceFile   string

	cfg     *config.Config
	logger  *slog.Logger
	metrics *operations.Metrics
	runner  *operations.Runner
	buffer  *operations.BufferReporter
	tracing *infrastructure.Tracing
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "feedcli",
		Short: "Batch utility for vendor feed CSV files",
		Long: `feedcli cleans, totals, validates and compares vendor feed files.

  clean       unpack zip archives and clean their CSV members
  verify      total three numeric columns per file into a summary workbook
  validate    reshape files whose name is listed in a lookup workbook
  masterlist  compare one column of two files (difference or union)

Interrupting a run stops it between files; the file in progress finishes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: feedcli.yaml or configs/feedcli.yaml if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: json or text")
	flags.StringVar(&a.logFile, "log-file", "", "also write structured logs to this file")
	flags.StringVar(&a.workDir, "workdir", "", "base directory for relative paths (default: current directory)")
	flags.StringVar(&a.exportLog, "export-log", "", "write the run log lines to this file when the run ends")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file (default: metrics.textfile_path)")
	flags.StringVar(&a.traceFile, "trace-file", "", "write run and per-file spans as JSON to this file (default: tracing.file_path)")

	root.AddCommand(
		newCleanCmd(a),
		newVerifyCmd(a),
		newValidateCmd(a),
		newMasterListCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads config, applies flag overrides and builds the runner
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if a.logFile != "" {
		cfg.Logging.FilePath = a.logFile
		cfg.Logging.Output = "both"
	}
	if a.metricsFile == "" {
		a.metricsFile = cfg.Metrics.TextfilePath
	}
	if a.traceFile != "" {
		cfg.Tracing.FilePath = a.traceFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.buffer = operations.NewBufferReporter()
	opts := []operations.Option{operations.WithLogger(logger)}
	if a.metricsFile != "" {
		a.metrics = operations.NewMetrics()
		opts = append(opts, operations.WithMetrics(a.metrics))
	}

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, contracts.Version, logger)
	if err != nil {
		return err
	}
	if tracing != nil {
		a.tracing = tracing
		opts = append(opts, operations.WithTracerProvider(tracing.Provider()))
	}

	a.runner = operations.NewRunner(cfg, opts...)
	return nil
}

// paths resolves the working and output directories for one command
func (a *app) paths(outDir string) (*config.Paths, error) {
	return config.ResolvePaths(a.workDir, outDir)
}

// runFunc starts one operation with the reporter the CLI provides
type runFunc func(ctx context.Context, rep operations.Reporter) (*domain.Report, error)

// run executes op, prints its lines and summary, then writes the exported
// log and metrics. Any failed input makes the command fail after the summary.
func (a *app) run(cmd *cobra.Command, op runFunc) error {
	out := cmd.OutOrStdout()
	rep := operations.MultiReporter{printReporter{w: out}, a.buffer}
	if a.cfg.Logging.Output != "console" {
		rep = append(rep, operations.NewLogReporter(a.logger))
	}

	report, err := op(cmd.Context(), rep)
	finishErr := a.finish()
	if err != nil {
		switch {
		case apperrors.IsType(err, apperrors.ErrTypeBusy):
			a.logger.Warn("Another run is in progress", slog.String("error", err.Error()))
		case apperrors.IsPrecondition(err):
			a.logger.Error("Run rejected before processing",
				slog.String("error_type", string(apperrors.TypeOf(err))),
				slog.String("error", err.Error()))
		}
		return err
	}

	fmt.Fprintln(out, report.Summary())
	if finishErr != nil {
		return finishErr
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d input(s) failed", report.Failed)
	}
	return nil
}

// finish writes the run artifacts requested by flags, flushes spans and
// closes the log file
func (a *app) finish() error {
	defer infrastructure.CloseLogFile()

	if err := a.tracing.Shutdown(context.Background()); err != nil {
		return err
	}

	if a.exportLog != "" {
		if len(a.buffer.Lines()) == 0 {
			a.logger.Warn("run log is empty, nothing exported", slog.String("path", a.exportLog))
		} else if err := a.buffer.Export(a.exportLog); err != nil {
			return fmt.Errorf("failed to export log: %w", err)
		}
	}
	if a.metrics != nil {
		if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
			return err
		}
	}
	return nil
}

// printReporter writes run lines to the command output
type printReporter struct {
	w io.Writer
}

func (p printReporter) Log(line string) {
	fmt.Fprintln(p.w, line)
}

func (p printReporter) Progress(int) {}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}
