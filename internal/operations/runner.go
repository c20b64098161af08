package operations

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"feedcli/internal/config"
	"feedcli/internal/dataprocessing"
	apperrors "feedcli/internal/errors"
	"feedcli/internal/exporter"
	"feedcli/internal/files"
	"feedcli/internal/infrastructure"
	"feedcli/internal/validation"
	"feedcli/pkg/contracts/domain"
)

// ErrRunInProgress is wrapped by the error returned when an operation is
// started while a run of the same operation is still active.
var ErrRunInProgress = errors.New("run already in progress")

// LookupLoader reads a lookup workbook into a table
type LookupLoader func(path, keyColumn, valueColumn string) (*dataprocessing.LookupTable, error)

// Runner executes the batch operations. Each operation allows one active run
// at a time; different operations may run concurrently.
type Runner struct {
	cfg           *config.Config
	logger        *slog.Logger
	extractor     *files.Extractor
	workbook      exporter.WorkbookWriter
	lookupLoader  LookupLoader
	validator     *validation.RequestValidator
	fileValidator *validation.FileValidator
	metrics       *Metrics
	tracer        trace.Tracer
	guards        map[domain.OperationType]*semaphore.Weighted
	throttle      time.Duration
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger used for structured run logs
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithWorkbookWriter sets the verify summary writer. A nil writer makes
// Verify fail with DependencyMissing.
func WithWorkbookWriter(w exporter.WorkbookWriter) Option {
	return func(r *Runner) { r.workbook = w }
}

// WithLookupLoader sets the lookup workbook reader. A nil loader makes
// Validate fail with DependencyMissing.
func WithLookupLoader(l LookupLoader) Option {
	return func(r *Runner) { r.lookupLoader = l }
}

// WithMetrics records run metrics into m
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithExtractor sets the archive extractor used by Clean
func WithExtractor(e *files.Extractor) Option {
	return func(r *Runner) { r.extractor = e }
}

// WithTracerProvider starts run and unit spans on tp instead of the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) { r.tracer = infrastructure.Tracer(tp) }
}

// WithProgressInterval throttles progress updates to one per interval
func WithProgressInterval(d time.Duration) Option {
	return func(r *Runner) { r.throttle = d }
}

// NewRunner creates a runner using cfg for file names, columns and parser settings
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Runner{
		cfg:          cfg,
		logger:       slog.Default(),
		workbook:     exporter.NewExcelWriter(exporter.NewCSVWriter(nil)),
		lookupLoader: dataprocessing.LoadLookupTable,
		validator:    validation.NewRequestValidator(),
		throttle:     100 * time.Millisecond,
		guards: map[domain.OperationType]*semaphore.Weighted{
			domain.OperationClean:      semaphore.NewWeighted(1),
			domain.OperationVerify:     semaphore.NewWeighted(1),
			domain.OperationValidate:   semaphore.NewWeighted(1),
			domain.OperationMasterList: semaphore.NewWeighted(1),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = infrastructure.WithComponent(r.logger, "runner")
	r.fileValidator = validation.NewFileValidator(r.logger)
	if r.tracer == nil {
		r.tracer = infrastructure.Tracer(nil)
	}
	if r.extractor == nil {
		r.extractor = files.NewExtractor(cfg.Clean.MemberExt, r.logger)
	}
	return r
}

// acquire takes the single-run guard of op without waiting
func (r *Runner) acquire(op domain.OperationType) (func(), error) {
	guard := r.guards[op]
	if !guard.TryAcquire(1) {
		r.metrics.ObserveRejected(op)
		return nil, apperrors.NewBusyError(string(op), ErrRunInProgress)
	}
	return func() { guard.Release(1) }, nil
}

// parseOptions returns the parser settings from config
func (r *Runner) parseOptions() dataprocessing.ParseOptions {
	return dataprocessing.ParseOptions{SniffBytes: r.cfg.Parser.SniffBytes}
}

// outputWriter returns a writer placing relative paths in dir
func outputWriter(dir string) *exporter.CSVWriter {
	return exporter.NewCSVWriter(&config.Paths{WorkDir: dir, OutputDir: dir})
}

// unitFunc processes one input and returns its outcomes. It never aborts the run.
type unitFunc func(ctx context.Context, input string) []domain.Outcome

// runInputs processes inputs one at a time in order. Cancellation is checked
// before each input only, so an input that has started always finishes.
func (r *Runner) runInputs(ctx context.Context, op domain.OperationType, inputs []string, rep Reporter, unit unitFunc) *domain.Report {
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, span := r.traceRun(ctx, op, len(inputs))

	report := &domain.Report{Operation: op, RunID: infrastructure.GetRunID(ctx)}
	tracker := NewProgressTracker(string(op), len(inputs))
	start := time.Now()

	r.logger.InfoContext(ctx, "run started",
		slog.String("operation", string(op)),
		slog.Int("inputs", len(inputs)))
	rep.Progress(0)

	for _, input := range inputs {
		if ctx.Err() != nil {
			report.Cancelled = true
			r.logger.WarnContext(ctx, "run cancelled",
				slog.String("operation", string(op)),
				slog.String("status", tracker.StatusLine()))
			break
		}

		unitCtx, unitSpan := r.traceUnit(ctx, op, input)
		outcomes := unit(unitCtx, input)
		endUnit(unitSpan, outcomes)

		for _, o := range outcomes {
			report.Add(o)
			r.metrics.ObserveOutcome(op, o)
			r.logOutcome(ctx, op, o)
		}

		tracker.Increment(filepath.Base(input))
		rep.Progress(tracker.Percent())
		r.logger.DebugContext(ctx, "progress",
			slog.String("operation", string(op)),
			slog.String("status", tracker.StatusLine()),
			slog.String("eta", tracker.GetETA()))
	}

	report.Elapsed = time.Since(start)
	r.metrics.ObserveRun(op, report)
	endRun(span, report, nil)

	r.logger.InfoContext(ctx, "run finished",
		slog.String("operation", string(op)),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Bool("cancelled", report.Cancelled),
		slog.Duration("elapsed", report.Elapsed))
	return report
}

func (r *Runner) logOutcome(ctx context.Context, op domain.OperationType, o domain.Outcome) {
	attrs := []any{
		slog.String("operation", string(op)),
		slog.String("input", o.Input),
		slog.String("status", string(o.Status)),
	}
	if o.Member != "" {
		attrs = append(attrs, slog.String("member", o.Member))
	}
	switch o.Status {
	case domain.OutcomeFailed:
		attrs = append(attrs, slog.String("error", o.Reason))
		r.logger.ErrorContext(ctx, "unit failed", attrs...)
	case domain.OutcomeSkipped:
		attrs = append(attrs, slog.String("reason", o.Reason))
		r.logger.WarnContext(ctx, "unit skipped", attrs...)
	default:
		attrs = append(attrs, slog.String("output", o.OutputPath))
		r.logger.DebugContext(ctx, "unit succeeded", attrs...)
	}
}

// reporter wraps rep with the configured throttle; nil discards everything
func (r *Runner) reporter(rep Reporter) Reporter {
	if rep == nil {
		return discardReporter{}
	}
	return Throttle(rep, r.throttle)
}
