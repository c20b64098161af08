package operations

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"feedcli/internal/infrastructure"
	"feedcli/pkg/contracts/domain"
)

// traceRun starts the span covering one whole run
func (r *Runner) traceRun(ctx context.Context, op domain.OperationType, inputs int) (context.Context, trace.Span) {
	return infrastructure.StartSpan(ctx, r.tracer, "operation.run."+string(op),
		attribute.String("operation.type", string(op)),
		attribute.Int("operation.inputs", inputs),
	)
}

// traceUnit starts the span covering one input file or archive
func (r *Runner) traceUnit(ctx context.Context, op domain.OperationType, input string) (context.Context, trace.Span) {
	return infrastructure.StartSpan(ctx, r.tracer, "operation.unit."+string(op),
		attribute.String("operation.type", string(op)),
		attribute.String("operation.input", input),
	)
}

// endUnit counts the outcomes per status on the unit span and ends it.
// The span is marked failed with the first failure's error.
func endUnit(span trace.Span, outcomes []domain.Outcome) {
	var err error
	counts := make(map[domain.OutcomeStatus]int, 3)
	for _, o := range outcomes {
		counts[o.Status]++
		if o.Status == domain.OutcomeFailed && err == nil {
			err = o.Err
		}
	}
	for status, n := range counts {
		span.SetAttributes(attribute.Int("outcome."+string(status), n))
	}
	infrastructure.EndSpan(span, err)
}

// endRun records the report counters on the run span and ends it
func endRun(span trace.Span, report *domain.Report, err error) {
	if report != nil {
		span.SetAttributes(
			attribute.Int("report.succeeded", report.Succeeded),
			attribute.Int("report.skipped", report.Skipped),
			attribute.Int("report.failed", report.Failed),
			attribute.Bool("report.cancelled", report.Cancelled),
		)
	}
	infrastructure.EndSpan(span, err)
}
