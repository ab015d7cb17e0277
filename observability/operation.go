package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/livechat/logger"
)

// Operation tracks one traced and measured unit of work, such as a livechat
// action call.
type Operation struct {
	Service   string
	Name      string
	RequestID string
	StartTime time.Time

	metrics *Metrics
	span    trace.Span
}

type operationKey struct{}

// StartOperation opens a span named "livechat.action <name>" and returns a
// context carrying both the span and the Operation. metrics may be nil.
func StartOperation(ctx context.Context, metrics *Metrics, service, name string) (context.Context, *Operation) {
	op := &Operation{
		Service:   service,
		Name:      name,
		RequestID: logger.RequestIDFromContext(ctx),
		StartTime: time.Now(),
		metrics:   metrics,
	}
	ctx, op.span = StartSpan(ctx, SpanAction+" "+name)
	op.span.SetAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrOperationName, name),
	)
	if op.RequestID != "" {
		op.span.SetAttributes(attribute.String(AttrRequestID, op.RequestID))
	}
	return context.WithValue(ctx, operationKey{}, op), op
}

// OperationFromContext returns the Operation started on ctx, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// End closes the span and records the action metric. status is "ok" when
// err is nil and "error" otherwise.
func (o *Operation) End(ctx context.Context, err error) {
	duration := o.Duration()
	status := "ok"
	if err != nil {
		status = "error"
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
	}
	o.span.SetAttributes(attribute.Int64(AttrDurationMs, duration.Milliseconds()))
	o.span.End()

	if o.metrics != nil {
		o.metrics.RecordAction(ctx, o.Service, o.Name, status, duration)
	}
}

// Duration returns the time elapsed since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.StartTime)
}
