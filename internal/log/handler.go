package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/stocklight/stocklight/pkg/correlationid"
)

var _ slog.Handler = (*contextHandler)(nil)

// contextHandler enriches records with correlation and trace data carried
// in the context.
type contextHandler struct {
	h slog.Handler
}

func newContextHandler(h slog.Handler) contextHandler {
	return contextHandler{h: h}
}

func (ch contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return ch.h.Enabled(ctx, level)
}

func (ch contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := correlationid.FromContext(ctx); ok {
		r.Add("correlation_id", slog.StringValue(id))
	}

	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		r.Add("trace_id", slog.StringValue(spanCtx.TraceID().String()))
		r.Add("span_id", slog.StringValue(spanCtx.SpanID().String()))
	}

	return ch.h.Handle(ctx, r)
}

func (ch contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newContextHandler(ch.h.WithAttrs(attrs))
}

func (ch contextHandler) WithGroup(name string) slog.Handler {
	return newContextHandler(ch.h.WithGroup(name))
}
