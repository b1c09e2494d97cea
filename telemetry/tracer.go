package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/fieldnation/devportal/telemetry/instrumentation"
	"github.com/fieldnation/devportal/utils"
)

// NewSpanFromContext starts a span with the global tracer provider which is a no-op
// unless traces are enabled.
func NewSpanFromContext(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.GetTracerProvider().
		Tracer(
			instrumentation.Name,
			trace.WithInstrumentationVersion(utils.VersionName),
		).Start(ctx, name, opts...)
}
