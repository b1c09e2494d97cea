package telemetry

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/fieldnation/devportal/utils"
)

const (
	serviceName        = "devportal"
	otlpExporterEnvKey = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitExporter configures the global tracer provider. The returned func
// has to be called before the process exits to push the last spans.
func InitExporter(ctx context.Context, opts *Options, log *logrus.Entry) (ShutdownFunc, error) {
	otel.SetErrorHandler(ErrorHandleFunc(func(e error) {
		if e != nil {
			log.WithError(e).Error()
		}
	}))

	if opts == nil || !opts.Traces {
		return noopShutdown, nil
	}

	return initTraceExporter(ctx, opts, log)
}

func initTraceExporter(ctx context.Context, opts *Options, log *logrus.Entry) (ShutdownFunc, error) {
	endpoint := opts.TracesEndpoint
	if ep := os.Getenv(otlpExporterEnvKey); ep != "" {
		endpoint = ep
	}

	clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
	if endpoint != "" {
		clientOpts = append(clientOpts, otlptracegrpc.WithEndpoint(endpoint))
	}

	traceExp, err := otlptrace.New(ctx, otlptracegrpc.NewClient(clientOpts...))
	if err != nil {
		return noopShutdown, err
	}

	hostname, err := os.Hostname()
	otel.Handle(err)

	name := opts.ServiceName
	if name == "" {
		name = serviceName
	}

	resources := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.HostName(hostname),
		semconv.ServiceName(name),
		semconv.ServiceVersion(utils.VersionName),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resources),
		sdktrace.WithBatcher(traceExp),
	)

	otel.SetTextMapPropagator(propagation.TraceContext{})
	otel.SetTracerProvider(tracerProvider)

	log.WithField("endpoint", endpoint).Info("devportal is pushing traces")

	return func(ctx context.Context) error {
		shtctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		return tracerProvider.Shutdown(shtctx)
	}, nil
}
