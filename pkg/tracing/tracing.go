// Package tracing wires OpenTelemetry spans for simulation runs.
// Until Init is called every span is a no-op.
package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/Gthulhu/schedsim/config"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/Gthulhu/schedsim"

var (
	providerMu sync.Mutex
	provider   *sdktrace.TracerProvider
)

// InitWithConfig installs the stdout exporter when tracing is enabled.
// Spans go to cfg.OutputFile, or stdout when it is empty.
// The returned func flushes pending spans and closes the output file; it is never nil.
func InitWithConfig(cfg config.TracingConfig, version string) (func(context.Context) error, error) {
	if !cfg.Enable {
		return func(context.Context) error { return nil }, nil
	}
	var (
		w io.Writer = os.Stdout
		f *os.File
	)
	if cfg.OutputFile != "" {
		var err error
		f, err = os.Create(cfg.OutputFile)
		if err != nil {
			return nil, errors.Wrapf(err, "create trace file %s", cfg.OutputFile)
		}
		w = f
	}
	if err := Init(cfg.ServiceName, version, w); err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, err
	}
	return func(ctx context.Context) error {
		err := Shutdown(ctx)
		if f != nil {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = errors.Wrapf(closeErr, "close trace file %s", cfg.OutputFile)
			}
		}
		return err
	}, nil
}

// Init registers a global tracer provider exporting to w.
// While a provider is installed further calls are no-ops.
func Init(serviceName, version string, w io.Writer) error {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return errors.Wrap(err, "create stdout exporter")
	}
	return InitWithExporter(serviceName, version, exporter)
}

func InitWithExporter(serviceName, version string, exporter sdktrace.SpanExporter) error {
	providerMu.Lock()
	defer providerMu.Unlock()
	if provider != nil {
		return nil
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return errors.Wrap(err, "create trace resource")
	}
	provider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return nil
}

// Shutdown flushes and removes the installed provider. Spans started afterwards are no-ops.
func Shutdown(ctx context.Context) error {
	providerMu.Lock()
	defer providerMu.Unlock()
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	provider = nil
	otel.SetTracerProvider(noop.NewTracerProvider())
	return errors.Wrap(err, "shutdown tracer provider")
}

// StartSpan starts an internal span carrying attrs
func StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, trace.Span) {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(kv...),
	)
}

// EndSpan records err, if any, and ends span
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
