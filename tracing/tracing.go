package tracing

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
)

// InitTracer configures a jaeger tracer from the JAEGER_* environment and
// registers it as the global opentracing tracer.
func InitTracer(l logrus.FieldLogger) func(serviceName string) (io.Closer, error) {
	return func(serviceName string) (io.Closer, error) {
		cfg, err := config.FromEnv()
		if err != nil {
			return nil, err
		}
		cfg.ServiceName = serviceName
		if cfg.Sampler.Type == "" {
			cfg.Sampler.Type = jaeger.SamplerTypeConst
			cfg.Sampler.Param = 1
		}

		tracer, closer, err := cfg.NewTracer(config.Logger(LogrusAdapter{logger: l}))
		if err != nil {
			return nil, err
		}
		opentracing.SetGlobalTracer(tracer)
		return closer, nil
	}
}

func Teardown(l logrus.FieldLogger) func(tc io.Closer) func() {
	return func(tc io.Closer) func() {
		return func() {
			if err := tc.Close(); err != nil {
				l.WithError(err).Errorf("Unable to close tracer.")
			}
		}
	}
}

// StartSpan starts a root span and returns a logger carrying its trace id.
func StartSpan(l logrus.FieldLogger, name string, opts ...opentracing.StartSpanOption) (logrus.FieldLogger, opentracing.Span) {
	span := opentracing.StartSpan(name, opts...)
	return withSpanFields(l, name, span), span
}

// StartSpanFromContext starts a child of the span carried by ctx, if any.
func StartSpanFromContext(ctx context.Context, l logrus.FieldLogger, name string) (logrus.FieldLogger, opentracing.Span, context.Context) {
	span, sctx := opentracing.StartSpanFromContext(ctx, name)
	return withSpanFields(l, name, span), span, sctx
}

func withSpanFields(l logrus.FieldLogger, name string, span opentracing.Span) logrus.FieldLogger {
	fields := logrus.Fields{"span.name": name}
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		fields["trace.id"] = sc.TraceID().String()
		fields["span.id"] = sc.SpanID().String()
	}
	return l.WithFields(fields)
}

// LogrusAdapter satisfies jaeger.Logger.
type LogrusAdapter struct {
	logger logrus.FieldLogger
}

func (a LogrusAdapter) Error(msg string) {
	a.logger.Error(msg)
}

func (a LogrusAdapter) Infof(msg string, args ...interface{}) {
	a.logger.Debugf(msg, args...)
}
