package telemetry

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/wine-dashboard"

// TraceIDHeader echoes the request's trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	duration, durErr := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	total, totErr := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"))
	inFlight, flyErr := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"))

	if err := errors.Join(durErr, totErr, flyErr); err != nil {
		return nil, err
	}

	return &httpInstruments{duration: duration, total: total, inFlight: inFlight}, nil
}

// Tracing starts a server span per request. Register it before RequestMetrics.
func Tracing(service string, opts ...otelgin.Option) gin.HandlerFunc {
	return otelgin.Middleware(service, opts...)
}

// RequestMetrics records OTel request metrics, tags the span with the
// selected report and puts the trace ID on the response and the request
// logger.
func RequestMetrics() gin.HandlerFunc {
	inst, err := newHTTPInstruments(otel.Meter(instrumentationName + "/http"))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()

		span := trace.SpanFromContext(c.Request.Context())
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Header(TraceIDHeader, sc.TraceID().String())
			c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), sc.TraceID().String()))
		}

		if report := c.Param("report"); report != "" {
			span.SetAttributes(attribute.String("dashboard.report", report))
		}

		if inst == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		attrs := metric.WithAttributes(requestAttrs(c)...)

		inst.inFlight.Add(ctx, 1, attrs)
		defer inst.inFlight.Add(ctx, -1, attrs)

		c.Next()

		done := metric.WithAttributes(append(requestAttrs(c), attribute.Int("http.status_code", c.Writer.Status()))...)
		inst.duration.Record(ctx, time.Since(start).Seconds(), done)
		inst.total.Add(ctx, 1, done)
	}
}

// requestAttrs labels a request by method and route template, plus the
// report for report API routes.
func requestAttrs(c *gin.Context) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", c.FullPath()),
	}

	if report := c.Param("report"); report != "" && c.FullPath() != "" {
		attrs = append(attrs, attribute.String("dashboard.report", report))
	}

	return attrs
}
