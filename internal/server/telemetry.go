package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	telemetryotel "session-auth-service/backend/internal/telemetry/otel"
)

// TelemetryMiddleware returns middleware that records a span and a request
// counter per request. Best-effort: instrument creation failures disable the
// counter but never the request.
func TelemetryMiddleware(providers *telemetryotel.Providers) gin.HandlerFunc {
	tracer := providers.TracerProvider.Tracer("session-auth-service/backend/internal/server")
	meter := providers.MeterProvider.Meter("session-auth-service/backend/internal/server")
	requests, err := meter.Int64Counter("http.server.requests",
		otelmetric.WithDescription("HTTP requests by route and status"))
	if err != nil {
		requests = nil
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(c.Request.Context(),
			fmt.Sprintf("%s %s", c.Request.Method, route),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
			attribute.Int64("http.server.duration_ms", time.Since(start).Milliseconds()),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
		span.End()

		if requests != nil {
			requests.Add(ctx, 1, otelmetric.WithAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.response.status_code", status),
			))
		}
	}
}
