// SPDX-License-Identifier: MIT

package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/rysi3k/video-fullscreen/internal/telemetry"
)

// Tracing creates a middleware that adds OpenTelemetry tracing to HTTP
// requests, extracting W3C trace context from incoming headers.
func Tracing(tracerName string) func(http.Handler) http.Handler {
	tracer := telemetry.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			tw := &traceWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(tw, r.WithContext(ctx))

			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
				attribute.Int("http.status_code", tw.statusCode),
			)
			if tw.statusCode >= 500 {
				span.SetStatus(codes.Error, http.StatusText(tw.statusCode))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}

// traceWriter wraps http.ResponseWriter to capture the status code.
type traceWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (tw *traceWriter) WriteHeader(statusCode int) {
	if !tw.written {
		tw.statusCode = statusCode
		tw.written = true
	}
	tw.ResponseWriter.WriteHeader(statusCode)
}

func (tw *traceWriter) Write(b []byte) (int, error) {
	if !tw.written {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}

// Hijack lets websocket upgrades pass through the wrapper.
func (tw *traceWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := tw.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, errors.New("middleware: underlying writer does not support hijacking")
}
