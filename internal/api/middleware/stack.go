// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"github.com/go-chi/chi/v5"

	fsdlog "github.com/rysi3k/video-fullscreen/internal/log"
)

// StackConfig configures the canonical HTTP ingress middleware stack.
type StackConfig struct {
	// TracingService enables tracing when non-empty.
	TracingService string

	EnableMetrics bool
	EnableLogging bool

	// RateLimitRPM is the per-IP request budget per minute; 0 disables.
	RateLimitRPM int
}

// NewRouter constructs a chi router with the canonical middleware stack.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the canonical middleware stack to r.
func ApplyStack(r chi.Router, cfg StackConfig) {
	// 1. Recoverer (outermost safety net)
	r.Use(Recoverer)
	// 2. RequestID (correlation early)
	r.Use(RequestID)
	// 3. Metrics (track all requests)
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	// 4. Tracing
	if cfg.TracingService != "" {
		r.Use(Tracing(cfg.TracingService))
	}
	// 5. Logging (wraps handlers, captures full latency)
	if cfg.EnableLogging {
		r.Use(fsdlog.Middleware())
	}
	// 6. Rate limit (global protection)
	if cfg.RateLimitRPM > 0 {
		r.Use(RateLimit(cfg.RateLimitRPM))
	}
}
