// SPDX-License-Identifier: MIT

// Package api provides the HTTP control surface over one fullscreen
// controller.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rysi3k/video-fullscreen/internal/api/middleware"
	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
	"github.com/rysi3k/video-fullscreen/internal/log"
	"github.com/rysi3k/video-fullscreen/internal/metrics"
)

// Env is the environment surface the handlers need beyond the controller:
// resolving client-supplied selectors to elements.
type Env interface {
	fullscreen.Document

	LookupElement(selector string) (fullscreen.Element, error)
	LookupVideo(selector string) (fullscreen.Video, error)
}

// Config carries the server's cross-cutting settings.
type Config struct {
	RateLimitRPM   int
	TracingService string // empty disables tracing
	EnableMetrics  bool
	EnableLogging  bool
}

// Server exposes one controller over HTTP. The controller itself follows
// the host's cooperative single-threaded model, so every controller access
// is serialized behind mu.
type Server struct {
	mu   sync.Mutex
	ctrl *fullscreen.Controller
	env  Env
	cfg  Config
	hub  *hub

	offChange func()
	offError  func()

	started time.Time
	logger  zerolog.Logger
}

// New wires a server to the controller and environment and subscribes to
// the controller's change/error notifications for event fan-out. Close
// releases the subscriptions.
func New(ctrl *fullscreen.Controller, env Env, cfg Config) *Server {
	s := &Server{
		ctrl:    ctrl,
		env:     env,
		cfg:     cfg,
		hub:     newHub(),
		started: time.Now(),
		logger:  log.WithComponent("api"),
	}
	s.offChange = ctrl.OnChange(func(ev fullscreen.Event) {
		metrics.ChangeEventsTotal.Inc()
		s.hub.broadcast(wsEvent{Type: "change", DOMEvent: ev.Type, At: time.Now().UTC()})
	})
	s.offError = ctrl.OnError(func(ev fullscreen.Event) {
		metrics.ErrorEventsTotal.Inc()
		s.hub.broadcast(wsEvent{Type: "error", DOMEvent: ev.Type, At: time.Now().UTC()})
	})
	return s
}

// Close unsubscribes from the controller and drops websocket clients.
func (s *Server) Close() {
	s.offChange()
	s.offError()
	s.hub.close()
}

// Routes assembles the router with the canonical middleware stack.
func (s *Server) Routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		TracingService: s.cfg.TracingService,
		EnableMetrics:  s.cfg.EnableMetrics,
		EnableLogging:  s.cfg.EnableLogging,
		RateLimitRPM:   s.cfg.RateLimitRPM,
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/fullscreen", s.handleRequest)
		r.Delete("/fullscreen", s.handleExit)
		r.Post("/fullscreen/toggle", s.handleToggle)
		r.Get("/events", s.handleEvents)
	})

	return r
}

// mode names the controller's fixed operating mode.
func (s *Server) mode() string {
	if s.ctrl.API() != nil {
		return "standard"
	}
	return "legacy"
}
