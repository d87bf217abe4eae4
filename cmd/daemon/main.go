// SPDX-License-Identifier: MIT

// Command daemon runs the fullscreen control service: it attaches to (or
// spawns) a Chrome page, resolves which fullscreen API variant the page
// supports and exposes the uniform controller over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rysi3k/video-fullscreen/internal/api"
	"github.com/rysi3k/video-fullscreen/internal/cdp"
	"github.com/rysi3k/video-fullscreen/internal/config"
	"github.com/rysi3k/video-fullscreen/internal/domtest"
	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
	fsdlog "github.com/rysi3k/video-fullscreen/internal/log"
	"github.com/rysi3k/video-fullscreen/internal/metrics"
	"github.com/rysi3k/video-fullscreen/internal/telemetry"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	fake := flag.Bool("fake", false, "serve an in-memory fake page instead of attaching to Chrome")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Safe defaults until the real config is loaded.
	fsdlog.Configure(fsdlog.Config{
		Level:   "info",
		Service: "fullscreend",
		Version: version,
	})
	logger := fsdlog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(*configPath, version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
	}

	fsdlog.Configure(fsdlog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})

	if *configPath != "" {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", *configPath).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	tracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: version,
		ExporterType:   cfg.Tracing.ExporterType,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("failed to initialise tracing")
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	var env api.Env
	if *fake {
		logger.Warn().
			Str("event", "env.fake").
			Msg("running against an in-memory fake page; no browser is attached")
		env = domtest.NewStandardDoc()
	} else {
		page, err := cdp.Launch(ctx, cdp.Options{
			RemoteURL:   cfg.Browser.RemoteURL,
			PageURL:     cfg.Browser.PageURL,
			ExecPath:    cfg.Browser.ExecPath,
			Headless:    cfg.Browser.Headless,
			Kiosk:       cfg.Browser.Kiosk,
			EvalTimeout: cfg.Browser.EvalTimeout,
		})
		if err != nil {
			logger.Fatal().
				Err(err).
				Str("event", "cdp.launch_failed").
				Msg("failed to attach to Chrome")
		}
		defer page.Close()
		env = page
	}

	vendors := fullscreen.DefaultVendors()
	var opts []fullscreen.Option
	if len(cfg.Vendors) > 0 {
		vendors = cfg.Vendors
		opts = append(opts, fullscreen.WithVendors(cfg.Vendors))
	}

	ctrl := fullscreen.New(env, opts...)
	if m := ctrl.API(); m != nil {
		metrics.SetResolvedVendor(m[vendors[0].Exit])
		logger.Info().
			Str("event", "startup.mode").
			Str("mode", "standard").
			Str("exit_method", m[vendors[0].Exit]).
			Msg("standard fullscreen API resolved")
	} else {
		metrics.SetResolvedVendor("")
		logger.Info().
			Str("event", "startup.mode").
			Str("mode", "legacy").
			Bool("video_capable", ctrl.Enabled()).
			Msg("no standard API variant, legacy video path active")
	}

	tracingService := ""
	if cfg.Tracing.Enabled {
		tracingService = cfg.LogService
	}
	srv := api.New(ctrl, env, api.Config{
		RateLimitRPM:   cfg.RateLimitRPM,
		TracingService: tracingService,
		EnableMetrics:  true,
		EnableLogging:  true,
	})
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("addr", cfg.Listen).
		Msg("starting fullscreend")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return config.Watch(gctx, loader, func(next config.Config) {
			if fsdlog.SetLevel(next.LogLevel) {
				logger.Info().
					Str("event", "config.applied").
					Str("log_level", next.LogLevel).
					Msg("log level updated")
			}
			if next.Listen != cfg.Listen {
				logger.Warn().
					Str("event", "config.restart_required").
					Str("listen", next.Listen).
					Msg("listen address changed; restart required to apply")
			}
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "daemon.failed").
			Msg("daemon exited with error")
	}

	logger.Info().Msg("server exiting")
}
