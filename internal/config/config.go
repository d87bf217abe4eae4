// SPDX-License-Identifier: MIT

// Package config loads daemon configuration with precedence
// ENV > YAML file > defaults.
package config

import (
	"fmt"
	"time"

	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
)

// Config is the effective daemon configuration.
type Config struct {
	Listen     string `yaml:"listen"`
	LogLevel   string `yaml:"log_level"`
	LogService string `yaml:"log_service"`

	// RateLimitRPM is the per-IP request budget per minute; 0 disables
	// rate limiting.
	RateLimitRPM int `yaml:"rate_limit_rpm"`

	Browser BrowserConfig `yaml:"browser"`
	Tracing TracingConfig `yaml:"tracing"`

	// Vendors optionally overrides the built-in candidate bundle list.
	// The first bundle supplies the canonical names of the resolved
	// mapping, so overrides normally keep the standard bundle first.
	Vendors []fullscreen.Vendor `yaml:"vendors"`

	Version string `yaml:"-"`
}

// BrowserConfig selects how the daemon reaches a page to control.
type BrowserConfig struct {
	// RemoteURL is a DevTools websocket URL to attach to. When empty the
	// daemon spawns its own Chrome.
	RemoteURL string `yaml:"remote_url"`

	// PageURL is navigated to after launch when set.
	PageURL string `yaml:"page_url"`

	// ExecPath overrides Chrome binary discovery.
	ExecPath string `yaml:"exec_path"`

	Headless bool `yaml:"headless"`
	Kiosk    bool `yaml:"kiosk"`

	// EvalTimeout bounds each protocol round-trip.
	EvalTimeout time.Duration `yaml:"eval_timeout"`
}

// TracingConfig configures OTLP trace export.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ExporterType string  `yaml:"exporter_type"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"sampling_rate"`
}

// Defaults returns the baseline configuration before file and env overlays.
func Defaults() Config {
	return Config{
		Listen:       ":8686",
		LogLevel:     "info",
		LogService:   "fullscreend",
		RateLimitRPM: 600,
		Browser: BrowserConfig{
			Headless:    false,
			Kiosk:       true,
			EvalTimeout: 10 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			ExporterType: "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 0.1,
		},
	}
}

// Validate rejects configurations the daemon cannot run with.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.RateLimitRPM < 0 {
		return fmt.Errorf("rate_limit_rpm must not be negative")
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("tracing sampling_rate must be within [0,1], got %v", c.Tracing.SamplingRate)
	}
	if c.Tracing.Enabled && c.Tracing.ExporterType != "grpc" && c.Tracing.ExporterType != "http" {
		return fmt.Errorf("tracing exporter_type must be grpc or http, got %q", c.Tracing.ExporterType)
	}
	for i, v := range c.Vendors {
		if !v.Complete() {
			return fmt.Errorf("vendors[%d] is incomplete: every bundle needs all six names", i)
		}
	}
	if c.Browser.EvalTimeout < 0 {
		return fmt.Errorf("browser eval_timeout must not be negative")
	}
	return nil
}
