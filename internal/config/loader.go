// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader assembles the effective configuration. Precedence:
// environment > file > defaults.
type Loader struct {
	path    string // optional YAML file
	version string
}

// NewLoader returns a loader for the optional YAML file at path.
func NewLoader(path, version string) *Loader {
	return &Loader{path: path, version: version}
}

// Load merges defaults, the YAML file (when present) and environment
// overrides, then validates the result.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing file is fine; env and defaults carry the config.
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", l.path, err)
			}
		}
	}

	applyEnv(&cfg)
	cfg.Version = l.version

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays FSD_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.Listen = ParseString("FSD_LISTEN", cfg.Listen)
	cfg.LogLevel = ParseString("FSD_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = ParseString("FSD_LOG_SERVICE", cfg.LogService)
	cfg.RateLimitRPM = ParseInt("FSD_RATE_LIMIT_RPM", cfg.RateLimitRPM)

	cfg.Browser.RemoteURL = ParseString("FSD_BROWSER_REMOTE_URL", cfg.Browser.RemoteURL)
	cfg.Browser.PageURL = ParseString("FSD_BROWSER_PAGE_URL", cfg.Browser.PageURL)
	cfg.Browser.ExecPath = ParseString("FSD_BROWSER_EXEC_PATH", cfg.Browser.ExecPath)
	cfg.Browser.Headless = ParseBool("FSD_BROWSER_HEADLESS", cfg.Browser.Headless)
	cfg.Browser.Kiosk = ParseBool("FSD_BROWSER_KIOSK", cfg.Browser.Kiosk)
	cfg.Browser.EvalTimeout = ParseDuration("FSD_BROWSER_EVAL_TIMEOUT", cfg.Browser.EvalTimeout)

	cfg.Tracing.Enabled = ParseBool("FSD_TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.ExporterType = ParseString("FSD_TRACING_EXPORTER", cfg.Tracing.ExporterType)
	cfg.Tracing.Endpoint = ParseString("FSD_TRACING_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = ParseFloat("FSD_TRACING_SAMPLING_RATE", cfg.Tracing.SamplingRate)
}
