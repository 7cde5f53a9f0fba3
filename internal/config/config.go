// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package config loads server configuration. Precedence, lowest to
// highest: flag defaults, YAML config file, explicit command-line flags.
// Secrets (database URL, token signing secret) additionally fall back to
// environment variables so they can stay out of config files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Environment variables consulted when the corresponding key is not set by
// file or flag.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvTokenSecret = "STUDYHALL_TOKEN_SECRET"
)

// Default values for server flags.
const (
	DefaultListenAddr  = ":8080"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
	DefaultTokenTTL    = time.Hour
)

// Config holds the full server configuration.
type Config struct {
	ListenAddr  string        `koanf:"listen-addr"`
	MetricsAddr string        `koanf:"metrics-addr"`
	DatabaseURL string        `koanf:"database-url"`
	TokenSecret string        `koanf:"token-secret"`
	TokenTTL    time.Duration `koanf:"token-ttl"`
	LogFormat   string        `koanf:"log-format"`
}

// RegisterFlags declares the server flags on the given flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("listen-addr", DefaultListenAddr, "API listen address")
	flags.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	flags.String("database-url", "", "PostgreSQL connection URL (default: $DATABASE_URL)")
	flags.String("token-secret", "", "session token signing secret (default: $STUDYHALL_TOKEN_SECRET)")
	flags.Duration("token-ttl", DefaultTokenTTL, "session token lifetime")
	flags.String("log-format", DefaultLogFormat, "log format (json or text)")
	flags.String("config", "", "path to YAML config file")
}

// Load resolves configuration from the file named by --config (if any),
// the flag set, and the environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_INVALID").
				With("path", path).
				Wrap(err)
		}
	}

	// Flags override the file; unchanged flags contribute their defaults
	// only for keys the file did not set.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code("CONFIG_FLAGS_INVALID").Wrap(err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv(EnvTokenSecret)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	return cfg, nil
}

// Validate checks that the configuration is complete enough to start.
func (cfg *Config) Validate() error {
	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen-addr is required")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set --database-url or %s)", EnvDatabaseURL)
	}
	if cfg.TokenSecret == "" {
		return fmt.Errorf("token secret is required (set --token-secret or %s)", EnvTokenSecret)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.LogFormat)
	}
	return nil
}
