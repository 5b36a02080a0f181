// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package config loads server configuration from an optional YAML file
// and command-line flags. Precedence is defaults, then file, then
// flags. The database URL is an environment concern (DATABASE_URL) and
// never lives in config files.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config holds all server settings.
type Config struct {
	Server struct {
		Addr string `koanf:"addr"`
	} `koanf:"server"`
	Observability struct {
		Addr string `koanf:"addr"`
	} `koanf:"observability"`
	Log struct {
		Format string `koanf:"format"`
		Level  string `koanf:"level"`
	} `koanf:"log"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Observability.Addr = "127.0.0.1:9100"
	cfg.Log.Format = "json"
	cfg.Log.Level = "info"
	return cfg
}

// RegisterFlags declares the config flags on a flag set. Flag defaults
// mirror Defaults so --help shows the effective baseline.
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := Defaults()
	flags.String("server.addr", defaults.Server.Addr, "API listen address")
	flags.String("observability.addr", defaults.Observability.Addr, "metrics/health listen address")
	flags.String("log.format", defaults.Log.Format, "log format (json or text)")
	flags.String("log.level", defaults.Log.Level, "log level (debug, info, warn, error)")
}

// Load builds the effective configuration. path may be empty or point
// to a YAML file; a missing file at the default path is not an error.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, oops.Code("CONFIG_FILE_INVALID").
					With("path", path).
					Wrap(err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, oops.Code("CONFIG_FILE_UNREADABLE").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		// Passing k makes posflag use flag defaults only for keys the
		// file did not set, and explicit flags override everything.
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_INVALID").Wrap(err)
		}
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}
	return cfg, nil
}

// DatabaseURL reads the database connection string from the
// environment.
func DatabaseURL() (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "", oops.Code("CONFIG_DATABASE_URL_MISSING").
			New("DATABASE_URL environment variable is required")
	}
	return dsn, nil
}
