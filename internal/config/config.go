// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package config loads server configuration from defaults, an optional
// YAML file, and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Store kinds.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Auth strategies.
const (
	StrategySession = "session"
	StrategyJWT     = "jwt"
)

// Credential hashers.
const (
	HasherSHA256   = "sha256"
	HasherArgon2id = "argon2id"
)

// Config is the resolved server configuration.
type Config struct {
	HTTP struct {
		Addr string `koanf:"addr"`
	} `koanf:"http"`
	Metrics struct {
		Addr string `koanf:"addr"`
	} `koanf:"metrics"`
	Log struct {
		Format string `koanf:"format"`
	} `koanf:"log"`
	Store struct {
		Kind        string `koanf:"kind"`
		DatabaseURL string `koanf:"database_url"`
	} `koanf:"store"`
	Auth struct {
		Strategy  string        `koanf:"strategy"`
		Hasher    string        `koanf:"hasher"`
		JWTSecret string        `koanf:"jwt_secret"`
		JWTTTL    time.Duration `koanf:"jwt_ttl"`
	} `koanf:"auth"`
}

func defaults() map[string]any {
	return map[string]any{
		"http.addr":     ":8080",
		"metrics.addr":  ":9090",
		"log.format":    "text",
		"store.kind":    StoreMemory,
		"auth.strategy": StrategySession,
		"auth.hasher":   HasherSHA256,
		"auth.jwt_ttl":  24 * time.Hour,
	}
}

// Load resolves configuration from defaults, then the YAML file at path
// (skipped when path is empty, tolerated when absent), then any flags
// set on flags.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	errb := oops.Code("CONFIG_INVALID")

	switch c.Store.Kind {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return errb.Errorf("store.database_url is required when store.kind is %q", StorePostgres)
		}
	default:
		return errb.With("kind", c.Store.Kind).Errorf("unknown store kind")
	}

	switch c.Auth.Strategy {
	case StrategySession:
	case StrategyJWT:
		if c.Auth.JWTSecret == "" {
			return errb.Errorf("auth.jwt_secret is required when auth.strategy is %q", StrategyJWT)
		}
		if c.Auth.JWTTTL <= 0 {
			return errb.With("ttl", c.Auth.JWTTTL).Errorf("auth.jwt_ttl must be positive")
		}
	default:
		return errb.With("strategy", c.Auth.Strategy).Errorf("unknown auth strategy")
	}

	switch c.Auth.Hasher {
	case HasherSHA256, HasherArgon2id:
	default:
		return errb.With("hasher", c.Auth.Hasher).Errorf("unknown credential hasher")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errb.With("format", c.Log.Format).Errorf("unknown log format")
	}

	return nil
}

// RegisterFlags declares the flags Load consumes. Flag names are the
// dotted configuration keys.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("http.addr", "", "GraphQL listen address")
	flags.String("metrics.addr", "", "metrics listen address")
	flags.String("log.format", "", "log format (text or json)")
	flags.String("store.kind", "", "backing store (memory or postgres)")
	flags.String("store.database_url", "", "PostgreSQL connection URL")
	flags.String("auth.strategy", "", "token strategy (session or jwt)")
	flags.String("auth.hasher", "", "credential hasher (sha256 or argon2id)")
	flags.String("auth.jwt_secret", "", "HMAC secret for JWT signing")
	flags.Duration("auth.jwt_ttl", 0, "JWT lifetime")
}
