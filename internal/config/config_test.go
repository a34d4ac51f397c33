// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/pkg/errutil"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, config.StoreMemory, cfg.Store.Kind)
	assert.Equal(t, config.StrategySession, cfg.Auth.Strategy)
	assert.Equal(t, config.HasherSHA256, cfg.Auth.Hasher)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
http:
  addr: ":4000"
log:
  format: json
auth:
  strategy: jwt
  jwt_secret: file-secret
  jwt_ttl: 2h
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.HTTP.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, config.StrategyJWT, cfg.Auth.Strategy)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTTTL)

	// Untouched keys keep their defaults.
	assert.Equal(t, config.StoreMemory, cfg.Store.Kind)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, `
http:
  addr: ":4000"
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--http.addr=:5000", "--auth.hasher=argon2id"}))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTP.Addr)
	assert.Equal(t, config.HasherArgon2id, cfg.Auth.Hasher)
}

func TestLoad_UnsetFlagsDoNotClobber(t *testing.T) {
	path := writeConfigFile(t, `
http:
  addr: ":4000"
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.HTTP.Addr)
}

func TestLoad_MissingFileIsTolerated(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := writeConfigFile(t, "http: [not: valid")

	_, err := config.Load(path, nil)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_LOAD_FAILED")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() config.Config {
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown store kind", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Kind = "cassandra"
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")
	})

	t.Run("postgres requires a database url", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Kind = config.StorePostgres
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")

		cfg.Store.DatabaseURL = "postgres://localhost/cinegraph"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("jwt requires a secret", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Strategy = config.StrategyJWT
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")

		cfg.Auth.JWTSecret = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("jwt requires a positive ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Strategy = config.StrategyJWT
		cfg.Auth.JWTSecret = "secret"
		cfg.Auth.JWTTTL = 0
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")
	})

	t.Run("unknown auth strategy", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Strategy = "oauth"
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")
	})

	t.Run("unknown hasher", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Hasher = "md5"
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")
	})

	t.Run("unknown log format", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Format = "xml"
		errutil.AssertErrorCode(t, cfg.Validate(), "CONFIG_INVALID")
	})
}
