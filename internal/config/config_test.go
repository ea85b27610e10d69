package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
api:
  environment: production
  port: 9000
  base_url: relief.example.org
  log_level: warn
  allowed_cors_domains:
    - https://relief.example.org
gin:
  mode: release
postgres:
  host: db
  port: 5432
  user: relief
  password: secret
  db: relief
  ssl_mode: require
auth:
  service_url: https://auth.example.org
  timeout: 2s
defaults:
  city_id: 3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "production", conf.API.Environment)
	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, []string{"https://relief.example.org"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "require", conf.Postgres.SSLMode)
	assert.Equal(t, 2*time.Second, conf.Auth.Timeout)
	assert.Equal(t, uint(3), conf.Defaults.CityID)

	// Keys missing from the file fall back to defaults.
	assert.Equal(t, 20, conf.Postgres.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, conf.Postgres.ConnMaxLifetime)
	assert.Equal(t, 40, conf.RateLimit.Burst)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RELIEF_POSTGRES_HOST", "pg.internal")
	t.Setenv("RELIEF_DEFAULTS_CITY_ID", "7")
	t.Setenv("PORT", "5555")

	conf, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", conf.Postgres.Host)
	assert.Equal(t, uint(7), conf.Defaults.CityID)
	assert.Equal(t, "5555", conf.API.Port)
}

func TestLoad_ZeroDefaultCity(t *testing.T) {
	conf, err := Load(writeConfig(t, "defaults:\n  city_id: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, conf.Defaults.CityID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad gin mode", "gin:\n  mode: turbo\n"},
		{"bad log level", "api:\n  log_level: chatty\n"},
		{"bad auth url", "auth:\n  service_url: not a url\n"},
		{"non numeric port", "api:\n  port: eighty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, "config validation failed")
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadAndWatch(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	changes := make(chan *AppConfig, 4)
	conf, err := LoadAndWatch(path, func(conf *AppConfig) { changes <- conf })
	require.NoError(t, err)
	assert.Equal(t, "warn", conf.API.LogLevel)

	updated := []byte("api:\n  log_level: debug\n")
	require.NoError(t, os.WriteFile(path, updated, 0o600))

	// A single write can surface as several events, some seeing a truncated file.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case reloaded := <-changes:
			if reloaded.API.LogLevel == "debug" {
				return
			}
		case <-timeout:
			t.Skip("no file system events delivered")
		}
	}
}
