package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "RELIEF"

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api" validate:"required"`
	Gin       *GinConfig       `mapstructure:"gin" validate:"required"`
	Postgres  *PostgresConfig  `mapstructure:"postgres" validate:"required"`
	Auth      *AuthConfig      `mapstructure:"auth" validate:"required"`
	RateLimit *RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Defaults  *DefaultsConfig  `mapstructure:"defaults" validate:"required"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment" validate:"required,oneof=development staging production"`
	Port               string   `mapstructure:"port" validate:"required,numeric"`
	BaseURL            string   `mapstructure:"base_url" validate:"required"`
	LogLevel           string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=debug release test"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	User            string        `mapstructure:"user" validate:"required"`
	Password        string        `mapstructure:"password"`
	DB              string        `mapstructure:"db" validate:"required"`
	SSLMode         string        `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AuthConfig points at the external service that validates bearer tokens.
type AuthConfig struct {
	ServiceURL string        `mapstructure:"service_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"min=1"`
}

type DefaultsConfig struct {
	// CityID is used for missions and collection points created without a city. Zero turns
	// the fallback off: missions stay without a city and collection points must name one.
	CityID uint `mapstructure:"city_id"`
}

var validate = validator.New()

var defaults = map[string]any{
	"api.environment":                "development",
	"api.port":                       "8080",
	"api.base_url":                   "localhost:8080",
	"api.log_level":                  "info",
	"api.allowed_cors_domains":       []string{"http://localhost:3000"},
	"gin.mode":                       "debug",
	"postgres.host":                  "localhost",
	"postgres.port":                  "5432",
	"postgres.user":                  "postgres",
	"postgres.password":              "",
	"postgres.db":                    "relief",
	"postgres.ssl_mode":              "disable",
	"postgres.max_open_conns":        20,
	"postgres.max_idle_conns":        5,
	"postgres.conn_max_lifetime":     "30m",
	"auth.service_url":               "http://localhost:8000",
	"auth.timeout":                   "5s",
	"rate_limit.requests_per_second": 20,
	"rate_limit.burst":               40,
	"defaults.city_id":               1,
}

// Load reads the YAML file at path. Every key can be overridden with a RELIEF_ prefixed env var,
// e.g. RELIEF_POSTGRES_HOST. PORT is honoured for api.port.
func Load(path string) (*AppConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	return decode(v)
}

// LoadAndWatch is Load plus a file watcher. onChange gets every valid reloaded config; invalid
// edits are logged and ignored.
func LoadAndWatch(path string, onChange func(conf *AppConfig)) (*AppConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		reloaded, err := decode(v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		zap.L().Info("config reloaded", zap.String("file", e.Name))
		onChange(reloaded)
	})
	v.WatchConfig()

	return conf, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.port", envPrefix+"_API_PORT", "PORT"); err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return v, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := validate.Struct(&conf); err != nil {
		return nil, fmt.Errorf("config validation failed -> %w", err)
	}

	return &conf, nil
}
