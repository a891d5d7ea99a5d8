package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COURTSIDE_"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Transport TransportConfig `yaml:"transport" envPrefix:"TRANSPORT_"`
	DB        DBConfig        `yaml:"db" envPrefix:"DB_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Auth      AuthConfig      `yaml:"auth" envPrefix:"AUTH_"`
	Remote    RemoteConfig    `yaml:"remote" envPrefix:"REMOTE_"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	Broker    BrokerConfig    `yaml:"broker" envPrefix:"BROKER_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	Timezone  string          `yaml:"timezone" env:"TIMEZONE"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

// TransportConfig selects how the MCP surface is served: "http" or "stdio".
type TransportConfig struct {
	Mode string `yaml:"mode" env:"MODE"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LEVEL"`
	File     string `yaml:"file" env:"FILE"`
	MaxBytes int64  `yaml:"max_bytes" env:"MAX_BYTES"`
}

// AuthConfig controls bearer-token checks. With auth disabled every request
// acts as DefaultUser.
type AuthConfig struct {
	Enabled     bool          `yaml:"enabled" env:"ENABLED"`
	Secret      string        `yaml:"secret" env:"SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
	DefaultUser string        `yaml:"default_user" env:"DEFAULT_USER"`
}

// RemoteConfig bounds the simulated latency of the account service.
type RemoteConfig struct {
	LatencyMin time.Duration `yaml:"latency_min" env:"LATENCY_MIN"`
	LatencyMax time.Duration `yaml:"latency_max" env:"LATENCY_MAX"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RPS"`
	Burst             int     `yaml:"burst" env:"BURST"`
}

// BrokerConfig points at RabbitMQ. An empty URL disables event publishing.
type BrokerConfig struct {
	URL string `yaml:"url" env:"URL"`
}

// TelemetryConfig points at an OTLP/HTTP collector. Empty disables tracing.
type TelemetryConfig struct {
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		DB: DBConfig{
			Path: "courtside.db",
		},
		Log: LogConfig{
			Level:    "info",
			MaxBytes: 6 << 20,
		},
		Auth: AuthConfig{
			Enabled:     false,
			TokenTTL:    7 * 24 * time.Hour,
			DefaultUser: "local",
		},
		Remote: RemoteConfig{
			LatencyMin: 200 * time.Millisecond,
			LatencyMax: time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Timezone: "Asia/Shanghai",
	}
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in that order. A .env file in the working directory
// is loaded into the environment first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv(EnvPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return errors.New("auth enabled without a token secret")
	}
	if !c.Auth.Enabled && c.Auth.DefaultUser == "" {
		return errors.New("auth disabled without a default user")
	}
	if c.Remote.LatencyMin < 0 || c.Remote.LatencyMax < c.Remote.LatencyMin {
		return fmt.Errorf("invalid remote latency range %s..%s", c.Remote.LatencyMin, c.Remote.LatencyMax)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("invalid rate limit")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
