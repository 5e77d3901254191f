package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded from YAML with a
// handful of environment overrides on top (a .env file is honored too).
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Auth          AuthConfig          `yaml:"auth"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects the storage engine. Driver is "sqlite" (file
// path DSN) or "mysql" (go-sql-driver DSN).
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig controls the optional shop change-event producer.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// AuthConfig holds the shared-secret credentials checked on every
// request and the deny-list behavior.
type AuthConfig struct {
	Secret     string         `yaml:"secret"`
	ClientName string         `yaml:"clientName"`
	DenyList   DenyListConfig `yaml:"denyList"`
}

// DenyListConfig: backend is "memory" (default) or "redis". TTLSeconds
// of 0 means entries never expire, matching the original behavior.
type DenyListConfig struct {
	Backend    string `yaml:"backend"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ObservabilityConfig struct {
	ServiceName string           `yaml:"serviceName"`
	Environment string           `yaml:"environment"`
	Tracing     TracingConfig    `yaml:"tracing"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Logging     ObsLoggingConfig `yaml:"logging"`
}

type TracingConfig struct {
	Enabled          bool    `yaml:"enabled"`
	OTLPGrpcEndpoint string  `yaml:"otlpGrpcEndpoint"`
	Insecure         bool    `yaml:"insecure"`
	SampleRate       float64 `yaml:"sampleRate"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type ObsLoggingConfig struct {
	RequestIDHeader string `yaml:"requestIdHeader"`
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(cfg)
	return cfg, nil
}

// MustLoad is Load for main: it panics on failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "halalshop.db"},
		Auth: AuthConfig{
			DenyList: DenyListConfig{Backend: "memory"},
		},
		Logging: LoggingConfig{Level: "info"},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{Path: "/metrics"},
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_CLIENT_NAME"); v != "" {
		cfg.Auth.ClientName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
}
