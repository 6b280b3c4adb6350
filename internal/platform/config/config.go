package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Revocation backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the full service configuration.
type Config struct {
	Server   Server
	Redis    RedisConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Trust    TrustConfig
	Admin    AdminConfig
	Log      LogConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	DefaultMode     string
	ShutdownTimeout time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds Postgres pool settings.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig holds the CRL feed settings. An empty Brokers disables the consumer.
type KafkaConfig struct {
	Brokers  string
	CRLTopic string
	GroupID  string
}

// TrustConfig selects where rules, keys and revocations come from.
type TrustConfig struct {
	RulesFile         string
	KeysFile          string
	RevocationBackend string
}

// AdminConfig configures bearer tokens on the admin endpoints.
type AdminConfig struct {
	JWTSigningKey string
	JWTIssuer     string
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:            getEnv("GREENPASS_ADDR", ":8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			DefaultMode:     getEnv("DEFAULT_MODE", "3G"),
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:  os.Getenv("KAFKA_BROKERS"),
			CRLTopic: getEnv("KAFKA_CRL_TOPIC", "greenpass.crl"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "greenpass-verifier"),
		},
		Trust: TrustConfig{
			RulesFile:         os.Getenv("TRUST_RULES_FILE"),
			KeysFile:          os.Getenv("TRUST_KEYS_FILE"),
			RevocationBackend: strings.ToLower(getEnv("REVOCATION_BACKEND", BackendMemory)),
		},
		Admin: AdminConfig{
			JWTSigningKey: os.Getenv("ADMIN_JWT_SIGNING_KEY"),
			JWTIssuer:     getEnv("ADMIN_JWT_ISSUER", "greenpass-admin"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if v := os.Getenv("REDIS_POOL_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("REDIS_POOL_SIZE must be a positive integer, got %q", v)
		}
		cfg.Redis.PoolSize = n
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if cfg.Admin.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.Admin.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg, cfg.Validate()
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.Trust.RevocationBackend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REVOCATION_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("REVOCATION_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown REVOCATION_BACKEND %q", c.Trust.RevocationBackend)
	}
	if c.Server.Environment == "production" && c.Admin.JWTSigningKey == "dev-secret-key-change-in-production" {
		return fmt.Errorf("ADMIN_JWT_SIGNING_KEY must be set in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
