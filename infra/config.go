package infra

import (
	"fmt"
	"time"
)

type PgConfig struct {
	ConnectionString   string
	Database           string
	Hostname           string
	Password           string
	Port               string
	User               string
	MaxPoolConnections int
	SslMode            string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s port=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode, config.Port)
}

// RedisConfig points at the cache. An empty url selects the in-process cache.
type RedisConfig struct {
	Url string
}

func (config RedisConfig) Enabled() bool {
	return config.Url != ""
}

type AuthConfig struct {
	SigningSecret        SigningSecret
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type KnowledgeBaseConfig struct {
	Enabled            bool
	GeminiApiKey       string
	EmbeddingModel     string
	EmbeddingDimension int
	Collection         string
	GenerationModel    string
	IndexingWorkers    int
}

type PaymentConfig struct {
	SecretKey     string
	PublicKey     string
	WebhookSecret string
	PublicApiUrl  string
	Currency      string
}

type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
}
