package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/repositories/clock"
	"github.com/storefront/storefront-backend/utils"
)

const appName = "storefront-backend"

// CompiledConfig holds the values set at build time with -ldflags.
type CompiledConfig struct {
	Version string
}

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetFirstEnv("", "PG_CONNECTION_STRING", "DATABASE_URL"),
		Database:           utils.GetEnv("PG_DATABASE", "storefront"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", "localhost"),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", "postgres"),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func knowledgeBaseConfigFromEnv() infra.KnowledgeBaseConfig {
	return infra.KnowledgeBaseConfig{
		Enabled:            utils.GetEnv("KNOWLEDGE_BASE_ENABLED", false),
		GeminiApiKey:       utils.GetEnv("GEMINI_API_KEY", ""),
		EmbeddingModel:     utils.GetEnv("EMBEDDING_MODEL", "text-embedding-004"),
		EmbeddingDimension: utils.GetEnv("EMBEDDING_DIMENSION", 768),
		Collection:         utils.GetEnv("KNOWLEDGE_BASE_COLLECTION", "products"),
		GenerationModel:    utils.GetEnv("AI_SEED_MODEL", "gemini-2.0-flash"),
		IndexingWorkers:    utils.GetEnv("KNOWLEDGE_BASE_WORKERS", 4),
	}
}

func authConfigFromEnv() infra.AuthConfig {
	return infra.AuthConfig{
		SigningSecret: infra.MustParseSigningSecret(
			utils.GetRequiredEnv[string]("SECRET_KEY"),
			utils.GetEnv("ALGORITHM", "HS256"),
		),
		AccessTokenLifetime:  time.Duration(utils.GetEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenLifetime: time.Duration(utils.GetEnv("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
	}
}

func paymentConfigFromEnv() infra.PaymentConfig {
	return infra.PaymentConfig{
		SecretKey:     utils.GetEnv("STRIPE_SECRET_KEY", ""),
		PublicKey:     utils.GetEnv("STRIPE_PUBLIC_KEY", ""),
		WebhookSecret: utils.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
		PublicApiUrl:  utils.GetEnv("PUBLIC_API_URL", "http://localhost:8000"),
		Currency:      utils.GetEnv("PAYMENT_CURRENCY", "usd"),
	}
}

func seedConfigFromEnv() infra.SeedConfig {
	return infra.SeedConfig{
		AdminUsername: utils.GetEnv("SEED_ADMIN_USERNAME", "admin"),
		AdminEmail:    utils.GetEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: utils.GetEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

type dependencyConfig struct {
	redis         infra.RedisConfig
	knowledgeBase infra.KnowledgeBaseConfig
	auth          *infra.AuthConfig
	payment       *infra.PaymentConfig
	riverClient   *river.Client[pgx.Tx]
}

// initRepositories builds the repositories shared by every process mode. Optional
// backends are only created when configured: redis falls back to the in-process cache,
// the genai client exists only with an api key.
func initRepositories(ctx context.Context, pool *pgxpool.Pool, conf dependencyConfig) (repositories.Repositories, error) {
	logger := utils.LoggerFromContext(ctx)
	c := clock.New()
	opts := []repositories.Option{repositories.WithClock(c)}

	if conf.redis.Enabled() {
		cache, err := repositories.NewRedisCache(ctx, conf.redis)
		if err != nil {
			logger.WarnContext(ctx, "redis unavailable, using the in-process cache", "error", err.Error())
		} else {
			opts = append(opts, repositories.WithCache(cache))
		}
	}

	if conf.auth != nil {
		opts = append(opts, repositories.WithJwtRepository(
			repositories.NewJwtRepository(conf.auth.SigningSecret, c)))
	}
	if conf.payment != nil {
		opts = append(opts, repositories.WithPaymentGateway(repositories.NewMockPaymentGateway(*conf.payment)))
	}
	if conf.riverClient != nil {
		opts = append(opts, repositories.WithRiverClient(conf.riverClient))
	}

	kb := conf.knowledgeBase
	if kb.GeminiApiKey != "" {
		client, err := repositories.NewGenAIClient(ctx, kb.GeminiApiKey)
		if err != nil {
			return repositories.Repositories{}, err
		}
		opts = append(opts, repositories.WithProductGenerator(
			repositories.NewGenAIProductGenerator(client, kb.GenerationModel)))
		if kb.Enabled {
			embedder := repositories.NewGenAIEmbedder(client, kb)
			opts = append(opts, repositories.WithVectorStore(repositories.NewPgVectorStore(embedder, kb.Collection)))
		}
	} else if kb.Enabled {
		return repositories.Repositories{}, errors.New("KNOWLEDGE_BASE_ENABLED requires GEMINI_API_KEY")
	}

	return repositories.NewRepositories(pool, opts...), nil
}

// initInfra sets up logging, sentry and tracing, then opens the postgres pool.
func initInfra(env string, version string) (context.Context, *slog.Logger, infra.TelemetryRessources, *pgxpool.Pool, error) {
	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(utils.GetEnv("SENTRY_DSN", ""), env, version)

	telemetryRessources, err := infra.InitTelemetry(ctx, infra.TelemetryConfiguration{
		Enabled:         utils.GetEnv("ENABLE_TRACING", false),
		ApplicationName: appName,
	}, version)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, telemetryRessources.Tracer)

	pgConfig := pgConfigFromEnv()
	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(), pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return ctx, logger, telemetryRessources, nil, err
	}
	return ctx, logger, telemetryRessources, pool, nil
}
