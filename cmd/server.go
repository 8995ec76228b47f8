package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/storefront/storefront-backend/api"
	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/jobs"
	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

func RunServer(config CompiledConfig) error {
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             appName,
		AppVersion:          config.Version,
		Port:                utils.GetEnv("PORT", "8000"),
		FrontendUrl:         utils.GetEnv("FRONTEND_URL", ""),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 10)) * time.Second,
		EnablePrometheus:    utils.GetEnv("ENABLE_PROMETHEUS", false),
		RateLimit: infra.RateLimitConfig{
			MaxRequests: utils.GetEnv("MAX_REQUESTS_PER_MINUTE", 100),
			Window:      time.Duration(utils.GetEnv("REQUESTS_TIME_LIMIT", 60)) * time.Second,
		},
	}
	authConfig := authConfigFromEnv()
	paymentConfig := paymentConfigFromEnv()
	kbConfig := knowledgeBaseConfigFromEnv()

	ctx, logger, telemetryRessources, pool, err := initInfra(apiConfig.Env, config.Version)
	defer sentry.Flush(3 * time.Second)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := api.RegisterValidators(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// The server only enqueues jobs, the worker process runs them.
	riverClient, err := jobs.NewInsertOnlyClient(pool)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repositories, err := initRepositories(ctx, pool, dependencyConfig{
		redis:         infra.RedisConfig{Url: utils.GetEnv("REDIS_SESSION_URL", "")},
		knowledgeBase: kbConfig,
		auth:          &authConfig,
		payment:       &paymentConfig,
		riverClient:   riverClient,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(config.Version),
		usecases.WithAuthConfig(authConfig),
		usecases.WithKnowledgeBaseConfig(kbConfig),
		usecases.WithPaymentConfig(paymentConfig),
	)
	authUsecase := uc.NewAuthUsecase()
	auth := utils.NewAuthentication(&authUsecase)

	router := api.InitRouterMiddlewares(ctx, apiConfig, telemetryRessources, repositories.Cache)
	server := api.NewServer(router, apiConfig, uc, auth)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("port", apiConfig.Port),
			slog.String("version", config.Version),
			slog.Bool("knowledge_base", kbConfig.Enabled),
		)
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
			stop()
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}
	if err := telemetryRessources.Shutdown(shutdownCtx); err != nil {
		logger.WarnContext(ctx, "could not flush traces", "error", err.Error())
	}
	return nil
}
