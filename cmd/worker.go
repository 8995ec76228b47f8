package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/jobs"
	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

func RunWorker(config CompiledConfig) error {
	env := utils.GetEnv("ENV", "development")
	kbConfig := knowledgeBaseConfigFromEnv()

	ctx, logger, telemetryRessources, pool, err := initInfra(env, config.Version)
	defer sentry.Flush(3 * time.Second)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !kbConfig.Enabled {
		logger.WarnContext(ctx, "the knowledge base is disabled, indexing jobs will be cancelled")
	}

	// Indexing workers enqueue nothing themselves, so the repositories get no river client.
	repositories, err := initRepositories(ctx, pool, dependencyConfig{
		redis:         infra.RedisConfig{Url: utils.GetEnv("REDIS_SESSION_URL", "")},
		knowledgeBase: kbConfig,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(config.Version),
		usecases.WithKnowledgeBaseConfig(kbConfig),
	)

	workers := river.NewWorkers()
	river.AddWorker(workers, uc.NewIndexProductKnowledgeWorker())
	river.AddWorker(workers, uc.NewDeleteProductKnowledgeWorker())

	riverClient, err := jobs.NewWorkerClient(pool, workers, jobs.WorkerClientConfig{
		Logger:     logger,
		Tracer:     telemetryRessources.Tracer,
		MaxWorkers: kbConfig.IndexingWorkers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	logger.InfoContext(ctx, "river client started", "version", config.Version)

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")

	if err := telemetryRessources.Shutdown(context.WithoutCancel(ctx)); err != nil {
		logger.WarnContext(ctx, "could not flush traces", "error", err.Error())
	}
	return nil
}

// cleanStop waits for SIGINT/SIGTERM and gives running jobs a chance to finish. A second
// signal, or the soft stop timeout, cancels the jobs' context. If even that hangs, the
// stop procedure is abandoned.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	// indexing a product embeds all its reviews, leave it more time than a plain query
	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 30*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}
