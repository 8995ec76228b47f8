package cmd

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/jobs"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

type SeedOptions struct {
	Admin          bool
	SampleProducts bool
	Clear          bool
	WithAI         bool
	Count          int
}

// RunSeed runs the requested seeding steps in order: admin first, so that the
// catalog has an owner, then the sample catalog, then the generated products.
func RunSeed(config CompiledConfig, options SeedOptions) error {
	env := utils.GetEnv("ENV", "development")
	kbConfig := knowledgeBaseConfigFromEnv()

	ctx, logger, _, pool, err := initInfra(env, config.Version)
	defer sentry.Flush(3 * time.Second)
	if err != nil {
		return err
	}
	defer pool.Close()

	// seeded products are indexed by the worker like any other product
	riverClient, err := jobs.NewInsertOnlyClient(pool)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	repositories, err := initRepositories(ctx, pool, dependencyConfig{
		redis:         infra.RedisConfig{Url: utils.GetEnv("REDIS_SESSION_URL", "")},
		knowledgeBase: kbConfig,
		riverClient:   riverClient,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(config.Version),
		usecases.WithKnowledgeBaseConfig(kbConfig),
		usecases.WithSeedConfig(seedConfigFromEnv()),
	)
	seedUsecase := uc.NewSeedUsecase()

	if options.Admin {
		if _, err := seedUsecase.SeedAdmin(ctx); err != nil {
			utils.LogAndReportSentryError(ctx, err)
			return err
		}
	}

	if options.SampleProducts {
		report, err := seedUsecase.SeedSampleProducts(ctx, options.Clear)
		if err != nil {
			utils.LogAndReportSentryError(ctx, err)
			return err
		}
		logSeedReport(ctx, "sample catalog seeded", report)
	}

	if options.WithAI {
		report, err := seedUsecase.SeedWithAI(ctx, options.Count)
		if err != nil {
			utils.LogAndReportSentryError(ctx, err)
			return err
		}
		logSeedReport(ctx, "generated catalog seeded", report)
	}

	logger.InfoContext(ctx, "seeding done")
	return nil
}

func logSeedReport(ctx context.Context, msg string, report models.SeedReport) {
	utils.LoggerFromContext(ctx).InfoContext(ctx, msg,
		"categories", report.Categories,
		"products", report.Products,
		"reviews", report.Reviews,
	)
}
