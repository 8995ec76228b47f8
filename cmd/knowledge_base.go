package cmd

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

func newKnowledgeIndexer(config CompiledConfig) (context.Context, usecases.KnowledgeIndexer, func(), error) {
	env := utils.GetEnv("ENV", "development")
	kbConfig := knowledgeBaseConfigFromEnv()

	ctx, _, _, pool, err := initInfra(env, config.Version)
	if err != nil {
		return ctx, usecases.KnowledgeIndexer{}, func() {}, err
	}
	if !kbConfig.Enabled {
		pool.Close()
		return ctx, usecases.KnowledgeIndexer{}, func() {}, errors.Wrap(models.ErrKnowledgeBaseOff,
			"set KNOWLEDGE_BASE_ENABLED=true")
	}
	repositories, err := initRepositories(ctx, pool, dependencyConfig{
		redis:         infra.RedisConfig{Url: utils.GetEnv("REDIS_SESSION_URL", "")},
		knowledgeBase: kbConfig,
	})
	if err != nil {
		pool.Close()
		return ctx, usecases.KnowledgeIndexer{}, func() {}, err
	}

	uc := usecases.NewUsecases(repositories, usecases.WithKnowledgeBaseConfig(kbConfig))
	return ctx, uc.NewKnowledgeIndexer(), pool.Close, nil
}

func RunRebuildKnowledgeBase(config CompiledConfig) error {
	defer sentry.Flush(3 * time.Second)
	ctx, indexer, closeFn, err := newKnowledgeIndexer(config)
	defer closeFn()
	logger := utils.LoggerFromContext(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "could not set up the knowledge base", "error", err.Error())
		return err
	}

	start := time.Now()
	indexed, err := indexer.Rebuild(ctx)
	if err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrapf(err, "rebuild stopped after %d products", indexed))
		return err
	}
	logger.InfoContext(ctx, "knowledge base rebuild finished",
		"products", indexed, "duration", time.Since(start).String())
	return nil
}

func RunCheckKnowledgeBase(config CompiledConfig) error {
	ctx, indexer, closeFn, err := newKnowledgeIndexer(config)
	defer closeFn()
	logger := utils.LoggerFromContext(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "could not set up the knowledge base", "error", err.Error())
		return err
	}

	diagnosis, err := indexer.Check(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "knowledge base check failed", "error", err.Error())
		return err
	}

	if diagnosis.Remediation != "" {
		logger.WarnContext(ctx, "knowledge base needs attention",
			"collection", diagnosis.Info.Name,
			"documents", diagnosis.Info.Count,
			"remediation", diagnosis.Remediation,
		)
		return nil
	}
	logger.InfoContext(ctx, "knowledge base is healthy",
		"collection", diagnosis.Info.Name,
		"documents", diagnosis.Info.Count,
		"probe_hits", diagnosis.SearchHits,
	)
	return nil
}
