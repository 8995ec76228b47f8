package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/utils"
)

const healthProbeKey = "health:probe"

type livenessRepository interface {
	Liveness(ctx context.Context, exec repositories.Executor) error
}

type LivenessUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	livenessRepository livenessRepository
	cache              repositories.Cache
	vectorStore        repositories.VectorStore
	apiVersion         string
}

func (u *LivenessUsecase) Liveness(ctx context.Context) error {
	return u.livenessRepository.Liveness(ctx, u.executorFactory.NewExecutor())
}

// HealthStatus probes every backing service. The knowledge base only appears when it is configured.
func (u *LivenessUsecase) HealthStatus(ctx context.Context) models.HealthStatus {
	exec := u.executorFactory.NewExecutor()

	started := time.Now()
	checks := []models.HealthCheck{
		models.NewHealthCheck(models.HealthCheckDatabase, started, u.livenessRepository.Liveness(ctx, exec)),
	}

	if u.cache != nil {
		started = time.Now()
		_, err := u.cache.Get(ctx, healthProbeKey)
		if errors.Is(err, repositories.ErrCacheMiss) {
			err = u.cache.Set(ctx, healthProbeKey, []byte("ok"), time.Minute)
		}
		checks = append(checks, models.NewHealthCheck(models.HealthCheckCache, started, err))
	}

	if u.vectorStore != nil {
		started = time.Now()
		_, err := u.vectorStore.CollectionInfo(ctx, exec)
		checks = append(checks, models.NewHealthCheck(models.HealthCheckKnowledgeBase, started, err))
	}

	logger := utils.LoggerFromContext(ctx)
	for _, check := range checks {
		if !check.Healthy {
			logger.WarnContext(ctx, "health check failed", "check", check.Name, "error", check.Error)
		}
	}
	return models.HealthStatus{Version: u.apiVersion, Checks: checks}
}
