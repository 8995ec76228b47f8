package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront-backend/mocks"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/repositories/clock"
)

type livenessStub struct {
	err error
}

func (s livenessStub) Liveness(ctx context.Context, exec repositories.Executor) error {
	return s.err
}

func TestHealthStatus(t *testing.T) {
	executorFactory := new(mocks.ExecutorFactory)
	executorFactory.On("NewExecutor").Return(new(mocks.Transaction))

	usecase := LivenessUsecase{
		executorFactory:    executorFactory,
		livenessRepository: livenessStub{},
		cache:              repositories.NewMemoryCache(4, clock.New()),
		apiVersion:         "v1.2.0",
	}

	status := usecase.HealthStatus(context.Background())
	require.Len(t, status.Checks, 2)
	assert.True(t, status.Healthy())
	assert.Equal(t, "v1.2.0", status.Version)

	usecase.livenessRepository = livenessStub{err: errors.New("connection refused")}
	status = usecase.HealthStatus(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, models.HealthCheckDatabase, status.Checks[0].Name)
	assert.Equal(t, "connection refused", status.Checks[0].Error)
}
