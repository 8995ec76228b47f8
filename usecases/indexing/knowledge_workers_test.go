package indexing

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storefront/storefront-backend/models"
)

type indexerMock struct {
	mock.Mock
}

func (m *indexerMock) IndexProduct(ctx context.Context, productId int64) error {
	return m.Called(productId).Error(0)
}

func (m *indexerMock) DeleteProduct(ctx context.Context, productId int64) error {
	return m.Called(productId).Error(0)
}

func TestIndexProductKnowledgeWorker(t *testing.T) {
	indexer := new(indexerMock)
	indexer.On("IndexProduct", int64(12)).Return(nil)

	worker := NewIndexProductKnowledgeWorker(indexer)
	err := worker.Work(context.Background(), &river.Job[models.IndexProductKnowledgeArgs]{
		Args: models.IndexProductKnowledgeArgs{ProductId: 12},
	})

	assert.NoError(t, err)
	indexer.AssertExpectations(t)
}

func TestIndexProductKnowledgeWorker_propagatesErrors(t *testing.T) {
	indexer := new(indexerMock)
	indexer.On("IndexProduct", int64(12)).Return(errors.New("embedding api down"))

	worker := NewIndexProductKnowledgeWorker(indexer)
	err := worker.Work(context.Background(), &river.Job[models.IndexProductKnowledgeArgs]{
		Args: models.IndexProductKnowledgeArgs{ProductId: 12},
	})

	assert.ErrorContains(t, err, "embedding api down")
}

func TestDeleteProductKnowledgeWorker_disabledCancelsJob(t *testing.T) {
	indexer := new(indexerMock)
	indexer.On("DeleteProduct", int64(3)).Return(models.ErrKnowledgeBaseOff)

	worker := NewDeleteProductKnowledgeWorker(indexer)
	err := worker.Work(context.Background(), &river.Job[models.DeleteProductKnowledgeArgs]{
		Args: models.DeleteProductKnowledgeArgs{ProductId: 3},
	})

	assert.ErrorIs(t, err, models.ErrKnowledgeBaseOff)
	assert.NotSame(t, models.ErrKnowledgeBaseOff, err, "the job should be cancelled, not retried")
}
