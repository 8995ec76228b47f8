package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront/storefront-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueIndexProductKnowledge(ctx context.Context, tx repositories.Transaction, productId int64) error {
	args := m.Called(tx, productId)
	return args.Error(0)
}

func (m *TaskQueueRepository) EnqueueDeleteProductKnowledge(ctx context.Context, tx repositories.Transaction, productId int64) error {
	args := m.Called(tx, productId)
	return args.Error(0)
}
