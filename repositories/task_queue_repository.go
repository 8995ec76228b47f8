package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

const (
	KNOWLEDGE_BASE_QUEUE     = "knowledge_base"
	nbRetriesKnowledgeIndex  = 5
	priorityKnowledgeIndex   = 3 // nb: higher number is lower priority (between 1 and 4)
	priorityKnowledgeCleanup = 2
)

type TaskQueueRepository interface {
	EnqueueIndexProductKnowledge(ctx context.Context, tx Transaction, productId int64) error
	EnqueueDeleteProductKnowledge(ctx context.Context, tx Transaction, productId int64) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewRiverTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

// jobs are inserted in the caller's transaction so they only exist once the mutation commits
func (r riverRepository) EnqueueIndexProductKnowledge(ctx context.Context, tx Transaction, productId int64) error {
	res, err := r.client.InsertTx(
		ctx,
		tx.RawTx(),
		models.IndexProductKnowledgeArgs{ProductId: productId},
		&river.InsertOpts{
			Queue:       KNOWLEDGE_BASE_QUEUE,
			MaxAttempts: nbRetriesKnowledgeIndex,
			Priority:    priorityKnowledgeIndex,
		},
	)
	if err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).DebugContext(ctx, "Enqueued knowledge indexing task",
		"job_id", res.Job.ID, "product_id", productId)
	return nil
}

func (r riverRepository) EnqueueDeleteProductKnowledge(ctx context.Context, tx Transaction, productId int64) error {
	res, err := r.client.InsertTx(
		ctx,
		tx.RawTx(),
		models.DeleteProductKnowledgeArgs{ProductId: productId},
		&river.InsertOpts{
			Queue:       KNOWLEDGE_BASE_QUEUE,
			MaxAttempts: nbRetriesKnowledgeIndex,
			Priority:    priorityKnowledgeCleanup,
		},
	)
	if err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).DebugContext(ctx, "Enqueued knowledge cleanup task",
		"job_id", res.Job.ID, "product_id", productId)
	return nil
}

// NoopTaskQueueRepository is used when the knowledge base is disabled.
type NoopTaskQueueRepository struct{}

func (NoopTaskQueueRepository) EnqueueIndexProductKnowledge(ctx context.Context, tx Transaction, productId int64) error {
	return nil
}

func (NoopTaskQueueRepository) EnqueueDeleteProductKnowledge(ctx context.Context, tx Transaction, productId int64) error {
	return nil
}
