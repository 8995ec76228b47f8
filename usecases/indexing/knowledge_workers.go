package indexing

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"

	"github.com/storefront/storefront-backend/models"
)

const knowledgeJobTimeout = 2 * time.Minute

type productIndexer interface {
	IndexProduct(ctx context.Context, productId int64) error
	DeleteProduct(ctx context.Context, productId int64) error
}

type IndexProductKnowledgeWorker struct {
	river.WorkerDefaults[models.IndexProductKnowledgeArgs]

	indexer productIndexer
}

func NewIndexProductKnowledgeWorker(indexer productIndexer) *IndexProductKnowledgeWorker {
	return &IndexProductKnowledgeWorker{indexer: indexer}
}

func (w *IndexProductKnowledgeWorker) Timeout(job *river.Job[models.IndexProductKnowledgeArgs]) time.Duration {
	return knowledgeJobTimeout
}

func (w *IndexProductKnowledgeWorker) Work(ctx context.Context, job *river.Job[models.IndexProductKnowledgeArgs]) error {
	return cancelWhenDisabled(w.indexer.IndexProduct(ctx, job.Args.ProductId))
}

type DeleteProductKnowledgeWorker struct {
	river.WorkerDefaults[models.DeleteProductKnowledgeArgs]

	indexer productIndexer
}

func NewDeleteProductKnowledgeWorker(indexer productIndexer) *DeleteProductKnowledgeWorker {
	return &DeleteProductKnowledgeWorker{indexer: indexer}
}

func (w *DeleteProductKnowledgeWorker) Timeout(job *river.Job[models.DeleteProductKnowledgeArgs]) time.Duration {
	return knowledgeJobTimeout
}

func (w *DeleteProductKnowledgeWorker) Work(ctx context.Context, job *river.Job[models.DeleteProductKnowledgeArgs]) error {
	return cancelWhenDisabled(w.indexer.DeleteProduct(ctx, job.Args.ProductId))
}

// a job enqueued before the knowledge base was turned off can never succeed
func cancelWhenDisabled(err error) error {
	if errors.Is(err, models.ErrKnowledgeBaseOff) {
		return river.JobCancel(err)
	}
	return err
}
