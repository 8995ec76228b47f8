package usecases

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/utils"
)

const (
	defaultIndexingWorkers = 4
	knowledgeProbeQuery    = "popular products"
)

type KnowledgeIndexerRepository interface {
	GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error)
	GetCategoryById(ctx context.Context, exec repositories.Executor, categoryId int64) (models.Category, error)
	ListReviewsOfProduct(ctx context.Context, exec repositories.Executor, productId int64) ([]models.Review, error)
	ListProductIds(ctx context.Context, exec repositories.Executor) ([]int64, error)
}

// KnowledgeIndexer keeps the vector store in line with the catalog. It runs in the
// worker and in the maintenance commands, never in a request.
type KnowledgeIndexer struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         KnowledgeIndexerRepository
	vectorStore        repositories.VectorStore
	workers            int
}

type KnowledgeDiagnosis struct {
	Info        models.KnowledgeCollectionInfo
	Empty       bool
	SearchOk    bool
	SearchHits  int
	Remediation string
}

// BuildProductDocuments returns the product document and one document per review.
func BuildProductDocuments(product models.Product, categoryName string, reviews []models.Review) []models.KnowledgeDocument {
	docs := make([]models.KnowledgeDocument, 0, len(reviews)+1)
	docs = append(docs, models.ProductKnowledgeDocument(product, categoryName))
	for _, review := range reviews {
		docs = append(docs, models.ReviewKnowledgeDocument(review, product, categoryName))
	}
	return docs
}

// IndexProduct replaces the documents of one product. A product that no longer exists
// only has its documents removed.
func (indexer *KnowledgeIndexer) IndexProduct(ctx context.Context, productId int64) error {
	if indexer.vectorStore == nil {
		return models.ErrKnowledgeBaseOff
	}
	ctx, span := utils.StartSpan(ctx, "KnowledgeIndexer.IndexProduct", attribute.Int64("product_id", productId))
	defer span.End()
	exec := indexer.executorFactory.NewExecutor()

	product, err := indexer.repository.GetProductById(ctx, exec, productId)
	if errors.Is(err, models.NotFoundError) {
		return indexer.DeleteProduct(ctx, productId)
	}
	if err != nil {
		return err
	}

	categoryName := ""
	if product.CategoryId != nil {
		category, err := indexer.repository.GetCategoryById(ctx, exec, *product.CategoryId)
		if err != nil && !errors.Is(err, models.NotFoundError) {
			return err
		}
		categoryName = category.Name
	}
	reviews, err := indexer.repository.ListReviewsOfProduct(ctx, exec, productId)
	if err != nil {
		return err
	}
	docs := BuildProductDocuments(product, categoryName, reviews)

	err = indexer.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if err := indexer.vectorStore.DeleteByProduct(ctx, tx, productId); err != nil {
			return err
		}
		return indexer.vectorStore.AddDocuments(ctx, tx, docs)
	})
	if err != nil {
		return errors.Wrapf(err, "could not index product %d", productId)
	}

	for _, doc := range docs {
		utils.MetricKnowledgeDocumentsIndexed.WithLabelValues(string(doc.Type)).Inc()
	}
	utils.LoggerFromContext(ctx).DebugContext(ctx, "product indexed in knowledge base",
		"product_id", productId, "documents", len(docs))
	return nil
}

func (indexer *KnowledgeIndexer) DeleteProduct(ctx context.Context, productId int64) error {
	if indexer.vectorStore == nil {
		return models.ErrKnowledgeBaseOff
	}
	return indexer.vectorStore.DeleteByProduct(ctx, indexer.executorFactory.NewExecutor(), productId)
}

// Rebuild drops the collection and indexes every product again with bounded concurrency.
func (indexer *KnowledgeIndexer) Rebuild(ctx context.Context) (int, error) {
	if indexer.vectorStore == nil {
		return 0, models.ErrKnowledgeBaseOff
	}
	logger := utils.LoggerFromContext(ctx)
	exec := indexer.executorFactory.NewExecutor()

	if err := indexer.vectorStore.DeleteCollection(ctx, exec); err != nil {
		return 0, err
	}
	productIds, err := indexer.repository.ListProductIds(ctx, exec)
	if err != nil {
		return 0, err
	}
	logger.InfoContext(ctx, "rebuilding knowledge base", "products", len(productIds))

	workers := indexer.workers
	if workers <= 0 {
		workers = defaultIndexingWorkers
	}
	var indexed atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, productId := range productIds {
		group.Go(func() error {
			if err := indexer.IndexProduct(groupCtx, productId); err != nil {
				return err
			}
			if n := indexed.Add(1); n%100 == 0 {
				logger.InfoContext(ctx, "knowledge base rebuild progress", "indexed", n, "total", len(productIds))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return int(indexed.Load()), err
	}

	logger.InfoContext(ctx, "knowledge base rebuilt", "products", indexed.Load())
	return int(indexed.Load()), nil
}

// Check inspects the collection and runs a probe search. It reports what is wrong instead
// of failing, so that the maintenance command can print a diagnosis.
func (indexer *KnowledgeIndexer) Check(ctx context.Context) (KnowledgeDiagnosis, error) {
	if indexer.vectorStore == nil {
		return KnowledgeDiagnosis{}, models.ErrKnowledgeBaseOff
	}
	logger := utils.LoggerFromContext(ctx)
	exec := indexer.executorFactory.NewExecutor()

	info, err := indexer.vectorStore.CollectionInfo(ctx, exec)
	if err != nil {
		return KnowledgeDiagnosis{}, err
	}
	diagnosis := KnowledgeDiagnosis{Info: info}

	diagnosis.Empty, err = indexer.vectorStore.IsEmpty(ctx, exec)
	if err != nil {
		return diagnosis, err
	}
	if diagnosis.Empty {
		diagnosis.Remediation = "the collection is empty, run -rebuild-knowledge-base"
		logger.WarnContext(ctx, "knowledge base is empty", "collection", info.Name)
		return diagnosis, nil
	}

	hits, err := indexer.vectorStore.Search(ctx, exec, knowledgeProbeQuery, 3, models.KnowledgeSearchFilter{})
	if err != nil {
		diagnosis.Remediation = "the probe search failed, check GEMINI_API_KEY and EMBEDDING_DIMENSION: " + err.Error()
		logger.WarnContext(ctx, "knowledge base probe search failed", "error", err.Error())
		return diagnosis, nil
	}
	diagnosis.SearchOk = true
	diagnosis.SearchHits = len(hits)
	if len(hits) == 0 {
		diagnosis.Remediation = "the probe search returned nothing, run -rebuild-knowledge-base"
	}

	logger.InfoContext(ctx, "knowledge base check",
		"collection", info.Name,
		"documents", info.Count,
		"status", info.Status,
		"probe_hits", diagnosis.SearchHits,
	)
	return diagnosis, nil
}
