package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
)

const (
	DefaultSemanticResults = 5
	MaxSemanticResults     = 50
)

type KnowledgeRepository interface {
	GetProductsByIds(ctx context.Context, exec repositories.Executor, productIds []int64) ([]models.Product, error)
}

type KnowledgeUsecase struct {
	enabled         bool
	executorFactory executor_factory.ExecutorFactory
	repository      KnowledgeRepository
	vectorStore     repositories.VectorStore
}

// SemanticSearch returns the nearest knowledge documents, with the product they describe
// attached when it still exists.
func (usecase *KnowledgeUsecase) SemanticSearch(ctx context.Context, query string, n int,
	rawType string,
) ([]models.SemanticSearchResult, error) {
	if !usecase.enabled {
		return nil, models.ErrKnowledgeBaseOff
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.ErrEmptySearchQuery
	}
	if n <= 0 {
		n = DefaultSemanticResults
	}
	n = min(n, MaxSemanticResults)

	var filter models.KnowledgeSearchFilter
	switch docType := models.KnowledgeDocumentType(strings.ToLower(strings.TrimSpace(rawType))); docType {
	case "":
	case models.KnowledgeProduct, models.KnowledgeReview:
		filter.Type = &docType
	default:
		return nil, errors.Wrapf(models.BadParameterError, "type must be product or review, got %q", rawType)
	}

	exec := usecase.executorFactory.NewExecutor()
	hits, err := usecase.vectorStore.Search(ctx, exec, query, n, filter)
	if err != nil {
		return nil, err
	}

	productIds := pure_utils.Unique(pure_utils.Map(hits, func(hit models.KnowledgeHit) int64 {
		return hit.Document.ProductId
	}))
	products, err := usecase.repository.GetProductsByIds(ctx, exec, productIds)
	if err != nil {
		return nil, err
	}
	productsById := pure_utils.MapSliceToMap(products, func(p models.Product) (int64, models.Product) { return p.Id, p })

	return pure_utils.Map(hits, func(hit models.KnowledgeHit) models.SemanticSearchResult {
		result := models.SemanticSearchResult{Hit: hit}
		if product, ok := productsById[hit.Document.ProductId]; ok {
			result.Product = &product
		}
		return result
	}), nil
}
