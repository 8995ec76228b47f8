package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
	"github.com/storefront/storefront-backend/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, exec repositories.Executor, filters models.ProductFilters) (models.Page[models.Product], error)
	SearchProducts(ctx context.Context, exec repositories.Executor, search models.ProductSearch) (models.Page[models.Product], error)
	GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error)
	GetProductByIdForUpdate(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error)
	CreateProduct(ctx context.Context, exec repositories.Executor, vendorId int64, input models.CreateProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, exec repositories.Executor, productId int64, input models.UpdateProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, exec repositories.Executor, productId int64) error
	IncrementViewCount(ctx context.Context, exec repositories.Executor, productId int64) error
	GetCategoryById(ctx context.Context, exec repositories.Executor, categoryId int64) (models.Category, error)
}

type ProductUsecase struct {
	enforceSecurity    security.EnforceSecurityCatalog
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         ProductRepository
	taskQueue          repositories.TaskQueueRepository
	catalogCache       CatalogCache
	credentials        models.Credentials
}

func (usecase *ProductUsecase) ListProducts(ctx context.Context, filters models.ProductFilters) (models.Page[models.Product], error) {
	filters.Pagination = filters.Pagination.Normalized()
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return models.Page[models.Product]{}, errors.Wrap(models.BadParameterError,
			"min_price must be lower than max_price")
	}

	page, err := usecase.catalogCache.ProductList(ctx, filters,
		func(ctx context.Context) (models.Page[models.Product], error) {
			return usecase.repository.ListProducts(ctx, usecase.executorFactory.NewExecutor(), filters)
		})
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	if len(page.Items) == 0 {
		return models.Page[models.Product]{}, models.ErrProductNotFound
	}
	return page, nil
}

func (usecase *ProductUsecase) SearchProducts(ctx context.Context, search models.ProductSearch) (models.Page[models.Product], error) {
	search.Query = strings.TrimSpace(search.Query)
	if search.Query == "" {
		return models.Page[models.Product]{}, models.ErrEmptySearchQuery
	}
	search.Pagination = search.Pagination.Normalized()

	page, err := usecase.catalogCache.ProductSearch(ctx, search,
		func(ctx context.Context) (models.Page[models.Product], error) {
			return usecase.repository.SearchProducts(ctx, usecase.executorFactory.NewExecutor(), search)
		})
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	if len(page.Items) == 0 {
		return models.Page[models.Product]{}, models.ErrNoProductsMatch
	}
	return page, nil
}

// GetProduct counts a view the first time a client ip sees the product in a day.
func (usecase *ProductUsecase) GetProduct(ctx context.Context, productId int64, clientIp string) (models.Product, error) {
	exec := usecase.executorFactory.NewExecutor()
	product, err := usecase.repository.GetProductById(ctx, exec, productId)
	if err != nil {
		return models.Product{}, err
	}

	if usecase.catalogCache.FirstViewOf(ctx, productId, clientIp) {
		if err := usecase.repository.IncrementViewCount(ctx, exec, productId); err != nil {
			utils.LoggerFromContext(ctx).WarnContext(ctx, "could not increment view count",
				"product_id", productId, "error", err.Error())
		} else {
			product.ViewCount++
		}
	}
	return product, nil
}

func validateProductInput(price *float64, promotionalPrice *float64, stock *int) error {
	if price != nil && *price <= 0 {
		return errors.Wrap(models.BadParameterError, "price must be greater than 0")
	}
	if promotionalPrice != nil && *promotionalPrice < 0 {
		return errors.Wrap(models.BadParameterError, "promotional_price must not be negative")
	}
	if stock != nil && *stock < 0 {
		return errors.Wrap(models.BadParameterError, "stock must not be negative")
	}
	return nil
}

func (usecase *ProductUsecase) checkCategory(ctx context.Context, exec repositories.Executor, categoryId *int64) error {
	if categoryId == nil {
		return nil
	}
	_, err := usecase.repository.GetCategoryById(ctx, exec, *categoryId)
	return err
}

func (usecase *ProductUsecase) CreateProduct(ctx context.Context, input models.CreateProductInput) (models.Product, error) {
	if err := usecase.enforceSecurity.CreateProduct(); err != nil {
		return models.Product{}, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return models.Product{}, errors.Wrap(models.BadParameterError, "name is required")
	}
	if err := validateProductInput(&input.Price, input.PromotionalPrice, &input.Stock); err != nil {
		return models.Product{}, err
	}

	product, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Product, error) {
			if err := usecase.checkCategory(ctx, tx, input.CategoryId); err != nil {
				return models.Product{}, err
			}
			product, err := usecase.repository.CreateProduct(ctx, tx, usecase.credentials.UserId, input)
			if err != nil {
				return models.Product{}, err
			}
			if err := usecase.taskQueue.EnqueueIndexProductKnowledge(ctx, tx, product.Id); err != nil {
				return models.Product{}, err
			}
			return product, nil
		})
	if err != nil {
		return models.Product{}, err
	}

	usecase.catalogCache.Invalidate(ctx)
	utils.LoggerFromContext(ctx).InfoContext(ctx, "product created", "product_id", product.Id)
	return product, nil
}

func (usecase *ProductUsecase) UpdateProduct(ctx context.Context, productId int64, input models.UpdateProductInput) (models.Product, error) {
	if err := validateProductInput(input.Price, input.PromotionalPrice, input.Stock); err != nil {
		return models.Product{}, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return models.Product{}, errors.Wrap(models.BadParameterError, "name must not be empty")
	}

	product, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Product, error) {
			product, err := usecase.repository.GetProductByIdForUpdate(ctx, tx, productId)
			if err != nil {
				return models.Product{}, err
			}
			if err := usecase.enforceSecurity.UpdateProduct(product); err != nil {
				return models.Product{}, err
			}
			if err := usecase.checkCategory(ctx, tx, input.CategoryId); err != nil {
				return models.Product{}, err
			}
			updated, err := usecase.repository.UpdateProduct(ctx, tx, productId, input)
			if err != nil {
				return models.Product{}, err
			}
			if err := usecase.taskQueue.EnqueueIndexProductKnowledge(ctx, tx, productId); err != nil {
				return models.Product{}, err
			}
			return updated, nil
		})
	if err != nil {
		return models.Product{}, err
	}

	usecase.catalogCache.Invalidate(ctx)
	return product, nil
}

func (usecase *ProductUsecase) DeleteProduct(ctx context.Context, productId int64) error {
	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		product, err := usecase.repository.GetProductByIdForUpdate(ctx, tx, productId)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.DeleteProduct(product); err != nil {
			return err
		}
		if err := usecase.repository.DeleteProduct(ctx, tx, productId); err != nil {
			return err
		}
		return usecase.taskQueue.EnqueueDeleteProductKnowledge(ctx, tx, productId)
	})
	if err != nil {
		return err
	}

	usecase.catalogCache.Invalidate(ctx)
	utils.LoggerFromContext(ctx).InfoContext(ctx, "product deleted", "product_id", productId)
	return nil
}
