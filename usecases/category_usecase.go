package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context, exec repositories.Executor) ([]models.Category, error)
	GetCategoryById(ctx context.Context, exec repositories.Executor, categoryId int64) (models.Category, error)
	CreateCategory(ctx context.Context, exec repositories.Executor, input models.CreateCategoryInput) (models.Category, error)
	UpdateCategory(ctx context.Context, exec repositories.Executor, categoryId int64,
		input models.UpdateCategoryInput) (models.Category, error)
	CategoryUsage(ctx context.Context, exec repositories.Executor, categoryId int64) (int, error)
	DeleteCategory(ctx context.Context, exec repositories.Executor, categoryId int64) error
}

type CategoryUsecase struct {
	enforceSecurity    security.EnforceSecurityCatalog
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         CategoryRepository
	catalogCache       CatalogCache
}

func (usecase *CategoryUsecase) ListCategoryTree(ctx context.Context) ([]models.Category, error) {
	categories, err := usecase.repository.ListCategories(ctx, usecase.executorFactory.NewExecutor())
	if err != nil {
		return nil, err
	}
	return models.BuildCategoryTree(categories), nil
}

func (usecase *CategoryUsecase) GetCategory(ctx context.Context, categoryId int64) (models.Category, error) {
	return usecase.repository.GetCategoryById(ctx, usecase.executorFactory.NewExecutor(), categoryId)
}

func (usecase *CategoryUsecase) CreateCategory(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
	if err := usecase.enforceSecurity.ManageCategories(); err != nil {
		return models.Category{}, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return models.Category{}, errors.Wrap(models.BadParameterError, "name is required")
	}

	category, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Category, error) {
			if input.ParentId != nil {
				if _, err := usecase.repository.GetCategoryById(ctx, tx, *input.ParentId); err != nil {
					return models.Category{}, errors.Wrap(err, "parent")
				}
			}
			return usecase.repository.CreateCategory(ctx, tx, input)
		})
	if err != nil {
		return models.Category{}, err
	}
	usecase.catalogCache.Invalidate(ctx)
	return category, nil
}

func (usecase *CategoryUsecase) UpdateCategory(ctx context.Context, categoryId int64,
	input models.UpdateCategoryInput,
) (models.Category, error) {
	if err := usecase.enforceSecurity.ManageCategories(); err != nil {
		return models.Category{}, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return models.Category{}, errors.Wrap(models.BadParameterError, "name must not be empty")
		}
		input.Name = &name
	}

	category, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Category, error) {
			if _, err := usecase.repository.GetCategoryById(ctx, tx, categoryId); err != nil {
				return models.Category{}, err
			}
			if input.ParentId != nil {
				if err := usecase.checkNoCycle(ctx, tx, categoryId, *input.ParentId); err != nil {
					return models.Category{}, err
				}
			}
			return usecase.repository.UpdateCategory(ctx, tx, categoryId, input)
		})
	if err != nil {
		return models.Category{}, err
	}
	usecase.catalogCache.Invalidate(ctx)
	return category, nil
}

// checkNoCycle walks up from the new parent and fails if it reaches the category itself.
func (usecase *CategoryUsecase) checkNoCycle(ctx context.Context, exec repositories.Executor,
	categoryId, parentId int64,
) error {
	if parentId == categoryId {
		return errors.Wrap(models.BadParameterError, "a category cannot be its own parent")
	}

	visited := map[int64]bool{categoryId: true}
	current := parentId
	for {
		if visited[current] {
			return errors.Wrap(models.BadParameterError, "a category cannot be moved under one of its descendants")
		}
		visited[current] = true

		parent, err := usecase.repository.GetCategoryById(ctx, exec, current)
		if err != nil {
			return errors.Wrap(err, "parent")
		}
		if parent.ParentId == nil {
			return nil
		}
		current = *parent.ParentId
	}
}

func (usecase *CategoryUsecase) DeleteCategory(ctx context.Context, categoryId int64) error {
	if err := usecase.enforceSecurity.ManageCategories(); err != nil {
		return err
	}

	err := usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if _, err := usecase.repository.GetCategoryById(ctx, tx, categoryId); err != nil {
			return err
		}
		usage, err := usecase.repository.CategoryUsage(ctx, tx, categoryId)
		if err != nil {
			return err
		}
		if usage > 0 {
			return models.ErrCategoryStillInUse
		}
		return usecase.repository.DeleteCategory(ctx, tx, categoryId)
	})
	if err != nil {
		return err
	}
	usecase.catalogCache.Invalidate(ctx)
	return nil
}
