package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func (repo *StoreDbRepository) ListCategories(ctx context.Context, exec Executor) ([]models.Category, error) {
	return SqlToListOfModels(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.CategoryFields...).
			From(dbmodels.TABLE_CATEGORIES).
			OrderBy("name", "id"),
		dbmodels.AdaptCategory,
	)
}

func (repo *StoreDbRepository) GetCategoryById(ctx context.Context, exec Executor, categoryId int64) (models.Category, error) {
	category, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.CategoryFields...).
			From(dbmodels.TABLE_CATEGORIES).
			Where(squirrel.Eq{"id": categoryId}),
		dbmodels.AdaptCategory,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.Category{}, errors.Wrap(models.NotFoundError, "Category not found")
	}
	return category, err
}

func (repo *StoreDbRepository) GetCategoryByName(ctx context.Context, exec Executor, name string) (*models.Category, error) {
	return SqlToOptionalModel(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.CategoryFields...).
			From(dbmodels.TABLE_CATEGORIES).
			Where(squirrel.Eq{"name": name}),
		dbmodels.AdaptCategory,
	)
}

func (repo *StoreDbRepository) CreateCategory(ctx context.Context, exec Executor, input models.CreateCategoryInput) (models.Category, error) {
	category, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_CATEGORIES).
			Columns("name", "description", "parent_id").
			Values(input.Name, input.Description, input.ParentId).
			Suffix("RETURNING "+columnList(dbmodels.CategoryFields)),
		dbmodels.AdaptCategory,
	)
	if IsUniqueViolationError(err) {
		return models.Category{}, errors.Wrap(models.ConflictError, "Category name already exists")
	}
	return category, err
}

func (repo *StoreDbRepository) UpdateCategory(ctx context.Context, exec Executor,
	categoryId int64, input models.UpdateCategoryInput,
) (models.Category, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_CATEGORIES).
		Where(squirrel.Eq{"id": categoryId}).
		Suffix("RETURNING " + columnList(dbmodels.CategoryFields))

	if input.Name != nil {
		query = query.Set("name", *input.Name)
	}
	if input.Description != nil {
		query = query.Set("description", *input.Description)
	}
	if input.ParentId != nil {
		query = query.Set("parent_id", *input.ParentId)
	}
	if input.Name == nil && input.Description == nil && input.ParentId == nil {
		return repo.GetCategoryById(ctx, exec, categoryId)
	}

	category, err := SqlToModel(ctx, exec, query, dbmodels.AdaptCategory)
	switch {
	case errors.Is(err, models.NotFoundError):
		return models.Category{}, errors.Wrap(models.NotFoundError, "Category not found")
	case IsUniqueViolationError(err):
		return models.Category{}, errors.Wrap(models.ConflictError, "Category name already exists")
	case IsCheckViolationError(err):
		return models.Category{}, errors.Wrap(models.BadParameterError, "a category cannot be its own parent")
	}
	return category, err
}

// CategoryUsage counts the products and sub-categories attached to a category.
func (repo *StoreDbRepository) CategoryUsage(ctx context.Context, exec Executor, categoryId int64) (int, error) {
	return QueryScalar[int](ctx, exec,
		NewQueryBuilder().
			Select().
			Column(squirrel.Expr(
				"(SELECT COUNT(*) FROM "+dbmodels.TABLE_PRODUCTS+" WHERE category_id = ?) + "+
					"(SELECT COUNT(*) FROM "+dbmodels.TABLE_CATEGORIES+" WHERE parent_id = ?)",
				categoryId, categoryId,
			)),
	)
}

func (repo *StoreDbRepository) DeleteCategory(ctx context.Context, exec Executor, categoryId int64) error {
	affected, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_CATEGORIES).
			Where(squirrel.Eq{"id": categoryId}),
	)
	if IsForeignKeyViolationError(err) {
		return models.ErrCategoryStillInUse
	}
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "Category not found")
	}
	return nil
}
