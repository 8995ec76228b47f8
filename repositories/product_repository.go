package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

type dbId struct {
	Id int64 `db:"id"`
}

func selectProducts() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(dbmodels.ProductFields...).
		From(dbmodels.TABLE_PRODUCTS)
}

func applyProductFilters(query squirrel.SelectBuilder, filters models.ProductFilters) squirrel.SelectBuilder {
	if filters.CategoryId != nil {
		query = query.Where(squirrel.Eq{"category_id": *filters.CategoryId})
	}
	if filters.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"price": *filters.MinPrice})
	}
	if filters.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"price": *filters.MaxPrice})
	}
	if filters.Availability != nil {
		if *filters.Availability {
			query = query.Where(squirrel.Gt{"stock": 0})
		} else {
			query = query.Where(squirrel.Eq{"stock": 0})
		}
	}
	return query
}

func (repo *StoreDbRepository) ListProducts(ctx context.Context, exec Executor,
	filters models.ProductFilters,
) (models.Page[models.Product], error) {
	total, err := QueryScalar[int](ctx, exec,
		applyProductFilters(NewQueryBuilder().Select("COUNT(*)").From(dbmodels.TABLE_PRODUCTS), filters))
	if err != nil {
		return models.Page[models.Product]{}, err
	}

	products, err := SqlToListOfModels(ctx, exec,
		applyProductFilters(selectProducts(), filters).
			OrderBy("created_at DESC", "id DESC").
			Limit(uint64(filters.Size)).
			Offset(filters.Offset()),
		dbmodels.AdaptProduct,
	)
	if err != nil {
		return models.Page[models.Product]{}, err
	}

	return models.Page[models.Product]{
		Items: products,
		Total: total,
		Page:  filters.Page,
		Size:  filters.Size,
	}, nil
}

// escapeLike neutralises the LIKE wildcards of user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func searchPredicate(term string) squirrel.Sqlizer {
	pattern := "%" + escapeLike(term) + "%"
	return squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		},
	}
}

func (repo *StoreDbRepository) SearchProducts(ctx context.Context, exec Executor,
	search models.ProductSearch,
) (models.Page[models.Product], error) {
	predicate := searchPredicate(search.Query)

	total, err := QueryScalar[int](ctx, exec,
		NewQueryBuilder().Select("COUNT(*)").From(dbmodels.TABLE_PRODUCTS).Where(predicate))
	if err != nil {
		return models.Page[models.Product]{}, err
	}

	products, err := SqlToListOfModels(ctx, exec,
		selectProducts().
			Where(predicate).
			OrderBy("created_at DESC", "id DESC").
			Limit(uint64(search.Size)).
			Offset(search.Offset()),
		dbmodels.AdaptProduct,
	)
	if err != nil {
		return models.Page[models.Product]{}, err
	}

	return models.Page[models.Product]{
		Items: products,
		Total: total,
		Page:  search.Page,
		Size:  search.Size,
	}, nil
}

func (repo *StoreDbRepository) GetProductById(ctx context.Context, exec Executor, productId int64) (models.Product, error) {
	return repo.getProduct(ctx, exec, productId, false)
}

// GetProductByIdForUpdate locks the product row until the end of the transaction.
func (repo *StoreDbRepository) GetProductByIdForUpdate(ctx context.Context, exec Executor, productId int64) (models.Product, error) {
	return repo.getProduct(ctx, exec, productId, true)
}

func (repo *StoreDbRepository) getProduct(ctx context.Context, exec Executor, productId int64, forUpdate bool) (models.Product, error) {
	query := selectProducts().Where(squirrel.Eq{"id": productId})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}
	product, err := SqlToModel(ctx, exec, query, dbmodels.AdaptProduct)
	if errors.Is(err, models.NotFoundError) {
		return models.Product{}, models.ErrProductNotFound
	}
	return product, err
}

func (repo *StoreDbRepository) GetProductsByIds(ctx context.Context, exec Executor, productIds []int64) ([]models.Product, error) {
	if len(productIds) == 0 {
		return []models.Product{}, nil
	}
	return SqlToListOfModels(ctx, exec,
		selectProducts().Where(squirrel.Eq{"id": productIds}).OrderBy("id"),
		dbmodels.AdaptProduct,
	)
}

// LockProducts locks the rows in id order to keep concurrent checkouts deadlock free.
func (repo *StoreDbRepository) LockProducts(ctx context.Context, exec Executor, productIds []int64) ([]models.Product, error) {
	if len(productIds) == 0 {
		return []models.Product{}, nil
	}
	return SqlToListOfModels(ctx, exec,
		selectProducts().Where(squirrel.Eq{"id": productIds}).OrderBy("id").Suffix("FOR UPDATE"),
		dbmodels.AdaptProduct,
	)
}

func (repo *StoreDbRepository) ListProductIds(ctx context.Context, exec Executor) ([]int64, error) {
	return SqlToListOfModels(ctx, exec,
		NewQueryBuilder().Select("id").From(dbmodels.TABLE_PRODUCTS).OrderBy("id"),
		func(row dbId) (int64, error) { return row.Id, nil },
	)
}

func (repo *StoreDbRepository) CreateProduct(ctx context.Context, exec Executor,
	vendorId int64, input models.CreateProductInput,
) (models.Product, error) {
	product, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_PRODUCTS).
			Columns("name", "description", "price", "promotional_price", "stock", "is_active", "category_id", "vendor_id").
			Values(
				input.Name,
				input.Description,
				input.Price,
				input.PromotionalPrice,
				input.Stock,
				models.ActiveFromStock(input.Stock),
				input.CategoryId,
				vendorId,
			).
			Suffix("RETURNING "+columnList(dbmodels.ProductFields)),
		dbmodels.AdaptProduct,
	)
	if IsForeignKeyViolationError(err) {
		return models.Product{}, errors.Wrap(models.NotFoundError, "Category not found")
	}
	return product, err
}

func (repo *StoreDbRepository) UpdateProduct(ctx context.Context, exec Executor,
	productId int64, input models.UpdateProductInput,
) (models.Product, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_PRODUCTS).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productId}).
		Suffix("RETURNING " + columnList(dbmodels.ProductFields))

	if input.Name != nil {
		query = query.Set("name", *input.Name)
	}
	if input.Description != nil {
		query = query.Set("description", *input.Description)
	}
	if input.Price != nil {
		query = query.Set("price", *input.Price)
	}
	if input.PromotionalPrice != nil {
		if *input.PromotionalPrice <= 0 {
			query = query.Set("promotional_price", nil)
		} else {
			query = query.Set("promotional_price", *input.PromotionalPrice)
		}
	}
	if input.Stock != nil {
		query = query.
			Set("stock", *input.Stock).
			Set("is_active", models.ActiveFromStock(*input.Stock))
	}
	if input.CategoryId != nil {
		query = query.Set("category_id", *input.CategoryId)
	}

	product, err := SqlToModel(ctx, exec, query, dbmodels.AdaptProduct)
	switch {
	case errors.Is(err, models.NotFoundError):
		return models.Product{}, models.ErrProductNotFound
	case IsForeignKeyViolationError(err):
		return models.Product{}, errors.Wrap(models.NotFoundError, "Category not found")
	}
	return product, err
}

// AdjustStock adds delta to the stock and recomputes availability from the new value.
func (repo *StoreDbRepository) AdjustStock(ctx context.Context, exec Executor, productId int64, delta int) error {
	affected, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_PRODUCTS).
			Set("stock", squirrel.Expr("stock + ?", delta)).
			Set("is_active", squirrel.Expr("stock + ? > 0", delta)).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": productId}),
	)
	if IsCheckViolationError(err) {
		return models.NewStockExceededError(0, nil)
	}
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (repo *StoreDbRepository) IncrementViewCount(ctx context.Context, exec Executor, productId int64) error {
	_, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_PRODUCTS).
			Set("view_count", squirrel.Expr("view_count + 1")).
			Where(squirrel.Eq{"id": productId}),
	)
	return err
}

func (repo *StoreDbRepository) ProductRatingStats(ctx context.Context, exec Executor, productId int64) (models.ProductRatingStats, error) {
	query, args, err := NewQueryBuilder().
		Select("COUNT(*)", "COALESCE(AVG(rating), 0)::float8").
		From(dbmodels.TABLE_REVIEWS).
		Where(squirrel.Eq{"product_id": productId, "parent_review_id": nil}).
		ToSql()
	if err != nil {
		return models.ProductRatingStats{}, errors.Wrap(err, "can't build sql query")
	}

	var stats models.ProductRatingStats
	if err := exec.QueryRow(ctx, query, args...).Scan(&stats.ReviewCount, &stats.AverageRating); err != nil {
		return models.ProductRatingStats{}, errors.Wrap(err, "error reading rating stats")
	}
	stats.AverageRating = models.RoundRating(stats.AverageRating)
	return stats, nil
}

func (repo *StoreDbRepository) SetProductRatingStats(ctx context.Context, exec Executor,
	productId int64, stats models.ProductRatingStats,
) error {
	_, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_PRODUCTS).
			Set("review_count", stats.ReviewCount).
			Set("average_rating", stats.AverageRating).
			Where(squirrel.Eq{"id": productId}),
	)
	return err
}

func (repo *StoreDbRepository) DeleteProduct(ctx context.Context, exec Executor, productId int64) error {
	affected, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_PRODUCTS).Where(squirrel.Eq{"id": productId}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (repo *StoreDbRepository) DeleteAllProducts(ctx context.Context, exec Executor) (int64, error) {
	return ExecBuilder(ctx, exec, NewQueryBuilder().Delete(dbmodels.TABLE_PRODUCTS))
}
