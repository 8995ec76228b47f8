package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func selectCartItems() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(dbmodels.CartItemFields...).
		From(dbmodels.TABLE_CART_ITEMS)
}

func (repo *StoreDbRepository) ListCartItems(ctx context.Context, exec Executor, userId int64) ([]models.CartItem, error) {
	return SqlToListOfModels(ctx, exec,
		selectCartItems().Where(squirrel.Eq{"user_id": userId}).OrderBy("created_at", "id"),
		dbmodels.AdaptCartItem,
	)
}

func (repo *StoreDbRepository) GetCartItem(ctx context.Context, exec Executor, cartItemId int64) (models.CartItem, error) {
	item, err := SqlToModel(ctx, exec,
		selectCartItems().Where(squirrel.Eq{"id": cartItemId}),
		dbmodels.AdaptCartItem,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.CartItem{}, models.ErrCartItemNotFound
	}
	return item, err
}

func (repo *StoreDbRepository) GetCartItemByProduct(ctx context.Context, exec Executor,
	userId, productId int64,
) (*models.CartItem, error) {
	return SqlToOptionalModel(ctx, exec,
		selectCartItems().
			Where(squirrel.Eq{"user_id": userId, "product_id": productId}).
			Suffix("FOR UPDATE"),
		dbmodels.AdaptCartItem,
	)
}

func (repo *StoreDbRepository) CreateCartItem(ctx context.Context, exec Executor, item models.CartItem) (models.CartItem, error) {
	created, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_CART_ITEMS).
			Columns("user_id", "product_id", "quantity", "price").
			Values(item.UserId, item.ProductId, item.Quantity, item.Price).
			Suffix("RETURNING "+columnList(dbmodels.CartItemFields)),
		dbmodels.AdaptCartItem,
	)
	if IsUniqueViolationError(err) {
		return models.CartItem{}, errors.Wrap(models.ConflictError, "product already in cart")
	}
	return created, err
}

func (repo *StoreDbRepository) UpdateCartItem(ctx context.Context, exec Executor,
	cartItemId int64, quantity int, price float64,
) (models.CartItem, error) {
	item, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_CART_ITEMS).
			Set("quantity", quantity).
			Set("price", price).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": cartItemId}).
			Suffix("RETURNING "+columnList(dbmodels.CartItemFields)),
		dbmodels.AdaptCartItem,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.CartItem{}, models.ErrCartItemNotFound
	}
	return item, err
}

func (repo *StoreDbRepository) DeleteCartItem(ctx context.Context, exec Executor, cartItemId int64) error {
	affected, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_CART_ITEMS).Where(squirrel.Eq{"id": cartItemId}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}

func (repo *StoreDbRepository) ClearCart(ctx context.Context, exec Executor, userId int64) error {
	_, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_CART_ITEMS).Where(squirrel.Eq{"user_id": userId}))
	return err
}
