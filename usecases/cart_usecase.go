package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
)

type CartRepository interface {
	GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error)
	ListCartItems(ctx context.Context, exec repositories.Executor, userId int64) ([]models.CartItem, error)
	GetCartItem(ctx context.Context, exec repositories.Executor, cartItemId int64) (models.CartItem, error)
	GetCartItemByProduct(ctx context.Context, exec repositories.Executor, userId, productId int64) (*models.CartItem, error)
	CreateCartItem(ctx context.Context, exec repositories.Executor, item models.CartItem) (models.CartItem, error)
	UpdateCartItem(ctx context.Context, exec repositories.Executor, cartItemId int64, quantity int,
		price float64) (models.CartItem, error)
	DeleteCartItem(ctx context.Context, exec repositories.Executor, cartItemId int64) error
}

type CartUsecase struct {
	enforceSecurity    security.EnforceSecurityCart
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         CartRepository
	credentials        models.Credentials
}

func (usecase *CartUsecase) ListCartItems(ctx context.Context) ([]models.CartItem, error) {
	if err := usecase.enforceSecurity.UseCart(); err != nil {
		return nil, err
	}
	return usecase.repository.ListCartItems(ctx, usecase.executorFactory.NewExecutor(), usecase.credentials.UserId)
}

func (usecase *CartUsecase) GetCartItem(ctx context.Context, cartItemId int64) (models.CartItem, error) {
	item, err := usecase.repository.GetCartItem(ctx, usecase.executorFactory.NewExecutor(), cartItemId)
	if err != nil {
		return models.CartItem{}, err
	}
	if err := usecase.enforceSecurity.ReadCartItem(item); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

func validQuantity(quantity int) error {
	if quantity < 1 {
		return errors.Wrap(models.BadParameterError, "quantity must be at least 1")
	}
	return nil
}

// sellableProduct loads a product that can be put in a cart: inactive products are hidden.
func (usecase *CartUsecase) sellableProduct(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error) {
	product, err := usecase.repository.GetProductById(ctx, exec, productId)
	if err != nil {
		return models.Product{}, err
	}
	if !product.IsActive {
		return models.Product{}, models.ErrProductNotFound
	}
	return product, nil
}

// AddToCart sums the quantity into the existing line of the product, if any.
func (usecase *CartUsecase) AddToCart(ctx context.Context, input models.AddCartItemInput) (models.CartItem, error) {
	if err := usecase.enforceSecurity.UseCart(); err != nil {
		return models.CartItem{}, err
	}
	if err := validQuantity(input.Quantity); err != nil {
		return models.CartItem{}, err
	}

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.CartItem, error) {
			product, err := usecase.sellableProduct(ctx, tx, input.ProductId)
			if err != nil {
				return models.CartItem{}, err
			}

			existing, err := usecase.repository.GetCartItemByProduct(ctx, tx, usecase.credentials.UserId, input.ProductId)
			if err != nil {
				return models.CartItem{}, err
			}

			if existing == nil {
				if input.Quantity > product.Stock {
					return models.CartItem{}, models.NewStockExceededError(product.Stock, nil)
				}
				return usecase.repository.CreateCartItem(ctx, tx, models.CartItem{
					UserId:    usecase.credentials.UserId,
					ProductId: product.Id,
					Quantity:  input.Quantity,
					Price:     models.LinePrice(product, input.Quantity),
				})
			}

			quantity := existing.Quantity + input.Quantity
			if quantity > product.Stock {
				inCart := existing.Quantity
				return models.CartItem{}, models.NewStockExceededError(product.Stock, &inCart)
			}
			return usecase.repository.UpdateCartItem(ctx, tx, existing.Id, quantity, models.LinePrice(product, quantity))
		})
}

func (usecase *CartUsecase) UpdateCartItem(ctx context.Context, cartItemId int64, quantity int) (models.CartItem, error) {
	if err := validQuantity(quantity); err != nil {
		return models.CartItem{}, err
	}

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.CartItem, error) {
			item, err := usecase.repository.GetCartItem(ctx, tx, cartItemId)
			if err != nil {
				return models.CartItem{}, err
			}
			if err := usecase.enforceSecurity.ReadCartItem(item); err != nil {
				return models.CartItem{}, err
			}

			product, err := usecase.sellableProduct(ctx, tx, item.ProductId)
			if err != nil {
				return models.CartItem{}, err
			}
			if quantity > product.Stock {
				return models.CartItem{}, models.NewStockExceededError(product.Stock, nil)
			}
			return usecase.repository.UpdateCartItem(ctx, tx, cartItemId, quantity, models.LinePrice(product, quantity))
		})
}

func (usecase *CartUsecase) DeleteCartItem(ctx context.Context, cartItemId int64) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		item, err := usecase.repository.GetCartItem(ctx, tx, cartItemId)
		if err != nil {
			return err
		}
		if err := usecase.enforceSecurity.ReadCartItem(item); err != nil {
			return err
		}
		return usecase.repository.DeleteCartItem(ctx, tx, cartItemId)
	})
}
