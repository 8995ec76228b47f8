package usecases

import (
	"context"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
	"github.com/storefront/storefront-backend/utils"
)

const maxTrackingNumberLength = 100

type OrderRepository interface {
	ListCartItems(ctx context.Context, exec repositories.Executor, userId int64) ([]models.CartItem, error)
	ClearCart(ctx context.Context, exec repositories.Executor, userId int64) error
	LockProducts(ctx context.Context, exec repositories.Executor, productIds []int64) ([]models.Product, error)
	AdjustStock(ctx context.Context, exec repositories.Executor, productId int64, delta int) error
	CreateOrder(ctx context.Context, exec repositories.Executor, userId int64, items []models.OrderItem) (models.Order, error)
	GetOrderById(ctx context.Context, exec repositories.Executor, orderId int64) (models.Order, error)
	GetOrderByIdForUpdate(ctx context.Context, exec repositories.Executor, orderId int64) (models.Order, error)
	ListOrders(ctx context.Context, exec repositories.Executor, filters models.OrderFilters) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, exec repositories.Executor, update models.UpdateOrderStatus) error
}

type OrderUsecase struct {
	enforceSecurity    security.EnforceSecurityOrder
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         OrderRepository
	catalogCache       CatalogCache
	credentials        models.Credentials
}

// PlaceOrder checks out the cart of the caller: stock is reserved, the order is created
// with a snapshot of every line and the cart is emptied, all in one transaction.
func (usecase *OrderUsecase) PlaceOrder(ctx context.Context) (models.Order, error) {
	if err := usecase.enforceSecurity.PlaceOrder(); err != nil {
		return models.Order{}, err
	}
	userId := usecase.credentials.UserId
	_, span := utils.StartSpan(ctx, "OrderUsecase.PlaceOrder", attribute.Int64("user_id", userId))
	defer span.End()

	order, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Order, error) {
			cart, err := usecase.repository.ListCartItems(ctx, tx, userId)
			if err != nil {
				return models.Order{}, err
			}
			if len(cart) == 0 {
				return models.Order{}, models.ErrEmptyCart
			}

			productIds := pure_utils.Unique(pure_utils.Map(cart, func(item models.CartItem) int64 { return item.ProductId }))
			slices.Sort(productIds)
			products, err := usecase.repository.LockProducts(ctx, tx, productIds)
			if err != nil {
				return models.Order{}, err
			}
			productsById := pure_utils.MapSliceToMap(products, func(p models.Product) (int64, models.Product) { return p.Id, p })

			items := make([]models.OrderItem, 0, len(cart))
			for _, line := range cart {
				product, ok := productsById[line.ProductId]
				if !ok {
					return models.Order{}, models.ErrProductNotFound
				}
				if !product.IsActive {
					return models.Order{}, errors.Wrapf(models.BadParameterError,
						"Product %s is not available", product.Name)
				}
				if line.Quantity > product.Stock {
					return models.Order{}, errors.Wrap(models.NewStockExceededError(product.Stock, nil), product.Name)
				}
				if err := usecase.repository.AdjustStock(ctx, tx, product.Id, -line.Quantity); err != nil {
					return models.Order{}, err
				}
				items = append(items, models.OrderItem{
					ProductId:   pure_utils.Ptr(product.Id),
					VendorId:    product.VendorId,
					ProductName: product.Name,
					Quantity:    line.Quantity,
					UnitPrice:   product.UnitPrice(),
					TotalPrice:  models.LinePrice(product, line.Quantity),
				})
			}

			order, err := usecase.repository.CreateOrder(ctx, tx, userId, items)
			if err != nil {
				return models.Order{}, err
			}
			if err := usecase.repository.ClearCart(ctx, tx, userId); err != nil {
				return models.Order{}, err
			}
			return order, nil
		})
	if err != nil {
		span.RecordError(err)
		return models.Order{}, err
	}
	span.SetAttributes(attribute.Int64("order_id", order.Id))

	usecase.catalogCache.Invalidate(ctx)
	utils.MetricOrdersPlaced.Inc()
	utils.LoggerFromContext(ctx).InfoContext(ctx, "order placed",
		"order_id", order.Id, "total_amount", order.TotalAmount, "items", len(order.Items))
	return order, nil
}

func (usecase *OrderUsecase) ListOrders(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	filters, err := usecase.enforceSecurity.VisibleOrders(models.OrderFilters{Status: status})
	if err != nil {
		return nil, err
	}
	return usecase.repository.ListOrders(ctx, usecase.executorFactory.NewExecutor(), filters)
}

func (usecase *OrderUsecase) ListOrdersByStatus(ctx context.Context, rawStatus string) ([]models.Order, error) {
	status, err := models.OrderStatusFrom(strings.ToLower(strings.TrimSpace(rawStatus)))
	if err != nil {
		return nil, err
	}
	return usecase.ListOrders(ctx, &status)
}

func (usecase *OrderUsecase) GetOrder(ctx context.Context, orderId int64) (models.Order, error) {
	order, err := usecase.repository.GetOrderById(ctx, usecase.executorFactory.NewExecutor(), orderId)
	if err != nil {
		return models.Order{}, err
	}
	if err := usecase.enforceSecurity.ReadOrder(order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// transition locks the order, checks the caller's rights and the state machine, then applies the change.
func (usecase *OrderUsecase) transition(
	ctx context.Context,
	orderId int64,
	next models.OrderStatus,
	allowed func(order models.Order) error,
	apply func(tx repositories.Transaction, order models.Order) error,
) (models.Order, error) {
	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Order, error) {
			order, err := usecase.repository.GetOrderByIdForUpdate(ctx, tx, orderId)
			if err != nil {
				return models.Order{}, err
			}
			if err := allowed(order); err != nil {
				return models.Order{}, err
			}
			if err := order.Status.TransitionTo(next); err != nil {
				return models.Order{}, err
			}
			if err := apply(tx, order); err != nil {
				return models.Order{}, err
			}
			return usecase.repository.GetOrderById(ctx, tx, orderId)
		})
}

// CancelOrder puts the reserved stock back on sale.
func (usecase *OrderUsecase) CancelOrder(ctx context.Context, orderId int64) (models.Order, error) {
	order, err := usecase.transition(ctx, orderId, models.OrderCanceled, usecase.enforceSecurity.CancelOrder,
		func(tx repositories.Transaction, order models.Order) error {
			for _, item := range order.Items {
				if item.ProductId == nil {
					continue
				}
				err := usecase.repository.AdjustStock(ctx, tx, *item.ProductId, item.Quantity)
				if errors.Is(err, models.ErrProductNotFound) {
					continue
				}
				if err != nil {
					return err
				}
			}
			return usecase.repository.UpdateOrderStatus(ctx, tx, models.UpdateOrderStatus{
				OrderId: order.Id,
				Status:  models.OrderCanceled,
			})
		})
	if err != nil {
		return models.Order{}, err
	}
	usecase.catalogCache.Invalidate(ctx)
	return order, nil
}

func (usecase *OrderUsecase) ShipOrder(ctx context.Context, orderId int64, trackingNumber string) (models.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" || len(trackingNumber) > maxTrackingNumberLength {
		return models.Order{}, errors.Wrapf(models.BadParameterError,
			"tracking_number must be between 1 and %d characters", maxTrackingNumberLength)
	}

	return usecase.transition(ctx, orderId, models.OrderShipped, usecase.enforceSecurity.ShipOrder,
		func(tx repositories.Transaction, order models.Order) error {
			return usecase.repository.UpdateOrderStatus(ctx, tx, models.UpdateOrderStatus{
				OrderId:        order.Id,
				Status:         models.OrderShipped,
				TrackingNumber: &trackingNumber,
			})
		})
}

func (usecase *OrderUsecase) ConfirmReceipt(ctx context.Context, orderId int64) (models.Order, error) {
	return usecase.transition(ctx, orderId, models.OrderCompleted, usecase.enforceSecurity.ConfirmReceipt,
		func(tx repositories.Transaction, order models.Order) error {
			return usecase.repository.UpdateOrderStatus(ctx, tx, models.UpdateOrderStatus{
				OrderId: order.Id,
				Status:  models.OrderCompleted,
			})
		})
}
