package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func (repo *StoreDbRepository) CreateOrder(ctx context.Context, exec Executor,
	userId int64, items []models.OrderItem,
) (models.Order, error) {
	order, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ORDERS).
			Columns("user_id", "total_amount", "order_status").
			Values(userId, models.OrderTotal(items), string(models.OrderPending)).
			Suffix("RETURNING "+columnList(dbmodels.OrderFields)),
		dbmodels.AdaptOrder,
	)
	if err != nil {
		return models.Order{}, err
	}

	insert := NewQueryBuilder().
		Insert(dbmodels.TABLE_ORDER_ITEMS).
		Columns("order_id", "product_id", "vendor_id", "product_name", "quantity", "unit_price", "total_price").
		Suffix("RETURNING " + columnList(dbmodels.OrderItemFields))
	for _, item := range items {
		insert = insert.Values(order.Id, item.ProductId, item.VendorId, item.ProductName,
			item.Quantity, item.UnitPrice, item.TotalPrice)
	}
	order.Items, err = SqlToListOfModels(ctx, exec, insert, dbmodels.AdaptOrderItem)
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (repo *StoreDbRepository) GetOrderById(ctx context.Context, exec Executor, orderId int64) (models.Order, error) {
	return repo.getOrder(ctx, exec, orderId, false)
}

func (repo *StoreDbRepository) GetOrderByIdForUpdate(ctx context.Context, exec Executor, orderId int64) (models.Order, error) {
	return repo.getOrder(ctx, exec, orderId, true)
}

func (repo *StoreDbRepository) getOrder(ctx context.Context, exec Executor, orderId int64, forUpdate bool) (models.Order, error) {
	query := NewQueryBuilder().
		Select(dbmodels.OrderFields...).
		From(dbmodels.TABLE_ORDERS).
		Where(squirrel.Eq{"id": orderId})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}
	order, err := SqlToModel(ctx, exec, query, dbmodels.AdaptOrder)
	if errors.Is(err, models.NotFoundError) {
		return models.Order{}, errors.Wrap(models.NotFoundError, "Order not found")
	}
	if err != nil {
		return models.Order{}, err
	}

	items, err := repo.listOrderItems(ctx, exec, []int64{order.Id})
	if err != nil {
		return models.Order{}, err
	}
	order.Items = items
	return order, nil
}

// ListOrders applies the visibility filters: by owner, or by vendor of at least one item.
func (repo *StoreDbRepository) ListOrders(ctx context.Context, exec Executor, filters models.OrderFilters) ([]models.Order, error) {
	query := NewQueryBuilder().
		Select(dbmodels.OrderFields...).
		From(dbmodels.TABLE_ORDERS).
		OrderBy("created_at DESC", "id DESC")

	if filters.UserId != nil {
		query = query.Where(squirrel.Eq{"user_id": *filters.UserId})
	}
	if filters.VendorId != nil {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM "+dbmodels.TABLE_ORDER_ITEMS+" oi WHERE oi.order_id = "+
				dbmodels.TABLE_ORDERS+".id AND oi.vendor_id = ?)",
			*filters.VendorId,
		))
	}
	if filters.Status != nil {
		query = query.Where(squirrel.Eq{"order_status": string(*filters.Status)})
	}

	orders, err := SqlToListOfModels(ctx, exec, query, dbmodels.AdaptOrder)
	if err != nil {
		return nil, err
	}

	items, err := repo.listOrderItems(ctx, exec, pure_utils.Map(orders, func(o models.Order) int64 { return o.Id }))
	if err != nil {
		return nil, err
	}
	itemsByOrder := make(map[int64][]models.OrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderId] = append(itemsByOrder[item.OrderId], item)
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].Id]
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	return orders, nil
}

func (repo *StoreDbRepository) listOrderItems(ctx context.Context, exec Executor, orderIds []int64) ([]models.OrderItem, error) {
	if len(orderIds) == 0 {
		return []models.OrderItem{}, nil
	}
	return SqlToListOfModels(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.OrderItemFields...).
			From(dbmodels.TABLE_ORDER_ITEMS).
			Where(squirrel.Eq{"order_id": orderIds}).
			OrderBy("id"),
		dbmodels.AdaptOrderItem,
	)
}

func (repo *StoreDbRepository) UpdateOrderStatus(ctx context.Context, exec Executor, update models.UpdateOrderStatus) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_ORDERS).
		Set("order_status", string(update.Status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": update.OrderId})
	if update.TrackingNumber != nil {
		query = query.Set("tracking_number", *update.TrackingNumber)
	}

	affected, err := ExecBuilder(ctx, exec, query)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(models.NotFoundError, "Order not found")
	}
	return nil
}
