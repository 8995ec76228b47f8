package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBOrder struct {
	Id             int64     `db:"id"`
	UserId         int64     `db:"user_id"`
	TotalAmount    float64   `db:"total_amount"`
	OrderStatus    string    `db:"order_status"`
	TrackingNumber *string   `db:"tracking_number"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

const TABLE_ORDERS = "orders"

var OrderFields = utils.ColumnList[DBOrder]()

func AdaptOrder(db DBOrder) (models.Order, error) {
	status, err := models.OrderStatusFrom(db.OrderStatus)
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		Id:             db.Id,
		UserId:         db.UserId,
		TotalAmount:    db.TotalAmount,
		Status:         status,
		TrackingNumber: db.TrackingNumber,
		CreatedAt:      db.CreatedAt,
		UpdatedAt:      db.UpdatedAt,
	}, nil
}

type DBOrderItem struct {
	Id          int64   `db:"id"`
	OrderId     int64   `db:"order_id"`
	ProductId   *int64  `db:"product_id"`
	VendorId    int64   `db:"vendor_id"`
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
	TotalPrice  float64 `db:"total_price"`
}

const TABLE_ORDER_ITEMS = "order_items"

var OrderItemFields = utils.ColumnList[DBOrderItem]()

func AdaptOrderItem(db DBOrderItem) (models.OrderItem, error) {
	return models.OrderItem{
		Id:          db.Id,
		OrderId:     db.OrderId,
		ProductId:   db.ProductId,
		VendorId:    db.VendorId,
		ProductName: db.ProductName,
		Quantity:    db.Quantity,
		UnitPrice:   db.UnitPrice,
		TotalPrice:  db.TotalPrice,
	}, nil
}
