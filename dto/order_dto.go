package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
)

type APIOrderItem struct {
	Id          int64    `json:"id"`
	ProductId   null.Int `json:"product_id"`
	VendorId    int64    `json:"vendor_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	TotalPrice  float64  `json:"total_price"`
}

type APIOrder struct {
	Id             int64          `json:"id"`
	UserId         int64          `json:"user_id"`
	TotalAmount    float64        `json:"total_amount"`
	OrderStatus    string         `json:"order_status"`
	TrackingNumber null.String    `json:"tracking_number"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Items          []APIOrderItem `json:"items"`
}

func AdaptOrderItemDto(item models.OrderItem) APIOrderItem {
	return APIOrderItem{
		Id:          item.Id,
		ProductId:   null.IntFromPtr(item.ProductId),
		VendorId:    item.VendorId,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
	}
}

func AdaptOrderDto(order models.Order) APIOrder {
	return APIOrder{
		Id:             order.Id,
		UserId:         order.UserId,
		TotalAmount:    order.TotalAmount,
		OrderStatus:    string(order.Status),
		TrackingNumber: null.StringFromPtr(order.TrackingNumber),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
		Items:          pure_utils.Map(order.Items, AdaptOrderItemDto),
	}
}

type ShipOrderBody struct {
	TrackingNumber string `json:"tracking_number" binding:"required,min=1,max=100"`
}
