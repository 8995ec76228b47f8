package dto

import (
	"time"

	"github.com/storefront/storefront-backend/models"
)

type APICartItem struct {
	Id        int64     `json:"id"`
	UserId    int64     `json:"user_id"`
	ProductId int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AdaptCartItemDto(item models.CartItem) APICartItem {
	return APICartItem{
		Id:        item.Id,
		UserId:    item.UserId,
		ProductId: item.ProductId,
		Quantity:  item.Quantity,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

type AddCartItemBody struct {
	ProductId int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

func AdaptAddCartItemInput(body AddCartItemBody) models.AddCartItemInput {
	return models.AddCartItemInput{ProductId: body.ProductId, Quantity: body.Quantity}
}

type UpdateCartItemBody struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
