package models

import "time"

type CartItem struct {
	Id        int64
	UserId    int64
	ProductId int64
	Quantity  int
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AddCartItemInput struct {
	ProductId int64
	Quantity  int
}

func LinePrice(product Product, quantity int) float64 {
	return roundCents(product.UnitPrice() * float64(quantity))
}
