package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBCartItem struct {
	Id        int64     `db:"id"`
	UserId    int64     `db:"user_id"`
	ProductId int64     `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const TABLE_CART_ITEMS = "cart_items"

var CartItemFields = utils.ColumnList[DBCartItem]()

func AdaptCartItem(db DBCartItem) (models.CartItem, error) {
	return models.CartItem{
		Id:        db.Id,
		UserId:    db.UserId,
		ProductId: db.ProductId,
		Quantity:  db.Quantity,
		Price:     db.Price,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}, nil
}
