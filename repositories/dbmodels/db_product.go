package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBProduct struct {
	Id               int64     `db:"id"`
	Name             string    `db:"name"`
	Description      string    `db:"description"`
	Price            float64   `db:"price"`
	PromotionalPrice *float64  `db:"promotional_price"`
	Stock            int       `db:"stock"`
	IsActive         bool      `db:"is_active"`
	CategoryId       *int64    `db:"category_id"`
	VendorId         int64     `db:"vendor_id"`
	ViewCount        int       `db:"view_count"`
	AverageRating    float64   `db:"average_rating"`
	ReviewCount      int       `db:"review_count"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

const TABLE_PRODUCTS = "products"

var ProductFields = utils.ColumnList[DBProduct]()

func AdaptProduct(db DBProduct) (models.Product, error) {
	return models.Product{
		Id:               db.Id,
		Name:             db.Name,
		Description:      db.Description,
		Price:            db.Price,
		PromotionalPrice: db.PromotionalPrice,
		Stock:            db.Stock,
		IsActive:         db.IsActive,
		CategoryId:       db.CategoryId,
		VendorId:         db.VendorId,
		ViewCount:        db.ViewCount,
		AverageRating:    db.AverageRating,
		ReviewCount:      db.ReviewCount,
		CreatedAt:        db.CreatedAt,
		UpdatedAt:        db.UpdatedAt,
	}, nil
}
