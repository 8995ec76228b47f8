package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBCategory struct {
	Id          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ParentId    *int64    `db:"parent_id"`
	CreatedAt   time.Time `db:"created_at"`
}

const TABLE_CATEGORIES = "categories"

var CategoryFields = utils.ColumnList[DBCategory]()

func AdaptCategory(db DBCategory) (models.Category, error) {
	return models.Category{
		Id:          db.Id,
		Name:        db.Name,
		Description: db.Description,
		ParentId:    db.ParentId,
		CreatedAt:   db.CreatedAt,
	}, nil
}
