package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBReview struct {
	Id             int64     `db:"id"`
	UserId         int64     `db:"user_id"`
	ProductId      int64     `db:"product_id"`
	ParentReviewId *int64    `db:"parent_review_id"`
	Content        string    `db:"content"`
	Rating         int       `db:"rating"`
	LikesCount     int       `db:"likes_count"`
	DislikesCount  int       `db:"dislikes_count"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

const (
	TABLE_REVIEWS          = "reviews"
	TABLE_REVIEW_REACTIONS = "review_reactions"
)

var ReviewFields = utils.ColumnList[DBReview]()

func AdaptReview(db DBReview) (models.Review, error) {
	return models.Review{
		Id:             db.Id,
		UserId:         db.UserId,
		ProductId:      db.ProductId,
		ParentReviewId: db.ParentReviewId,
		Content:        db.Content,
		Rating:         db.Rating,
		LikesCount:     db.LikesCount,
		DislikesCount:  db.DislikesCount,
		CreatedAt:      db.CreatedAt,
		UpdatedAt:      db.UpdatedAt,
	}, nil
}
