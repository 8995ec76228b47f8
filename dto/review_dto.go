package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/storefront/storefront-backend/models"
)

type APIReview struct {
	Id              int64       `json:"id"`
	UserId          int64       `json:"user_id"`
	ProductId       int64       `json:"product_id"`
	ParentReviewId  null.Int    `json:"parent_review_id"`
	Content         string      `json:"content"`
	Rating          int         `json:"rating"`
	LikesCount      int         `json:"likes_count"`
	DislikesCount   int         `json:"dislikes_count"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	FollowUpReviews []APIReview `json:"follow_up_reviews"`
}

func AdaptReviewDto(review models.Review) APIReview {
	followUps := make([]APIReview, 0, len(review.FollowUpReviews))
	for _, followUp := range review.FollowUpReviews {
		followUps = append(followUps, AdaptReviewDto(followUp))
	}
	return APIReview{
		Id:              review.Id,
		UserId:          review.UserId,
		ProductId:       review.ProductId,
		ParentReviewId:  null.IntFromPtr(review.ParentReviewId),
		Content:         review.Content,
		Rating:          review.Rating,
		LikesCount:      review.LikesCount,
		DislikesCount:   review.DislikesCount,
		CreatedAt:       review.CreatedAt,
		UpdatedAt:       review.UpdatedAt,
		FollowUpReviews: followUps,
	}
}

type CreateReviewBody struct {
	ProductId      int64    `json:"product_id" binding:"required,min=1"`
	ParentReviewId null.Int `json:"parent_review_id"`
	Content        string   `json:"content" binding:"required"`
	Rating         int      `json:"rating" binding:"required,min=1,max=5"`
}

func AdaptCreateReviewInput(body CreateReviewBody) models.CreateReviewInput {
	return models.CreateReviewInput{
		ProductId:      body.ProductId,
		ParentReviewId: body.ParentReviewId.Ptr(),
		Content:        body.Content,
		Rating:         body.Rating,
	}
}

type UpdateReviewBody struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

func AdaptUpdateReviewInput(body UpdateReviewBody) models.UpdateReviewInput {
	return models.UpdateReviewInput{Content: body.Content, Rating: body.Rating}
}

// ReactionBody.LikeDislike is 1 for a like and 0 for a dislike.
type ReactionBody struct {
	ReviewId    int64 `json:"review_id" binding:"required,min=1"`
	LikeDislike *int  `json:"like_dislike" binding:"required,oneof=0 1"`
}

func AdaptReactionInput(body ReactionBody) models.ReactionInput {
	return models.ReactionInput{
		ReviewId: body.ReviewId,
		Reaction: models.Reaction(*body.LikeDislike),
	}
}
