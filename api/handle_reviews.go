package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handleCreateReview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateReviewBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewReviewUsecase()
		review, err := usecase.CreateReview(ctx, dto.AdaptCreateReviewInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptReviewDto(review))
	}
}

func handleListProductReviews(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		productId, err := idParam(c, "product_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewReviewUsecase()
		reviews, err := usecase.ListProductReviews(ctx, productId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": pure_utils.Map(reviews, dto.AdaptReviewDto)})
	}
}

func handleUpdateReview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		reviewId, err := idParam(c, "review_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.UpdateReviewBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewReviewUsecase()
		review, err := usecase.UpdateReview(ctx, reviewId, dto.AdaptUpdateReviewInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptReviewDto(review))
	}
}

func handleDeleteReview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		reviewId, err := idParam(c, "review_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewReviewUsecase()
		if presentError(ctx, c, usecase.DeleteReview(ctx, reviewId)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}

func handleReactToReview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ReactionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewReviewUsecase()
		review, err := usecase.React(ctx, dto.AdaptReactionInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptReviewDto(review))
	}
}
