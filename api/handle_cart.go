package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handleListCartItems(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewCartUsecase()

		items, err := usecase.ListCartItems(ctx)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(items, dto.AdaptCartItemDto))
	}
}

func handleGetCartItem(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartItemId, err := idParam(c, "cart_item_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCartUsecase()
		item, err := usecase.GetCartItem(ctx, cartItemId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptCartItemDto(item))
	}
}

func handleAddToCart(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.AddCartItemBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCartUsecase()
		item, err := usecase.AddToCart(ctx, dto.AdaptAddCartItemInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptCartItemDto(item))
	}
}

func handleUpdateCartItem(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartItemId, err := idParam(c, "cart_item_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.UpdateCartItemBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCartUsecase()
		item, err := usecase.UpdateCartItem(ctx, cartItemId, body.Quantity)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptCartItemDto(item))
	}
}

func handleDeleteCartItem(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartItemId, err := idParam(c, "cart_item_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCartUsecase()
		if presentError(ctx, c, usecase.DeleteCartItem(ctx, cartItemId)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted successfully"})
	}
}
