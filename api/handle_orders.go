package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handlePlaceOrder(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewOrderUsecase()

		order, err := usecase.PlaceOrder(ctx)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptOrderDto(order))
	}
}

func handleListOrders(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewOrderUsecase()

		orders, err := usecase.ListOrders(ctx, nil)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(orders, dto.AdaptOrderDto))
	}
}

func handleListOrdersByStatus(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewOrderUsecase()

		orders, err := usecase.ListOrdersByStatus(ctx, c.Param("order_status"))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(orders, dto.AdaptOrderDto))
	}
}

func handleGetOrder(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderId, err := idParam(c, "order_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrderUsecase()
		order, err := usecase.GetOrder(ctx, orderId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptOrderDto(order))
	}
}

// handleOrderTransition serves the order status changes that take no body.
func handleOrderTransition(
	uc usecases.Usecases,
	transition func(usecase *usecases.OrderUsecase, c *gin.Context, orderId int64) (models.Order, error),
) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderId, err := idParam(c, "order_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrderUsecase()
		order, err := transition(&usecase, c, orderId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptOrderDto(order))
	}
}

func handleCancelOrder(uc usecases.Usecases) func(c *gin.Context) {
	return handleOrderTransition(uc,
		func(usecase *usecases.OrderUsecase, c *gin.Context, orderId int64) (models.Order, error) {
			return usecase.CancelOrder(c.Request.Context(), orderId)
		})
}

func handleConfirmReceipt(uc usecases.Usecases) func(c *gin.Context) {
	return handleOrderTransition(uc,
		func(usecase *usecases.OrderUsecase, c *gin.Context, orderId int64) (models.Order, error) {
			return usecase.ConfirmReceipt(c.Request.Context(), orderId)
		})
}

func handleShipOrder(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderId, err := idParam(c, "order_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.ShipOrderBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrderUsecase()
		order, err := usecase.ShipOrder(ctx, orderId, body.TrackingNumber)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptOrderDto(order))
	}
}
