package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handleCheckout(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CheckoutBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewPaymentUsecase()
		session, err := usecase.Checkout(ctx, body.OrderId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptCheckoutSessionDto(session))
	}
}

// handleGatewayRedirect serves the pages the payment gateway redirects the buyer to.
func handleGatewayRedirect(
	uc usecases.Usecases,
	resolve func(usecase *usecases.PaymentUsecase, ctx context.Context, sessionId string) (models.Payment, error),
	present func(payment models.Payment) gin.H,
) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.SessionQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewPaymentUsecase()
		payment, err := resolve(&usecase, ctx, query.SessionId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, present(payment))
	}
}

func handleMockPaymentSuccess(uc usecases.Usecases) func(c *gin.Context) {
	return handleGatewayRedirect(uc, (*usecases.PaymentUsecase).MockSuccess,
		func(payment models.Payment) gin.H {
			return gin.H{
				"message":  "Payment successful (Mock)",
				"order_id": payment.OrderId,
				"amount":   payment.Amount,
				"status":   payment.Status,
			}
		})
}

func handleMockPaymentCancel(uc usecases.Usecases) func(c *gin.Context) {
	return handleGatewayRedirect(uc, (*usecases.PaymentUsecase).MockCancel,
		func(payment models.Payment) gin.H {
			return gin.H{"message": "Payment canceled (Mock)", "order_id": payment.OrderId}
		})
}

func handlePaymentSuccess(uc usecases.Usecases) func(c *gin.Context) {
	return handleGatewayRedirect(uc, (*usecases.PaymentUsecase).Success,
		func(payment models.Payment) gin.H {
			return gin.H{"message": "Payment successful", "order_id": payment.OrderId}
		})
}

func handlePaymentCancel(uc usecases.Usecases) func(c *gin.Context) {
	return handleGatewayRedirect(uc, (*usecases.PaymentUsecase).Cancel,
		func(payment models.Payment) gin.H {
			return gin.H{"message": "Payment failed"}
		})
}

func handleListOrderPayments(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderId, err := idParam(c, "order_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewPaymentUsecase()
		payments, err := usecase.ListPaymentsOfOrder(ctx, orderId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(payments, dto.AdaptPaymentDto))
	}
}
