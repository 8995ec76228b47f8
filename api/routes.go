package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"

	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

const defaultRequestTimeout = 10 * time.Second

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	if duration <= 0 {
		duration = defaultRequestTimeout
	}
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg(`{"message": "Request timeout"}`),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases, auth utils.Authentication) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/health", handleHealth(uc))
	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	tom := timeoutMiddleware(conf.DefaultTimeout)

	public := r.Group("/", tom, auth.OptionalMiddleware)
	public.POST("/auth/register", handleRegister(uc))
	public.POST("/auth/login", handleLogin(uc))
	public.POST("/auth/refresh", handleRefreshToken(uc))
	public.POST("/auth/logout", handleLogout(uc))

	public.GET("/categories", handleListCategories(uc))
	public.GET("/categories/:category_id", handleGetCategory(uc))

	public.GET("/products", handleListProducts(uc))
	public.GET("/products/search", handleSearchProducts(uc))
	public.GET("/products/semantic-search", handleSemanticSearch(uc))
	public.GET("/products/:product_id", handleGetProduct(uc))

	public.GET("/reviews/:product_id", handleListProductReviews(uc))

	// the payment gateway redirects the buyer's browser to these, without a token
	public.GET("/payments/mock-success", handleMockPaymentSuccess(uc))
	public.GET("/payments/mock-cancel", handleMockPaymentCancel(uc))
	public.GET("/payments/success", handlePaymentSuccess(uc))
	public.GET("/payments/cancel", handlePaymentCancel(uc))

	router := r.Group("/", tom, auth.Middleware)
	router.GET("/users/me", handleGetMe(uc))
	router.PATCH("/users/me", handleUpdateMe(uc))
	router.GET("/users", handleListUsers(uc))
	router.PATCH("/users/:user_id/role", handleUpdateUserRole(uc))
	router.PATCH("/users/:user_id/status", handleUpdateUserStatus(uc))

	router.POST("/categories", handleCreateCategory(uc))
	router.PATCH("/categories/:category_id", handleUpdateCategory(uc))
	router.DELETE("/categories/:category_id", handleDeleteCategory(uc))

	router.POST("/products", handleCreateProduct(uc))
	router.PATCH("/products/:product_id", handleUpdateProduct(uc))
	router.DELETE("/products/:product_id", handleDeleteProduct(uc))

	router.GET("/cart", handleListCartItems(uc))
	router.POST("/cart", handleAddToCart(uc))
	router.GET("/cart/:cart_item_id", handleGetCartItem(uc))
	router.PATCH("/cart/:cart_item_id", handleUpdateCartItem(uc))
	router.DELETE("/cart/:cart_item_id", handleDeleteCartItem(uc))

	router.POST("/orders", handlePlaceOrder(uc))
	router.GET("/orders", handleListOrders(uc))
	router.GET("/orders/status/:order_status", handleListOrdersByStatus(uc))
	router.GET("/orders/:order_id", handleGetOrder(uc))
	router.PATCH("/orders/cancel/:order_id", handleCancelOrder(uc))
	router.PATCH("/orders/ship/:order_id", handleShipOrder(uc))
	router.PATCH("/orders/confirm-receipt/:order_id", handleConfirmReceipt(uc))

	router.POST("/payments/checkout", handleCheckout(uc))
	router.GET("/payments/order/:order_id", handleListOrderPayments(uc))

	router.POST("/reviews", handleCreateReview(uc))
	router.POST("/reviews/like-dislike", handleReactToReview(uc))
	router.PATCH("/reviews/:review_id", handleUpdateReview(uc))
	router.DELETE("/reviews/:review_id", handleDeleteReview(uc))
}
