package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/usecases"
)

func handleLivenessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewLivenessUsecase()

		if presentError(ctx, c, usecase.Liveness(ctx)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func handleHealth(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewLivenessUsecase()

		status := usecase.HealthStatus(ctx)
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, dto.AdaptHealthDto(status))
	}
}
