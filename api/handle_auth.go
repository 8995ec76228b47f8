package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/usecases"
)

func handleRegister(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.RegisterBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := uc.NewAuthUsecase()
		user, err := usecase.Register(ctx, dto.AdaptRegisterInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptUserDto(user))
	}
}

func handleLogin(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.LoginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := uc.NewAuthUsecase()
		tokens, err := usecase.Login(ctx, body.Username, body.Password)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptTokenPairDto(tokens))
	}
}

func handleRefreshToken(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.RefreshTokenBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := uc.NewAuthUsecase()
		tokens, err := usecase.Refresh(ctx, body.RefreshToken)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptTokenPairDto(tokens))
	}
}

func handleLogout(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.RefreshTokenBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := uc.NewAuthUsecase()
		if presentError(ctx, c, usecase.Logout(ctx, body.RefreshToken)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
	}
}
