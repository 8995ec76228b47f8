package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handleGetMe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewUserUsecase()

		user, err := usecase.Me(ctx)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptUserDto(user))
	}
}

func handleUpdateMe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.UpdateMeBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewUserUsecase()
		user, err := usecase.UpdateMe(ctx, dto.AdaptUpdateMe(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptUserDto(user))
	}
}

func handleListUsers(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.PaginationQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewUserUsecase()
		users, err := usecase.ListUsers(ctx, dto.AdaptPagination(query))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(users, dto.AdaptUserDto))
	}
}

func handleUpdateUserRole(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, err := idParam(c, "user_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.UpdateRoleBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewUserUsecase()
		user, err := usecase.UpdateUserRole(ctx, userId, body.Role)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptUserDto(user))
	}
}

func handleUpdateUserStatus(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, err := idParam(c, "user_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.UpdateStatusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewUserUsecase()
		user, err := usecase.UpdateUserStatus(ctx, userId, *body.IsActive)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptUserDto(user))
	}
}
