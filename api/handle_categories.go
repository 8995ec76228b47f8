package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handleListCategories(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewCategoryUsecase()

		categories, err := usecase.ListCategoryTree(ctx)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(categories, dto.AdaptCategoryDto))
	}
}

func handleGetCategory(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		categoryId, err := idParam(c, "category_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCategoryUsecase()
		category, err := usecase.GetCategory(ctx, categoryId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptCategoryDto(category))
	}
}

func handleCreateCategory(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateCategoryBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCategoryUsecase()
		category, err := usecase.CreateCategory(ctx, dto.AdaptCreateCategoryInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptCategoryDto(category))
	}
}

func handleUpdateCategory(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		categoryId, err := idParam(c, "category_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.UpdateCategoryBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCategoryUsecase()
		category, err := usecase.UpdateCategory(ctx, categoryId, dto.AdaptUpdateCategoryInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptCategoryDto(category))
	}
}

func handleDeleteCategory(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		categoryId, err := idParam(c, "category_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCategoryUsecase()
		if presentError(ctx, c, usecase.DeleteCategory(ctx, categoryId)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
